package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"fastpath/internal/api"
	"fastpath/internal/client"
	"fastpath/internal/config"
	"fastpath/internal/lookup"
	"fastpath/internal/metrics"
	"fastpath/internal/server"
	"fastpath/internal/transport"
	"fastpath/internal/warmup"
	"fastpath/pkg/matcher"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().Msg("Fast path lookup engine v1.0.0")
	log.Info().Msgf("Query listener: %s", cfg.ListenAddr)
	log.Info().Msgf("API: %s", cfg.APIAddr)
	if cfg.ControllerURL != "" {
		log.Info().Msgf("Controller URL: %s", cfg.ControllerURL)
		log.Info().Msgf("Fetch Interval: %v", cfg.FetchInterval)
	}
	log.Info().Msgf("Metrics endpoint: http://%s/metrics", cfg.MetricsAddr)

	// Start metrics server in background
	go func() {
		if err := metrics.StartMetricsServer(cfg.MetricsAddr); err != nil {
			log.Err(err).Msg("Metrics server error:")
		}
	}()

	var opts []matcher.Option
	if cfg.ExpectedKeys > 0 {
		opts = append(opts, matcher.WithExpectedKeys(cfg.ExpectedKeys))
	}
	handler := lookup.NewHandler(cfg.Verbose, opts...)

	if cfg.WarmupDB != "" {
		entries, err := warmup.LoadSQLite(ctx, cfg.WarmupDB, cfg.WarmupLimit)
		if err != nil {
			metrics.ErrorsTotal.WithLabelValues(metrics.ErrorTypeWarmup).Inc()
			log.Err(err).Msg("Warm-up failed, starting empty")
		} else {
			size := handler.Replace(entries, metrics.SourceWarmup)
			log.Info().Msgf("Fast path warmed up with %d keys", size)
		}
	}

	updateChannel := make(chan []matcher.Entry, 10)

	go func() {
		for batch := range updateChannel {
			if cfg.Verbose {
				log.Info().Msgf("Received seed update with %d entries", len(batch))
			}
			handler.Replace(batch, metrics.SourceController)
		}
	}()

	if cfg.ControllerURL != "" {
		httpClient, err := transport.NewHTTPClient(transport.Config{
			CACertPath:         cfg.CACertPath,
			ClientCertPath:     cfg.ClientCertPath,
			ClientKeyPath:      cfg.ClientKeyPath,
			InsecureSkipVerify: cfg.InsecureSkipVerify,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to build controller client")
		}
		fetcher := client.NewFetcher(cfg.ControllerURL, cfg.FetchInterval, cfg.Verbose, updateChannel, cfg.Mode, httpClient)
		go fetcher.Start(ctx)
	} else {
		log.Info().Msg("No controller URL specified, running without seed updates")
	}

	apiServer := api.NewServer(cfg.APIAddr, cfg.Verbose, cfg.MaxConns, handler)
	udpServer := server.NewUDPServer(cfg.ListenAddr, handler, cfg.Verbose)
	tcpServer := server.NewTCPServer(cfg.ListenAddr, handler, cfg.Verbose)

	go func() {
		if err := apiServer.Start(); err != nil {
			log.Err(err).Msg("API server error:")
		}
	}()

	go func() {
		if err := udpServer.Start(); err != nil {
			log.Err(err).Msg("UDP server error:")
		}
	}()

	go func() {
		if err := tcpServer.Start(); err != nil {
			log.Err(err).Msg("TCP server error:")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
}
