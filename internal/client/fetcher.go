package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"fastpath/internal/config"
	"fastpath/internal/metrics"
	"fastpath/pkg/matcher"
)

// ErrUnexpectedStatus is returned when the controller answers with a non-200 code.
var ErrUnexpectedStatus = errors.New("unexpected status from controller")

func NewFetcher(controllerURL string, fetchInterval time.Duration, verbose bool, updateChannel chan<- []matcher.Entry, operationalMode string, httpClient *http.Client) *Fetcher {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Fetcher{
		controllerURL:   controllerURL,
		fetchInterval:   fetchInterval,
		verbose:         verbose,
		operationalMode: operationalMode,
		updateChannel:   updateChannel,
		httpClient:      httpClient,
		lastGeneration:  -1,
	}
}

// Start fetches immediately and then on every interval until ctx is done.
// The controller may change the interval through the seed set spec.
func (f *Fetcher) Start(ctx context.Context) {
	if f.verbose {
		log.Info().Msgf("Starting seed fetcher, controller: %s, interval: %v", f.controllerURL, f.fetchInterval)
	}

	configHash := os.Getenv("FASTPATH_CONFIG_HASH")
	if len(configHash) == 0 {
		log.Warn().Msg("FASTPATH_CONFIG_HASH is not set, fetching the default seed set")
	}

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		if err := f.FetchOnce(ctx, configHash); err != nil {
			log.Err(err).Msg("Error fetching seed entries:")
		}
		timer.Reset(f.fetchInterval)
	}
}

// FetchOnce pulls the seed set and pushes its entries to the update channel
// when its generation changed. On failure the operational mode decides what
// happens to the data already served.
func (f *Fetcher) FetchOnce(ctx context.Context, configHash string) error {
	seed, err := f.fetch(ctx, configHash)
	if err != nil {
		metrics.ErrorsTotal.WithLabelValues(metrics.ErrorTypeSeedFetch).Inc()
		log.Info().Msgf("The operational mode is %s after a failed fetch", f.operationalMode)
		if f.operationalMode == config.ModeStrict {
			f.push(ctx, nil)
			f.lastGeneration = -1
		}
		return err
	}

	if seed.Spec.Interval > 0 {
		f.fetchInterval = time.Duration(seed.Spec.Interval) * time.Second
	}

	if seed.Generation != 0 && seed.Generation == f.lastGeneration {
		if f.verbose {
			log.Info().Msgf("Seed set %s unchanged at generation %d", seed.Name, seed.Generation)
		}
		return nil
	}
	f.lastGeneration = seed.Generation

	if f.verbose {
		log.Info().Msgf("Fetched %d seed entries from controller", len(seed.Spec.Entries))
	}
	f.push(ctx, seed.Spec.Entries)
	return nil
}

func (f *Fetcher) push(ctx context.Context, entries []matcher.Entry) {
	select {
	case f.updateChannel <- entries:
	case <-ctx.Done():
	}
}

func (f *Fetcher) fetch(ctx context.Context, configHash string) (*SeedSet, error) {
	u := fmt.Sprintf("%s/api/seeds?hash=%s", f.controllerURL, url.QueryEscape(configHash))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seeds: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var controllerResp ControllerResponse
	if err := json.NewDecoder(resp.Body).Decode(&controllerResp); err != nil {
		return nil, fmt.Errorf("failed to decode seed response: %w", err)
	}
	return &controllerResp.SeedSet, nil
}
