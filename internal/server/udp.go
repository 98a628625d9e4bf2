package server

import (
	"errors"
	"net"

	"github.com/rs/zerolog/log"

	"fastpath/internal/lookup"
	"fastpath/internal/metrics"
)

// UDPServer answers one query per datagram.
type UDPServer struct {
	ListenAddr string
	Handler    *lookup.Handler
	Verbose    bool
}

func NewUDPServer(listenAddr string, handler *lookup.Handler, verbose bool) *UDPServer {
	return &UDPServer{
		ListenAddr: listenAddr,
		Handler:    handler,
		Verbose:    verbose,
	}
}

func (s *UDPServer) Start() error {
	addr, err := net.ResolveUDPAddr("udp", s.ListenAddr)
	if err != nil {
		log.Err(err).Msg("failed to resolve UDP address:")
		return err
	}

	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		log.Err(err).Msgf("failed to listen on UDP %s", s.ListenAddr)
		return err
	}
	return s.Serve(conn)
}

// Serve reads datagrams from conn until it is closed.
func (s *UDPServer) Serve(conn *net.UDPConn) error {
	defer conn.Close()

	log.Info().Msgf("Fast path listening on UDP %s", conn.LocalAddr())

	buffer := make([]byte, maxQueryLen)

	for {
		n, clientAddr, err := conn.ReadFromUDP(buffer)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			log.Err(err).Msgf("Error reading from UDP:")
			continue
		}

		if s.Verbose {
			log.Info().Msgf("Received %d bytes from %s", n, clientAddr)
		}

		query := string(buffer[:n])
		go s.reply(conn, clientAddr, query)
	}
}

func (s *UDPServer) reply(conn *net.UDPConn, clientAddr *net.UDPAddr, query string) {
	resp, err := s.Handler.HandleQuery(query, "udp")
	if err != nil {
		log.Err(err).Msg("Failed to encode response")
		return
	}
	if _, err := conn.WriteToUDP(resp, clientAddr); err != nil {
		metrics.ErrorsTotal.WithLabelValues(metrics.ErrorTypeClientWrite).Inc()
		log.Err(err).Msgf("Failed to send response to %s", clientAddr)
	}
}
