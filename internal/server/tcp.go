package server

import (
	"bufio"
	"errors"
	"net"
	"time"

	"github.com/rs/zerolog/log"

	"fastpath/internal/lookup"
	"fastpath/internal/metrics"
)

const (
	maxQueryLen = 4096
	idleTimeout = 30 * time.Second
)

// TCPServer answers newline-terminated queries, one JSON line per query.
type TCPServer struct {
	ListenAddr string
	Handler    *lookup.Handler
	Verbose    bool
}

func NewTCPServer(listenAddr string, handler *lookup.Handler, verbose bool) *TCPServer {
	return &TCPServer{
		ListenAddr: listenAddr,
		Handler:    handler,
		Verbose:    verbose,
	}
}

func (s *TCPServer) Start() error {
	listener, err := net.Listen("tcp", s.ListenAddr)
	if err != nil {
		log.Err(err).Msgf("failed to listen on TCP %s", s.ListenAddr)
		return err
	}
	return s.Serve(listener)
}

// Serve accepts connections on listener until it is closed.
func (s *TCPServer) Serve(listener net.Listener) error {
	defer listener.Close()

	log.Info().Msgf("Fast path listening on TCP %s", listener.Addr())

	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			log.Err(err).Msg("Error accepting TCP connection:")
			continue
		}

		go s.handleConn(conn)
	}
}

func (s *TCPServer) handleConn(conn net.Conn) {
	defer conn.Close()

	if s.Verbose {
		log.Info().Msgf("Accepted TCP connection from %s", conn.RemoteAddr())
	}

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 512), maxQueryLen)
	w := bufio.NewWriter(conn)

	for {
		conn.SetReadDeadline(time.Now().Add(idleTimeout))
		if !scanner.Scan() {
			break
		}

		resp, err := s.Handler.HandleQuery(scanner.Text(), "tcp")
		if err != nil {
			log.Err(err).Msg("Failed to encode response")
			return
		}
		w.Write(resp)
		w.WriteByte('\n')
		if err := w.Flush(); err != nil {
			metrics.ErrorsTotal.WithLabelValues(metrics.ErrorTypeClientWrite).Inc()
			log.Err(err).Msgf("Failed to send response to %s", conn.RemoteAddr())
			return
		}
	}

	if err := scanner.Err(); err != nil {
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return
		}
		metrics.ErrorsTotal.WithLabelValues(metrics.ErrorTypeClientRead).Inc()
		log.Err(err).Msgf("Failed to read query from %s", conn.RemoteAddr())
	}
}
