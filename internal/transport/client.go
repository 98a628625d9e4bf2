package transport

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

// Config holds TLS and timeout settings for the controller HTTP client
type Config struct {
	Timeout        time.Duration
	CACertPath     string
	ClientCertPath string
	ClientKeyPath  string
	// In-memory certificate data (takes precedence over file paths)
	CACertData         []byte
	ClientCertData     []byte
	ClientKeyData      []byte
	InsecureSkipVerify bool
}

// NewHTTPClient builds an HTTP client honouring the TLS settings in config.
func NewHTTPClient(config Config) (*http.Client, error) {
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}

	tlsConfig, err := loadTLSConfig(config)
	if err != nil {
		return nil, err
	}

	transport := &http.Transport{
		TLSClientConfig:   tlsConfig,
		ForceAttemptHTTP2: true,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   config.Timeout,
	}, nil
}

// loadTLSConfig loads TLS certificates and creates a TLS configuration
func loadTLSConfig(config Config) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: config.InsecureSkipVerify,
	}

	caCert := config.CACertData
	if len(caCert) == 0 && config.CACertPath != "" {
		var err error
		caCert, err = os.ReadFile(config.CACertPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA certificate: %w", err)
		}
	}
	if len(caCert) > 0 {
		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to parse CA certificate")
		}
		tlsConfig.RootCAs = caCertPool
		log.Info().Msg("Loaded CA certificate")
	}

	// Client certificate and key for mTLS
	if len(config.ClientCertData) > 0 && len(config.ClientKeyData) > 0 {
		clientCert, err := tls.X509KeyPair(config.ClientCertData, config.ClientKeyData)
		if err != nil {
			return nil, fmt.Errorf("failed to parse client certificate from memory: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{clientCert}
		log.Info().Msg("Loaded client certificate from in-memory data")
	} else if config.ClientCertPath != "" && config.ClientKeyPath != "" {
		clientCert, err := tls.LoadX509KeyPair(config.ClientCertPath, config.ClientKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load client certificate: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{clientCert}
		log.Info().Msgf("Loaded client certificate from %s", config.ClientCertPath)
	}

	if config.InsecureSkipVerify {
		log.Warn().Msg("TLS certificate verification is disabled (insecure)")
	}

	return tlsConfig, nil
}
