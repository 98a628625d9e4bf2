package config

import (
	"flag"
	"fmt"
	"os"
	"time"
)

// Fetch failure policies
const (
	ModeStrict  = "strict"
	ModeBalance = "balance"
)

type Config struct {
	ListenAddr    string
	APIAddr       string
	MetricsAddr   string
	Verbose       bool
	ControllerURL string
	FetchInterval time.Duration
	Mode          string
	MaxConns      int

	WarmupDB    string
	WarmupLimit int

	ExpectedKeys uint

	CACertPath         string
	ClientCertPath     string
	ClientKeyPath      string
	InsecureSkipVerify bool
}

func Load() *Config {
	cfg, err := Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return cfg
}

func Parse(args []string) (*Config, error) {
	cfg := &Config{}
	fetchIntervalSec := 0
	expectedKeys := 0

	fs := flag.NewFlagSet("fastpath", flag.ContinueOnError)
	fs.StringVar(&cfg.ListenAddr, "listen", ":7070", "TCP/UDP query listener address (default :7070)")
	fs.StringVar(&cfg.APIAddr, "api", ":8080", "HTTP API address (default :8080)")
	fs.StringVar(&cfg.MetricsAddr, "metrics", ":9090", "Metrics HTTP server address (default :9090)")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Enable verbose logging")
	fs.StringVar(&cfg.ControllerURL, "controller", "", "Controller URL to fetch seed entries from")
	fs.IntVar(&fetchIntervalSec, "fetch-interval", 30, "Seed fetch interval in seconds (default 30)")
	fs.StringVar(&cfg.Mode, "mode", ModeBalance, "Behaviour on fetch failure: strict clears the engine, balance keeps stale data")
	fs.IntVar(&cfg.MaxConns, "max-conns", 256, "Maximum concurrent API connections")
	fs.StringVar(&cfg.WarmupDB, "warmup-db", "", "SQLite database to warm the engine from")
	fs.IntVar(&cfg.WarmupLimit, "warmup-limit", 1000, "Maximum entity rows read during warm-up")
	fs.IntVar(&expectedKeys, "expected-keys", 0, "Expected number of keys; enables the exact index Bloom filter when > 0")
	fs.StringVar(&cfg.CACertPath, "ca-cert", "", "CA certificate for the controller connection")
	fs.StringVar(&cfg.ClientCertPath, "client-cert", "", "Client certificate for mTLS to the controller")
	fs.StringVar(&cfg.ClientKeyPath, "client-key", "", "Client key for mTLS to the controller")
	fs.BoolVar(&cfg.InsecureSkipVerify, "insecure-skip-verify", false, "Skip controller TLS verification")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if fetchIntervalSec <= 0 {
		return nil, fmt.Errorf("fetch-interval must be positive, got %d", fetchIntervalSec)
	}
	if expectedKeys < 0 {
		return nil, fmt.Errorf("expected-keys must not be negative, got %d", expectedKeys)
	}
	if cfg.Mode != ModeStrict && cfg.Mode != ModeBalance {
		return nil, fmt.Errorf("unknown mode %q", cfg.Mode)
	}

	cfg.FetchInterval = time.Duration(fetchIntervalSec) * time.Second
	cfg.ExpectedKeys = uint(expectedKeys)

	return cfg, nil
}
