package es

import (
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
)

type ClientConfig struct {
	Addresses []string
	IndexName string
	Username  string
	Password  string
	// MaxRetries bounds retries on 502/503/504; zero keeps the client default.
	MaxRetries int
}

func newClient(config ClientConfig) (*elasticsearch.TypedClient, error) {
	cfg := elasticsearch.Config{
		Addresses:     config.Addresses,
		RetryOnStatus: []int{http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout},
	}
	if config.MaxRetries > 0 {
		cfg.MaxRetries = config.MaxRetries
	}

	// basic auth only when both halves are set; a local single-node cluster
	// usually runs with security off
	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	return elasticsearch.NewTypedClient(cfg)
}
