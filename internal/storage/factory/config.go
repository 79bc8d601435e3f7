package factory

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/infix-calc/internal/storage"
	"github.com/DjordjeVuckovic/infix-calc/internal/storage/es"
	"github.com/DjordjeVuckovic/infix-calc/internal/storage/pg"
	"github.com/DjordjeVuckovic/infix-calc/pkg/utils"
)

const defaultHistoryFile = "evaluations.jsonl"

type StorageConfig struct {
	storage.Type
	FilePath string
	Pg       *pg.PoolConfig
	Es       *es.ClientConfig
}

// LoadEnv reads the history store configuration. An unset HISTORY_STORAGE
// disables history.
func LoadEnv() (*StorageConfig, error) {
	storageType := storage.Type(strings.ToLower(strings.TrimSpace(os.Getenv("HISTORY_STORAGE"))))
	if storageType == "" {
		slog.Info("HISTORY_STORAGE is not set, evaluation history disabled")
		storageType = storage.None
	}
	if !isSupported(storageType) {
		slog.Error("Invalid HISTORY_STORAGE environment variable value", "value", storageType)
		return nil, fmt.Errorf(
			"invalid HISTORY_STORAGE environment variable value: %s, expected one of %v",
			storageType,
			storage.Types)
	}

	cfg := &StorageConfig{Type: storageType}

	switch storageType {
	case storage.JSONFile:
		cfg.FilePath = os.Getenv("HISTORY_FILE")
		if cfg.FilePath == "" {
			cfg.FilePath = defaultHistoryFile
		}
	case storage.PG:
		cfg.Pg = &pg.PoolConfig{
			ConnStr: os.Getenv("PG_CONNECTION_STRING"),
		}
		if cfg.Pg.ConnStr == "" {
			slog.Error("PostgreSQL connection string is not set")
			return nil, fmt.Errorf("PostgreSQL connection string is not set")
		}
		maxConns, err := intEnv("PG_MAX_CONNS")
		if err != nil {
			return nil, err
		}
		cfg.Pg.MaxConns = int32(maxConns)
	case storage.ES:
		cfg.Es = &es.ClientConfig{
			Addresses: utils.SplitTrimmed(os.Getenv("ES_ADDRESSES"), ","),
			IndexName: os.Getenv("ES_INDEX_NAME"),
			Username:  os.Getenv("ES_USERNAME"),
			Password:  os.Getenv("ES_PASSWORD"),
		}
		if cfg.Es.IndexName == "" {
			cfg.Es.IndexName = "evaluations"
		}
		if len(cfg.Es.Addresses) == 0 {
			slog.Error("Elasticsearch configuration is incomplete", "addresses", cfg.Es.Addresses)
			return nil, fmt.Errorf("elasticsearch configuration is incomplete: addresses are missing")
		}
		retries, err := intEnv("ES_MAX_RETRIES")
		if err != nil {
			return nil, err
		}
		cfg.Es.MaxRetries = retries
	}

	return cfg, nil
}

// intEnv reads an optional non-negative integer; unset means 0.
func intEnv(key string) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > math.MaxInt32 {
		return 0, fmt.Errorf("invalid %s: %q, expected a non-negative integer", key, raw)
	}
	return n, nil
}

func isSupported(t storage.Type) bool {
	for _, st := range storage.Types {
		if st == t {
			return true
		}
	}
	return false
}
