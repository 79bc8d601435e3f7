// Package testing starts the backing services of the history stores in
// containers for integration tests.
package testing

import "os"

const (
	defaultPostgresImage      = "postgres:17.5"
	defaultElasticsearchImage = "docker.elastic.co/elasticsearch/elasticsearch:8.12.0"
)

// image returns the value of the env override, or def when it is unset.
func image(envKey, def string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return def
}
