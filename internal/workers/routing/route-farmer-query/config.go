// internal/workers/routing/route-farmer-query/config.go
package routefarmerquery

import "time"

type Config struct {
	Timeout time.Duration
	// ExtraPlaces extend the built-in gazetteer.
	ExtraPlaces []string
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
