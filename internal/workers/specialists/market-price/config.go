// internal/workers/specialists/market-price/config.go
package marketprice

import (
	"time"

	"agri-saarathi/internal/common/search"
)

type Config struct {
	Timeout    time.Duration
	Site       string
	NumResults int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:    15 * time.Second,
		Site:       "commodityonline.com",
		NumResults: search.MaxResults,
	}
}
