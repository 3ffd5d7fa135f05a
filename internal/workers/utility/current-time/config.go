// internal/workers/utility/current-time/config.go
package currenttime

import "time"

type Config struct {
	Timeout  time.Duration
	TimeZone string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  5 * time.Second,
		TimeZone: "Asia/Kolkata",
	}
}
