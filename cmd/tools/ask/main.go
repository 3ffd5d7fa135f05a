// cmd/tools/ask/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"agri-saarathi/internal/assistant"
	"agri-saarathi/internal/common/config"
	"agri-saarathi/internal/common/database"
	"agri-saarathi/internal/common/geo"
	"agri-saarathi/internal/common/logger"
	"agri-saarathi/internal/models"
)

func main() {
	question := flag.String("q", "", "Farmer question")
	image := flag.String("image", "", "Reference of an attached crop photo")
	location := flag.String("location", "", "Declared location (village, district or market)")
	configPath := flag.String("config", "", "Config file (defaults to configs/config.yaml)")
	asJSON := flag.Bool("json", false, "Print the full structured answer")
	timeout := flag.Duration("timeout", time.Minute, "Overall deadline")
	flag.Parse()

	if *question == "" && *image == "" {
		fmt.Fprintln(os.Stderr, "usage: ask -q \"tomato price today in Coimbatore\" [-location X] [-image ref] [-json]")
		os.Exit(2)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}
	log := logger.NewStructured(cfg.Logging.Level, "console")

	var cache geo.Cache
	if cfg.Redis.Enabled() {
		if rdb, err := database.NewRedis(cfg.Redis); err == nil {
			defer rdb.Close()
			cache = database.NewJSONCache(rdb.Client, "geocode:", time.Duration(cfg.Redis.GeocodeTTL)*time.Second)
		}
	}

	specialists, err := assistant.NewSpecialists(assistant.Deps{Config: cfg, Cache: cache, Logger: log})
	if err != nil {
		fmt.Fprintf(os.Stderr, "setup failed: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	answer, err := assistant.New(specialists, log).Ask(ctx, models.Query{
		Text:             *question,
		ImageRef:         *image,
		DeclaredLocation: *location,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ask failed: %v\n", err)
		os.Exit(1)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(answer)
		return
	}
	fmt.Printf("[%s/%s]\n%s\n", answer.Route.Intent, answer.Route.Action, answer.Reply)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}
