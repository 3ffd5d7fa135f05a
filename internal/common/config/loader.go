package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configs/config.yaml, merges config.<APP_ENVIRONMENT>.yaml on top
// and applies environment overrides.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig()

	return build(v)
}

// LoadFromFile reads a single YAML file, skipping environment file merging.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return build(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

func build(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{".env", "../.env", "../../.env", "../../../.env"}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok || !strings.Contains(strVal, "$") {
			continue
		}
		if expanded := os.ExpandEnv(strVal); expanded != strVal {
			v.Set(key, expanded)
		}
	}
}

// overrideEmptyConfig fills credentials from the conventional environment
// variable names when the YAML leaves them blank.
func overrideEmptyConfig(cfg *Config) {
	setIfEmpty(&cfg.APIs.WebSearch.APIKey, "CUSTOM_SEARCH_API_KEY")
	setIfEmpty(&cfg.APIs.WebSearch.EngineID, "CUSTOM_SEARCH_ENGINE_ID")
	setIfEmpty(&cfg.APIs.Maps.APIKey, "MAPS_API_KEY")
	setIfEmpty(&cfg.APIs.Weather.APIKey, "WEATHER_API_KEY")
	setIfEmpty(&cfg.Camunda.BrokerAddress, "ZEEBE_ADDRESS")
	setIfEmpty(&cfg.Redis.Address, "REDIS_ADDRESS")
	setIfEmpty(&cfg.Observability.JaegerEndpoint, "JAEGER_ENDPOINT")
}

func setIfEmpty(field *string, envKey string) {
	if *field != "" {
		return
	}
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "agri-saarathi"
	}

	if cfg.Camunda.MaxJobsActive == 0 {
		cfg.Camunda.MaxJobsActive = 10
	}
	if cfg.Camunda.Timeout == 0 {
		cfg.Camunda.Timeout = 30000
	}
	if cfg.Camunda.RequestTimeout == 0 {
		cfg.Camunda.RequestTimeout = 30000
	}

	if cfg.Redis.GeocodeTTL == 0 {
		cfg.Redis.GeocodeTTL = int((7 * 24 * time.Hour).Seconds())
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	for key, worker := range cfg.Workers {
		if worker.MaxJobsActive == 0 {
			worker.MaxJobsActive = 5
		}
		if worker.Timeout == 0 {
			worker.Timeout = 30000
		}
		cfg.Workers[key] = worker
	}

	apis := &cfg.APIs
	if apis.WebSearch.BaseURL == "" {
		apis.WebSearch.BaseURL = "https://www.googleapis.com/customsearch/v1"
	}
	if apis.WebSearch.Timeout == 0 {
		apis.WebSearch.Timeout = 10000
	}
	if apis.Maps.GeocodeURL == "" {
		apis.Maps.GeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"
	}
	if apis.Maps.Timeout == 0 {
		apis.Maps.Timeout = 10000
	}
	if apis.Weather.BaseURL == "" {
		apis.Weather.BaseURL = "https://weather.googleapis.com/v1"
	}
	if apis.Weather.LanguageCode == "" {
		apis.Weather.LanguageCode = "en-US"
	}
	if apis.Weather.Timeout == 0 {
		apis.Weather.Timeout = 10000
	}
	if apis.Soil.BaseURL == "" {
		apis.Soil.BaseURL = "https://api.openepi.io"
	}
	if apis.Soil.Timeout == 0 {
		apis.Soil.Timeout = 15000
	}
	if apis.Market.Site == "" {
		apis.Market.Site = "commodityonline.com"
	}
	if len(apis.Schemes.Domains) == 0 {
		apis.Schemes.Domains = []string{"gov.in", "nic.in", "org.in"}
	}
	if len(apis.Schemes.Templates) == 0 {
		apis.Schemes.Templates = DefaultSchemeTemplates()
	}

	if cfg.Routing.TimeZone == "" {
		cfg.Routing.TimeZone = "Asia/Kolkata"
	}

	if cfg.Observability.ServiceName == "" {
		cfg.Observability.ServiceName = cfg.App.Name
	}
	if cfg.Observability.HTTPAddress == "" {
		cfg.Observability.HTTPAddress = ":8080"
	}

	if cfg.RegistryPath == "" {
		cfg.RegistryPath = "configs/activity-registry.json"
	}
}

// DefaultSchemeTemplates is the built-in scheme fallback table.
func DefaultSchemeTemplates() []SchemeTemplate {
	return []SchemeTemplate{
		{
			Key:        "pmksy",
			Keywords:   []string{"pmksy", "pradhan mantri krishi sinchayee", "per drop more crop"},
			Name:       "Pradhan Mantri Krishi Sinchayee Yojana",
			TemplateID: "scheme-pmksy",
			Link:       "https://pmksy.gov.in",
		},
		{
			Key:        "drip irrigation",
			Keywords:   []string{"drip irrigation", "drip", "sprinkler", "micro irrigation"},
			Name:       "PMKSY Per Drop More Crop (Micro Irrigation)",
			TemplateID: "scheme-micro-irrigation",
			Link:       "https://pmksy.gov.in/microirrigation/index.aspx",
		},
		{
			Key:        "kcc",
			Keywords:   []string{"kcc", "kisan credit card", "crop loan"},
			Name:       "Kisan Credit Card",
			TemplateID: "scheme-kcc",
			Link:       "https://www.myscheme.gov.in/schemes/kcc",
		},
		{
			Key:        "midh",
			Keywords:   []string{"midh", "horticulture mission", "integrated development of horticulture"},
			Name:       "Mission for Integrated Development of Horticulture",
			TemplateID: "scheme-midh",
			Link:       "https://midh.gov.in",
		},
		{
			Key:        "pm-kisan",
			Keywords:   []string{"pm-kisan", "pm kisan", "pmkisan", "kisan samman nidhi"},
			Name:       "PM Kisan Samman Nidhi",
			TemplateID: "scheme-pm-kisan",
			Link:       "https://pmkisan.gov.in",
		},
		{
			Key:        "pmfby",
			Keywords:   []string{"pmfby", "fasal bima", "crop insurance"},
			Name:       "Pradhan Mantri Fasal Bima Yojana",
			TemplateID: "scheme-pmfby",
			Link:       "https://pmfby.gov.in",
		},
		{
			Key:        "smam",
			Keywords:   []string{"smam", "farm machinery", "tractor subsidy", "agricultural mechanization"},
			Name:       "Sub-Mission on Agricultural Mechanization",
			TemplateID: "scheme-smam",
			Link:       "https://agrimachinery.nic.in",
		},
	}
}

// validateConfig rejects malformed values. Missing API credentials are
// reported by the components that need them, at call time.
func validateConfig(cfg *Config) error {
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", cfg.Logging.Level)
	}
	if _, err := time.LoadLocation(cfg.Routing.TimeZone); err != nil {
		return fmt.Errorf("routing.time_zone %q: %w", cfg.Routing.TimeZone, err)
	}
	for i, tpl := range cfg.APIs.Schemes.Templates {
		if tpl.Key == "" || tpl.Link == "" {
			return fmt.Errorf("apis.schemes.templates[%d] needs key and link", i)
		}
	}
	return nil
}

// RequireBroker is checked by the worker manager only.
func (c *Config) RequireBroker() error {
	if c.Camunda.BrokerAddress == "" {
		return fmt.Errorf("camunda.broker_address is required")
	}
	return nil
}

func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

func GetWorkerConfig(cfg *Config, workerName string) WorkerConfig {
	if worker, exists := cfg.Workers[workerName]; exists {
		return worker
	}
	return WorkerConfig{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       30000,
	}
}

func IsWorkerEnabled(cfg *Config, workerName string) bool {
	if worker, exists := cfg.Workers[workerName]; exists {
		return worker.Enabled
	}
	return true
}
