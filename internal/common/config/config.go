package config

type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Redis         RedisConfig             `mapstructure:"redis"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	APIs          APIsConfig              `mapstructure:"apis"`
	Routing       RoutingConfig           `mapstructure:"routing"`
	Logging       LoggingConfig           `mapstructure:"logging"`
	Observability ObservabilityConfig     `mapstructure:"observability"`
	RegistryPath  string                  `mapstructure:"registry_path"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
	Insecure       bool   `mapstructure:"insecure"`
}

// RedisConfig backs the geocode cache. An empty address disables caching.
type RedisConfig struct {
	Address    string `mapstructure:"address"`
	Password   string `mapstructure:"password"`
	DB         int    `mapstructure:"db"`
	GeocodeTTL int    `mapstructure:"geocode_ttl"` // seconds
}

func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"` // milliseconds
}

type APIsConfig struct {
	WebSearch WebSearchConfig `mapstructure:"web_search"`
	Maps      MapsConfig      `mapstructure:"maps"`
	Weather   WeatherConfig   `mapstructure:"weather"`
	Soil      SoilConfig      `mapstructure:"soil"`
	Market    MarketConfig    `mapstructure:"market"`
	Schemes   SchemesConfig   `mapstructure:"schemes"`
}

type WebSearchConfig struct {
	BaseURL  string `mapstructure:"base_url"`
	APIKey   string `mapstructure:"api_key"`
	EngineID string `mapstructure:"engine_id"`
	Timeout  int    `mapstructure:"timeout"` // milliseconds
}

type MapsConfig struct {
	GeocodeURL string `mapstructure:"geocode_url"`
	APIKey     string `mapstructure:"api_key"`
	Timeout    int    `mapstructure:"timeout"`
}

type WeatherConfig struct {
	BaseURL      string `mapstructure:"base_url"`
	APIKey       string `mapstructure:"api_key"`
	LanguageCode string `mapstructure:"language_code"`
	Timeout      int    `mapstructure:"timeout"`
}

type SoilConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"`
}

type MarketConfig struct {
	Site string `mapstructure:"site"`
}

type SchemesConfig struct {
	Domains   []string         `mapstructure:"domains"`
	Templates []SchemeTemplate `mapstructure:"templates"`
}

// SchemeTemplate is one row of the scheme fallback policy table.
type SchemeTemplate struct {
	Key        string   `mapstructure:"key" json:"key"`
	Keywords   []string `mapstructure:"keywords" json:"keywords"`
	Name       string   `mapstructure:"name" json:"name"`
	TemplateID string   `mapstructure:"template_id" json:"templateId"`
	Link       string   `mapstructure:"link" json:"link"`
}

type RoutingConfig struct {
	ExtraPlaces []string `mapstructure:"extra_places"`
	TimeZone    string   `mapstructure:"time_zone"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ObservabilityConfig struct {
	ServiceName    string `mapstructure:"service_name"`
	JaegerEndpoint string `mapstructure:"jaeger_endpoint"`
	HTTPAddress    string `mapstructure:"http_address"`
}
