package registry

// ActivityRegistry describes the job workers of the farmer query process:
// the router, the specialists and the utilities.
type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

// Activity is one task type. Intents lists the router intents it answers;
// Upstreams names the external services it calls, using the same names as
// the upstream_calls_total metric.
type Activity struct {
	ID                   string                 `json:"id"`
	DisplayName          string                 `json:"displayName"`
	Description          string                 `json:"description"`
	Category             string                 `json:"category"`
	Version              string                 `json:"version"`
	TaskType             string                 `json:"taskType"`
	ImplementationStatus string                 `json:"implementationStatus"`
	Intents              []string               `json:"intents,omitempty"`
	Upstreams            []string               `json:"upstreams,omitempty"`
	InputSchema          map[string]interface{} `json:"inputSchema"`
	OutputSchema         map[string]interface{} `json:"outputSchema"`
	ErrorCodes           []string               `json:"errorCodes"`
	Timeout              string                 `json:"timeout"`
	Retries              int                    `json:"retries"`
	Tags                 []string               `json:"tags"`
}

// KnownUpstreams are the external services a worker may declare.
var KnownUpstreams = map[string]bool{
	"custom_search":  true,
	"geocoding":      true,
	"openepi_soil":   true,
	"google_weather": true,
}
