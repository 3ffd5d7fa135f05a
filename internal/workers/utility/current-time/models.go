// internal/workers/utility/current-time/models.go
package currenttime

type Input struct {
	Question string `json:"question,omitempty"`
}

type Output struct {
	TimeZone  string `json:"timeZone"`
	Timestamp string `json:"timestamp"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Weekday   string `json:"weekday"`
	Reply     string `json:"reply"`
}
