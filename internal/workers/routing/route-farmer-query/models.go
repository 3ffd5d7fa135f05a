// internal/workers/routing/route-farmer-query/models.go
package routefarmerquery

import "agri-saarathi/internal/models"

type Input struct {
	Question string `json:"question"`
	ImageRef string `json:"imageRef,omitempty"`
	Location string `json:"location,omitempty"`
}

func (in Input) Query() models.Query {
	return models.Query{Text: in.Question, ImageRef: in.ImageRef, DeclaredLocation: in.Location}
}

type Output struct {
	RequestID        string        `json:"requestId"`
	Intent           models.Intent `json:"intent"`
	Action           models.Action `json:"action"`
	Specialist       string        `json:"specialist,omitempty"`
	ForwardedQuery   string        `json:"forwardedQuery,omitempty"`
	Location         string        `json:"location,omitempty"`
	ClarifyingPrompt string        `json:"clarifyingPrompt,omitempty"`
}
