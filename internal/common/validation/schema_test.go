package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "agri-saarathi/internal/common/errors"
	"agri-saarathi/pkg/registry"
)

func testRegistry() *registry.ActivityRegistry {
	return &registry.ActivityRegistry{Activities: []registry.Activity{{
		ID:       "market-price",
		TaskType: "market-price",
		InputSchema: map[string]interface{}{
			"type":     "object",
			"required": []interface{}{"question", "location"},
			"properties": map[string]interface{}{
				"question": map[string]interface{}{"type": "string", "minLength": 1},
				"location": map[string]interface{}{"type": "string", "minLength": 1},
			},
		},
	}}}
}

type marketInput struct {
	Question string `json:"question"`
	Location string `json:"location"`
}

func TestDecodeJob(t *testing.T) {
	v, err := NewValidator(testRegistry())
	require.NoError(t, err)

	tests := []struct {
		name      string
		taskType  string
		variables string
		wantErr   bool
	}{
		{"valid", "market-price", `{"question":"tomato price","location":"Coimbatore","extra":1}`, false},
		{"missing location", "market-price", `{"question":"tomato price"}`, true},
		{"empty question", "market-price", `{"question":"","location":"Salem"}`, true},
		{"wrong type", "market-price", `{"question":5,"location":"Salem"}`, true},
		{"not json", "market-price", `{question`, true},
		{"no schema registered", "current-time", `{}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in marketInput
			err := v.DecodeJob(tt.taskType, tt.variables, &in)
			if tt.wantErr {
				assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidInput), "got %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDecodeJob_ReportsFields(t *testing.T) {
	v, err := NewValidator(testRegistry())
	require.NoError(t, err)

	var in marketInput
	err = v.DecodeJob("market-price", `{"question":"onion rate"}`, &in)

	require.Error(t, err)
	assert.Contains(t, apperrors.AsStandard(err).Details, "location")
}

func TestNilValidatorOnlyDecodes(t *testing.T) {
	var v *Validator
	var in marketInput

	require.NoError(t, v.DecodeJob("market-price", `{"question":"q","location":"Erode"}`, &in))
	assert.Equal(t, "Erode", in.Location)
	assert.NoError(t, v.DecodeJob("market-price", "", &in))
}

func TestNewValidator_RejectsBrokenSchema(t *testing.T) {
	reg := &registry.ActivityRegistry{Activities: []registry.Activity{{
		TaskType:    "bad",
		InputSchema: map[string]interface{}{"type": 12},
	}}}

	_, err := NewValidator(reg)
	assert.Error(t, err)
}
