package soil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "agri-saarathi/internal/common/errors"
	"agri-saarathi/internal/models"
)

var ooty = models.Coordinates{Latitude: 11.4102, Longitude: 76.695}

func newClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(&Config{BaseURL: server.URL + "/", Timeout: 2 * time.Second})
}

func TestSoilType(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/soil/type", r.URL.Path)
		assert.Equal(t, "11.410200", r.URL.Query().Get("lat"))
		assert.Equal(t, "76.695000", r.URL.Query().Get("lon"))
		assert.Equal(t, "3", r.URL.Query().Get("top_k"))
		_, _ = w.Write([]byte(`{"type":"Feature","properties":{"most_probable_soil_type":"Acrisols",
			"probabilities":[{"soil_type":"Acrisols","probability":42},{"soil_type":"Nitisols","probability":21},{"soil_type":"Ferralsols","probability":12}]}}`))
	})

	got, err := c.SoilType(context.Background(), ooty, 3)

	require.NoError(t, err)
	assert.Equal(t, "Acrisols", got.MostProbable)
	require.Len(t, got.Probabilities, 3)
	assert.Equal(t, models.SoilTypeProbability{SoilType: "Nitisols", Probability: 21}, got.Probabilities[1])
}

func TestSoilProperties(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/soil/property", r.URL.Path)
		assert.Equal(t, []string{"0-5cm", "100-200cm"}, q["depths"])
		assert.Equal(t, []string{"bdod", "phh2o"}, q["properties"])
		assert.Equal(t, []string{"mean", "Q0.05"}, q["values"])
		_, _ = w.Write([]byte(`{"properties":{"layers":[
			{"code":"bdod","name":"Bulk density","unit_measure":{"mapped_units":"cg/cm³"},
			 "depths":[{"label":"0-5cm","values":{"mean":118,"Q0.05":95}},{"label":"100-200cm","values":{"mean":140,"Q0.05":null}}]},
			{"code":"phh2o","name":"pH water","unit_measure":{"mapped_units":"pH*10"},
			 "depths":[{"label":"0-5cm","values":{"mean":55,"Q0.05":47}}]}]}}`))
	})

	layers, err := c.SoilProperties(context.Background(), ooty, DefaultPropertyQuery)

	require.NoError(t, err)
	require.Len(t, layers, 2)
	assert.Equal(t, "Bulk density", layers[0].Name)
	assert.Equal(t, "cg/cm³", layers[0].Unit)
	require.NotNil(t, layers[0].Depths[0].Mean)
	assert.Equal(t, 118.0, *layers[0].Depths[0].Mean)
	assert.Equal(t, 95.0, *layers[0].Depths[0].Q05)
	assert.Nil(t, layers[0].Depths[1].Q05)
	assert.Equal(t, "pH water", layers[1].Name)
}

func TestSoilTypeSummary(t *testing.T) {
	box := ooty.BoundingBox()
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/soil/type/summary", r.URL.Path)
		assert.Equal(t, "76.645000", q.Get("min_lon"))
		assert.Equal(t, "76.745000", q.Get("max_lon"))
		assert.Equal(t, "11.400200", q.Get("min_lat"))
		assert.Equal(t, "11.420200", q.Get("max_lat"))
		_, _ = w.Write([]byte(`{"properties":{"summaries":[{"soil_type":"Acrisols","count":14},{"soil_type":"Cambisols","count":3}]}}`))
	})

	counts, err := c.SoilTypeSummary(context.Background(), box)

	require.NoError(t, err)
	assert.Equal(t, []models.SoilTypeCount{{SoilType: "Acrisols", Count: 14}, {SoilType: "Cambisols", Count: 3}}, counts)
}

func TestSoilTypeSummary_EmptyIsNotAnError(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"properties":{"summaries":[]}}`))
	})

	counts, err := c.SoilTypeSummary(context.Background(), ooty.BoundingBox())

	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestSoilType_UpstreamError(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":"lat out of range"}`))
	})

	_, err := c.SoilType(context.Background(), ooty, 3)

	require.Error(t, err)
	assert.Equal(t, "lat out of range", apperrors.AsStandard(err).Details)
}
