package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNilObservabilityRecordsNothing(t *testing.T) {
	var o *Observability
	ctx := context.Background()

	assert.NotPanics(t, func() {
		o.RecordJobProcessed(ctx, "market-price", "success")
		o.RecordJobDuration(ctx, "market-price", time.Second)
		o.RecordRoute(ctx, "market", "clarify")
		o.RecordStage(ctx, "weather", "failed")
		o.Shutdown()
	})
}

func TestNewWithoutCollector(t *testing.T) {
	o := New(Options{ServiceName: "agri-saarathi-test"}, nil)
	defer o.Shutdown()

	assert.Nil(t, o.tracerProvider)
	require.NotNil(t, o.meterProvider)
	assert.NotPanics(t, func() {
		o.RecordRoute(context.Background(), "scheme", "delegate")
		o.RecordStage(context.Background(), "soil_type", "ok")
	})
}

func TestStartSpanAndEnd(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	_, ok := StartSpan(context.Background(), "stage.weather", attribute.String("stage", "weather"))
	End(ok, nil)
	_, failed := StartSpan(context.Background(), "stage.soil_type")
	End(failed, errors.New("HTTP 500"))
	End(nil, errors.New("ignored"))

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "stage.weather", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "HTTP 500", spans[1].Status().Description)
}
