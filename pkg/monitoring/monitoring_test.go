package monitoring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

func TestTraceResourceCarriesDeploymentEnvironment(t *testing.T) {
	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName("cc-order"),
		semconv.DeploymentEnvironment("staging"),
		semconv.CloudAccountID("crave-project"),
	))
	require.NoError(t, err)

	set := res.Set()

	v, ok := set.Value(attribute.Key("deployment.environment"))
	require.True(t, ok)
	assert.Equal(t, "staging", v.AsString())

	v, ok = set.Value(attribute.Key("service.name"))
	require.True(t, ok)
	assert.Equal(t, "cc-order", v.AsString())
}

func TestStopWithoutStartIsNoop(t *testing.T) {
	m := NewOpenTelemetry("cc-order", "test", "crave-project")
	m.Stop(context.Background())
}
