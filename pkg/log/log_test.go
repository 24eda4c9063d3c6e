package log

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous := logrus.StandardLogger().Out
	logrus.SetOutput(&buf)
	t.Cleanup(func() { logrus.SetOutput(previous) })
	return &buf
}

func TestForContext_CorrelationID(t *testing.T) {
	Setup("debug", "production")
	t.Cleanup(func() { Setup("debug", "development") })
	buf := captureOutput(t)

	ctx, id := WithCorrelationID(context.Background())
	require.NotEmpty(t, id)

	ForContext(ctx).Info("dashboard: teste")
	assert.Contains(t, buf.String(), "correlation_id="+id)
}

func TestWithJob(t *testing.T) {
	ctx := WithJob(context.Background(), "customer_sync")
	assert.True(t, strings.HasPrefix(GetCorrelationID(ctx), "customer_sync-"))
	assert.Empty(t, GetCorrelationID(context.Background()))
}

func TestWithFields_DevelopmentFilter(t *testing.T) {
	Setup("debug", "development")
	buf := captureOutput(t)

	L.WithFields(Fields{"path": "/v1/dashboard", "segredo": "x"}).Info("filtro")
	out := buf.String()
	assert.Contains(t, out, "path=/v1/dashboard")
	assert.NotContains(t, out, "segredo")
}

func TestSetup_InvalidLevel(t *testing.T) {
	Setup("barulhento", "development")
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
	Setup("debug", "development")
}
