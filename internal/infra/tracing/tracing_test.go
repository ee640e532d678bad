//go:build unit

package tracing

import (
	"context"
	"testing"

	"github.com/deanb221/caravan/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOTLPEndpoint(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"tempo:4318", "tempo:4318"},
		{"http://tempo:4318", "tempo:4318"},
		{"https://collector.example.com", "collector.example.com:4318"},
		{"  http://localhost:14318  ", "localhost:14318"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseOTLPEndpoint(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSpanContextFromRequestID(t *testing.T) {
	sc, ok := spanContextFromRequestID("4bf92f3577b34da6a3ce929d0e0e4736")
	require.True(t, ok)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", sc.TraceID().String())
	assert.Equal(t, "a3ce929d0e0e4736", sc.SpanID().String())
	assert.True(t, sc.IsRemote())

	_, ok = spanContextFromRequestID("short")
	assert.False(t, ok)
	_, ok = spanContextFromRequestID("zzzz2f3577b34da6a3ce929d0e0e4736")
	assert.False(t, ok)
}

func TestInit_DisabledWithoutEndpoint(t *testing.T) {
	shutdown, err := Init(context.Background(), config.TracingConfig{ServiceName: "test"})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
