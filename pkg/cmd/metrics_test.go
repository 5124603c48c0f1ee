package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rcrowley/go-metrics"
	"github.com/rs/zerolog"
)

func TestMetricsReporter(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)
	ctx := log.WithContext(context.Background())

	registry := metrics.NewRegistry()
	metrics.GetOrRegisterCounter("github.requests", registry).Inc(3)
	metrics.GetOrRegisterTimer("github.request.duration", registry).Update(20 * time.Millisecond)

	metricsReporter(registry)(ctx)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 log lines, got %d: %s", len(lines), buf.String())
	}

	// Metrics are reported in name order
	if !strings.Contains(lines[0], "github.request.duration") {
		t.Errorf("want timer first, got %s", lines[0])
	}
	if !strings.Contains(lines[1], `"count":3`) {
		t.Errorf("want counter value, got %s", lines[1])
	}
}
