package main

import (
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"terrasim/internal/app"
	"terrasim/internal/metrics"
)

func newTestLogger(w io.Writer) (*slog.Logger, error) {
	return app.NewLogger(w, "info")
}

func newTestExporter() *metrics.Exporter {
	return metrics.NewExporter(prometheus.NewRegistry(), "test")
}
