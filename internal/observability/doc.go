// Package observability holds the logging and metrics contracts shared by the
// API client and the sync stores.
//
// Logger matches the key/value method set of *slog.Logger so a slog logger can
// be passed directly. MetricsRecorder receives one Observe call per fetch or
// mutation; recorders are provided for expvar and Prometheus.
package observability
