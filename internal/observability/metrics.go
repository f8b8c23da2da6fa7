package observability

import (
	"context"
	"expvar"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// MetricsRecorder observes the outcome of one fetch or mutation.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

// NoopMetrics drops observations.
type NoopMetrics struct{}

func (NoopMetrics) Observe(context.Context, string, bool, time.Duration) {}

// Fanout forwards each observation to every recorder.
type Fanout []MetricsRecorder

func (f Fanout) Observe(ctx context.Context, operation string, success bool, duration time.Duration) {
	for _, r := range f {
		if r != nil {
			r.Observe(ctx, operation, success, duration)
		}
	}
}

var expvarSeq uint64

// ExpvarMetricsRecorder publishes per-operation sync totals as one expvar map:
//
//	{"tasks.fetch": {"success": 12, "error": 1, "duration_ms": 840.5}, ...}
//
// The map is served wherever expvar.Handler is mounted, e.g. /debug/vars.
type ExpvarMetricsRecorder struct {
	name string
	ops  *expvar.Map
	mu   sync.Mutex // serialises creation of per-operation maps
}

// NewExpvarMetricsRecorder publishes a recorder under name. An empty name
// gets a generated one; expvar panics on duplicate names.
func NewExpvarMetricsRecorder(name string) *ExpvarMetricsRecorder {
	if name == "" {
		name = fmt.Sprintf("santaos_sync_metrics_%d", atomic.AddUint64(&expvarSeq, 1))
	}
	return &ExpvarMetricsRecorder{name: name, ops: expvar.NewMap(name)}
}

// Name returns the expvar export name.
func (r *ExpvarMetricsRecorder) Name() string { return r.name }

// Observe implements MetricsRecorder.
func (r *ExpvarMetricsRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	if operation == "" {
		return
	}
	op := r.operation(operation)
	op.Add(statusLabel(success), 1)
	op.AddFloat("duration_ms", float64(duration)/float64(time.Millisecond))
}

// Count returns how many observations of operation had the given outcome.
func (r *ExpvarMetricsRecorder) Count(operation string, success bool) int64 {
	op, ok := r.ops.Get(operation).(*expvar.Map)
	if !ok {
		return 0
	}
	n, _ := op.Get(statusLabel(success)).(*expvar.Int)
	if n == nil {
		return 0
	}
	return n.Value()
}

// DurationMS returns the summed duration of operation in milliseconds.
func (r *ExpvarMetricsRecorder) DurationMS(operation string) float64 {
	op, ok := r.ops.Get(operation).(*expvar.Map)
	if !ok {
		return 0
	}
	f, _ := op.Get("duration_ms").(*expvar.Float)
	if f == nil {
		return 0
	}
	return f.Value()
}

func (r *ExpvarMetricsRecorder) operation(name string) *expvar.Map {
	if op, ok := r.ops.Get(name).(*expvar.Map); ok {
		return op
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if op, ok := r.ops.Get(name).(*expvar.Map); ok {
		return op
	}
	op := new(expvar.Map).Init()
	r.ops.Set(name, op)
	return op
}

func statusLabel(success bool) string {
	if success {
		return "success"
	}
	return "error"
}

var (
	_ MetricsRecorder = NoopMetrics{}
	_ MetricsRecorder = Fanout(nil)
	_ MetricsRecorder = (*ExpvarMetricsRecorder)(nil)
)
