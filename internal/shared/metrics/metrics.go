package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	unlockAttemptsTotal  atomic.Uint64
	unlockSuccessesTotal atomic.Uint64
	unlockFailuresTotal  atomic.Uint64

	pageRenders    = newCounterVec()
	renderDuration = newHistogram([]float64{1, 5, 10, 25, 50, 100, 250, 500, 1000})
)

// IncUnlockAttempt increments the unlock attempt counter.
func IncUnlockAttempt() {
	unlockAttemptsTotal.Add(1)
}

// IncUnlockSuccess increments the successful unlock counter.
func IncUnlockSuccess() {
	unlockSuccessesTotal.Add(1)
}

// IncUnlockFailure increments the failed unlock counter.
func IncUnlockFailure() {
	unlockFailuresTotal.Add(1)
}

// IncPageRender counts a rendered view for a locale.
func IncPageRender(view, locale string) {
	pageRenders.Inc(fmt.Sprintf("view=%q,lang=%q", view, locale))
}

// ObserveRenderDurationMs records a page render duration in milliseconds.
func ObserveRenderDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	renderDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounterVec(&buf, "page_renders_total", "Pages rendered by view and locale", pageRenders.Snapshot())
	writeCounter(&buf, "gate_unlock_attempts_total", "Total gate unlock attempts", unlockAttemptsTotal.Load())
	writeCounter(&buf, "gate_unlock_successes_total", "Total successful gate unlocks", unlockSuccessesTotal.Load())
	writeCounter(&buf, "gate_unlock_failures_total", "Total rejected gate unlocks", unlockFailuresTotal.Load())
	writeHistogram(&buf, "page_render_duration_ms", "Page render duration in milliseconds", renderDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

type counterVec struct {
	mu     sync.Mutex
	values map[string]uint64
}

func newCounterVec() *counterVec {
	return &counterVec{values: make(map[string]uint64)}
}

func (v *counterVec) Inc(labels string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.values[labels]++
}

func (v *counterVec) Snapshot() map[string]uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make(map[string]uint64, len(v.values))
	for k, n := range v.values {
		out[k] = n
	}
	return out
}

func writeCounterVec(buf *bytes.Buffer, name, help string, values map[string]uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(buf, "%s{%s} %d\n", name, k, values[k])
	}
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// SinceMillis returns the milliseconds elapsed since start.
func SinceMillis(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}
