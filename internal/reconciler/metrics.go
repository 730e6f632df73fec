package reconciler

import (
	"sort"
	"sync"
	"time"

	"github.com/esanchezm/megaverse/internal/megaverse"
	"github.com/esanchezm/megaverse/pkg/logging"
)

// ReconcilerMetrics tracks the calls a reconciler issued, per object kind.
//
// A single run is sequential, but the metrics may be read from another
// goroutine (for example to render progress), so access is locked.
type ReconcilerMetrics struct {
	mu sync.RWMutex

	kindMetrics map[megaverse.Kind]*kindMetrics

	totalSets     int64
	totalCleans   int64
	totalFailures int64
	totalSkipped  int64
}

// kindMetrics holds call counters for one object kind.
type kindMetrics struct {
	Kind          megaverse.Kind
	Sets          int64
	Cleans        int64
	Failures      int64
	LastCallAt    time.Time
	LastFailureAt time.Time
	LastError     string
}

// NewReconcilerMetrics creates a new ReconcilerMetrics instance.
func NewReconcilerMetrics() *ReconcilerMetrics {
	return &ReconcilerMetrics{
		kindMetrics: make(map[megaverse.Kind]*kindMetrics),
	}
}

// getOrCreateKindMetrics returns existing metrics for a kind or creates new ones.
func (m *ReconcilerMetrics) getOrCreateKindMetrics(kind megaverse.Kind) *kindMetrics {
	if metrics, exists := m.kindMetrics[kind]; exists {
		return metrics
	}

	metrics := &kindMetrics{Kind: kind}
	m.kindMetrics[kind] = metrics
	return metrics
}

// RecordSet records a successful create.
func (m *ReconcilerMetrics) RecordSet(kind megaverse.Kind, row, col int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	metrics := m.getOrCreateKindMetrics(kind)
	metrics.Sets++
	metrics.LastCallAt = time.Now()
	m.totalSets++

	logging.Debug("ReconcilerMetrics", "Set %s at %d, %d", kind, row, col)
}

// RecordClean records a successful delete.
func (m *ReconcilerMetrics) RecordClean(kind megaverse.Kind, row, col int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	metrics := m.getOrCreateKindMetrics(kind)
	metrics.Cleans++
	metrics.LastCallAt = time.Now()
	m.totalCleans++

	logging.Debug("ReconcilerMetrics", "Cleaned %s at %d, %d", kind, row, col)
}

// RecordFailure records a call that failed after retries.
func (m *ReconcilerMetrics) RecordFailure(kind megaverse.Kind, row, col int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	metrics := m.getOrCreateKindMetrics(kind)
	metrics.Failures++
	metrics.LastCallAt = now
	metrics.LastFailureAt = now
	if err != nil {
		metrics.LastError = err.Error()
	}
	m.totalFailures++

	logging.Warn("ReconcilerMetrics", "Call for %s at %d, %d failed (failures: %d)", kind, row, col, metrics.Failures)
}

// RecordSkip records a goal cell skipped because its token is unknown.
func (m *ReconcilerMetrics) RecordSkip(row, col int, token string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalSkipped++
	logging.Debug("ReconcilerMetrics", "Skipped %q at %d, %d", token, row, col)
}

// ReconcilerMetricsSummary provides a summary of reconciliation metrics.
type ReconcilerMetricsSummary struct {
	TotalSets     int64            `json:"total_sets"`
	TotalCleans   int64            `json:"total_cleans"`
	TotalFailures int64            `json:"total_failures"`
	TotalSkipped  int64            `json:"total_skipped"`
	PerKind       []KindMetricView `json:"per_kind"`
}

// KindMetricView is a read-only view of one kind's counters.
type KindMetricView struct {
	Kind          string    `json:"kind"`
	Sets          int64     `json:"sets"`
	Cleans        int64     `json:"cleans"`
	Failures      int64     `json:"failures"`
	LastCallAt    time.Time `json:"last_call_at,omitempty"`
	LastFailureAt time.Time `json:"last_failure_at,omitempty"`
	LastError     string    `json:"last_error,omitempty"`
}

// GetSummary returns a snapshot of all counters, kinds in declaration order.
func (m *ReconcilerMetrics) GetSummary() ReconcilerMetricsSummary {
	m.mu.RLock()
	defer m.mu.RUnlock()

	summary := ReconcilerMetricsSummary{
		TotalSets:     m.totalSets,
		TotalCleans:   m.totalCleans,
		TotalFailures: m.totalFailures,
		TotalSkipped:  m.totalSkipped,
		PerKind:       make([]KindMetricView, 0, len(m.kindMetrics)),
	}

	kinds := make([]megaverse.Kind, 0, len(m.kindMetrics))
	for k := range m.kindMetrics {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	for _, k := range kinds {
		km := m.kindMetrics[k]
		summary.PerKind = append(summary.PerKind, KindMetricView{
			Kind:          km.Kind.String(),
			Sets:          km.Sets,
			Cleans:        km.Cleans,
			Failures:      km.Failures,
			LastCallAt:    km.LastCallAt,
			LastFailureAt: km.LastFailureAt,
			LastError:     km.LastError,
		})
	}
	return summary
}

// GetKindMetrics returns the view for one kind, if any call was recorded.
func (m *ReconcilerMetrics) GetKindMetrics(kind megaverse.Kind) (KindMetricView, bool) {
	for _, v := range m.GetSummary().PerKind {
		if v.Kind == kind.String() {
			return v, true
		}
	}
	return KindMetricView{}, false
}
