package reconciler

import (
	"errors"
	"testing"

	"github.com/esanchezm/megaverse/internal/megaverse"
)

func TestReconcilerMetrics_NewInstance(t *testing.T) {
	metrics := NewReconcilerMetrics()
	if metrics == nil {
		t.Fatal("expected non-nil metrics instance")
	}
	if metrics.kindMetrics == nil {
		t.Error("expected kindMetrics map to be initialized")
	}
}

func TestReconcilerMetrics_RecordSet(t *testing.T) {
	metrics := NewReconcilerMetrics()

	metrics.RecordSet(megaverse.KindSoloon, 1, 2)

	summary := metrics.GetSummary()
	if summary.TotalSets != 1 {
		t.Errorf("expected TotalSets=1, got %d", summary.TotalSets)
	}

	km, ok := metrics.GetKindMetrics(megaverse.KindSoloon)
	if !ok {
		t.Fatal("expected SOLOON metrics to exist")
	}
	if km.Sets != 1 {
		t.Errorf("expected Sets=1, got %d", km.Sets)
	}
	if km.LastCallAt.IsZero() {
		t.Error("expected LastCallAt to be set")
	}
}

func TestReconcilerMetrics_RecordClean(t *testing.T) {
	metrics := NewReconcilerMetrics()

	metrics.RecordClean(megaverse.KindPolyanet, 0, 0)
	metrics.RecordClean(megaverse.KindCometh, 0, 0)

	summary := metrics.GetSummary()
	if summary.TotalCleans != 2 {
		t.Errorf("expected TotalCleans=2, got %d", summary.TotalCleans)
	}
	if len(summary.PerKind) != 2 {
		t.Fatalf("expected 2 kinds, got %d", len(summary.PerKind))
	}
	if summary.PerKind[0].Kind != "POLYANET" || summary.PerKind[1].Kind != "COMETH" {
		t.Errorf("expected kinds in declaration order, got %s, %s", summary.PerKind[0].Kind, summary.PerKind[1].Kind)
	}
}

func TestReconcilerMetrics_RecordFailure(t *testing.T) {
	metrics := NewReconcilerMetrics()

	metrics.RecordFailure(megaverse.KindCometh, 3, 4, errors.New("503 Service Unavailable"))

	summary := metrics.GetSummary()
	if summary.TotalFailures != 1 {
		t.Errorf("expected TotalFailures=1, got %d", summary.TotalFailures)
	}

	km, ok := metrics.GetKindMetrics(megaverse.KindCometh)
	if !ok {
		t.Fatal("expected COMETH metrics to exist")
	}
	if km.Failures != 1 {
		t.Errorf("expected Failures=1, got %d", km.Failures)
	}
	if km.LastFailureAt.IsZero() {
		t.Error("expected LastFailureAt to be set")
	}
	if km.LastError != "503 Service Unavailable" {
		t.Errorf("unexpected LastError %q", km.LastError)
	}
}

func TestReconcilerMetrics_RecordSkip(t *testing.T) {
	metrics := NewReconcilerMetrics()

	metrics.RecordSkip(0, 0, "BLACK_HOLE")

	summary := metrics.GetSummary()
	if summary.TotalSkipped != 1 {
		t.Errorf("expected TotalSkipped=1, got %d", summary.TotalSkipped)
	}
	if len(summary.PerKind) != 0 {
		t.Errorf("skips should not create per-kind entries, got %d", len(summary.PerKind))
	}
}

func TestReconcilerMetrics_UnknownKind(t *testing.T) {
	metrics := NewReconcilerMetrics()
	if _, ok := metrics.GetKindMetrics(megaverse.KindPolyanet); ok {
		t.Error("expected no metrics before any call")
	}
}
