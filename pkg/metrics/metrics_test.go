package metrics

import (
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	// Verify all metrics are initialized
	if r.OptimizerInvocationsTotal == nil {
		t.Error("OptimizerInvocationsTotal not initialized")
	}
	if r.OptimizerDuration == nil {
		t.Error("OptimizerDuration not initialized")
	}
	if r.MergesTotal == nil {
		t.Error("MergesTotal not initialized")
	}
	if r.MessagesSentTotal == nil {
		t.Error("MessagesSentTotal not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	// Should return the same instance
	r1 := DefaultRegistry()
	r2 := DefaultRegistry()

	if r1 != r2 {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordOptimizerRun(t *testing.T) {
	r := NewRegistry()

	r.RecordOptimizerRun("leaf", "success", 10*time.Millisecond)
	r.RecordOptimizerRun("leaf", "success", 20*time.Millisecond)
	r.RecordOptimizerRun("merge", "error", 5*time.Millisecond)

	counter, err := r.OptimizerInvocationsTotal.GetMetricWithLabelValues("leaf", "success")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if got := metric.GetCounter().GetValue(); got != 2 {
		t.Errorf("leaf/success invocations = %v, want 2", got)
	}
}

func TestRecordMerge(t *testing.T) {
	r := NewRegistry()

	r.RecordMerge(false, false, 3, 12)
	r.RecordMerge(true, false, 0, 0)
	r.RecordMerge(false, true, 0, 4)

	var metric dto.Metric
	if err := r.MergesTotal.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if got := metric.GetCounter().GetValue(); got != 3 {
		t.Errorf("merges = %v, want 3", got)
	}

	if err := r.MergeTrivialTotal.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if got := metric.GetCounter().GetValue(); got != 1 {
		t.Errorf("trivial merges = %v, want 1", got)
	}

	if err := r.MergeFallbackTotal.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if got := metric.GetCounter().GetValue(); got != 1 {
		t.Errorf("fallback merges = %v, want 1", got)
	}

	if err := r.MergeFlipsTotal.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if got := metric.GetCounter().GetValue(); got != 3 {
		t.Errorf("flips = %v, want 3", got)
	}
}

func TestRecordMessage(t *testing.T) {
	r := NewRegistry()

	r.RecordMessage("sent", "task", 128)
	r.RecordMessage("sent", "task", 64)
	r.RecordMessage("received", "result", 32)

	counter, err := r.MessagesSentTotal.GetMetricWithLabelValues("task")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if got := metric.GetCounter().GetValue(); got != 2 {
		t.Errorf("sent tasks = %v, want 2", got)
	}

	bytes, err := r.MessageBytesTotal.GetMetricWithLabelValues("sent")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	if err := bytes.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if got := metric.GetCounter().GetValue(); got != 192 {
		t.Errorf("sent bytes = %v, want 192", got)
	}
}

func TestGatherAllMetrics(t *testing.T) {
	r := NewRegistry()
	r.GlobalCutValue.Set(17.5)

	families, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	found := false
	for _, mf := range families {
		if mf.GetName() == "maxcut_global_cut_value" {
			found = true
			if got := mf.GetMetric()[0].GetGauge().GetValue(); got != 17.5 {
				t.Errorf("global cut gauge = %v, want 17.5", got)
			}
		}
	}
	if !found {
		t.Error("maxcut_global_cut_value not gathered")
	}
}
