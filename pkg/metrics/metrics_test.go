package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

func TestCounter(t *testing.T) {
	t.Run("without labels", func(t *testing.T) {
		r := NewRegistry()
		c := r.NewCounter("test_counter", "A test counter")

		_ = c.Inc()
		_ = c.Inc()
		_ = c.Add(3)

		samples := c.Collect()
		if len(samples) != 1 {
			t.Fatalf("expected 1 sample, got %d", len(samples))
		}
		if samples[0].Value != 5 {
			t.Errorf("expected value 5, got %f", samples[0].Value)
		}
	})

	t.Run("with labels", func(t *testing.T) {
		r := NewRegistry()
		c := r.NewCounter("ops", "Operations", "operation", "outcome")

		vec, err := c.WithLabels("locations/GetLocation", "ok")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_ = vec.Inc()
		vec, _ = c.WithLabels("locations/GetLocation", "ok")
		_ = vec.Inc()
		vec, _ = c.WithLabels("tariffs/PutTariff", "error")
		_ = vec.Add(5)

		samples := c.Collect()
		if len(samples) != 2 {
			t.Fatalf("expected 2 samples, got %d", len(samples))
		}
		found := make(map[string]float64)
		for _, s := range samples {
			found[s.Labels["operation"]+"_"+s.Labels["outcome"]] = s.Value
		}
		if found["locations/GetLocation_ok"] != 2 {
			t.Errorf("expected GetLocation ok=2, got %f", found["locations/GetLocation_ok"])
		}
		if found["tariffs/PutTariff_error"] != 5 {
			t.Errorf("expected PutTariff error=5, got %f", found["tariffs/PutTariff_error"])
		}
	})

	t.Run("wrong label count returns error", func(t *testing.T) {
		r := NewRegistry()
		c := r.NewCounter("labeled", "Labeled", "a", "b")

		_, err := c.WithLabels("only-one")
		if !errors.Is(err, ErrLabelCountMismatch) {
			t.Errorf("expected ErrLabelCountMismatch, got %v", err)
		}
	})

	t.Run("negative add returns error", func(t *testing.T) {
		r := NewRegistry()
		c := r.NewCounter("neg", "Negative")

		if err := c.Add(-1); !errors.Is(err, ErrNegativeCounterValue) {
			t.Errorf("expected ErrNegativeCounterValue, got %v", err)
		}
	})
}

func TestGauge(t *testing.T) {
	r := NewRegistry()
	g := r.NewGauge("in_flight", "In flight", "operation")

	vec, err := g.WithLabels("sessions/GetSession")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vec.Inc()
	vec.Inc()
	vec.Dec()
	if vec.Value() != 1 {
		t.Errorf("expected 1, got %f", vec.Value())
	}
	vec.Dec()
	vec.Dec()
	if got := g.Collect()[0].Value; got != -1 {
		t.Errorf("expected -1, got %f", got)
	}
}

func TestHistogram(t *testing.T) {
	r := NewRegistry()
	h := r.NewHistogram("duration_seconds", "Duration", []float64{1, 0.1, 0.5})

	vec, err := h.WithLabels()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vec.Observe(0.05)
	vec.Observe(0.3)
	vec.Observe(0.7)
	vec.Observe(5)

	if vec.Count() != 4 {
		t.Errorf("expected count 4, got %d", vec.Count())
	}

	want := map[string]float64{"0.1": 1, "0.5": 2, "1": 3, "+Inf": 4}
	var order []string
	for _, s := range h.Collect() {
		switch s.Name {
		case "duration_seconds_bucket":
			le := s.Labels["le"]
			order = append(order, le)
			if s.Value != want[le] {
				t.Errorf("bucket le=%s: expected %f, got %f", le, want[le], s.Value)
			}
		case "duration_seconds_sum":
			if s.Value < 6.04 || s.Value > 6.06 {
				t.Errorf("expected sum 6.05, got %f", s.Value)
			}
		case "duration_seconds_count":
			if s.Value != 4 {
				t.Errorf("expected count 4, got %f", s.Value)
			}
		}
	}
	if strings.Join(order, ",") != "0.1,0.5,1,+Inf" {
		t.Errorf("buckets out of order: %v", order)
	}
}

func TestRegistry_Handler(t *testing.T) {
	r := NewRegistry()

	c := r.NewCounter("test_requests_total", "Total requests", "method")
	g := r.NewGauge("test_active", "Active items")
	h := r.NewHistogram("test_duration_seconds", "Duration", []float64{0.1, 1.0})

	vec, _ := c.WithLabels("GET")
	_ = vec.Inc()
	vec, _ = c.WithLabels("POST")
	_ = vec.Add(5)
	gv, _ := g.WithLabels()
	gv.Inc()
	gv.Inc()
	hv, _ := h.WithLabels()
	hv.Observe(0.5)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()

	r.Handler().ServeHTTP(rec, req)

	resp := rec.Result()
	body, _ := io.ReadAll(resp.Body)
	output := string(body)

	contentType := resp.Header.Get("Content-Type")
	if contentType != "text/plain; version=0.0.4; charset=utf-8" {
		t.Errorf("unexpected Content-Type: %s", contentType)
	}

	expectedLines := []string{
		"# HELP test_requests_total Total requests",
		"# TYPE test_requests_total counter",
		`test_requests_total{method="GET"} 1`,
		`test_requests_total{method="POST"} 5`,
		"# TYPE test_active gauge",
		"test_active 2",
		"# TYPE test_duration_seconds histogram",
		`test_duration_seconds_bucket{le="0.1"} 0`,
		`test_duration_seconds_bucket{le="1"} 1`,
		`test_duration_seconds_bucket{le="+Inf"} 1`,
		"test_duration_seconds_sum 0.5",
		"test_duration_seconds_count 1",
	}
	for _, expected := range expectedLines {
		if !strings.Contains(output, expected) {
			t.Errorf("output missing expected line: %s", expected)
		}
	}
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.NewCounter("dup", "first")

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate metric name")
		}
	}()
	r.NewGauge("dup", "second")
}

func TestRegistry_WriteToSkipsEmpty(t *testing.T) {
	r := NewRegistry()
	r.NewCounter("never_used", "Never incremented", "operation")

	var sb strings.Builder
	n, err := r.WriteTo(&sb)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 || sb.Len() != 0 {
		t.Errorf("expected no output for empty metrics, got %q", sb.String())
	}
}

func TestConcurrency(t *testing.T) {
	r := NewRegistry()
	c := r.NewCounter("concurrent_counter", "Test counter", "worker")
	h := r.NewHistogram("concurrent_histogram", "Test histogram", []float64{1, 10, 100})

	var wg sync.WaitGroup
	workers := 50
	iterations := 1000

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				vec, _ := c.WithLabels("worker")
				_ = vec.Inc()
				hv, _ := h.WithLabels()
				hv.Observe(float64(j % 50))
			}
		}()
	}
	wg.Wait()

	if got := c.Collect()[0].Value; got != float64(workers*iterations) {
		t.Errorf("expected %d, got %f", workers*iterations, got)
	}
	hv, _ := h.WithLabels()
	if hv.Count() != uint64(workers*iterations) {
		t.Errorf("expected histogram count %d, got %d", workers*iterations, hv.Count())
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{42, "42"},
		{0.5, "0.5"},
		{-3, "-3"},
	}
	for _, tt := range tests {
		if got := formatFloat(tt.in); got != tt.want {
			t.Errorf("formatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapeLabelValue(t *testing.T) {
	if got := escapeLabelValue("a\"b\\c\nd"); got != `a\"b\\c\nd` {
		t.Errorf("escapeLabelValue = %q", got)
	}
}

func BenchmarkCounterWithLabels(b *testing.B) {
	r := NewRegistry()
	c := r.NewCounter("bench_labeled", "Bench", "operation")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		vec, _ := c.WithLabels("locations/GetLocation")
		_ = vec.Inc()
	}
}
