package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegister(t *testing.T) {
	t.Run("successful registration", func(t *testing.T) {
		m := New()
		reg := prometheus.NewRegistry()

		if err := m.Register(reg); err != nil {
			t.Fatalf("Register() returned error: %v", err)
		}

		m.ObserveCandidate(0.7)
		m.ObserveEncode("local", 2, nil)
		m.ObserveRanking(1.5)

		families, err := reg.Gather()
		if err != nil {
			t.Fatalf("Gather() returned error: %v", err)
		}

		expected := map[string]bool{
			MetricCandidatesRankedTotal: false,
			MetricEncodeRequestsTotal:   false,
			MetricEncodedTextsTotal:     false,
			MetricRankingDuration:       false,
			MetricTotalScore:            false,
		}
		for _, family := range families {
			if _, ok := expected[family.GetName()]; ok {
				expected[family.GetName()] = true
			}
		}
		for name, found := range expected {
			if !found {
				t.Errorf("metric %s not found in gathered metrics", name)
			}
		}
	})

	t.Run("duplicate registration fails", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		if err := New().Register(reg); err != nil {
			t.Fatalf("first Register() returned error: %v", err)
		}
		if err := New().Register(reg); err == nil {
			t.Fatal("second Register() should have returned an error")
		}
	})
}

func TestObserveEncode(t *testing.T) {
	m := New()

	m.ObserveEncode("gemini", 2, nil)
	m.ObserveEncode("gemini", 2, nil)
	m.ObserveEncode("gemini", 2, errors.New("quota"))

	if got := testutil.ToFloat64(m.encodeRequests.WithLabelValues("gemini", StatusSuccess)); got != 2 {
		t.Fatalf("expected 2 successful requests, got %v", got)
	}
	if got := testutil.ToFloat64(m.encodeRequests.WithLabelValues("gemini", StatusFailure)); got != 1 {
		t.Fatalf("expected 1 failed request, got %v", got)
	}
	if got := testutil.ToFloat64(m.encodedTexts.WithLabelValues("gemini")); got != 6 {
		t.Fatalf("expected 6 texts, got %v", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	m.ObserveCandidate(1)
	m.ObserveEncode("local", 1, nil)
	m.ObserveRanking(1)
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	reg := prometheus.NewRegistry()
	if err := m.Register(reg); err != nil {
		t.Fatalf("register: %v", err)
	}
	m.ObserveCandidate(0.5)

	path := filepath.Join(t.TempDir(), "ranker.prom")
	if err := WriteTextfile(path, reg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if !strings.Contains(string(data), MetricCandidatesRankedTotal+" 1") {
		t.Fatalf("expected counter in textfile, got:\n%s", data)
	}
}
