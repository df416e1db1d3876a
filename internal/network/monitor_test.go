package network

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/notify"
)

type recordingSink struct {
	mu       sync.Mutex
	messages []string
}

func (s *recordingSink) Notify(message string, _ notify.Severity, _ notify.Options) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, message)
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

type fakeProber struct {
	delay time.Duration
	err   error
}

func (p *fakeProber) Fetch(ctx context.Context, _ string) ([]byte, error) {
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if p.err != nil {
		return nil, p.err
	}
	return []byte("pong"), nil
}

func newTestMonitor(p Prober, sink notify.Sink) *Monitor {
	return NewMonitor(Config{ProbeTarget: "covers/title_screen.jpg"}, p, sink, slog.Default())
}

func TestClassifyLatency(t *testing.T) {
	tests := []struct {
		latency time.Duration
		expect  Quality
	}{
		{500 * time.Millisecond, QualityGood},
		{999 * time.Millisecond, QualityGood},
		{1000 * time.Millisecond, QualityModerate},
		{2000 * time.Millisecond, QualityModerate},
		{2999 * time.Millisecond, QualityModerate},
		{3000 * time.Millisecond, QualityPoor},
		{4000 * time.Millisecond, QualityPoor},
	}

	for _, tt := range tests {
		if got := classifyLatency(tt.latency); got != tt.expect {
			t.Errorf("classifyLatency(%v) = %v, want %v", tt.latency, got, tt.expect)
		}
	}
}

func TestMonitor_ProbeFailureIsPoor(t *testing.T) {
	sink := &recordingSink{}
	m := newTestMonitor(&fakeProber{err: errors.New("connection refused")}, sink)

	m.RunProbe(context.Background())

	if got := m.Quality(); got != QualityPoor {
		t.Errorf("quality = %v, want poor", got)
	}
	if !m.ShouldReduceAssetQuality() {
		t.Error("expected reduced asset quality under poor link")
	}
	if !m.ShouldUseAggressiveCaching() {
		t.Error("expected aggressive caching under poor link")
	}
}

func TestMonitor_ProbeTimeoutIsPoor(t *testing.T) {
	sink := &recordingSink{}
	m := NewMonitor(
		Config{ProbeTarget: "covers/title_screen.jpg", ProbeTimeout: 30 * time.Millisecond},
		&fakeProber{delay: time.Second}, sink, slog.Default())

	m.RunProbe(context.Background())

	if got := m.Quality(); got != QualityPoor {
		t.Errorf("quality = %v, want poor", got)
	}
}

func TestMonitor_PoorAdvisoryFiresOnce(t *testing.T) {
	sink := &recordingSink{}
	m := newTestMonitor(&fakeProber{err: errors.New("down")}, sink)

	m.RunProbe(context.Background())
	m.RunProbe(context.Background())
	m.RunProbe(context.Background())

	if sink.count() != 1 {
		t.Fatalf("advisory fired %d times, want 1", sink.count())
	}

	// Quality recovery re-arms the advisory.
	m.setQuality(QualityGood)
	m.setQuality(QualityPoor)
	if sink.count() != 2 {
		t.Errorf("advisory after recovery fired %d times total, want 2", sink.count())
	}
}

func TestMonitor_ConnectivityTransitions(t *testing.T) {
	sink := &recordingSink{}
	m := newTestMonitor(&fakeProber{}, sink)

	if !m.Online() {
		t.Fatal("monitor must start online")
	}

	m.SetOnline(false)
	m.SetOnline(false) // no duplicate notification
	if !m.ShouldUseAggressiveCaching() {
		t.Error("offline must force aggressive caching")
	}

	m.SetOnline(true)

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.messages) != 2 {
		t.Fatalf("got %d notifications, want 2: %v", len(sink.messages), sink.messages)
	}
	if sink.messages[0] != "You are offline — continuing with cached assets." {
		t.Errorf("offline copy = %q", sink.messages[0])
	}
	if sink.messages[1] != "Connection restored." {
		t.Errorf("restored copy = %q", sink.messages[1])
	}
}

func TestMonitor_GoodLinkHasNoHints(t *testing.T) {
	sink := &recordingSink{}
	m := newTestMonitor(&fakeProber{}, sink)

	m.RunProbe(context.Background())

	if m.Quality() != QualityGood {
		t.Fatalf("quality = %v, want good", m.Quality())
	}
	if m.ShouldUseAggressiveCaching() || m.ShouldReduceAssetQuality() {
		t.Error("good online link must not degrade anything")
	}
}
