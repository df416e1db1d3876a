package retry

import (
	"testing"
	"time"
)

func TestPolicy_Delay(t *testing.T) {
	p := Policy{Base: 1000 * time.Millisecond, Cap: 5000 * time.Millisecond, MaxRetries: 2}

	tests := []struct {
		attempt int
		expect  time.Duration
	}{
		{0, 1000 * time.Millisecond},
		{1, 2000 * time.Millisecond},
		{2, 4000 * time.Millisecond},
		{3, 5000 * time.Millisecond}, // capped, would be 8000
		{10, 5000 * time.Millisecond},
	}

	for _, tt := range tests {
		if got := p.Delay(tt.attempt); got != tt.expect {
			t.Errorf("Delay(%d) = %v, want %v", tt.attempt, got, tt.expect)
		}
	}
}

func TestPolicy_DataProfileDelay(t *testing.T) {
	p := DataPolicy(3)

	tests := []struct {
		attempt int
		expect  time.Duration
	}{
		{0, 2 * time.Second},
		{1, 4 * time.Second},
		{2, 8 * time.Second},
		{3, 10 * time.Second}, // capped
	}

	for _, tt := range tests {
		if got := p.Delay(tt.attempt); got != tt.expect {
			t.Errorf("Delay(%d) = %v, want %v", tt.attempt, got, tt.expect)
		}
	}
}

func TestPolicy_ShouldRetry(t *testing.T) {
	p := AssetPolicy()

	if !p.ShouldRetry(0) {
		t.Error("expected retry allowed at 0 attempts")
	}
	if !p.ShouldRetry(1) {
		t.Error("expected retry allowed at 1 attempt")
	}
	if p.ShouldRetry(2) {
		t.Error("expected no retry at 2 attempts (MaxRetries=2)")
	}
}

func TestAssetPolicy_Defaults(t *testing.T) {
	p := AssetPolicy()
	if p.Base != time.Second || p.Cap != 5*time.Second || p.MaxRetries != 2 {
		t.Errorf("unexpected asset profile: %+v", p)
	}
}
