package health

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

type fakeSource struct {
	status Status
}

func (f *fakeSource) Snapshot() Status { return f.status }

func TestHandleHealth(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		expect string
	}{
		{"online good", Status{Online: true, Quality: "good"}, "healthy"},
		{"online moderate", Status{Online: true, Quality: "moderate"}, "healthy"},
		{"online poor", Status{Online: true, Quality: "poor"}, "degraded"},
		{"offline", Status{Online: false, Quality: "good"}, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServer(&fakeSource{status: tt.status}, 0)

			rec := httptest.NewRecorder()
			s.handleHealth(rec, httptest.NewRequest("GET", "/health", nil))

			if rec.Code != 200 {
				t.Fatalf("status code = %d, want 200", rec.Code)
			}
			var got Status
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if got.Status != tt.expect {
				t.Errorf("status = %q, want %q", got.Status, tt.expect)
			}
		})
	}
}
