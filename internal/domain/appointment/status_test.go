package appointment

import (
	"testing"

	"github.com/hospitalhq/hospital-api/internal/httperr"
)

func TestParseStatus_Valid(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "completed", "cancelled"} {
		got, err := ParseStatus(s)
		if err != nil {
			t.Errorf("ParseStatus(%q): unexpected error %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseStatus(%q) = %q", s, got)
		}
	}
}

func TestParseStatus_Invalid(t *testing.T) {
	for _, s := range []string{"", "done", "PENDING", "Confirmed", "canceled"} {
		_, err := ParseStatus(s)
		if err == nil {
			t.Errorf("ParseStatus(%q): expected error", s)
			continue
		}
		if !httperr.IsBusiness(err, "invalid_status") {
			t.Errorf("ParseStatus(%q): expected invalid_status, got %v", s, err)
		}
	}
}

func TestInitialStatus(t *testing.T) {
	if InitialStatus() != StatusPending {
		t.Errorf("initial status = %q, want pending", InitialStatus())
	}
}
