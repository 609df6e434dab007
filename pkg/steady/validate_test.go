package steady

import (
	"testing"
	"time"
)

var validateNow = time.Date(2024, 6, 28, 12, 0, 0, 0, time.UTC)

func TestIsValidUserID(t *testing.T) {
	tests := []struct {
		userID string
		want   bool
	}{
		{"alice", true},
		{"user-123", true},
		{"USER_99", true},
		{"", false},
		{"   ", false},
		{"has space", false},
		{"semi;colon", false},
		{"sql'inject", false},
		{string(make([]byte, 65)), false},
	}
	for _, tt := range tests {
		if got := IsValidUserID(tt.userID); got != tt.want {
			t.Errorf("IsValidUserID(%q) = %v, want %v", tt.userID, got, tt.want)
		}
	}
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name     string
		userID   string
		rawDate  string
		wantErrs int
	}{
		{"valid with date", "alice", "2024-06-15", 0},
		{"valid with timestamp", "alice", "2024-06-15T08:30:00Z", 0},
		{"valid without date", "alice", "", 0},
		{"missing user", "", "2024-06-15", 1},
		{"bad user and bad date", "no good", "not-a-date", 2},
		{"date slightly future", "alice", "2024-07-01", 0},
		{"date too far future", "alice", "2024-07-20", 1},
		{"date slightly past", "alice", "2023-08-01", 0},
		{"date too far past", "alice", "2023-05-01", 1},
	}
	for _, tt := range tests {
		_, errs := ValidateRequest(tt.userID, tt.rawDate, validateNow)
		if len(errs) != tt.wantErrs {
			t.Errorf("%s: got %d errors %v, want %d", tt.name, len(errs), errs, tt.wantErrs)
		}
	}
}

func TestValidateRequestReturnsParsedDate(t *testing.T) {
	ref, errs := ValidateRequest("alice", "2024-06-15", validateNow)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	if !ref.Equal(want) {
		t.Errorf("reference = %v, want %v", ref, want)
	}
}

func TestValidateRequestDefaultsToNow(t *testing.T) {
	ref, errs := ValidateRequest("alice", "", validateNow)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if !ref.Equal(validateNow) {
		t.Errorf("reference = %v, want now %v", ref, validateNow)
	}
}
