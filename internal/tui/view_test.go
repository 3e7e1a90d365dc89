package tui

import (
	"testing"
	"time"
)

func TestFormatTimeAgo(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{49 * time.Hour, "2d ago"},
		{400 * 24 * time.Hour, "2024-04-27"},
	}

	for _, tt := range tests {
		if got := formatTimeAgo(now.Add(-tt.ago), now); got != tt.want {
			t.Errorf("formatTimeAgo(-%v) = %q, want %q", tt.ago, got, tt.want)
		}
	}
}

func TestFormState_CycleCategoryWraps(t *testing.T) {
	f := FormState{}
	f.CycleCategory(-1)
	if got := f.Category(); got != categoryOptions[len(categoryOptions)-1] {
		t.Errorf("cycling back from auto = %q", got)
	}
	f.CycleCategory(1)
	if got := f.Category(); got != "" {
		t.Errorf("cycling forward should return to auto, got %q", got)
	}
}
