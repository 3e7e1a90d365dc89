package layout

import "testing"

func TestCalculateModalWidth(t *testing.T) {
	cfg := DefaultConfig().Modal

	tests := []struct {
		name          string
		terminalWidth int
		want          int
	}{
		{"normal terminal", 120, 60},        // 50%
		{"narrow enforces min", 60, 44},     // 30 < 44
		{"wide enforces max", 300, 80},      // 150 > 80
		{"tiny never exceeds term", 30, 26}, // min 44 but terminal-4 = 26
		{"degenerate", 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateModalWidth(tt.terminalWidth, cfg); got != tt.want {
				t.Errorf("CalculateModalWidth(%d) = %d, want %d", tt.terminalWidth, got, tt.want)
			}
		})
	}
}

func TestCalculateListRows(t *testing.T) {
	cfg := DefaultConfig().List

	tests := []struct {
		terminalHeight int
		want           int
	}{
		{24, 16}, // 24 - 8
		{50, 42},
		{9, 3}, // 1 row, min is 3
		{0, 3},
	}

	for _, tt := range tests {
		if got := CalculateListRows(tt.terminalHeight, cfg); got != tt.want {
			t.Errorf("CalculateListRows(%d) = %d, want %d", tt.terminalHeight, got, tt.want)
		}
	}
}

func TestCalculateViewportOffset(t *testing.T) {
	tests := []struct {
		name                        string
		prev, selected, total, rows int
		want                        int
	}{
		{"fits entirely", 0, 3, 5, 10, 0},
		{"cursor visible keeps offset", 2, 4, 20, 5, 2},
		{"cursor below scrolls down", 0, 7, 20, 5, 3},
		{"cursor above scrolls up", 10, 4, 20, 5, 4},
		{"clamped at end", 18, 19, 20, 5, 15},
		{"zero rows", 3, 3, 20, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateViewportOffset(tt.prev, tt.selected, tt.total, tt.rows)
			if got != tt.want {
				t.Errorf("CalculateViewportOffset(%d, %d, %d, %d) = %d, want %d",
					tt.prev, tt.selected, tt.total, tt.rows, got, tt.want)
			}
		})
	}
}
