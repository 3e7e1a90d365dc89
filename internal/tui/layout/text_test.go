package layout

import "testing"

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no ANSI", "hello", "hello"},
		{"bold", "\x1b[1mhello\x1b[0m", "hello"},
		{"color", "\x1b[31mred\x1b[0m", "red"},
		{"mixed", "normal \x1b[1;4mbold underline\x1b[0m normal", "normal bold underline normal"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripANSI(tt.input); got != tt.want {
				t.Errorf("StripANSI(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestVisibleLength(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"hello", 5},
		{"\x1b[1mhello\x1b[0m", 5},
		{"こんにちは", 10},
		{"", 0},
	}

	for _, tt := range tests {
		if got := VisibleLength(tt.input); got != tt.want {
			t.Errorf("VisibleLength(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestTruncateText(t *testing.T) {
	cfg := DefaultConfig().Text

	tests := []struct {
		name      string
		text      string
		maxWidth  int
		want      string
		truncated bool
	}{
		{"no truncation needed", "hello", 10, "hello", false},
		{"exact length", "hello", 5, "hello", false},
		{"needs truncation", "hello world", 8, "hello...", true},
		{"very short max", "hello", 3, "...", true},
		{"max is 1", "hello", 1, ".", true},
		{"max is 0", "hello", 0, "", true},
		{"empty string", "", 10, "", false},
		{"wide text", "こんにちは", 7, "こん...", true},
		{"wide text odd width", "こんにちは", 8, "こん...", true},
		{"wide text fits", "こんにちは", 10, "こんにちは", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := TruncateText(tt.text, tt.maxWidth, cfg)
			if got != tt.want || truncated != tt.truncated {
				t.Errorf("TruncateText(%q, %d) = (%q, %v), want (%q, %v)",
					tt.text, tt.maxWidth, got, truncated, tt.want, tt.truncated)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("ab", 4); got != "ab  " {
		t.Errorf("PadRight = %q", got)
	}
	if got := PadRight("\x1b[1mab\x1b[0m", 3); StripANSI(got) != "ab " {
		t.Errorf("PadRight should ignore ANSI codes, got %q", got)
	}
	if got := PadRight("abcdef", 3); got != "abcdef" {
		t.Errorf("PadRight should not cut, got %q", got)
	}
}

func TestJoinTags(t *testing.T) {
	cfg := DefaultConfig().Text
	if got := JoinTags([]string{"go", "cli"}, 20, cfg); got != "#go #cli" {
		t.Errorf("JoinTags = %q", got)
	}
	if got := JoinTags([]string{"golang", "terminal"}, 10, cfg); got != "#golang..." {
		t.Errorf("JoinTags truncated = %q", got)
	}
	if got := JoinTags(nil, 10, cfg); got != "" {
		t.Errorf("JoinTags(nil) = %q", got)
	}
}
