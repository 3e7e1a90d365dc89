package browser

import (
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestCommand(t *testing.T) {
	tests := []struct {
		goos string
		want []string
	}{
		{"darwin", []string{"open", "https://go.dev"}},
		{"linux", []string{"xdg-open", "https://go.dev"}},
		{"windows", []string{"rundll32", "url.dll,FileProtocolHandler", "https://go.dev"}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			cmd, err := Command(tt.goos, "https://go.dev")
			assert.NilError(t, err)
			assert.DeepEqual(t, cmd.Args, tt.want)
		})
	}
}

func TestCommandUnsupported(t *testing.T) {
	_, err := Command("plan9", "https://go.dev")
	assert.Assert(t, is.ErrorContains(err, "plan9"))
}
