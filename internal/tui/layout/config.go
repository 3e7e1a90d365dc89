package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	List  ListConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
}

// ListConfig sizes the bookmark list.
type ListConfig struct {
	// HeightReduction is subtracted from terminal height for list rows.
	// Accounts for: app padding (1) + title (1) + category tabs (2) + status (1) + help bar (3) = 8
	HeightReduction int

	// MinRows is the minimum number of visible rows.
	MinRows int

	// WidthReduction accounts for app padding on both sides.
	WidthReduction int

	// CategoryColumnWidth is the width reserved for the "[category]" column.
	CategoryColumnWidth int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// WidthPercent is the modal width as percentage of terminal width.
	WidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int

	// HelpColumnWidth: width of each help overlay column.
	HelpColumnWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	NameCharLimit   int
	URLCharLimit    int
	TagsCharLimit   int
	SearchCharLimit int

	Width int // all form inputs share one width
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		List: ListConfig{
			HeightReduction:     8,
			MinRows:             3,
			WidthReduction:      4,
			CategoryColumnWidth: 16,
		},
		Modal: ModalConfig{
			WidthPercent:    50,
			MinWidth:        44,
			MaxWidth:        80,
			HelpColumnWidth: 24,
		},
		Input: InputConfig{
			NameCharLimit:   100,
			URLCharLimit:    500,
			TagsCharLimit:   200,
			SearchCharLimit: 100,
			Width:           40,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
