package theme

import "strings"

// Option represents a selectable theme exposed to the UI.
type Option struct {
	Value string
	Label string
}

// StudioTheme contains resolved styling primitives for the studio pages.
type StudioTheme struct {
	Key          string
	BodyClass    string
	ShellClass   string
	PanelClass   string
	AccentClass  string
	MutedClass   string
	WarningClass string
}

const (
	// DefaultKey defines the fallback theme when none is configured.
	DefaultKey = "atelier"
)

var catalogue = map[string]StudioTheme{
	"atelier": {
		Key:          "atelier",
		BodyClass:    "min-h-screen bg-stone-50 text-stone-900",
		ShellClass:   "studio-shell light",
		PanelClass:   "studio-panel",
		AccentClass:  "studio-accent",
		MutedClass:   "studio-muted",
		WarningClass: "studio-warning",
	},
	"nocturne": {
		Key:          "nocturne",
		BodyClass:    "min-h-screen bg-slate-950 text-slate-100",
		ShellClass:   "studio-shell dark",
		PanelClass:   "studio-panel",
		AccentClass:  "studio-accent",
		MutedClass:   "studio-muted",
		WarningClass: "studio-warning",
	},
}

var options = []Option{
	{Value: "atelier", Label: "Atelier (Light)"},
	{Value: "nocturne", Label: "Nocturne (Dark)"},
}

// Resolve returns the registered theme configuration for the provided key.
func Resolve(key string) StudioTheme {
	normalized := strings.ToLower(strings.TrimSpace(key))
	if value, ok := catalogue[normalized]; ok {
		return value
	}
	return catalogue[DefaultKey]
}

// Options exposes the available theme selections.
func Options() []Option {
	return options
}
