package config

// Resolution represents a window size option
type Resolution struct {
	Width  int
	Height int
	Label  string
}

// WindowConfig contains the viewer window options
type WindowConfig struct {
	Resolutions            []Resolution
	DefaultResolutionIndex int
}

// Window is the global viewer window configuration
var Window WindowConfig

func init() {
	Window = WindowConfig{
		Resolutions: []Resolution{
			{Width: 1280, Height: 720, Label: "1280 x 720"},
			{Width: 1600, Height: 900, Label: "1600 x 900"},
			{Width: 1920, Height: 1080, Label: "1920 x 1080"},
		},
		DefaultResolutionIndex: 0,
	}
}

// ResolutionAt returns the resolution at index, falling back to the default
// for out-of-range values read from old settings files.
func (w WindowConfig) ResolutionAt(index int) Resolution {
	if index < 0 || index >= len(w.Resolutions) {
		index = w.DefaultResolutionIndex
	}
	return w.Resolutions[index]
}
