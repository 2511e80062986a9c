package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the spring diagram.
type Theme struct {
	Name   string
	Spring lipgloss.Color
	Wall   lipgloss.Color
	Arm    lipgloss.Color
	Muted  lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:   "cyberpunk",
		Spring: lipgloss.Color("#ff00ff"),
		Wall:   lipgloss.Color("#00ffff"),
		Arm:    lipgloss.Color("#ffff00"),
		Muted:  lipgloss.Color("#666666"),
	}

	ThemeRetroGreen = Theme{
		Name:   "retro",
		Spring: lipgloss.Color("#00ff00"),
		Wall:   lipgloss.Color("#00cc00"),
		Arm:    lipgloss.Color("#88ff88"),
		Muted:  lipgloss.Color("#005500"),
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		Spring: lipgloss.Color("#ffffff"),
		Wall:   lipgloss.Color("#cccccc"),
		Arm:    lipgloss.Color("#0088ff"),
		Muted:  lipgloss.Color("#888888"),
	}

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name, falling back to cyberpunk.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

// NextTheme returns the theme after t, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
