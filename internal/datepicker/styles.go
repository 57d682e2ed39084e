package datepicker

import "github.com/charmbracelet/lipgloss"

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

// Styles holds the lipgloss styles used to render the picker. Styles must not
// add padding or margins to cells: mouse hit-testing relies on fixed widths.
type Styles struct {
	Trigger      lipgloss.Style
	TriggerSet   lipgloss.Style
	TriggerFocus lipgloss.Style
	Popover      lipgloss.Style
	Header       lipgloss.Style
	Arrow        lipgloss.Style
	Weekday      lipgloss.Style
	Day          lipgloss.Style
	Today        lipgloss.Style
	Selected     lipgloss.Style
	Cursor       lipgloss.Style
	Label        lipgloss.Style
	Quick        lipgloss.Style
	QuickActive  lipgloss.Style
	ListItem     lipgloss.Style
	ListCurrent  lipgloss.Style
	Muted        lipgloss.Style
}

var (
	colorAccent     = ac("30", "79") // mint
	colorAccentFg   = ac("255", "232")
	colorMuted      = ac("240", "243")
	colorSurfaceFg  = ac("235", "252")
	colorControlBg  = ac("252", "236")
	colorSelectedBg = ac("#e9e9e9", "#262626")
	colorBorder     = ac("250", "240")
)

func DefaultStyles() Styles {
	return Styles{
		Trigger:      lipgloss.NewStyle().Padding(0, 1).Foreground(colorMuted).Background(colorControlBg),
		TriggerSet:   lipgloss.NewStyle().Padding(0, 1).Foreground(colorAccent).Background(colorControlBg),
		TriggerFocus: lipgloss.NewStyle().Bold(true).Underline(true),
		Popover: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1),
		Header:      lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg),
		Arrow:       lipgloss.NewStyle().Foreground(colorMuted),
		Weekday:     lipgloss.NewStyle().Foreground(colorMuted),
		Day:         lipgloss.NewStyle().Foreground(colorSurfaceFg),
		Today:       lipgloss.NewStyle().Bold(true).Underline(true),
		Selected:    lipgloss.NewStyle().Bold(true).Foreground(colorAccentFg).Background(colorAccent),
		Cursor:      lipgloss.NewStyle().Reverse(true),
		Label:       lipgloss.NewStyle().Foreground(colorMuted),
		Quick:       lipgloss.NewStyle().Foreground(colorMuted),
		QuickActive: lipgloss.NewStyle().Foreground(colorSurfaceFg).Background(colorSelectedBg).Bold(true),
		ListItem:    lipgloss.NewStyle().Foreground(colorMuted),
		ListCurrent: lipgloss.NewStyle().Foreground(colorSurfaceFg).Bold(true),
		Muted:       lipgloss.NewStyle().Foreground(colorMuted),
	}
}
