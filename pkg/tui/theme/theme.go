package theme

import (
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/clinic/pkg/appointment"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Header   HeaderTheme
	Footer   FooterTheme
	Panel    PanelTheme
	List     ListTheme
	Calendar CalendarTheme
	Status   map[appointment.Status]lipgloss.Style
}

// HeaderTheme styles the view-mode tabs and filter summary.
type HeaderTheme struct {
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Filters   lipgloss.Style
}

// FooterTheme groups styles used by the bottom status/help bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
	Label lipgloss.Style
}

// ListTheme styles appointment rows.
type ListTheme struct {
	Row      lipgloss.Style
	Selected lipgloss.Style
	Day      lipgloss.Style
	Muted    lipgloss.Style
}

// CalendarTheme styles grid cells.
type CalendarTheme struct {
	Header     lipgloss.Style
	OtherMonth lipgloss.Style
	Day        lipgloss.Style
	Busy       lipgloss.Style
	Today      lipgloss.Style
	Selected   lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	tab := lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("245"))

	return Theme{
		Header: HeaderTheme{
			Tab:       tab,
			ActiveTab: tab.Copy().Foreground(lipgloss.Color("212")).Bold(true).Underline(true),
			Filters:   muted,
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
			Label: muted.Copy().Width(10),
		},
		List: ListTheme{
			Row:      lipgloss.NewStyle(),
			Selected: lipgloss.NewStyle().Reverse(true),
			Day:      lipgloss.NewStyle().Bold(true).Underline(true),
			Muted:    muted,
		},
		Calendar: CalendarTheme{
			Header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
			OtherMonth: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
			Day:        lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
			Busy:       lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
			Today:      lipgloss.NewStyle().Underline(true),
			Selected:   lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("0")),
		},
		Status: map[appointment.Status]lipgloss.Style{
			appointment.StatusPending:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
			appointment.StatusConfirmed:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
			appointment.StatusCompleted:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			appointment.StatusCancelled:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
			appointment.StatusNoShow:      lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			appointment.StatusRescheduled: lipgloss.NewStyle().Foreground(lipgloss.Color("135")),
			appointment.StatusWaiting:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			appointment.StatusInProgress:  lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		},
	}
}

// StatusBadge renders a status label in its color.
func (t Theme) StatusBadge(s appointment.Status) string {
	style, ok := t.Status[s]
	if !ok {
		style = lipgloss.NewStyle()
	}
	return style.Render(s.Label())
}
