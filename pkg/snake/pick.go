// Package snake holds the interactive prompts behind the -i flags.
package snake

import (
	"errors"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"tableflip.dev/clinic/pkg/appointment"
	"tableflip.dev/clinic/pkg/dateutil"
)

// ErrNothingToPick is returned when there are no appointments to choose from.
var ErrNothingToPick = errors.New("snake: no appointments to choose from")

// choice is what the select templates render for one appointment.
type choice struct {
	ID      string
	When    string
	Patient string
	Type    string
	Status  string
	Notes   string
}

func choices(records []appointment.Record, format dateutil.Formatter) []choice {
	out := make([]choice, 0, len(records))
	for _, r := range records {
		out = append(out, choice{
			ID:      r.ID,
			When:    format.Date(r.Date) + " " + format.Time(r.Date),
			Patient: r.PatientName(),
			Type:    r.TypeLabel(),
			Status:  r.Status.Label(),
			Notes:   r.Notes,
		})
	}
	return out
}

func (c choice) matches(input string) bool {
	hay := strings.Replace(strings.ToLower(c.Patient+c.Type+c.ID), " ", "", -1)
	input = strings.Replace(strings.ToLower(input), " ", "", -1)
	return strings.Contains(hay, input)
}

// PickAppointment lets the user choose one of records.
func PickAppointment(cmd *cobra.Command, records []appointment.Record, format dateutil.Formatter) (appointment.Record, error) {
	if len(records) == 0 {
		return appointment.Record{}, ErrNothingToPick
	}
	items := choices(records, format)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .When | bold }} {{ .Patient | green }} {{ .Type | cyan }}",
		Inactive: "   {{ .When }} {{ .Patient }} {{ .Type | cyan }}",
		Selected: "{{ .Patient | bold }} {{ .When }}",
		Details: `
--------- Appointment ----------
{{ "ID:" | faint }}	{{ .ID }}
{{ "Status:" | faint }}	{{ .Status }}
{{ "Notes:" | faint }}	{{ .Notes }}
`,
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     "Appointment",
		Items:     items,
		Templates: templates,
		Size:      10,
		Searcher:  func(input string, i int) bool { return items[i].matches(input) },
		Stdin:     io.NopCloser(cmd.InOrStdin()),
		Stdout:    nopWriteCloser{cmd.OutOrStdout()},
	}

	i, _, err := prompt.Run()
	if err != nil {
		return appointment.Record{}, err
	}
	return records[i], nil
}

// PickStatus lets the user choose the next status, starting at current.
func PickStatus(cmd *cobra.Command, current appointment.Status) (appointment.Status, error) {
	all := appointment.Statuses()
	labels := make([]string, len(all))
	cursor := 0
	for i, s := range all {
		labels[i] = s.Label()
		if s == current {
			cursor = i
		}
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     "Status",
		Items:     labels,
		CursorPos: cursor,
		Size:      len(labels),
		Stdin:     io.NopCloser(cmd.InOrStdin()),
		Stdout:    nopWriteCloser{cmd.OutOrStdout()},
	}
	i, _, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return all[i], nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
