package disambiguation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Action is what a menu option does.
type Action int

const (
	ActionCreateNew Action = iota
	ActionAttach
	ActionAttachRename
)

func (a Action) String() string {
	switch a {
	case ActionAttach:
		return "attach"
	case ActionAttachRename:
		return "attach_rename"
	default:
		return "create_new"
	}
}

// Candidate is an existing series offered to the operator.
type Candidate struct {
	SeriesID    int64
	Title       string
	StartYear   int
	Overlap     float64
	Containment float64
}

// Option is one numbered menu entry. Candidate is nil for create new.
type Option struct {
	Number    int
	Action    Action
	Candidate *Candidate
}

// Menu is the complete set of choices for one incoming anime.
type Menu struct {
	IncomingTitle string
	IncomingYear  int
	Reason        string
	Options       []Option
}

// NewMenu numbers options as: 1 create new, then attach to each candidate,
// then rename and attach for each candidate.
func NewMenu(title string, year int, reason string, candidates []Candidate) Menu {
	menu := Menu{IncomingTitle: title, IncomingYear: year, Reason: reason}
	menu.Options = append(menu.Options, Option{Number: 1, Action: ActionCreateNew})
	n := len(candidates)
	for i := range candidates {
		menu.Options = append(menu.Options, Option{Number: i + 2, Action: ActionAttach, Candidate: &candidates[i]})
	}
	for i := range candidates {
		menu.Options = append(menu.Options, Option{Number: n + i + 2, Action: ActionAttachRename, Candidate: &candidates[i]})
	}
	return menu
}

// Lookup returns the option numbered choice.
func (m Menu) Lookup(choice int) (Option, bool) {
	if choice < 1 || choice > len(m.Options) {
		return Option{}, false
	}
	return m.Options[choice-1], true
}

// Candidates returns the number of candidate series on the menu.
func (m Menu) Candidates() int {
	return (len(m.Options) - 1) / 2
}

// Summary lists option numbers and targets on one line for logs.
func (m Menu) Summary() string {
	parts := make([]string, 0, len(m.Options))
	for _, opt := range m.Options {
		label := opt.Action.String()
		if opt.Candidate != nil {
			label += ":" + strconv.FormatInt(opt.Candidate.SeriesID, 10)
		}
		parts = append(parts, fmt.Sprintf("%d=%s", opt.Number, label))
	}
	return strings.Join(parts, ", ")
}

// Render draws the menu as a table preceded by the incoming anime.
func (m Menu) Render(colorize bool) string {
	var b strings.Builder
	header := fmt.Sprintf("Incoming: %s", m.IncomingTitle)
	if m.IncomingYear > 0 {
		header += fmt.Sprintf(" (%d)", m.IncomingYear)
	}
	b.WriteString(header)
	b.WriteString("\n")
	if m.Reason != "" {
		b.WriteString(m.Reason)
		b.WriteString("\n")
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if colorize {
		tw.Style().Color.Header = text.Colors{text.FgHiBlue, text.Bold}
	}
	tw.AppendHeader(table.Row{"#", "Action", "Series", "Year", "Overlap", "Containment"})
	for _, opt := range m.Options {
		row := table.Row{opt.Number, actionLabel(opt.Action), "", "", "", ""}
		if c := opt.Candidate; c != nil {
			row[2] = c.Title
			if c.StartYear > 0 {
				row[3] = strconv.Itoa(c.StartYear)
			}
			row[4] = fmt.Sprintf("%.2f", c.Overlap)
			row[5] = fmt.Sprintf("%.2f", c.Containment)
		}
		tw.AppendRow(row)
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	b.WriteString(tw.Render())
	b.WriteString("\n")
	return b.String()
}

func actionLabel(action Action) string {
	switch action {
	case ActionAttach:
		return "Attach to"
	case ActionAttachRename:
		return "Rename to incoming and attach"
	default:
		return "Create new series"
	}
}
