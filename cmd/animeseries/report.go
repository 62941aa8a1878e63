package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// verdict grades one line of a command report.
type verdict int

const (
	verdictNote verdict = iota
	verdictGood
	verdictAttention
	verdictFailed
)

type verdictStyle struct {
	tag    string
	colors text.Colors
}

var verdictStyles = map[verdict]verdictStyle{
	verdictNote:      {tag: "INFO", colors: text.Colors{text.FgBlue}},
	verdictGood:      {tag: "OK", colors: text.Colors{text.FgGreen}},
	verdictAttention: {tag: "WARN", colors: text.Colors{text.FgYellow}},
	verdictFailed:    {tag: "ERROR", colors: text.Colors{text.FgRed}},
}

const reportLabelWidth = 20

// countVerdict flags a non-zero problem count.
func countVerdict(n int) verdict {
	if n > 0 {
		return verdictAttention
	}
	return verdictGood
}

// report prints titled blocks of "label: [TAG] value" lines.
type report struct {
	w        io.Writer
	colorize bool
}

func newReport(w io.Writer) *report {
	return &report{w: w, colorize: shouldColorize(w)}
}

func (r *report) section(title string) {
	for _, line := range formatSection(title, r.colorize) {
		fmt.Fprintln(r.w, line)
	}
}

func (r *report) line(label string, v verdict, value string) {
	fmt.Fprintln(r.w, formatReportLine(label, v, value, r.colorize))
}

func (r *report) note(label, value string) {
	r.line(label, verdictNote, value)
}

func formatReportLine(label string, v verdict, value string, colorize bool) string {
	style, ok := verdictStyles[v]
	if !ok {
		style = verdictStyles[verdictNote]
	}
	tagged := "[" + style.tag + "]"
	if value != "" {
		tagged += " " + value
	}
	line := fmt.Sprintf("  %-*s %s", reportLabelWidth, label+":", tagged)
	if colorize {
		return text.Escape(line, style.colors.EscapeSeq())
	}
	return line
}

func formatSection(title string, colorize bool) []string {
	heading := "== " + strings.TrimSpace(title) + " =="
	lines := []string{heading, strings.Repeat("-", len(heading))}
	if colorize {
		seq := verdictStyles[verdictNote].colors.EscapeSeq()
		for i := range lines {
			lines[i] = text.Escape(lines[i], seq)
		}
	}
	return lines
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
