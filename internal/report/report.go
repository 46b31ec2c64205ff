// Package report renders results frames as terminal tables or CSV.
package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Frame is a header row plus string records.
type Frame interface {
	Columns() []string
	Records() [][]string
}

// Output selects how frames are written.
type Output string

const (
	// OutputTable draws bordered terminal tables.
	OutputTable Output = "table"
	// OutputCSV writes one CSV block per frame.
	OutputCSV Output = "csv"
)

// Renderer writes frames and summaries to an io.Writer.
type Renderer struct {
	out     io.Writer
	output  Output
	printer *message.Printer

	title  lipgloss.Style
	header lipgloss.Style
	cell   lipgloss.Style
	border lipgloss.Style
}

// NewRenderer creates a Renderer for the given output kind.
//
// Postcondition: Returns a Renderer, or an error if output is not "table" or "csv".
func NewRenderer(w io.Writer, output Output) (*Renderer, error) {
	switch output {
	case OutputTable, OutputCSV:
	default:
		return nil, fmt.Errorf("report: unknown output %q", output)
	}
	return &Renderer{
		out:     w,
		output:  output,
		printer: message.NewPrinter(language.English),
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		header:  lipgloss.NewStyle().Bold(true).Padding(0, 1),
		cell:    lipgloss.NewStyle().Padding(0, 1),
		border:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	}, nil
}

// Frame writes f under title.
func (r *Renderer) Frame(title string, f Frame) error {
	if r.output == OutputCSV {
		return r.csv(title, f)
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.header
			}
			return r.cell
		}).
		Headers(f.Columns()...).
		Rows(f.Records()...)
	_, err := fmt.Fprintf(r.out, "%s\n%s\n\n", r.title.Render(title), t.String())
	return err
}

func (r *Renderer) csv(title string, f Frame) error {
	if _, err := fmt.Fprintf(r.out, "# %s\n", title); err != nil {
		return err
	}
	w := csv.NewWriter(r.out)
	if err := w.Write(f.Columns()); err != nil {
		return err
	}
	if err := w.WriteAll(f.Records()); err != nil {
		return err
	}
	_, err := fmt.Fprintln(r.out)
	return err
}

// Jackpot writes the jackpot count with its share of all rolls.
//
// Precondition: rolls >= 1.
func (r *Renderer) Jackpot(hits, rolls int) error {
	share := float64(hits) / float64(rolls) * 100
	line := r.printer.Sprintf("Jackpots: %d of %d rolls (%.2f%%)", hits, rolls, share)
	if r.output == OutputCSV {
		_, err := fmt.Fprintf(r.out, "# %s\n\n", line)
		return err
	}
	_, err := fmt.Fprintf(r.out, "%s\n\n", r.title.Render(line))
	return err
}
