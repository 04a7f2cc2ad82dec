package display

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// NoRecords is printed instead of an empty table.
const NoRecords = "No records"

// Table is a header plus string cells ready for rendering.
type Table struct {
	Headers []string
	Rows    [][]string

	// CellStyle may refine the style of a body cell.
	CellStyle func(row, col int, base lipgloss.Style) lipgloss.Style
}

// Renderer draws tables with a theme and a body wrap width.
type Renderer struct {
	wrapWidth int
	theme     Theme
}

// NewRenderer returns a Renderer. A wrapWidth of zero or less disables wrapping.
func NewRenderer(wrapWidth int, theme Theme) *Renderer {
	return &Renderer{wrapWidth: wrapWidth, theme: theme}
}

// Render draws t, or NoRecords when it has no rows.
func (r *Renderer) Render(t Table) string {
	if len(t.Rows) == 0 {
		return NoRecords
	}

	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = wrapCell(cell, r.wrapWidth)
		}
		rows[i] = cells
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(r.theme.Heading)).
		Align(lipgloss.Center).
		Padding(0, 1)
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color(r.theme.Text)).
		Padding(0, 1)

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(r.theme.Border))).
		BorderRow(true).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if t.CellStyle != nil {
				return t.CellStyle(row, col, body)
			}
			return body
		}).
		Headers(t.Headers...).
		Rows(rows...)

	return tbl.String()
}

// Grades renders grade rows; a summary line follows when stats are available.
func (r *Renderer) Grades(rows []GradeRow) string {
	t := Table{Headers: []string{"Subject", "Date", "Grade", "Type", "Weight"}}
	for _, g := range rows {
		kind := g.Type
		if g.Canceled {
			kind = strings.TrimSpace(kind + " (canceled)")
		}
		t.Rows = append(t.Rows, []string{g.Subject, g.Date, gradeValue(g), kind, formatFloat(g.Weight)})
	}
	t.CellStyle = func(row, col int, base lipgloss.Style) lipgloss.Style {
		if col != 2 || row < 0 || row >= len(rows) {
			return base
		}
		return r.theme.GradeStyle(rows[row].Color).Padding(0, 1)
	}
	return r.Render(t)
}

// GradeSummary renders the averages line for rows.
func (r *Renderer) GradeSummary(rows []GradeRow) string {
	stats, ok := ComputeStats(rows)
	if !ok {
		return ""
	}
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(r.theme.Muted))
	line := fmt.Sprintf("Average %s over %d grades", stats.Mean.StringFixed(2), stats.Count)
	if stats.WeightedOver > 0 {
		line += fmt.Sprintf(" | weighted %s", stats.Weighted.StringFixed(2))
	}
	return muted.Render(line)
}

// Absences renders absence rows.
func (r *Renderer) Absences(rows []AbsenceRow) string {
	t := Table{Headers: []string{"Type", "Date", "Justified", "Reason", "Code"}}
	for _, a := range rows {
		t.Rows = append(t.Rows, []string{a.Type, a.Date, yesNo(a.Justified), a.Reason, a.Code})
	}
	t.CellStyle = func(row, col int, base lipgloss.Style) lipgloss.Style {
		if col != 2 || row < 0 || row >= len(rows) || rows[row].Justified {
			return base
		}
		return base.Foreground(lipgloss.Color(r.theme.Warning))
	}
	return r.Render(t)
}

// Agenda renders agenda rows.
func (r *Renderer) Agenda(rows []AgendaRow) string {
	t := Table{Headers: []string{"Date", "Type", "Subject", "Notes", "Teacher"}}
	for _, a := range rows {
		t.Rows = append(t.Rows, []string{a.Date, a.Type, a.Subject, a.Notes, a.Teacher})
	}
	return r.Render(t)
}

// Lessons renders lesson rows.
func (r *Renderer) Lessons(rows []LessonRow) string {
	t := Table{Headers: []string{"Date", "Hour", "Subject", "Topic", "Teacher"}}
	for _, l := range rows {
		t.Rows = append(t.Rows, []string{l.Date, strconv.Itoa(l.Hour), l.Subject, l.Topic, l.Teacher})
	}
	return r.Render(t)
}

// wrapCell word-wraps value to width columns without padding short lines.
func wrapCell(value string, width int) string {
	value = strings.TrimSpace(value)
	if width <= 0 || lipgloss.Width(value) <= width {
		return value
	}
	wrapped := lipgloss.NewStyle().Width(width).Render(value)
	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}

func gradeValue(g GradeRow) string {
	if g.Display != "" {
		return g.Display
	}
	if g.Value != nil {
		return formatFloat(*g.Value)
	}
	return "-"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
