package display

import (
	"sort"
	"strings"
	"time"

	"github.com/five82/spaggo/internal/portal"
)

const dayLayout = "2006-01-02 Monday"

// GradeRow is the display projection of a grade.
type GradeRow struct {
	EvtID    int
	Subject  string
	Date     string
	Value    *float64
	Display  string
	Type     string
	Weight   float64
	Color    string
	Canceled bool
}

// GradeRows projects portal grades for display.
func GradeRows(grades []portal.Grade) []GradeRow {
	rows := make([]GradeRow, 0, len(grades))
	for _, g := range grades {
		rows = append(rows, GradeRow{
			EvtID:    g.EvtID,
			Subject:  CanonicalSubject(g.SubjectDesc),
			Date:     g.EvtDate,
			Value:    g.DecimalValue,
			Display:  strings.TrimSpace(g.DisplayValue),
			Type:     g.ComponentDesc,
			Weight:   g.WeightFactor,
			Color:    g.Color,
			Canceled: g.Canceled,
		})
	}
	return rows
}

// FilterGradesBySubject keeps rows whose subject equals name, ignoring case and
// surrounding whitespace. An empty name keeps everything.
func FilterGradesBySubject(rows []GradeRow, name string) []GradeRow {
	want := strings.TrimSpace(name)
	if want == "" {
		return rows
	}
	out := make([]GradeRow, 0, len(rows))
	for _, r := range rows {
		if strings.EqualFold(strings.TrimSpace(r.Subject), want) {
			out = append(out, r)
		}
	}
	return out
}

// SortGradesByDate orders rows by event date, newest first when desc is set.
// Dates are YYYY-MM-DD so textual order is chronological.
func SortGradesByDate(rows []GradeRow, desc bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		if desc {
			return rows[i].Date > rows[j].Date
		}
		return rows[i].Date < rows[j].Date
	})
}

// AbsenceRow is the display projection of an absence event.
type AbsenceRow struct {
	Type      string
	Date      string
	Justified bool
	Reason    string
	Code      string
}

// AbsenceRows projects absence events, sorted by date.
func AbsenceRows(events []portal.Absence) []AbsenceRow {
	rows := make([]AbsenceRow, 0, len(events))
	for _, a := range events {
		reason, code := "N/A", "N/A"
		if a.JustifReasonDesc != nil {
			reason = *a.JustifReasonDesc
		}
		if a.JustifReasonCode != nil {
			code = *a.JustifReasonCode
		}
		rows = append(rows, AbsenceRow{
			Type:      AbsenceLabel(a.EvtCode),
			Date:      a.EvtDate,
			Justified: a.IsJustified,
			Reason:    reason,
			Code:      code,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })
	return rows
}

// AgendaRow is the display projection of an agenda event.
type AgendaRow struct {
	Begin   time.Time
	Date    string
	Type    string
	Subject string
	Notes   string
	Teacher string
}

// AgendaRows projects agenda events, sorted by begin time. An unparseable
// timestamp is shown as received and sorts textually.
func AgendaRows(events []portal.AgendaEvent) []AgendaRow {
	rows := make([]AgendaRow, 0, len(events))
	for _, e := range events {
		row := AgendaRow{
			Date:    e.EvtDatetimeBegin,
			Type:    AgendaLabel(e.EvtCode),
			Notes:   strings.TrimSpace(e.Notes),
			Teacher: e.AuthorName,
		}
		if e.SubjectDesc != nil {
			row.Subject = CanonicalSubject(*e.SubjectDesc)
		}
		if t, ok := parseDatetime(e.EvtDatetimeBegin); ok {
			row.Begin = t
			row.Date = t.Format(dayLayout)
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.Begin.IsZero() && !b.Begin.IsZero() {
			return a.Begin.Before(b.Begin)
		}
		return a.Date < b.Date
	})
	return rows
}

// LessonRow is the display projection of a lesson.
type LessonRow struct {
	Date    string
	Hour    int
	Subject string
	Topic   string
	Type    string
	Teacher string
}

// LessonRows projects lessons, sorted by date then hour.
func LessonRows(lessons []portal.Lesson) []LessonRow {
	type keyed struct {
		key string
		row LessonRow
	}
	items := make([]keyed, 0, len(lessons))
	for _, l := range lessons {
		row := LessonRow{
			Date:    l.EvtDate,
			Hour:    l.EvtHPos,
			Subject: CanonicalSubject(l.SubjectDesc),
			Topic:   strings.TrimSpace(l.LessonArg),
			Type:    l.LessonType,
			Teacher: l.AuthorName,
		}
		if t, err := time.ParseInLocation(time.DateOnly, l.EvtDate, time.Local); err == nil {
			row.Date = t.Format(dayLayout)
		}
		items = append(items, keyed{key: l.EvtDate, row: row})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].key != items[j].key {
			return items[i].key < items[j].key
		}
		return items[i].row.Hour < items[j].row.Hour
	})
	rows := make([]LessonRow, len(items))
	for i, it := range items {
		rows[i] = it.row
	}
	return rows
}

func parseDatetime(value string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05-0700"} {
		if t, err := time.Parse(layout, strings.TrimSpace(value)); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
