package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/five82/spaggo/internal/datewin"
	"github.com/five82/spaggo/internal/display"
	"github.com/five82/spaggo/internal/logtail"
	"github.com/five82/spaggo/internal/portal"
	"github.com/five82/spaggo/internal/watch"
)

// GradeOptions tune the grade listing.
type GradeOptions struct {
	Subject   string // keep only this subject, case-insensitive
	DescDate  bool   // newest first
	HideStats bool   // omit the averages line
}

// Login refreshes and persists the session token.
func (a *App) Login(ctx context.Context) error {
	if err := a.requireCredentials(); err != nil {
		return err
	}
	tok, err := a.svc.Login(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.out, "Logged in, student %s. Token saved to %s\n", tok.StudentID, a.tokens.Path())
	return err
}

// Grades lists grades.
func (a *App) Grades(ctx context.Context, opts GradeOptions) error {
	if err := a.requireCredentials(); err != nil {
		return err
	}
	grades, err := a.svc.Grades(ctx)
	if err != nil {
		return err
	}

	rows := display.FilterGradesBySubject(display.GradeRows(grades), opts.Subject)
	display.SortGradesByDate(rows, opts.DescDate)

	out := a.renderer.Grades(rows)
	if !opts.HideStats {
		if summary := a.renderer.GradeSummary(rows); summary != "" {
			out += "\n" + summary
		}
	}
	return a.emit(ctx, "Grades", out)
}

// Absences lists absences, late entries and early exits.
func (a *App) Absences(ctx context.Context) error {
	if err := a.requireCredentials(); err != nil {
		return err
	}
	events, err := a.svc.Absences(ctx)
	if err != nil {
		return err
	}
	return a.emit(ctx, "Absences", a.renderer.Absences(display.AbsenceRows(events)))
}

// Agenda lists agenda events. dateArg is empty (today through Friday), a
// single date, or "nextweek".
func (a *App) Agenda(ctx context.Context, dateArg string) error {
	w, err := datewin.Resolve(dateArg, a.now(), datewin.AgendaWindow)
	if err != nil {
		return err
	}
	if err := a.requireCredentials(); err != nil {
		return err
	}
	a.logger.Debug("agenda window", zap.Stringer("window", w))

	events, err := a.svc.Agenda(ctx, w)
	if err != nil {
		return err
	}
	return a.emit(ctx, "Agenda "+w.String(), a.renderer.Agenda(display.AgendaRows(events)))
}

// Lessons lists lessons. dateArg is empty (this week), a single date, or
// "nextweek".
func (a *App) Lessons(ctx context.Context, dateArg string) error {
	w, err := datewin.Resolve(dateArg, a.now(), datewin.LessonWindow)
	if err != nil {
		return err
	}
	if err := a.requireCredentials(); err != nil {
		return err
	}
	a.logger.Debug("lesson window", zap.Stringer("window", w))

	lessons, err := a.svc.Lessons(ctx, w)
	if err != nil {
		return err
	}
	return a.emit(ctx, "Lessons "+w.String(), a.renderer.Lessons(display.LessonRows(lessons)))
}

// Watch checks grades on schedule, printing new ones, until ctx is done. An
// empty schedule uses the configured one.
func (a *App) Watch(ctx context.Context, schedule string) error {
	if err := a.requireCredentials(); err != nil {
		return err
	}
	if strings.TrimSpace(schedule) == "" {
		schedule = a.cfg.WatchSchedule
	}

	w, err := watch.New(watch.Options{
		Source:   a.svc,
		Schedule: schedule,
		Logger:   a.logger.Named("watch"),
		Notify:   a.announceGrades,
	})
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(a.out, "Watching grades (%s), press ctrl+c to stop\n", schedule); err != nil {
		return err
	}
	return w.Run(ctx)
}

func (a *App) announceGrades(grades []portal.Grade) {
	rows := display.GradeRows(grades)
	display.SortGradesByDate(rows, false)
	if _, err := fmt.Fprintf(a.out, "%s: %d new grade(s)\n%s\n", a.now().Format("2006-01-02 15:04"), len(rows), a.renderer.Grades(rows)); err != nil {
		a.logger.Warn("failed to print new grades", zap.Error(err), zap.Int("grades", len(rows)))
	}
}

// Logs prints the last lines of the log file.
func (a *App) Logs(lines int) error {
	if a.cfg.LogFile == "" {
		return fmt.Errorf("no log file configured (set [log] file in config.toml)")
	}
	tail, err := logtail.Read(a.cfg.LogFile, lines)
	if err != nil {
		return err
	}
	if len(tail) == 0 {
		_, err = fmt.Fprintln(a.out, "Log is empty")
		return err
	}
	_, err = fmt.Fprintln(a.out, strings.Join(logtail.ColorizeLines(tail), "\n"))
	return err
}
