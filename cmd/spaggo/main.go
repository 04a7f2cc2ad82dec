package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/five82/spaggo/internal/app"
	"github.com/five82/spaggo/internal/config"
	"github.com/five82/spaggo/internal/service"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newCLI().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "spaggo: %v\n", err)
		os.Exit(1)
	}
}

func newCLI() *cli.App {
	dateFlag := &cli.StringFlag{
		Name:    "date",
		Aliases: []string{"d"},
		Usage:   "single day as YYYYMMDD or YYYY-MM-DD, or \"nextweek\"",
	}

	return &cli.App{
		Name:                 "spaggo",
		Usage:                "grades, absences, agenda and lessons from the Spaggiari portal",
		EnableBashCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "config file path",
				Value:   config.DefaultPath(),
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "debug logging",
			},
			&cli.BoolFlag{
				Name:    "interactive",
				Aliases: []string{"i"},
				Usage:   "open tables in a scrollable view",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "log in and save the session token",
				Action: withApp(func(c *cli.Context, a *app.App) error {
					return a.Login(c.Context)
				}),
			},
			{
				Name:    "grade",
				Aliases: []string{"grades"},
				Usage:   "list grades",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "only this subject (case-insensitive)"},
					&cli.BoolFlag{Name: "desc-date", Usage: "newest first"},
					&cli.BoolFlag{Name: "no-stats", Usage: "omit the averages line"},
				},
				Action: withApp(func(c *cli.Context, a *app.App) error {
					return a.Grades(c.Context, app.GradeOptions{
						Subject:   c.String("name"),
						DescDate:  c.Bool("desc-date"),
						HideStats: c.Bool("no-stats"),
					})
				}),
			},
			{
				Name:    "absence",
				Aliases: []string{"absences"},
				Usage:   "list absences, late entries and early exits",
				Action: withApp(func(c *cli.Context, a *app.App) error {
					return a.Absences(c.Context)
				}),
			},
			{
				Name:  "agenda",
				Usage: "list agenda events (default: today through Friday)",
				Flags: []cli.Flag{dateFlag},
				Action: withApp(func(c *cli.Context, a *app.App) error {
					return a.Agenda(c.Context, c.String("date"))
				}),
			},
			{
				Name:    "lesson",
				Aliases: []string{"lessons"},
				Usage:   "list lessons (default: this week)",
				Flags:   []cli.Flag{dateFlag},
				Action: withApp(func(c *cli.Context, a *app.App) error {
					return a.Lessons(c.Context, c.String("date"))
				}),
			},
			{
				Name:  "watch",
				Usage: "check grades on a schedule and print new ones",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "schedule", Usage: "cron spec, overrides [watch] schedule"},
				},
				Action: withApp(func(c *cli.Context, a *app.App) error {
					return a.Watch(c.Context, c.String("schedule"))
				}),
			},
			{
				Name:  "logs",
				Usage: "print the end of the log file",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "lines", Aliases: []string{"n"}, Usage: "number of lines, 0 for all", Value: 50},
				},
				Action: withApp(func(c *cli.Context, a *app.App) error {
					return a.Logs(c.Int("lines"))
				}),
			},
		},
	}
}

// withApp builds the application from global flags, runs fn and maps errors
// to exit codes.
func withApp(fn func(*cli.Context, *app.App) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		a, err := app.New(app.Options{
			ConfigPath:  c.String("config"),
			Verbose:     c.Bool("verbose"),
			Interactive: c.Bool("interactive"),
		})
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		defer a.Close()

		if err := fn(c, a); err != nil {
			return exitError(err)
		}
		return nil
	}
}

func exitError(err error) error {
	var rejected *service.LoginRejectedError
	if errors.As(err, &rejected) {
		return cli.Exit(rejected.Error(), 1)
	}
	if errors.Is(err, context.Canceled) {
		return cli.Exit("interrupted", 130)
	}
	return cli.Exit(err.Error(), 1)
}
