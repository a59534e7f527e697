package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fatih/color"
	"github.com/ridoystarlord/lifeplan/cache"
	"github.com/ridoystarlord/lifeplan/client"
	"github.com/ridoystarlord/lifeplan/loader"
	"github.com/ridoystarlord/lifeplan/schema"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

var clog = commonlog.GetLogger("lifeplan.cli")

var (
	bold  = color.New(color.Bold)
	green = color.New(color.FgGreen, color.Bold)
	blue  = color.New(color.FgBlue, color.Bold)
	faint = color.New(color.Faint)
)

// clientCommands returns every command that talks to the planner server.
func clientCommands() []*cobra.Command {
	return []*cobra.Command{
		checklistCmd("goals", "goal", (*client.Client).Goals),
		checklistCmd("courses", "course", (*client.Client).Courses),
		wishlistCmd,
		booksCmd,
		yearsCmd,
		calendarCmd,
		plansCmd,
		habitsCmd,
		gratitudeCmd,
		bestCmd,
		monthsCmd,
		monthCmd,
		popupsCmd,
		reviewCmd,
		workCmd,
	}
}

func newClient() *client.Client {
	return client.New(cfg.Client.ServerURL, cfg.Client.Timeout())
}

func yearMirror() *cache.Mirror {
	return cache.New(cfg.Client.DataDir)
}

// touched refreshes the local mirror of year after a change, when one is kept.
func touched(ctx context.Context, c *client.Client, year int) {
	m := yearMirror()
	if !m.Exists(year) {
		return
	}
	if err := m.Snapshot(ctx, year, c); err != nil {
		clog.Warningf("mirror of %d not refreshed: %s", year, err)
	}
}

func parseYear(s string) (int, error) {
	y, err := strconv.Atoi(s)
	if err != nil || y < 1 || y > 9999 {
		return 0, fmt.Errorf("invalid year %q", s)
	}
	return y, nil
}

func parseMonth(s string) (string, error) {
	m, ok := schema.CanonicalMonth(s)
	if !ok {
		return "", fmt.Errorf("invalid month %q", s)
	}
	return m, nil
}

// yearMonth parses the leading <year> <month> arguments.
func yearMonth(args []string) (int, string, error) {
	year, err := parseYear(args[0])
	if err != nil {
		return 0, "", err
	}
	month, err := parseMonth(args[1])
	return year, month, err
}

func success(format string, a ...any) {
	fmt.Println("✅ " + fmt.Sprintf(format, a...))
}

func heading(format string, a ...any) {
	blue.Printf("📋 "+format+"\n", a...)
}

func checkbox(done bool) string {
	if done {
		return green.Sprint("[✔]")
	}
	return "[ ]"
}

func empty(what string) {
	faint.Printf("   (no %s)\n", what)
}

// readImage opens a local image for upload.
func readImage(path string) (*os.File, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	return f, filepath.Base(path), nil
}

func builtinDefaults() loader.Defaults {
	return loader.MustBuiltin()
}

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return fmt.Errorf("usage: %s", usage)
		}
		return nil
	}
}

func minArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return fmt.Errorf("usage: %s", usage)
		}
		return nil
	}
}
