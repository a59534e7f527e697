package cmd

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/ridoystarlord/lifeplan/client"
	"github.com/ridoystarlord/lifeplan/schema"
	"github.com/ridoystarlord/lifeplan/store"
	"github.com/spf13/cobra"
)

var yearsCmd = &cobra.Command{
	Use:   "years",
	Short: "Manage planner years",
}

var yearsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List years",
	Args:  exactArgs(0, "years list"),
	RunE: func(cmd *cobra.Command, args []string) error {
		years, err := newClient().ListYears(cmd.Context())
		if err != nil {
			return err
		}
		heading("Years")
		if len(years) == 0 {
			empty("years")
		}
		m := yearMirror()
		for _, y := range years {
			mark := ""
			if m.Exists(y.Year) {
				mark = faint.Sprint(" (mirrored)")
			}
			fmt.Printf("   📅 %d%s\n", y.Year, mark)
		}
		return nil
	},
}

var yearsAddCmd = &cobra.Command{
	Use:   "add <year>",
	Short: "Create a year with its default pages",
	Args:  exactArgs(1, "years add <year>"),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := parseYear(args[0])
		if err != nil {
			return err
		}
		y, err := newClient().AddYear(cmd.Context(), year)
		if err != nil {
			return err
		}
		if err := yearMirror().Create(year, builtinDefaults()); err != nil {
			clog.Warningf("mirror of %d not created: %s", year, err)
		}
		success("year %d added (id %d)", y.Year, y.ID)
		return nil
	},
}

var yearsRemoveCmd = &cobra.Command{
	Use:   "rm <year>",
	Short: "Delete a year and everything in it",
	Args:  exactArgs(1, "years rm <year>"),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := parseYear(args[0])
		if err != nil {
			return err
		}
		if err := newClient().DeleteYear(cmd.Context(), year); err != nil {
			return err
		}
		if err := yearMirror().Delete(year); err != nil {
			clog.Warningf("%s", err)
		}
		success("year %d deleted", year)
		return nil
	},
}

var yearsRenameCmd = &cobra.Command{
	Use:   "rename <year> <new-year>",
	Short: "Change a year, shifting every date in it",
	Args:  exactArgs(2, "years rename <year> <new-year>"),
	RunE: func(cmd *cobra.Command, args []string) error {
		oldYear, err := parseYear(args[0])
		if err != nil {
			return err
		}
		newYear, err := parseYear(args[1])
		if err != nil {
			return err
		}
		if err := newClient().RenameYear(cmd.Context(), oldYear, newYear); err != nil {
			return err
		}
		if m := yearMirror(); m.Exists(oldYear) {
			if err := m.Rename(oldYear, newYear); err != nil {
				clog.Warningf("mirror of %d not renamed: %s", oldYear, err)
			}
		}
		success("year %d renamed to %d", oldYear, newYear)
		return nil
	},
}

// Calendar

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Manage calendar events of a year",
}

var calendarListCmd = &cobra.Command{
	Use:   "list <year>",
	Short: "List calendar events",
	Args:  exactArgs(1, "calendar list <year>"),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := parseYear(args[0])
		if err != nil {
			return err
		}
		events, err := newClient().Calendar(cmd.Context(), year)
		if err != nil {
			return err
		}
		heading("Calendar %d", year)
		if len(events) == 0 {
			empty("events")
		}
		for _, e := range events {
			fmt.Printf("   %s  %s\n", blue.Sprint(e.Date), e.Event)
		}
		return nil
	},
}

func calendarChange(add bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		year, err := parseYear(args[0])
		if err != nil {
			return err
		}
		c := newClient()
		if add {
			err = c.AddCalendarEvent(cmd.Context(), year, args[1], args[2])
		} else {
			err = c.DeleteCalendarEvent(cmd.Context(), year, args[1], args[2])
		}
		if err != nil {
			return err
		}
		touched(cmd.Context(), c, year)
		if add {
			success("event added on %s", args[1])
		} else {
			success("event removed from %s", args[1])
		}
		return nil
	}
}

// Yearly plans

var planDone bool

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "Manage the yearly plan of a year",
}

var plansListCmd = &cobra.Command{
	Use:   "list <year>",
	Short: "List yearly plans",
	Args:  exactArgs(1, "plans list <year>"),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := parseYear(args[0])
		if err != nil {
			return err
		}
		tasks, err := newClient().YearlyPlans(cmd.Context(), year)
		if err != nil {
			return err
		}
		heading("Yearly plans %d", year)
		printTasks(tasks)
		return nil
	},
}

func printTasks(tasks []store.PlanTask) {
	if len(tasks) == 0 {
		empty("tasks")
	}
	for _, t := range tasks {
		fmt.Printf("   %s %s\n", checkbox(t.Done), t.Task)
	}
}

// yearTask runs fn for commands shaped <year> <task> [...].
func yearTask(fn func(cmd *cobra.Command, c *client.Client, year int, args []string) (string, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		year, err := parseYear(args[0])
		if err != nil {
			return err
		}
		c := newClient()
		msg, err := fn(cmd, c, year, args[1:])
		if err != nil {
			return err
		}
		touched(cmd.Context(), c, year)
		success("%s", msg)
		return nil
	}
}

// Best in months

var bestCmd = &cobra.Command{
	Use:   "best",
	Short: "Manage the best-in-month pictures of a year",
}

var bestListCmd = &cobra.Command{
	Use:   "list <year>",
	Short: "List best-in-month pictures",
	Args:  exactArgs(1, "best list <year>"),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := parseYear(args[0])
		if err != nil {
			return err
		}
		items, err := newClient().BestInMonths(cmd.Context(), year)
		if err != nil {
			return err
		}
		heading("Best in months %d", year)
		if len(items) == 0 {
			empty("pictures")
		}
		for _, it := range items {
			fmt.Printf("   🌟 %-10s %s\n", it.Month, it.ImagePath)
		}
		return nil
	},
}

var bestSetCmd = &cobra.Command{
	Use:   "set <year> <month> <image-file>",
	Short: "Upload the best picture of a month",
	Args:  exactArgs(3, "best set <year> <month> <image-file>"),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		year, month, err := yearMonth(args)
		if err != nil {
			return err
		}
		f, name, err := readImage(args[2])
		if err != nil {
			return err
		}
		defer f.Close()

		c := newClient()
		p, err := c.UploadBestImage(ctx, year, name, f)
		if err != nil {
			return err
		}
		if err := c.SetBestInMonth(ctx, year, month, p); err != nil {
			return err
		}
		touched(ctx, c, year)
		success("best of %s %d set to %s", month, year, p)
		return nil
	},
}

var bestRemoveCmd = &cobra.Command{
	Use:   "rm <year> <month>",
	Short: "Remove the best picture of a month",
	Args:  exactArgs(2, "best rm <year> <month>"),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		year, month, err := yearMonth(args)
		if err != nil {
			return err
		}
		c := newClient()
		items, err := c.BestInMonths(ctx, year)
		if err != nil {
			return err
		}
		if err := c.DeleteBestInMonth(ctx, year, month); err != nil {
			return err
		}
		for _, it := range items {
			if it.Month != month || it.ImagePath == "" {
				continue
			}
			if err := c.DeleteBestImage(ctx, year, path.Base(it.ImagePath)); err != nil && !client.IsNotFound(err) {
				clog.Warningf("picture %s not removed: %s", it.ImagePath, err)
			}
		}
		touched(ctx, c, year)
		success("best of %s %d removed", month, year)
		return nil
	},
}

// Months overview

var monthsCmd = &cobra.Command{
	Use:   "months",
	Short: "Show and cycle the month icons of a year",
}

var monthsListCmd = &cobra.Command{
	Use:   "list <year>",
	Short: "Show the state icon of every month",
	Args:  exactArgs(1, "months list <year>"),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := parseYear(args[0])
		if err != nil {
			return err
		}
		states, err := newClient().MonthStates(cmd.Context(), year)
		if err != nil {
			return err
		}
		sort.SliceStable(states, func(i, j int) bool {
			return schema.MonthIndex(states[i].MonthName) < schema.MonthIndex(states[j].MonthName)
		})
		heading("Months %d", year)
		for _, s := range states {
			fmt.Printf("   %-10s %s\n", s.MonthName, faint.Sprint(s.IconPath))
		}
		return nil
	},
}

var monthsCycleCmd = &cobra.Command{
	Use:   "cycle <year> <month>",
	Short: "Advance the state icon of a month",
	Args:  exactArgs(2, "months cycle <year> <month>"),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		year, month, err := yearMonth(args)
		if err != nil {
			return err
		}
		c := newClient()
		states, err := c.MonthStates(ctx, year)
		if err != nil {
			return err
		}
		current := ""
		for _, s := range states {
			if strings.EqualFold(s.MonthName, month) {
				current = s.IconPath
			}
		}
		next := builtinDefaults().NextMonthState(current)
		if err := c.SetMonthIcon(ctx, year, month, next); err != nil {
			return err
		}
		success("%s %d is now %s", month, year, next)
		return nil
	},
}

var monthsIconCmd = &cobra.Command{
	Use:   "icon <year> <month> <icon-path>",
	Short: "Set the state icon of a month",
	Args:  exactArgs(3, "months icon <year> <month> <icon-path>"),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, month, err := yearMonth(args)
		if err != nil {
			return err
		}
		if err := newClient().SetMonthIcon(cmd.Context(), year, month, args[2]); err != nil {
			return err
		}
		success("%s %d icon set", month, year)
		return nil
	},
}

func init() {
	yearsCmd.AddCommand(yearsListCmd, yearsAddCmd, yearsRemoveCmd, yearsRenameCmd)

	calendarCmd.AddCommand(
		calendarListCmd,
		&cobra.Command{
			Use:   "add <year> <date> <event>",
			Short: "Add an event",
			Args:  exactArgs(3, "calendar add <year> <YYYY-MM-DD> <event>"),
			RunE:  calendarChange(true),
		},
		&cobra.Command{
			Use:   "rm <year> <date> <event>",
			Short: "Remove an event",
			Args:  exactArgs(3, "calendar rm <year> <YYYY-MM-DD> <event>"),
			RunE:  calendarChange(false),
		},
	)

	plansEditCmd := &cobra.Command{
		Use:   "edit <year> <task> <new-task>",
		Short: "Rewrite a yearly plan",
		Args:  exactArgs(3, "plans edit <year> <task> <new-task> [--done]"),
		RunE: yearTask(func(cmd *cobra.Command, c *client.Client, year int, args []string) (string, error) {
			return fmt.Sprintf("plan %q updated", args[1]), c.EditYearlyPlan(cmd.Context(), year, args[0], args[1], planDone)
		}),
	}
	plansEditCmd.Flags().BoolVar(&planDone, "done", false, "mark the plan as completed")

	plansCmd.AddCommand(
		plansListCmd,
		&cobra.Command{
			Use:   "add <year> <task>",
			Short: "Add a yearly plan",
			Args:  exactArgs(2, "plans add <year> <task>"),
			RunE: yearTask(func(cmd *cobra.Command, c *client.Client, year int, args []string) (string, error) {
				return fmt.Sprintf("plan %q added", args[0]), c.AddYearlyPlan(cmd.Context(), year, args[0], false)
			}),
		},
		&cobra.Command{
			Use:   "done <year> <task>",
			Short: "Mark a yearly plan as completed",
			Args:  exactArgs(2, "plans done <year> <task>"),
			RunE: yearTask(func(cmd *cobra.Command, c *client.Client, year int, args []string) (string, error) {
				return fmt.Sprintf("plan %q done", args[0]), c.SetYearlyPlanStatus(cmd.Context(), year, args[0], true)
			}),
		},
		&cobra.Command{
			Use:   "undo <year> <task>",
			Short: "Mark a yearly plan as open",
			Args:  exactArgs(2, "plans undo <year> <task>"),
			RunE: yearTask(func(cmd *cobra.Command, c *client.Client, year int, args []string) (string, error) {
				return fmt.Sprintf("plan %q reopened", args[0]), c.SetYearlyPlanStatus(cmd.Context(), year, args[0], false)
			}),
		},
		&cobra.Command{
			Use:   "rm <year> <task>",
			Short: "Delete a yearly plan",
			Args:  exactArgs(2, "plans rm <year> <task>"),
			RunE: yearTask(func(cmd *cobra.Command, c *client.Client, year int, args []string) (string, error) {
				return fmt.Sprintf("plan %q deleted", args[0]), c.DeleteYearlyPlan(cmd.Context(), year, args[0])
			}),
		},
		plansEditCmd,
	)

	bestCmd.AddCommand(bestListCmd, bestSetCmd, bestRemoveCmd)
	monthsCmd.AddCommand(monthsListCmd, monthsCycleCmd, monthsIconCmd)
}
