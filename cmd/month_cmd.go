package cmd

import (
	"fmt"

	"github.com/ridoystarlord/lifeplan/client"
	"github.com/ridoystarlord/lifeplan/store"
	"github.com/spf13/cobra"
)

var monthCmd = &cobra.Command{
	Use:   "month",
	Short: "Work with the page of one month",
}

// monthTask runs fn for commands shaped <year> <month> [...].
func monthTask(fn func(cmd *cobra.Command, c *client.Client, year int, month string, args []string) (string, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		year, month, err := yearMonth(args)
		if err != nil {
			return err
		}
		c := newClient()
		msg, err := fn(cmd, c, year, month, args[2:])
		if err != nil {
			return err
		}
		touched(cmd.Context(), c, year)
		success("%s", msg)
		return nil
	}
}

var monthShowCmd = &cobra.Command{
	Use:   "show <year> <month>",
	Short: "Show the month page: details, goals and diary",
	Args:  exactArgs(2, "month show <year> <month>"),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		year, month, err := yearMonth(args)
		if err != nil {
			return err
		}
		c := newClient()
		details, err := c.MonthDetails(ctx, year, month)
		if err != nil {
			return err
		}
		goals, err := c.MonthGoals(ctx, year, month)
		if err != nil {
			return err
		}
		diary, err := c.MonthDiary(ctx, year, month)
		if err != nil {
			return err
		}

		heading("%s %d", month, year)
		faint.Printf("   banner %s · icon %s\n", details.Banner, details.IconPath)
		if details.ReadingLink != "" {
			fmt.Printf("   📚 %s\n", details.ReadingLink)
		}
		fmt.Println()
		bold.Println("   Goals")
		printTasks(goals)
		fmt.Println()
		bold.Println("   Diary")
		printDiary(diary)
		return nil
	},
}

func printDiary(tasks []store.DiaryTask) {
	if len(tasks) == 0 {
		empty("diary tasks")
	}
	last := ""
	for _, t := range tasks {
		if t.Date != last {
			fmt.Printf("   %s\n", blue.Sprint(t.Date))
			last = t.Date
		}
		fmt.Printf("      %s %s\n", checkbox(t.Completed), t.Task)
	}
}

var monthGoalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Manage the goals of a month",
}

var monthDiaryCmd = &cobra.Command{
	Use:   "diary",
	Short: "Manage the dated diary tasks of a month",
}

// Popups

var popupsCmd = &cobra.Command{
	Use:   "popups",
	Short: "Manage day colours and day notes of a month",
}

var popupsListCmd = &cobra.Command{
	Use:   "list <year> <month>",
	Short: "List day colours and notes",
	Args:  exactArgs(2, "popups list <year> <month>"),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		year, month, err := yearMonth(args)
		if err != nil {
			return err
		}
		c := newClient()
		colours, err := c.DayColours(ctx, year, month)
		if err != nil {
			return err
		}
		popups, err := c.DayPopups(ctx, year, month)
		if err != nil {
			return err
		}

		heading("%s %d", month, year)
		if len(colours) == 0 && len(popups) == 0 {
			empty("marked days")
		}
		for _, col := range colours {
			fmt.Printf("   🎨 %s  %s\n", blue.Sprint(col.Date), col.ColourCode)
		}
		for _, p := range popups {
			fmt.Printf("   💬 %s  %s\n", blue.Sprint(p.Date), p.PopupMessage)
		}
		return nil
	},
}

func init() {
	monthGoalsCmd.AddCommand(
		&cobra.Command{
			Use:   "list <year> <month>",
			Short: "List goals",
			Args:  exactArgs(2, "month goals list <year> <month>"),
			RunE: func(cmd *cobra.Command, args []string) error {
				year, month, err := yearMonth(args)
				if err != nil {
					return err
				}
				goals, err := newClient().MonthGoals(cmd.Context(), year, month)
				if err != nil {
					return err
				}
				heading("Goals of %s %d", month, year)
				printTasks(goals)
				return nil
			},
		},
		&cobra.Command{
			Use:   "add <year> <month> <task>",
			Short: "Add a goal",
			Args:  exactArgs(3, "month goals add <year> <month> <task>"),
			RunE: monthTask(func(cmd *cobra.Command, c *client.Client, year int, month string, args []string) (string, error) {
				return fmt.Sprintf("goal %q added", args[0]), c.AddMonthGoal(cmd.Context(), year, month, args[0], false)
			}),
		},
		&cobra.Command{
			Use:   "done <year> <month> <task>",
			Short: "Mark a goal as done",
			Args:  exactArgs(3, "month goals done <year> <month> <task>"),
			RunE: monthTask(func(cmd *cobra.Command, c *client.Client, year int, month string, args []string) (string, error) {
				return fmt.Sprintf("goal %q done", args[0]), c.SetMonthGoalState(cmd.Context(), year, month, args[0], true)
			}),
		},
		&cobra.Command{
			Use:   "undo <year> <month> <task>",
			Short: "Mark a goal as open",
			Args:  exactArgs(3, "month goals undo <year> <month> <task>"),
			RunE: monthTask(func(cmd *cobra.Command, c *client.Client, year int, month string, args []string) (string, error) {
				return fmt.Sprintf("goal %q reopened", args[0]), c.SetMonthGoalState(cmd.Context(), year, month, args[0], false)
			}),
		},
		&cobra.Command{
			Use:   "rm <year> <month> <task>",
			Short: "Delete a goal",
			Args:  exactArgs(3, "month goals rm <year> <month> <task>"),
			RunE: monthTask(func(cmd *cobra.Command, c *client.Client, year int, month string, args []string) (string, error) {
				return fmt.Sprintf("goal %q deleted", args[0]), c.DeleteMonthGoal(cmd.Context(), year, month, args[0])
			}),
		},
		&cobra.Command{
			Use:   "rename <year> <month> <task> <new-task>",
			Short: "Rename a goal",
			Args:  exactArgs(4, "month goals rename <year> <month> <task> <new-task>"),
			RunE: monthTask(func(cmd *cobra.Command, c *client.Client, year int, month string, args []string) (string, error) {
				return fmt.Sprintf("goal %q renamed to %q", args[0], args[1]), c.RenameMonthGoal(cmd.Context(), year, month, args[0], args[1])
			}),
		},
	)

	monthDiaryCmd.AddCommand(
		&cobra.Command{
			Use:   "list <year> <month>",
			Short: "List diary tasks",
			Args:  exactArgs(2, "month diary list <year> <month>"),
			RunE: func(cmd *cobra.Command, args []string) error {
				year, month, err := yearMonth(args)
				if err != nil {
					return err
				}
				tasks, err := newClient().MonthDiary(cmd.Context(), year, month)
				if err != nil {
					return err
				}
				heading("Diary of %s %d", month, year)
				printDiary(tasks)
				return nil
			},
		},
		&cobra.Command{
			Use:   "add <year> <month> <date> <task>",
			Short: "Add a diary task",
			Args:  exactArgs(4, "month diary add <year> <month> <YYYY-MM-DD> <task>"),
			RunE: monthTask(func(cmd *cobra.Command, c *client.Client, year int, month string, args []string) (string, error) {
				return fmt.Sprintf("task %q added on %s", args[1], args[0]), c.AddDiaryTask(cmd.Context(), year, month, args[0], args[1], false)
			}),
		},
		&cobra.Command{
			Use:   "done <year> <month> <date> <task>",
			Short: "Mark a diary task as done",
			Args:  exactArgs(4, "month diary done <year> <month> <YYYY-MM-DD> <task>"),
			RunE: monthTask(func(cmd *cobra.Command, c *client.Client, year int, month string, args []string) (string, error) {
				return fmt.Sprintf("task %q done", args[1]), c.SetDiaryTaskState(cmd.Context(), year, month, args[0], args[1], true)
			}),
		},
		&cobra.Command{
			Use:   "undo <year> <month> <date> <task>",
			Short: "Mark a diary task as open",
			Args:  exactArgs(4, "month diary undo <year> <month> <YYYY-MM-DD> <task>"),
			RunE: monthTask(func(cmd *cobra.Command, c *client.Client, year int, month string, args []string) (string, error) {
				return fmt.Sprintf("task %q reopened", args[1]), c.SetDiaryTaskState(cmd.Context(), year, month, args[0], args[1], false)
			}),
		},
		&cobra.Command{
			Use:   "rm <year> <month> <date> <task>",
			Short: "Delete a diary task",
			Args:  exactArgs(4, "month diary rm <year> <month> <YYYY-MM-DD> <task>"),
			RunE: monthTask(func(cmd *cobra.Command, c *client.Client, year int, month string, args []string) (string, error) {
				return fmt.Sprintf("task %q deleted", args[1]), c.DeleteDiaryTask(cmd.Context(), year, month, args[0], args[1])
			}),
		},
		&cobra.Command{
			Use:   "rename <year> <month> <date> <task> <new-task>",
			Short: "Rename a diary task",
			Args:  exactArgs(5, "month diary rename <year> <month> <YYYY-MM-DD> <task> <new-task>"),
			RunE: monthTask(func(cmd *cobra.Command, c *client.Client, year int, month string, args []string) (string, error) {
				return fmt.Sprintf("task %q renamed to %q", args[1], args[2]), c.RenameDiaryTask(cmd.Context(), year, month, args[0], args[1], args[2])
			}),
		},
	)

	monthCmd.AddCommand(
		monthShowCmd,
		&cobra.Command{
			Use:   "link <year> <month> <url>",
			Short: "Set the reading link of a month",
			Args:  exactArgs(3, "month link <year> <month> <url>"),
			RunE: monthTask(func(cmd *cobra.Command, c *client.Client, year int, month string, args []string) (string, error) {
				return "reading link updated", c.SetReadingLink(cmd.Context(), year, month, args[0])
			}),
		},
		monthGoalsCmd,
		monthDiaryCmd,
	)

	popupsCmd.AddCommand(
		popupsListCmd,
		&cobra.Command{
			Use:   "colour <year> <month> <date> <#rrggbb>",
			Short: "Colour a day",
			Args:  exactArgs(4, "popups colour <year> <month> <YYYY-MM-DD> <#rrggbb>"),
			RunE: monthTask(func(cmd *cobra.Command, c *client.Client, year int, month string, args []string) (string, error) {
				return args[0] + " coloured " + args[1], c.SetDayColour(cmd.Context(), year, month, args[0], args[1])
			}),
		},
		&cobra.Command{
			Use:   "note <year> <month> <date> <message>",
			Short: "Attach a note to a day",
			Args:  exactArgs(4, "popups note <year> <month> <YYYY-MM-DD> <message>"),
			RunE: monthTask(func(cmd *cobra.Command, c *client.Client, year int, month string, args []string) (string, error) {
				return "note saved on " + args[0], c.SetDayPopup(cmd.Context(), year, month, args[0], args[1])
			}),
		},
		&cobra.Command{
			Use:   "rm-colour <year> <month> <date>",
			Short: "Remove the colour of a day",
			Args:  exactArgs(3, "popups rm-colour <year> <month> <YYYY-MM-DD>"),
			RunE: monthTask(func(cmd *cobra.Command, c *client.Client, year int, month string, args []string) (string, error) {
				return "colour removed from " + args[0], c.DeleteDayColour(cmd.Context(), year, month, args[0])
			}),
		},
		&cobra.Command{
			Use:   "rm-note <year> <month> <date>",
			Short: "Remove the note of a day",
			Args:  exactArgs(3, "popups rm-note <year> <month> <YYYY-MM-DD>"),
			RunE: monthTask(func(cmd *cobra.Command, c *client.Client, year int, month string, args []string) (string, error) {
				return "note removed from " + args[0], c.DeleteDayPopup(cmd.Context(), year, month, args[0])
			}),
		},
	)
}
