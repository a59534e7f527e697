package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ridoystarlord/lifeplan/client"
	"github.com/ridoystarlord/lifeplan/schema"
	"github.com/ridoystarlord/lifeplan/store"
	"github.com/spf13/cobra"
)

// Habit tracker

var habitsCmd = &cobra.Command{
	Use:   "habits",
	Short: "Track weekly habits",
}

var habitsShowCmd = &cobra.Command{
	Use:   "show <year>",
	Short: "Show the habit weeks of a year",
	Args:  exactArgs(1, "habits show <year>"),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := parseYear(args[0])
		if err != nil {
			return err
		}
		weeks, err := newClient().HabitTracker(cmd.Context(), year)
		if err != nil {
			return err
		}
		printHabitWeeks(weeks)
		return nil
	},
}

func printHabitWeeks(weeks store.HabitWeeks) {
	if len(weeks) == 0 {
		empty("habit weeks")
		return
	}
	keys := make([]string, 0, len(weeks))
	for k := range weeks {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		heading("%s", k)
		for _, day := range schema.Weekdays {
			tasks, ok := weeks[k][day]
			if !ok {
				continue
			}
			fmt.Printf("   %s\n", bold.Sprint(day))
			for _, t := range tasks {
				fmt.Printf("      %s %s\n", checkbox(t.Completed), t.Task)
			}
		}
	}
}

func weekday(s string) (string, error) {
	d, ok := schema.CanonicalWeekday(s)
	if !ok {
		return "", fmt.Errorf("invalid weekday %q", s)
	}
	return d, nil
}

func habitState(completed bool) func(*cobra.Command, []string) error {
	return yearTask(func(cmd *cobra.Command, c *client.Client, year int, args []string) (string, error) {
		day, err := weekday(args[0])
		if err != nil {
			return "", err
		}
		state := map[bool]string{true: "done", false: "open"}[completed]
		return fmt.Sprintf("%s: %q %s", day, args[1], state), c.SetHabitState(cmd.Context(), year, day, args[1], completed)
	})
}

// Gratitude diary

var gratitudeCmd = &cobra.Command{
	Use:   "gratitude",
	Short: "Keep the gratitude diary of a year",
}

var gratitudeListCmd = &cobra.Command{
	Use:   "list <year>",
	Short: "List gratitude entries",
	Args:  exactArgs(1, "gratitude list <year>"),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := parseYear(args[0])
		if err != nil {
			return err
		}
		entries, err := newClient().Gratitude(cmd.Context(), year)
		if err != nil {
			return err
		}
		heading("Gratitude diary %d", year)
		if len(entries) == 0 {
			empty("entries")
		}
		for _, e := range entries {
			fmt.Printf("   🙏 %s  %s\n", blue.Sprint(e.Date), e.Entry)
		}
		return nil
	},
}

// Review

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Answer the end-of-year review",
}

var reviewShowCmd = &cobra.Command{
	Use:   "show <year>",
	Short: "Show the review questions and answers",
	Args:  exactArgs(1, "review show <year>"),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := parseYear(args[0])
		if err != nil {
			return err
		}
		answers, err := newClient().Review(cmd.Context(), year)
		if err != nil {
			return err
		}
		heading("Review %d", year)
		for i, a := range answers {
			fmt.Printf("   %d. %s\n", i+1, bold.Sprint(a.Question))
			if strings.TrimSpace(a.Answer) == "" {
				faint.Println("      (not answered)")
				continue
			}
			fmt.Printf("      %s\n", a.Answer)
		}
		return nil
	},
}

var reviewAnswerCmd = &cobra.Command{
	Use:   "answer <year> <question> <answer>",
	Short: "Answer one review question",
	Long: `Answer one review question. The question may be given by its number
as shown by 'review show'.`,
	Args: exactArgs(3, "review answer <year> <question|number> <answer>"),
	RunE: yearTask(func(cmd *cobra.Command, c *client.Client, year int, args []string) (string, error) {
		question := args[0]
		if n, err := strconv.Atoi(question); err == nil {
			answers, err := c.Review(cmd.Context(), year)
			if err != nil {
				return "", err
			}
			if n < 1 || n > len(answers) {
				return "", fmt.Errorf("no question number %d", n)
			}
			question = answers[n-1].Question
		}
		err := c.UpdateReview(cmd.Context(), year, []store.ReviewAnswer{{Question: question, Answer: args[1]}})
		return fmt.Sprintf("answered %q", question), err
	}),
}

func init() {
	habitsCmd.AddCommand(
		habitsShowCmd,
		&cobra.Command{
			Use:   "start <year> <date>",
			Short: "Move the current habit week to start on date",
			Args:  exactArgs(2, "habits start <year> <YYYY-MM-DD>"),
			RunE: yearTask(func(cmd *cobra.Command, c *client.Client, year int, args []string) (string, error) {
				return "week now starts on " + args[0], c.SetHabitWeekStart(cmd.Context(), year, args[0])
			}),
		},
		&cobra.Command{
			Use:   "check <year> <weekday> <task>",
			Short: "Mark a habit as done",
			Args:  exactArgs(3, "habits check <year> <weekday> <task>"),
			RunE:  habitState(true),
		},
		&cobra.Command{
			Use:   "uncheck <year> <weekday> <task>",
			Short: "Mark a habit as not done",
			Args:  exactArgs(3, "habits uncheck <year> <weekday> <task>"),
			RunE:  habitState(false),
		},
		&cobra.Command{
			Use:   "reset <year>",
			Short: "Clear every habit state of the year",
			Args:  exactArgs(1, "habits reset <year>"),
			RunE: yearTask(func(cmd *cobra.Command, c *client.Client, year int, args []string) (string, error) {
				return "habit states cleared", c.ResetHabitStates(cmd.Context(), year)
			}),
		},
		&cobra.Command{
			Use:   "edit <year> <week-start> <weekday> [task...]",
			Short: "Replace the habits of one weekday",
			Args:  minArgs(3, "habits edit <year> <YYYY-MM-DD> <weekday> [task...]"),
			RunE: yearTask(func(cmd *cobra.Command, c *client.Client, year int, args []string) (string, error) {
				day, err := weekday(args[1])
				if err != nil {
					return "", err
				}
				tasks := args[2:]
				return fmt.Sprintf("%s now has %d habit(s)", day, len(tasks)), c.EditHabitDay(cmd.Context(), year, args[0], day, tasks)
			}),
		},
	)

	gratitudeCmd.AddCommand(
		gratitudeListCmd,
		&cobra.Command{
			Use:   "add <year> <date> <entry>",
			Short: "Add a gratitude entry",
			Args:  exactArgs(3, "gratitude add <year> <YYYY-MM-DD> <entry>"),
			RunE: yearTask(func(cmd *cobra.Command, c *client.Client, year int, args []string) (string, error) {
				return "entry added for " + args[0], c.AddGratitude(cmd.Context(), year, args[0], args[1])
			}),
		},
		&cobra.Command{
			Use:   "edit <year> <date> <entry>",
			Short: "Replace the gratitude entry of a date",
			Args:  exactArgs(3, "gratitude edit <year> <YYYY-MM-DD> <entry>"),
			RunE: yearTask(func(cmd *cobra.Command, c *client.Client, year int, args []string) (string, error) {
				return "entry updated for " + args[0], c.EditGratitude(cmd.Context(), year, args[0], args[1])
			}),
		},
		&cobra.Command{
			Use:   "rm <year> <date>",
			Short: "Delete the gratitude entry of a date",
			Args:  exactArgs(2, "gratitude rm <year> <YYYY-MM-DD>"),
			RunE: yearTask(func(cmd *cobra.Command, c *client.Client, year int, args []string) (string, error) {
				return "entry deleted for " + args[0], c.DeleteGratitude(cmd.Context(), year, args[0])
			}),
		},
	)

	reviewCmd.AddCommand(reviewShowCmd, reviewAnswerCmd)
}
