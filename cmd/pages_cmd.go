package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ridoystarlord/lifeplan/cache"
	"github.com/spf13/cobra"
)

var (
	notesFile string
	ideasFile string
)

func localPages() *cache.Pages {
	return cache.NewPages(cfg.Client.DataDir)
}

// textInput takes the text of an edit from --file (or stdin for "-") or from args.
func textInput(args []string, file string) (string, error) {
	switch {
	case file == "-":
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	case file != "":
		data, err := os.ReadFile(file)
		return string(data), err
	case len(args) > 0:
		return strings.Join(args, " "), nil
	}
	return "", errors.New("give the text as arguments or with --file")
}

var blogCmd = &cobra.Command{
	Use:   "blog",
	Short: "Blog page: to-do list and project notes (kept locally)",
}

var blogShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the blog page",
	Args:  exactArgs(0, "blog show"),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := localPages().Blog()
		if err != nil {
			return err
		}
		if b.Mail != "" {
			fmt.Printf("📌 %s\n", b.Mail)
		}
		heading("To do")
		printBlogTasks(b.ToDo)
		heading("Current projects")
		for _, s := range cache.ProjectSections {
			fmt.Printf("   %s\n", bold.Sprint(strings.ToUpper(s[:1])+s[1:]))
			if strings.TrimSpace(b.CurrentProjects[s]) == "" {
				faint.Println("      (empty)")
				continue
			}
			for _, line := range strings.Split(b.CurrentProjects[s], "\n") {
				fmt.Printf("      %s\n", line)
			}
		}
		if len(b.Links) > 0 {
			heading("Links")
			for _, l := range b.Links {
				fmt.Printf("   🔗 %s  %s\n", blue.Sprint(l.Link), l.Contents)
			}
		}
		return nil
	},
}

func printBlogTasks(tasks []cache.BlogTask) {
	if len(tasks) == 0 {
		empty("tasks")
	}
	for i, t := range tasks {
		fmt.Printf("   %2d %s %s\n", i+1, checkbox(t.Completed), t.Task)
	}
}

var blogTodoCmd = &cobra.Command{
	Use:   "todo",
	Short: "Manage the blog to-do list",
}

func blogTaskState(completed bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		task, err := localPages().SetTaskState(args[0], completed)
		if err != nil {
			return err
		}
		state := map[bool]string{true: "done", false: "reopened"}[completed]
		success("task %q %s", task, state)
		return nil
	}
}

var blogNotesCmd = &cobra.Command{
	Use:   "notes <section> [text...]",
	Short: "Replace the notes of a project section (prose, drawing, poems, music)",
	Args:  minArgs(1, "blog notes <section> [text...] [--file path]"),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := textInput(args[1:], notesFile)
		if err != nil {
			return err
		}
		if err := localPages().SetProject(args[0], text); err != nil {
			return err
		}
		success("%s notes saved", strings.ToLower(args[0]))
		return nil
	},
}

var ideasCmd = &cobra.Command{
	Use:   "ideas",
	Short: "Ideas and plans page (kept locally)",
}

var ideasEditCmd = &cobra.Command{
	Use:   "edit [text...]",
	Short: "Replace the ideas and plans text",
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := textInput(args, ideasFile)
		if err != nil {
			return err
		}
		if err := localPages().SetIdeas(text); err != nil {
			return err
		}
		success("ideas and plans saved")
		return nil
	},
}

func init() {
	blogTodoCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List the to-do items",
			Args:  exactArgs(0, "blog todo list"),
			RunE: func(cmd *cobra.Command, args []string) error {
				b, err := localPages().Blog()
				if err != nil {
					return err
				}
				heading("To do")
				printBlogTasks(b.ToDo)
				return nil
			},
		},
		&cobra.Command{
			Use:   "add <task>",
			Short: "Add a to-do item",
			Args:  exactArgs(1, "blog todo add <task>"),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := localPages().AddTask(args[0]); err != nil {
					return err
				}
				success("task %q added", strings.TrimSpace(args[0]))
				return nil
			},
		},
		&cobra.Command{
			Use:   "rm <task|number>",
			Short: "Delete a to-do item",
			Args:  exactArgs(1, "blog todo rm <task|number>"),
			RunE: func(cmd *cobra.Command, args []string) error {
				task, err := localPages().DeleteTask(args[0])
				if err != nil {
					return err
				}
				success("task %q deleted", task)
				return nil
			},
		},
		&cobra.Command{
			Use:   "done <task|number>",
			Short: "Mark a to-do item as done",
			Args:  exactArgs(1, "blog todo done <task|number>"),
			RunE:  blogTaskState(true),
		},
		&cobra.Command{
			Use:   "undo <task|number>",
			Short: "Mark a to-do item as open",
			Args:  exactArgs(1, "blog todo undo <task|number>"),
			RunE:  blogTaskState(false),
		},
	)

	blogNotesCmd.Flags().StringVarP(&notesFile, "file", "f", "", "read the notes from a file (- for stdin)")
	blogCmd.AddCommand(blogShowCmd, blogTodoCmd, blogNotesCmd)

	ideasEditCmd.Flags().StringVarP(&ideasFile, "file", "f", "", "read the text from a file (- for stdin)")
	ideasCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the ideas and plans text",
			Args:  exactArgs(0, "ideas show"),
			RunE: func(cmd *cobra.Command, args []string) error {
				text, err := localPages().Ideas()
				if err != nil {
					return err
				}
				heading("Ideas and plans")
				if strings.TrimSpace(text) == "" {
					empty("ideas yet")
					return nil
				}
				fmt.Println(text)
				return nil
			},
		},
		ideasEditCmd,
	)
}
