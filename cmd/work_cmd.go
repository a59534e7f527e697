package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var workCmd = &cobra.Command{
	Use:   "work",
	Short: "Manage work places and their notes",
}

var workListCmd = &cobra.Command{
	Use:   "list",
	Short: "List work places",
	Args:  exactArgs(0, "work list"),
	RunE: func(cmd *cobra.Command, args []string) error {
		places, err := newClient().WorkPlaces(cmd.Context())
		if err != nil {
			return err
		}
		heading("Work places")
		if len(places) == 0 {
			empty("work places")
		}
		for _, p := range places {
			fmt.Printf("   💼 %s\n", p)
		}
		return nil
	},
}

var workNotesCmd = &cobra.Command{
	Use:   "notes <place>",
	Short: "List the notes of a work place, newest first",
	Args:  exactArgs(1, "work notes <place>"),
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := newClient().WorkNotes(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		heading("%s", args[0])
		if len(notes) == 0 {
			empty("notes")
		}
		for _, n := range notes {
			fmt.Printf("   %s  %s\n", faint.Sprint(n.CreatedAt.Local().Format("2006-01-02 15:04")), n.Text)
		}
		return nil
	},
}

func workChange(usage string, n int, run func(cmd *cobra.Command, args []string) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:  usage,
		Args: exactArgs(n, "work "+usage),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := run(cmd, args)
			if err != nil {
				return err
			}
			success("%s", msg)
			return nil
		},
	}
}

func init() {
	add := workChange("add <place>", 1, func(cmd *cobra.Command, args []string) (string, error) {
		id, err := newClient().AddWorkPlace(cmd.Context(), args[0])
		return fmt.Sprintf("work place %q added (id %d)", args[0], id), err
	})
	add.Short = "Add a work place"

	rm := workChange("rm <place>", 1, func(cmd *cobra.Command, args []string) (string, error) {
		return fmt.Sprintf("work place %q deleted", args[0]), newClient().DeleteWorkPlace(cmd.Context(), args[0])
	})
	rm.Short = "Delete a work place and its notes"

	rename := workChange("rename <place> <new-name>", 2, func(cmd *cobra.Command, args []string) (string, error) {
		return fmt.Sprintf("work place %q renamed to %q", args[0], args[1]), newClient().RenameWorkPlace(cmd.Context(), args[0], args[1])
	})
	rename.Short = "Rename a work place"

	note := workChange("note <place> <text>", 2, func(cmd *cobra.Command, args []string) (string, error) {
		id, err := newClient().AddWorkNote(cmd.Context(), args[0], args[1])
		return fmt.Sprintf("note added to %q (id %d)", args[0], id), err
	})
	note.Short = "Add a note to a work place"

	unnote := workChange("rm-note <place> <text>", 2, func(cmd *cobra.Command, args []string) (string, error) {
		return "note deleted", newClient().DeleteWorkNote(cmd.Context(), args[0], args[1])
	})
	unnote.Short = "Delete a note"

	edit := workChange("edit-note <place> <text> <new-text>", 3, func(cmd *cobra.Command, args []string) (string, error) {
		return "note updated", newClient().EditWorkNote(cmd.Context(), args[0], args[1], args[2])
	})
	edit.Short = "Rewrite a note"

	workCmd.AddCommand(workListCmd, workNotesCmd, add, rm, rename, note, unnote, edit)
}
