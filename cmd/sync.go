package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync [year...]",
	Short: "Refresh the local JSON mirror of one or more years",
	Long: `Download the planner data of each year into the local mirror
(data_dir/<year>.json). Without arguments every year known to the server is synced.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		c := newClient()

		var years []int
		if len(args) == 0 {
			all, err := c.ListYears(ctx)
			if err != nil {
				return err
			}
			for _, y := range all {
				years = append(years, y.Year)
			}
		}
		for _, a := range args {
			y, err := parseYear(a)
			if err != nil {
				return err
			}
			years = append(years, y)
		}
		if len(years) == 0 {
			fmt.Println("✅ No years to sync")
			return nil
		}

		m := yearMirror()
		failed := 0
		for _, y := range years {
			if err := m.Snapshot(ctx, y, c); err != nil {
				fmt.Printf("❌ %d: %v\n", y, err)
				failed++
				continue
			}
			success("%d → %s", y, m.Path(y))
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d year(s) failed to sync", failed, len(years))
		}
		return nil
	},
}
