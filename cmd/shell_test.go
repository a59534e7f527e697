package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitArgs(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{`years list`, []string{"years", "list"}},
		{`  goals   add  "Run 50km"  `, []string{"goals", "add", "Run 50km"}},
		{`gratitude add 2026 2026-05-01 'sun, "finally"'`, []string{"gratitude", "add", "2026", "2026-05-01", `sun, "finally"`}},
		{`work note Office it\'s\ done`, []string{"work", "note", "Office", "it's done"}},
		{`books add "" --author x`, []string{"books", "add", "", "--author", "x"}},
	}
	for _, tc := range cases {
		got, err := splitArgs(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := splitArgs(`goals add "open`)
	assert.ErrorContains(t, err, "unterminated")
	_, err = splitArgs(`goals add x\`)
	assert.Error(t, err)
}

func TestResetFlags(t *testing.T) {
	var (
		title   string
		authors []string
		done    bool
	)
	root := &cobra.Command{Use: "root"}
	child := &cobra.Command{Use: "child", Run: func(*cobra.Command, []string) {}}
	child.Flags().StringVar(&title, "title", "none", "")
	child.Flags().StringSliceVar(&authors, "author", nil, "")
	child.Flags().BoolVar(&done, "done", false, "")
	root.AddCommand(child)

	root.SetArgs([]string{"child", "--title", "Dune", "--author", "Herbert", "--author", "Anderson", "--done"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "Dune", title)
	assert.Equal(t, []string{"Herbert", "Anderson"}, authors)
	assert.True(t, done)

	resetFlags(root)
	assert.Equal(t, "none", title)
	assert.Empty(t, authors)
	assert.False(t, done)
	assert.False(t, child.Flags().Changed("title"))

	root.SetArgs([]string{"child", "--author", "Le Guin"})
	require.NoError(t, root.Execute())
	assert.Equal(t, []string{"Le Guin"}, authors)
}

func TestCompleteCommands(t *testing.T) {
	assert.Contains(t, complete("mon"), "months")
	assert.Contains(t, complete("mon"), "month")
	assert.Contains(t, complete("ex"), "exit")
	assert.ElementsMatch(t, []string{"month goals"}, complete("month go"))
	assert.Contains(t, complete("work "), "work rename")
	assert.Nil(t, complete("nosuch "))
	assert.Nil(t, complete("month goals add "))
}
