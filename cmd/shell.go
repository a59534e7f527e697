package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive planner shell with history and tab completion",
	Args:  exactArgs(0, "shell"),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell(cmd)
	},
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lifeplan_history")
}

func runShell(cmd *cobra.Command) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(complete)

	if f, err := os.Open(historyFile()); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer saveHistory(line)

	bold.Printf("lifeplan shell (%s)\n", cfg.Client.ServerURL)
	fmt.Println("Type 'help' for commands, 'exit' to leave.")
	fmt.Println()

	for {
		input, err := line.Prompt("lifeplan> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Println("\nBye!")
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		args, err := splitArgs(input)
		if err != nil {
			fmt.Println("❌", err)
			continue
		}

		switch args[0] {
		case "exit", "quit", "q":
			fmt.Println("Bye!")
			return nil
		case "help", "?":
			if len(args) == 1 {
				rootCmd.Help()
				continue
			}
		case "clear", "cls":
			fmt.Print("\033[H\033[2J")
			continue
		case "shell":
			fmt.Println("❌ already in the shell")
			continue
		}

		rootCmd.SetArgs(args)
		if err := rootCmd.ExecuteContext(cmd.Context()); err != nil {
			fmt.Println("❌", err)
		}
		resetFlags(rootCmd)
	}
}

func saveHistory(line *liner.State) {
	if path := historyFile(); path != "" {
		if f, err := os.Create(path); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}
}

// complete offers command names for the first word and subcommand names for
// the second.
func complete(input string) []string {
	words := strings.Fields(input)
	trailing := strings.HasSuffix(input, " ")

	parent := rootCmd
	prefix := ""
	switch {
	case len(words) == 0:
	case len(words) == 1 && !trailing:
		prefix = words[0]
	case len(words) == 1 && trailing, len(words) == 2 && !trailing:
		sub, _, err := rootCmd.Find(words[:1])
		if err != nil || sub == rootCmd {
			return nil
		}
		parent = sub
		prefix = words[0] + " "
		if len(words) == 2 {
			prefix += words[1]
		}
	default:
		return nil
	}

	lead, partial := "", prefix
	if i := strings.LastIndex(prefix, " "); i >= 0 {
		lead, partial = prefix[:i+1], prefix[i+1:]
	}

	var completions []string
	for _, c := range parent.Commands() {
		if c.Hidden || !c.IsAvailableCommand() {
			continue
		}
		if strings.HasPrefix(c.Name(), partial) {
			completions = append(completions, lead+c.Name())
		}
	}
	if parent == rootCmd {
		for _, w := range []string{"exit", "help", "clear"} {
			if strings.HasPrefix(w, partial) {
				completions = append(completions, w)
			}
		}
	}
	return completions
}

// splitArgs splits a shell line into words. Single and double quotes group
// words and a backslash escapes the next character outside single quotes.
func splitArgs(s string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)
	for _, r := range s {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				args = append(args, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote", quote)
	}
	if escaped {
		return nil, errors.New("trailing backslash")
	}
	if inWord {
		args = append(args, cur.String())
	}
	return args, nil
}

// resetFlags restores every flag of cmd and its subcommands to its default so
// the next shell line starts clean.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if !f.Changed {
			return
		}
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			sv.Replace([]string{})
		} else {
			f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
