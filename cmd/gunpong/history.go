package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gunpong/internal/platform/tui"
	"github.com/vovakirdan/gunpong/internal/storage"
)

var (
	flagLimit int
	flagPlain bool
	flagClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent matches and win totals",
	Long: `Display recently finished matches with per-side and per-mode win counts.

On a terminal this opens an interactive table; use Tab to filter by mode.
With --plain, or when output is not a terminal, a static table is printed.

Examples:
  gunpong history
  gunpong history --limit 20 --plain
  gunpong history --clear`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of matches to show")
	historyCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a static table instead of the interactive view")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded matches")
}

func runHistory(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening match history: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearMatches(); err != nil {
			return err
		}
		fmt.Println("Match history cleared.")
		return nil
	}

	width, height, termErr := term.GetSize(int(os.Stdout.Fd()))
	if flagPlain || termErr != nil {
		return printHistory(store)
	}

	if err := tui.RunHistory(store, flagLimit, width, height); err != nil {
		return fmt.Errorf("running history: %w", err)
	}
	return nil
}

// printHistory writes recent matches and totals to stdout.
func printHistory(store *storage.Store) error {
	matches, err := store.RecentMatches(flagLimit)
	if err != nil {
		return err
	}
	stats, err := store.Stats()
	if err != nil {
		return err
	}

	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		return nil
	}

	fmt.Println("Recent matches:")
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "When", "Mode", "Score", "Winner", "Time")
	for _, m := range matches {
		secs := int(m.Duration.Seconds())
		t.Row(
			fmt.Sprintf("%d", m.ID),
			m.FinishedAt.Format("2006-01-02 15:04"),
			m.Mode,
			fmt.Sprintf("%d : %d", m.LeftScore, m.RightScore),
			m.Winner,
			fmt.Sprintf("%d:%02d", secs/60, secs%60),
		)
	}
	fmt.Println(t.String())

	fmt.Println()
	fmt.Printf("Total: %d matches, Left %d wins, Right %d wins\n", stats.Matches, stats.LeftWins, stats.RightWins)

	modes := make([]string, 0, len(stats.ByMode))
	for mode := range stats.ByMode {
		modes = append(modes, mode)
	}
	sort.Strings(modes)
	for _, mode := range modes {
		ms := stats.ByMode[mode]
		fmt.Printf("  %-5s %d matches, Left %d, Right %d\n", mode, ms.Matches, ms.LeftWins, ms.RightWins)
	}
	return nil
}
