package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dgallion1/sumtree/internal/cache"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("81"))

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

var viewLevel int

var viewCmd = &cobra.Command{
	Use:   "view <file>",
	Short: "Print one abstraction level of a processed document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		store := cache.New(cfg.CacheDir, log)

		tree := store.Load(args[0])
		if tree == nil {
			return fmt.Errorf("no summary tree for %s (run `sumtree process` first)", args[0])
		}
		if viewLevel < 0 || viewLevel > tree.MaxLevel() {
			return fmt.Errorf("level %d out of range (tree has levels 0-%d)", viewLevel, tree.MaxLevel())
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, titleStyle.Render(tree.Metadata.Filename))
		fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("level %d of %d", viewLevel, tree.MaxLevel())))
		fmt.Fprintln(out)

		lastHeading := ""
		for _, c := range tree.Level(viewLevel) {
			if c.Heading != "" && c.Heading != lastHeading {
				fmt.Fprintln(out, headingStyle.Render(c.Heading))
				lastHeading = c.Heading
			}
			fmt.Fprintln(out, c.Content)
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	viewCmd.Flags().IntVarP(&viewLevel, "level", "l", 0, "Abstraction level to display (0 = original text)")
}
