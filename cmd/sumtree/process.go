package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var forceRebuild bool

var processCmd = &cobra.Command{
	Use:   "process <file>",
	Short: "Build (or reuse) the summary tree for a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		orch, _ := newOrchestrator(cfg)
		tree, err := orch.Process(cmd.Context(), args[0], forceRebuild)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, titleStyle.Render(tree.Metadata.Filename))
		fmt.Fprintf(out, "%s %s\n", dimStyle.Render("Model:"), tree.Metadata.Model)
		fmt.Fprintf(out, "%s %s\n", dimStyle.Render("Hash:"), tree.Metadata.Hash[:16])
		for level := 0; level <= tree.MaxLevel(); level++ {
			fmt.Fprintf(out, "%s %d chunks\n",
				dimStyle.Render(fmt.Sprintf("Level %d:", level)),
				len(tree.Level(level)),
			)
		}
		return nil
	},
}

func init() {
	processCmd.Flags().BoolVar(&forceRebuild, "force", false, "Rebuild even if a valid cache record exists")
}
