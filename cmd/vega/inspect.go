package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"vega/internal/batch"
	"vega/internal/config"
	"vega/internal/tui"
	"vega/internal/types"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] path...",
	Short: "Load scripts into a table, then browse it interactively",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	jobs, err := cmd.Root().PersistentFlags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	cfg, found, err := config.Load(".")
	if err != nil {
		return err
	}
	limits := types.DefaultLimits()
	if found {
		limits = cfg.TableLimits()
	}

	scripts, err := loadScripts(cmd.Context(), args, jobs)
	if err != nil {
		return err
	}

	tbl := types.Init(limits)
	defer tbl.Close()

	for _, script := range scripts {
		if _, err := batch.Run(tbl, script); err != nil {
			return fmt.Errorf("%s: %w", script.Path, err)
		}
	}

	program := tea.NewProgram(tui.New(tbl))
	_, err = program.Run()
	return err
}
