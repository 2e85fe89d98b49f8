package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"vega/internal/batch"
	"vega/internal/config"
	"vega/internal/types"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] path...",
	Short: "Load and execute one or more .vgs scripts against a fresh type table",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRun,
}

func init() {
	runCmd.Flags().Bool("gc-at-end", false, "run garbage collection once every script has executed")
}

func runRun(cmd *cobra.Command, args []string) error {
	jobs, err := cmd.Root().PersistentFlags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	gcAtEnd, err := cmd.Flags().GetBool("gc-at-end")
	if err != nil {
		return fmt.Errorf("failed to get gc-at-end flag: %w", err)
	}
	cfg, found, err := config.Load(".")
	if err != nil {
		return err
	}
	limits := types.DefaultLimits()
	if found {
		limits = cfg.TableLimits()
	}

	colorFlag := cfg.Output.Color
	if colorFlag == "" {
		colorFlag = "auto"
	}
	if cmd.Root().PersistentFlags().Changed("color") {
		colorFlag, err = cmd.Root().PersistentFlags().GetString("color")
		if err != nil {
			return fmt.Errorf("failed to get color flag: %w", err)
		}
	}
	color.NoColor = !(colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout)))

	quiet := cfg.Output.Quiet
	if cmd.Root().PersistentFlags().Changed("quiet") {
		quiet, err = cmd.Root().PersistentFlags().GetBool("quiet")
		if err != nil {
			return fmt.Errorf("failed to get quiet flag: %w", err)
		}
	}

	if !quiet {
		fmt.Fprintln(cmd.OutOrStdout(), color.New(color.FgHiBlack).Sprint(config.Message(cfg.Path, found)))
	}

	scripts, err := loadScripts(cmd.Context(), args, jobs)
	if err != nil {
		return err
	}

	tbl := types.Init(limits)
	defer tbl.Close()

	errColor := color.New(color.FgRed, color.Bold)
	okColor := color.New(color.FgGreen)

	failed := false
	for _, script := range scripts {
		res, err := batch.Run(tbl, script)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %s: %v\n", errColor.Sprint("error"), script.Path, err)
			failed = true
			continue
		}
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %d commands executed\n", okColor.Sprint("ok"), script.Path, len(res.IDs))
		}
	}

	if gcAtEnd {
		reclaimed := tbl.GC()
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "gc: reclaimed %d types\n", reclaimed)
		}
	}

	if !quiet {
		stat := tbl.Stat()
		fmt.Fprintf(cmd.OutOrStdout(), "final table: %d live, %d free, %d hash-cons entries\n",
			stat.Live, stat.Free, stat.HashConsEntries)
	}

	if failed {
		return fmt.Errorf("one or more scripts failed")
	}
	return nil
}

// loadScripts expands args (files or directories of ".vgs" scripts)
// into a flat, deterministically ordered file list, then parses all of
// them in parallel through a shared on-disk cache: a second run over an
// unchanged script skips re-parsing entirely.
func loadScripts(ctx context.Context, args []string, jobs int) ([]*batch.Script, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			found, err := batch.ListScripts(arg)
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
			continue
		}
		files = append(files, arg)
	}

	// The cache is best-effort: a broken XDG cache dir must not block a run.
	cache, _ := batch.OpenCache("vega")

	return batch.LoadFiles(ctx, files, jobs, cache)
}
