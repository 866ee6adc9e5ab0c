package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vmunix/mediascan/internal/options"
)

var showsCmd = &cobra.Command{
	Use:   "shows",
	Short: "List shows registered in the options file",
	Args:  cobra.NoArgs,
	RunE:  runShowsList,
}

var showsLockCmd = &cobra.Command{
	Use:   "lock <show>...",
	Short: "Silence the report for shows",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShowsSetLocked(cmd, args, true)
	},
}

var showsUnlockCmd = &cobra.Command{
	Use:   "unlock <show>...",
	Short: "Report on shows again",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShowsSetLocked(cmd, args, false)
	},
}

func init() {
	showsCmd.AddCommand(showsLockCmd)
	showsCmd.AddCommand(showsUnlockCmd)
	rootCmd.AddCommand(showsCmd)
}

func loadOptions() (*options.File, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return options.Load(cfg.Report.OptionsFile, newLogger(cfg))
}

func runShowsList(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions()
	if err != nil {
		return err
	}
	printShows(cmd.OutOrStdout(), opts)
	return nil
}

func printShows(w io.Writer, opts *options.File) {
	names := opts.Names()
	if len(names) == 0 {
		fmt.Fprintf(w, "No shows registered in %s.\n", opts.Path())
		return
	}
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		s, _ := opts.Get(name)
		locked := "no"
		if s.Locked {
			locked = "yes"
		}
		rows = append(rows, []string{name, locked})
	}
	fmt.Fprintln(w, renderTable([]string{"Show", "Locked"}, rows, nil))
}

func runShowsSetLocked(cmd *cobra.Command, names []string, locked bool) error {
	opts, err := loadOptions()
	if err != nil {
		return err
	}
	setLocked(opts, names, locked)
	if err := opts.Save(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s updated.\n", opts.Path())
	return nil
}

func setLocked(opts *options.File, names []string, locked bool) {
	for _, name := range names {
		opts.SetLocked(name, locked)
	}
}
