package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/valuetrack/internal/config"
	"github.com/vango-dev/valuetrack/internal/errors"
)

func initCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a default valuetrack.json",
		Long: `Write valuetrack.json with default settings into dir (default: the
current directory). With --force, an existing file is loaded, missing
settings are filled in with their defaults, and the result is written back.

Examples:
  valuetrack init
  valuetrack init ./deploy --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			path := filepath.Join(dir, config.ConfigFileName)
			out := cmd.OutOrStdout()

			if _, err := os.Stat(path); err == nil {
				if !force {
					return errors.New(errors.CodeConfigExists).
						WithDetail(path + " already exists")
				}
				cfg, err := config.Load(dir)
				if err != nil {
					return err
				}
				if err := cfg.Save(); err != nil {
					return err
				}
				fmt.Fprintf(out, "Updated %s\n", path)
				return nil
			}

			if err := config.New().SaveTo(path); err != nil {
				return err
			}
			fmt.Fprintf(out, "Created %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Fill in and rewrite an existing valuetrack.json")

	return cmd
}
