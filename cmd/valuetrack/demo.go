package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/valuetrack/internal/demo"
)

func demoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo [" + strings.Join(append(demo.Names(), "all"), "|") + "]",
		Short: "Run a scripted walkthrough",
		Long: `Run a scripted walkthrough and print the emission log of the
watched stream after every step.

Examples:
  valuetrack demo
  valuetrack demo chain
  valuetrack demo optional`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: append(demo.Names(), "all"),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "all"
			if len(args) == 1 {
				name = args[0]
			}
			return runDemo(cmd, name)
		},
	}
	return cmd
}

func runDemo(cmd *cobra.Command, name string) error {
	names := []string{name}
	if name == "all" {
		names = demo.Names()
	}

	out := cmd.OutOrStdout()
	for i, n := range names {
		s, err := demo.Lookup(n)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%s: %s\n", s.Name, s.Description)
		if err := s.Run(out); err != nil {
			return err
		}
	}
	return nil
}
