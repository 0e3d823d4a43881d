package main

import (
	"fmt"

	"github.com/Sentinel-Intelligence/sentinel-public/pkg/queries"
	"github.com/spf13/cobra"
)

func (a *app) queriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "queries [name]",
		Short: "List the example graph queries or print one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				query, err := queries.Get(args[0])
				if err != nil {
					return &usageError{message: err.Error()}
				}
				fmt.Fprintf(out, "// %s\n%s\n", query.Description, query.Cypher)
				return nil
			}

			names, err := queries.Names()
			if err != nil {
				return err
			}
			for _, name := range names {
				query, err := queries.Get(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-34s %s\n", name, query.Description)
			}
			return nil
		},
	}
}

func (a *app) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "sentinel-anchor %s\n", version)
			return nil
		},
	}
}
