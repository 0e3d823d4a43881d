package main

import (
	"encoding/json"
	"fmt"

	"github.com/Sentinel-Intelligence/sentinel-public/internal/snapshot"
	"github.com/Sentinel-Intelligence/sentinel-public/pkg/merkle"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	data  string
	file  string
	proof int
}

func (a *app) rootHashCommand() *cobra.Command {
	options := rootOptions{proof: -1}
	command := &cobra.Command{
		Use:   "root",
		Short: "Print the Merkle root of a record list without anchoring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRoot(cmd, options)
		},
	}
	command.Flags().StringVar(&options.data, "data", "", "inline JSON array or NDJSON records")
	command.Flags().StringVar(&options.file, "file", "", "records file (.br for brotli, - for stdin)")
	command.Flags().IntVar(&options.proof, "proof", -1, "also print the inclusion proof for this record index")
	command.Flags().Int("workers", 0, "parallel record hashing workers (0 uses all CPUs)")
	return command
}

func (a *app) runRoot(cmd *cobra.Command, options rootOptions) error {
	out := cmd.OutOrStdout()

	data, err := snapshot.Read(snapshot.Source{Data: options.data, Path: options.file, Stdin: cmd.InOrStdin()})
	if err != nil {
		return err
	}
	records, err := snapshot.Records(data)
	if err != nil {
		return err
	}
	leaves, err := merkle.LeafDigests(cmd.Context(), records, a.settings.Workers)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Records: %d\n", len(leaves))
	fmt.Fprintf(out, "Root: %s\n", merkle.Root(leaves).Hex())

	if options.proof < 0 {
		return nil
	}
	proof, err := merkle.Prove(leaves, options.proof)
	if err != nil {
		return &usageError{message: err.Error()}
	}
	encoded, err := json.MarshalIndent(proof, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode proof: %w", err)
	}
	fmt.Fprintf(out, "Leaf: %s\n", leaves[options.proof].Hex())
	fmt.Fprintf(out, "Proof: %s\n", encoded)
	return nil
}
