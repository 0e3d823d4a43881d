package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/Sentinel-Intelligence/sentinel-public/pkg/commitment"
	"github.com/Sentinel-Intelligence/sentinel-public/pkg/verify"
	"github.com/spf13/cobra"
)

type verifyOptions struct {
	fetch      bool
	expectHash string
}

func (a *app) verifyCommand() *cobra.Command {
	var options verifyOptions
	command := &cobra.Command{
		Use:   "verify <confirmation-id>",
		Short: "Print where an anchor can be inspected, optionally reading it back",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runVerify(cmd, args[0], options)
		},
	}
	command.Flags().BoolVar(&options.fetch, "fetch", false, "read the anchored memo back from the ledger")
	command.Flags().StringVar(&options.expectHash, "expect-hash", "", "fail unless the anchor commits to this hash (implies --fetch)")
	return command
}

func (a *app) runVerify(cmd *cobra.Command, id string, options verifyOptions) error {
	out := cmd.OutOrStdout()

	explorer, err := a.explorer()
	if err != nil {
		return &usageError{message: err.Error()}
	}
	locator, err := explorer.Locate(id)
	if err != nil {
		return &usageError{message: err.Error()}
	}
	fmt.Fprintf(out, "Verify TX %s at:\n", locator.ID)
	fmt.Fprintf(out, "  %s\n", locator.URL)

	expected := strings.ToLower(strings.TrimSpace(options.expectHash))
	if !options.fetch && expected == "" {
		return nil
	}

	source, err := a.newMemoSource(a.settings)
	if err != nil {
		return &usageError{message: err.Error()}
	}
	if expected == "" {
		payload, err := verify.Fetch(cmd.Context(), source, locator.ID)
		if err != nil {
			return err
		}
		printPayload(out, payload)
		return nil
	}

	payload, err := verify.Check(cmd.Context(), source, locator.ID, expected)
	if err != nil {
		return err
	}
	printPayload(out, payload)
	fmt.Fprintln(out, "Match: yes")
	return nil
}

func printPayload(out io.Writer, payload commitment.Payload) {
	fmt.Fprintf(out, "Anchored hash: %s\n", payload.Hash)
	fmt.Fprintf(out, "Event: %s\n", payload.Event)
	fmt.Fprintf(out, "Timestamp: %s\n", payload.Timestamp)
	fmt.Fprintf(out, "Version: %s\n", payload.Version)
}
