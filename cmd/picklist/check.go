package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// newCheckCmd verifies that the configured credentials can obtain a token.
// It is a probe: no recipe lookup and no output file.
func newCheckCmd(opts *options, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the configured credentials against the identity service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger(stderr, opts.verbose)

			cfg, client, err := loadClient(opts, logger)
			if err != nil {
				return err
			}

			if _, err := client.Authenticate(cmd.Context(), cfg.Credentials); err != nil {
				return err
			}

			fmt.Fprintf(stdout, "Credentials OK for %s (%s)\n", cfg.Credentials.Username, cfg.Credentials.Country)
			return nil
		},
	}
}
