package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petal-labs/jutge/cli/cachefile"
)

func (a *App) newCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the response cache",
		Long: `Manage the response cache. Outputs of functions listed in client_ttls
are kept on disk between runs until their TTL expires.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached response",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cachefile.Remove(a.cachePath); err != nil {
				return a.validationError(fmt.Errorf("failed to clear cache: %w", err))
			}
			fmt.Fprintln(a.stdout, "Cache cleared.")
			return nil
		},
	})

	return cmd
}
