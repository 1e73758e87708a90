package main

import (
	"github.com/spf13/cobra"

	"github.com/mizutanik/promptpulse/internal/config"
	"github.com/mizutanik/promptpulse/internal/server"
	"github.com/mizutanik/promptpulse/internal/usage"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the usage report over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := usage.Open(config.GetUsageDBPath())
			if err != nil {
				return err
			}
			defer store.Close()

			return server.New(port, store).Start()
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8787, "Server port")
	return cmd
}
