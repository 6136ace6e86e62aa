// Package cmd - serve command
package cmd

import (
	"github.com/spf13/cobra"

	"jewel-pricing/api"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the pricing API server",
	Long: `Start the HTTP API server.

The server exposes POST /reprice for self-contained pricing runs,
plus GET /health and GET /version.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return api.NewServer("0.1.0").ListenAndServe(serveAddr)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", ":8080", "listen address")
}
