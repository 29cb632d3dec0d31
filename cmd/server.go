package cmd

import (
	"github.com/spf13/cobra"

	"AuraFM/server"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the AuraFM server",
	Long:  `Start the AuraFM HTTP server serving the streaming, catalog and recommendation API.`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
