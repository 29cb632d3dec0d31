package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"AuraFM/core/catalog"
)

var catalogFile string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the local track catalog",
	Long:  `Validate a catalog JSON file, or show the bundled catalog when no file is given.`,
	Run: func(cmd *cobra.Command, args []string) {
		var c *catalog.Catalog
		if catalogFile != "" {
			loaded, err := catalog.NewFromFile(catalogFile)
			if err != nil {
				log.Fatalf("Invalid catalog file %s: %v", catalogFile, err)
			}
			c = loaded
			fmt.Printf("Catalog file %s is valid\n", catalogFile)
		} else {
			c = catalog.New()
			fmt.Println("Bundled catalog")
		}

		fmt.Printf("Tracks: %d\n", c.Len())
		for _, track := range c.Page(0, 10) {
			fmt.Printf("  %-16s %s - %s [%s]\n", track.TrackID, track.Artist, track.Title, track.Genre)
		}
		if c.Len() > 10 {
			fmt.Printf("  ... and %d more\n", c.Len()-10)
		}
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)

	catalogCmd.Flags().StringVarP(&catalogFile, "file", "f", "", "catalog JSON file to validate")
}
