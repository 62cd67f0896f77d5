package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pim",
	Short: "Product information management service",
	Long:  "PIM keeps products, variants, categories, attributes and clients, with an audit trail of every change.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
