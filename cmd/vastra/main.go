package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vastra",
	Short: "Vastra — e-commerce API server CLI",
	Long:  "Vastra is an e-commerce REST API over MongoDB. Use this CLI to run and manage the service.",
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)
	rootCmd.AddCommand(dbIndexesCmd)
	rootCmd.AddCommand(dbSeedCmd)
}
