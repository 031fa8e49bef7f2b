package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "docdexd",
	Short: "Document index and query engine server",
	Long: `docdexd serves named document collections over HTTP: keyword and
fuzzy search, structured filter/sort/aggregate queries and exhaustive
vector search, with write-through persistence to a local directory or an
S3-compatible bucket.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "docdex.yml", "config file path")
}
