// Package main provides the pubmail CLI: rank cited publications and e-mail their authors.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pubmail",
	Short: "Thank the authors of a journal's most cited papers",
	Long: `pubmail merges Web of Science publication exports with a Citation Report, ranks the
merged records by a citation metric and writes one personalised e-mail per top record,
optionally sending it over SMTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
