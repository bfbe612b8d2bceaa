package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	flagEnv string
	flagDir string
)

var rootCmd = &cobra.Command{
	Use:   "lpop",
	Short: "Secure environment variable manager using the system keychain",
	Long: "lpop maps env-var-like key/value pairs onto secrets in the OS keychain,\n" +
		"namespaced by the current repository and an environment label.\n\n" +
		"A bare argument is routed by shape: an existing file is imported,\n" +
		"KEY=VALUE is stored, a new .env path receives an export, and anything\n" +
		"else prints that variable's value.",
	Args:          cobra.MaximumNArgs(1),
	RunE:          runSmart,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagEnv, "env", "e", "", `environment name (default from config, else "development")`)
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "repository directory (default: current directory)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("✗"), err)
		os.Exit(1)
	}
}
