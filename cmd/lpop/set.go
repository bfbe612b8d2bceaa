package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/benaskins/lpop/internal/envfile"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var setFile string

var setCmd = &cobra.Command{
	Use:   "set [KEY [VALUE]]",
	Short: "Set environment variable(s)",
	Long: "Store a variable in the keychain. If VALUE is omitted, reads from stdin\n" +
		"(prompting when interactive). With --file, imports every pair from a .env file.",
	Args: cobra.MaximumNArgs(2),
	RunE: runSet,
}

func init() {
	setCmd.Flags().StringVarP(&setFile, "file", "f", "", "read variables from a .env file")
	rootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
	ctx, err := newContext("cli")
	if err != nil {
		return err
	}
	defer ctx.Close()

	if setFile != "" {
		return importFile(ctx, setFile)
	}

	if len(args) == 0 {
		return fmt.Errorf("must provide either KEY or --file")
	}

	key := args[0]
	var value string
	if len(args) == 2 {
		value = args[1]
	} else {
		value, err = readSecret()
		if err != nil {
			return err
		}
	}

	return setVar(ctx, key, value)
}

// setVar stores one variable and reports success.
func setVar(ctx *cmdContext, key, value string) error {
	if err := ctx.store.SetPassword(ctx.service, key, value, nil); err != nil {
		return err
	}
	fmt.Printf("%s Set %s in %s environment\n", color.GreenString("✓"), key, ctx.env)
	return nil
}

// importFile stores every pair from a .env file, in key order so the audit
// log stays deterministic.
func importFile(ctx *cmdContext, path string) error {
	vars, err := envfile.ParseFile(path)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := ctx.store.SetPassword(ctx.service, key, vars[key], nil); err != nil {
			return fmt.Errorf("setting %s: %w", key, err)
		}
	}

	fmt.Printf("%s Set %d variables from %s in %s environment\n",
		color.GreenString("✓"), len(vars), path, ctx.env)
	return nil
}

// readSecret reads a value from stdin, prompting without echo when stdin is
// a terminal.
func readSecret() (string, error) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Print("Enter value: ")
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return "", fmt.Errorf("reading value: %w", err)
		}
		fmt.Println()
		return string(b), nil
	}

	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return chomp(string(b)), nil
}

// chomp removes the single trailing newline a pipe appends. Any further
// trailing newlines are part of the secret and stay.
func chomp(s string) string {
	return strings.TrimSuffix(s, "\n")
}
