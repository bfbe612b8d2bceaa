package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// inputKind classifies a bare argument to the root command.
type inputKind int

const (
	inputImportFile inputKind = iota
	inputPair
	inputExportPath
	inputKey
)

// classifyInput decides what bare `lpop INPUT` means: an existing file is
// imported, KEY=VALUE is stored, a path-looking name that does not exist yet
// receives an export, and anything else is read as a variable name.
func classifyInput(input string) inputKind {
	if _, err := os.Stat(input); err == nil {
		return inputImportFile
	}
	if strings.Contains(input, "=") {
		return inputPair
	}
	if strings.HasSuffix(input, ".env") || strings.Contains(input, "/") {
		return inputExportPath
	}
	return inputKey
}

func runSmart(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	input := args[0]

	ctx, err := newContext("cli")
	if err != nil {
		return err
	}
	defer ctx.Close()

	switch classifyInput(input) {
	case inputImportFile:
		return importFile(ctx, input)
	case inputPair:
		key, value, _ := strings.Cut(input, "=")
		if key == "" {
			return fmt.Errorf("invalid KEY=VALUE pair %q", input)
		}
		return setVar(ctx, key, value)
	case inputExportPath:
		return exportToFile(ctx, input)
	default:
		value, err := lookupValue(ctx, input)
		if err != nil {
			return err
		}
		fmt.Println(value)
		return nil
	}
}
