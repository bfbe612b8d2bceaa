package main

import (
	"fmt"

	"github.com/benaskins/lpop/internal/envfile"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [FILE]",
	Short: "Export variables to a .env file",
	Long: "Write every variable for the current repository and environment to a .env\n" +
		"file, or to stdout when FILE is omitted. An existing file keeps its comments\n" +
		"and ordering; only values change.",
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, err := newContext("cli")
	if err != nil {
		return err
	}
	defer ctx.Close()

	if len(args) == 0 {
		vars, err := serviceVars(ctx)
		if err != nil {
			return err
		}
		fmt.Print(envfile.Render(vars))
		return nil
	}
	return exportToFile(ctx, args[0])
}

// serviceVars collects every variable for the current service into a map.
func serviceVars(ctx *cmdContext) (map[string]string, error) {
	entries, err := ctx.store.FindEntries(ctx.service, nil)
	if err != nil {
		return nil, err
	}
	vars := make(map[string]string, len(entries))
	for _, e := range entries {
		vars[e.Account] = e.Password
	}
	return vars, nil
}

// exportToFile writes the current service's variables to a .env file,
// preserving an existing file's comments and ordering.
func exportToFile(ctx *cmdContext, path string) error {
	vars, err := serviceVars(ctx)
	if err != nil {
		return err
	}
	if err := envfile.WriteFile(path, vars, true); err != nil {
		return err
	}
	fmt.Printf("%s Exported %d variables to %s (%s environment)\n",
		color.GreenString("✓"), len(vars), path, ctx.env)
	return nil
}
