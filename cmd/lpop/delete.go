package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var deleteAll bool

var deleteCmd = &cobra.Command{
	Use:     "delete [KEY]",
	Short:   "Delete environment variable(s)",
	Aliases: []string{"rm"},
	Args:    cobra.MaximumNArgs(1),
	RunE:    runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteAll, "all", "a", false, "delete every variable in this environment")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx, err := newContext("cli")
	if err != nil {
		return err
	}
	defer ctx.Close()

	if deleteAll {
		entries, err := ctx.store.FindEntries(ctx.service, nil)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if _, err := ctx.store.DeletePassword(ctx.service, e.Account); err != nil {
				return fmt.Errorf("deleting %s: %w", e.Account, err)
			}
		}
		fmt.Printf("%s Deleted %d variables in %s environment\n",
			color.GreenString("✓"), len(entries), ctx.env)
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("must provide either KEY or --all")
	}

	removed, err := ctx.store.DeletePassword(ctx.service, args[0])
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("variable %q not found in %s environment", args[0], ctx.env)
	}
	fmt.Printf("%s Deleted %s from %s environment\n", color.GreenString("✓"), args[0], ctx.env)
	return nil
}
