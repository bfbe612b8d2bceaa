package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/benaskins/lpop/internal/gitservice"
	"github.com/benaskins/lpop/internal/keychain"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	getShowValues bool
	getAsJSON     bool
)

var getCmd = &cobra.Command{
	Use:   "get [KEY]",
	Short: "Get environment variable(s)",
	Long:  "Print one variable's value, or list every variable stored for the current repository and environment.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGet,
}

func init() {
	getCmd.Flags().BoolVar(&getShowValues, "show", false, "print values when listing all variables")
	getCmd.Flags().BoolVar(&getAsJSON, "json", false, "machine-readable JSON output")
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	ctx, err := newContext("cli")
	if err != nil {
		return err
	}
	defer ctx.Close()

	if len(args) == 1 {
		value, err := lookupValue(ctx, args[0])
		if err != nil {
			return err
		}
		if getAsJSON {
			b, err := json.Marshal(entryJSON{Key: args[0], Value: value})
			if err != nil {
				return err
			}
			fmt.Println(string(b))
			return nil
		}
		fmt.Println(value)
		return nil
	}

	entries, err := ctx.store.FindEntries(ctx.service, nil)
	if err != nil {
		return err
	}

	if getAsJSON {
		b, err := entriesJSON(entries, getShowValues)
		if err != nil {
			return err
		}
		fmt.Println(string(b))
		return nil
	}

	fmt.Printf("%s %s\n", color.BlueString("Repository:"), gitservice.ExtractRepo(ctx.service))
	fmt.Printf("%s %s\n\n", color.BlueString("Environment:"), ctx.env)

	if len(entries) == 0 {
		fmt.Println("No variables stored")
		return nil
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Account < entries[j].Account })

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tVALUE")
	for _, e := range entries {
		value := "********"
		if getShowValues {
			value = e.Password
		}
		fmt.Fprintf(w, "%s\t%s\n", e.Account, value)
	}
	return w.Flush()
}

// lookupValue fetches one variable, turning absence into the CLI's
// not-found error.
func lookupValue(ctx *cmdContext, key string) (string, error) {
	value, ok, err := ctx.store.GetPassword(ctx.service, key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("variable %q not found in %s environment", key, ctx.env)
	}
	return value, nil
}

type entryJSON struct {
	Key      string `json:"key"`
	Value    string `json:"value,omitempty"`
	Modified string `json:"modified,omitempty"`
}

// entriesJSON renders the entry list for --json, sorted by key. Values stay
// masked out (omitted) unless show is set, same as the table view.
func entriesJSON(entries []keychain.Entry, show bool) ([]byte, error) {
	out := make([]entryJSON, 0, len(entries))
	for _, e := range entries {
		item := entryJSON{Key: e.Account}
		if show {
			item.Value = e.Password
		}
		if e.Metadata != nil && !e.Metadata.ModifiedAt.IsZero() {
			item.Modified = e.Metadata.ModifiedAt.UTC().Format(time.RFC3339)
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return json.MarshalIndent(out, "", "  ")
}
