package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/benaskins/lpop/internal/gitservice"
	"github.com/benaskins/lpop/internal/keychain"
	"github.com/spf13/cobra"
)

var listPrefix string

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List variables for the current repository and environment",
	Aliases: []string{"ls"},
	RunE:    runList,
}

func init() {
	listCmd.Flags().StringVar(&listPrefix, "prefix", "", "only list keys starting with this prefix (case-sensitive)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	ctx, err := newContext("cli")
	if err != nil {
		return err
	}
	defer ctx.Close()

	var query *keychain.FindQuery
	if listPrefix != "" {
		query = &keychain.FindQuery{AccountPrefix: listPrefix}
	}

	entries, err := ctx.store.FindEntries(ctx.service, query)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Printf("No variables stored for %s (%s environment)\n",
			gitservice.ExtractRepo(ctx.service), ctx.env)
		return nil
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Account < entries[j].Account })

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tMODIFIED")
	for _, e := range entries {
		modified := "-"
		if e.Metadata != nil && !e.Metadata.ModifiedAt.IsZero() {
			modified = e.Metadata.ModifiedAt.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\n", e.Account, modified)
	}
	return w.Flush()
}
