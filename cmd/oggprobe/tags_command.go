package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/audiolith/oggmeta/probe"
)

func newTagsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tags FILE",
		Short: "Show the comment header of an Ogg file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			vendor, fields, err := probe.Comments(data, ctx.config.Read.ValidateCRC, ctx.config.Read.MaxPacketSize)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Vendor: %s\n", vendor)

			rows := make([][]string, 0, len(fields))
			for _, f := range fields {
				name, value, found := strings.Cut(f, "=")
				if !found {
					value = ""
				}
				rows = append(rows, []string{name, value})
			}
			fmt.Fprintln(out, ctx.renderTable([]string{"Field", "Value"}, rows, nil))
			return nil
		},
	}
}
