package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/audiolith/oggmeta/container/ogg"
	"github.com/audiolith/oggmeta/probe"
)

func newRenumberCommand(ctx *commandContext) *cobra.Command {
	var (
		output   string
		serial   uint32
		startSeq uint32
		from     int
	)

	cmd := &cobra.Command{
		Use:   "renumber FILE",
		Short: "Rewrite serial and sequence numbers of the audio pages",
		Long: `Renumber copies FILE to the output path, rewriting the serial number,
page sequence numbers and end-of-stream flag of every audio page while
leaving payload bytes untouched. Use it after header pages have been
regenerated and the trailing audio run needs consistent bookkeeping.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("from") || !cmd.Flags().Changed("serial") {
				s, err := probe.Inspect(data, ctx.config.Read.ValidateCRC, ctx.config.Read.MaxPacketSize)
				if err != nil {
					return fmt.Errorf("locating audio pages: %w", err)
				}
				if !cmd.Flags().Changed("from") {
					from = s.HeaderSize
				}
				if !cmd.Flags().Changed("serial") {
					serial = s.SerialNumber
				}
			}
			if from < 0 || from > len(data) {
				return fmt.Errorf("offset %d out of range for %d-byte file", from, len(data))
			}
			if !cmd.Flags().Changed("start-seq") {
				startSeq = uint32(len(scanPages(data[:from], 0)))
			}

			audio := ogg.RenumberAudioPages(data[from:], serial, startSeq)
			slog.Debug("renumbered audio run",
				"from", from, "serial", serial, "startSeq", startSeq,
				"inBytes", len(data)-from, "outBytes", len(audio))

			out := make([]byte, 0, from+len(audio))
			out = append(out, data[:from]...)
			out = append(out, audio...)
			if err := os.WriteFile(output, out, 0o644); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes, %d trailing bytes dropped)\n",
				output, len(out), len(data)-len(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path (required)")
	cmd.Flags().Uint32Var(&serial, "serial", 0, "New serial number (default: keep the stream's)")
	cmd.Flags().Uint32Var(&startSeq, "start-seq", 0, "First sequence number (default: count of pages before the audio run)")
	cmd.Flags().IntVar(&from, "from", 0, "Byte offset where the audio run starts (default: end of header packets)")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
