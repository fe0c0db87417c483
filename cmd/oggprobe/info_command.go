package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/audiolith/oggmeta/probe"
)

func newInfoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE",
		Short: "Summarize the logical bitstream in an Ogg file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			slog.Debug("inspecting stream", "file", args[0], "bytes", len(data))

			s, err := probe.Inspect(data, ctx.config.Read.ValidateCRC, ctx.config.Read.MaxPacketSize)
			if err != nil {
				return err
			}

			rows := [][]string{
				{"Codec", string(s.Codec)},
				{"Serial number", fmt.Sprintf("0x%08x", s.SerialNumber)},
				{"Channels", strconv.Itoa(int(s.Channels))},
				{"Sample rate", fmt.Sprintf("%d Hz", s.SampleRate)},
				{"Total granules", strconv.FormatUint(s.TotalGranules, 10)},
				{"Duration", s.Duration().Round(time.Millisecond).String()},
				{"Header packets", strconv.Itoa(s.HeaderPackets)},
				{"Header bytes", strconv.Itoa(s.HeaderSize)},
			}
			if s.Codec == probe.CodecOpus {
				rows = append(rows, []string{"Pre-skip", strconv.Itoa(int(s.PreSkip))})
			}

			fmt.Fprintln(cmd.OutOrStdout(), ctx.renderTable([]string{"Field", "Value"}, rows, nil))
			return nil
		},
	}
}
