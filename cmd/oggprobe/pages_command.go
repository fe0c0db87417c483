package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/audiolith/oggmeta/container/ogg"
)

// pageRow is one scanned page plus its position and checksum status.
type pageRow struct {
	offset int
	size   int
	crcOK  bool
	page   *ogg.Page
}

// scanPages walks the buffer collecting well-formed pages, resyncing
// byte by byte over regions that do not parse. limit <= 0 means all.
func scanPages(data []byte, limit int) []pageRow {
	var rows []pageRow
	offset := 0
	for offset < len(data) {
		page, consumed, err := ogg.ParsePage(data[offset:], false)
		if err != nil {
			offset++
			continue
		}
		rows = append(rows, pageRow{
			offset: offset,
			size:   consumed,
			crcOK:  ogg.ValidatePageCRC(data[offset : offset+consumed]),
			page:   page,
		})
		offset += consumed
		if limit > 0 && len(rows) >= limit {
			break
		}
	}
	return rows
}

// flagString renders page flags as a compact C/B/E set.
func flagString(p *ogg.Page) string {
	s := ""
	if p.IsContinuation() {
		s += "C"
	}
	if p.IsBOS() {
		s += "B"
	}
	if p.IsEOS() {
		s += "E"
	}
	if s == "" {
		s = "-"
	}
	return s
}

// granuleString renders the granule position, showing the no-packet
// sentinel distinctly.
func granuleString(g uint64) string {
	if g == ogg.GranuleNoPacket {
		return "none"
	}
	return strconv.FormatUint(g, 10)
}

func newPagesCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "pages FILE",
		Short: "List the Ogg pages in a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			scanned := scanPages(data, limit)
			rows := make([][]string, 0, len(scanned))
			for _, r := range scanned {
				crc := "ok"
				if !r.crcOK {
					crc = "BAD"
				}
				rows = append(rows, []string{
					strconv.Itoa(r.offset),
					strconv.FormatUint(uint64(r.page.PageSequence), 10),
					flagString(r.page),
					granuleString(r.page.GranulePos),
					strconv.Itoa(len(r.page.Segments)),
					strconv.Itoa(len(r.page.Payload)),
					crc,
				})
			}

			headers := []string{"Offset", "Seq", "Flags", "Granule", "Segs", "Payload", "CRC"}
			aligns := []columnAlignment{alignRight, alignRight, alignLeft, alignRight, alignRight, alignRight, alignLeft}
			fmt.Fprintln(cmd.OutOrStdout(), ctx.renderTable(headers, rows, aligns))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Stop after this many pages (0 = all)")
	return cmd
}
