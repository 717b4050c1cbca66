package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"digipot-go/drivers/mcp443x"
	"digipot-go/types"

	"github.com/spf13/cobra"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <hex>...",
	Short: "Decode a frame",
	Long: `Decode a 1-3 byte frame given as hex. Bytes may be split across
arguments and may carry a 0x prefix.`,
	Example: `  potctl decode 58 70 7f
  potctl decode 0x5c6c -f json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := parseHexArgs(args)
		if err != nil {
			return err
		}
		d, err := mcp443x.DecodeFrame(raw)
		if err != nil {
			return err
		}
		f, err := d.Frame()
		if err != nil {
			return err
		}
		fi, err := frameInfo(f)
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), types.KindFrame, fi, func(w io.Writer) error {
			return writeFrameText(w, fi)
		})
	},
}

func parseHexArgs(args []string) ([]byte, error) {
	var sb strings.Builder
	for _, a := range args {
		for _, part := range strings.Fields(strings.ReplaceAll(a, ",", " ")) {
			part = strings.TrimPrefix(strings.ToLower(part), "0x")
			if len(part)%2 == 1 {
				part = "0" + part
			}
			sb.WriteString(part)
		}
	}
	raw, err := hex.DecodeString(sb.String())
	if err != nil {
		return nil, fmt.Errorf("bad hex input: %w", err)
	}
	return raw, nil
}
