package main

import (
	"fmt"
	"io"

	"digipot-go/drivers/mcp443x"
	"digipot-go/types"

	"github.com/spf13/cobra"
)

var (
	frameSelector uint8
	frameIndex    uint8
	frameData     uint8
)

var frameCmd = &cobra.Command{
	Use:   "frame <op>",
	Short: "Build one frame",
	Long: `Build the frame for one operation and print it.

Operations: increment, decrement, write_wiper, write_register, read_wiper,
read_register, probe. --index is the channel for wiper operations and the
TCON register slot (0-3) for register operations. --data is required for
write operations and rejected otherwise.`,
	Example: `  potctl frame write_wiper --selector 0 --index 3 --data 0x7f
  potctl frame read_register --index 2 -f json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := buildFrame(args[0], frameSelector, frameIndex, frameData, cmd.Flags().Changed("data"))
		if err != nil {
			return err
		}
		fi, err := frameInfo(f)
		if err != nil {
			return err
		}
		lg := newLogger()
		lg.Debug().Str("op", args[0]).Str("frame", f.String()).Msg("built frame")
		return render(cmd.OutOrStdout(), types.KindFrame, fi, func(w io.Writer) error {
			return writeFrameText(w, fi)
		})
	},
}

func init() {
	frameCmd.Flags().Uint8VarP(&frameSelector, "selector", "s", 0, "A1:A0 address selector (0-3)")
	frameCmd.Flags().Uint8VarP(&frameIndex, "index", "i", 0, "Channel or TCON register (0-3)")
	frameCmd.Flags().Uint8VarP(&frameData, "data", "d", 0, "Data byte for write operations")
}

func buildFrame(name string, sel, index, data uint8, hasData bool) (mcp443x.Frame, error) {
	if name == "probe" {
		if hasData {
			return mcp443x.Frame{}, fmt.Errorf("probe takes no data byte")
		}
		return mcp443x.ProbeFrame(mcp443x.Selector(sel))
	}
	op, err := mcp443x.ParseOperation(name)
	if err != nil {
		return mcp443x.Frame{}, err
	}
	d := mcp443x.NoData
	if hasData {
		d = mcp443x.Value(data)
	}
	return mcp443x.BuildFrame(mcp443x.Selector(sel), op, index, d)
}
