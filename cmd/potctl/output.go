package main

import (
	"encoding/json"
	"fmt"
	"io"

	"digipot-go/drivers/mcp443x"
	"digipot-go/types"

	"github.com/fxamacker/cbor/v2"
)

const (
	formatHex  = "hex"
	formatJSON = "json"
	formatCBOR = "cbor"

	schemaVersion = 1
	driverName    = "mcp443x"
)

// render writes v wrapped in a types.Info envelope, or calls text for hex output.
func render(w io.Writer, kind types.Kind, v any, text func(io.Writer) error) error {
	env := types.Info{SchemaVersion: schemaVersion, Driver: driverName, Kind: kind, Detail: v}
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(env)
	case formatCBOR:
		b, err := cbor.Marshal(env)
		if err != nil {
			return fmt.Errorf("cbor encode: %w", err)
		}
		_, err = w.Write(b)
		return err
	default:
		return text(w)
	}
}

// frameInfo describes f through its decoded fields.
func frameInfo(f mcp443x.Frame) (types.FrameInfo, error) {
	d, err := mcp443x.DecodeFrame(f.Bytes())
	if err != nil {
		return types.FrameInfo{}, err
	}
	fi := types.FrameInfo{
		Hex:       f.String(),
		Bytes:     f.Bytes(),
		Kind:      d.Kind.String(),
		Selector:  uint8(d.Selector),
		Direction: d.Direction.String(),
		MemAddr:   d.MemAddr,
		Index:     d.Index,
	}
	if d.Kind != mcp443x.KindProbe {
		fi.Op = d.Op.String()
	}
	if d.HasData {
		v := d.Data
		fi.Data = &v
	}
	if d.Op.IsRead() {
		rb, err := mcp443x.ReadRestart(d.Selector)
		if err != nil {
			return types.FrameInfo{}, err
		}
		fi.Restart = fmt.Sprintf("%02x", rb)
	}
	return fi, nil
}

func writeFrameText(w io.Writer, fi types.FrameInfo) error {
	_, err := fmt.Fprintf(w, "%s  kind=%s sel=%d dir=%s", fi.Hex, fi.Kind, fi.Selector, fi.Direction)
	if err != nil {
		return err
	}
	if fi.Op != "" {
		fmt.Fprintf(w, " op=%s mem=0x%X index=%d", fi.Op, fi.MemAddr, fi.Index)
	}
	if fi.Data != nil {
		fmt.Fprintf(w, " data=0x%02X", *fi.Data)
	}
	if fi.Restart != "" {
		fmt.Fprintf(w, " restart=%s", fi.Restart)
	}
	_, err = fmt.Fprintln(w)
	return err
}
