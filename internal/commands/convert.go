package commands

import (
	"log/slog"

	"github.com/pavdpr/envi"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Rewrite an image with another interleave or byte order",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		interleaveFlag, _ := cmd.Flags().GetString("interleave")
		byteOrderFlag, _ := cmd.Flags().GetInt("byte-order")

		img, err := envi.ReadFile(args[0])
		if err != nil {
			return err
		}

		h := img.Header.Clone()
		h.Warnings = nil
		h.SetHeaderOffset(0)
		if interleaveFlag != "" {
			interleave, ok := envi.ParseInterleave(interleaveFlag)
			if !ok {
				return errors.Errorf("invalid interleave %q, want bsq, bil or bip", interleaveFlag)
			}
			h.SetInterleave(interleave)
		}
		switch byteOrderFlag {
		case -1:
		case 0:
			h.SetByteOrder(envi.LittleEndian)
		case 1:
			h.SetByteOrder(envi.BigEndian)
		default:
			return errors.Errorf("invalid byte order %d, want 0 or 1", byteOrderFlag)
		}

		slog.Info("converting image",
			"input", args[0],
			"output", args[1],
			"interleave", h.Interleave,
			"byte_order", h.ByteOrder,
		)
		return envi.WriteFile(args[1], &envi.Image{Header: h, Raster: img.Raster})
	},
}

func init() {
	convertCmd.Flags().String("interleave", "", "Output interleave (bsq|bil|bip), default keeps the input one")
	convertCmd.Flags().Int("byte-order", -1, "Output byte order (0 little-endian, 1 big-endian), default keeps the input one")
}
