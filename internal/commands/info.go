package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pavdpr/envi"
	"github.com/pavdpr/envi/internal/output"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <image|header>",
	Short: "Display the header of an ENVI image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := envi.ReadHeaderFile(args[0])
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		output.SimpleTable(w, headerPairs(h))

		other := output.NewTableData("Key", "Value")
		for _, e := range h.Other {
			other.AddRow(e.Key, e.Value)
		}
		if other.Len() > 0 {
			fmt.Fprintln(w)
			output.PrintTable(w, other)
		}
		for _, warning := range h.Warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", warning)
		}
		return nil
	},
}

// headerPairs lists the present fields of h.
func headerPairs(h *envi.Header) [][2]string {
	var pairs [][2]string
	add := func(key, value string) {
		pairs = append(pairs, [2]string{key, value})
	}

	if h.Has(envi.FieldSamples) {
		add("samples", strconv.Itoa(h.Samples))
	}
	if h.Has(envi.FieldLines) {
		add("lines", strconv.Itoa(h.Lines))
	}
	if h.Has(envi.FieldBands) {
		add("bands", strconv.Itoa(h.Bands))
	}
	if h.Has(envi.FieldDataType) {
		add("data type", fmt.Sprintf("%d (%s)", int(h.DataType), h.DataType))
	}
	if h.Has(envi.FieldInterleave) {
		add("interleave", h.Interleave.String())
	}
	if h.Has(envi.FieldByteOrder) {
		add("byte order", h.ByteOrder.String())
	}
	if h.Has(envi.FieldHeaderOffset) {
		add("header offset", strconv.FormatInt(h.HeaderOffset, 10))
	}
	if h.Has(envi.FieldFileType) {
		add("file type", h.FileType)
	}
	if h.Description != "" {
		add("description", h.Description)
	}
	if h.SensorType != "" {
		add("sensor type", h.SensorType)
	}
	if len(h.BandNames) > 0 {
		add("band names", strings.Join(h.BandNames, ", "))
	}
	if len(h.Wavelength) > 0 {
		add("wavelength", fmt.Sprintf("%d values %s", len(h.Wavelength), h.WavelengthUnits))
	}
	if h.MapInfo != nil {
		add("map info", h.MapInfo.String())
	}
	if b, ok := h.Footprint(); ok {
		add("footprint", fmt.Sprintf("[%s %s] - [%s %s]",
			coordinate(b.Min.X()), coordinate(b.Min.Y()), coordinate(b.Max.X()), coordinate(b.Max.Y())))
	}
	return pairs
}

func coordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
