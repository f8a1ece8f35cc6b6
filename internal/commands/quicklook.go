package commands

import (
	"os"

	"github.com/pavdpr/envi"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var quicklookCmd = &cobra.Command{
	Use:   "quicklook <image> <output.tif>",
	Short: "Render 1 or 3 bands as an 8-bit TIFF preview",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		bands, _ := cmd.Flags().GetIntSlice("bands")

		img, err := envi.ReadFile(args[0])
		if err != nil {
			return err
		}
		preview, err := img.Raster.Quicklook(cfg.Quicklook.Clip, bands...)
		if err != nil {
			return err
		}

		f, err := os.Create(args[1])
		if err != nil {
			return errors.Wrap(err, "could not create quicklook file")
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = errors.Wrap(cerr, "could not close quicklook file")
			}
		}()

		return envi.WriteQuicklook(f, preview)
	},
}

func init() {
	quicklookCmd.Flags().IntSlice("bands", nil, "0-based bands to render (1 or 3), default all of a 1 or 3 band image")
	quicklookCmd.Flags().Float64("clip", 2, "Percent of samples saturated at each end of the stretch")
}
