package commands

import (
	"strconv"

	"github.com/pavdpr/envi"
	"github.com/pavdpr/envi/internal/output"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var locationsCmd = &cobra.Command{
	Use:   "locations <image|header>",
	Short: "List the ground coordinates of every column and row",
	Long: `locations prints the map coordinate of each column (x) and row (y) derived
from the map info of the header. Rows are listed in ascending northing order.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := envi.ReadHeaderFile(args[0])
		if err != nil {
			return err
		}
		if h.MapInfo == nil {
			return errors.Errorf("%s has no map info", args[0])
		}
		h.UpdateLocations()

		table := output.NewTableData("Axis", "Index", "Coordinate")
		for i, x := range h.XLoc {
			table.AddRow("x", strconv.Itoa(i), coordinate(x))
		}
		for j, y := range h.YLoc {
			table.AddRow("y", strconv.Itoa(j), coordinate(y))
		}
		output.PrintTable(cmd.OutOrStdout(), table)
		return nil
	},
}
