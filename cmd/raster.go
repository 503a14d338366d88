package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/landcover-cli/internal/raster"
)

var rasterCmd = &cobra.Command{
	Use:   "raster",
	Short: "Inspect the land-cover raster",
	Long:  "Commands for printing raster metadata, category histograms, and reclassification previews.",
}

var (
	rasterFile  string
	rasterWorld string
)

// -- raster inspect --

var rasterInspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print raster metadata and category histogram",
	RunE: func(cmd *cobra.Command, _ []string) error {
		grid, err := raster.Load(rasterFile, worldFileFor(rasterFile, rasterWorld), cfg.Raster.EPSG)
		if err != nil {
			return err
		}

		b := grid.Bounds()
		fmt.Printf("size:       %d x %d cells\n", grid.W, grid.H)
		fmt.Printf("cell:       %g x %g\n", grid.CellW, grid.CellH)
		fmt.Printf("extent:     [%.2f, %.2f] - [%.2f, %.2f]\n", b.MinX, b.MinY, b.MaxX, b.MaxY)
		fmt.Printf("epsg:       %d\n", grid.EPSG)
		fmt.Println()

		palette, err := loadPalette()
		if err != nil {
			return err
		}
		printHistogram(grid, palette.Label)
		return nil
	},
}

// -- raster reclass --

var rasterReclassCmd = &cobra.Command{
	Use:   "reclass",
	Short: "Preview the configured category substitutions",
	Long:  "Applies the configured reclassification and prints the before and after histograms. Derived rasters are not persisted.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		grid, err := raster.Load(rasterFile, worldFileFor(rasterFile, rasterWorld), cfg.Raster.EPSG)
		if err != nil {
			return err
		}
		palette, err := loadPalette()
		if err != nil {
			return err
		}

		fmt.Println("before:")
		printHistogram(grid, palette.Label)

		subs := cfg.Raster.Substitutions()
		merged := grid.Reclassify(subs)
		absorbed := make([]uint8, 0, len(subs))
		for code := range subs {
			absorbed = append(absorbed, code)
		}

		fmt.Println("\nafter:")
		printHistogram(merged, palette.Reclassify(absorbed...).Label)
		return nil
	},
}

func printHistogram(grid *raster.Grid, label func(uint8) string) {
	hist := grid.Histogram()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tLABEL\tCELLS")
	for _, code := range grid.Categories() {
		fmt.Fprintf(w, "%d\t%s\t%d\n", code, label(code), hist[code])
	}
	if n := hist[raster.NoData]; n > 0 {
		fmt.Fprintf(w, "%d\tnodata\t%d\n", raster.NoData, n)
	}
	_ = w.Flush()
}

func init() {
	rasterCmd.PersistentFlags().StringVarP(&rasterFile, "file", "f", "", "single-band categorical TIFF")
	rasterCmd.PersistentFlags().StringVarP(&rasterWorld, "world", "w", "", "world file (default: raster path with .tfw)")
	_ = rasterCmd.MarkPersistentFlagRequired("file")
	rasterCmd.AddCommand(rasterInspectCmd)
	rasterCmd.AddCommand(rasterReclassCmd)
	rootCmd.AddCommand(rasterCmd)
}
