package main

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/landcover-cli/internal/buffer"
	"github.com/sells-group/landcover-cli/internal/crs"
	"github.com/sells-group/landcover-cli/internal/legend"
	"github.com/sells-group/landcover-cli/internal/raster"
	"github.com/sells-group/landcover-cli/internal/render"
	"github.com/sells-group/landcover-cli/internal/runlog"
	"github.com/sells-group/landcover-cli/internal/site"
)

var (
	renderSites  string
	renderSite   string
	renderRaster string
	renderWorld  string
	renderOut    string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render land-cover buffer panels for a site",
	Long:  "Loads the site, reprojects it to the working CRS, builds the buffer rings, crops and reclassifies the land-cover raster, and composes the original and merged figures side by side.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := zap.L()

		s, err := loadSite(renderSites, renderSite)
		if err != nil {
			return err
		}
		log.Info("loaded site",
			zap.String("name", s.Name),
			zap.Float64("lng", s.Longitude),
			zap.Float64("lat", s.Latitude),
		)

		// Reproject into the working CRS.
		pt, err := crs.NewPoint(s.Longitude, s.Latitude, cfg.Pipeline.SourceEPSG)
		if err != nil {
			return err
		}
		working, err := crs.Reproject(pt, cfg.Pipeline.WorkingEPSG)
		if err != nil {
			return err
		}

		rings, err := buffer.Rings(working, cfg.Pipeline.RadiiM, cfg.Pipeline.Segments)
		if err != nil {
			return err
		}

		grid, err := raster.Load(renderRaster, worldFileFor(renderRaster, renderWorld), cfg.Raster.EPSG)
		if err != nil {
			return err
		}
		log.Info("loaded raster",
			zap.Int("width", grid.W),
			zap.Int("height", grid.H),
			zap.Int("epsg", grid.EPSG),
		)

		// Crop to the padded extent of the crop-radius buffer.
		cropRing, err := buffer.Ring(working, cfg.Pipeline.CropRadiusM, cfg.Pipeline.Segments)
		if err != nil {
			return err
		}
		box := raster.FromBounds(cropRing.Bounds()).Pad(cfg.Pipeline.PadFactor)
		cropped, err := grid.Crop(box)
		if err != nil {
			return err
		}

		subs := cfg.Raster.Substitutions()
		merged := cropped.Reclassify(subs)

		palette, err := loadPalette()
		if err != nil {
			return err
		}
		absorbed := make([]uint8, 0, len(subs))
		for code := range subs {
			absorbed = append(absorbed, code)
		}

		opts := render.Options{
			CellPx:    cfg.Render.CellPx,
			Legend:    true,
			Frame:     true,
			ScaleBar:  true,
			Compass:   true,
			ScaleBarM: cfg.Render.ScaleBarM,
		}

		optsA := opts
		optsA.Title = "land cover"
		panelA, err := render.Compose(cropped, palette, rings, working, optsA)
		if err != nil {
			return err
		}

		optsB := opts
		optsB.Title = "land cover, merged"
		panelB, err := render.Compose(merged, palette.Reclassify(absorbed...), rings, working, optsB)
		if err != nil {
			return err
		}

		fig, err := render.SideBySide(panelA, panelB)
		if err != nil {
			return err
		}

		out := renderOut
		if out == "" {
			out = cfg.Render.Out
		}
		if out == "" {
			log.Info("no output path configured, figure not exported")
			return nil
		}
		if err := render.WritePNG(out, fig); err != nil {
			return err
		}
		log.Info("wrote figure", zap.String("path", out))

		// Run log failures do not fail the render.
		st, err := runlog.Open(cfg.Store.Path)
		if err != nil {
			log.Warn("run log unavailable", zap.Error(err))
			return nil
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			log.Warn("run log migrate failed", zap.Error(err))
			return nil
		}
		id, err := st.Record(ctx, runlog.Run{
			Site:       s.Name,
			RasterPath: renderRaster,
			OutputPath: out,
			Panels:     2,
		})
		if err != nil {
			log.Warn("run log record failed", zap.Error(err))
			return nil
		}
		log.Info("recorded run", zap.String("id", id))
		return nil
	},
}

// loadSite reads the sites file and picks the named row, or the first row
// when no name is given.
func loadSite(path, name string) (site.Site, error) {
	sites, err := site.LoadFile(path)
	if err != nil {
		return site.Site{}, err
	}
	if name == "" {
		return sites[0], nil
	}
	for _, s := range sites {
		if strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	return site.Site{}, eris.Errorf("site %q not found in %s", name, path)
}

// worldFileFor returns the explicit world file path, or derives one from
// the raster path by swapping the extension for .tfw.
func worldFileFor(rasterPath, worldPath string) string {
	if worldPath != "" {
		return worldPath
	}
	ext := filepath.Ext(rasterPath)
	return strings.TrimSuffix(rasterPath, ext) + ".tfw"
}

// loadPalette returns the configured palette override or the built-in one.
func loadPalette() (legend.Palette, error) {
	if cfg.Legend.File == "" {
		return legend.Default(), nil
	}
	return legend.LoadFile(cfg.Legend.File)
}

func init() {
	renderCmd.Flags().StringVar(&renderSites, "sites", "sites.csv", "CSV file with name,longitude,latitude columns")
	renderCmd.Flags().StringVar(&renderSite, "site", "", "site name to render (default: first row)")
	renderCmd.Flags().StringVar(&renderRaster, "raster", "", "single-band categorical TIFF")
	renderCmd.Flags().StringVar(&renderWorld, "world", "", "world file (default: raster path with .tfw)")
	renderCmd.Flags().StringVar(&renderOut, "out", "", "output PNG path (default: render.out config, empty skips export)")
	_ = renderCmd.MarkFlagRequired("raster")
	rootCmd.AddCommand(renderCmd)
}
