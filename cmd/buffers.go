package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/landcover-cli/internal/buffer"
	"github.com/sells-group/landcover-cli/internal/crs"
	"github.com/sells-group/landcover-cli/internal/export"
)

var (
	buffersSites   string
	buffersSite    string
	buffersShp     string
	buffersGeoJSON string
)

var buffersCmd = &cobra.Command{
	Use:   "buffers",
	Short: "Export buffer polygons for a site",
	Long:  "Builds the buffer rings around a site in the working CRS and writes them to shapefile and/or GeoJSON.",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := zap.L()

		s, err := loadSite(buffersSites, buffersSite)
		if err != nil {
			return err
		}

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

		feats := make([]export.Feature, 0, len(rings))
		for i, ring := range rings {
			radius := cfg.Pipeline.RadiiM[i]
			feats = append(feats, export.Feature{
				Name:    fmt.Sprintf("buffer_%.0fm", radius),
				RadiusM: radius,
				Poly:    ring,
			})
		}

		if buffersShp != "" {
			if err := export.WriteShapefile(buffersShp, feats); err != nil {
				return err
			}
			log.Info("wrote shapefile", zap.String("path", buffersShp), zap.Int("features", len(feats)))
		}
		if buffersGeoJSON != "" {
			if err := export.WriteGeoJSON(buffersGeoJSON, feats); err != nil {
				return err
			}
			log.Info("wrote geojson", zap.String("path", buffersGeoJSON), zap.Int("features", len(feats)))
		}
		if buffersShp == "" && buffersGeoJSON == "" {
			log.Warn("no output format requested, nothing written")
		}
		return nil
	},
}

func init() {
	buffersCmd.Flags().StringVar(&buffersSites, "sites", "sites.csv", "CSV file with name,longitude,latitude columns")
	buffersCmd.Flags().StringVar(&buffersSite, "site", "", "site name (default: first row)")
	buffersCmd.Flags().StringVar(&buffersShp, "shp", "", "shapefile output path")
	buffersCmd.Flags().StringVar(&buffersGeoJSON, "geojson", "", "GeoJSON output path")
	rootCmd.AddCommand(buffersCmd)
}
