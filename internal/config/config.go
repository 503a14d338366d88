package config

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline" mapstructure:"pipeline"`
	Raster   RasterConfig   `yaml:"raster" mapstructure:"raster"`
	Render   RenderConfig   `yaml:"render" mapstructure:"render"`
	Legend   LegendConfig   `yaml:"legend" mapstructure:"legend"`
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// PipelineConfig configures the buffer pipeline around a site.
type PipelineConfig struct {
	RadiiM      []float64 `yaml:"radii_m" mapstructure:"radii_m"`
	PadFactor   float64   `yaml:"pad_factor" mapstructure:"pad_factor"`
	Segments    int       `yaml:"segments" mapstructure:"segments"`
	SourceEPSG  int       `yaml:"source_epsg" mapstructure:"source_epsg"`
	WorkingEPSG int       `yaml:"working_epsg" mapstructure:"working_epsg"`
	CropRadiusM float64   `yaml:"crop_radius_m" mapstructure:"crop_radius_m"`
}

// RasterConfig configures the land-cover raster input.
// Reclass keys are category codes as strings (viper lowercases and
// stringifies map keys); Substitutions converts them to cell codes.
type RasterConfig struct {
	EPSG    int            `yaml:"epsg" mapstructure:"epsg"`
	Reclass map[string]int `yaml:"reclass" mapstructure:"reclass"`
}

// RenderConfig configures figure layout and export.
type RenderConfig struct {
	CellPx    int     `yaml:"cell_px" mapstructure:"cell_px"`
	ScaleBarM float64 `yaml:"scale_bar_m" mapstructure:"scale_bar_m"`
	Out       string  `yaml:"out" mapstructure:"out"`
}

// LegendConfig points at an optional palette override file.
type LegendConfig struct {
	File string `yaml:"file" mapstructure:"file"`
}

// StoreConfig configures the run log database.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LANDCOVER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("pipeline.radii_m", []float64{150, 510, 990, 2000, 5000})
	v.SetDefault("pipeline.pad_factor", 1.35)
	v.SetDefault("pipeline.segments", 64)
	v.SetDefault("pipeline.source_epsg", 4326)
	v.SetDefault("pipeline.working_epsg", 3857)
	v.SetDefault("pipeline.crop_radius_m", 2000)
	v.SetDefault("raster.epsg", 3857)
	v.SetDefault("raster.reclass", map[string]int{"1": 10, "6": 10})
	v.SetDefault("render.cell_px", 4)
	v.SetDefault("render.scale_bar_m", 0)
	v.SetDefault("render.out", "")
	v.SetDefault("store.path", "landcover.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Substitutions converts the configured reclass map to raster cell codes.
// Keys that do not parse as category codes are skipped with a warning.
func (c RasterConfig) Substitutions() map[uint8]uint8 {
	subs := make(map[uint8]uint8, len(c.Reclass))
	for old, next := range c.Reclass {
		code, err := strconv.Atoi(old)
		if err != nil || code < 0 || code > 255 || next < 0 || next > 255 {
			zap.L().Warn("config: skipping invalid reclass entry",
				zap.String("old", old), zap.Int("new", next))
			continue
		}
		subs[uint8(code)] = uint8(next)
	}
	return subs
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
