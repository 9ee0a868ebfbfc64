package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sedstack/sedinit/internal/config"
	"github.com/sedstack/sedinit/internal/grid"
	"github.com/sedstack/sedinit/internal/logging"
	"github.com/sedstack/sedinit/internal/setup"
)

var (
	// Version is set at build time via ldflags
	Version = "dev"

	// Global flags
	configPath string
	logLevel   string
	logFormat  string
	domainPath string
)

var rootCmd = &cobra.Command{
	Use:   "sedinit",
	Short: "Set up the sediment transport component of a hydrology run",
	Long: `sedinit reads the sediment sections of a model input file and prepares
the state the sediment transport stages consume:

- process switches from [SEDOPTIONS]
- the fine mass-wasting grid and calibration constants from [PARAMETERS]
- per-cell road routing buffers over the basin in the domain file
- the erosion accounting periods from [SEDTIME]

Any missing or malformed value stops setup with a coded error.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "sedinit.toml", "tool configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); overrides config")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (text, json); overrides config")
	rootCmd.PersistentFlags().StringVarP(&domainPath, "domain", "d", "", "domain file (grid, basin mask, road area)")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("sedinit {{.Version}}\n")
}

// loadConfig loads the tool configuration and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Logging.Level = config.LogLevel(logLevel)
	}
	if logFormat != "" {
		cfg.Logging.Format = config.LogFormat(logFormat)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}
	return cfg, nil
}

// runSetup loads the input and domain files and runs setup, writing
// progress notices to out.
func runSetup(inputPath string, out, logOut io.Writer) (*setup.Result, error) {
	if domainPath == "" {
		return nil, fmt.Errorf("--domain is required")
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, closer, err := logging.NewFromConfig(cfg, filepath.Dir(configPath), logOut)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	if closer != nil {
		defer closer.Close()
	}
	logger = logging.WithInput(logger, inputPath)

	store, err := config.LoadInput(inputPath)
	if err != nil {
		return nil, err
	}
	domain, err := grid.LoadDomain(domainPath)
	if err != nil {
		return nil, err
	}

	res, err := setup.New(cfg, out, logger).Run(store, domain)
	if err != nil {
		return nil, err
	}
	logger.Info("setup complete",
		slog.Bool("surface_erosion", res.Options.SurfaceErosion),
		slog.Bool("road_routing", res.Options.RoadRouting),
		slog.Int("road_cells", res.Roads.Count()),
		slog.Int("periods", res.Schedule.Len()))
	return res, nil
}
