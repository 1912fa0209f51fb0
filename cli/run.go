package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/inkdash/inkdash/cache"
	"github.com/inkdash/inkdash/commands"
	"github.com/inkdash/inkdash/config"
	"github.com/inkdash/inkdash/daemon"
	"github.com/inkdash/inkdash/dashboard"
	"github.com/inkdash/inkdash/display"
	"github.com/inkdash/inkdash/server"
	"github.com/inkdash/inkdash/touch"
	"github.com/inkdash/inkdash/utils"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the dashboard",
	Long:  `Loads the configuration, connects the display and touch sensor, and runs the poll/refresh loop until interrupted.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		isDaemon, _ := cmd.Flags().GetBool("daemon")
		if isDaemon && !daemon.IsChild() {
			child, err := daemon.Daemonize()
			if err != nil {
				return fmt.Errorf("failed to start daemon: %w", err)
			}
			if child != nil {
				fmt.Printf("Dashboard daemon spawned (pid %d)\n", child.Pid)
				return nil
			}
		}
		return runDashboard()
	},
}

func runDashboard() error {
	cfg, err := config.Load(configFile())
	if err != nil {
		return err
	}

	store, err := cache.New(cacheDir())
	if err != nil {
		return fmt.Errorf("cache init: %w", err)
	}

	driver, err := buildDriver(cfg)
	if err != nil {
		return err
	}

	sensor, err := buildSensor(cfg)
	if err != nil {
		utils.Warn("touch sensor unavailable, running without touch: %v", err)
		sensor = nil
	}

	dash, err := dashboard.New(cfg, sensor, driver, store)
	if err != nil {
		return err
	}
	defer dash.Close()
	commands.SetDashboard(dash)

	if runOnce {
		return dash.RunOnce()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var srv *server.Server
	if cfg.Server.Enabled {
		srv = server.NewServer(cfg.Server.Listen, cfg.Server.CORS)
		go func() {
			if err := srv.Start(); err != nil {
				utils.Error("server: %v", err)
				cancel()
			}
		}()
		go func() {
			<-srv.ShutdownRequested()
			utils.Info("shutdown requested over RPC")
			cancel()
		}()
	}

	err = dash.Run(ctx)
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if serr := srv.Shutdown(shutdownCtx); serr != nil {
			utils.Warn("server shutdown: %v", serr)
		}
	}
	return err
}

// buildDriver opens the e-paper panel, or the PNG simulator with --sim.
func buildDriver(cfg *config.Config) (display.Driver, error) {
	if simPath != "" {
		utils.Info("using simulated display, frames go to %s", simPath)
		return display.NewSim(simPath), nil
	}
	policy := display.NewRefreshPolicy(cfg.Display.MaxPartials, cfg.Display.FullRefreshEvery)
	drv, err := display.NewWaveshare(cfg.Display.Rotation, policy)
	if err != nil {
		return nil, fmt.Errorf("display init: %w", err)
	}
	return drv, nil
}

// buildSensor opens the configured touch backend. A nil sensor with nil
// error means touch is disabled.
func buildSensor(cfg *config.Config) (touch.Sensor, error) {
	if !cfg.Touch.Enabled || simPath != "" {
		return nil, nil
	}
	switch cfg.Touch.Backend {
	case "gt1151":
		return touch.NewGT1151(cfg.Touch.I2CBus, cfg.Touch.SensorWidth, cfg.Touch.SensorHeight)
	case "evdev":
		return touch.NewEvdevSensor(cfg.Touch.EvdevPath, cfg.Touch.SensorWidth, cfg.Touch.SensorHeight)
	case "none", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown touch backend: %s", cfg.Touch.Backend)
	}
}

func cacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return ".inkdash-cache"
	}
	return filepath.Join(base, "inkdash")
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	runCmd.Flags().BoolVar(&runOnce, "once", false, "refresh widgets, render one frame and exit")
	runCmd.Flags().StringVar(&simPath, "sim", "", "render to a PNG file instead of the panel")
	runCmd.Flags().BoolP("daemon", "d", false, "run in daemon mode (background)")
}
