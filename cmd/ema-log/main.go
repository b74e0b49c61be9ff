// Ema-log is the unattended measurement logger for EMA8314 modules.
//
// It polls a module on a fixed interval and appends one line per poll to a
// date-rotated log file. Which columns a line carries (temperature, sensor
// health, relay state, per channel) comes from a YAML configuration file.
// When the module stops answering, the logger probes until it is back and
// then resumes, so a power cycle on the device side costs log lines but
// never the process.
//
// Usage:
//
//	ema-log --config ema-log.yaml
//
// The process runs until interrupted (SIGINT or SIGTERM).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/emalab/ema8314/internal/config"
	"github.com/emalab/ema8314/internal/device"
	"github.com/emalab/ema8314/internal/logging"
	"github.com/emalab/ema8314/internal/poller"
	"github.com/emalab/ema8314/internal/session"
	"github.com/emalab/ema8314/internal/version"
)

func main() {
	configPath := flag.String("config", "", "Path to the YAML configuration file (defaults apply when empty)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("ema-log %s\n", version.Full())
		return
	}

	logging.InitializeFromEnv()
	defer logging.Sync()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	sess, err := session.Open(cfg.Listen, cfg.Device, cfg.Password)
	if err != nil {
		return err
	}
	client := device.NewClient(sess)
	defer client.Close()

	out := poller.NewRotatingWriter(cfg.LogDir, "ema")
	defer out.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info("logger started",
		zap.String("device", cfg.Device),
		zap.Duration("interval", cfg.Interval.Std()),
		zap.String("log_dir", cfg.LogDir))

	// Make sure the device answers before the first tick so a misconfigured
	// address fails visibly instead of logging silence.
	if err := client.WaitForDevice(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("device did not answer: %w", err)
	}

	p := poller.New(client, cfg, out)
	if err := p.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logging.Info("logger stopped")
	return nil
}
