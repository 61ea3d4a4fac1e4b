package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"

	"github.com/smazurov/lednode/cmd"
	"github.com/smazurov/lednode/internal/animation"
	"github.com/smazurov/lednode/internal/api"
	"github.com/smazurov/lednode/internal/arbiter"
	"github.com/smazurov/lednode/internal/config"
	"github.com/smazurov/lednode/internal/driver"
	"github.com/smazurov/lednode/internal/events"
	"github.com/smazurov/lednode/internal/logging"
	"github.com/smazurov/lednode/internal/metrics/exporters"
	"github.com/smazurov/lednode/internal/monitor"
	"github.com/smazurov/lednode/internal/nats"
	"github.com/smazurov/lednode/internal/pattern"
	"github.com/smazurov/lednode/internal/transport"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"config.toml"`

	// Server settings
	Port string `help:"HTTP API listen address" short:"p" default:":8090" toml:"server.port" env:"SERVER_PORT"`

	// Transport settings
	UDPListen string `help:"UDP command listen address" default:":8266" toml:"transport.udp_listen" env:"UDP_LISTEN"`

	// LED settings
	LedPixels       int    `help:"Number of pixels on the strip" default:"30" toml:"led.pixels" env:"LED_PIXELS"`
	LedTickMs       int    `help:"Render tick interval in milliseconds" default:"16" toml:"led.tick_ms" env:"LED_TICK_MS"`
	LedDriver       string `help:"Pixel driver (noop, spidev, terminal)" default:"noop" toml:"led.driver" env:"LED_DRIVER"`
	LedDevice       string `help:"SPI device path for the spidev driver" default:"/dev/spidev0.0" toml:"led.device" env:"LED_DEVICE"`
	LedPatternsFile string `help:"Pattern overrides file, watched for changes" default:"" toml:"led.patterns_file" env:"LED_PATTERNS_FILE"`

	// NATS settings
	NatsEnabled bool   `help:"Enable NATS command ingestion and status publishing" default:"false" toml:"nats.enabled" env:"NATS_ENABLED"`
	NatsURL     string `help:"NATS server URL" default:"nats://localhost:4222" toml:"nats.url" env:"NATS_URL"`
	NatsNodeID  string `help:"Node identifier used in NATS subjects" default:"drone1" toml:"nats.node_id" env:"NATS_NODE_ID"`

	// Auth settings
	AuthUsername string `help:"Basic auth username (empty disables auth)" default:"" toml:"auth.username" env:"AUTH_USERNAME"`
	AuthPassword string `help:"Basic auth password" default:"" toml:"auth.password" env:"AUTH_PASSWORD"`

	// Logging settings
	LoggingLevel     string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat    string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingWire      string `help:"Wire decoding logging level" default:"info" toml:"logging.wire" env:"LOGGING_WIRE"`
	LoggingTransport string `help:"Transport logging level" default:"info" toml:"logging.transport" env:"LOGGING_TRANSPORT"`
	LoggingAPI       string `help:"API logging level" default:"info" toml:"logging.api" env:"LOGGING_API"`
}

func main() {
	cli := humacli.New(func(hooks humacli.Hooks, opts *Options) {
		if loadErr := config.LoadConfig(opts, nil); loadErr != nil {
			slog.Warn("Failed to load config", "error", loadErr)
		}

		logging.Initialize(logging.Config{
			Level:  opts.LoggingLevel,
			Format: opts.LoggingFormat,
			Modules: map[string]string{
				"wire":      opts.LoggingWire,
				"transport": opts.LoggingTransport,
				"api":       opts.LoggingAPI,
			},
		})
		logger := logging.GetLogger("main")

		catalog := pattern.NewCatalog()
		eventBus := events.New()
		arb := arbiter.New(catalog, eventBus)

		// Pattern overrides file: load once, then follow edits.
		var overridesWatcher *config.Watcher[pattern.Overrides]
		if opts.LedPatternsFile != "" {
			if overrides, err := config.LoadPatternOverrides(opts.LedPatternsFile); err != nil {
				logger.Warn("Failed to load pattern overrides", "path", opts.LedPatternsFile, "error", err)
			} else {
				catalog.SetOverrides(overrides)
			}

			overridesWatcher = config.NewConfigWatcher(
				opts.LedPatternsFile,
				config.LoadPatternOverrides,
				logging.GetLogger("config"),
			)
			overridesWatcher.OnReload(func(overrides pattern.Overrides) {
				catalog.SetOverrides(overrides)
				logger.Info("Pattern overrides reloaded", "patterns", len(overrides))
			})
		}

		drv, err := driver.New(opts.LedDriver, opts.LedDevice)
		if err != nil {
			logger.Error("Failed to create LED driver", "error", err)
			os.Exit(1)
		}

		loop := animation.NewLoop(arb, drv, opts.LedPixels, time.Duration(opts.LedTickMs)*time.Millisecond)
		reporter := monitor.New(arb, eventBus, 0)

		udpListener := transport.NewUDPListener(opts.UDPListen, func(payload []byte) {
			// Rejections are already logged and counted inside Ingest.
			_ = arb.Ingest(payload)
		})

		var natsClient *nats.NodeClient
		if opts.NatsEnabled {
			natsClient = nats.NewNodeClient(opts.NatsURL, opts.NatsNodeID, func(payload []byte) {
				_ = arb.Ingest(payload)
			})
		}

		server := api.NewServer(&api.Options{
			AuthUsername:      opts.AuthUsername,
			AuthPassword:      opts.AuthPassword,
			PrometheusHandler: exporters.HTTPHandler(),
		}, arb, catalog, eventBus)

		ctx, cancel := context.WithCancel(context.Background())

		hooks.OnStart(func() {
			if startErr := udpListener.Start(ctx); startErr != nil {
				logger.Error("Failed to start UDP listener", "error", startErr)
				os.Exit(1)
			}

			if natsClient != nil {
				// Keep running without the broker; the client reconnects.
				_ = natsClient.Connect()
				go publishStatus(ctx, natsClient, arb, opts.NatsNodeID)
			}

			if overridesWatcher != nil {
				if startErr := overridesWatcher.Start(); startErr != nil {
					logger.Warn("Failed to watch pattern overrides", "error", startErr)
				}
			}

			go func() {
				_ = reporter.Run(ctx)
			}()
			go func() {
				_ = loop.Run(ctx)
			}()

			logger.Info("Starting HTTP server", "port", opts.Port)
			if startErr := server.Start(opts.Port); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
				logger.Error("Failed to start HTTP server", "error", startErr)
				os.Exit(1)
			}
		})

		hooks.OnStop(func() {
			logger.Info("Shutting down")
			cancel()

			if stopErr := server.Stop(); stopErr != nil {
				logger.Error("Error stopping HTTP server", "error", stopErr)
			}
			if stopErr := udpListener.Stop(); stopErr != nil {
				logger.Error("Error stopping UDP listener", "error", stopErr)
			}
			if natsClient != nil {
				natsClient.Close()
			}
			if overridesWatcher != nil {
				_ = overridesWatcher.Stop()
			}
			if closeErr := drv.Close(); closeErr != nil {
				logger.Error("Error closing LED driver", "error", closeErr)
			}
		})
	})

	cli.Root().AddCommand(cmd.CreateSendCmd())
	cli.Root().AddCommand(cmd.CreateStatusCmd())

	cli.Run()
}

// publishStatus mirrors the node status to NATS every 10 seconds.
func publishStatus(ctx context.Context, client *nats.NodeClient, arb *arbiter.Arbiter, nodeID string) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			st := arb.Snapshot(now)
			msg := nats.StatusMessage{
				NodeID:    nodeID,
				Timestamp: now.Format(time.RFC3339),
				Pattern:   st.Pattern,
				Connected: st.Connected,
				Received:  st.Received,
			}
			if !st.LastReceive.IsZero() {
				msg.LastReceive = st.LastReceive.Format(time.RFC3339)
			}
			client.PublishStatus(msg)
		}
	}
}
