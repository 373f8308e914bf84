package main

import (
	"context"
	"fmt"
	"os"

	humanize "github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	terminate "github.com/pulcy/go-terminate"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"dimmer/host/monitor"
	"dimmer/host/serial"
	"dimmer/host/server"
	"dimmer/protocol"
)

const (
	projectName       = "Dimmer Monitor"
	defaultServerPort = 9105
)

var (
	projectVersion = "dev"
	maskAny        = errors.WithStack
)

func main() {
	var levelFlag string
	var device string
	var baud int
	var serverHost string
	var serverPort int

	pflag.StringVarP(&levelFlag, "level", "l", "info", "Set log level")
	pflag.StringVarP(&device, "device", "d", "/dev/ttyACM0", "Serial device the firmware reports on")
	pflag.IntVar(&baud, "baud", serial.DefaultBaud, "Baud rate (ignored for USB CDC)")
	pflag.StringVar(&serverHost, "host", "0.0.0.0", "Host address the HTTP server will listen on")
	pflag.IntVar(&serverPort, "port", defaultServerPort, "Port the HTTP server will listen on")
	pflag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	level, err := zerolog.ParseLevel(levelFlag)
	if err != nil {
		Exitf("Invalid log level '%s': %v\n", levelFlag, err)
	}
	logger = logger.Level(level)

	cfg := serial.DefaultConfig(device)
	cfg.Baud = baud
	port, err := serial.Open(cfg)
	if err != nil {
		Exitf("Failed to open telemetry port: %v\n", err)
	}
	defer port.Close()
	if err := port.Flush(); err != nil {
		logger.Warn().Err(err).Msg("Failed to flush serial input")
	}

	metrics, err := monitor.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		Exitf("Failed to register metrics: %v\n", err)
	}
	mon := monitor.New(port, metrics, logger)
	httpServer := server.New(server.Config{
		Host: serverHost,
		Port: serverPort,
	}, logger, prometheus.DefaultGatherer)

	// Prepare to shutdown in a controlled manner
	ctx, cancel := context.WithCancel(context.Background())
	t := terminate.NewTerminator(func(template string, args ...interface{}) {
		logger.Info().Msgf(template, args...)
	}, cancel)
	go t.ListenSignals()

	fmt.Printf("Starting %s (version %s, protocol %s) on %s\n", projectName, projectVersion, protocol.Version, device)
	if err := run(ctx, mon, httpServer); err != nil {
		Exitf("Monitor failed: %v\n", err)
	}

	summary := logger.Info().Str("frames", humanize.Comma(int64(mon.Frames())))
	if last, ok := mon.Last(); ok {
		summary = summary.Float64("duty", last.Duty()).Uint32("on", last.On).Uint32("off", last.Off)
	}
	summary.Msg("Monitor stopped")
}

func run(ctx context.Context, mon *monitor.Monitor, httpServer *server.Server) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return mon.Run(ctx) })
	g.Go(func() error { return httpServer.Run(ctx) })
	return maskAny(g.Wait())
}

// Print the given error message and exit with code 1
func Exitf(message string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, message, args...)
	os.Exit(1)
}
