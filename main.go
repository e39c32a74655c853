package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"

	"arcology/api"
	"arcology/catalog"
	"arcology/config"
	"arcology/controller"
	"arcology/heartbeat"
	"arcology/ircode"
	"arcology/lights"
	"arcology/logging"
	"arcology/nec"
	"arcology/network"
	"arcology/notify"
	"arcology/receiver"
)

const (
	connectTimeout = 10 * time.Second
	historyLimit   = 256
)

const usage = `usage: arcology <command> [flags]

commands:
  tables [-rev a|b]   print the code table
  validate            check every table for duplicate and malformed codes
  encode <code>       print the NEC mark/space timings for a code
  lookup [-rev] <code>
                      resolve a received code to its button
  serve [-config f]   run the receiver, controller and HTTP API
`

var errUsage = errors.New("bad usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, os.Getenv))
}

// run executes one subcommand and returns the process exit code.
func run(args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	var err error
	switch args[0] {
	case "tables":
		err = cmdTables(args[1:], stdout)
	case "validate":
		err = cmdValidate(stdout)
	case "encode":
		err = cmdEncode(args[1:], stdout)
	case "lookup":
		err = cmdLookup(args[1:], stdout)
	case "serve":
		err = cmdServe(args[1:], stderr, getenv)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		err = fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}

	if err != nil {
		fmt.Fprintf(stderr, "arcology %s: %v\n", args[0], err)
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			fmt.Fprint(stderr, usage)
			return 2
		}
		return 1
	}
	return 0
}

func cmdTables(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("tables", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	rev := fs.String("rev", "", "revision to print, all when empty")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	tables := catalog.All()
	if *rev != "" {
		t, err := catalog.Get(*rev)
		if err != nil {
			return err
		}
		tables = []*ircode.Table{t}
	}

	w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	for i, t := range tables {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "# %s: %s\n", t.Name(), t.Description())
		for _, b := range t.Bindings() {
			note := b.Note
			if b.Uncertain {
				note += " (?)"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", b.Key, b.Code, note)
		}
	}
	return w.Flush()
}

func cmdValidate(stdout io.Writer) error {
	failed := 0
	for _, t := range catalog.All() {
		if err := t.Validate(); err != nil {
			failed++
			var verr *ircode.ValidationError
			if errors.As(err, &verr) {
				for _, p := range verr.Problems {
					fmt.Fprintf(stdout, "%s: %v\n", t.Name(), p)
				}
				continue
			}
			fmt.Fprintf(stdout, "%s: %v\n", t.Name(), err)
			continue
		}
		fmt.Fprintf(stdout, "%s: %d codes ok\n", t.Name(), t.Len())
	}
	if failed > 0 {
		return fmt.Errorf("%d table(s) failed validation", failed)
	}
	return nil
}

func cmdEncode(args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: encode takes one code", errUsage)
	}
	code, err := ircode.ParseCode(args[0])
	if err != nil {
		return err
	}
	for _, p := range nec.Encode(code) {
		fmt.Fprintln(stdout, p)
	}
	return nil
}

func cmdLookup(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("lookup", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	rev := fs.String("rev", "a", "revision to search")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: lookup takes one code", errUsage)
	}

	t, err := catalog.Get(*rev)
	if err != nil {
		return err
	}
	code, repeat, err := receiver.ParseLine(fs.Arg(0))
	if err != nil {
		return err
	}
	if repeat {
		fmt.Fprintln(stdout, "repeat")
		return nil
	}
	b, ok := t.Lookup(code)
	if !ok {
		return fmt.Errorf("code %s not in %s", code, t.Name())
	}
	fmt.Fprintf(stdout, "%s %s %s\n", b.Key, b.Key.Kind(), b.Note)
	return nil
}

func cmdServe(args []string, stderr io.Writer, getenv func(string) string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	configPath := fs.String("config", "", "YAML config file")
	console := fs.Bool("console", false, "human-readable logs")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	cfg, err := config.Load(*configPath, getenv)
	if err != nil {
		return err
	}
	rootLogger, err := logging.New(stderr, cfg.LogLevel, *console)
	if err != nil {
		return err
	}
	rootLogger = rootLogger.With().Str(logging.LogKey.Node, cfg.NodeName).Logger()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		waitForSignal()
		cancel()
	}()
	return serve(ctx, cfg, rootLogger)
}

// serve runs every component until ctx ends.
func serve(ctx context.Context, cfg *config.Config, rootLogger zerolog.Logger) error {
	logger := logging.For(rootLogger, "Main")
	logger.Info().Str("revision", cfg.Revision).Msg("Starting controller")

	client := &http.Client{Timeout: connectTimeout}
	announce(ctx, logger, client, cfg)

	table, err := catalog.Get(cfg.Revision)
	if err != nil {
		return err
	}
	if err := table.Validate(); err != nil {
		logger.Warn().Err(err).Msg("Table has integrity problems")
	}

	light, err := newLight(rootLogger, cfg.Light)
	if err != nil {
		return err
	}
	defer light.Close()

	waitGroup := &sync.WaitGroup{}

	ctrl := controller.New(rootLogger, light, cfg.SlotColors())
	defer ctrl.Close()

	dispatcher := controller.NewDispatcher(rootLogger, table, ctrl, waitGroup)
	if cfg.Receiver.Port != config.MemoryPort {
		port, err := resolvePort(cfg.Receiver)
		if err != nil {
			return fmt.Errorf("receiver: %w", err)
		}
		rx := receiver.New(rootLogger, port, receiver.SerialOpener(port, cfg.Receiver.Baud), waitGroup)
		rx.Start(ctx)
		dispatcher.Start(ctx, rx.Presses())
	} else {
		logger.Info().Msg("No receiver, presses come from the API only")
	}

	server := api.New(rootLogger, cfg.APIAddr, dispatcher, ctrl, waitGroup)
	server.Start(ctx)

	waitGroup.Add(1)
	go func() {
		defer waitGroup.Done()
		heartbeat.Run(ctx, rootLogger, client, cfg.Heartbeat.URL, cfg.Heartbeat.Interval, func() string {
			return summary(cfg.NodeName, ctrl.Snapshot(), dispatcher.Stats())
		})
	}()

	<-ctx.Done()
	waitGroup.Wait()
	logger.Info().Msg("Done")
	return nil
}

// announce checks connectivity and sends the startup notification. Neither
// is fatal: the remote keeps working offline.
func announce(ctx context.Context, logger zerolog.Logger, client *http.Client, cfg *config.Config) {
	if cfg.ConnectivityURL != "" {
		if err := network.CheckConnectivity(ctx, client, cfg.ConnectivityURL); err != nil {
			logger.Warn().Err(err).Msg("Initial connectivity check failed")
		} else {
			logger.Info().Msg("Internet connectivity confirmed")
		}
	}
	if cfg.NotifyURL != "" {
		if err := notify.Send(ctx, client, cfg.NotifyURL, notify.Online(cfg.NodeName)); err != nil {
			logger.Warn().Err(err).Msg("Startup notification failed")
		} else {
			logger.Info().Msg("Startup notification sent")
		}
	}
}

func resolvePort(p config.PortConfig) (string, error) {
	if p.Port != config.AutoPort {
		return p.Port, nil
	}
	return lights.FindPort(lights.SysUSBDevices, p.VendorID, p.ProductID)
}

func newLight(logger zerolog.Logger, p config.PortConfig) (lights.Light, error) {
	if p.Port == config.MemoryPort {
		return lights.NewMemoryLight(historyLimit), nil
	}
	port, err := resolvePort(p)
	if err != nil {
		return nil, fmt.Errorf("light: %w", err)
	}
	return lights.NewSerialLight(port, p.Baud, logger), nil
}

func summary(node string, s controller.State, stats controller.Stats) string {
	power := "off"
	if s.Power {
		power = "on"
	}
	return fmt.Sprintf("%s power=%s mode=%s color=%s brightness=%d handled=%d unknown=%d",
		node, power, s.Mode, s.Color, s.Brightness, stats.Handled, len(stats.Unknown))
}

func waitForSignal() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	<-signals
}
