package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/ssh/terminal"

	"github.com/lawnchairsociety/wiremaze/internal/config"
	"github.com/lawnchairsociety/wiremaze/internal/logger"
	"github.com/lawnchairsociety/wiremaze/internal/network"
	"github.com/lawnchairsociety/wiremaze/internal/render"
	"github.com/lawnchairsociety/wiremaze/internal/watch"
	"github.com/lawnchairsociety/wiremaze/internal/wfc"
)

// Exit codes
const (
	exitOK            = 0
	exitConfig        = 1
	exitContradiction = 2
	exitFailure       = 3
	exitInterrupted   = 130
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run generates one maze. Cancelling ctx stops generation between collapses
// and, with -watch, stops serving viewers.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("wiremaze", flag.ContinueOnError)
	fs.SetOutput(stderr)

	width := fs.Int("width", 50, "Grid width in cells")
	height := fs.Int("height", 20, "Grid height in cells")
	seed := fs.Int64("seed", 0, "Random seed (default: random based on current time)")
	configFile := fs.String("config", "wiremaze.yaml", "Path to generator config YAML file")
	loggingConfig := fs.String("logging", "logging.yaml", "Path to logging config YAML file")
	catalogFile := fs.String("catalog", "", "Path to a tile catalog YAML file (default: built-in box drawing set)")
	animate := fs.Bool("animate", false, "Print every intermediate grid")
	delay := fs.Duration("delay", 20*time.Millisecond, "Pause between animation frames")
	watchAddr := fs.String("watch", "", "Serve frames to WebSocket viewers on this address (e.g. :8080)")
	fit := fs.Bool("fit", false, "Size the grid to the terminal")
	if err := fs.Parse(args); err != nil {
		return exitConfig
	}

	// Initialize logger first (before any logging)
	logConfig, logErr := logger.LoadConfig(*loggingConfig)
	if err := logger.Initialize(logConfig); err != nil {
		fmt.Fprintf(stderr, "Error initializing logger: %v\n", err)
		return exitConfig
	}
	if logErr != nil {
		logger.Warning("Using default logging config", "error", logErr)
	}

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		logger.Error("Failed to load config", "path", *configFile, "error", err)
		return exitConfig
	}

	// Flags given on the command line win over the file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Grid.Width = *width
		case "height":
			cfg.Grid.Height = *height
		case "seed":
			cfg.Grid.Seed = *seed
		case "catalog":
			cfg.Catalog.Path = *catalogFile
		case "animate":
			cfg.Animation.Enabled = *animate
		case "delay":
			cfg.Animation.DelayMS = int(*delay / time.Millisecond)
		case "watch":
			cfg.Watch.Address = *watchAddr
		}
	})

	if *fit {
		cols, rows := terminalSize(stdout)
		cfg.Grid.Width, cfg.Grid.Height = cols, rows-1 // leave a line for the prompt
		logger.Debug("Grid sized to terminal", "columns", cols, "rows", rows)
	}

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		return exitConfig
	}

	mazeSeed := cfg.Grid.Seed
	if mazeSeed == 0 {
		mazeSeed = time.Now().UnixNano()
		logger.Always("Maze seed selected", "seed", mazeSeed, "random", true)
	} else {
		logger.Always("Maze seed selected", "seed", mazeSeed, "random", false)
	}

	catalog := wfc.DefaultCatalog()
	if cfg.Catalog.Path != "" {
		catalog, err = wfc.LoadCatalogFromYAML(cfg.Catalog.Path)
		if err != nil {
			logger.Error("Failed to load tile catalog", "path", cfg.Catalog.Path, "error", err)
			return exitConfig
		}
		logger.Info("Tile catalog loaded", "path", cfg.Catalog.Path, "tiles", catalog.Len())
	}

	grid, err := wfc.NewGrid(cfg.Grid.Width, cfg.Grid.Height, catalog)
	if err != nil {
		logger.Error("Failed to create grid", "error", err)
		return exitConfig
	}

	var opts []wfc.Option
	var animator *render.Animator
	if cfg.Animation.Enabled {
		animator = render.NewAnimator(stdout, cfg.Animation.Delay())
		opts = append(opts, wfc.WithObserver(animator))
	}

	var broadcaster *watch.Broadcaster
	var watchDone chan error
	if cfg.Watch.Enabled() {
		hub := watch.NewHub()
		broadcaster = watch.NewBroadcaster(hub)
		opts = append(opts, wfc.WithObserver(broadcaster))

		watchDone = make(chan error, 1)
		srv := watch.NewServer(cfg.Watch, hub)
		go func() {
			watchDone <- srv.ListenAndServe(ctx)
		}()
	}

	logger.Info("Generating maze", "width", cfg.Grid.Width, "height", cfg.Grid.Height, "tiles", catalog.Len())

	start := time.Now()
	solver := wfc.NewSolver(grid, wfc.NewRandomChooser(mazeSeed), opts...)
	result, runErr := solver.Run(ctx)
	elapsed := time.Since(start)

	if animator != nil && animator.Err() != nil {
		logger.Warning("Animation stopped", "error", animator.Err(), "frames", animator.Frames())
	}

	if err := render.Write(stdout, grid); err != nil {
		logger.Error("Failed to write maze", "error", err)
	}

	code := exitCode(runErr)
	switch code {
	case exitOK:
		logger.Info("Maze generated",
			"collapses", result.Collapses,
			"seed_cell", fmt.Sprintf("%d,%d", result.Seed.X, result.Seed.Y),
			"elapsed", elapsed)
		if stats, err := network.Analyze(grid); err == nil {
			logger.Info("Wire networks",
				"networks", stats.Networks,
				"largest", stats.Largest,
				"empty", stats.Empty,
				"open_ends", stats.OpenEnds,
				"mismatches", stats.Mismatches)
		}
	case exitInterrupted:
		logger.Warning("Generation interrupted", "collapses", solver.Collapses(), "elapsed", elapsed)
	default:
		logger.Error("Generation failed", "error", runErr, "collapses", solver.Collapses(), "elapsed", elapsed)
	}

	if broadcaster != nil {
		broadcaster.Publish(grid)
		if ctx.Err() == nil {
			logger.Info("Serving final maze to viewers until interrupted", "address", cfg.Watch.Address)
		}
		if err := <-watchDone; err != nil {
			logger.Error("Watch server failed", "error", err)
		}
	}

	return code
}

// exitCode maps the result of a generation run to the process exit code
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, wfc.ErrContradiction):
		return exitContradiction
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return exitInterrupted
	default:
		return exitFailure
	}
}

// terminalSize returns the columns and rows of the terminal behind w,
// or 80x24 when w is not a terminal.
func terminalSize(w io.Writer) (int, int) {
	f, ok := w.(*os.File)
	if !ok {
		return 80, 24
	}
	cols, rows, err := terminal.GetSize(int(f.Fd()))
	if err != nil || cols <= 0 || rows <= 1 {
		return 80, 24
	}
	return cols, rows
}
