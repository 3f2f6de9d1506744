// Command ls-orrery is a terminal orrery with procedurally synthesized body textures.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-orrery/internal/config"
	"github.com/litescript/ls-orrery/internal/export"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/sim"
	"github.com/litescript/ls-orrery/internal/texture"
	"github.com/litescript/ls-orrery/internal/ui"
)

// CLI flags for headless mode
var (
	exportDir     string
	texWidth      int
	texHeight     int
	bodiesFlag    string
	withRing      bool
	withStars     bool
	positionsPath string
	summaryMode   bool
	ticks         int
	stepSeconds   float64
	speed         float64
)

func main() {
	configPath := flag.String("config", "", "Settings file (default "+config.DefaultPath+" if present)")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	workers := flag.Int("workers", 0, "Synthesis workers (0 = GOMAXPROCS)")
	flag.StringVar(&exportDir, "export-dir", "", "Write body textures as PNG into this directory")
	flag.IntVar(&texWidth, "width", 1024, "Exported texture width")
	flag.IntVar(&texHeight, "height", 512, "Exported texture height")
	flag.StringVar(&bodiesFlag, "bodies", "", "Comma-separated bodies to export (default all)")
	flag.BoolVar(&withRing, "ring", true, "Also export the ring profile")
	flag.BoolVar(&withStars, "starfield", false, "Also export the sky dome (slow)")
	flag.StringVar(&positionsPath, "positions", "", "Export body positions as JSON (use - for stdout)")
	flag.BoolVar(&summaryMode, "summary", false, "Print a position table instead of the TUI")
	flag.IntVar(&ticks, "ticks", 0, "Simulation ticks to run before headless output")
	flag.Float64Var(&stepSeconds, "dt", 0.1, "Simulated seconds per tick")
	flag.Float64Var(&speed, "speed", 1, "Speed multiplier")
	flag.Parse()

	logger := logging.New(logging.ParseLevel(*logLevel))

	cfg, found, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if found {
		logger.Info("Loaded settings (scale=%v compression=%v offset=%v timeScale=%v, %d seed overrides)",
			cfg.DistanceScale, cfg.DistanceCompression, cfg.OrbitOffset, cfg.TimeScale, len(cfg.Seeds))
	} else {
		logger.Debug("No settings file, using defaults")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	synth := texture.New(texture.Options{
		Seeds:   cfg.SeedTable(),
		Workers: *workers,
		Logger:  logger,
	})

	simCfg := sim.DefaultConfig()
	simCfg.Orbit = cfg.Orbit()
	simCfg.Speed = speed
	simCfg.Logger = logger
	mgr, err := sim.NewManager(simCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	headless := exportDir != "" || positionsPath != "" || summaryMode
	if headless {
		if err := runHeadless(ctx, synth, mgr, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: stdout is not a terminal; use -summary, -positions or -export-dir")
		os.Exit(1)
	}

	// Keep log lines from tearing the alt screen.
	logger.SetLevel(logging.LevelError)

	model := ui.New(ui.Options{
		Sim:         mgr,
		Solver:      mgr.Solver(),
		Synth:       synth,
		StepSeconds: stepSeconds,
		Logger:      logger,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// runHeadless handles all headless modes without starting the TUI.
func runHeadless(ctx context.Context, synth *texture.Synthesizer, mgr *sim.Manager, logger *logging.Logger) error {
	if exportDir != "" {
		kinds, err := parseBodies(bodiesFlag)
		if err != nil {
			return err
		}
		job := export.TextureJob{
			Kinds:     kinds,
			Width:     texWidth,
			Height:    texHeight,
			Ring:      withRing,
			Starfield: withStars,
		}
		paths, err := export.ExportTextures(ctx, exportDir, synth, job, logger)
		if err != nil {
			return err
		}
		for _, p := range paths {
			logger.Debug("wrote %s", p)
		}
	}

	for i := 0; i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		mgr.Step(stepSeconds)
	}
	snap := mgr.Snapshot()
	now := time.Now()

	if positionsPath != "" {
		pe := export.ExportPositions(snap, now)
		if positionsPath == "-" {
			if err := pe.WriteJSON(os.Stdout); err != nil {
				return fmt.Errorf("write JSON to stdout: %w", err)
			}
		} else {
			f, err := os.Create(positionsPath)
			if err != nil {
				return fmt.Errorf("create positions file: %w", err)
			}
			defer f.Close()
			if err := pe.WriteJSON(f); err != nil {
				return fmt.Errorf("write JSON to file: %w", err)
			}
		}
	}

	if summaryMode {
		export.WriteSummaryTable(os.Stdout, snap, now)
	}
	return nil
}

// parseBodies turns a comma-separated list into texture kinds. Empty means all.
func parseBodies(s string) ([]texture.Kind, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var kinds []texture.Kind
	for _, name := range strings.Split(s, ",") {
		k, err := texture.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("-bodies: %w", err)
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}
