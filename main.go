// Command velcorr computes spatial velocity correlation statistics over a
// 2D grid of velocity measurements, following the Dombrowski et al. (2004)
// spatial correlation algorithm. It reads a samples CSV, reconstructs the
// dense velocity field, sweeps a range of radii and writes one result row
// per radius.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/velocimetry/velcorr/internal/config"
	"github.com/velocimetry/velcorr/internal/dataio"
	"github.com/velocimetry/velcorr/internal/gridunit"
	"github.com/velocimetry/velcorr/internal/store"
	"github.com/velocimetry/velcorr/internal/sweep"
	"github.com/velocimetry/velcorr/internal/version"
	"github.com/velocimetry/velcorr/internal/vfield"
)

var (
	inputPath  = flag.String("input", "", "Path to the input samples CSV (required)")
	outputPath = flag.String("output", "", "Path to the output results CSV (required)")
	configPath = flag.String("config", "", "Optional JSON config file; flags override file values")

	dataStartRow = flag.Int("data-start-row", 0, "Row index of the CSV header; earlier rows are skipped")
	rmin         = flag.Int("rmin", 1, "Minimum radius to observe, in grid steps")
	rmax         = flag.Int("rmax", 25, "Maximum radius to observe, in grid steps")
	rstep        = flag.Int("rstep", 1, "Radius step size")
	pxConv       = flag.Float64("pxconv", 0, "Units per pixel; with -pxstep selects the explicit rescale path. If absent the factor is auto-inferred")
	pxStep       = flag.Int("pxstep", 0, "Grid spacing between observations, in pixels (explicit rescale path)")
	workers      = flag.Int("workers", 0, "Worker pool size for the radius sweep; 0 = all cores")
	fisher       = flag.Bool("fisher", false, "Average orientation correlations through Fisher's z-transform")
	dbPath       = flag.String("db", "", "Optional SQLite database recording the run")

	xposCol = flag.String("xpos", "", "Column name of the x-coordinate values")
	yposCol = flag.String("ypos", "", "Column name of the y-coordinate values")
	xvelCol = flag.String("xvel", "", "Column name of the x-velocity values")
	yvelCol = flag.String("yvel", "", "Column name of the y-velocity values")

	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("velcorr %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	opts := config.DefaultOptions()
	if *configPath != "" {
		fc, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		fc.Apply(&opts)
	}
	applyFlags(&opts)

	if *inputPath == "" || *outputPath == "" {
		log.Fatal("-input and -output are required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		log.Fatalf("velcorr: %v", err)
	}
}

// applyFlags copies explicitly set flags onto opts, overriding config file
// values.
func applyFlags(opts *config.Options) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "data-start-row":
			opts.DataStartRow = *dataStartRow
		case "rmin":
			opts.MinRadius = *rmin
		case "rmax":
			opts.MaxRadius = *rmax
		case "rstep":
			opts.RadiusStep = *rstep
		case "pxconv":
			opts.PixelConv = *pxConv
		case "pxstep":
			opts.GridStepSize = *pxStep
		case "workers":
			opts.Workers = *workers
		case "fisher":
			opts.Fisher = *fisher
		case "xpos":
			opts.XPosColumn = *xposCol
		case "ypos":
			opts.YPosColumn = *yposCol
		case "xvel":
			opts.XVelColumn = *xvelCol
		case "yvel":
			opts.YVelColumn = *yvelCol
		}
	})
}

func run(ctx context.Context, opts config.Options) error {
	in, err := os.Open(*inputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	samples, err := dataio.ReadSamples(in, dataio.ReadOptions{DataStartRow: opts.DataStartRow})
	if err != nil {
		return fmt.Errorf("reading %s: %w", *inputPath, err)
	}
	log.Printf("read %d samples from %s", samples.Len(), *inputPath)

	scale, err := resolveScale(samples, opts)
	if err != nil {
		return err
	}
	factor, err := scale.Factor()
	if err != nil {
		return err
	}
	log.Printf("grid conversion factor: %v units per step", factor)

	rescaled, err := vfield.RescalePositions(samples, scale, opts.XPosColumn, opts.YPosColumn)
	if err != nil {
		return err
	}

	field, err := vfield.SquareInput(rescaled, vfield.Columns{
		X: opts.XPosColumn,
		Y: opts.YPosColumn,
		U: opts.XVelColumn,
		V: opts.YVelColumn,
	})
	if err != nil {
		return err
	}
	w, h := field.Dims()
	log.Printf("densified field: %dx%d (%d cells missing)", w, h, field.MissingCount())

	results, err := sweep.Run(ctx, field, sweep.Config{
		MinRadius:     opts.MinRadius,
		MaxRadius:     opts.MaxRadius,
		RadiusStep:    opts.RadiusStep,
		Workers:       opts.Workers,
		FisherAverage: opts.Fisher,
		UnitsPerStep:  factor,
	})
	if err != nil {
		return err
	}

	out, err := os.Create(*outputPath)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := dataio.WriteResults(out, results, true); err != nil {
		return fmt.Errorf("writing %s: %w", *outputPath, err)
	}

	summary := sweep.Summarize(results)
	log.Printf("swept %d radii (%d scored): mean score %.4f, min %.4f, max %.4f",
		summary.Radii, summary.Scored, summary.MeanScore, summary.MinScore, summary.MaxScore)

	if *dbPath != "" {
		s, err := store.Open(*dbPath)
		if err != nil {
			return fmt.Errorf("opening results db: %w", err)
		}
		defer s.Close()
		runID, err := s.RecordRun(store.Run{
			Source:           *inputPath,
			Width:            w,
			Height:           h,
			ConversionFactor: factor,
		}, results)
		if err != nil {
			return fmt.Errorf("recording run: %w", err)
		}
		log.Printf("recorded run %s in %s", runID, *dbPath)
	}

	return nil
}

// resolveScale picks between the explicit step-size path and the
// auto-inferred conversion factor.
func resolveScale(samples *vfield.Table, opts config.Options) (vfield.ScaleConfig, error) {
	if opts.GridStepSize > 0 || opts.PixelConv > 0 {
		step := opts.GridStepSize
		if step == 0 {
			step = 1
		}
		return vfield.ScaleConfig{StepSize: step, PixelUnitConversion: opts.PixelConv}, nil
	}
	factor, err := gridunit.FindConversionFactor(samples, opts.XPosColumn, opts.YPosColumn)
	if err != nil {
		return vfield.ScaleConfig{}, fmt.Errorf("inferring conversion factor: %w", err)
	}
	return vfield.ScaleConfig{ConversionFactor: factor}, nil
}
