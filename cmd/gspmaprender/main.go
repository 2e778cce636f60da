// gspmaprender renders a turbomachinery map to a two-panel PNG without any
// GUI: parse the map file, apply scale factors (given directly or derived
// from a design point), overlay solver output from CSV and export.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/wvisser1958/GSPy/src/mapfile"
	"github.com/wvisser1958/GSPy/src/maprender"
	"github.com/wvisser1958/GSPy/src/perfdata"
	"github.com/wvisser1958/GSPy/src/turbomap"
)

func main() {
	var (
		mapPath  string
		kindName string
		csvPath  string
		outDir   string
		title    string
		width    int
		height   int
		legend   bool
		logLevel string

		sfWc, sfPR, sfEta, sfNc float64
		engineDP, mapDP         string
		noDP, noCurve           bool
	)
	flag.StringVar(&mapPath, "map", "", "Path to the map file (required)")
	flag.StringVar(&kindName, "kind", "compressor", "Map kind: compressor or turbine")
	flag.StringVar(&csvPath, "csv", "", "Optional solver output CSV with Mode,Wc,PR,Eta columns")
	flag.StringVar(&outDir, "out", "output", "Output directory for the rendered PNG")
	flag.StringVar(&title, "title", "", "Figure title (default: map title)")
	flag.IntVar(&width, "width", 900, "Panel width in pixels")
	flag.IntVar(&height, "height", 360, "Panel height in pixels")
	flag.BoolVar(&legend, "legend", false, "Draw a per-speed-line legend")
	flag.StringVar(&logLevel, "loglevel", "info", "Log level: debug, info, warn, error")
	flag.Float64Var(&sfWc, "sf-wc", 1, "Corrected-flow scale factor")
	flag.Float64Var(&sfPR, "sf-pr", 1, "Pressure-ratio scale factor")
	flag.Float64Var(&sfEta, "sf-eta", 1, "Efficiency scale factor")
	flag.Float64Var(&sfNc, "sf-nc", 1, "Corrected-speed scale factor")
	flag.StringVar(&engineDP, "dp", "", "Engine design values as nc,wc,pr,eta (with -map-dp, overrides -sf-*)")
	flag.StringVar(&mapDP, "map-dp", "", "Map design-point sample as nc,wc,pr,eta")
	flag.BoolVar(&noDP, "no-dp", false, "Skip the design-point marker")
	flag.BoolVar(&noCurve, "no-curve", false, "Skip the operating line")
	flag.Parse()

	turbomap.SetLogLevel(logLevel)
	if mapPath == "" {
		fmt.Fprintln(os.Stderr, "error: -map is required")
		flag.Usage()
		os.Exit(2)
	}
	if err := run(mapPath, kindName, csvPath, outDir, title, width, height, legend,
		sfWc, sfPR, sfEta, sfNc, engineDP, mapDP, noDP, noCurve); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(mapPath, kindName, csvPath, outDir, title string, width, height int, legend bool,
	sfWc, sfPR, sfEta, sfNc float64, engineDP, mapDP string, noDP, noCurve bool) error {
	kind, err := turbomap.ParseKind(kindName)
	if err != nil {
		return err
	}
	pm, err := mapfile.Load(mapPath)
	if err != nil {
		return err
	}

	factors, err := resolveFactors(sfWc, sfPR, sfEta, sfNc, engineDP, mapDP)
	if err != nil {
		return err
	}
	scaled, err := turbomap.ApplyWithSurge(pm.Table, pm.Surge, factors)
	if err != nil {
		return err
	}

	r := maprender.New(kind, maprender.Options{Width: width, Height: height, ShowLegend: legend})
	if err := r.RenderBase(scaled); err != nil {
		return err
	}
	if csvPath != "" {
		ov, err := perfdata.LoadOverlay(csvPath)
		if err != nil {
			return err
		}
		if ov.Curve != nil && !noCurve {
			if err := r.RenderOperatingCurve(ov.Curve); err != nil {
				return err
			}
		}
		if ov.DesignPoint != nil && !noDP {
			if err := r.RenderDesignPoint(*ov.DesignPoint); err != nil {
				return err
			}
		}
	}

	if title == "" {
		title = pm.Title
	}
	panels, err := r.Finalize(title)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	base := filepath.Base(mapPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	outPath := filepath.Join(outDir, stem+"_map.png")
	if err := panels.SavePNG(outPath); err != nil {
		return err
	}
	turbomap.Infof("wrote %s (%s)", outPath, panels.Title)
	return nil
}

// resolveFactors prefers design-point derivation when both quads are given,
// otherwise builds the snapshot from the explicit per-axis flags.
func resolveFactors(sfWc, sfPR, sfEta, sfNc float64, engineDP, mapDP string) (turbomap.ScaleFactors, error) {
	if engineDP != "" || mapDP != "" {
		if engineDP == "" || mapDP == "" {
			return turbomap.ScaleFactors{}, fmt.Errorf("-dp and -map-dp must be given together")
		}
		eng, err := parseDesignValues(engineDP)
		if err != nil {
			return turbomap.ScaleFactors{}, fmt.Errorf("-dp: %w", err)
		}
		mp, err := parseDesignValues(mapDP)
		if err != nil {
			return turbomap.ScaleFactors{}, fmt.Errorf("-map-dp: %w", err)
		}
		f, err := turbomap.FactorsForDesignPoint(mp, eng)
		if err != nil {
			return turbomap.ScaleFactors{}, err
		}
		turbomap.Infof("derived scale factors: Wc=%.6g PR=%.6g Eta=%.6g Nc=%.6g",
			f.Flow(), f.PressureRatio(), f.Efficiency(), f.Speed())
		return f, nil
	}
	return turbomap.NewScaleFactors(sfWc, sfPR, sfEta, sfNc)
}

func parseDesignValues(s string) (turbomap.DesignValues, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return turbomap.DesignValues{}, fmt.Errorf("want 4 comma-separated values nc,wc,pr,eta, got %d", len(parts))
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return turbomap.DesignValues{}, fmt.Errorf("bad value %q", p)
		}
		vals[i] = v
	}
	return turbomap.DesignValues{Nc: vals[0], Wc: vals[1], PR: vals[2], Eta: vals[3]}, nil
}
