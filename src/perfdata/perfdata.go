// Package perfdata ingests cycle-solver output tables (CSV) and turns them
// into overlay data for map rendering. The expected layout follows the
// solver's result export: a Mode column marking the design-point row ("DP")
// and off-design rows ("OD"), plus Wc, PR and Eta columns in the map's
// native units. Extra columns are ignored. OD rows keep file order; that
// order defines the drawn operating line.
package perfdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/wvisser1958/GSPy/src/turbomap"
)

// LoadOverlay reads the CSV file at path.
func LoadOverlay(path string) (*turbomap.Overlay, error) {
	defer turbomap.TimeTrack(time.Now(), "perfdata.LoadOverlay "+path)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open performance data: %w", err)
	}
	defer f.Close()
	ov, err := ReadOverlay(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ov, nil
}

// ReadOverlay parses solver output from r. The first DP row becomes the
// design point (extra DP rows are logged and skipped); OD rows become the
// operating curve. A table with neither is an error.
func ReadOverlay(r io.Reader) (*turbomap.Overlay, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := map[string]int{}
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"Mode", "Wc", "PR", "Eta"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	var (
		dp    *turbomap.DesignPoint
		curve turbomap.OperatingCurve
	)
	row := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row+1, err)
		}
		row++
		mode := strings.TrimSpace(rec[col["Mode"]])
		switch mode {
		case "DP", "OD":
		default:
			turbomap.Debugf("perfdata: row %d: skipping mode %q", row, mode)
			continue
		}
		wc, err := parseValue(rec, col["Wc"], "Wc", row)
		if err != nil {
			return nil, err
		}
		pr, err := parseValue(rec, col["PR"], "PR", row)
		if err != nil {
			return nil, err
		}
		eta, err := parseValue(rec, col["Eta"], "Eta", row)
		if err != nil {
			return nil, err
		}
		if mode == "DP" {
			if dp != nil {
				turbomap.Warnf("perfdata: row %d: extra DP row ignored (first one wins)", row)
				continue
			}
			dp = &turbomap.DesignPoint{Wc: wc, PR: pr, Eta: eta}
			continue
		}
		curve.Wc = append(curve.Wc, wc)
		curve.PR = append(curve.PR, pr)
		curve.Eta = append(curve.Eta, eta)
	}

	ov := &turbomap.Overlay{DesignPoint: dp}
	if curve.Len() > 0 {
		if err := curve.Validate(); err != nil {
			return nil, err
		}
		ov.Curve = &curve
	}
	if ov.DesignPoint == nil && ov.Curve == nil {
		return nil, fmt.Errorf("no DP or OD rows found")
	}
	return ov, nil
}

func parseValue(rec []string, idx int, name string, row int) (float64, error) {
	if idx >= len(rec) {
		return 0, fmt.Errorf("row %d: missing %s value", row, name)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(rec[idx]), 64)
	if err != nil {
		return 0, fmt.Errorf("row %d: bad %s value %q", row, name, rec[idx])
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("row %d: non-finite %s value", row, name)
	}
	return v, nil
}
