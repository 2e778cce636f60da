// Package mapfile reads turbomachinery performance maps stored as plain text
// with labeled per-speed-line blocks:
//
//	# optional comments anywhere
//	TITLE HPC generic map        (optional)
//	NC 0.8
//	0.450 1.30 0.780             (Wc PR Eta sample rows)
//	0.470 1.28 0.792
//
//	NC 0.9
//	...
//	SURGE                        (optional, compressor maps)
//	0.43 1.45                    (Wc PR rows)
//	0.52 1.80
//
// Blank separator lines between and inside blocks are tolerated; they carry
// no meaning. The parser produces a validated turbomap.SpeedLineTable plus
// the optional surge line and never mutates anything after return.
package mapfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/wvisser1958/GSPy/src/turbomap"
)

// ParsedMap is the result of reading one map source.
type ParsedMap struct {
	Title string // from the TITLE line, empty when absent
	Table *turbomap.SpeedLineTable
	Surge *turbomap.SurgeLine // nil when the map carries no surge block
}

// Load reads and parses the map file at path. The returned Title falls back
// to the file name stem when the source has no TITLE line.
func Load(path string) (*ParsedMap, error) {
	defer turbomap.TimeTrack(time.Now(), "mapfile.Load "+path)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open map file: %w", err)
	}
	defer f.Close()
	pm, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if pm.Title == "" {
		base := filepath.Base(path)
		pm.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return pm, nil
}

// Parse reads one map from r.
func Parse(r io.Reader) (*ParsedMap, error) {
	var (
		title   string
		speeds  []float64
		flow    [][]float64
		pr      [][]float64
		eta     [][]float64
		surgeWc []float64
		surgePR []float64
	)
	const (
		blockNone = iota
		blockSpeedLine
		blockSurge
	)
	block := blockNone
	seenSurge := false

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch strings.ToUpper(fields[0]) {
		case "TITLE":
			title = strings.TrimSpace(strings.TrimPrefix(line, fields[0]))
			continue
		case "NC":
			if len(fields) != 2 {
				return nil, &turbomap.MalformedMapError{Line: lineNo, Reason: "NC line must carry exactly one speed value"}
			}
			v, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, &turbomap.MalformedMapError{Line: lineNo, Reason: fmt.Sprintf("bad speed value %q", fields[1])}
			}
			speeds = append(speeds, v)
			flow = append(flow, nil)
			pr = append(pr, nil)
			eta = append(eta, nil)
			block = blockSpeedLine
			continue
		case "SURGE":
			if seenSurge {
				return nil, &turbomap.MalformedMapError{Line: lineNo, Reason: "duplicate SURGE block"}
			}
			seenSurge = true
			block = blockSurge
			continue
		}

		vals, err := parseRow(fields)
		if err != nil {
			return nil, &turbomap.MalformedMapError{Line: lineNo, Reason: err.Error()}
		}
		switch block {
		case blockSpeedLine:
			if len(vals) != 3 {
				return nil, &turbomap.MalformedMapError{Line: lineNo, Reason: fmt.Sprintf(
					"speed-line row needs 3 values (Wc PR Eta), got %d", len(vals))}
			}
			i := len(speeds) - 1
			flow[i] = append(flow[i], vals[0])
			pr[i] = append(pr[i], vals[1])
			eta[i] = append(eta[i], vals[2])
		case blockSurge:
			if len(vals) != 2 {
				return nil, &turbomap.MalformedMapError{Line: lineNo, Reason: fmt.Sprintf(
					"surge row needs 2 values (Wc PR), got %d", len(vals))}
			}
			surgeWc = append(surgeWc, vals[0])
			surgePR = append(surgePR, vals[1])
		default:
			return nil, &turbomap.MalformedMapError{Line: lineNo, Reason: "sample row before any NC block"}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read map source: %w", err)
	}

	table, err := turbomap.NewSpeedLineTable(speeds, flow, pr, eta)
	if err != nil {
		return nil, err
	}
	pm := &ParsedMap{Title: title, Table: table}
	if seenSurge {
		sl, err := turbomap.NewSurgeLine(surgeWc, surgePR)
		if err != nil {
			return nil, err
		}
		pm.Surge = sl
	}
	turbomap.Debugf("parsed map %q: %d speed lines, surge=%v", title, table.LineCount(), pm.Surge != nil)
	return pm, nil
}

func parseRow(fields []string) ([]float64, error) {
	vals := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("bad numeric value %q", f)
		}
		vals[i] = v
	}
	return vals, nil
}
