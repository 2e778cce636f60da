package mapfile

import (
	"errors"
	"strings"
	"testing"

	"github.com/wvisser1958/GSPy/src/turbomap"
)

const sampleMap = `# generic HPC map
TITLE HPC generic

NC 0.8
0.450 1.30 0.780
0.470 1.28 0.792

0.490 1.25 0.788

NC 0.9
0.520 1.52 0.801
0.545 1.48 0.812

NC 1.0
0.600 1.80 0.820
0.625 1.74 0.828
0.650 1.66 0.818

SURGE
0.430 1.45
0.520 1.80
0.610 2.10
`

func TestParse_SampleMap(t *testing.T) {
	pm, err := Parse(strings.NewReader(sampleMap))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if pm.Title != "HPC generic" {
		t.Fatalf("title: got %q", pm.Title)
	}
	tab := pm.Table
	if tab.LineCount() != 3 {
		t.Fatalf("line count: got %d want 3", tab.LineCount())
	}
	// blank line inside the first block must not split it
	if got := tab.SampleCount(0); got != 3 {
		t.Fatalf("line 0 samples: got %d want 3", got)
	}
	if got := tab.SpeedValue(1); got != 0.9 {
		t.Fatalf("line 1 speed: got %v want 0.9", got)
	}
	if got := tab.FlowValues(2)[1]; got != 0.625 {
		t.Fatalf("line 2 flow[1]: got %v want 0.625", got)
	}
	if got := tab.EfficiencyValues(0)[2]; got != 0.788 {
		t.Fatalf("line 0 eta[2]: got %v want 0.788", got)
	}
	if pm.Surge == nil {
		t.Fatal("surge line missing")
	}
	if got := pm.Surge.Len(); got != 3 {
		t.Fatalf("surge samples: got %d want 3", got)
	}
	if got := pm.Surge.PressureRatioValues()[2]; got != 2.10 {
		t.Fatalf("surge pr[2]: got %v want 2.10", got)
	}
}

func TestParse_NoSurgeIsFine(t *testing.T) {
	src := "NC 1.0\n1 2 0.8\n"
	pm, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if pm.Surge != nil {
		t.Fatal("surge invented")
	}
	if pm.Title != "" {
		t.Fatalf("title invented: %q", pm.Title)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"row before NC", "0.45 1.3 0.78\n"},
		{"wrong arity in NC block", "NC 1.0\n0.45 1.3\n"},
		{"wrong arity in surge block", "NC 1.0\n1 2 0.8\nSURGE\n0.4 1.4 9\n"},
		{"bad number", "NC 1.0\n0.45 abc 0.78\n"},
		{"bad speed", "NC fast\n"},
		{"NC without value", "NC\n"},
		{"duplicate surge", "NC 1.0\n1 2 0.8\nSURGE\n0.4 1.4\nSURGE\n0.5 1.5\n"},
		{"empty source", "# only a comment\n"},
		{"NC block without samples", "NC 0.8\nNC 0.9\n1 2 0.8\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(c.src))
			var mm *turbomap.MalformedMapError
			if !errors.As(err, &mm) {
				t.Fatalf("want MalformedMapError, got %v", err)
			}
		})
	}
}

func TestParse_ErrorCarriesLineNumber(t *testing.T) {
	src := "NC 1.0\n0.45 1.3 0.78\n0.46 oops 0.79\n"
	_, err := Parse(strings.NewReader(src))
	var mm *turbomap.MalformedMapError
	if !errors.As(err, &mm) {
		t.Fatalf("want MalformedMapError, got %v", err)
	}
	if mm.Line != 3 {
		t.Fatalf("line: got %d want 3", mm.Line)
	}
}
