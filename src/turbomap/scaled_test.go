package turbomap

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-12

func almostEqual(a, b float64) bool { return math.Abs(a-b) <= eps*math.Max(1, math.Abs(b)) }

func twoLineTable(t *testing.T) *SpeedLineTable {
	t.Helper()
	tab, err := NewSpeedLineTable(
		[]float64{8000, 16000},
		[][]float64{{10, 20, 30}, {12, 24, 36}},
		[][]float64{{1.5, 1.8, 2.0}, {1.6, 2.0, 2.3}},
		[][]float64{{0.7, 0.8, 0.75}, {0.72, 0.82, 0.76}},
	)
	if err != nil {
		t.Fatalf("table construction: %v", err)
	}
	return tab
}

func TestApply_IdentityMatchesRawTable(t *testing.T) {
	tab := twoLineTable(t)
	m, err := Apply(tab, Identity())
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if m.Scaled() {
		t.Fatal("identity scaling reported as scaled")
	}
	for i := 0; i < tab.LineCount(); i++ {
		if m.SpeedValue(i) != tab.SpeedValue(i) {
			t.Fatalf("line %d: speed changed under identity", i)
		}
		wantF, gotF := tab.FlowValues(i), m.FlowValues(i)
		wantP, gotP := tab.PressureRatioValues(i), m.PressureRatioValues(i)
		wantE, gotE := tab.EfficiencyValues(i), m.EfficiencyValues(i)
		for j := range wantF {
			if !almostEqual(gotF[j], wantF[j]) || !almostEqual(gotP[j], wantP[j]) || !almostEqual(gotE[j], wantE[j]) {
				t.Fatalf("line %d sample %d changed under identity", i, j)
			}
		}
	}
}

func TestApply_EndToEndScenario(t *testing.T) {
	tab := twoLineTable(t)
	f, err := NewScaleFactors(1.1, 1.05, 0.95, 1)
	if err != nil {
		t.Fatalf("factors: %v", err)
	}
	m, err := Apply(tab, f)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !m.Scaled() {
		t.Fatal("non-identity scaling not reported as scaled")
	}
	wantFlow := []float64{11, 22, 33}
	wantPR := []float64{1.575, 1.89, 2.1}
	wantEta := []float64{0.665, 0.76, 0.7125}
	gotFlow := m.FlowValues(0)
	gotPR := m.PressureRatioValues(0)
	gotEta := m.EfficiencyValues(0)
	for j := range wantFlow {
		if !almostEqual(gotFlow[j], wantFlow[j]) {
			t.Errorf("flow[%d]: got %v want %v", j, gotFlow[j], wantFlow[j])
		}
		if !almostEqual(gotPR[j], wantPR[j]) {
			t.Errorf("pr[%d]: got %v want %v", j, gotPR[j], wantPR[j])
		}
		if !almostEqual(gotEta[j], wantEta[j]) {
			t.Errorf("eta[%d]: got %v want %v", j, gotEta[j], wantEta[j])
		}
	}
	// speed factor unity: labels unchanged
	if m.SpeedValue(0) != 8000 || m.SpeedValue(1) != 16000 {
		t.Fatalf("speed labels changed under unity speed factor: %v %v", m.SpeedValue(0), m.SpeedValue(1))
	}
}

func TestApply_SpeedFactor(t *testing.T) {
	tab := twoLineTable(t)
	f, _ := NewScaleFactors(1, 1, 1, 2)
	m, err := Apply(tab, f)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if m.SpeedValue(0) != 16000 || m.SpeedValue(1) != 32000 {
		t.Fatalf("speed labels not scaled: %v %v", m.SpeedValue(0), m.SpeedValue(1))
	}
	// every other axis untouched
	if got := m.FlowValues(0)[0]; got != 10 {
		t.Fatalf("flow changed by speed factor: %v", got)
	}
}

func TestApply_ScalingComposesMultiplicatively(t *testing.T) {
	tab := twoLineTable(t)
	f1, _ := NewScaleFactors(1.2, 1.1, 0.9, 1.5)
	f2, _ := NewScaleFactors(0.8, 1.3, 1.05, 2)
	combined, _ := NewScaleFactors(1.2*0.8, 1.1*1.3, 0.9*1.05, 1.5*2)

	once, err := Apply(tab, combined)
	if err != nil {
		t.Fatalf("apply combined: %v", err)
	}
	// apply f2 relative to the f1-scaled values
	first, err := Apply(tab, f1)
	if err != nil {
		t.Fatalf("apply f1: %v", err)
	}
	for i := 0; i < tab.LineCount(); i++ {
		fl1 := first.FlowValues(i)
		flc := once.FlowValues(i)
		for j := range fl1 {
			if !almostEqual(fl1[j]*f2.Flow(), flc[j]) {
				t.Fatalf("flow line %d sample %d: composed %v != combined %v", i, j, fl1[j]*f2.Flow(), flc[j])
			}
		}
		if !almostEqual(first.SpeedValue(i)*f2.Speed(), once.SpeedValue(i)) {
			t.Fatalf("speed line %d does not compose", i)
		}
	}
}

func TestApply_ShapePreservedAndSourceUntouched(t *testing.T) {
	tab := twoLineTable(t)
	// snapshot raw values
	snapFlow := [][]float64{tab.FlowValues(0), tab.FlowValues(1)}
	snapPR := [][]float64{tab.PressureRatioValues(0), tab.PressureRatioValues(1)}

	f, _ := NewScaleFactors(3, 2, 0.5, 4)
	m, err := Apply(tab, f)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if m.LineCount() != tab.LineCount() {
		t.Fatalf("line count changed: %d -> %d", tab.LineCount(), m.LineCount())
	}
	for i := 0; i < tab.LineCount(); i++ {
		if len(m.FlowValues(i)) != tab.SampleCount(i) {
			t.Fatalf("line %d sample count changed", i)
		}
	}
	for i := range snapFlow {
		curF := tab.FlowValues(i)
		curP := tab.PressureRatioValues(i)
		for j := range snapFlow[i] {
			if curF[j] != snapFlow[i][j] || curP[j] != snapPR[i][j] {
				t.Fatalf("source table mutated at line %d sample %d", i, j)
			}
		}
	}
}

func TestApply_RejectsZeroValueFactors(t *testing.T) {
	tab := twoLineTable(t)
	var f ScaleFactors // never built via NewScaleFactors
	_, err := Apply(tab, f)
	var inv *InvalidScaleFactorError
	if !errors.As(err, &inv) {
		t.Fatalf("want InvalidScaleFactorError, got %v", err)
	}
}

func TestApplyWithSurge(t *testing.T) {
	tab := twoLineTable(t)
	sl, err := NewSurgeLine([]float64{9, 11, 14}, []float64{1.9, 2.2, 2.6})
	if err != nil {
		t.Fatalf("surge line: %v", err)
	}
	f, _ := NewScaleFactors(2, 1.5, 0.9, 1)
	m, err := ApplyWithSurge(tab, sl, f)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	got := m.Surge()
	if got == nil {
		t.Fatal("surge line dropped")
	}
	wantWc := []float64{18, 22, 28}
	wantPR := []float64{2.85, 3.3, 3.9}
	gw, gp := got.FlowValues(), got.PressureRatioValues()
	for j := range wantWc {
		if !almostEqual(gw[j], wantWc[j]) || !almostEqual(gp[j], wantPR[j]) {
			t.Fatalf("surge sample %d: got (%v,%v) want (%v,%v)", j, gw[j], gp[j], wantWc[j], wantPR[j])
		}
	}
	// original surge untouched
	if sl.FlowValues()[0] != 9 {
		t.Fatal("source surge line mutated")
	}
	// without surge, Surge() is nil
	m2, _ := Apply(tab, f)
	if m2.Surge() != nil {
		t.Fatal("Apply invented a surge line")
	}
}

func TestApply_Deterministic(t *testing.T) {
	tab := twoLineTable(t)
	f, _ := NewScaleFactors(1.1, 1.05, 0.95, 1.01)
	a, _ := Apply(tab, f)
	b, _ := Apply(tab, f)
	for i := 0; i < tab.LineCount(); i++ {
		av, bv := a.FlowValues(i), b.FlowValues(i)
		for j := range av {
			if av[j] != bv[j] {
				t.Fatalf("apply not bit-identical at line %d sample %d", i, j)
			}
		}
	}
}
