// gspmapviewer is a small desktop viewer for turbomachinery maps: open a
// map file, enter or derive scale factors, overlay solver output and export
// the rendered two-panel figure as PNG.
package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/wvisser1958/GSPy/src/mapfile"
	"github.com/wvisser1958/GSPy/src/maprender"
	"github.com/wvisser1958/GSPy/src/perfdata"
	"github.com/wvisser1958/GSPy/src/turbomap"
)

type uiState struct {
	app    fyne.App
	window fyne.Window

	mapPath string
	csvPath string
	kind    turbomap.Kind

	sfWc, sfPR, sfEta, sfNc *widget.Entry
	showDP                  bool
	showCurve               bool
	legend                  bool

	mapLabel  *widget.Label
	csvLabel  *widget.Label
	imgCanvas *canvas.Image
	panels    *maprender.Panels
}

func main() {
	var fileFlag, csvFlag, kindFlag, logLevel string
	flag.StringVar(&fileFlag, "map", "", "Path to a map file to open at startup")
	flag.StringVar(&csvFlag, "csv", "", "Path to solver output CSV to overlay")
	flag.StringVar(&kindFlag, "kind", "compressor", "Map kind: compressor or turbine")
	flag.StringVar(&logLevel, "loglevel", "info", "Log level: debug, info, warn, error")
	flag.Parse()
	turbomap.SetLogLevel(logLevel)

	kind, err := turbomap.ParseKind(kindFlag)
	if err != nil {
		kind = turbomap.Compressor
	}

	a := app.NewWithID("com.gspy.mapviewer")
	w := a.NewWindow("GSPy Map Viewer")
	w.Resize(fyne.NewSize(1000, 860))

	state := &uiState{
		app:       a,
		window:    w,
		kind:      kind,
		showDP:    true,
		showCurve: true,
	}
	if fileFlag != "" {
		state.mapPath = fileFlag
	} else {
		state.mapPath = a.Preferences().StringWithFallback("lastMap", "")
	}
	if csvFlag != "" {
		state.csvPath = csvFlag
	} else {
		state.csvPath = a.Preferences().StringWithFallback("lastCSV", "")
	}

	state.mapLabel = widget.NewLabel(pathOrNone(state.mapPath))
	state.csvLabel = widget.NewLabel(pathOrNone(state.csvPath))

	state.sfWc = newFactorEntry(a, "sfWc")
	state.sfPR = newFactorEntry(a, "sfPR")
	state.sfEta = newFactorEntry(a, "sfEta")
	state.sfNc = newFactorEntry(a, "sfNc")

	kindSelect := widget.NewSelect([]string{"Compressor", "Turbine"}, func(v string) {
		if strings.EqualFold(v, "turbine") {
			state.kind = turbomap.Turbine
		} else {
			state.kind = turbomap.Compressor
		}
		redraw(state)
	})
	if state.kind == turbomap.Turbine {
		kindSelect.Selected = "Turbine"
	} else {
		kindSelect.Selected = "Compressor"
	}

	dpChk := widget.NewCheck("Design point", func(v bool) { state.showDP = v; redraw(state) })
	dpChk.SetChecked(true)
	curveChk := widget.NewCheck("Operating line", func(v bool) { state.showCurve = v; redraw(state) })
	curveChk.SetChecked(true)
	legendChk := widget.NewCheck("Legend", func(v bool) { state.legend = v; redraw(state) })

	openMapBtn := widget.NewButton("Open map…", func() { openMapDialog(state) })
	openCSVBtn := widget.NewButton("Open CSV…", func() { openCSVDialog(state) })
	renderBtn := widget.NewButton("Render", func() { redraw(state) })
	exportBtn := widget.NewButton("Export PNG…", func() { exportDialog(state) })

	state.imgCanvas = &canvas.Image{FillMode: canvas.ImageFillContain}
	state.imgCanvas.SetMinSize(fyne.NewSize(900, 720))

	controls := container.NewVBox(
		container.NewHBox(openMapBtn, state.mapLabel, openCSVBtn, state.csvLabel),
		container.NewHBox(
			kindSelect,
			widget.NewLabel("SF Wc"), state.sfWc,
			widget.NewLabel("SF PR"), state.sfPR,
			widget.NewLabel("SF Eta"), state.sfEta,
			widget.NewLabel("SF Nc"), state.sfNc,
		),
		container.NewHBox(dpChk, curveChk, legendChk, renderBtn, exportBtn),
	)
	w.SetContent(container.NewBorder(controls, nil, nil, nil, container.NewScroll(state.imgCanvas)))

	if state.mapPath != "" {
		redraw(state)
	}
	w.ShowAndRun()
}

func newFactorEntry(a fyne.App, prefKey string) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(a.Preferences().StringWithFallback(prefKey, "1.0"))
	return e
}

func pathOrNone(p string) string {
	if p == "" {
		return "(none)"
	}
	return p
}

func factorsFromEntries(state *uiState) (turbomap.ScaleFactors, error) {
	vals := make([]float64, 4)
	for i, e := range []*widget.Entry{state.sfWc, state.sfPR, state.sfEta, state.sfNc} {
		v, err := strconv.ParseFloat(strings.TrimSpace(e.Text), 64)
		if err != nil {
			return turbomap.ScaleFactors{}, fmt.Errorf("bad scale factor %q", e.Text)
		}
		vals[i] = v
	}
	return turbomap.NewScaleFactors(vals[0], vals[1], vals[2], vals[3])
}

func redraw(state *uiState) {
	if state.mapPath == "" || state.imgCanvas == nil {
		return
	}
	pm, err := mapfile.Load(state.mapPath)
	if err != nil {
		dialog.ShowError(err, state.window)
		return
	}
	factors, err := factorsFromEntries(state)
	if err != nil {
		dialog.ShowError(err, state.window)
		return
	}
	scaled, err := turbomap.ApplyWithSurge(pm.Table, pm.Surge, factors)
	if err != nil {
		dialog.ShowError(err, state.window)
		return
	}
	r := maprender.New(state.kind, maprender.Options{ShowLegend: state.legend})
	if err := r.RenderBase(scaled); err != nil {
		dialog.ShowError(err, state.window)
		return
	}
	if state.csvPath != "" && (state.showDP || state.showCurve) {
		ov, err := perfdata.LoadOverlay(state.csvPath)
		if err != nil {
			dialog.ShowError(err, state.window)
			return
		}
		if ov.Curve != nil && state.showCurve {
			if err := r.RenderOperatingCurve(ov.Curve); err != nil {
				dialog.ShowError(err, state.window)
				return
			}
		}
		if ov.DesignPoint != nil && state.showDP {
			if err := r.RenderDesignPoint(*ov.DesignPoint); err != nil {
				dialog.ShowError(err, state.window)
				return
			}
		}
	}
	panels, err := r.Finalize(pm.Title)
	if err != nil {
		dialog.ShowError(err, state.window)
		return
	}
	state.panels = panels
	state.imgCanvas.Image = panels.Combined
	state.imgCanvas.Refresh()
	savePrefs(state)
}

func savePrefs(state *uiState) {
	p := state.app.Preferences()
	p.SetString("lastMap", state.mapPath)
	p.SetString("lastCSV", state.csvPath)
	p.SetString("sfWc", state.sfWc.Text)
	p.SetString("sfPR", state.sfPR.Text)
	p.SetString("sfEta", state.sfEta.Text)
	p.SetString("sfNc", state.sfNc.Text)
}

func openMapDialog(state *uiState) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		state.mapPath = rc.URI().Path()
		state.mapLabel.SetText(state.mapPath)
		redraw(state)
	}, state.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".map", ".txt"}))
	d.Show()
}

func openCSVDialog(state *uiState) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		state.csvPath = rc.URI().Path()
		state.csvLabel.SetText(state.csvPath)
		redraw(state)
	}, state.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".csv"}))
	d.Show()
}

func exportDialog(state *uiState) {
	if state.panels == nil {
		dialog.ShowInformation("Export", "Render a map first.", state.window)
		return
	}
	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if err := state.panels.EncodePNG(wc); err != nil {
			dialog.ShowError(err, state.window)
			return
		}
		turbomap.Infof("exported %s", wc.URI().Path())
	}, state.window)
	d.SetFileName("map.png")
	d.Show()
}
