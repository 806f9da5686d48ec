package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/nsf/termbox-go"

	"github.com/azu-azu/tsukisound/dsp"
	"github.com/azu-azu/tsukisound/wavio"
)

const (
	colDef    = termbox.ColorDefault
	colWhite  = termbox.ColorWhite
	colGreen  = termbox.ColorGreen
	colYellow = termbox.ColorYellow
	colBlue   = termbox.ColorBlue
	colCyan   = termbox.ColorCyan
	colRed    = termbox.ColorRed
)

type renderStatus int

const (
	statusPending renderStatus = iota
	statusRendering
	statusDone
	statusFailed
)

type renderRow struct {
	asset   Asset
	status  renderStatus
	seconds float64
	peakDB  float64
	rmsDB   float64
	err     error
}

type renderModel struct {
	mu       sync.Mutex
	rows     []*renderRow
	finished bool
}

// renderTUI runs the batch render in the background while a termbox view
// shows per-asset status and level meters. 'q' or Esc exits; the render
// keeps its output either way.
func renderTUI(cfg *Config, assets []Asset) error {
	if err := termbox.Init(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	defer termbox.Close()
	termbox.SetInputMode(termbox.InputEsc)

	model := &renderModel{}
	for _, a := range assets {
		model.rows = append(model.rows, &renderRow{asset: a, peakDB: -96, rmsDB: -96})
	}

	go renderWorker(cfg, model)

	eventQueue := make(chan termbox.Event)
	go func() {
		for {
			eventQueue <- termbox.PollEvent()
		}
	}()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	drawModel(model)
	for {
		select {
		case ev := <-eventQueue:
			if ev.Type == termbox.EventKey && (ev.Key == termbox.KeyEsc || ev.Ch == 'q') {
				return model.firstError()
			}
			if ev.Type == termbox.EventResize {
				drawModel(model)
			}
		case <-ticker.C:
			drawModel(model)
		}
	}
}

func renderWorker(cfg *Config, model *renderModel) {
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		model.mu.Lock()
		for _, row := range model.rows {
			row.status = statusFailed
			row.err = err
		}
		model.finished = true
		model.mu.Unlock()
		return
	}

	for _, row := range model.rows {
		model.mu.Lock()
		row.status = statusRendering
		model.mu.Unlock()

		channels, err := renderAsset(cfg, row.asset)
		if err == nil {
			path := filepath.Join(cfg.OutDir, row.asset.Name+".wav")
			err = wavio.WriteFile(path, cfg.SampleRate, channels...)
		}

		model.mu.Lock()
		if err != nil {
			row.status = statusFailed
			row.err = err
		} else {
			row.status = statusDone
			row.seconds = float64(len(channels[0])) / cfg.sampleRateF()
			row.peakDB = dsp.LinearToDB(dsp.Peak(channels[0]))
			row.rmsDB = dsp.LinearToDB(dsp.RMS(channels[0]))
		}
		model.mu.Unlock()
	}

	model.mu.Lock()
	model.finished = true
	model.mu.Unlock()
}

func (m *renderModel) firstError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.err != nil {
			return row.err
		}
	}
	return nil
}

func drawModel(m *renderModel) {
	termbox.Clear(colDef, colDef)

	printTB(0, 0, colCyan, colDef, "tsukisound - batch render")
	printTB(0, 1, colDef, colDef, "'q' or Esc to exit")
	printTB(0, 2, colDef, colDef, "----------------------------------------------------------------")

	m.mu.Lock()
	y := 4
	for _, row := range m.rows {
		label, col := rowLabel(row)
		printTB(0, y, col, colDef, fmt.Sprintf("%-10s %-22s", label, row.asset.Name))
		switch row.status {
		case statusDone:
			drawMeter(34, y, "peak", row.peakDB, colGreen)
			drawMeter(34+32, y, "rms ", row.rmsDB, colBlue)
			printTB(34+64, y, colDef, colDef, fmt.Sprintf("%6.1fs", row.seconds))
		case statusFailed:
			printTB(34, y, colRed, colDef, row.err.Error())
		}
		y++
	}
	if m.finished {
		printTB(0, y+1, colYellow, colDef, "all renders finished")
	}
	m.mu.Unlock()

	termbox.Flush()
}

func rowLabel(row *renderRow) (string, termbox.Attribute) {
	switch row.status {
	case statusRendering:
		return "rendering", colYellow
	case statusDone:
		return "done", colGreen
	case statusFailed:
		return "failed", colRed
	default:
		return "pending", colWhite
	}
}

// drawMeter draws a level bar over a -60..0 dB range.
func drawMeter(x, y int, label string, db float64, color termbox.Attribute) {
	const barWidth = 20
	minDB, maxDB := -60.0, 0.0
	v := db
	if v < minDB {
		v = minDB
	}
	if v > maxDB {
		v = maxDB
	}
	filled := int((v - minDB) / (maxDB - minDB) * barWidth)

	printTB(x, y, colDef, colDef, label+" ")
	startX := x + len(label) + 1
	for i := 0; i < barWidth; i++ {
		ch := '░'
		if i < filled {
			ch = '█'
		}
		termbox.SetCell(startX+i, y, ch, color, colDef)
	}
	printTB(startX+barWidth+1, y, colDef, colDef, fmt.Sprintf("%6.1f", db))
}

func printTB(x, y int, fg, bg termbox.Attribute, msg string) {
	for _, c := range msg {
		termbox.SetCell(x, y, c, fg, bg)
		x++
	}
}
