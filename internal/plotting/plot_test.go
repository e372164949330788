package plotting

import (
	"os"
	"path/filepath"
	"testing"

	"torquelab/internal/telemetry"
)

func testSeries(name string) Series {
	return Series{
		Name:   name,
		Time:   []telemetry.Float{telemetry.FloatFrom(0), telemetry.FloatFrom(1), telemetry.FloatFrom(2)},
		Torque: []telemetry.Float{telemetry.FloatFrom(5), telemetry.FloatFrom(6.5), telemetry.FloatFrom(6)},
	}
}

func TestSaveRunPlotWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plots", "run_torque.png")
	if err := SaveRunPlot(path, "Maria - run_250W", testSeries("")); err != nil {
		t.Fatalf("SaveRunPlot: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Error("plot file is empty")
	}
}

func TestSaveOverlayPlotWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comparison_plots", "250W_Test_-_All_Pilots.png")
	series := []Series{testSeries("Andrew R"), testSeries("Maria")}
	if err := SaveOverlayPlot(path, "250W Test - All Pilots", series); err != nil {
		t.Fatalf("SaveOverlayPlot: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("overlay not written: %v", err)
	}
}

func TestPointsSkipUndefinedSamples(t *testing.T) {
	series := Series{
		Time:   []telemetry.Float{telemetry.FloatFrom(0), {}, telemetry.FloatFrom(2)},
		Torque: []telemetry.Float{telemetry.FloatFrom(5), telemetry.FloatFrom(6), {}},
	}
	pts := series.points()
	if len(pts) != 1 {
		t.Fatalf("got %d points, want 1", len(pts))
	}
	if pts[0].X != 0 || pts[0].Y != 5 {
		t.Errorf("point = %+v", pts[0])
	}
}

func TestSeriesColorWraps(t *testing.T) {
	if SeriesColor(0) != SeriesColor(len(seriesPalette)) {
		t.Error("color assignment should wrap around the palette")
	}
	if SeriesColor(0) == SeriesColor(1) {
		t.Error("adjacent series should not share a color")
	}
}
