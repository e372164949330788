package telemetry

import (
	"math"
	"testing"
)

func TestParseFloat(t *testing.T) {
	cases := []struct {
		cell  string
		want  float64
		valid bool
	}{
		{"1.5", 1.5, true},
		{" 42 ", 42, true},
		{"-3", -3, true},
		{"", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
	}
	for _, tc := range cases {
		got := ParseFloat(tc.cell)
		if got.Valid != tc.valid {
			t.Errorf("ParseFloat(%q).Valid = %v, want %v", tc.cell, got.Valid, tc.valid)
			continue
		}
		if got.Valid && got.Float64 != tc.want {
			t.Errorf("ParseFloat(%q) = %v, want %v", tc.cell, got.Float64, tc.want)
		}
	}
}

func TestFloatFromRejectsNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := FloatFrom(v); got.Valid {
			t.Errorf("FloatFrom(%v) should be invalid", v)
		}
	}
	if got := FloatFrom(0); !got.Valid {
		t.Error("FloatFrom(0) should be valid")
	}
}

func TestFloatString(t *testing.T) {
	if got := (Float{}).String(); got != "" {
		t.Errorf("invalid Float renders %q, want empty", got)
	}
	if got := FloatFrom(1.25).String(); got != "1.25" {
		t.Errorf("got %q, want 1.25", got)
	}
}

func TestMedian(t *testing.T) {
	odd := []Float{FloatFrom(3), FloatFrom(1), FloatFrom(2)}
	if got := Median(odd); !got.Valid || got.Float64 != 2 {
		t.Errorf("odd median = %+v, want 2", got)
	}

	even := []Float{FloatFrom(4), FloatFrom(1), FloatFrom(3), FloatFrom(2)}
	if got := Median(even); !got.Valid || got.Float64 != 2.5 {
		t.Errorf("even median = %+v, want 2.5", got)
	}

	mixed := []Float{{}, FloatFrom(5), {}}
	if got := Median(mixed); !got.Valid || got.Float64 != 5 {
		t.Errorf("median should ignore invalid samples, got %+v", got)
	}

	if got := Median([]Float{{}, {}}); got.Valid {
		t.Errorf("all-invalid median should be invalid, got %+v", got)
	}
	if got := Median(nil); got.Valid {
		t.Errorf("empty median should be invalid, got %+v", got)
	}
}

func TestMax(t *testing.T) {
	values := []Float{{}, FloatFrom(-2), FloatFrom(7), FloatFrom(3)}
	if got := Max(values); !got.Valid || got.Float64 != 7 {
		t.Errorf("max = %+v, want 7", got)
	}
	if got := Max([]Float{{}}); got.Valid {
		t.Errorf("all-invalid max should be invalid, got %+v", got)
	}
}
