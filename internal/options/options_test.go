package options

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	sederr "github.com/sedstack/sedinit/internal/errors"
	"github.com/sedstack/sedinit/internal/testutil"
)

func TestParseFlag(t *testing.T) {
	tests := []struct {
		value   string
		want    bool
		wantErr bool
	}{
		{"TRUE", true, false},
		{"TRUEISH", true, false},
		{"FALSE", false, false},
		{"FALSE # off", false, false},
		{"true", false, true},
		{"False", false, true},
		{"TRU", false, true},
		{" TRUE", false, true},
		{"", false, true},
		{"YES", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := ParseFlag(Section, "MASS WASTING", tt.value)
			if tt.wantErr {
				if !sederr.HasCode(err, sederr.CodeMissingOrMalformed) {
					t.Fatalf("ParseFlag(%q) error = %v, want %s", tt.value, err, sederr.CodeMissingOrMalformed)
				}
				if v, _ := sederr.Detail(err, "key"); v != "MASS WASTING" {
					t.Errorf("error key = %v, want MASS WASTING", v)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFlag(%q) unexpected error: %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("ParseFlag(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestResolve_AllFalse(t *testing.T) {
	var out bytes.Buffer
	r := &Resolver{Out: &out}

	opts, err := r.Resolve(testutil.BaseSections().Store(), true)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if opts != (Options{}) {
		t.Errorf("opts = %+v, want all false", opts)
	}
	if out.Len() != 0 {
		t.Errorf("no notices expected, got %q", out.String())
	}
}

func TestResolve_AllTrue(t *testing.T) {
	s := testutil.BaseSections()
	for _, sw := range Switches {
		s.Set(Section, string(sw), "TRUE")
	}

	var out bytes.Buffer
	r := &Resolver{Out: &out}
	opts, err := r.Resolve(s.Store(), true)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	want := Options{
		MassWasting:    true,
		SurfaceErosion: true,
		ErosionPeriod:  true,
		RoadRouting:    true,
		ChannelRouting: true,
	}
	if opts != want {
		t.Errorf("opts = %+v, want %+v", opts, want)
	}
	for _, msg := range []string{"Mass Wasting", "Surface Erosion", "Road Erosion", "Channel Routing"} {
		if !strings.Contains(out.String(), msg) {
			t.Errorf("notices missing %q: %s", msg, out.String())
		}
	}
}

func TestResolve_ErosionPeriodMirrorsSurfaceErosion(t *testing.T) {
	for _, v := range []string{"TRUE", "FALSE"} {
		s := testutil.BaseSections().Set(Section, string(SurfaceErosion), v)
		opts, err := (&Resolver{}).Resolve(s.Store(), false)
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if opts.ErosionPeriod != opts.SurfaceErosion {
			t.Errorf("%s: ErosionPeriod = %v, SurfaceErosion = %v", v, opts.ErosionPeriod, opts.SurfaceErosion)
		}
	}
}

func TestResolve_RoadDowngradeWithoutNetwork(t *testing.T) {
	s := testutil.BaseSections().Set(Section, string(RoadErosion), "TRUE")

	var out bytes.Buffer
	logs := testutil.NewTestLogger(t)
	r := &Resolver{Out: &out, Logger: logs.Logger}

	opts, err := r.Resolve(s.Store(), false)
	if err != nil {
		t.Fatalf("road downgrade must not fail: %v", err)
	}
	if opts.RoadRouting {
		t.Error("RoadRouting should be forced false without a network")
	}
	if !strings.Contains(out.String(), NoNetworkNotice) {
		t.Errorf("expected downgrade notice, got %q", out.String())
	}
	if strings.Contains(out.String(), "Road Erosion component will be run") {
		t.Error("road component notice must not be printed after downgrade")
	}
	logs.AssertLevel(t, slog.LevelWarn, 1)
}

func TestResolve_MalformedSwitch(t *testing.T) {
	for _, sw := range Switches {
		t.Run(string(sw), func(t *testing.T) {
			s := testutil.BaseSections().Set(Section, string(sw), "MAYBE")
			_, err := (&Resolver{}).Resolve(s.Store(), true)
			if !sederr.HasCode(err, sederr.CodeMissingOrMalformed) {
				t.Fatalf("error = %v, want %s", err, sederr.CodeMissingOrMalformed)
			}
			if v, _ := sederr.Detail(err, "key"); v != string(sw) {
				t.Errorf("error key = %v, want %s", v, sw)
			}
		})
	}
}

func TestResolve_MissingSwitch(t *testing.T) {
	s := testutil.BaseSections().Delete(Section, string(ChannelRouting))
	_, err := (&Resolver{}).Resolve(s.Store(), true)
	if !sederr.HasCode(err, sederr.CodeMissingOrMalformed) {
		t.Fatalf("error = %v, want %s", err, sederr.CodeMissingOrMalformed)
	}
}
