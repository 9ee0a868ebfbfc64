package alloc

import (
	"testing"

	"github.com/sedstack/sedinit/internal/config"
	sederr "github.com/sedstack/sedinit/internal/errors"
)

func TestMake(t *testing.T) {
	g := Guard{Max: 8}

	buf, err := Make[float64](g, "test", 8)
	if err != nil {
		t.Fatalf("Make failed: %v", err)
	}
	if len(buf) != 8 {
		t.Errorf("len = %d, want 8", len(buf))
	}
	for i, v := range buf {
		if v != 0 {
			t.Errorf("buf[%d] = %v, want 0", i, v)
		}
	}

	empty, err := Make[int](g, "test", 0)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Errorf("Make(0) = %v, %v; want non-nil empty slice", empty, err)
	}
}

func TestMake_Refused(t *testing.T) {
	g := Guard{Max: 8}
	for _, n := range []int{-1, 9} {
		_, err := Make[float64](g, "InitSurfaceSed", n)
		if !sederr.HasCode(err, sederr.CodeAllocationFailure) {
			t.Fatalf("Make(%d) error = %v, want %s", n, err, sederr.CodeAllocationFailure)
		}
		if v, _ := sederr.Detail(err, "routine"); v != "InitSurfaceSed" {
			t.Errorf("routine = %v, want InitSurfaceSed", v)
		}
	}
}

func TestGuardConstructors(t *testing.T) {
	if Default().Max != config.DefaultMaxAllocation {
		t.Errorf("Default().Max = %d", Default().Max)
	}
	cfg := config.Default()
	cfg.Limits.MaxAllocation = 3
	if FromConfig(cfg).Max != 3 {
		t.Errorf("FromConfig().Max = %d, want 3", FromConfig(cfg).Max)
	}
}
