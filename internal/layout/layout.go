// Package layout implements the two deterministic tiling algorithms: each
// is a pure function of (work area, ordered tile list, params) to
// per-window geometry. Neither layout depends on the registry or any OS
// type; they only know about platform.Handle as an opaque tile identity.
package layout

import (
	"github.com/1broseidon/termtile/internal/geometry"
	"github.com/1broseidon/termtile/internal/platform"
)

// Kind names one of the two supported layout algorithms.
type Kind string

const (
	Dwindle     Kind = "dwindle"
	MasterStack Kind = "master-stack"
)

// Params holds the adjustable layout parameters. Gaps apply to both
// layouts; MasterCount/MasterFactor only affect MasterStack.
type Params struct {
	InnerGap     int
	OuterGap     int
	MasterCount  int
	MasterFactor float64
}

const (
	MinMasterFactor     = 0.1
	MaxMasterFactor     = 0.9
	DefaultMasterFactor = 0.5
	MasterFactorStep    = 0.05
)

// Placement pairs a tile handle with its computed geometry.
type Placement struct {
	Handle platform.Handle
	Rect   geometry.Rect
}

// Compute dispatches to the named layout. tiles is the workspace's tile
// list in order; the returned slice has one Placement per tile that has
// positive area after gaps are applied, in tiles' order.
func Compute(kind Kind, workArea geometry.Rect, tiles []platform.Handle, params Params) []Placement {
	switch kind {
	case MasterStack:
		return computeMasterStack(workArea, tiles, params)
	default:
		return computeDwindle(workArea, tiles, params)
	}
}

// ClampMasterCount clamps n to [1, total], coercing 0 (and negatives) to 1.
func ClampMasterCount(n, total int) int {
	if n < 1 {
		n = 1
	}
	if total > 0 && n > total {
		n = total
	}
	return n
}

// ClampMasterFactor clamps f to [MinMasterFactor, MaxMasterFactor].
func ClampMasterFactor(f float64) float64 {
	if f < MinMasterFactor {
		return MinMasterFactor
	}
	if f > MaxMasterFactor {
		return MaxMasterFactor
	}
	return f
}

// computeDwindle implements the recursive binary-split layout: the first
// window takes the left/top half, the rest recurse into the other half,
// alternating split direction starting horizontal.
func computeDwindle(workArea geometry.Rect, tiles []platform.Handle, params Params) []Placement {
	if len(tiles) == 0 {
		return nil
	}

	out := make([]Placement, 0, len(tiles))
	dwindleRecurse(workArea, tiles, true, params, &out)
	return out
}

func dwindleRecurse(area geometry.Rect, tiles []platform.Handle, splitHorizontal bool, params Params, out *[]Placement) {
	if len(tiles) == 0 {
		return
	}
	if len(tiles) == 1 {
		appendGapped(out, tiles[0], area, params)
		return
	}

	var first, rest geometry.Rect
	if splitHorizontal {
		first, rest = area.SplitHorizontal(0.5)
	} else {
		first, rest = area.SplitVertical(0.5)
	}

	appendGapped(out, tiles[0], first, params)
	dwindleRecurse(rest, tiles[1:], !splitHorizontal, params, out)
}

// computeMasterStack implements the master/stack layout: a master column
// at MasterFactor width holding MasterCount windows stacked vertically,
// and (if any windows remain) a stack column holding the rest, also
// stacked vertically in equal slices.
func computeMasterStack(workArea geometry.Rect, tiles []platform.Handle, params Params) []Placement {
	n := len(tiles)
	if n == 0 {
		return nil
	}

	masterCount := ClampMasterCount(params.MasterCount, n)
	factor := params.MasterFactor
	if factor == 0 {
		factor = DefaultMasterFactor
	}
	factor = ClampMasterFactor(factor)

	out := make([]Placement, 0, n)

	if n <= masterCount {
		// Everything fits in a single full-width vertical stack.
		stackVertical(workArea, tiles, params, &out)
		return out
	}

	masterArea, stackArea := workArea.SplitHorizontal(factor)
	stackVertical(masterArea, tiles[:masterCount], params, &out)
	stackVertical(stackArea, tiles[masterCount:], params, &out)
	return out
}

// stackVertical splits area into len(tiles) equal vertical slices, top to
// bottom, in tiles' order. Each slice's height is floor(area.Height/n)
// except the last, which absorbs the remainder so slice heights always sum
// back to area.Height exactly.
func stackVertical(area geometry.Rect, tiles []platform.Handle, params Params, out *[]Placement) {
	n := len(tiles)
	if n == 0 {
		return
	}
	if n == 1 {
		appendGapped(out, tiles[0], area, params)
		return
	}

	sliceHeight := area.Height / n
	y := area.Y
	for i, h := range tiles {
		height := sliceHeight
		if i == n-1 {
			height = area.Y + area.Height - y
		}
		slice := geometry.New(area.X, y, area.Width, height)
		appendGapped(out, h, slice, params)
		y += height
	}
}

func appendGapped(out *[]Placement, h platform.Handle, area geometry.Rect, params Params) {
	rect, ok := area.ApplyGaps(params.InnerGap, params.OuterGap)
	if !ok {
		return
	}
	*out = append(*out, Placement{Handle: h, Rect: rect})
}
