package connectivity

import (
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gobone/imaging"
	"github.com/notargets/gobone/types"
	"github.com/notargets/gobone/utils"
)

type ExtractionMode uint8

const (
	LargestRegion ExtractionMode = iota
	AllRegions
	SpecifiedRegions
	SeededRegions
	RegionsOfSpecifiedSize
	ClosestPointRegion
)

var ExtractionModeNameMap = map[string]ExtractionMode{
	"largest":           LargestRegion,
	"largest_region":    LargestRegion,
	"all":               AllRegions,
	"all_regions":       AllRegions,
	"specified":         SpecifiedRegions,
	"specified_regions": SpecifiedRegions,
	"seeded":            SeededRegions,
	"seeded_regions":    SeededRegions,
	"size":              RegionsOfSpecifiedSize,
	"regions_of_size":   RegionsOfSpecifiedSize,
	"closest":           ClosestPointRegion,
	"closest_point":     ClosestPointRegion,
}

func NewExtractionMode(label string) (em ExtractionMode, err error) {
	var ok bool
	if label == "" {
		return LargestRegion, nil
	}
	if em, ok = ExtractionModeNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown extraction mode: %q", label)
	}
	return
}

func (em ExtractionMode) String() string {
	switch em {
	case LargestRegion:
		return "LargestRegion"
	case AllRegions:
		return "AllRegions"
	case SpecifiedRegions:
		return "SpecifiedRegions"
	case SeededRegions:
		return "SeededRegions"
	case RegionsOfSpecifiedSize:
		return "RegionsOfSpecifiedSize"
	case ClosestPointRegion:
		return "ClosestPointRegion"
	}
	return fmt.Sprintf("ExtractionMode(%d)", uint8(em))
}

/*
Filter keeps the connected regions of an image chosen by Mode and zeroes the
rest. Kept voxels retain their original values.
*/
type Filter struct {
	Mode ExtractionMode
	// SpecifiedRegionIDs are the labels kept by SpecifiedRegions.
	SpecifiedRegionIDs []uint32
	// SeedIDs are point or cell ids, matching the image association, used by SeededRegions.
	SeedIDs []int
	// MinimumRegionSize is the smallest region kept by RegionsOfSpecifiedSize.
	MinimumRegionSize int
	ClosestPoint      r3.Vec
}

func NewFilter() *Filter {
	return &Filter{
		Mode:              LargestRegion,
		MinimumRegionSize: 1,
	}
}

type FilterResult struct {
	Grid                     *imaging.VoxelGrid
	Labels                   *Labels
	RegionIDs                []uint32
	NumberOfExtractedRegions int
}

func (f *Filter) Execute(vg *imaging.VoxelGrid) (fr *FilterResult, err error) {
	var (
		sa    imaging.ScalarArray
		assoc types.Association
		lm    *Labels
		out   imaging.ScalarArray
	)
	if sa, assoc, _, err = vg.Active(); err != nil {
		return
	}
	out = sa.Zeroed()
	fr = &FilterResult{
		Grid: &imaging.VoxelGrid{
			Dims:    vg.Dims,
			Spacing: vg.Spacing,
			Origin:  vg.Origin,
		},
	}
	if assoc == types.CellData {
		fr.Grid.CellScalars = out
	} else {
		fr.Grid.PointScalars = out
	}
	if sa.Len() == 0 {
		return
	}
	if lm, err = Map(vg); err != nil {
		fr = nil
		return
	}
	fr.Labels = lm
	if lm.NumberOfRegions == 0 {
		return
	}
	if fr.RegionIDs, err = f.selectRegions(lm); err != nil {
		fr = nil
		return
	}
	fr.NumberOfExtractedRegions = len(fr.RegionIDs)
	keep := make([]bool, int(lm.NumberOfRegions)+1)
	for _, r := range fr.RegionIDs {
		if r != 0 && r <= lm.NumberOfRegions {
			keep[r] = true
		}
	}
	for n, r := range lm.Values {
		if keep[r] {
			sa.CopyValue(out, n)
		}
	}
	utils.Logf("connectivity filter (%s): kept %d of %d regions\n",
		f.Mode, fr.NumberOfExtractedRegions, lm.NumberOfRegions)
	return
}

func (f *Filter) selectRegions(lm *Labels) (ids []uint32, err error) {
	switch f.Mode {
	case LargestRegion:
		var (
			sizes   = lm.Histogram()
			largest uint32
			size    int
		)
		for r := 1; r < len(sizes); r++ {
			if sizes[r] > size {
				size = sizes[r]
				largest = uint32(r)
			}
		}
		if largest == 0 {
			panic(fmt.Errorf("no largest region among %d regions", lm.NumberOfRegions))
		}
		ids = []uint32{largest}
	case AllRegions:
		ids = make([]uint32, lm.NumberOfRegions)
		for r := range ids {
			ids[r] = uint32(r + 1)
		}
	case SpecifiedRegions:
		ids = uniqueInOrder(f.SpecifiedRegionIDs)
	case SeededRegions:
		seeds := make([]uint32, 0, len(f.SeedIDs))
		for _, id := range f.SeedIDs {
			if id < 0 || id >= len(lm.Values) {
				err = fmt.Errorf("seed id %d outside image of %d samples", id, len(lm.Values))
				return
			}
			if r := lm.Values[id]; r != 0 {
				seeds = append(seeds, r)
			}
		}
		ids = uniqueInOrder(seeds)
	case RegionsOfSpecifiedSize:
		sizes := lm.Histogram()
		for _, r := range sizes.FindVec(utils.GreaterOrEqual, utils.Fill(len(sizes), f.MinimumRegionSize)) {
			if r != 0 {
				ids = append(ids, uint32(r))
			}
		}
	case ClosestPointRegion:
		ids = []uint32{closestRegion(lm, f.ClosestPoint)}
	default:
		err = fmt.Errorf("unsupported extraction mode %s", f.Mode)
	}
	return
}

func uniqueInOrder(ids []uint32) (r []uint32) {
	seen := mapset.NewThreadUnsafeSet[uint32]()
	r = make([]uint32, 0, len(ids))
	for _, id := range ids {
		if seen.Add(id) {
			r = append(r, id)
		}
	}
	return
}
