package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gobone/connectivity"
	"github.com/notargets/gobone/material"
	"github.com/notargets/gobone/model"
	"github.com/notargets/gobone/readfiles"
)

// Parameters for the coarsen command, obtained from the YAML input file
type CoarsenParameters struct {
	MaterialName string `yaml:"MaterialName"`
}

func (ip *CoarsenParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *CoarsenParameters) Print() {
	fmt.Printf("\"%s\"\t\t= MaterialName\n", ip.MaterialName)
}

// Parameters for the connectivity command
type ConnectivityParameters struct {
	Mode              string     `yaml:"Mode"`
	RegionIDs         []uint32   `yaml:"RegionIDs"`
	SeedIDs           []int      `yaml:"SeedIDs"`
	MinimumRegionSize int        `yaml:"MinimumRegionSize"`
	ClosestPoint      [3]float64 `yaml:"ClosestPoint"`
}

func (ip *ConnectivityParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *ConnectivityParameters) Print() {
	fmt.Printf("[%s]\t\t\t= Mode\n", ip.Mode)
	fmt.Printf("%v\t\t\t= RegionIDs\n", ip.RegionIDs)
	fmt.Printf("%v\t\t\t= SeedIDs\n", ip.SeedIDs)
	fmt.Printf("[%d]\t\t\t\t= MinimumRegionSize\n", ip.MinimumRegionSize)
	fmt.Printf("%v\t\t= ClosestPoint\n", ip.ClosestPoint)
}

// Filter builds the connectivity filter described by the parameters.
func (ip *ConnectivityParameters) Filter() (f *connectivity.Filter, err error) {
	f = connectivity.NewFilter()
	if f.Mode, err = connectivity.NewExtractionMode(ip.Mode); err != nil {
		return
	}
	f.SpecifiedRegionIDs = ip.RegionIDs
	f.SeedIDs = ip.SeedIDs
	if ip.MinimumRegionSize > 0 {
		f.MinimumRegionSize = ip.MinimumRegionSize
	}
	f.ClosestPoint = r3.Vec{X: ip.ClosestPoint[0], Y: ip.ClosestPoint[1], Z: ip.ClosestPoint[2]}
	switch f.Mode {
	case connectivity.SpecifiedRegions:
		if len(f.SpecifiedRegionIDs) == 0 {
			err = fmt.Errorf("mode %s needs RegionIDs", f.Mode)
		}
	case connectivity.SeededRegions:
		if len(f.SeedIDs) == 0 {
			err = fmt.Errorf("mode %s needs SeedIDs", f.Mode)
		}
	}
	return
}

// Parameters for the image2mesh command: the material table and solver metadata
type Image2MeshParameters struct {
	Materials  []readfiles.MaterialRecord `yaml:"Materials"`
	Parameters model.SolverParameters     `yaml:"Parameters"`
}

func (ip *Image2MeshParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *Image2MeshParameters) Print() {
	for _, mr := range ip.Materials {
		fmt.Printf("Materials[%d] = %s \"%s\"\n", mr.Index, mr.Type, mr.Name)
	}
	fmt.Printf("[%d]\t\t\t\t= MaximumIterations\n", ip.Parameters.MaximumIterations)
	fmt.Printf("%8.5g\t\t= ConvergenceTolerance\n", ip.Parameters.ConvergenceTolerance)
}

// Apply loads the material table and solver parameters into fe.
func (ip *Image2MeshParameters) Apply(fe *model.Model) (err error) {
	var m material.Material
	for _, mr := range ip.Materials {
		if m, err = readfiles.DecodeMaterial(mr); err != nil {
			return
		}
		if err = fe.Materials.Add(mr.Index, m); err != nil {
			return
		}
	}
	fe.Parameters = ip.Parameters
	return
}
