/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/notargets/gobone/InputParameters"
	"github.com/notargets/gobone/connectivity"
	"github.com/notargets/gobone/readfiles"
)

type ConnectivityRun struct {
	ImageFile  string
	OutputFile string
	ICFile     string
}

// ConnectivityCmd represents the connectivity command
var ConnectivityCmd = &cobra.Command{
	Use:   "connectivity",
	Short: "Extract connected regions from a voxel image",
	Long: `
Labels the face connected regions of nonzero voxels in an image and keeps the
regions selected by the extraction mode, zeroing every other voxel.

gobone connectivity -F image.yaml -O filtered.yaml -I params.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		cr := &ConnectivityRun{}
		cr.ImageFile, _ = cmd.Flags().GetString("imageFile")
		cr.OutputFile, _ = cmd.Flags().GetString("outputFile")
		cr.ICFile, _ = cmd.Flags().GetString("inputParametersFile")
		ip := processConnectivityInput(cr)
		RunConnectivity(cr, ip)
	},
}

func processConnectivityInput(cr *ConnectivityRun) (ip *InputParameters.ConnectivityParameters) {
	var (
		err      error
		willExit bool
	)
	willExit = requireFlag(cr.ImageFile, "an image file (-F, --imageFile) in YAML image format")
	willExit = requireFlag(cr.OutputFile, "an output file (-O, --outputFile)") || willExit
	if requireFlag(cr.ICFile, "an input parameters file (-I, --inputParametersFile)") {
		exampleFile := `
########################################
Mode: seeded # largest, all, specified, seeded, size or closest
RegionIDs: [1, 2]     # specified
SeedIDs: [0, 1200]    # seeded
MinimumRegionSize: 50 # size
ClosestPoint: [1.5, 2.5, 0.5] # closest
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		willExit = true
	}
	if willExit {
		os.Exit(1)
	}
	var data []byte
	if data, err = os.ReadFile(cr.ICFile); err != nil {
		panic(err)
	}
	ip = &InputParameters.ConnectivityParameters{}
	if err = ip.Parse(data); err != nil {
		exitOnError(err)
	}
	ip.Print()
	return
}

func init() {
	rootCmd.AddCommand(ConnectivityCmd)
	ConnectivityCmd.Flags().StringP("imageFile", "F", "", "image file to filter, YAML image format")
	ConnectivityCmd.Flags().StringP("outputFile", "O", "", "file for the filtered image")
	ConnectivityCmd.Flags().StringP("inputParametersFile", "I", "", "YAML file for input parameters like:\n\t- Mode\n\t- SeedIDs")
}

func RunConnectivity(cr *ConnectivityRun, ip *InputParameters.ConnectivityParameters) {
	var (
		err error
		f   *connectivity.Filter
		fr  *connectivity.FilterResult
	)
	f, err = ip.Filter()
	exitOnError(err)
	in, err := readfiles.ReadImage(cr.ImageFile)
	exitOnError(err)
	fr, err = f.Execute(in)
	exitOnError(err)
	fmt.Printf("Extracted %d regions %v\n", fr.NumberOfExtractedRegions, fr.RegionIDs)
	exitOnError(readfiles.WriteImage(cr.OutputFile, fr.Grid))
}
