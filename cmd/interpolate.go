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

	"github.com/notargets/gobone/interpolate"
	"github.com/notargets/gobone/readfiles"
)

// InterpolateCmd represents the interpolate command
var InterpolateCmd = &cobra.Command{
	Use:   "interpolate",
	Short: "Interpolate a coarse model's displacements onto the fine model",
	Long: `
Trilinearly interpolates the Displacement point data of a coarsened model onto
the nodes of the fine model it was built from, and writes the fine model with
the interpolated field as its Displacement point data.

gobone interpolate -M fine.yaml -C coarse.yaml -O out.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		fineFile, _ := cmd.Flags().GetString("modelFile")
		coarseFile, _ := cmd.Flags().GetString("coarseFile")
		outputFile, _ := cmd.Flags().GetString("outputFile")
		willExit := requireFlag(fineFile, "a fine model file (-M, --modelFile)")
		willExit = requireFlag(coarseFile, "a coarse model file with displacements (-C, --coarseFile)") || willExit
		if requireFlag(outputFile, "an output file (-O, --outputFile)") || willExit {
			os.Exit(1)
		}
		fine, err := readfiles.ReadModel(fineFile)
		exitOnError(err)
		coarse, err := readfiles.ReadModel(coarseFile)
		exitOnError(err)
		u, err := interpolate.InterpolateCoarseSolution(fine.Mesh, coarse.Mesh)
		exitOnError(err)
		fine.PointData[interpolate.DisplacementName] = u
		fmt.Printf("Interpolated %d coarse nodes onto %d fine nodes\n",
			coarse.NumberOfPoints(), fine.NumberOfPoints())
		exitOnError(readfiles.WriteModel(outputFile, fine))
	},
}

func init() {
	rootCmd.AddCommand(InterpolateCmd)
	InterpolateCmd.Flags().StringP("modelFile", "M", "", "fine model file, YAML model format")
	InterpolateCmd.Flags().StringP("coarseFile", "C", "", "coarse model file carrying Displacement point data")
	InterpolateCmd.Flags().StringP("outputFile", "O", "", "file for the fine model with interpolated displacements")
}
