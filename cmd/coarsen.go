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
	"time"

	"github.com/spf13/cobra"

	"github.com/notargets/gobone/InputParameters"
	"github.com/notargets/gobone/coarsen"
	"github.com/notargets/gobone/model"
	"github.com/notargets/gobone/readfiles"
	"github.com/notargets/gobone/verify"
)

type CoarsenRun struct {
	ModelFile  string
	OutputFile string
	ICFile     string
	Perf       bool
}

// CoarsenCmd represents the coarsen command
var CoarsenCmd = &cobra.Command{
	Use:   "coarsen",
	Short: "Coarsen a voxel model by a factor of two along each axis",
	Long: `
Merges each 2x2x2 block of voxels in a finite element model into one voxel,
homogenizing materials and remapping constraints and sets onto the coarse mesh.

gobone coarsen -M model.yaml -O coarse.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		cr := &CoarsenRun{}
		cr.ModelFile, _ = cmd.Flags().GetString("modelFile")
		cr.OutputFile, _ = cmd.Flags().GetString("outputFile")
		cr.ICFile, _ = cmd.Flags().GetString("inputParametersFile")
		cr.Perf, _ = cmd.Flags().GetBool("perf")
		ip := processCoarsenInput(cr)
		RunCoarsen(cr, ip)
	},
}

func processCoarsenInput(cr *CoarsenRun) (ip *InputParameters.CoarsenParameters) {
	var (
		err      error
		willExit bool
	)
	willExit = requireFlag(cr.ModelFile, "a model file (-M, --modelFile) in YAML model format")
	willExit = requireFlag(cr.OutputFile, "an output file (-O, --outputFile)") || willExit
	if willExit {
		os.Exit(1)
	}
	ip = &InputParameters.CoarsenParameters{}
	if len(cr.ICFile) != 0 {
		var data []byte
		if data, err = os.ReadFile(cr.ICFile); err != nil {
			panic(err)
		}
		if err = ip.Parse(data); err != nil {
			exitOnError(err)
		}
		ip.Print()
	}
	return
}

func init() {
	rootCmd.AddCommand(CoarsenCmd)
	CoarsenCmd.Flags().StringP("modelFile", "M", "", "model file to coarsen, YAML model format")
	CoarsenCmd.Flags().StringP("outputFile", "O", "", "file for the coarsened model")
	CoarsenCmd.Flags().StringP("inputParametersFile", "I", "", "YAML file for input parameters like:\n\t- MaterialName")
	CoarsenCmd.Flags().Bool("perf", false, "count CPU instructions used by the coarsening pass")
}

func RunCoarsen(cr *CoarsenRun, ip *InputParameters.CoarsenParameters) {
	var (
		err           error
		input, coarse *model.Model
		opts          []coarsen.Option
	)
	input, err = readfiles.ReadModel(cr.ModelFile)
	exitOnError(err)
	if len(ip.MaterialName) != 0 {
		opts = append(opts, coarsen.MaterialName(ip.MaterialName))
	}
	run := func() (err error) {
		coarse, err = coarsen.CoarsenModel(input, opts...)
		return
	}
	start := time.Now()
	if cr.Perf {
		err = countInstructions(run)
	} else {
		err = run()
	}
	exitOnError(err)
	fmt.Printf("Coarsened %d cells to %d cells in %v\n",
		input.NumberOfCells(), coarse.NumberOfCells(), time.Since(start))
	exitOnError(verify.VerifyModel(coarse))
	exitOnError(readfiles.WriteModel(cr.OutputFile, coarse))
}
