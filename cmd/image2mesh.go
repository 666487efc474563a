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
	"github.com/notargets/gobone/meshing"
	"github.com/notargets/gobone/model"
	"github.com/notargets/gobone/readfiles"
	"github.com/notargets/gobone/verify"
)

type Image2MeshRun struct {
	ImageFile  string
	OutputFile string
	ICFile     string
}

// Image2MeshCmd represents the image2mesh command
var Image2MeshCmd = &cobra.Command{
	Use:   "image2mesh",
	Short: "Convert a segmented voxel image into a finite element model",
	Long: `
Creates one voxel element for every nonzero voxel of the image, using the voxel
value as the material id, and attaches the material table from the parameters.

gobone image2mesh -F image.yaml -O model.yaml -I params.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		ir := &Image2MeshRun{}
		ir.ImageFile, _ = cmd.Flags().GetString("imageFile")
		ir.OutputFile, _ = cmd.Flags().GetString("outputFile")
		ir.ICFile, _ = cmd.Flags().GetString("inputParametersFile")
		ip := processImage2MeshInput(ir)
		RunImage2Mesh(ir, ip)
	},
}

func processImage2MeshInput(ir *Image2MeshRun) (ip *InputParameters.Image2MeshParameters) {
	var (
		err      error
		willExit bool
	)
	willExit = requireFlag(ir.ImageFile, "an image file (-F, --imageFile) in YAML image format")
	willExit = requireFlag(ir.OutputFile, "an output file (-O, --outputFile)") || willExit
	if requireFlag(ir.ICFile, "an input parameters file (-I, --inputParametersFile)") {
		exampleFile := `
########################################
Materials:
  - Index: 127
    Type: LinearIsotropic
    Name: Bone
    E: [6829]
    Nu: [0.3]
Parameters:
  MaximumIterations: 20000
  ConvergenceTolerance: 1e-6
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		willExit = true
	}
	if willExit {
		os.Exit(1)
	}
	var data []byte
	if data, err = os.ReadFile(ir.ICFile); err != nil {
		panic(err)
	}
	ip = &InputParameters.Image2MeshParameters{}
	if err = ip.Parse(data); err != nil {
		exitOnError(err)
	}
	ip.Print()
	return
}

func init() {
	rootCmd.AddCommand(Image2MeshCmd)
	Image2MeshCmd.Flags().StringP("imageFile", "F", "", "segmented image file, YAML image format")
	Image2MeshCmd.Flags().StringP("outputFile", "O", "", "file for the model")
	Image2MeshCmd.Flags().StringP("inputParametersFile", "I", "", "YAML file for input parameters like:\n\t- Materials\n\t- Parameters")
}

func RunImage2Mesh(ir *Image2MeshRun, ip *InputParameters.Image2MeshParameters) {
	in, err := readfiles.ReadImage(ir.ImageFile)
	exitOnError(err)
	m, err := meshing.ImageToMesh(in)
	exitOnError(err)
	fe := model.NewModel(m)
	exitOnError(ip.Apply(fe))
	exitOnError(verify.VerifyModel(fe))
	fe.Print()
	exitOnError(readfiles.WriteModel(ir.OutputFile, fe))
}
