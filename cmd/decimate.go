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

	"github.com/notargets/gobone/imaging"
	"github.com/notargets/gobone/readfiles"
)

// DecimateCmd represents the decimate command
var DecimateCmd = &cobra.Command{
	Use:   "decimate",
	Short: "Halve the resolution of a voxel image",
	Long: `
Reduces a voxel image by a factor of two along each axis, keeping the maximum
value of each 2x2x2 block.

gobone decimate -F image.yaml -O decimated.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err     error
			in, out *imaging.VoxelGrid
		)
		imageFile, _ := cmd.Flags().GetString("imageFile")
		outputFile, _ := cmd.Flags().GetString("outputFile")
		willExit := requireFlag(imageFile, "an image file (-F, --imageFile) in YAML image format")
		if requireFlag(outputFile, "an output file (-O, --outputFile)") || willExit {
			os.Exit(1)
		}
		in, err = readfiles.ReadImage(imageFile)
		exitOnError(err)
		out, err = imaging.Decimate(in)
		exitOnError(err)
		fmt.Printf("Decimated %v points to %v points\n", in.Dims, out.Dims)
		exitOnError(readfiles.WriteImage(outputFile, out))
	},
}

func init() {
	rootCmd.AddCommand(DecimateCmd)
	DecimateCmd.Flags().StringP("imageFile", "F", "", "image file to decimate, YAML image format")
	DecimateCmd.Flags().StringP("outputFile", "O", "", "file for the decimated image")
}
