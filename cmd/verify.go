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

	"github.com/notargets/gobone/readfiles"
	"github.com/notargets/gobone/verify"
)

// VerifyCmd represents the verify command
var VerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check a model's voxel geometry, constraints and sets",
	Run: func(cmd *cobra.Command, args []string) {
		modelFile, _ := cmd.Flags().GetString("modelFile")
		if requireFlag(modelFile, "a model file (-M, --modelFile)") {
			os.Exit(1)
		}
		fe, err := readfiles.ReadModel(modelFile)
		exitOnError(err)
		fe.Print()
		exitOnError(verify.VerifyModel(fe))
		fmt.Printf("%s: ok\n", modelFile)
	},
}

func init() {
	rootCmd.AddCommand(VerifyCmd)
	VerifyCmd.Flags().StringP("modelFile", "M", "", "model file to check, YAML model format")
}
