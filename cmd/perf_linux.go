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

	perf "github.com/hodgesds/perf-utils"

	"github.com/notargets/gobone/utils"
)

// countInstructions runs f under a hardware instruction counter, falling back to a plain run.
func countInstructions(f func() error) (err error) {
	var (
		pv     *perf.ProfileValue
		ran    bool
		runErr error
	)
	counted := func() error {
		ran = true
		runErr = f()
		return nil
	}
	if pv, err = perf.CPUInstructions(counted); err != nil {
		utils.Warnf("instruction counting unavailable (%s), running without it\n", err.Error())
		if !ran {
			return f()
		}
		return runErr
	}
	if runErr != nil {
		return runErr
	}
	fmt.Printf("CPU instructions: %d (enabled %d ns, running %d ns)\n",
		pv.Value, pv.TimeEnabled, pv.TimeRunning)
	return
}
