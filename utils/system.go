package utils

import (
	"fmt"
	"math"
	"runtime"
)

// Verbose enables the progress lines printed by Logf.
var Verbose = false

func Logf(format string, args ...any) {
	if Verbose {
		fmt.Printf(format, args...)
	}
}

func Warnf(format string, args ...any) {
	fmt.Printf("warning: "+format, args...)
}

func GetMemUsage() string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	// For info on each, see: https://golang.org/pkg/runtime/#MemStats
	bToMb := func(b uint64) uint64 {
		return b / 1024 / 1024
	}
	return fmt.Sprintf("Alloc = %v MiB TotalAlloc = %v MiB Sys = %v MiB NumGC = %v",
		bToMb(m.Alloc), bToMb(m.TotalAlloc), bToMb(m.Sys), m.NumGC)
}

// LogMemUsage reports heap usage after a named stage when verbose.
func LogMemUsage(stage string) {
	if Verbose {
		fmt.Printf("%-40s %s\n", stage+":", GetMemUsage())
	}
}

func IsNan(A any) bool {
	switch v := A.(type) {
	case float64:
		return math.IsNaN(float64(v))
	case float32:
		return math.IsNaN(float64(v))
	case []float64:
		for _, f := range v {
			if math.IsNaN(f) {
				return true
			}
		}
	case []float32:
		for _, f := range v {
			if math.IsNaN(float64(f)) {
				return true
			}
		}
	}
	return false
}
