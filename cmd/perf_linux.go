//go:build linux

package cmd

import (
	"fmt"

	perf "github.com/hodgesds/perf-utils"
)

// countInstructions runs f under the hardware instruction counter, or plainly when the counter can not be opened
func countInstructions(f func() error) (err error) {
	var (
		ran  bool
		ferr error
	)
	profileValue, err := perf.CPUInstructions(func() error {
		ran = true
		ferr = f()
		return ferr
	})
	switch {
	case ferr != nil:
		return ferr
	case !ran:
		fmt.Printf("perf counters unavailable: %v\n", err)
		return f()
	case err != nil:
		fmt.Printf("perf counters unavailable: %v\n", err)
		return nil
	}
	fmt.Printf("CPU instructions: %d\n", profileValue.Value)
	return
}
