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
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/goibm/InputParameters"
	"github.com/notargets/goibm/geometry2D"
	"github.com/notargets/goibm/solvers"
	"github.com/notargets/goibm/writefiles"
)

type RunOptions struct {
	ICFile    string
	OutputDir string
	Graph     bool
	PlotSteps int
	Delay     time.Duration
	Perf      bool
}

// RunCmd represents the run command
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation described by a YAML input file",
	Long: `
Runs the fractional step solver selected by SolverType in the input file and writes the grid,
iteration counts, body forces and solution snapshots to the output directory.

goibm run -I cavity.yaml -o cavity`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var ro *RunOptions
		if ro, err = runOptions(cmd); err != nil {
			return
		}
		var stop func()
		if stop, err = startProfile(); err != nil {
			return
		}
		defer stop()
		return Run(ro)
	},
}

// runOptions gathers the flags, plotSteps may also come from the config file
func runOptions(cmd *cobra.Command) (ro *RunOptions, err error) {
	ro = &RunOptions{}
	if ro.ICFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
		return
	}
	if len(ro.ICFile) == 0 {
		fmt.Printf("Example File:%s\n", exampleFile)
		err = fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile)")
		return
	}
	ro.OutputDir, _ = cmd.Flags().GetString("outputDir")
	ro.Graph, _ = cmd.Flags().GetBool("graph")
	ro.PlotSteps = viper.GetInt("plotSteps")
	dr, _ := cmd.Flags().GetInt("delay")
	ro.Delay = time.Duration(dr) * time.Millisecond
	ro.Perf, _ = cmd.Flags().GetBool("perf")
	return
}

var exampleFile = `
########################################
Title: "Lid driven cavity, Re 100"
Nu: 0.01
Dt: 0.01
NSteps: 1000
NSave: 500
Domain:
  X:
    - {Start: 0, End: 1, Cells: 32}
  Y:
    - {Start: 0, End: 1, Cells: 32}
BCs:
  yPlus:
    u: {Type: DIRICHLET, Value: 1}
########################################
`

func init() {
	rootCmd.AddCommand(RunCmd)
	RunCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters")
	RunCmd.Flags().StringP("outputDir", "o", "", "directory for the solution output, defaults to the input file name")
	RunCmd.Flags().BoolP("graph", "g", false, "display centreline velocities while computing the solution")
	RunCmd.Flags().IntP("plotSteps", "s", 10, "number of steps before plotting each frame")
	RunCmd.Flags().IntP("delay", "d", 0, "milliseconds of delay for plotting")
	RunCmd.Flags().Bool("perf", false, "count CPU instructions and cycles of the time loop (Linux)")
	_ = viper.BindPFlag("plotSteps", RunCmd.Flags().Lookup("plotSteps"))
}

func Run(ro *RunOptions) (err error) {
	var ip *InputParameters.Parameters
	if ip, err = InputParameters.ReadFile(ro.ICFile); err != nil {
		return
	}
	ip.Print()
	var dom *geometry2D.Domain
	if dom, err = geometry2D.NewDomain(ip.Domain); err != nil {
		return
	}
	if len(ro.OutputDir) == 0 {
		ro.OutputDir = strings.TrimSuffix(filepath.Base(ro.ICFile), filepath.Ext(ro.ICFile))
	}
	var w *writefiles.Writer
	if w, err = writefiles.NewWriter(ro.OutputDir); err != nil {
		return
	}
	s, err := solvers.CreateSolver(ip, dom, w)
	if err != nil {
		_ = w.Close()
		return
	}
	defer func() {
		if shutErr := s.ShutDown(); err == nil {
			err = shutErr
		}
	}()
	if err = s.Initialise(); err != nil {
		return
	}
	s.PrintInitialization()

	var (
		start     = time.Now()
		steps     int
		residuals []float64
	)
	timeLoop := func() (err error) {
		for !s.Finished() {
			if err = s.StepTime(); err != nil {
				return
			}
			if err = s.WriteData(); err != nil {
				return
			}
			steps++
			residuals = append(residuals, s.State.Residual)
			s.PrintUpdate()
			if ro.Graph && ro.PlotSteps > 0 && steps%ro.PlotSteps == 0 {
				s.PlotCentreline(-1, 1.5, ro.Delay)
			}
		}
		return
	}
	if ro.Perf {
		err = countInstructions(timeLoop)
	} else {
		err = timeLoop()
	}
	if err != nil {
		return
	}
	s.PrintFinal(time.Since(start), steps)
	fmt.Println(ConvergencePlot(residuals))
	return
}

// ConvergencePlot renders the step residual history on a log10 scale
func ConvergencePlot(residuals []float64) string {
	if len(residuals) == 0 {
		return ""
	}
	series := make([]float64, 0, len(residuals))
	for _, r := range residuals {
		if r > 0 {
			series = append(series, math.Log10(r))
		}
	}
	if len(series) == 0 {
		return "Residual is zero at every step"
	}
	return asciigraph.Plot(series,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("log10 |q(n+1) - q(n)|"))
}
