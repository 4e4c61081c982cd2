package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/goibm/InputParameters"
)

func TestExampleFile(t *testing.T) {
	ip := InputParameters.NewParameters()
	require.NoError(t, ip.Parse([]byte(exampleFile)))
	require.NoError(t, ip.Validate())
	assert.Equal(t, 32, ip.Domain.X[0].Cells)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "cavity.yaml")
	require.NoError(t, os.WriteFile(input, []byte(`
Title: small cavity
Nu: 0.1
Dt: 0.01
NSteps: 3
NSave: 3
Domain:
  X:
    - {Start: 0, End: 1, Cells: 8}
  Y:
    - {Start: 0, End: 1, Cells: 8}
BCs:
  yPlus:
    u: {Type: DIRICHLET, Value: 1}
`), 0644))
	out := filepath.Join(dir, "out")
	require.NoError(t, Run(&RunOptions{ICFile: input, OutputDir: out}))
	for _, name := range []string{"grid", "iterations", "forces", filepath.Join("q", "0000003")} {
		_, err := os.Stat(filepath.Join(out, name))
		assert.NoError(t, err, name)
	}
	assert.Error(t, Run(&RunOptions{ICFile: filepath.Join(dir, "missing.yaml"), OutputDir: out}))
}

func TestConvergencePlot(t *testing.T) {
	assert.Equal(t, "", ConvergencePlot(nil))
	assert.Equal(t, "Residual is zero at every step", ConvergencePlot([]float64{0, 0}))
	plot := ConvergencePlot([]float64{1, 0.1, 0.01, 0.001})
	assert.True(t, strings.Contains(plot, "log10"))
}

func TestRunOptions(t *testing.T) {
	defer func() {
		viper.Reset()
		_ = RunCmd.Flags().Set("inputConditionsFile", "")
		_ = RunCmd.Flags().Set("plotSteps", "10")
		_ = viper.BindPFlag("plotSteps", RunCmd.Flags().Lookup("plotSteps"))
	}()
	_, err := runOptions(RunCmd)
	assert.Error(t, err)

	require.NoError(t, RunCmd.Flags().Set("inputConditionsFile", "cavity.yaml"))
	require.NoError(t, RunCmd.Flags().Set("plotSteps", "4"))
	require.NoError(t, viper.BindPFlag("plotSteps", RunCmd.Flags().Lookup("plotSteps")))
	ro, err := runOptions(RunCmd)
	require.NoError(t, err)
	assert.Equal(t, "cavity.yaml", ro.ICFile)
	assert.Equal(t, 4, ro.PlotSteps)

	// A value set in viper, as from the config file, wins over the flag
	viper.Set("plotSteps", 7)
	ro, err = runOptions(RunCmd)
	require.NoError(t, err)
	assert.Equal(t, 7, ro.PlotSteps)
}
