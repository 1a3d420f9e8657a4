package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexiusacademia/gopyramid/internal/config"
	"github.com/alexiusacademia/gopyramid/internal/constants"
	"github.com/alexiusacademia/gopyramid/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default so runs do not leak state.
func resetFlags(cmds ...*cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			var def []string
			if trimmed := strings.Trim(f.DefValue, "[]"); trimmed != "" {
				def = strings.Split(trimmed, ",")
			}
			_ = sv.Replace(def)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	for _, c := range cmds {
		c.Flags().VisitAll(reset)
		c.PersistentFlags().VisitAll(reset)
		resetFlags(c.Commands()...)
	}
}

// execute runs the CLI in a clean directory and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	_, err := rootCmd.ExecuteC()
	return stdout.String(), stderr.String(), err
}

func TestRoot_Banner(t *testing.T) {
	out, _, err := execute(t)
	require.NoError(t, err)
	assert.Contains(t, out, "gopyramid v"+version.Version)
	assert.Contains(t, out, "Go Great Pyramid Ratio Explorer")
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "gopyramid v"+version.Version+"\n"))
}

func TestReduce(t *testing.T) {
	out, _, err := execute(t, "reduce", "280", "440")
	require.NoError(t, err)
	assert.Equal(t, "7/11\n", out)

	out, _, err = execute(t, "reduce", "140", "220")
	require.NoError(t, err)
	assert.Equal(t, "7/11\n", out)
}

func TestReduce_InvalidArgs(t *testing.T) {
	_, _, err := execute(t, "reduce", "seven", "11")
	assert.ErrorContains(t, err, "invalid numerator")

	_, _, err = execute(t, "reduce", "7")
	assert.Error(t, err)
}

func TestMeasure(t *testing.T) {
	out, _, err := execute(t, "measure", "--base", "440", "--height", "280")
	require.NoError(t, err)
	assert.Contains(t, out, "BASE 440, HEIGHT 280")
	assert.Contains(t, out, "base perimeter: 1760\n")
	assert.Contains(t, out, "right angle: 90\n")
	assert.Contains(t, out, "EARTH SCALE:")
}

func TestMeasure_Invalid(t *testing.T) {
	_, _, err := execute(t, "measure", "--base", "0")
	assert.ErrorContains(t, err, "must be positive")
}

func TestClosest(t *testing.T) {
	out, _, err := execute(t, "closest", "-b", "440", "-H", "280")
	require.NoError(t, err)
	assert.Contains(t, out, "BASE_LENGTH / HEIGHT * 2")
	assert.Contains(t, out, "SURFACE_AREA_INCLUDING_BASE / LATERAL_FACE_AREA * 0.25")
	assert.Contains(t, out, "WEST_EAST_CROSS_SECTION_CORNER_ANGLE / WEST_EAST_CROSS_SECTION_VERTEX_ANGLE * 4")
	assert.Contains(t, out, "Error sum:")
}

func TestClosest_Detail(t *testing.T) {
	out, _, err := execute(t, "closest", "--target", "pi", "--detail")
	require.NoError(t, err)
	assert.Contains(t, out, "PI:\n")
	assert.Contains(t, out, "dimension 1 value: 440 dimension 1 type: BASE_LENGTH\n")
	assert.Contains(t, out, "dimension 2 value: 280 dimension 2 type: HEIGHT\n")
	assert.Contains(t, out, "factor: 2\n")
}

func TestClosest_LegacyDivide(t *testing.T) {
	out, _, err := execute(t, "closest", "-b", "440", "-H", "280", "--target", "e", "--legacy", "--divide")
	require.NoError(t, err)
	assert.Contains(t, out, "WEST_EAST_CROSS_SECTION_CORNER_ANGLE / NINETY_DEGREES_MINUS_SLANT_ANGLE / 0.5")
}

func TestClosest_TargetAndDivide(t *testing.T) {
	out, _, err := execute(t, "closest", "--target", "pi", "--divide")
	require.NoError(t, err)
	assert.Contains(t, out, "BASE_LENGTH / HEIGHT / 0.5")
	assert.NotContains(t, out, "phi")
}

func TestClosest_UnknownTarget(t *testing.T) {
	_, _, err := execute(t, "closest", "--target", "tau")
	assert.ErrorIs(t, err, constants.ErrUnknownTarget)
}

func TestSweep_SmallGrid(t *testing.T) {
	out, _, err := execute(t, "sweep",
		"--max-base", "40", "--max-height", "40",
		"--top", "3", "--workers", "2", "--progress=false")
	require.NoError(t, err)

	assert.Contains(t, out, "PYRAMID RATIO SWEEP")
	assert.Contains(t, out, "Base length 33, height 13")
	assert.Contains(t, out, "28x11")
	assert.Contains(t, out, "22x14")
	assert.NotContains(t, out, "18x10", "ranking is capped by --top")
	assert.Regexp(t, `Evaluated:\s+685`, out)
	assert.Regexp(t, `Duplicate ratios:\s+276`, out)
	assert.Regexp(t, `More accurate:\s+2\.5\s`, out)
}

func TestSweep_ConfigFileAndOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gopyramid.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
sweep:
  max_base_length: 40
  max_height: 40
  top: 2
`), 0o644))

	out, _, err := execute(t, "sweep", "--config", path, "--max-height", "20", "--progress=false")
	require.NoError(t, err)
	assert.Regexp(t, `Base length:\s+10 \.\. 40`, out)
	assert.Regexp(t, `Height:\s+10 \.\. 20`, out)
}

func TestSweep_InvalidBounds(t *testing.T) {
	_, _, err := execute(t, "sweep", "--min-base", "50", "--max-base", "40", "--progress=false")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestSweep_ChartAndExport(t *testing.T) {
	file := filepath.Join(t.TempDir(), "out", "sweep.png")

	out, stderr, err := execute(t, "sweep",
		"--max-base", "20", "--max-height", "20", "--workers", "1",
		"--chart", "-o", file)
	require.NoError(t, err)

	assert.Contains(t, out, "ERROR CHART:")
	assert.Contains(t, out, "Plot exported to: "+file)
	assert.Contains(t, stderr, "Sweeping")

	info, err := os.Stat(file)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestSweep_ExportFailureLogged(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, stderr, err := execute(t, "sweep",
		"--max-base", "15", "--max-height", "15", "--progress=false",
		"-o", filepath.Join(blocker, "sweep.png"))
	assert.ErrorContains(t, err, "exporting plot")
	assert.Contains(t, stderr, "Plot export failed")
}

func TestSweep_JSONLogs(t *testing.T) {
	_, stderr, err := execute(t, "sweep",
		"--max-base", "15", "--max-height", "15", "--progress=false",
		"--log-level", "info", "--log-format", "json")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"msg":"Sweep finished"`)
	assert.Contains(t, stderr, `"logger":"sweep"`)
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir for older Go).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
}
