package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args, resetting sticky flag state
// left behind by earlier invocations.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, c := range []*pflag.FlagSet{rootCmd.Flags(), rootCmd.PersistentFlags(), runCmd.Flags()} {
		c.VisitAll(func(fl *pflag.Flag) {
			_ = fl.Value.Set(fl.DefValue)
			fl.Changed = false
		})
	}
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	cfg = nil
	cfgFile = ""
	t.Cleanup(func() { cfg = nil })
	return home
}

func TestCLI_RunSample(t *testing.T) {
	dir := isolate(t)
	img := filepath.Join(dir, "output.png")
	logPath := filepath.Join(dir, "pipeline.log")

	out, err := execute(t, "run", "--image", img, "--log-file", logPath)
	require.NoError(t, err)
	assert.Contains(t, out, "~0.40 more years")
	assert.Contains(t, out, "Analysis complete")
	assert.FileExists(t, img)

	b, err := os.ReadFile(logPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(b), "\n"), "\n")
	require.Len(t, lines, 3)
	for _, l := range lines {
		assert.True(t, strings.HasPrefix(l, "req_001 "), l)
	}
}

func TestCLI_RootRunsAnalysisWithRequestID(t *testing.T) {
	dir := isolate(t)
	logPath := filepath.Join(dir, "pipeline.log")
	_, err := execute(t, "-o", filepath.Join(dir, "fit.png"), "--log-file", logPath, "--request-id", "req_777")
	require.NoError(t, err)
	b, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(b), "req_777 INFO"))
}

func TestCLI_RunInsufficientData(t *testing.T) {
	dir := isolate(t)
	data := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(data, []byte("gdpPercap,lifeExp\nx,y\n"), 0o644))
	img := filepath.Join(dir, "output.png")
	logPath := filepath.Join(dir, "pipeline.log")

	_, err := execute(t, "run", "--data", data, "--image", img, "--log-file", logPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient data")
	assert.NoFileExists(t, img)
	assert.NoFileExists(t, logPath)
}

func TestCLI_ConfigSetAndShow(t *testing.T) {
	home := isolate(t)
	_, err := execute(t, "config", "set", "image_path", "charts/fit.png")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(home, ".gdpfit", "config.yaml"))

	out, err := execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "image_path: charts/fit.png")
	assert.Contains(t, out, "data_path: (built-in sample)")

	_, err = execute(t, "config", "set", "sample_rows", "zero")
	assert.Error(t, err)
	_, err = execute(t, "config", "set", "nope", "1")
	assert.Error(t, err)
}
