package pipeline

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/gdpfit/internal/config"
	"github.com/KaramelBytes/gdpfit/internal/logging"
	"github.com/KaramelBytes/gdpfit/internal/regression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(dir string) *config.Global {
	c := config.Default()
	c.ImagePath = filepath.Join(dir, "output.png")
	c.LogPath = filepath.Join(dir, "pipeline.log")
	return c
}

func run(t *testing.T, cfg *config.Global) (*Result, string, error) {
	t.Helper()
	var out bytes.Buffer
	log := logging.New(logging.Options{Path: cfg.LogPath, RequestID: cfg.RequestID})
	res, err := Run(cfg, &out, log)
	require.NoError(t, log.Close())
	return res, out.String(), err
}

func TestRunSampleDataset(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	res, out, err := run(t, cfg)
	require.NoError(t, err)

	assert.Equal(t, 8, res.Frame.Rows())
	assert.Greater(t, res.Model.Slope, 0.0)
	assert.Greater(t, res.Model.RSquared, 0.0)
	assert.Less(t, res.Model.RSquared, 1.0)
	assert.Len(t, res.Predicted, 8)
	assert.Equal(t, "req_001", res.Insight.RequestID)

	assert.Contains(t, out, "Data after numeric conversion:")
	assert.Contains(t, out, "Insight: Every $1,000 increase in GDP per capita correlates with ~0.40 more years of life expectancy.")
	assert.Contains(t, out, "R-squared: 0.884")
	assert.FileExists(t, cfg.ImagePath)

	b, err := os.ReadFile(cfg.LogPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(b), "\n"), "\n")
	require.Len(t, lines, 3)
	for _, l := range lines {
		assert.True(t, strings.HasPrefix(l, "req_001"), l)
	}
	assert.Equal(t, "req_001 INFO Slope coefficient: 0.000402", lines[1])
}

func TestRunAppendsThreeLinesPerRun(t *testing.T) {
	cfg := testConfig(t.TempDir())
	for i := 0; i < 2; i++ {
		_, _, err := run(t, cfg)
		require.NoError(t, err)
	}
	b, err := os.ReadFile(cfg.LogPath)
	require.NoError(t, err)
	assert.Equal(t, 6, strings.Count(string(b), "\n"))
}

func TestRunUnparseableDataFailsBeforeFileIO(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(data, []byte("gdpPercap,lifeExp\nabc,xyz\n,\nn/a,70\n"), 0o644))
	cfg := testConfig(dir)
	cfg.DataPath = data

	res, out, err := run(t, cfg)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, regression.ErrInsufficientData))
	assert.Contains(t, out, "Dropped 3 of 3 rows")
	assert.NoFileExists(t, cfg.ImagePath)
	assert.NoFileExists(t, cfg.LogPath)
}

func TestRunSingleDistinctXFails(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "flat.csv")
	require.NoError(t, os.WriteFile(data, []byte("gdpPercap,lifeExp\n100,60\n100,70\n"), 0o644))
	cfg := testConfig(dir)
	cfg.DataPath = data

	_, _, err := run(t, cfg)
	require.ErrorIs(t, err, regression.ErrInsufficientData)
	assert.NoFileExists(t, cfg.ImagePath)
}

func TestRunCustomColumnsAndLocale(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "eu.csv")
	body := "gdp;life\n5.000;65,5\n15.000;75\n25.000;78,25\n"
	require.NoError(t, os.WriteFile(data, []byte(body), 0o644))
	cfg := testConfig(dir)
	cfg.DataPath = data
	cfg.XColumn, cfg.YColumn = "gdp", "life"
	cfg.DecimalSeparator, cfg.ThousandsSeparator = ",", "."

	// ';' is not sniffed; the whole header is one column
	_, _, err := run(t, cfg)
	require.Error(t, err)

	require.NoError(t, os.WriteFile(data, []byte(strings.ReplaceAll(body, ";", "\t")), 0o644))
	tsv := filepath.Join(dir, "eu.tsv")
	require.NoError(t, os.Rename(data, tsv))
	cfg.DataPath = tsv
	res, _, err := run(t, cfg)
	require.NoError(t, err)
	assert.Equal(t, []float64{5000, 15000, 25000}, res.Frame.Xs())
	assert.Equal(t, []float64{65.5, 75, 78.25}, res.Frame.Ys())
}

func TestDatasetOptionsRejectsBadSeparator(t *testing.T) {
	cfg := config.Default()
	cfg.DecimalSeparator = ";"
	_, err := DatasetOptions(cfg)
	require.Error(t, err)
}
