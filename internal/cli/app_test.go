package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clilib "github.com/urfave/cli/v2"

	"go-densitometer/internal/config"
)

// newTestApp builds the app with the exit handler neutralized so exit-coded
// errors come back to the test instead of terminating the process
func newTestApp(cfg *config.Config) *clilib.App {
	app := NewApp(cfg)
	app.Writer = &bytes.Buffer{}
	app.ExitErrHandler = func(*clilib.Context, error) {}
	return app
}

func defaultTestConfig() *config.Config {
	return &config.Config{
		WindowSize:         11,
		SpeedPointStrategy: "interpolated",
		LogLevel:           "error",
	}
}

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestApp_FullRun(t *testing.T) {
	dir := t.TempDir()
	wedge := writeFixture(t, dir, "wedge.csv",
		"density\n0.1\n0.2\n0.3\n0.4\n0.5\n0.6\n0.7\n0.8\n0.9\n1.0\n1.1\n1.2\n")
	film := writeFixture(t, dir, "film.csv",
		"density\n0.12\n0.18\n0.28\n0.42\n0.60\n0.80\n1.00\n1.18\n1.32\n1.42\n1.48\n1.52\n")
	output := filepath.Join(dir, "curve.png")

	app := newTestApp(defaultTestConfig())
	var out bytes.Buffer
	app.Writer = &out

	err := app.Run([]string{
		"densitometer",
		"-ev", "6",
		"-t", "0.01",
		"-s", wedge,
		"-f", film,
		"-n", "Test Film",
		"-d", "0.1",
		"--output", output,
	})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "ISO Speed:")
	assert.Contains(t, out.String(), "Plot generated for Test Film with EV: 6 and exposure time: 0.01s")

	info, err := os.Stat(output)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestApp_MissingRequiredFlags(t *testing.T) {
	app := newTestApp(defaultTestConfig())

	err := app.Run([]string{"densitometer", "-ev", "6"})
	assert.Error(t, err)
}

func TestApp_UnknownSpeedPointStrategy(t *testing.T) {
	dir := t.TempDir()
	wedge := writeFixture(t, dir, "wedge.csv", "density\n0.1\n0.2\n")
	film := writeFixture(t, dir, "film.csv", "density\n0.2\n0.4\n")

	app := newTestApp(defaultTestConfig())

	err := app.Run([]string{
		"densitometer",
		"-ev", "6",
		"-t", "0.01",
		"-s", wedge,
		"-f", film,
		"-n", "Test Film",
		"-d", "0.1",
		"--speed-point", "closest",
		"--output", filepath.Join(dir, "curve.png"),
	})
	assert.Error(t, err)
}
