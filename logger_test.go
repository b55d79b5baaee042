package emitter

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	output := bytes.NewBuffer(nil)
	lg, err := newLoggerWithOutput(output, "")
	require.NoError(t, err)

	lg.Infof("info %d", 2)
	lg.Warning("warning", 1)
	lg.Error("error")
	lg.Fatal("fatal")

	out := output.String()
	for _, line := range []string{
		"[info] info 2\n",
		"[warning] warning 1\n",
		"[error] error\n",
		"[fatal] fatal\n",
	} {
		require.Contains(t, out, line)
	}

	err = lg.Close()
	require.NoError(t, err)

	// discard after close
	lg.Infof("closed")
	require.NotContains(t, output.String(), "closed")
}

func TestLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log", "emitter.log")
	output := bytes.NewBuffer(nil)
	lg, err := newLoggerWithOutput(output, path)
	require.NoError(t, err)

	lg.Warning("to file")
	err = lg.Close()
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "[warning] to file\n")
	require.Contains(t, output.String(), "[warning] to file\n")
}
