package nlufn

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadEvent(t *testing.T) {
	got, err := readEvent(strings.NewReader("from stdin"), "-")
	require.NoError(t, err)
	assert.Equal(t, "from stdin", string(got))

	got, err = readEvent(nil, "")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(got))

	_, err = readEvent(nil, filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestInvokeCommand(t *testing.T) {
	modelDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(modelDir, "nlu.yaml"), []byte(`
intents:
  - name: greet
    examples: ["你好"]
replies:
  greet: 你好，我是homo
`), 0o644))

	eventPath := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(eventPath, []byte(`{"a": 1}`), 0o644))

	logger.SetOutput(io.Discard)
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetArgs([]string{
		"invoke",
		"--config-dir", t.TempDir(),
		"--model-path", modelDir,
		"--event", eventPath,
		"--context", "functionName=f1",
		"--reply",
	})

	require.NoError(t, rootCmd.Execute())

	res := map[string]any{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.Equal(t, float64(1), res["a"])
	assert.Equal(t, "f1", res["functionName"])

	say, ok := res["Say"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "你好", say["text"])
	assert.Equal(t, map[string]any{"name": "greet", "confidence": float64(1)}, say["intent"])
	assert.NotContains(t, res, "reply")
	assert.Equal(t, "你好，我是homo\n", errOut.String())
}
