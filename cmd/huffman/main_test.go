package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"

	"github.com/consensys/entropy/internal/jobs"
	"github.com/consensys/entropy/logger"
)

func TestApp(t *testing.T) {
	logger.Disable()
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	input := filepath.Join(dir, "test1.txt")
	report := filepath.Join(dir, "run.cbor")
	require.NoError(t, os.WriteFile(input, []byte("so much depends upon a red wheel barrow"), 0o644))

	require.NoError(t, newApp().Run([]string{"huffman", "--out", outDir, "--report", report, input}))

	decompressed, err := os.ReadFile(filepath.Join(outDir, "test1.txt.out"))
	require.NoError(t, err)
	require.Equal(t, "so much depends upon a red wheel barrow", string(decompressed))

	d, err := os.ReadFile(report)
	require.NoError(t, err)
	var results []jobs.Result
	require.NoError(t, cbor.Unmarshal(d, &results))
	require.Len(t, results, 1)
	require.True(t, results[0].Verified)
	require.Equal(t, input, results[0].Input)
}

func TestAppRejectsBadAlphabet(t *testing.T) {
	logger.Disable()
	input := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(input, []byte("abc"), 0o644))
	require.Error(t, newApp().Run([]string{"huffman", "--alphabet", "nibbles", input}))
}

func TestAppNoInput(t *testing.T) {
	require.Error(t, newApp().Run([]string{"huffman"}))
}
