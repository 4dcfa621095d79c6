package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ssargent/dtaus/pkg/codec"
	"github.com/ssargent/dtaus/pkg/dtaus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCommand(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "dtaus_normalize_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	in := filepath.Join(tmpDir, "legacy.txt")
	raw := writeStream(t, in, logicalFile(t, "MUELLER", 2))
	raw[24] = 0x9A // DOS Ü in the header name
	require.NoError(t, os.WriteFile(in, raw, 0600))

	out := filepath.Join(tmpDir, "out", "dtaus0.txt")

	t.Run("strict input fails", func(t *testing.T) {
		_, err := run(t, tmpDir, "normalize", in, out)
		assert.Error(t, err)
	})

	t.Run("translate and rewrite", func(t *testing.T) {
		report, err := run(t, tmpDir, "normalize", in, out, "1")
		require.NoError(t, err)
		assert.Equal(t, "logical files: 1\n", report)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Len(t, data, len(raw))
		assert.Equal(t, byte(0xDC), data[24]) // Ü in ISO-8859-1

		p, err := dtaus.Parse(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, "MÜELLER", p.Header().Name)
	})

	t.Run("recompute trailers", func(t *testing.T) {
		f := logicalFile(t, "EINS", 2)
		f.Trailer = codec.NewTrailer()
		bad := filepath.Join(tmpDir, "bad.txt")
		writeStream(t, bad, f)

		fixed := filepath.Join(tmpDir, "fixed.txt")
		_, err := run(t, tmpDir, "normalize", bad, fixed, "--recompute-trailers")
		require.NoError(t, err)

		_, err = run(t, tmpDir, fixed, "--verify")
		assert.NoError(t, err)
	})

	t.Run("argument count", func(t *testing.T) {
		_, err := run(t, tmpDir, "normalize", in)
		assert.Error(t, err)
	})
}
