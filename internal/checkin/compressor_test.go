package checkin

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZstdCompression_StreamRoundtrip(t *testing.T) {
	c, err := NewZstdCompressor()
	require.NoError(t, err)
	defer c.Close()

	original := "2024-01-15T10:30:00.000000Z\t1.2.3\t10.0.0.1\tcurl\ten-US\n"
	var buf bytes.Buffer
	require.NoError(t, c.CompressStream(&buf, strings.NewReader(original)))

	decompressed, err := c.Decompress(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, original, string(decompressed))
}

func TestZstdCompression_ReusedEncoder(t *testing.T) {
	c, err := NewZstdCompressor()
	require.NoError(t, err)
	defer c.Close()

	for _, s := range []string{"first", "second", "third"} {
		var buf bytes.Buffer
		require.NoError(t, c.CompressStream(&buf, strings.NewReader(s)))
		out, err := c.Decompress(buf.Bytes())
		require.NoError(t, err)
		assert.Equal(t, s, string(out))
	}
}

func TestZstdCompression_LargeData(t *testing.T) {
	c, err := NewZstdCompressor()
	require.NoError(t, err)
	defer c.Close()

	original := bytes.Repeat([]byte("1.2.3\t10.0.0.1\tLinux\n"), 50_000)
	var buf bytes.Buffer
	require.NoError(t, c.CompressStream(&buf, bytes.NewReader(original)))
	assert.Less(t, buf.Len(), len(original)/2)
}

func TestZstdCompression_DecompressInvalidData(t *testing.T) {
	c, err := NewZstdCompressor()
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Decompress([]byte("not valid zstd data"))
	assert.Error(t, err)
}
