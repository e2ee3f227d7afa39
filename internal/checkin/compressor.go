package checkin

import (
	"fmt"
	"io"
	"sync"
	"vcheck/internal/checkin/interfaces"

	"github.com/klauspost/compress/zstd"
)

type ZstdCompression struct {
	mu      sync.Mutex
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// CompressStream writes the zstd frame of src to dst. Calls are serialized
// because the streaming encoder is reused.
func (z *ZstdCompression) CompressStream(dst io.Writer, src io.Reader) error {
	z.mu.Lock()
	defer z.mu.Unlock()

	z.encoder.Reset(dst)
	if _, err := io.Copy(z.encoder, src); err != nil {
		_ = z.encoder.Close()
		return err
	}
	return z.encoder.Close()
}

func (z *ZstdCompression) Decompress(val []byte) ([]byte, error) {
	return z.decoder.DecodeAll(val, nil)
}

func (z *ZstdCompression) Close() {
	z.mu.Lock()
	defer z.mu.Unlock()
	_ = z.encoder.Close()
	z.decoder.Close()
}

func NewZstdCompressor() (interfaces.CompressorInterface, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &ZstdCompression{encoder: encoder, decoder: decoder}, nil
}
