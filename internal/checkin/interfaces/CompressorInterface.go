package interfaces

import "io"

type CompressorInterface interface {
	CompressStream(dst io.Writer, src io.Reader) error
	Decompress(val []byte) ([]byte, error)
	Close()
}
