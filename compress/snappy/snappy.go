// Package snappy implements the SNAPPY page compression codec. Parquet uses
// the raw snappy block format, not the framed stream format.
package snappy

import (
	"github.com/klauspost/compress/snappy"
	"github.com/segmentio/columnchunk/format"
)

type Codec struct {
}

func (c *Codec) String() string {
	return "SNAPPY"
}

func (c *Codec) CompressionCodec() format.CompressionCodec {
	return format.Snappy
}

func (c *Codec) Encode(dst, src []byte) ([]byte, error) {
	return snappy.Encode(dst, src), nil
}

func (c *Codec) Decode(dst, src []byte) ([]byte, error) {
	return snappy.Decode(dst, src)
}
