package compress_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/segmentio/columnchunk/compress"
	"github.com/segmentio/columnchunk/compress/brotli"
	"github.com/segmentio/columnchunk/compress/gzip"
	"github.com/segmentio/columnchunk/compress/lz4"
	"github.com/segmentio/columnchunk/compress/snappy"
	"github.com/segmentio/columnchunk/compress/uncompressed"
	"github.com/segmentio/columnchunk/compress/zstd"
	"github.com/segmentio/columnchunk/format"
)

var codecs = [...]struct {
	scenario string
	codec    compress.Codec
	format   format.CompressionCodec
}{
	{scenario: "uncompressed", codec: new(uncompressed.Codec), format: format.Uncompressed},
	{scenario: "snappy", codec: new(snappy.Codec), format: format.Snappy},
	{scenario: "gzip", codec: new(gzip.Codec), format: format.Gzip},
	{scenario: "brotli", codec: new(brotli.Codec), format: format.Brotli},
	{scenario: "zstd", codec: new(zstd.Codec), format: format.Zstd},
	{scenario: "lz4", codec: new(lz4.Codec), format: format.Lz4},
}

func TestCompressionCodec(t *testing.T) {
	prng := rand.New(rand.NewSource(0))
	input := make([]byte, 64*1024)
	for i := range input {
		// Repetitive but not constant, so the codecs have something to chew
		// on.
		input[i] = byte(prng.Intn(16))
	}

	for _, test := range codecs {
		t.Run(test.scenario, func(t *testing.T) {
			if test.codec.CompressionCodec() != test.format {
				t.Errorf("wrong compression codec code: got %s, want %s", test.codec.CompressionCodec(), test.format)
			}

			var compressed, decompressed []byte
			var err error

			// Run twice to exercise the pooled encoder/decoder reuse.
			for i := 0; i < 2; i++ {
				compressed, err = test.codec.Encode(compressed, input)
				if err != nil {
					t.Fatal(err)
				}
				decompressed, err = test.codec.Decode(decompressed, compressed)
				if err != nil {
					t.Fatal(err)
				}
				if !bytes.Equal(decompressed, input) {
					t.Fatalf("decompressed data mismatch on round %d", i)
				}
			}
		})
	}
}

func TestCompressionCodecEmptyInput(t *testing.T) {
	for _, test := range codecs {
		t.Run(test.scenario, func(t *testing.T) {
			compressed, err := test.codec.Encode(nil, nil)
			if err != nil {
				t.Fatal(err)
			}
			decompressed, err := test.codec.Decode(nil, compressed)
			if err != nil {
				t.Fatal(err)
			}
			if len(decompressed) != 0 {
				t.Fatalf("decompressing an empty input produced %d bytes", len(decompressed))
			}
		})
	}
}
