package columnchunk

import "github.com/segmentio/columnchunk/format"

// DataPage is an assembled v1 data page handed to the page sink. Data holds
// the page payload, compressed when the sink has a compressor.
//
// NumValues counts level entries, not non-null values.
type DataPage struct {
	Data                    []byte
	NumValues               int32
	Encoding                format.Encoding
	DefinitionLevelEncoding format.Encoding
	RepetitionLevelEncoding format.Encoding
	UncompressedSize        int64
	Statistics              format.Statistics
	HasStatistics           bool
}

// DictionaryPage is the plain-encoded list of distinct values referenced by
// index from the data pages that follow it.
type DictionaryPage struct {
	Data      []byte
	NumValues int32
	Encoding  format.Encoding
}

// PageWriter consumes the pages assembled by a column writer. Pages arrive
// in emission order: the dictionary page first when present, then data pages
// in the order they were cut.
//
// The Data slice of a page handed to WriteDataPage aliases a buffer the
// column writer reuses; implementations must consume it before returning.
type PageWriter interface {
	// HasCompressor returns true when the sink compresses page payloads, in
	// which case the column writer routes every data page payload through
	// Compress. Dictionary pages are handed to WriteDictionaryPage
	// uncompressed.
	HasCompressor() bool

	// Compress writes the compressed form of src to dst and returns it,
	// reallocating dst as needed.
	Compress(dst, src []byte) ([]byte, error)

	// WriteDataPage writes a data page and returns the number of bytes
	// written to the underlying stream.
	WriteDataPage(page DataPage) (int64, error)

	// WriteDictionaryPage writes the dictionary page and returns the number
	// of bytes written to the underlying stream.
	WriteDictionaryPage(page DictionaryPage) (int64, error)

	// Close is called exactly once when the column chunk closes, with flags
	// describing whether a dictionary page was written and whether the
	// writer fell back to plain encoding.
	Close(hasDictionary, fallback bool) error
}

// ChunkMetadataBuilder receives the chunk-aggregate statistics when the
// writer closes. The file-level writer owns the concrete implementation.
type ChunkMetadataBuilder interface {
	SetStatistics(EncodedStatistics)
}
