// Package format contains the parquet format structures needed to describe
// column chunk pages on the wire, declared as Go structs with thrift tags so
// they can be serialized with the compact protocol.
//
// https://github.com/apache/parquet-format/blob/master/src/main/thrift/parquet.thrift
package format

import "fmt"

// Type is the physical type of values stored in a column.
type Type int32

const (
	Boolean           Type = 0
	Int32             Type = 1
	Int64             Type = 2
	Int96             Type = 3
	Float             Type = 4
	Double            Type = 5
	ByteArray         Type = 6
	FixedLenByteArray Type = 7
)

func (t Type) String() string {
	switch t {
	case Boolean:
		return "BOOLEAN"
	case Int32:
		return "INT32"
	case Int64:
		return "INT64"
	case Int96:
		return "INT96"
	case Float:
		return "FLOAT"
	case Double:
		return "DOUBLE"
	case ByteArray:
		return "BYTE_ARRAY"
	case FixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	default:
		return fmt.Sprintf("Type(%d)", int32(t))
	}
}

// Encoding identifies the encoding of levels or values within a page.
type Encoding int32

const (
	Plain Encoding = 0

	// Value 1 was a group var-int encoding which never shipped in the format.

	PlainDictionary      Encoding = 2
	RLE                  Encoding = 3
	BitPacked            Encoding = 4
	DeltaBinaryPacked    Encoding = 5
	DeltaLengthByteArray Encoding = 6
	DeltaByteArray       Encoding = 7
	RLEDictionary        Encoding = 8
	ByteStreamSplit      Encoding = 9
)

func (e Encoding) String() string {
	switch e {
	case Plain:
		return "PLAIN"
	case PlainDictionary:
		return "PLAIN_DICTIONARY"
	case RLE:
		return "RLE"
	case BitPacked:
		return "BIT_PACKED"
	case DeltaBinaryPacked:
		return "DELTA_BINARY_PACKED"
	case DeltaLengthByteArray:
		return "DELTA_LENGTH_BYTE_ARRAY"
	case DeltaByteArray:
		return "DELTA_BYTE_ARRAY"
	case RLEDictionary:
		return "RLE_DICTIONARY"
	case ByteStreamSplit:
		return "BYTE_STREAM_SPLIT"
	default:
		return fmt.Sprintf("Encoding(%d)", int32(e))
	}
}

// CompressionCodec identifies the codec used to compress page payloads.
type CompressionCodec int32

const (
	Uncompressed CompressionCodec = 0
	Snappy       CompressionCodec = 1
	Gzip         CompressionCodec = 2
	LZO          CompressionCodec = 3
	Brotli       CompressionCodec = 4
	Lz4          CompressionCodec = 5
	Zstd         CompressionCodec = 6
	Lz4Raw       CompressionCodec = 7
)

func (c CompressionCodec) String() string {
	switch c {
	case Uncompressed:
		return "UNCOMPRESSED"
	case Snappy:
		return "SNAPPY"
	case Gzip:
		return "GZIP"
	case LZO:
		return "LZO"
	case Brotli:
		return "BROTLI"
	case Lz4:
		return "LZ4"
	case Zstd:
		return "ZSTD"
	case Lz4Raw:
		return "LZ4_RAW"
	default:
		return fmt.Sprintf("CompressionCodec(%d)", int32(c))
	}
}

// PageType identifies the kind of a page within a column chunk.
type PageType int32

const (
	DataPage       PageType = 0
	IndexPage      PageType = 1
	DictionaryPage PageType = 2
	DataPageV2     PageType = 3
)

func (p PageType) String() string {
	switch p {
	case DataPage:
		return "DATA_PAGE"
	case IndexPage:
		return "INDEX_PAGE"
	case DictionaryPage:
		return "DICTIONARY_PAGE"
	case DataPageV2:
		return "DATA_PAGE_V2"
	default:
		return fmt.Sprintf("PageType(%d)", int32(p))
	}
}

// Statistics of a page or column chunk. Min/Max are the deprecated fields kept
// for compatibility with readers predating MinValue/MaxValue.
type Statistics struct {
	Max           []byte `thrift:"1"`
	Min           []byte `thrift:"2"`
	NullCount     int64  `thrift:"3"`
	DistinctCount int64  `thrift:"4"`
	MaxValue      []byte `thrift:"5"`
	MinValue      []byte `thrift:"6"`
}

// DataPageHeader describes a v1 data page.
type DataPageHeader struct {
	NumValues               int32      `thrift:"1,required"`
	Encoding                Encoding   `thrift:"2,required"`
	DefinitionLevelEncoding Encoding   `thrift:"3,required"`
	RepetitionLevelEncoding Encoding   `thrift:"4,required"`
	Statistics              Statistics `thrift:"5,optional"`
}

type IndexPageHeader struct{}

type DictionaryPageHeader struct {
	NumValues int32    `thrift:"1,required"`
	Encoding  Encoding `thrift:"2,required"`
	IsSorted  bool     `thrift:"3,optional"`
}

// DataPageHeaderV2 is declared for format completeness; the chunk writer only
// produces v1 data pages.
type DataPageHeaderV2 struct {
	NumValues                  int32      `thrift:"1,required"`
	NumNulls                   int32      `thrift:"2,required"`
	NumRows                    int32      `thrift:"3,required"`
	Encoding                   Encoding   `thrift:"4,required"`
	DefinitionLevelsByteLength int32      `thrift:"5,required"`
	RepetitionLevelsByteLength int32      `thrift:"6,required"`
	IsCompressed               *bool      `thrift:"7,optional"`
	Statistics                 Statistics `thrift:"8,optional"`
}

// PageHeader precedes every page payload in the serialized chunk.
type PageHeader struct {
	Type                 PageType              `thrift:"1,required"`
	UncompressedPageSize int32                 `thrift:"2,required"`
	CompressedPageSize   int32                 `thrift:"3,required"`
	CRC                  int32                 `thrift:"4,optional"`
	DataPageHeader       *DataPageHeader       `thrift:"5,optional"`
	IndexPageHeader      *IndexPageHeader      `thrift:"6,optional"`
	DictionaryPageHeader *DictionaryPageHeader `thrift:"7,optional"`
	DataPageHeaderV2     *DataPageHeaderV2     `thrift:"8,optional"`
}
