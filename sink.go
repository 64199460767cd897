package columnchunk

import (
	"bytes"
	"hash/crc32"
	"io"

	"github.com/segmentio/columnchunk/compress"
	"github.com/segmentio/columnchunk/format"
	"github.com/segmentio/encoding/thrift"
)

// SerializedPageWriter is a PageWriter which frames every page as a compact
// thrift PageHeader followed by the page payload, written to an underlying
// io.Writer. It carries the compression codec the column writer compresses
// page payloads with.
//
// The zero codec (nil or uncompressed) disables compression; the column
// writer then hands payloads through untouched.
type SerializedPageWriter struct {
	writer io.Writer
	codec  compress.Codec
	offset int64

	numValues    int64
	numDataPages int
	numPages     int

	dictionaryPageOffset int64
	dataPageOffset       int64

	header struct {
		buffer   bytes.Buffer
		protocol thrift.CompactProtocol
		encoder  thrift.Encoder
	}
}

func NewSerializedPageWriter(w io.Writer, codec compress.Codec) *SerializedPageWriter {
	p := &SerializedPageWriter{
		writer: w,
		codec:  codec,
	}
	p.header.encoder.Reset(p.header.protocol.NewWriter(&p.header.buffer))
	return p
}

func (p *SerializedPageWriter) HasCompressor() bool {
	return p.codec != nil && p.codec.CompressionCodec() != format.Uncompressed
}

func (p *SerializedPageWriter) Compress(dst, src []byte) ([]byte, error) {
	return p.codec.Encode(dst, src)
}

func (p *SerializedPageWriter) WriteDataPage(page DataPage) (int64, error) {
	header := &format.PageHeader{
		Type:                 format.DataPage,
		UncompressedPageSize: int32(page.UncompressedSize),
		CompressedPageSize:   int32(len(page.Data)),
		CRC:                  int32(crc32.ChecksumIEEE(page.Data)),
		DataPageHeader: &format.DataPageHeader{
			NumValues:               page.NumValues,
			Encoding:                page.Encoding,
			DefinitionLevelEncoding: page.DefinitionLevelEncoding,
			RepetitionLevelEncoding: page.RepetitionLevelEncoding,
		},
	}
	if page.HasStatistics {
		header.DataPageHeader.Statistics = page.Statistics
	}

	if p.numDataPages == 0 {
		p.dataPageOffset = p.offset
	}
	n, err := p.writePage(header, page.Data)
	if err != nil {
		return n, err
	}
	p.numValues += int64(page.NumValues)
	p.numDataPages++
	return n, nil
}

func (p *SerializedPageWriter) WriteDictionaryPage(page DictionaryPage) (int64, error) {
	data := page.Data
	uncompressedSize := len(data)
	if p.HasCompressor() {
		compressed, err := p.codec.Encode(nil, data)
		if err != nil {
			return 0, err
		}
		data = compressed
	}

	header := &format.PageHeader{
		Type:                 format.DictionaryPage,
		UncompressedPageSize: int32(uncompressedSize),
		CompressedPageSize:   int32(len(data)),
		CRC:                  int32(crc32.ChecksumIEEE(data)),
		DictionaryPageHeader: &format.DictionaryPageHeader{
			NumValues: page.NumValues,
			Encoding:  page.Encoding,
			IsSorted:  false,
		},
	}
	p.dictionaryPageOffset = p.offset
	return p.writePage(header, data)
}

func (p *SerializedPageWriter) writePage(header *format.PageHeader, data []byte) (int64, error) {
	p.header.buffer.Reset()
	p.header.encoder.Reset(p.header.protocol.NewWriter(&p.header.buffer))
	if err := p.header.encoder.Encode(header); err != nil {
		return 0, err
	}

	headerSize, err := p.writer.Write(p.header.buffer.Bytes())
	if err != nil {
		p.offset += int64(headerSize)
		return int64(headerSize), err
	}
	dataSize, err := p.writer.Write(data)
	n := int64(headerSize) + int64(dataSize)
	p.offset += n
	p.numPages++
	return n, err
}

// Close records whether the chunk carried a dictionary page. The offsets
// remain available to a file-level writer through the accessors below.
func (p *SerializedPageWriter) Close(hasDictionary, fallback bool) error {
	if !hasDictionary {
		p.dictionaryPageOffset = 0
	}
	return nil
}

// NumValues returns the sum of the value counts of the data pages written.
func (p *SerializedPageWriter) NumValues() int64 { return p.numValues }

// NumPages returns the number of pages written, dictionary page included.
func (p *SerializedPageWriter) NumPages() int { return p.numPages }

// DictionaryPageOffset returns the byte offset of the dictionary page, or
// zero when the chunk has none.
func (p *SerializedPageWriter) DictionaryPageOffset() int64 { return p.dictionaryPageOffset }

// DataPageOffset returns the byte offset of the first data page.
func (p *SerializedPageWriter) DataPageOffset() int64 { return p.dataPageOffset }
