package format_test

import (
	"reflect"
	"testing"

	"github.com/segmentio/columnchunk/format"
	"github.com/segmentio/encoding/thrift"
)

func TestMarshalUnmarshalPageHeader(t *testing.T) {
	protocol := &thrift.CompactProtocol{}
	header := &format.PageHeader{
		Type:                 format.DataPage,
		UncompressedPageSize: 1024,
		CompressedPageSize:   512,
		CRC:                  42,
		DataPageHeader: &format.DataPageHeader{
			NumValues:               100,
			Encoding:                format.PlainDictionary,
			DefinitionLevelEncoding: format.RLE,
			RepetitionLevelEncoding: format.RLE,
			Statistics: format.Statistics{
				NullCount: 10,
				MinValue:  []byte{1, 0, 0, 0},
				MaxValue:  []byte{9, 0, 0, 0},
				Min:       []byte{1, 0, 0, 0},
				Max:       []byte{9, 0, 0, 0},
			},
		},
	}

	b, err := thrift.Marshal(protocol, header)
	if err != nil {
		t.Fatal(err)
	}

	decoded := &format.PageHeader{}
	if err := thrift.Unmarshal(protocol, b, &decoded); err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(header, decoded) {
		t.Error("values mismatch:")
		t.Logf("expected:\n%#v", header)
		t.Logf("found:\n%#v", decoded)
	}
}

func TestMarshalUnmarshalDictionaryPageHeader(t *testing.T) {
	protocol := &thrift.CompactProtocol{}
	header := &format.PageHeader{
		Type:                 format.DictionaryPage,
		UncompressedPageSize: 128,
		CompressedPageSize:   128,
		DictionaryPageHeader: &format.DictionaryPageHeader{
			NumValues: 10,
			Encoding:  format.PlainDictionary,
		},
	}

	b, err := thrift.Marshal(protocol, header)
	if err != nil {
		t.Fatal(err)
	}

	decoded := &format.PageHeader{}
	if err := thrift.Unmarshal(protocol, b, &decoded); err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(header, decoded) {
		t.Error("values mismatch:")
		t.Logf("expected:\n%#v", header)
		t.Logf("found:\n%#v", decoded)
	}
}
