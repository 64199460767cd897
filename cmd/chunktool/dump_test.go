package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/segmentio/columnchunk"
	"github.com/segmentio/columnchunk/format"
)

func TestDumpPages(t *testing.T) {
	chunk := new(bytes.Buffer)
	sink := columnchunk.NewSerializedPageWriter(chunk, nil)

	descriptor := &columnchunk.ColumnDescriptor{
		PhysicalType: format.ByteArray,
		Path:         columnchunk.ColumnPath{"name"},
	}
	writer, err := columnchunk.NewColumnWriter(descriptor, sink, nil, 100)
	if err != nil {
		t.Fatal(err)
	}

	values := make([][]byte, 100)
	for i := range values {
		values[i] = []byte{'a' + byte(i%8)}
	}
	w := writer.(*columnchunk.ByteArrayWriter)
	if err := w.WriteBatch(values, nil, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Close(); err != nil {
		t.Fatal(err)
	}

	output := new(strings.Builder)
	if err := dumpPages(bytes.NewReader(chunk.Bytes()), output); err != nil {
		t.Fatal(err)
	}

	dump := output.String()
	if !strings.Contains(dump, "DICTIONARY_PAGE") {
		t.Errorf("the dump does not list the dictionary page:\n%s", dump)
	}
	if !strings.Contains(dump, "DATA_PAGE") {
		t.Errorf("the dump does not list the data pages:\n%s", dump)
	}
	if !strings.Contains(dump, "PLAIN_DICTIONARY") {
		t.Errorf("the dump does not show the page encodings:\n%s", dump)
	}
	if strings.Count(dump, "DICTIONARY_PAGE") != 1 {
		t.Errorf("the dump lists more than one dictionary page:\n%s", dump)
	}
}
