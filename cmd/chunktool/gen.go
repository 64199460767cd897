package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/segmentio/columnchunk"
	"github.com/segmentio/columnchunk/format"
	"github.com/segmentio/columnchunk/internal/debug"
)

// genCommand writes a sample chunk: a FIXED_LEN_BYTE_ARRAY(16) column of
// uuids drawn from a small set, which exercises the dictionary path.
func genCommand(args []string) error {
	flags := flag.NewFlagSet("gen", flag.ExitOnError)
	rows := flags.Int("rows", 1000, "number of rows in the generated chunk")
	distinct := flags.Int("distinct", 16, "number of distinct values in the generated chunk")
	pageSize := flags.Int("page-size", 4096, "data page size threshold")
	output := flags.String("o", "chunk.bin", "output file")
	if err := flags.Parse(args); err != nil {
		return err
	}

	f, err := os.Create(*output)
	if err != nil {
		return err
	}
	defer f.Close()

	descriptor := &columnchunk.ColumnDescriptor{
		PhysicalType: format.FixedLenByteArray,
		TypeLength:   16,
		Path:         columnchunk.ColumnPath{"id"},
	}

	sink := columnchunk.NewSerializedPageWriter(f, nil)
	writer, err := columnchunk.NewColumnWriter(descriptor, sink, nil, int64(*rows),
		columnchunk.DataPageSize(*pageSize),
	)
	if err != nil {
		return err
	}

	ids := make([]uuid.UUID, *distinct)
	for i := range ids {
		ids[i] = uuid.New()
	}

	values := make([][]byte, *rows)
	for i := range values {
		id := ids[i%len(ids)]
		values[i] = append([]byte(nil), id[:]...)
	}

	w := writer.(*columnchunk.FixedLenByteArrayWriter)
	if err := w.WriteBatch(values, nil, nil); err != nil {
		return err
	}
	n, err := w.Close()
	if err != nil {
		return err
	}

	debug.Format("wrote %d pages (%d bytes) to %s", sink.NumPages(), n, *output)
	fmt.Printf("%s: %d rows, %d pages, %d bytes\n", *output, *rows, sink.NumPages(), n)
	return nil
}
