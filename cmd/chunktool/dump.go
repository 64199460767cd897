package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/segmentio/columnchunk/format"
	"github.com/segmentio/encoding/thrift"
)

func dumpCommand(args []string) error {
	flags := flag.NewFlagSet("dump", flag.ExitOnError)
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return errors.New("dump expects exactly one chunk file")
	}

	f, err := os.Open(flags.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	return dumpPages(f, os.Stdout)
}

// dumpPages reads a serialized chunk stream and prints one table row per
// page.
func dumpPages(r io.Reader, w io.Writer) error {
	input := bufio.NewReader(r)
	protocol := new(thrift.CompactProtocol)
	decoder := thrift.NewDecoder(protocol.NewReader(input))

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"page", "type", "encoding", "values", "uncompressed", "compressed"})

	totalValues := int64(0)
	totalBytes := int64(0)

	for i := 0; ; i++ {
		header := format.PageHeader{}
		if err := decoder.Decode(&header); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("decoding page header %d: %w", i, err)
		}

		payload := make([]byte, header.CompressedPageSize)
		if _, err := io.ReadFull(input, payload); err != nil {
			return fmt.Errorf("reading page payload %d: %w", i, err)
		}

		numValues := int32(0)
		encoding := format.Plain
		switch header.Type {
		case format.DataPage:
			numValues = header.DataPageHeader.NumValues
			encoding = header.DataPageHeader.Encoding
		case format.DictionaryPage:
			numValues = header.DictionaryPageHeader.NumValues
			encoding = header.DictionaryPageHeader.Encoding
		}

		table.Append([]string{
			strconv.Itoa(i),
			header.Type.String(),
			encoding.String(),
			strconv.FormatInt(int64(numValues), 10),
			strconv.FormatInt(int64(header.UncompressedPageSize), 10),
			strconv.FormatInt(int64(header.CompressedPageSize), 10),
		})

		if header.Type == format.DataPage {
			totalValues += int64(numValues)
		}
		totalBytes += int64(header.CompressedPageSize)
	}

	table.SetFooter([]string{"", "", "", strconv.FormatInt(totalValues, 10), "", strconv.FormatInt(totalBytes, 10)})
	table.Render()
	return nil
}
