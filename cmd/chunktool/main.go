// Chunktool inspects and produces serialized column chunks: streams of
// thrift page headers followed by page payloads, as written by the
// SerializedPageWriter.
//
//	chunktool gen -rows 1000 -o chunk.bin
//	chunktool dump chunk.bin
package main

import (
	"fmt"
	"os"

	"github.com/segmentio/columnchunk/internal/debug"
)

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	debug.Toggle(os.Getenv("CHUNKTOOL_DEBUG") != "")

	var err error
	switch cmd := os.Args[1]; cmd {
	case "gen":
		err = genCommand(os.Args[2:])
	case "dump":
		err = dumpCommand(os.Args[2:])
	default:
		usage()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "chunktool: %s\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: chunktool <command> [arguments]

commands:
  gen   generate a sample serialized column chunk
  dump  print the page inventory of a serialized column chunk`)
	os.Exit(2)
}
