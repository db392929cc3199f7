// Command lexicon-dump writes a lexicon in text format, with a header
// that matches its contents. It reads any format and location that the
// other tools accept, including compressed and binary files.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/danieldk/lexicon"
	"github.com/danieldk/lexicon/cmd/common"
)

func main() {
	flags := common.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: lexicon-dump [flags] vectors.bin")
		os.Exit(1)
	}

	logger, err := flags.Logger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	lex, err := flags.LoadLexicon(context.Background(), flag.Arg(0), logger)
	common.ExitIfError(logger, "cannot read vectors", err)

	common.ExitIfError(logger, "cannot write vectors", lexicon.WriteText(os.Stdout, lex))
}
