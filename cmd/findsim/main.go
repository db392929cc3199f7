// Copyright 2015 Daniël de Kok
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command findsim prints the words whose embeddings are most similar to
// a word, or to word - minus + plus.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/danieldk/lexicon"
	"github.com/danieldk/lexicon/cmd/common"
)

func main() {
	flags := common.RegisterFlags(flag.CommandLine)
	k := flag.Int("k", lexicon.DefaultK, "number of similar words")
	minus := flag.String("minus", "", "word to subtract from the query")
	plus := flag.String("plus", "", "word to add to the query")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: findsim [flags] embeddings word")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}

	logger, err := flags.Logger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	query, err := lexicon.NewQuery(flag.Arg(1), *minus, *plus)
	common.ExitIfError(logger, "invalid query", err)

	lex, err := flags.LoadLexicon(context.Background(), flag.Arg(0), logger)
	common.ExitIfError(logger, "cannot load lexicon", err)

	results, err := lex.FindSimilar(query, *k)
	common.ExitIfError(logger, "query failed", err)

	fmt.Println(strings.Join(lexicon.Words(results), " "))
}
