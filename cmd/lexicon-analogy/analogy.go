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

package main

import (
	"bufio"
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
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: lexicon-analogy [flags] vectors.txt")
		os.Exit(1)
	}

	logger, err := flags.Logger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	lex, err := flags.LoadLexicon(context.Background(), flag.Arg(0), logger)
	common.ExitIfError(logger, "cannot load lexicon", err)

	// Every line holds: word minus plus
	var queries []lexicon.Query
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Split(bufio.ScanLines)
	for scanner.Scan() {
		line := scanner.Text()

		parts := strings.Fields(line)
		if len(parts) != 3 {
			logger.Warn("skipping line that does not have three words", "line", line)
			continue
		}

		queries = append(queries, lexicon.AnalogyQuery{Word: parts[0], Minus: parts[1], Plus: parts[2]})
	}
	common.ExitIfError(logger, "cannot read queries", scanner.Err())

	out := bufio.NewWriter(os.Stdout)
	err = common.PrintAnswers(out, logger, common.FindAll(lex, queries, *k))
	common.ExitIfError(logger, "cannot write results", err)
	common.ExitIfError(logger, "cannot write results", out.Flush())
}
