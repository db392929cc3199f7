package common

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/danieldk/lexicon"
	"github.com/danieldk/lexicon/source"
)

// Flags holds the flags shared by all tools.
type Flags struct {
	Verbose      bool
	Quiet        bool
	Format       string
	StrictHeader bool
}

// RegisterFlags registers the shared flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.BoolVar(&f.Verbose, "v", false, "log debug messages")
	fs.BoolVar(&f.Quiet, "q", false, "only log warnings and errors")
	fs.StringVar(&f.Format, "format", "auto", "embeddings format: text, binary or auto")
	fs.BoolVar(&f.StrictHeader, "strict-header", false, "fail when the header does not match the data")
	return f
}

// Logger creates a stderr logger with the level selected by -v or -q.
func (f *Flags) Logger() (*slog.Logger, error) {
	level := slog.LevelInfo
	switch {
	case f.Verbose && f.Quiet:
		return nil, fmt.Errorf("-v and -q are mutually exclusive")
	case f.Verbose:
		level = slog.LevelDebug
	case f.Quiet:
		level = slog.LevelWarn
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})), nil
}

// LoadLexicon reads the lexicon at location, which may be a local file
// or an S3 object, in the format selected by the flags.
func (f *Flags) LoadLexicon(ctx context.Context, location string, logger *slog.Logger) (*lexicon.Lexicon, error) {
	if err := source.Stat(location); err != nil {
		return nil, fmt.Errorf("you need to provide a real file of embeddings: %w", err)
	}

	binary, err := isBinary(f.Format, location)
	if err != nil {
		return nil, err
	}

	// Size of the file as stored, before decompression.
	if size, err := source.Size(location); err == nil && size >= 0 {
		logger.Info("loading lexicon", "location", location, "file_size", humanize.Bytes(uint64(size)))
	} else {
		logger.Info("loading lexicon", "location", location)
	}

	rc, err := source.Open(ctx, location)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	opts := []lexicon.Option{lexicon.WithLogger(logger)}
	if f.StrictHeader {
		opts = append(opts, lexicon.WithStrictHeader())
	}

	var lex *lexicon.Lexicon
	if binary {
		lex, err = lexicon.ReadBinary(rc, opts...)
	} else {
		lex, err = lexicon.ReadLexicon(rc, opts...)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", location, err)
	}

	logger.Info("lexicon loaded", "words", lex.Size(), "dimension", lex.VectorSize())
	if lex.Size() == 0 {
		logger.Warn("empty lexicon")
	}

	return lex, nil
}

func isBinary(format, location string) (bool, error) {
	switch format {
	case "text":
		return false, nil
	case "binary":
		return true, nil
	case "auto":
		name := strings.TrimSuffix(location, string(source.CompressionOf(location)))
		return strings.HasSuffix(name, ".bin"), nil
	default:
		return false, fmt.Errorf("unknown format: %s", format)
	}
}

// ExitIfError logs err and exits when it is not nil.
func ExitIfError(logger *slog.Logger, msg string, err error) {
	if err != nil {
		logger.Error(msg, "error", err)
		os.Exit(1)
	}
}

// Answer holds the result of one query.
type Answer struct {
	Query   lexicon.Query
	Results []lexicon.WordSimilarity
	Err     error
}

// FindAll answers the queries concurrently. Answers are in query order.
func FindAll(lex *lexicon.Lexicon, queries []lexicon.Query, k int) []Answer {
	answers := make([]Answer, len(queries))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			results, err := lex.FindSimilar(q, k)
			answers[i] = Answer{Query: q, Results: results, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return answers
}

// PrintAnswers writes a "word similarity" line for every result, and
// logs failed queries.
func PrintAnswers(w io.Writer, logger *slog.Logger, answers []Answer) error {
	for _, answer := range answers {
		if answer.Err != nil {
			logger.Error("query failed", "query", answer.Query.String(), "error", answer.Err)
			continue
		}

		for _, r := range answer.Results {
			if _, err := fmt.Fprintln(w, r.Word, r.Similarity); err != nil {
				return err
			}
		}
	}

	return nil
}
