package lexicon

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
)

// Load reads a lexicon in text format from the file at path.
func Load(path string, opts ...Option) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open lexicon: %w", err)
	}
	defer f.Close()

	return ReadLexicon(f, opts...)
}

// ReadLexicon reads a lexicon in text format. The first line is a header
// (usually the number of words and dimensions) and is not interpreted
// unless WithStrictHeader is given. Every following line holds a word and
// its embedding components, separated by whitespace. Words get indices in
// the order in which they occur.
func ReadLexicon(r io.Reader, opts ...Option) (*Lexicon, error) {
	o := newOptions(opts)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(64*1024, o.maxLineSize)), o.maxLineSize)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, ErrMissingHeader
	}
	header := scanner.Text()

	b := newBuilder()
	lineNo := 1
	for scanner.Scan() {
		lineNo++

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if err := b.addText(fields[0], fields[1:]); err != nil {
			return nil, &ErrMalformedLine{Line: lineNo, cause: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if err := checkHeader(header, b.size(), b.dims, o); err != nil {
		return nil, err
	}

	o.logger.Debug("lexicon loaded",
		"lines", lineNo,
		"words", b.size(),
		"dimension", b.dims,
	)

	return b.build(o.logger), nil
}

// ReadBinary reads a lexicon in the binary word2vec format: a textual
// "<words> <dimensions>" header, followed by each word, a space and its
// embedding as little-endian float32 values.
func ReadBinary(r io.Reader, opts ...Option) (*Lexicon, error) {
	o := newOptions(opts)
	br := bufio.NewReader(r)

	var nWords, vSize int
	if _, err := fmt.Fscanf(br, "%d %d", &nWords, &vSize); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingHeader, err)
	}
	if nWords < 0 || vSize <= 0 {
		return nil, &ErrHeaderMismatch{
			Header: fmt.Sprintf("%d %d", nWords, vSize),
			cause:  errors.New("word count and dimensionality must be positive"),
		}
	}

	b := newBuilder()
	vec := make([]float32, vSize)
	for w := 0; w < nWords; w++ {
		word, err := br.ReadString(' ')
		if err != nil {
			return nil, fmt.Errorf("word %d: %w", w, err)
		}
		word = strings.TrimSpace(word)

		if err = binary.Read(br, binary.LittleEndian, vec); err != nil {
			return nil, fmt.Errorf("vector of %q: %w", word, err)
		}

		if err = b.addBinary(word, vec); err != nil {
			return nil, fmt.Errorf("word %d: %w", w, err)
		}
	}

	o.logger.Debug("lexicon loaded",
		"format", "binary",
		"words", b.size(),
		"dimension", b.dims,
	)

	return b.build(o.logger), nil
}

func checkHeader(header string, words, dims int, o options) error {
	hWords, hDims, err := parseHeader(header)
	if err != nil {
		if o.strictHeader {
			return &ErrHeaderMismatch{Header: header, cause: err}
		}
		o.logger.Debug("ignoring header", "header", header, "error", err)
		return nil
	}

	if hWords == words && (words == 0 || hDims == dims) {
		return nil
	}

	if o.strictHeader {
		return &ErrHeaderMismatch{Header: header, Words: words, Dims: dims}
	}

	o.logger.Warn("header does not match data",
		"header", header,
		"words", words,
		"dimension", dims,
	)

	return nil
}

func parseHeader(header string) (words, dims int, err error) {
	fields := strings.Fields(header)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("expected 2 fields, got %d", len(fields))
	}

	if words, err = strconv.Atoi(fields[0]); err != nil {
		return 0, 0, err
	}
	if dims, err = strconv.Atoi(fields[1]); err != nil {
		return 0, 0, err
	}

	return words, dims, nil
}

// builder accumulates rows in file order.
type builder struct {
	words   []string
	indices map[string]int
	data    []float64
	dims    int
}

func newBuilder() *builder {
	return &builder{
		indices: make(map[string]int),
	}
}

func (b *builder) size() int {
	return len(b.words)
}

func (b *builder) addWord(word string, n int) error {
	if n == 0 {
		return fmt.Errorf("word %q has no vector components", word)
	}

	if b.dims == 0 {
		b.dims = n
	} else if n != b.dims {
		return fmt.Errorf("expected %d vector components, got %d", b.dims, n)
	}

	if _, ok := b.indices[word]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateWord, word)
	}

	b.indices[word] = len(b.words)
	b.words = append(b.words, word)

	return nil
}

func (b *builder) addText(word string, components []string) error {
	if err := b.addWord(word, len(components)); err != nil {
		return err
	}

	for idx, c := range components {
		v, err := strconv.ParseFloat(c, 64)
		if err != nil {
			return err
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("component %d is not finite: %s", idx+1, c)
		}
		b.data = append(b.data, v)
	}

	return nil
}

func (b *builder) addBinary(word string, vec []float32) error {
	if err := b.addWord(word, len(vec)); err != nil {
		return err
	}

	for idx, v := range vec {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("component %d of %q is not finite: %v", idx+1, word, f)
		}
		b.data = append(b.data, f)
	}

	return nil
}

func (b *builder) build(logger *slog.Logger) *Lexicon {
	return newLexicon(b.words, b.indices, b.data, b.dims, logger)
}
