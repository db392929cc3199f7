package lexicon

import (
	"log/slog"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// WordSimilarity is a word paired with its similarity to a query.
type WordSimilarity struct {
	Word       string
	Index      int
	Similarity float64
}

// Lexicon is an immutable table of word embeddings. Row i of the
// embedding matrix is the embedding of the i-th word of the source.
//
// A Lexicon is safe for concurrent use by multiple goroutines.
type Lexicon struct {
	indices    map[string]int
	words      []string
	embeddings *mat.Dense
	norms      *mat.VecDense
	dims       int

	logger *slog.Logger
}

func newLexicon(words []string, indices map[string]int, data []float64, dims int, logger *slog.Logger) *Lexicon {
	lex := &Lexicon{
		indices: indices,
		words:   words,
		dims:    dims,
		logger:  logger,
	}

	if len(words) == 0 {
		lex.dims = 0
		return lex
	}

	lex.embeddings = mat.NewDense(len(words), dims, data)
	lex.norms = rowNorms(lex.embeddings)

	return lex
}

// rowNorms computes the L2 norm of every row of m.
func rowNorms(m *mat.Dense) *mat.VecDense {
	rows, _ := m.Dims()
	norms := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		norms.SetVec(i, floats.Norm(m.RawRowView(i), 2))
	}
	return norms
}

// Size returns the number of words in the lexicon.
func (lex *Lexicon) Size() int {
	return len(lex.words)
}

// VectorSize returns the dimensionality of the embeddings. It is zero
// for an empty lexicon.
func (lex *Lexicon) VectorSize() int {
	return lex.dims
}

// Index returns the row index of a word.
func (lex *Lexicon) Index(word string) (int, bool) {
	idx, ok := lex.indices[word]
	return idx, ok
}

// Word returns the word at the given row index.
func (lex *Lexicon) Word(idx int) (string, bool) {
	if idx < 0 || idx >= len(lex.words) {
		return "", false
	}
	return lex.words[idx], true
}

// Vector returns a copy of the embedding of a word.
func (lex *Lexicon) Vector(word string) ([]float64, bool) {
	idx, ok := lex.indices[word]
	if !ok {
		return nil, false
	}

	return mat.Row(make([]float64, lex.dims), idx, lex.embeddings), true
}

// Iterate calls f for every word and its embedding, in index order.
// Iteration stops when f returns false. The slice passed to f is
// reused between calls.
func (lex *Lexicon) Iterate(f func(word string, vector []float64) bool) {
	buf := make([]float64, lex.dims)
	for idx, word := range lex.words {
		mat.Row(buf, idx, lex.embeddings)
		if !f(word, buf) {
			return
		}
	}
}
