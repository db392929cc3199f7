package lexicon

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Query describes the vector that neighbours are searched for. It is
// either a WordQuery or an AnalogyQuery.
type Query interface {
	// terms returns the words the query is composed of. They are never
	// part of the result.
	terms() []string

	// vector builds the query vector from the rows of the given terms.
	vector(rows []mat.Vector) *mat.VecDense

	fmt.Stringer
}

// WordQuery searches the neighbours of a single word.
type WordQuery struct {
	Word string
}

func (q WordQuery) terms() []string {
	return []string{q.Word}
}

func (q WordQuery) vector(rows []mat.Vector) *mat.VecDense {
	return mat.VecDenseCopyOf(rows[0])
}

func (q WordQuery) String() string {
	return q.Word
}

// AnalogyQuery searches the neighbours of Word - Minus + Plus.
type AnalogyQuery struct {
	Word  string
	Minus string
	Plus  string
}

func (q AnalogyQuery) terms() []string {
	return []string{q.Word, q.Minus, q.Plus}
}

func (q AnalogyQuery) vector(rows []mat.Vector) *mat.VecDense {
	v := mat.NewVecDense(rows[0].Len(), nil)
	v.SubVec(rows[0], rows[1])
	v.AddVec(v, rows[2])
	return v
}

func (q AnalogyQuery) String() string {
	return fmt.Sprintf("%s - %s + %s", q.Word, q.Minus, q.Plus)
}

// NewQuery builds a query from a word and optional minus and plus terms,
// where an empty string means absent. minus and plus must be given
// together.
func NewQuery(word, minus, plus string) (Query, error) {
	switch {
	case minus == "" && plus == "":
		return WordQuery{Word: word}, nil
	case minus == "" || plus == "":
		return nil, fmt.Errorf("%w: minus and plus must be given together", ErrInvalidArgument)
	default:
		return AnalogyQuery{Word: word, Minus: minus, Plus: plus}, nil
	}
}
