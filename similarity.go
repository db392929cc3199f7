package lexicon

import (
	"fmt"
	"math"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// DefaultK is the number of neighbours returned when the caller has no
// preference.
const DefaultK = 10

// cosineEpsilon is added to the cosine denominator, so that a zero
// vector has similarity 0 to everything.
const cosineEpsilon = 1e-6

// Similarity finds the k words that are most similar to word.
func (lex *Lexicon) Similarity(word string, k int) ([]WordSimilarity, error) {
	return lex.FindSimilar(WordQuery{Word: word}, k)
}

// Analogy finds the k words that are most similar to
// word - minus + plus.
func (lex *Lexicon) Analogy(word, minus, plus string, k int) ([]WordSimilarity, error) {
	return lex.FindSimilar(AnalogyQuery{Word: word, Minus: minus, Plus: plus}, k)
}

// FindSimilar returns the k words with the highest cosine similarity to
// the query vector, most similar first. Words with the same similarity
// are ordered by index. The query terms are never returned. Fewer than k
// words are returned when the lexicon does not have enough other words.
func (lex *Lexicon) FindSimilar(q Query, k int) ([]WordSimilarity, error) {
	if q == nil {
		return nil, fmt.Errorf("%w: nil query", ErrInvalidArgument)
	}
	if k <= 0 {
		return nil, ErrInvalidK
	}

	terms := q.terms()
	rows := make([]mat.Vector, len(terms))
	skips := roaring.New()
	for i, term := range terms {
		idx, ok := lex.indices[term]
		if !ok {
			lex.logger.Debug("unknown query term", "query", q.String(), "word", term)
			return nil, &ErrUnknownWord{Word: term}
		}

		rows[i] = lex.embeddings.RowView(idx)
		skips.Add(uint32(idx))
	}

	nSkips := int(skips.GetCardinality())
	if lex.Size()-nSkips == 0 {
		return nil, ErrNoCandidates
	}

	scores := lex.cosine(q.vector(rows))

	results := make([]WordSimilarity, 0, min(k, lex.Size()-nSkips))
	for _, idx := range rank(scores, k+nSkips) {
		if skips.Contains(uint32(idx)) {
			continue
		}

		results = append(results, WordSimilarity{
			Word:       lex.words[idx],
			Index:      idx,
			Similarity: scores[idx],
		})
		if len(results) == k {
			break
		}
	}

	lex.logger.Debug("similarity query completed",
		"query", q.String(),
		"k", k,
		"results", len(results),
	)

	return results, nil
}

// cosine computes the cosine similarity between v and every row of the
// embedding matrix.
func (lex *Lexicon) cosine(v *mat.VecDense) []float64 {
	n := lex.Size()

	dots := mat.NewVecDense(n, nil)
	dots.MulVec(lex.embeddings, v)

	denom := mat.NewVecDense(n, nil)
	denom.ScaleVec(floats.Norm(v.RawVector().Data, 2), lex.norms)
	floats.AddConst(cosineEpsilon, denom.RawVector().Data)

	scores := mat.NewVecDense(n, nil)
	scores.DivElemVec(dots, denom)

	return scores.RawVector().Data
}

// rank returns the indices of the n highest scores, in descending order
// of score. Ties are ordered by index. NaN scores rank last.
func rank(scores []float64, n int) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(i, j int) bool {
		si, sj := scores[order[i]], scores[order[j]]
		if math.IsNaN(sj) {
			return !math.IsNaN(si)
		}
		return si > sj
	})

	if n < len(order) {
		order = order[:n]
	}

	return order
}

// Words returns the words of the given results, in order.
func Words(results []WordSimilarity) []string {
	words := make([]string, len(results))
	for i, r := range results {
		words[i] = r.Word
	}
	return words
}
