package lexicon

import (
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestSimilarity(t *testing.T) {
	lex := readLexiconOrFail(t, animals)

	results, err := lex.Similarity("cat", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"dog"}, Words(results))

	results, err = lex.Similarity("cat", DefaultK)
	require.NoError(t, err)
	assert.Equal(t, []string{"dog", "truck", "car"}, Words(results))

	assert.InDelta(t, 0.9/0.905539, results[0].Similarity, 1e-5)
	assert.Equal(t, 1, results[0].Index)
	assert.InDelta(t, 0, results[2].Similarity, 1e-12)
}

func TestAnalogy(t *testing.T) {
	lex := readLexiconOrFail(t, royals)

	results, err := lex.Analogy("king", "man", "woman", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"queen"}, Words(results))

	results, err = lex.FindSimilar(AnalogyQuery{Word: "king", Minus: "man", Plus: "woman"}, DefaultK)
	require.NoError(t, err)
	assert.Equal(t, []string{"queen", "banana", "apple"}, Words(results))
	assert.InDelta(t, 1, results[0].Similarity, 1e-5)
}

func TestSimilarityExcludesQueryTerms(t *testing.T) {
	lex := readLexiconOrFail(t, royals)

	lex.Iterate(func(word string, _ []float64) bool {
		results, err := lex.Similarity(word, lex.Size())
		require.NoError(t, err)
		assert.NotContains(t, Words(results), word)
		assert.Len(t, results, lex.Size()-1)
		return true
	})

	results, err := lex.Analogy("apple", "banana", "queen", lex.Size())
	require.NoError(t, err)
	words := Words(results)
	assert.Len(t, words, lex.Size()-3)
	for _, term := range []string{"apple", "banana", "queen"} {
		assert.NotContains(t, words, term)
	}
}

func TestSimilarityResultSize(t *testing.T) {
	lex := readLexiconOrFail(t, animals)

	for k := 1; k <= 6; k++ {
		t.Run(fmt.Sprintf("k=%d", k), func(t *testing.T) {
			results, err := lex.Similarity("car", k)
			require.NoError(t, err)
			assert.Len(t, results, min(k, lex.Size()-1))

			results, err = lex.Analogy("car", "cat", "dog", k)
			require.NoError(t, err)
			assert.Len(t, results, min(k, lex.Size()-3))
		})
	}
}

func TestSimilarityRepeatedTerms(t *testing.T) {
	lex := readLexiconOrFail(t, animals)

	// The same word occurring more than once is only excluded once.
	results, err := lex.Analogy("cat", "cat", "dog", DefaultK)
	require.NoError(t, err)
	assert.Equal(t, []string{"truck", "car"}, Words(results))
}

func TestSimilarityTies(t *testing.T) {
	lex := readLexiconOrFail(t, "4 2\na 1 0\nb 0 1\nc 0 1\nd 0 1\n")

	results, err := lex.Similarity("a", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "d"}, Words(results))

	results, err = lex.Similarity("c", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "d", "a"}, Words(results))
}

func TestSimilarityZeroVector(t *testing.T) {
	lex := readLexiconOrFail(t, "3 2\nz 0 0\nb 0 1\nc 1 0\n")

	results, err := lex.Similarity("z", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, Words(results))
	for _, r := range results {
		assert.Zero(t, r.Similarity)
	}

	// Both score 0, so the earlier word comes first.
	results, err = lex.Similarity("b", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "c"}, Words(results))
}

func TestSimilarityOverflowRanksLast(t *testing.T) {
	// The dot product and norms of a and b overflow, so their cosine is NaN.
	lex := readLexiconOrFail(t, "3 2\na 1e200 1e200\nb 1e200 1e200\nc 1 0\n")

	results, err := lex.Similarity("a", 2)
	require.NoError(t, err)
	require.Equal(t, []string{"c", "b"}, Words(results))
	assert.InDelta(t, 0.7071, results[0].Similarity, 1e-4)
	assert.True(t, math.IsNaN(results[1].Similarity))
}

func TestRankNaN(t *testing.T) {
	nan := math.NaN()
	assert.Equal(t, []int{2, 1, 0, 3}, rank([]float64{nan, 0.5, 1, nan}, 4))
	assert.Equal(t, []int{1, 2}, rank([]float64{nan, 1, 1}, 2))
}

func TestSimilarityDeterministic(t *testing.T) {
	lex := readLexiconOrFail(t, royals)

	first, err := lex.Similarity("king", DefaultK)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		results, err := lex.Similarity("king", DefaultK)
		require.NoError(t, err)
		assert.Equal(t, first, results)
	}
}

func TestSimilarityConcurrent(t *testing.T) {
	lex := readLexiconOrFail(t, royals)

	want, err := lex.Analogy("king", "man", "woman", DefaultK)
	require.NoError(t, err)

	var wg sync.WaitGroup
	got := make([][]WordSimilarity, 16)
	errs := make([]error, len(got))
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i], errs[i] = lex.Analogy("king", "man", "woman", DefaultK)
		}(i)
	}
	wg.Wait()

	for i := range got {
		require.NoError(t, errs[i])
		assert.Equal(t, want, got[i])
	}
}

func TestSelfSimilarity(t *testing.T) {
	lex := readLexiconOrFail(t, royals)

	for idx := 0; idx < lex.Size(); idx++ {
		scores := lex.cosine(mat.VecDenseCopyOf(lex.embeddings.RowView(idx)))
		assert.InDelta(t, 1, scores[idx], 1e-5)
	}
}

func TestSimilarityUnknownWord(t *testing.T) {
	lex := readLexiconOrFail(t, animals)

	tests := []struct {
		name  string
		query Query
		word  string
	}{
		{"Word", WordQuery{Word: "nonexistent_word"}, "nonexistent_word"},
		{"Minus", AnalogyQuery{Word: "cat", Minus: "bogus", Plus: "dog"}, "bogus"},
		{"Plus", AnalogyQuery{Word: "cat", Minus: "dog", Plus: "bogus"}, "bogus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := lex.FindSimilar(tt.query, DefaultK)

			var unknown *ErrUnknownWord
			require.ErrorAs(t, err, &unknown)
			assert.Equal(t, tt.word, unknown.Word)
		})
	}

	// The lexicon is still usable.
	assert.Equal(t, 4, lex.Size())
	results, err := lex.Similarity("cat", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"dog"}, Words(results))
}

func TestNewQuery(t *testing.T) {
	q, err := NewQuery("cat", "", "")
	require.NoError(t, err)
	assert.Equal(t, WordQuery{Word: "cat"}, q)

	q, err = NewQuery("king", "man", "woman")
	require.NoError(t, err)
	assert.Equal(t, AnalogyQuery{Word: "king", Minus: "man", Plus: "woman"}, q)
	assert.Equal(t, "king - man + woman", q.String())

	_, err = NewQuery("cat", "", "dog")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewQuery("cat", "dog", "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFindSimilarInvalidArguments(t *testing.T) {
	lex := readLexiconOrFail(t, animals)

	_, err := lex.Similarity("cat", 0)
	assert.ErrorIs(t, err, ErrInvalidK)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = lex.Similarity("cat", -3)
	assert.ErrorIs(t, err, ErrInvalidK)

	_, err = lex.FindSimilar(nil, 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSimilarityNoCandidates(t *testing.T) {
	lex := readLexiconOrFail(t, "1 2\nlonely 1 1\n")

	_, err := lex.Similarity("lonely", DefaultK)
	assert.ErrorIs(t, err, ErrNoCandidates)

	lex = readLexiconOrFail(t, "2 2\na 1 0\nb 0 1\n")
	_, err = lex.Analogy("a", "b", "a", DefaultK)
	assert.ErrorIs(t, err, ErrNoCandidates)

	results, err := lex.Analogy("a", "a", "a", DefaultK)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, Words(results))
}

func TestSimilarityLogs(t *testing.T) {
	var log logRecorder
	lex := readLexiconOrFail(t, animals, WithLogger(log.logger()))

	_, err := lex.Similarity("cat", 2)
	require.NoError(t, err)

	assert.Contains(t, log.String(), "similarity query completed")
	assert.Contains(t, log.String(), "query=cat")
	assert.Contains(t, log.String(), "results=2")
}
