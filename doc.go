// Package lexicon loads word embeddings and finds nearest neighbours.
//
// A Lexicon is read from a text file whose first line is a header and
// whose other lines each hold a word followed by its vector components.
// The binary word2vec format is supported as well. Queries return the
// words with the highest cosine similarity to a word, or to an analogy
// vector word - minus + plus, leaving out the query terms themselves:
//
//     lex, err := lexicon.Load("glove.txt")
//     ...
//     results, err := lex.Analogy("king", "man", "woman", lexicon.DefaultK)
//
// Similarities are computed for the whole vocabulary with one
// matrix-vector product using gonum. Building with the netlib tag makes
// gonum use its C BLAS binding. Binding to the right BLAS library can
// give nice performance improvements. The binding can be configured
// using CGO flags. For instance, to link against OpenBLAS on Linux:
//
//     CGO_LDFLAGS="-L/path/to/OpenBLAS -lopenblas" go install -tags netlib ./...
//
// or Accelerate on OS X:
//
//     CGO_LDFLAGS="-framework Accelerate" go install -tags netlib ./...
package lexicon
