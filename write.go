package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// WriteText writes the lexicon in the text format read by ReadLexicon,
// with a header stating the number of words and dimensions.
func WriteText(w io.Writer, lex *Lexicon) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "%d %d\n", lex.Size(), lex.VectorSize()); err != nil {
		return err
	}

	var err error
	buf := make([]byte, 0, 32)
	lex.Iterate(func(word string, vector []float64) bool {
		if _, err = bw.WriteString(word); err != nil {
			return false
		}

		for _, v := range vector {
			buf = append(buf[:0], ' ')
			buf = strconv.AppendFloat(buf, v, 'g', -1, 64)
			if _, err = bw.Write(buf); err != nil {
				return false
			}
		}

		err = bw.WriteByte('\n')
		return err == nil
	})
	if err != nil {
		return err
	}

	return bw.Flush()
}
