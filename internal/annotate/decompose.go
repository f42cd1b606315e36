package annotate

import (
	"bufio"
	"io"
	"strings"
)

// rewriteAlleleNumbers copies a VCF stream rewriting per-allele INFO counts
// (Number=A) to single values (Number=1). Allele-decomposed files carry one
// alt per record, and downstream database loaders reject the per-allele
// cardinality after decomposition.
func rewriteAlleleNumbers(dst io.Writer, src io.Reader) error {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 1024*1024), 64*1024*1024)
	w := bufio.NewWriter(dst)
	for scanner.Scan() {
		line := strings.ReplaceAll(scanner.Text(), "Number=A", "Number=1")
		if _, err := w.WriteString(line); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return w.Flush()
}
