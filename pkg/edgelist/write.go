package edgelist

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// Write encodes l to w in the given format, using zero-indexed ids.
// Skipped lines are not written.
func Write(w io.Writer, l *List, format Format) error {
	bw := bufio.NewWriter(w)
	if format == FormatHeader {
		fmt.Fprintf(bw, "%d %d\n", l.VertexCount, len(l.Edges))
	}
	for _, e := range l.Edges {
		fmt.Fprintf(bw, "%d %d\n", e.U, e.V)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// WriteFile writes l to a file at path.
func WriteFile(path string, l *List, format Format) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, l, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Hash returns a hex SHA-256 of the list's vertex count and edges. Inputs that
// differ only in comments, whitespace, skipped lines or indexing base hash
// the same.
func (l *List) Hash() string {
	h := sha256.New()
	// Write to a hash never fails.
	_ = Write(h, l, FormatHeader)
	return hex.EncodeToString(h.Sum(nil))
}
