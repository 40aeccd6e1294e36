package cmd

import "strings"

// formatRecord renders rec as FASTA text ending in a newline. A width <= 0
// keeps the whole sequence on one line.
func formatRecord(rec fastaRecord, width int) string {
	var b strings.Builder
	b.Grow(len(rec.definition) + len(rec.seq) + len(rec.seq)/max(width, 1) + 3)
	b.WriteByte('>')
	b.WriteString(rec.definition)
	b.WriteByte('\n')
	if len(rec.seq) == 0 {
		return b.String()
	}
	if width <= 0 {
		b.Write(rec.seq)
		b.WriteByte('\n')
		return b.String()
	}
	for off := 0; off < len(rec.seq); off += width {
		end := min(off+width, len(rec.seq))
		b.Write(rec.seq[off:end])
		b.WriteByte('\n')
	}
	return b.String()
}

// rawText returns the record as it appeared in the input.
func rawText(rec fastaRecord) []byte {
	if len(rec.raw) == 0 {
		return []byte(formatRecord(rec, 0))
	}
	return rec.raw
}
