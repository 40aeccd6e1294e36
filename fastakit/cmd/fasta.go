package cmd

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
)

const stopSymbol = '*'

type fastaRecord struct {
	definition string
	seq        []byte
	raw        []byte
}

// length ignores a single trailing stop symbol so translated proteins are
// not counted one residue long.
func (r fastaRecord) length() int {
	n := len(r.seq)
	if n > 0 && r.seq[n-1] == stopSymbol {
		n--
	}
	return n
}

// parseFasta streams records from r. Record fields are owned by the callback
// and stay valid after it returns. Text before the first header is skipped.
// Lines have no length limit, so unwrapped chromosome-scale records are fine.
func parseFasta(r io.Reader, onRecord func(fastaRecord) error) error {
	br := bufio.NewReaderSize(r, 1024*1024)

	var (
		inRecord   bool
		definition string
		seq        bytes.Buffer
		raw        bytes.Buffer
		line       []byte
	)
	emit := func() error {
		if !inRecord {
			return nil
		}
		rec := fastaRecord{
			definition: definition,
			seq:        append([]byte(nil), seq.Bytes()...),
			raw:        append([]byte(nil), raw.Bytes()...),
		}
		seq.Reset()
		raw.Reset()
		inRecord = false
		return onRecord(rec)
	}

	for {
		var err error
		line, err = readLine(br, line)
		eof := err == io.EOF
		if err != nil && !eof {
			return fmt.Errorf("read fasta: %w", err)
		}
		if eof && len(line) == 0 {
			break
		}
		switch {
		case len(line) > 0 && line[0] == '>':
			if err := emit(); err != nil {
				return err
			}
			inRecord = true
			definition = strings.TrimSpace(string(line[1:]))
			raw.Write(line)
			raw.WriteByte('\n')
		case inRecord:
			raw.Write(line)
			raw.WriteByte('\n')
			appendResidues(&seq, line)
		}
		if eof {
			break
		}
	}
	return emit()
}

// readLine reads one line into dst, growing past the reader's buffer as
// needed. The line ending (\n or \r\n) is stripped.
func readLine(r *bufio.Reader, dst []byte) ([]byte, error) {
	dst = dst[:0]
	for {
		chunk, err := r.ReadSlice('\n')
		dst = append(dst, chunk...)
		if err == bufio.ErrBufferFull {
			continue
		}
		n := len(dst)
		if n > 0 && dst[n-1] == '\n' {
			n--
			if n > 0 && dst[n-1] == '\r' {
				n--
			}
		}
		return dst[:n], err
	}
}

// appendResidues drops whitespace and digits, matching how numbered sequence
// dumps are read.
func appendResidues(dst *bytes.Buffer, line []byte) {
	for _, c := range line {
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\v' || c == '\f':
		case c >= '0' && c <= '9':
		default:
			dst.WriteByte(c)
		}
	}
}

func fastaID(header string) string {
	if header == "" {
		return ""
	}
	fields := strings.Fields(header)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
