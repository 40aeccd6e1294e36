package cmd

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func collect(t *testing.T, input string) []fastaRecord {
	t.Helper()
	var recs []fastaRecord
	err := parseFasta(strings.NewReader(input), func(rec fastaRecord) error {
		recs = append(recs, rec)
		return nil
	})
	if err != nil {
		t.Fatalf("parseFasta: %v", err)
	}
	return recs
}

func TestParseFastaMultiLine(t *testing.T) {
	input := ">seq1 first entry\nACGT\nAC\n>seq2\nGGTT\n"
	recs := collect(t, input)
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].definition != "seq1 first entry" || string(recs[0].seq) != "ACGTAC" {
		t.Fatalf("unexpected first record: %q %q", recs[0].definition, recs[0].seq)
	}
	if string(recs[0].raw) != ">seq1 first entry\nACGT\nAC\n" {
		t.Fatalf("raw text not preserved: %q", recs[0].raw)
	}
	if recs[1].definition != "seq2" || string(recs[1].seq) != "GGTT" {
		t.Fatalf("unexpected second record: %+v", recs[1])
	}
}

func TestParseFastaCleansResidues(t *testing.T) {
	recs := collect(t, "junk before header\n>p1\r\n 1 MKV LA\r\n61 QQ*\n")
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0].definition != "p1" {
		t.Fatalf("definition = %q", recs[0].definition)
	}
	if got := string(recs[0].seq); got != "MKVLAQQ*" {
		t.Fatalf("seq = %q", got)
	}
	if got := recs[0].length(); got != 7 {
		t.Fatalf("length = %d, want 7 (stop symbol excluded)", got)
	}
}

func TestParseFastaEdgeRecords(t *testing.T) {
	recs := collect(t, ">empty\n>last\nACG")
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].length() != 0 || len(recs[0].seq) != 0 {
		t.Fatalf("empty record has residues: %q", recs[0].seq)
	}
	if string(recs[1].seq) != "ACG" || string(recs[1].raw) != ">last\nACG\n" {
		t.Fatalf("unterminated record: %+v", recs[1])
	}
}

func TestParseFastaCallbackError(t *testing.T) {
	stop := errors.New("stop")
	calls := 0
	err := parseFasta(strings.NewReader(">a\nA\n>b\nC\n"), func(fastaRecord) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) || calls != 1 {
		t.Fatalf("expected callback error after 1 call, got %v after %d", err, calls)
	}
}

func TestRecordLength(t *testing.T) {
	cases := []struct {
		seq  string
		want int
	}{
		{"", 0},
		{"*", 0},
		{"ACGT", 4},
		{"MK*", 2},
		{"M*K", 3},
		{"MK**", 3},
	}
	for _, tc := range cases {
		if got := (fastaRecord{seq: []byte(tc.seq)}).length(); got != tc.want {
			t.Errorf("length(%q) = %d, want %d", tc.seq, got, tc.want)
		}
	}
}

func TestFastaID(t *testing.T) {
	if got := fastaID("seq1 some description"); got != "seq1" {
		t.Fatalf("fastaID = %q", got)
	}
	if got := fastaID("   "); got != "" {
		t.Fatalf("fastaID of blank = %q", got)
	}
}

func TestReadLineLongerThanBuffer(t *testing.T) {
	long := strings.Repeat("ACGT", 100)
	br := bufio.NewReaderSize(strings.NewReader(long+"\r\nTAIL"), 16)
	line, err := readLine(br, nil)
	if err != nil {
		t.Fatalf("readLine: %v", err)
	}
	if string(line) != long {
		t.Fatalf("got %d bytes, want %d", len(line), len(long))
	}
	line, err = readLine(br, line)
	if err != io.EOF || string(line) != "TAIL" {
		t.Fatalf("last line = %q, %v", line, err)
	}
}

func TestParseFastaLineLongerThanReaderBuffer(t *testing.T) {
	seq := strings.Repeat("G", 3*1024*1024+17)
	recs := collect(t, ">big\n"+seq+"\n>small\nAC\n")
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].length() != len(seq) || recs[1].length() != 2 {
		t.Fatalf("lengths = %d, %d", recs[0].length(), recs[1].length())
	}
}

// Single-line chromosome-scale records exceed any fixed scanner token cap.
func TestUnwrappedRecordOver64MiB(t *testing.T) {
	if testing.Short() {
		t.Skip("allocates a 65 MiB record")
	}
	n := 64*1024*1024 + 1024
	path := writeTemp(t, "chr.fa", ">chr1 assembled\n"+strings.Repeat("A", n)+"\n")

	got, err := runReport(t, lengthsOptions{input: path})
	if err != nil {
		t.Fatalf("reportLengths: %v", err)
	}
	if !strings.Contains(got, fmt.Sprintf("  Sum   : %d\n", n)) {
		t.Fatalf("unexpected report %q", got)
	}

	var out bytes.Buffer
	if err := cleanFasta(&out, path, 0, false); err != nil {
		t.Fatalf("cleanFasta: %v", err)
	}
	if out.Len() != len(">chr1 assembled\n")+n+1 {
		t.Fatalf("clean output has %d bytes", out.Len())
	}
}
