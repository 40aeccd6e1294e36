package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

const cleanInput = ">seq1 first record\nACGTAC\nGTAC\n\n>seq2\nTT  GG\n>prot1 translated\nMKVL*\n"

func TestCleanFastaUnwrapped(t *testing.T) {
	path := writeTemp(t, "in.fa", cleanInput)
	var out bytes.Buffer
	if err := cleanFasta(&out, path, 0, false); err != nil {
		t.Fatalf("cleanFasta: %v", err)
	}
	want := ">seq1 first record\nACGTACGTAC\n>seq2\nTTGG\n>prot1 translated\nMKVL*\n"
	if got := out.String(); got != want {
		t.Fatalf("clean mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestCleanFastaWrapped(t *testing.T) {
	path := writeTemp(t, "in.fa", cleanInput)
	var out bytes.Buffer
	if err := cleanFasta(&out, path, 4, false); err != nil {
		t.Fatalf("cleanFasta: %v", err)
	}
	want := ">seq1 first record\nACGT\nACGT\nAC\n>seq2\nTTGG\n>prot1 translated\nMKVL\n*\n"
	if got := out.String(); got != want {
		t.Fatalf("clean mismatch:\n got: %q\nwant: %q", got, want)
	}
}

// Clean output must read back identically through an independent parser.
func TestCleanFastaRoundTrip(t *testing.T) {
	for _, width := range []int{0, 3, 60} {
		path := writeTemp(t, "in.fa", cleanInput)
		var out bytes.Buffer
		if err := cleanFasta(&out, path, width, false); err != nil {
			t.Fatalf("cleanFasta: %v", err)
		}
		originals := collect(t, cleanInput)

		r := fasta.NewReader(strings.NewReader(out.String()), linear.NewSeq("", nil, alphabet.Protein))
		sc := seqio.NewScanner(r)
		i := 0
		for sc.Next() {
			s := sc.Seq().(*linear.Seq)
			if i >= len(originals) {
				t.Fatalf("width %d: extra record %q", width, s.Name())
			}
			def := s.Name()
			if s.Description() != "" {
				def += " " + s.Description()
			}
			if def != originals[i].definition {
				t.Errorf("width %d: definition %q, want %q", width, def, originals[i].definition)
			}
			if got := alphabet.Letters(s.Seq).String(); got != string(originals[i].seq) {
				t.Errorf("width %d: sequence %q, want %q", width, got, originals[i].seq)
			}
			i++
		}
		if err := sc.Error(); err != nil {
			t.Fatalf("width %d: reparse: %v", width, err)
		}
		if i != len(originals) {
			t.Fatalf("width %d: reparsed %d records, want %d", width, i, len(originals))
		}
	}
}

func TestParseCleanArgs(t *testing.T) {
	opts, err := parseCleanArgs(newTestFlagSet(), []string{"in.fa", "-w", "60"})
	if err != nil || opts.wrapWidth != 60 || opts.input != "in.fa" {
		t.Fatalf("parse: %+v, %v", opts, err)
	}
	opts, err = parseCleanArgs(newTestFlagSet(), []string{"--wrap_width=80", "in.fa"})
	if err != nil || opts.wrapWidth != 80 {
		t.Fatalf("parse long flag: %+v, %v", opts, err)
	}
	opts, err = parseCleanArgs(newTestFlagSet(), []string{"in.fa"})
	if err != nil || opts.wrapWidth != 0 {
		t.Fatalf("default should be unwrapped: %+v, %v", opts, err)
	}
	if _, err := parseCleanArgs(newTestFlagSet(), []string{"in.fa", "-w", "-3"}); err == nil {
		t.Fatalf("expected error for negative width")
	}
}
