package annotation_test

import (
	"github.com/txtfnnl/generank/annotation"
	"os"
	"strings"
	"testing"
)

func TestParseOffset(t *testing.T) {
	tests := []struct {
		in   string
		want annotation.Offset
		ok   bool
	}{
		{"0:5", annotation.Offset{Start: 0, End: 5}, true},
		{"12:12", annotation.Offset{Start: 12, End: 12}, true},
		{"5:1", annotation.Offset{}, false},
		{"-1:4", annotation.Offset{}, false},
		{"1:2:3", annotation.Offset{}, false},
		{"a:2", annotation.Offset{}, false},
		{"12", annotation.Offset{}, false},
	}
	for _, tt := range tests {
		got, err := annotation.ParseOffset(tt.in)
		if tt.ok && err != nil {
			t.Errorf("ParseOffset(%q) unexpected error %v", tt.in, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("ParseOffset(%q) expected an error", tt.in)
		}
		if got != tt.want {
			t.Errorf("ParseOffset(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestGap(t *testing.T) {
	a := annotation.Offset{Start: 10, End: 15}
	tests := []struct {
		b    annotation.Offset
		want int
	}{
		{annotation.Offset{Start: 10, End: 15}, 0},
		{annotation.Offset{Start: 15, End: 20}, 0},
		{annotation.Offset{Start: 12, End: 13}, 0},
		{annotation.Offset{Start: 20, End: 25}, 5},
		{annotation.Offset{Start: 0, End: 3}, 7},
	}
	for _, tt := range tests {
		if got := a.Gap(tt.b); got != tt.want {
			t.Errorf("%v.Gap(%v) = %d, want %d", a, tt.b, got, tt.want)
		}
		if got := tt.b.Gap(a); got != tt.want {
			t.Errorf("%v.Gap(%v) = %d, want %d", tt.b, a, got, tt.want)
		}
	}
}

func TestOffsetsUniq(t *testing.T) {
	oo := annotation.Offsets{{Start: 5, End: 9}, {Start: 0, End: 3}, {Start: 5, End: 9}, {Start: 0, End: 2}}
	got := oo.Uniq()
	want := annotation.Offsets{{Start: 0, End: 2}, {Start: 0, End: 3}, {Start: 5, End: 9}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}

func TestUnquote(t *testing.T) {
	s, err := annotation.Unquote(`symbol="TP53"`)
	if err != nil {
		t.Fatal(err)
	}
	if s != "TP53" {
		t.Errorf("got %q", s)
	}
	s, err = annotation.Unquote(`"a"b"`)
	if err != nil {
		t.Fatal(err)
	}
	if s != `a"b` {
		t.Errorf("got %q", s)
	}
	for _, in := range []string{"TP53", `"TP53`} {
		if _, err := annotation.Unquote(in); err == nil {
			t.Errorf("Unquote(%q) expected an error", in)
		}
	}
}

func TestReadGeneMentions(t *testing.T) {
	mentions, err := annotation.ReadGeneMentions("testdata/genes.tsv")
	if err != nil {
		t.Fatal(err)
	}
	if len(mentions) != 2 {
		t.Fatalf("expected 2 mentions, got %d", len(mentions))
	}
	m := mentions[1]
	if m.ID != "6622" || m.Symbol != "α-synuclein" || m.Taxon != 9606 || m.Entrez != "6622" {
		t.Errorf("unexpected mention %+v", m)
	}
	if m.Offset != (annotation.Offset{Start: 30, End: 41}) || m.Similarity != 0.8 {
		t.Errorf("unexpected mention %+v", m)
	}
	for _, m := range mentions {
		if m.Offset.Start > m.Offset.End {
			t.Errorf("offset %v is inverted", m.Offset)
		}
		for _, s := range []string{m.Symbol, m.Entrez} {
			if strings.Contains(s, `"`) {
				t.Errorf("field %q still quoted", s)
			}
		}
	}
}

func TestParseGeneMentionsMalformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"columns", "a\tb\tc\n"},
		{"offset", "b\tp\tm\ts\ta\tNN\t0-4\t1\t0.5\t\"S\"\t\"9606\"\t\"1\"\n"},
		{"similarity", "b\tp\tm\ts\ta\tNN\t0:4\t1\thigh\t\"S\"\t\"9606\"\t\"1\"\n"},
		{"quote", "b\tp\tm\ts\ta\tNN\t0:4\t1\t0.5\tS\t\"9606\"\t\"1\"\n"},
		{"taxon", "b\tp\tm\ts\ta\tNN\t0:4\t1\t0.5\t\"S\"\t\"human\"\t\"1\"\n"},
		{"identifier", "b\tp\tm\ts\ta\tNN\t0:4\tNOT_AN_ID\t0.5\t\"S\"\t\"9606\"\t\"1\"\n"},
		{"entrez", "b\tp\tm\ts\ta\tNN\t0:4\t7157\t0.5\t\"S\"\t\"9606\"\tuni=\"P04637\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := annotation.ParseGeneMentions(strings.NewReader("\n"+tt.line), "genes.tsv")
			if err == nil {
				t.Fatal("expected an error")
			}
			merr, ok := err.(annotation.MalformedRecordError)
			if !ok {
				t.Fatalf("expected a MalformedRecordError, got %T", err)
			}
			if merr.Path != "genes.tsv" || merr.Line != 2 {
				t.Errorf("error at %s:%d, want genes.tsv:2", merr.Path, merr.Line)
			}
		})
	}
}

func TestParseSpans(t *testing.T) {
	spans, err := annotation.ParseSpans(strings.NewReader("p53\t0:4\tprotein\t1.0\nThe p53 gene.\t0:13\tsentence\t1\r\n"), "ner.tsv")
	if err != nil {
		t.Fatal(err)
	}
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if annotation.ParseEntityType(spans[0].Label) != annotation.Protein {
		t.Errorf("expected protein, got %s", spans[0].Label)
	}
	if spans[1].Label != "sentence" {
		t.Errorf("expected sentence, got %q", spans[1].Label)
	}
	if annotation.ParseEntityType("sentence") != annotation.Untyped {
		t.Error("unknown labels should be untyped")
	}
}

func TestReadLinkoutsAndCounters(t *testing.T) {
	dir := t.TempDir()
	links := dir + "/links.txt"
	if err := os.WriteFile(links, []byte("7157 12\n06622\t3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	ll, err := annotation.ReadLinkouts(links)
	if err != nil {
		t.Fatal(err)
	}
	if len(ll) != 2 || ll[0].Count != 12 || ll[1].ID != "6622" {
		t.Errorf("unexpected linkouts %+v", ll)
	}

	counters := dir + "/counters.tsv"
	if err := os.WriteFile(counters, []byte("7157\tTP53\t40\t100\n7157\tp53\tx\t1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err = annotation.ReadCounters(counters)
	merr, ok := err.(annotation.MalformedRecordError)
	if !ok || merr.Line != 2 {
		t.Errorf("expected a malformed record on line 2, got %v", err)
	}
}

func TestParseGeneMentionsCanonicalIdentifiers(t *testing.T) {
	line := "b\tp\tTP53\ts\ta\tNN\t0:4\t 07157\t0.5\tsymbol=\"TP53\"\ttaxId=\"9606\"\tuni=\"007157\"\n"
	mentions, err := annotation.ParseGeneMentions(strings.NewReader(line), "genes.tsv")
	if err != nil {
		t.Fatal(err)
	}
	if mentions[0].ID != "7157" || mentions[0].Entrez != "7157" {
		t.Errorf("identifiers not canonical: %q %q", mentions[0].ID, mentions[0].Entrez)
	}
}

func TestReadGoldCanonical(t *testing.T) {
	gold := t.TempDir() + "/gold.tsv"
	if err := os.WriteFile(gold, []byte("doc1\t07157\ndoc1\t 6622\n"), 0644); err != nil {
		t.Fatal(err)
	}
	items, err := annotation.ReadGold(gold)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 || items[0].Entrez != "7157" || items[1].Entrez != "6622" {
		t.Errorf("unexpected gold %+v", items)
	}

	if err := os.WriteFile(gold, []byte("doc1\t7157\ndoc1\tP04637\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err = annotation.ReadGold(gold)
	if merr, ok := err.(annotation.MalformedRecordError); !ok || merr.Line != 2 {
		t.Errorf("expected a malformed record on line 2, got %v", err)
	}
}

func TestParseSpansLongLine(t *testing.T) {
	long := "p53\t0:4\tprotein\t1.0\n" + strings.Repeat("x", 17*1024*1024) + "\t0:1\tprotein\t1\n"
	_, err := annotation.ParseSpans(strings.NewReader(long), "ner.tsv")
	merr, ok := err.(annotation.MalformedRecordError)
	if !ok {
		t.Fatalf("expected a MalformedRecordError, got %v", err)
	}
	if merr.Path != "ner.tsv" || merr.Line != 2 {
		t.Errorf("error at %s:%d, want ner.tsv:2", merr.Path, merr.Line)
	}
}
