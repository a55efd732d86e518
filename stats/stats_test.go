package stats_test

import (
	"github.com/txtfnnl/generank/stats"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"testing"
)

func TestTransliterate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"α-synuclein", "alpha-synuclein"},
		{"TNF-α", "TNF-alpha"},
		{"Δ9-desaturase", "Delta9-desaturase"},
		{"PPARγ coactivator 1β", "PPARgamma coactivator 1beta"},
		{"TP53", "TP53"},
	}
	for _, tt := range tests {
		if got := stats.Transliterate(tt.in); got != tt.want {
			t.Errorf("Transliterate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if stats.HasGreek("TP53") {
		t.Error("TP53 has no Greek letters")
	}
	if !stats.HasGreek("α-synuclein") {
		t.Error("α-synuclein has a Greek letter")
	}
}

func TestResolver(t *testing.T) {
	counters, err := stats.LoadCounters("testdata/counters.tsv")
	if err != nil {
		t.Fatal(err)
	}
	r, err := stats.NewResolver(counters, 2)
	if err != nil {
		t.Fatal(err)
	}

	n, key, ok := r.Global("TP53")
	if !ok || n != 100 || key != "TP53" {
		t.Errorf("Global(TP53) = %d %q %v, first count 100 should win", n, key, ok)
	}

	for i := 0; i < 2; i++ {
		n, key, ok = r.Global("α-synuclein")
		if !ok || n != 30 || key != "alpha-synuclein" {
			t.Errorf("Global(α-synuclein) = %d %q %v", n, key, ok)
		}
	}

	if _, _, ok := r.Global("β-catenin"); ok {
		t.Error("β-catenin should not resolve")
	}
	if _, _, ok := r.Global("BRCA1"); ok {
		t.Error("BRCA1 should not resolve")
	}

	refs, err := r.References("6622", "α-synuclein")
	if err != nil || refs != 7 {
		t.Errorf("References(6622, α-synuclein) = %d, %v", refs, err)
	}
	if _, err := r.References("6622", "TP53"); err != stats.ErrUnknownReference {
		t.Errorf("expected ErrUnknownReference, got %v", err)
	}
	if _, err := r.References("42", "TP53"); err != stats.ErrUnknownIdentifier {
		t.Errorf("expected ErrUnknownIdentifier, got %v", err)
	}
}

func TestGold(t *testing.T) {
	g, err := stats.LoadGold("testdata/gold.tsv")
	if err != nil {
		t.Fatal(err)
	}
	if g.Len() != 2 || !g.Has("doc1") || g.Has("doc3") {
		t.Errorf("unexpected documents %v", g.Documents())
	}
	if !g.Contains("doc1", "6622") || g.Contains("doc2", "7157") {
		t.Error("unexpected gold membership")
	}

	q, err := stats.LoadQrels("testdata/gold.qrels")
	if err != nil {
		t.Fatal(err)
	}
	if !q.Contains("doc1", "7157") {
		t.Error("7157 is relevant for doc1")
	}
	if q.Contains("doc1", "6622") {
		t.Error("6622 is judged non-relevant for doc1")
	}
	if docs := q.Documents(); len(docs) != 2 || docs[0] != "doc1" || docs[1] != "doc2" {
		t.Errorf("unexpected documents %v", docs)
	}
}

func TestGoldLeadingZeros(t *testing.T) {
	dir := t.TempDir()
	tsv := filepath.Join(dir, "gold.tsv")
	if err := os.WriteFile(tsv, []byte("doc1\t07157\n"), 0644); err != nil {
		t.Fatal(err)
	}
	g, err := stats.LoadGold(tsv)
	if err != nil {
		t.Fatal(err)
	}
	if !g.Contains("doc1", "7157") {
		t.Error("07157 should match 7157")
	}

	qrels := filepath.Join(dir, "gold.qrels")
	if err := os.WriteFile(qrels, []byte("doc1 0 007157 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	q, err := stats.LoadQrels(qrels)
	if err != nil {
		t.Fatal(err)
	}
	if !q.Contains("doc1", "7157") {
		t.Error("007157 should match 7157")
	}
}

func TestLoadCorpusCached(t *testing.T) {
	files := stats.CorpusFiles{
		Gold:     "testdata/gold.tsv",
		Counters: "testdata/counters.tsv",
		Linkouts: "testdata/linkouts.txt",
	}
	logger := log.New(ioutil.Discard, "", 0)
	cache := stats.NewCache(t.TempDir())
	for i := 0; i < 2; i++ {
		c, err := stats.LoadCorpus(files, cache, logger)
		if err != nil {
			t.Fatal(err)
		}
		if c.Linkouts.Count("7157") != 120 || c.Linkouts.Count("6622") != 33 || c.Linkouts.Count("1") != 0 {
			t.Errorf("unexpected linkouts %v", c.Linkouts)
		}
		if c.Counters.Symbols["p53"] != 250 || c.Counters.References["7157"]["TP53"] != 40 {
			t.Errorf("unexpected counters %+v", c.Counters)
		}
	}
}
