package output_test

import (
	"bytes"
	"github.com/txtfnnl/generank/learning"
	"github.com/txtfnnl/generank/output"
	"testing"
)

func TestRankFormatter(t *testing.T) {
	var buff bytes.Buffer
	f := output.NewRankFormatter(&buff)
	rows := []learning.LearntFeature{
		{Features: learning.Features{learning.NewFeature(1, 1), learning.NewFeature(2, 0.125)}, Label: 1, Query: 2},
		{Features: learning.Features{learning.NewFeature(1, 0), learning.NewFeature(2, 1)}, Label: 0, Query: 2, Comment: "doc1"},
	}
	n, err := f.Format(rows)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("expected 2 rows, got %d", n)
	}
	want := "1 qid:2 1:1.00000000 2:0.12500000\n0 qid:2 1:0.00000000 2:1.00000000 # doc1\n"
	if buff.String() != want {
		t.Errorf("got %q, want %q", buff.String(), want)
	}
	if n, err := f.Format(nil); err != nil || n != 0 {
		t.Errorf("an empty block writes nothing, got %d %v", n, err)
	}
}
