package storedbg

import (
	"bytes"
	"os/exec"
	"strings"
	"testing"

	"github.com/npillmayer/elemtree/store"
	"github.com/npillmayer/elemtree/strtab"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestGraphViz(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "elemtree.store")
	defer teardown()
	//
	s := store.New()
	batch := []int{1, 0}
	batch = append(batch, strtab.Encode("App", "Button")...)
	batch = append(batch,
		1, 1, 11, 1, 0, 0, 0, // root 1
		1, 2, 5, 1, 0, 1, 0, // App, child of 1
		1, 3, 5, 2, 2, 2, 0, // Button, child of App, owned by App
		5, 3, 1, 0, // one error on Button
	)
	if _, err := s.ApplyBatch(batch); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := ToGraphViz(s, &buf); err != nil {
		t.Fatal(err)
	}
	dot := buf.String()
	t.Logf("\n%s", dot)
	for _, fragment := range []string{
		"digraph g {",
		`e1	[ label="root #1"`,
		`label="App"`,
		"e1 -> e2 [weight=1]",
		"e2 -> e3 [weight=1]",
		`e2 -> e3 [weight=0 style="dashed"`,
		"fillcolor=salmon",
	} {
		if !strings.Contains(dot, fragment) {
			t.Errorf("expected DOT output to contain %q", fragment)
		}
	}
	if !strings.HasSuffix(dot, "}\n") {
		t.Errorf("expected DOT output to be closed")
	}
	if _, err := exec.LookPath("dot"); err == nil {
		Dotty(s, t)
	}
}

func TestShortText(t *testing.T) {
	if s := shortText("a\tb"); s != `"a\\tb"` {
		t.Errorf("expected escaped tab, is %s", s)
	}
	if s := shortText("ConnectedComponentWithALongName"); !strings.HasSuffix(s, `..."`) {
		t.Errorf("expected long names to be shortened, is %s", s)
	}
}
