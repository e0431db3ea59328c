/*
Package storedbg implements helpers to debug a mirrored element forest.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package storedbg

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"
	"text/template"

	"github.com/npillmayer/elemtree/store"
)

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname  string
	NodeTmpl  *template.Template
	EdgeTmpl  *template.Template
	OwnerTmpl *template.Template
}

// ToGraphViz outputs a diagram for the forest of a store. The diagram is in
// GraphViz (DOT) format. Elements are connected to their children by solid
// edges and to their owners by dashed edges. Collapsed elements are drawn
// in grey, elements with errors or warnings in red.
func ToGraphViz(s *store.Store, w io.Writer) error {
	tmpl, err := template.New("store").Parse(graphHeadTmpl)
	if err != nil {
		return err
	}
	gparams := graphParamsType{Fontname: "Helvetica"}
	gparams.NodeTmpl = template.Must(template.New("element").Funcs(
		template.FuncMap{
			"shortstring": shortText,
		}).Parse(elementTmpl))
	gparams.EdgeTmpl = template.Must(template.New("edge").Parse(childEdgeTmpl))
	gparams.OwnerTmpl = template.Must(template.New("owner").Parse(ownerEdgeTmpl))
	if err = tmpl.Execute(w, gparams); err != nil {
		return err
	}
	var owned []edge
	for _, rootID := range s.Roots() {
		s.TopDown(rootID, func(el *store.Element) {
			if err != nil {
				return
			}
			if err = elementNode(s, el, w, &gparams); err != nil {
				return
			}
			for _, chid := range el.Children {
				if err = gparams.EdgeTmpl.Execute(w, edge{el.ID, chid}); err != nil {
					return
				}
			}
			if el.OwnerID > 0 && s.Contains(el.OwnerID) {
				owned = append(owned, edge{el.OwnerID, el.ID})
			}
		})
		if err != nil {
			return err
		}
	}
	for _, e := range owned {
		if err = gparams.OwnerTmpl.Execute(w, e); err != nil {
			return err
		}
	}
	_, err = w.Write([]byte("}\n"))
	return err
}

// Dotty is a helper for testing. Given a store and a testing.T, it will
// create a Graphiviz image of the forest and write it to a file in the
// current folder, choosing a unique file name.
// The image is in SVG format.
//
// If an error occurs, t.Error(…) will be set, causing the test to fail.
func Dotty(s *store.Store, t *testing.T) {
	tmpfile, err := os.CreateTemp(".", "store.*.dot")
	if err != nil {
		t.Error(err)
		return
	}
	defer func() {
		tmpfile.Close()
		os.Remove(tmpfile.Name()) // clean up
	}()
	t.Logf("writing store digraph to %s\n", tmpfile.Name())
	if err = ToGraphViz(s, tmpfile); err != nil {
		t.Error(err)
		return
	}
	outOption := fmt.Sprintf("-o%s.svg", tmpfile.Name())
	cmd := exec.Command("dot", "-Tsvg", outOption, tmpfile.Name())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	t.Logf("writing forest image to %s.svg\n", tmpfile.Name())
	if err := cmd.Run(); err != nil {
		t.Error(err.Error())
	}
}

type node struct {
	El          *store.Element
	Name        string
	Diagnostics bool
}

type edge struct {
	From, To int
}

func elementNode(s *store.Store, el *store.Element, w io.Writer, gparams *graphParamsType) error {
	name := el.DisplayName
	if name == "" {
		name = el.Type.String()
	}
	_, diag := s.DiagnosticsFor(el.ID)
	return gparams.NodeTmpl.Execute(w, &node{El: el, Name: name, Diagnostics: diag})
}

func shortText(s string) string {
	if len(s) > 20 {
		s = s[:20] + "..."
	}
	s = strings.Replace(s, "\n", `\n`, -1)
	s = strings.Replace(s, "\t", `\t`, -1)
	return fmt.Sprintf("%q", s)
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "TB"];
  graph [fontname = "{{ .Fontname }}" fontsize=14] ;
   node [fontname = "{{ .Fontname }}" fontsize=14] ;
   edge [fontname = "{{ .Fontname }}" fontsize=14] ;
`

const elementTmpl = `{{ if .El.IsRoot }}
e{{ .El.ID }}	[ label="root #{{ .El.ID }}" shape=box style=filled fillcolor=lightblue3 ] ;
{{ else }}
e{{ .El.ID }}	[ label={{ shortstring .Name }} shape=ellipse style=filled fillcolor={{ if .Diagnostics }}salmon{{ else if .El.IsCollapsed }}grey85{{ else }}ivory{{ end }} ] ;
{{ end }}`

const childEdgeTmpl = `e{{ .From }} -> e{{ .To }} [weight=1] ;
`

const ownerEdgeTmpl = `e{{ .From }} -> e{{ .To }} [weight=0 style="dashed" color="azure4" constraint=false] ;
`
