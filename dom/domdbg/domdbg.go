/*
Package domdbg implements helpers to debug a DOM tree.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>


*/
package domdbg

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"
	"text/template"

	"github.com/npillmayer/htree"
	"github.com/npillmayer/htree/dom"
	"github.com/xlab/treeprint"
)

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname  string
	Styles    bool
	NodeTmpl  *template.Template
	EdgeTmpl  *template.Template
	StyleTmpl *template.Template
}

// ToGraphViz outputs a diagram for a DOM tree. The diagram is in
// GraphViz (DOT) format. Clients have to provide the root node of
// the DOM and a Writer. If withStyles is set, the declarations of
// style attributes are drawn next to their elements.
func ToGraphViz(doc *dom.W3CNode, w io.Writer, withStyles bool) error {
	tmpl, err := template.New("dom").Parse(graphHeadTmpl)
	if err != nil {
		return err
	}
	gparams := graphParamsType{Fontname: "Helvetica", Styles: withStyles}
	gparams.NodeTmpl = template.Must(template.New("domnode").Funcs(
		template.FuncMap{
			"shortstring": shortText,
		}).Parse(domNodeTmpl))
	gparams.EdgeTmpl = template.Must(template.New("domedge").Parse(domEdgeTmpl))
	gparams.StyleTmpl = template.Must(template.New("style").Parse(styleTmpl))
	if err = tmpl.Execute(w, gparams); err != nil {
		return err
	}
	dict := make(map[htree.Key]string, 4096)
	if err = nodes(doc, w, dict, &gparams); err != nil {
		return err
	}
	_, err = w.Write([]byte("}\n"))
	return err
}

// Dotty is a helper for testing. Given a DOM node and a testing.T, it will
// create a Graphiviz image of the DOM tree under `doc` and write it to
// a file in the current folder, choosing a unique file name.
// The image is in SVG format.
//
// If an error occurs, t.Error(…) will be set, causing the test to fail.
func Dotty(doc *dom.W3CNode, t *testing.T) {
	tmpfile, err := os.CreateTemp(".", "dom.*.dot")
	if err != nil {
		t.Error(err)
		return
	}
	defer func() {
		tmpfile.Close()
		os.Remove(tmpfile.Name()) // clean up
	}()
	t.Logf("writing DOM digraph to %s\n", tmpfile.Name())
	if err := ToGraphViz(doc, tmpfile, true); err != nil {
		t.Error(err)
		return
	}
	outOption := fmt.Sprintf("-o%s.svg", tmpfile.Name())
	cmd := exec.Command("dot", "-Tsvg", outOption, tmpfile.Name())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	t.Logf("writing DOM tree image to %s.svg\n", tmpfile.Name())
	if err := cmd.Run(); err != nil {
		t.Error(err.Error())
	}
}

type node struct {
	N    *dom.W3CNode
	Name string
}

func nodes(n *dom.W3CNode, w io.Writer, dict map[htree.Key]string, gparams *graphParamsType) error {
	if err := domNode(n, w, dict, gparams); err != nil {
		return err
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		ch := c.(*dom.W3CNode)
		if err := nodes(ch, w, dict, gparams); err != nil {
			return err
		}
		if err := domEdge(n, ch, w, dict, gparams); err != nil {
			return err
		}
	}
	return nil
}

func nameOf(n *dom.W3CNode, dict map[htree.Key]string) string {
	key := n.Handle().Key()
	name := dict[key]
	if name == "" {
		name = fmt.Sprintf("node%05d", len(dict)+1)
		dict[key] = name
	}
	return name
}

func domNode(n *dom.W3CNode, w io.Writer, dict map[htree.Key]string, gparams *graphParamsType) error {
	name := nameOf(n, dict)
	if err := gparams.NodeTmpl.Execute(w, &node{n, name}); err != nil {
		return err
	}
	if !gparams.Styles || n.Style().Length() == 0 {
		return nil
	}
	return gparams.StyleTmpl.Execute(w, styleRecord(name, n))
}

type declaration struct {
	Key, Value string
}

type style struct {
	Name         string
	Declarations []declaration
}

func styleRecord(name string, n *dom.W3CNode) style {
	decls := n.Style()
	s := style{Name: name}
	for i := 0; i < decls.Length(); i++ {
		key := decls.Item(i)
		s.Declarations = append(s.Declarations, declaration{key, decls.GetPropertyValue(key)})
	}
	return s
}

type edge struct {
	N1, N2 node
}

func domEdge(n1 *dom.W3CNode, n2 *dom.W3CNode, w io.Writer, dict map[htree.Key]string,
	gparams *graphParamsType) error {
	//
	e := edge{node{n1, nameOf(n1, dict)}, node{n2, nameOf(n2, dict)}}
	return gparams.EdgeTmpl.Execute(w, e)
}

func shortText(n *dom.W3CNode) string {
	data := n.NodeValue()
	s := "\"\\\""
	if len(data) > 10 {
		s += data[:10] + "...\\\"\""
	} else {
		s += data + "\\\"\""
	}
	s = strings.Replace(s, "\n", `\\n`, -1)
	s = strings.Replace(s, "\t", `\\t`, -1)
	s = strings.Replace(s, " ", "␣", -1)
	return s
}

// --- Tree print ------------------------------------------------------------

// Print writes an indented outline of the tree under n to w.
// Elements are printed with their attributes and source position.
func Print(n *dom.W3CNode, w io.Writer) error {
	tree := treeprint.NewWithRoot(label(n))
	outline(n, tree)
	_, err := io.WriteString(w, tree.String())
	return err
}

func outline(n *dom.W3CNode, branch treeprint.Tree) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		ch := c.(*dom.W3CNode)
		if ch.HasChildNodes() {
			outline(ch, branch.AddBranch(label(ch)))
		} else {
			branch.AddNode(label(ch))
		}
	}
}

func label(n *dom.W3CNode) string {
	if !n.IsElement() {
		if n.NodeValue() == "" {
			return n.NodeName()
		}
		return fmt.Sprintf("%s %q", n.NodeName(), n.NodeValue())
	}
	var sb strings.Builder
	sb.WriteString("<" + n.NodeName())
	attrs := n.Attributes()
	for i := 0; i < attrs.Length(); i++ {
		a := attrs.Item(i)
		fmt.Fprintf(&sb, " %s=%q", a.Key(), a.Value())
	}
	sb.WriteString(">")
	if pos := n.Handle().AsElement().StartPos(); pos.IsValid() {
		fmt.Fprintf(&sb, " @%d:%d", pos.Line, pos.Column)
	}
	return sb.String()
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [fontname = "{{ .Fontname }}" fontsize=14] ;
   node [fontname = "{{ .Fontname }}" fontsize=14] ;
   edge [fontname = "{{ .Fontname }}" fontsize=14] ;
`

const domNodeTmpl = `{{ if .N.IsElement }}
{{ .Name }}	[ label={{ printf "%q" .N.NodeName }} shape=ellipse style=filled fillcolor=lightblue3 ] ;
{{ else }}
{{ .Name }}	[ label={{ shortstring .N }} shape=box style=filled fillcolor=grey95 fontname="Courier" fontsize=11.0 ] ;
{{ end }}
`

const styleTmpl = `{{ .Name }}_style [ style="filled" penwidth=1 fillcolor="ivory3" shape="Mrecord" fontsize=12
    label=<<table border="0" cellborder="0" cellpadding="2" cellspacing="0" bgcolor="ivory3">
      <tr><td bgcolor="azure4" align="center" colspan="2"><font color="white">style</font></td></tr>
      {{ range .Declarations }}
      <tr><td align="right">{{ .Key }}:</td><td>{{ .Value }}</td></tr>
      {{ end }}
    </table>> ] ;
{{ .Name }} -> {{ .Name }}_style [dir=none weight=1 style="dashed"] ;
`

const domEdgeTmpl = `{{ .N1.Name }} -> {{ .N2.Name }} [weight=1] ;
`
