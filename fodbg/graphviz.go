package fodbg

import (
	"fmt"
	"html"
	"io"
	"text/template"

	"github.com/npillmayer/fo/fotree"
	"github.com/npillmayer/fo/property"
)

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname  string
	NodeTmpl  *template.Template
	EdgeTmpl  *template.Template
	PropsTmpl *template.Template
}

// ToGraphViz outputs a diagram for a formatting tree. The diagram is in
// GraphViz (DOT) format. Every node is connected to a table of the given
// properties, or of its explicit properties if names is empty.
func ToGraphViz(w io.Writer, root *fotree.Node, reg *property.Registry, names []string) error {
	head, err := template.New("fotree").Parse(graphHeadTmpl)
	if err != nil {
		return err
	}
	gparams := graphParamsType{Fontname: "Helvetica"}
	gparams.NodeTmpl = template.Must(template.New("fonode").Parse(foNodeTmpl))
	gparams.EdgeTmpl = template.Must(template.New("foedge").Parse(foEdgeTmpl))
	gparams.PropsTmpl = template.Must(template.New("props").Funcs(
		template.FuncMap{
			"escape": html.EscapeString,
		}).Parse(propsTmpl))
	if err = head.Execute(w, gparams); err != nil {
		return err
	}
	g := &grapher{w: w, reg: reg, names: names, params: &gparams,
		dict: make(map[*fotree.Node]string, 256)}
	if err = g.nodes(root); err != nil {
		return err
	}
	_, err = io.WriteString(w, "}\n")
	return err
}

type grapher struct {
	w      io.Writer
	reg    *property.Registry
	names  []string
	params *graphParamsType
	dict   map[*fotree.Node]string
}

type node struct {
	N     *fotree.Node
	Name  string
	Props []propertyValue
}

type edge struct {
	N1, N2 string
}

func (g *grapher) nodes(n *fotree.Node) error {
	if err := g.node(n); err != nil {
		return err
	}
	for _, ch := range n.ChildFOs() {
		if err := g.nodes(ch); err != nil {
			return err
		}
		if err := g.params.EdgeTmpl.Execute(g.w, edge{g.dict[n], g.dict[ch]}); err != nil {
			return err
		}
	}
	return nil
}

func (g *grapher) node(n *fotree.Node) error {
	name := fmt.Sprintf("node%05d", len(g.dict)+1)
	g.dict[n] = name
	nd := node{N: n, Name: name, Props: propertiesOf(n, g.reg, g.names)}
	if err := g.params.NodeTmpl.Execute(g.w, &nd); err != nil {
		return err
	}
	if len(nd.Props) == 0 {
		return nil
	}
	return g.params.PropsTmpl.Execute(g.w, &nd)
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [fontname = "{{ .Fontname }}" fontsize=14] ;
   node [fontname = "{{ .Fontname }}" fontsize=14] ;
   edge [fontname = "{{ .Fontname }}" fontsize=14] ;
`

const foNodeTmpl = `{{ .Name }}	[ label={{ printf "%q" .N.ElementName }} shape=ellipse style=filled fillcolor=lightblue3 ] ;
`

const propsTmpl = `{{ .Name }}_props [ style="filled" penwidth=1 fillcolor="ivory3" shape="Mrecord" fontsize=12
    label=<<table border="0" cellborder="0" cellpadding="2" cellspacing="0" bgcolor="ivory3">
      {{ range .Props }}
      <tr><td align="right">{{ .Name }}:</td><td><font color="{{ .Color }}">{{ escape .Value }}</font></td></tr>
      {{ end }}
    </table>> ] ;
{{ .Name }} -> {{ .Name }}_props [dir=none weight=1 style="dashed"] ;
`

const foEdgeTmpl = `{{ .N1 }} -> {{ .N2 }} [weight=1] ;
`
