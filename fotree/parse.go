package fotree

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/npillmayer/fo/property"
	"github.com/npillmayer/fo/value"
)

// NamespaceFO is the namespace of XSL formatting objects.
const NamespaceFO = "http://www.w3.org/1999/XSL/Format"

// ErrNoFormattingObjects is returned by Parse if a document has no root
// element in the fo: namespace.
var ErrNoFormattingObjects = errors.New("document contains no formatting objects")

// Parse reads an XSL-FO document and returns the root of its formatting
// tree. Elements and attributes of foreign namespaces are skipped. The
// root is given the extent of the page, taken from the first
// simple-page-master or else from the configuration.
func Parse(r io.Reader, conf property.Config) (*Node, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("reading XSL-FO document: %w", err)
	}
	el := doc.Root()
	if el == nil || !isFO(el) {
		return nil, ErrNoFormattingObjects
	}
	root := build(el)
	w, h, err := pageExtent(root, conf)
	if err != nil {
		return nil, err
	}
	root.SetExtent(w, h)
	setExtents(root, w, h)
	tracer().Debugf("parsed formatting tree with root %s, page %s x %s", root.name, w, h)
	return root, nil
}

func build(el *etree.Element) *Node {
	n := NewNode(el.Tag, attributes(el))
	for _, ch := range el.ChildElements() {
		if !isFO(ch) {
			tracer().Debugf("skipping foreign element %s", ch.FullTag())
			continue
		}
		n.Append(build(ch))
	}
	return n
}

func isFO(el *etree.Element) bool {
	return el.NamespaceURI() == NamespaceFO
}

func attributes(el *etree.Element) map[string]string {
	attrs := make(map[string]string, len(el.Attr))
	for _, a := range el.Attr {
		if a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns") {
			continue
		}
		if a.Space != "" && a.NamespaceURI() != NamespaceFO {
			continue // foreign attribute
		}
		attrs[a.Key] = strings.TrimSpace(a.Value)
	}
	return attrs
}

// pageExtent finds the page size for the root reference area.
func pageExtent(root *Node, conf property.Config) (w, h value.Length, err error) {
	wtext, htext := conf.PageWidth, conf.PageHeight
	if spm := findFirst(root, "simple-page-master"); spm != nil {
		if t, ok := spm.attrs["page-width"]; ok && t != "auto" {
			wtext = t
		}
		if t, ok := spm.attrs["page-height"]; ok && t != "auto" {
			htext = t
		}
	}
	if w, err = property.EvalLength(wtext); err != nil {
		return w, h, fmt.Errorf("page width: %w", err)
	}
	if h, err = property.EvalLength(htext); err != nil {
		return w, h, fmt.Errorf("page height: %w", err)
	}
	return w, h, nil
}

// setExtents gives an extent to every node specifying an absolute width or
// height. An unspecified dimension is taken from the enclosing area.
func setExtents(n *Node, w, h value.Length) {
	for _, ch := range n.ChildFOs() {
		cw, cwok := absoluteAttr(ch, "width")
		ch2, chok := absoluteAttr(ch, "height")
		if !cwok {
			cw = w
		}
		if !chok {
			ch2 = h
		}
		if cwok || chok {
			ch.SetExtent(cw, ch2)
		}
		setExtents(ch, cw, ch2)
	}
}

func absoluteAttr(n *Node, name string) (value.Length, bool) {
	text, ok := n.attrs[name]
	if !ok || text == "auto" || strings.Contains(text, "%") {
		return value.ZeroLength, false
	}
	l, err := property.EvalLength(text)
	if err != nil {
		return value.ZeroLength, false
	}
	return l, true
}

func findFirst(n *Node, name string) *Node {
	if n.name == name {
		return n
	}
	for _, ch := range n.ChildFOs() {
		if found := findFirst(ch, name); found != nil {
			return found
		}
	}
	return nil
}
