package library

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/agentstation/songmap/pkg/errors"
)

// node is a generic element of a plist document.
type node struct {
	XMLName xml.Name
	Content string `xml:",chardata"`
	Nodes   []node `xml:",any"`
}

func (n node) name() string {
	return n.XMLName.Local
}

func (n node) text() string {
	return strings.TrimSpace(n.Content)
}

// decodePlist parses the whole export into a node tree.
func decodePlist(r io.Reader, file string) (*node, error) {
	var root node
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, errors.WrapParse("xml", file, err)
	}
	if root.name() != "plist" {
		return nil, errors.NewParseError("xml", file, "root element is "+root.name()+", want plist", nil)
	}
	return &root, nil
}

// tracks returns the dict holding one run per track. It is the value of
// the "Tracks" key, or the first dict of the top level dict when that
// key is absent.
func (n *node) tracks() (node, bool) {
	var top *node
	for i := range n.Nodes {
		if n.Nodes[i].name() == "dict" {
			top = &n.Nodes[i]
			break
		}
	}
	if top == nil {
		return node{}, false
	}

	var first *node
	for i, child := range top.Nodes {
		if child.name() == "key" && child.text() == "Tracks" && i+1 < len(top.Nodes) && top.Nodes[i+1].name() == "dict" {
			return top.Nodes[i+1], true
		}
		if child.name() == "dict" && first == nil {
			first = &top.Nodes[i]
		}
	}
	if first == nil {
		return node{}, false
	}
	return *first, true
}

// isRun reports whether a dict is a track run, marked by a leading
// "Track ID" key.
func isRun(n node) bool {
	return n.name() == "dict" && len(n.Nodes) > 0 && n.Nodes[0].name() == "key" && n.Nodes[0].text() == "Track ID"
}

// pairs reads the alternating key/value children of a run. The reason is
// empty when the run is well formed.
func pairs(run node) (map[string]any, string) {
	if len(run.Nodes) == 0 {
		return nil, "empty run"
	}
	if len(run.Nodes)%2 != 0 {
		return nil, "odd number of children"
	}

	out := make(map[string]any, len(run.Nodes)/2)
	for i := 0; i < len(run.Nodes); i += 2 {
		key := run.Nodes[i]
		if key.name() != "key" {
			return nil, "expected key, got " + key.name()
		}
		out[key.text()] = value(run.Nodes[i+1])
	}
	return out, ""
}

// value converts a plist value element.
func value(n node) any {
	switch n.name() {
	case "integer":
		if v, err := strconv.Atoi(n.text()); err == nil {
			return v
		}
	case "real":
		if v, err := strconv.ParseFloat(n.text(), 64); err == nil {
			return v
		}
	case "true":
		return true
	case "false":
		return false
	}
	return n.text()
}
