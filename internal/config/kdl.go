package config

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// parseKDL reads a document of the form
//
//	noid {
//	    template "zeeddk"
//	    scheme "ark:/"
//	    naa "13030"
//	}
func parseKDL(data []byte) (section, error) {
	doc, err := kdl.Parse(bytes.NewReader(data))
	if err != nil {
		return section{}, fmt.Errorf("failed to parse KDL config: %w", err)
	}

	var sec section
	for _, n := range doc.Nodes {
		if nodeName(n) != Section {
			continue
		}
		sec.found = true
		for _, cn := range n.Children {
			if v, ok := firstScalarArg(cn); ok {
				sec.add(nodeName(cn), v)
			}
		}
	}
	return sec, nil
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

// firstScalarArg returns the first argument of n in string form. Numbers are
// accepted so that `naa 13030` works without quotes.
func firstScalarArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	switch v := n.Arguments[0].Value.(type) {
	case string:
		return v, true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	case nil:
		return "", true
	default:
		return fmt.Sprint(v), true
	}
}

func writeKDL(cfg *Config) []byte {
	var b strings.Builder
	b.WriteString(Section + " {\n")
	for _, key := range Keys {
		fmt.Fprintf(&b, "    %s %s\n", key, strconv.Quote(cfg.Get(key)))
	}
	b.WriteString("}\n")
	return []byte(b.String())
}
