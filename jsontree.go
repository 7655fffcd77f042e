package editor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// NodeKind tags every value in a parsed JSON document so that the original
// scalar types survive a round trip through an edit form.
type NodeKind int

const (
	ObjectNode NodeKind = iota
	ArrayNode
	StringNode
	IntNode
	FloatNode
	BoolNode
	NullNode
)

// Node is one value in a schema-less JSON document. Objects remember their
// key order so that a load-edit-save cycle does not shuffle the file.
type Node struct {
	Kind NodeKind

	Keys     []string
	Children map[string]*Node

	Items []*Node

	Str   string
	Int   int64
	Float float64
	Bool  bool

	// raw number literal as it appeared in the source document
	raw string
}

func NewObjectNode() *Node {
	return &Node{
		Kind:     ObjectNode,
		Children: make(map[string]*Node),
	}
}

func (n *Node) SetKey(key string, child *Node) {
	if n.Children == nil {
		n.Children = make(map[string]*Node)
	}

	if _, ok := n.Children[key]; !ok {
		n.Keys = append(n.Keys, key)
	}

	n.Children[key] = child
}

// ParseDocument reads a JSON document into a Node tree, preserving object
// key order and the int/float distinction of every number.
func ParseDocument(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	node, err := parseValue(dec)

	if err != nil {
		return nil, err
	}

	return node, nil
}

func parseValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()

	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			node := NewObjectNode()

			for dec.More() {
				keyTok, err := dec.Token()

				if err != nil {
					return nil, err
				}

				key, ok := keyTok.(string)

				if !ok {
					return nil, errors.Errorf("editor: unexpected object key token: %v", keyTok)
				}

				child, err := parseValue(dec)

				if err != nil {
					return nil, err
				}

				node.SetKey(key, child)
			}

			// consume the closing brace
			if _, err := dec.Token(); err != nil {
				return nil, err
			}

			return node, nil
		case '[':
			node := &Node{Kind: ArrayNode}

			for dec.More() {
				child, err := parseValue(dec)

				if err != nil {
					return nil, err
				}

				node.Items = append(node.Items, child)
			}

			if _, err := dec.Token(); err != nil {
				return nil, err
			}

			return node, nil
		default:
			return nil, errors.Errorf("editor: unexpected delimiter: %v", t)
		}
	case string:
		return &Node{Kind: StringNode, Str: t}, nil
	case json.Number:
		if i, err := strconv.ParseInt(t.String(), 10, 64); err == nil {
			return &Node{Kind: IntNode, Int: i, raw: t.String()}, nil
		}

		f, err := t.Float64()

		if err != nil {
			return nil, err
		}

		return &Node{Kind: FloatNode, Float: f, raw: t.String()}, nil
	case bool:
		return &Node{Kind: BoolNode, Bool: t}, nil
	case nil:
		return &Node{Kind: NullNode}, nil
	default:
		return nil, errors.Errorf("editor: unexpected token: %v", tok)
	}
}

func (n *Node) MarshalJSON() ([]byte, error) {
	switch n.Kind {
	case ObjectNode:
		buf := bytes.NewBufferString("{")

		for i, key := range n.Keys {
			if i > 0 {
				buf.WriteString(",")
			}

			keyJSON, err := json.Marshal(key)

			if err != nil {
				return nil, err
			}

			buf.Write(keyJSON)
			buf.WriteString(":")

			childJSON, err := json.Marshal(n.Children[key])

			if err != nil {
				return nil, err
			}

			buf.Write(childJSON)
		}

		buf.WriteString("}")

		return buf.Bytes(), nil
	case ArrayNode:
		buf := bytes.NewBufferString("[")

		for i, item := range n.Items {
			if i > 0 {
				buf.WriteString(",")
			}

			itemJSON, err := json.Marshal(item)

			if err != nil {
				return nil, err
			}

			buf.Write(itemJSON)
		}

		buf.WriteString("]")

		return buf.Bytes(), nil
	case StringNode:
		return json.Marshal(n.Str)
	case IntNode:
		if n.raw != "" {
			return []byte(n.raw), nil
		}

		return []byte(strconv.FormatInt(n.Int, 10)), nil
	case FloatNode:
		if n.raw != "" {
			return []byte(n.raw), nil
		}

		return []byte(strconv.FormatFloat(n.Float, 'g', -1, 64)), nil
	case BoolNode:
		return json.Marshal(n.Bool)
	case NullNode:
		return []byte("null"), nil
	default:
		return nil, errors.Errorf("editor: unknown node kind: %d", n.Kind)
	}
}

// DisplayValue is the text shown in the field for a scalar node.
func (n *Node) DisplayValue() string {
	switch n.Kind {
	case StringNode:
		return n.Str
	case IntNode:
		return strconv.FormatInt(n.Int, 10)
	case FloatNode:
		if n.raw != "" {
			return n.raw
		}

		return strconv.FormatFloat(n.Float, 'g', -1, 64)
	case BoolNode:
		if n.Bool {
			return "True"
		}

		return "False"
	case NullNode:
		return ""
	default:
		return ""
	}
}

// ConfigRow is one rendered line of the generic config form: either a
// section header or an editable field keyed by its path from the document
// root.
type ConfigRow struct {
	Header bool
	Label  string

	Path      string
	IsBoolean bool
	Value     string
}

// Rows walks the subtree and produces one editable field per scalar leaf,
// with headers marking nested structure. Each field is keyed by its full
// dotted/indexed path, which Apply uses as the join key on the way back.
func (n *Node) Rows(parentKey string) []ConfigRow {
	var rows []ConfigRow

	switch n.Kind {
	case ObjectNode:
		for _, key := range n.Keys {
			child := n.Children[key]
			fullKey := joinPath(parentKey, key)

			switch child.Kind {
			case ObjectNode:
				rows = append(rows, ConfigRow{Header: true, Label: labelise(key)})
				rows = append(rows, child.Rows(fullKey)...)
			case ArrayNode:
				if child.allObjects() {
					for i, item := range child.Items {
						rows = append(rows, ConfigRow{Header: true, Label: fmt.Sprintf("%s [%d]", labelise(key), i)})
						rows = append(rows, item.Rows(fmt.Sprintf("%s[%d]", fullKey, i))...)
					}
				} else {
					for i, item := range child.Items {
						rows = append(rows, item.fieldRow(fmt.Sprintf("%s[%d]", key, i), fmt.Sprintf("%s[%d]", fullKey, i)))
					}
				}
			default:
				rows = append(rows, child.fieldRow(key, fullKey))
			}
		}
	case ArrayNode:
		for i, item := range n.Items {
			fullKey := fmt.Sprintf("%s[%d]", parentKey, i)

			if item.Kind == ObjectNode {
				rows = append(rows, ConfigRow{Header: true, Label: fmt.Sprintf("%s [%d]", labelise(parentKey), i)})
				rows = append(rows, item.Rows(fullKey)...)
			} else {
				rows = append(rows, item.fieldRow(strconv.Itoa(i), fullKey))
			}
		}
	default:
		rows = append(rows, n.fieldRow(parentKey, parentKey))
	}

	return rows
}

func (n *Node) fieldRow(label, path string) ConfigRow {
	return ConfigRow{
		Label:     labelise(label),
		Path:      path,
		IsBoolean: n.Kind == BoolNode,
		Value:     n.DisplayValue(),
	}
}

func (n *Node) allObjects() bool {
	for _, item := range n.Items {
		if item.Kind != ObjectNode {
			return false
		}
	}

	return len(n.Items) > 0
}

// Paths lists the path of every scalar leaf the forward walk would render.
func (n *Node) Paths(parentKey string) []string {
	var paths []string

	for _, row := range n.Rows(parentKey) {
		if !row.Header {
			paths = append(paths, row.Path)
		}
	}

	return paths
}

// Apply re-traverses the tree and, for every scalar position present in
// values, re-coerces the edited text to the original scalar's type. Numeric
// fields silently keep their old value if the text fails to parse; booleans
// match the "True" literal; everything else is kept as text. Paths absent
// from values are left unmodified.
func (n *Node) Apply(values map[string]string, parentKey string) {
	switch n.Kind {
	case ObjectNode:
		for _, key := range n.Keys {
			n.Children[key].Apply(values, joinPath(parentKey, key))
		}
	case ArrayNode:
		for i, item := range n.Items {
			item.Apply(values, fmt.Sprintf("%s[%d]", parentKey, i))
		}
	default:
		text, ok := values[parentKey]

		if !ok {
			return
		}

		n.applyScalar(text)
	}
}

func (n *Node) applyScalar(text string) {
	switch n.Kind {
	case BoolNode:
		n.Bool = text == "True"
	case IntNode:
		i, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)

		if err != nil {
			return
		}

		n.Int = i
		n.raw = strconv.FormatInt(i, 10)
	case FloatNode:
		f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)

		if err != nil {
			return
		}

		n.Float = f
		n.raw = strconv.FormatFloat(f, 'g', -1, 64)
	case StringNode:
		n.Str = text
	case NullNode:
		// a null leaf has no type to preserve: non-empty text becomes a string
		if text != "" {
			n.Kind = StringNode
			n.Str = text
		}
	}
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}

	return parent + "." + key
}

// labelise turns a snake_case key into a display label, matching the
// capitalisation of the list sidebar.
func labelise(key string) string {
	label := strings.ReplaceAll(key, "_", " ")

	if label == "" {
		return label
	}

	return strings.ToUpper(label[:1]) + strings.ToLower(label[1:])
}
