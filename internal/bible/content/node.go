// Package content models the nested document tree returned by API.Bible
// passage endpoints and flattens it into chat-ready display text.
package content

import (
	"encoding/json"
	"fmt"
)

// NodeType discriminates tree nodes.
type NodeType string

const (
	// NodeText is a plain text leaf.
	NodeText NodeType = "text"
	// NodeTag is a tagged container holding ordered children.
	NodeTag NodeType = "tag"
)

// Node is one node of the document tree: either a text leaf or a tagged
// container ("para", "verse", ...) with string attributes and ordered
// children.
type Node struct {
	Type  NodeType
	Name  string
	Text  string
	Attrs map[string]string
	Items []Node
}

// UnmarshalJSON decodes the wire shape, normalizing attribute values to
// strings (the backend emits verse numbers both as strings and as numbers).
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type  string         `json:"type"`
		Name  string         `json:"name"`
		Text  string         `json:"text"`
		Attrs map[string]any `json:"attrs"`
		Items []Node         `json:"items"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode content node: %w", err)
	}
	n.Name = raw.Name
	n.Text = raw.Text
	n.Items = raw.Items
	if raw.Type == string(NodeText) || (raw.Type == "" && raw.Text != "") {
		n.Type = NodeText
	} else {
		n.Type = NodeTag
	}
	if len(raw.Attrs) > 0 {
		n.Attrs = make(map[string]string, len(raw.Attrs))
		for k, v := range raw.Attrs {
			switch val := v.(type) {
			case string:
				n.Attrs[k] = val
			case float64:
				n.Attrs[k] = fmt.Sprintf("%.0f", val)
			default:
				n.Attrs[k] = fmt.Sprint(val)
			}
		}
	}
	return nil
}

// Attr returns the named attribute or "".
func (n Node) Attr(key string) string {
	return n.Attrs[key]
}
