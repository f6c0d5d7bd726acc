package nav

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docnav/internal/errors"
)

// MarshalYAML encodes the set as a mapping keyed by sidebar name. It builds a
// yaml.Node directly so sidebar order survives encoding.
func (s *SidebarSet) MarshalYAML() (any, error) {
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, sb := range s.Sidebars() {
		root.Content = append(root.Content, strNode(sb.name), itemsNode(sb.items))
	}
	return root, nil
}

func strNode(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func itemsNode(items []Node) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, n := range items {
		switch v := n.(type) {
		case DocumentReference:
			seq.Content = append(seq.Content, strNode(v.id))
		case Category:
			seq.Content = append(seq.Content, &yaml.Node{
				Kind: yaml.MappingNode,
				Tag:  "!!map",
				Content: []*yaml.Node{
					strNode("type"), strNode(string(KindCategory)),
					strNode("label"), strNode(v.label),
					strNode("items"), itemsNode(v.items),
				},
			})
		}
	}
	return seq
}

// UnmarshalYAML decodes a mapping keyed by sidebar name, in document order.
func (s *SidebarSet) UnmarshalYAML(value *yaml.Node) error {
	value = resolve(value)
	if value.Kind != yaml.MappingNode {
		return errors.MalformedNode(position("sidebars", value), "expected a mapping keyed by sidebar name")
	}

	sidebars := make([]Sidebar, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		name := value.Content[i].Value
		items, err := decodeYAMLItems(name, value.Content[i+1])
		if err != nil {
			return err
		}
		sidebars = append(sidebars, NewSidebar(name, items...))
	}

	set, err := NewSidebarSet(sidebars...)
	if err != nil {
		return errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "invalid sidebar set")
	}
	*s = *set
	return nil
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return n
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		default:
			return n
		}
	}
	return &yaml.Node{}
}

func position(loc string, n *yaml.Node) string {
	if n == nil || n.Line == 0 {
		return loc
	}
	return fmt.Sprintf("%s (line %d)", loc, n.Line)
}

func decodeYAMLItems(location string, seq *yaml.Node) ([]Node, error) {
	seq = resolve(seq)
	if seq.Kind != yaml.SequenceNode {
		return nil, errors.MalformedNode(position(location, seq), "expected a list of items")
	}
	items := make([]Node, 0, len(seq.Content))
	for i, el := range seq.Content {
		n, err := decodeYAMLNode(fmt.Sprintf("%s[%d]", location, i), el)
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, nil
}

func decodeYAMLNode(loc string, el *yaml.Node) (Node, error) {
	el = resolve(el)
	switch el.Kind {
	case yaml.ScalarNode:
		if el.Tag == "!!null" {
			return nil, errors.MalformedNode(position(loc, el), "document id must not be null")
		}
		return NewDocumentReference(el.Value), nil
	case yaml.MappingNode:
		return decodeYAMLMapping(loc, el)
	default:
		return nil, errors.MalformedNode(position(loc, el), "expected a document id or a mapping")
	}
}

func decodeYAMLMapping(loc string, m *yaml.Node) (Node, error) {
	fields := make(map[string]*yaml.Node, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		fields[m.Content[i].Value] = m.Content[i+1]
	}

	// Shorthand category: { Label: [ ...items ] }
	if _, typed := fields["type"]; !typed && len(fields) == 1 {
		label := m.Content[0].Value
		items, err := decodeYAMLItems(loc+"."+label, m.Content[1])
		if err != nil {
			return nil, err
		}
		return NewCategory(label, items...), nil
	}

	scalar := func(key string) string {
		if n, ok := fields[key]; ok {
			return resolve(n).Value
		}
		return ""
	}

	kind := NodeKind(scalar("type"))
	if _, known := objectKeys[kind]; known {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		if k := unexpectedKey(kind, keys); k != "" {
			return nil, errors.MalformedNode(position(loc, m), fmt.Sprintf("unsupported %s key %q", kind, k))
		}
	}
	switch kind {
	case KindDoc:
		return NewDocumentReference(scalar("id")), nil
	case KindCategory:
		itemsField, ok := fields["items"]
		if !ok {
			return nil, errors.MalformedNode(position(loc, m), "category has no items list")
		}
		label := scalar("label")
		items, err := decodeYAMLItems(loc+"."+label, itemsField)
		if err != nil {
			return nil, err
		}
		return NewCategory(label, items...), nil
	default:
		return nil, errors.MalformedNode(position(loc, m), fmt.Sprintf("unsupported item type %q", scalar("type")))
	}
}
