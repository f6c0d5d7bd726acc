package nav

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"git.home.luguber.info/inful/docnav/internal/errors"
)

// categoryJSON is the generator's object form of a category. Field order
// matches what the generator's own examples use.
type categoryJSON struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	Items []any  `json:"items"`
}

// nodeJSON accepts every object form a sidebar element may take on input.
type nodeJSON struct {
	Type  string            `json:"type"`
	ID    string            `json:"id"`
	Label string            `json:"label"`
	Items []json.RawMessage `json:"items"`
}

// objectKeys lists the keys each object form of a node accepts.
var objectKeys = map[NodeKind][]string{
	KindDoc:      {"id", "type"},
	KindCategory: {"items", "label", "type"},
}

// unexpectedKey returns the first key, in sorted order, that the object form
// of kind does not accept, or "" when all keys are known.
func unexpectedKey(kind NodeKind, keys []string) string {
	slices.Sort(keys)
	for _, k := range keys {
		if !slices.Contains(objectKeys[kind], k) {
			return k
		}
	}
	return ""
}

// MarshalJSON encodes the set as an object keyed by sidebar name, keeping
// declaration order. Document references become plain strings.
func (s *SidebarSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sb := range s.Sidebars() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(sb.name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(encodeItems(sb.items))
		if err != nil {
			return nil, fmt.Errorf("sidebar %q: %w", sb.name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeItems(items []Node) []any {
	out := make([]any, 0, len(items))
	for _, n := range items {
		switch v := n.(type) {
		case DocumentReference:
			out = append(out, v.id)
		case Category:
			out = append(out, categoryJSON{Type: string(KindCategory), Label: v.label, Items: encodeItems(v.items)})
		}
	}
	return out
}

// UnmarshalJSON decodes an object keyed by sidebar name. Key order in the
// input becomes the declaration order of the set.
func (s *SidebarSet) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.MalformedNode("sidebars", "expected an object keyed by sidebar name")
	}

	var sidebars []Sidebar
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)
		var raw []json.RawMessage
		if err := dec.Decode(&raw); err != nil || raw == nil {
			return errors.MalformedNode(name, "sidebar value must be a list")
		}
		items, err := decodeJSONItems(name, raw)
		if err != nil {
			return err
		}
		sidebars = append(sidebars, NewSidebar(name, items...))
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	set, err := NewSidebarSet(sidebars...)
	if err != nil {
		return errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "invalid sidebar set")
	}
	*s = *set
	return nil
}

func decodeJSONItems(location string, raw []json.RawMessage) ([]Node, error) {
	items := make([]Node, 0, len(raw))
	for i, r := range raw {
		loc := fmt.Sprintf("%s[%d]", location, i)
		n, err := decodeJSONNode(loc, r)
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, nil
}

func decodeJSONNode(loc string, r json.RawMessage) (Node, error) {
	r = bytes.TrimSpace(r)
	if len(r) == 0 {
		return nil, errors.MalformedNode(loc, "empty element")
	}
	switch r[0] {
	case '"':
		var id string
		if err := json.Unmarshal(r, &id); err != nil {
			return nil, errors.MalformedNode(loc, err.Error())
		}
		return NewDocumentReference(id), nil
	case '{':
		return decodeJSONObject(loc, r)
	default:
		return nil, errors.MalformedNode(loc, "expected a document id or an object")
	}
}

func decodeJSONObject(loc string, r json.RawMessage) (Node, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(r, &probe); err != nil {
		return nil, errors.MalformedNode(loc, err.Error())
	}

	// Shorthand category: { "Label": [ ...items ] }
	if _, typed := probe["type"]; !typed && len(probe) == 1 {
		for label, body := range probe {
			var raw []json.RawMessage
			if err := json.Unmarshal(body, &raw); err != nil {
				return nil, errors.MalformedNode(loc, "shorthand category value must be a list")
			}
			items, err := decodeJSONItems(loc+"."+label, raw)
			if err != nil {
				return nil, err
			}
			return NewCategory(label, items...), nil
		}
	}

	var obj nodeJSON
	if err := json.Unmarshal(r, &obj); err != nil {
		return nil, errors.MalformedNode(loc, err.Error())
	}
	kind := NodeKind(obj.Type)
	if _, known := objectKeys[kind]; known {
		if k := unexpectedKey(kind, slices.Collect(maps.Keys(probe))); k != "" {
			return nil, errors.MalformedNode(loc, fmt.Sprintf("unsupported %s key %q", kind, k))
		}
	}
	switch kind {
	case KindDoc:
		return NewDocumentReference(obj.ID), nil
	case KindCategory:
		if obj.Items == nil {
			return nil, errors.MalformedNode(loc, "category has no items list")
		}
		items, err := decodeJSONItems(loc+"."+obj.Label, obj.Items)
		if err != nil {
			return nil, err
		}
		return NewCategory(obj.Label, items...), nil
	default:
		return nil, errors.MalformedNode(loc, fmt.Sprintf("unsupported item type %q", obj.Type))
	}
}
