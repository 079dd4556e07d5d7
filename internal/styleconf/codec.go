package styleconf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	nullTag  = "!!null"
	mergeTag = "!!merge"
)

// UnmarshalYAML decodes a role mapping while keeping key order. A bare string
// value is treated as a single-family chain.
func (m *FontRoleMap) UnmarshalYAML(value *yaml.Node) error {
	value = resolveAlias(value)
	if value.ShortTag() == nullTag {
		*m = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return nodeError(value, "fontFamily must be a mapping of role to family list")
	}

	roles := make(FontRoleMap, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := resolveAlias(value.Content[i])
		node := resolveAlias(value.Content[i+1])

		var families []string
		switch {
		case node.ShortTag() == nullTag:
		case node.Kind == yaml.ScalarNode:
			families = []string{node.Value}
		default:
			if err := node.Decode(&families); err != nil {
				return fmt.Errorf("fontFamily.%s: %w", key.Value, err)
			}
		}
		roles.set(key.Value, families)
	}

	*m = roles
	return nil
}

// MarshalYAML emits the roles in document order.
func (m FontRoleMap) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, role := range m {
		list := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, family := range role.Families {
			list.Content = append(list.Content, strNode(family))
		}
		node.Content = append(node.Content, strNode(role.Name), list)
	}
	return node, nil
}

// MarshalJSON emits an object whose members follow document order.
func (m FontRoleMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, role := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		families := role.Families
		if families == nil {
			families = []string{}
		}
		if err := writeJSONMember(&buf, role.Name, families); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts the same shapes as UnmarshalYAML.
func (m *FontRoleMap) UnmarshalJSON(data []byte) error {
	return unmarshalJSONNode(data, m.UnmarshalYAML)
}

// UnmarshalYAML decodes a role to color mapping, keeping key order and the
// exact value text. Merge keys (<<: *base) are expanded in place; roles
// written in the mapping itself override merged ones, and among several
// merged palettes the first one listed wins.
func (p *ColorPalette) UnmarshalYAML(value *yaml.Node) error {
	value = resolveAlias(value)
	if value.ShortTag() == nullTag {
		*p = ColorPalette{}
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return nodeError(value, "palette must be a mapping of role to color")
	}

	explicit := make(map[string]bool, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		if key := resolveAlias(value.Content[i]); key.ShortTag() != mergeTag {
			explicit[key.Value] = true
		}
	}

	palette := make(ColorPalette, 0, len(value.Content)/2)
	merged := make(map[string]bool)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := resolveAlias(value.Content[i])
		node := resolveAlias(value.Content[i+1])
		if key.ShortTag() == mergeTag {
			if err := palette.merge(node, explicit, merged); err != nil {
				return err
			}
			continue
		}
		if node.Kind != yaml.ScalarNode {
			return nodeError(node, fmt.Sprintf("color for role %q must be a scalar", key.Value))
		}
		color := node.Value
		if node.ShortTag() == nullTag {
			color = ""
		}
		palette.Set(key.Value, color)
	}

	*p = palette
	return nil
}

func (p *ColorPalette) merge(node *yaml.Node, explicit, merged map[string]bool) error {
	sources := []*yaml.Node{node}
	if node.Kind == yaml.SequenceNode {
		sources = node.Content
	}

	for _, src := range sources {
		src = resolveAlias(src)
		if src.Kind != yaml.MappingNode {
			return nodeError(src, "merge value must be a palette mapping or a list of them")
		}
		var base ColorPalette
		if err := base.UnmarshalYAML(src); err != nil {
			return err
		}
		for _, c := range base {
			if explicit[c.Role] || merged[c.Role] {
				continue
			}
			merged[c.Role] = true
			p.Set(c.Role, c.Value)
		}
	}
	return nil
}

// MarshalYAML emits roles in document order with values quoted as strings.
func (p ColorPalette) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, c := range p {
		node.Content = append(node.Content, strNode(c.Role), strNode(c.Value))
	}
	return node, nil
}

// MarshalJSON emits an object whose members follow document order.
func (p ColorPalette) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONMember(&buf, c.Role, c.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts the same shapes as UnmarshalYAML.
func (p *ColorPalette) UnmarshalJSON(data []byte) error {
	return unmarshalJSONNode(data, p.UnmarshalYAML)
}

// UnmarshalYAML decodes a sequence whose elements are either built-in theme
// names or mappings of theme name to palette. A mapping with several keys
// yields one entry per key.
func (l *ThemeList) UnmarshalYAML(value *yaml.Node) error {
	value = resolveAlias(value)
	if value.ShortTag() == nullTag {
		*l = nil
		return nil
	}
	if value.Kind != yaml.SequenceNode {
		return nodeError(value, "themes must be a list")
	}

	themes := make(ThemeList, 0, len(value.Content))
	for i, item := range value.Content {
		item = resolveAlias(item)
		switch item.Kind {
		case yaml.ScalarNode:
			themes = append(themes, BuiltinThemeEntry(item.Value))
		case yaml.MappingNode:
			for j := 0; j+1 < len(item.Content); j += 2 {
				name := resolveAlias(item.Content[j]).Value
				var palette ColorPalette
				if err := palette.UnmarshalYAML(item.Content[j+1]); err != nil {
					return fmt.Errorf("themes[%d].%s: %w", i, name, err)
				}
				themes = append(themes, InlineThemeEntry(name, palette))
			}
		default:
			return nodeError(item, fmt.Sprintf("themes[%d] must be a theme name or a palette mapping", i))
		}
	}

	*l = themes
	return nil
}

// MarshalYAML emits built-in entries as names and inline entries as
// single-key mappings.
func (l ThemeList) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode}
	for _, entry := range l {
		if entry.Kind != ThemeInline {
			node.Content = append(node.Content, strNode(entry.Name))
			continue
		}
		palette, err := entry.Palette.MarshalYAML()
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &yaml.Node{
			Kind:    yaml.MappingNode,
			Content: []*yaml.Node{strNode(entry.Name), palette.(*yaml.Node)},
		})
	}
	return node, nil
}

// MarshalJSON mirrors MarshalYAML.
func (l ThemeList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, entry := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		if entry.Kind != ThemeInline {
			name, err := json.Marshal(entry.Name)
			if err != nil {
				return nil, err
			}
			buf.Write(name)
			continue
		}
		buf.WriteByte('{')
		if err := writeJSONMember(&buf, entry.Name, entry.Palette); err != nil {
			return nil, err
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts the same shapes as UnmarshalYAML.
func (l *ThemeList) UnmarshalJSON(data []byte) error {
	return unmarshalJSONNode(data, l.UnmarshalYAML)
}

func writeJSONMember(buf *bytes.Buffer, key string, value any) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}

// unmarshalJSONNode decodes JSON with encoding/json and hands the equivalent
// yaml.Node tree to decode, so both formats share one ordered decoding path.
func unmarshalJSONNode(data []byte, decode func(*yaml.Node) error) error {
	node, err := parseJSONNode(data)
	if err != nil {
		return err
	}
	return decode(node)
}

// parseJSONNode converts a single JSON value into a yaml.Node tree, keeping
// object member order.
func parseJSONNode(data []byte) (*yaml.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	node, err := readJSONValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = fmt.Errorf("unexpected data after top-level value")
		}
		return nil, err
	}
	return node, nil
}

func readJSONValue(dec *json.Decoder) (*yaml.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("offset %d: object key must be a string", dec.InputOffset())
				}
				value, err := readJSONValue(dec)
				if err != nil {
					return nil, err
				}
				node.Content = append(node.Content, strNode(key), value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return node, nil
		case '[':
			node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
			for dec.More() {
				item, err := readJSONValue(dec)
				if err != nil {
					return nil, err
				}
				node.Content = append(node.Content, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return node, nil
		}
		return nil, fmt.Errorf("offset %d: unexpected %q", dec.InputOffset(), v.String())
	case string:
		return strNode(v), nil
	case json.Number:
		tag := "!!int"
		if strings.ContainsAny(v.String(), ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.String()}, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v)}, nil
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: nullTag, Value: "null"}, nil
	default:
		return nil, fmt.Errorf("unexpected JSON token %v", tok)
	}
}

func strNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func nodeError(node *yaml.Node, msg string) error {
	return fmt.Errorf("line %d: %s", node.Line, msg)
}
