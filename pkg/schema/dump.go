package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Selector picks fields for Dump. A nil sub-selector stands for the whole
// field, a non-nil one scopes the selection to a nested record or mapping.
type Selector map[string]Selector

// ParseSelector builds a selector from dotted paths ("name", "address.state").
// A whole-field entry wins over any nested entry for the same field.
func ParseSelector(paths ...string) Selector {
	sel := Selector{}
	for _, path := range paths {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		parts := strings.Split(path, ".")
		cur := sel
		for i, part := range parts {
			if i == len(parts)-1 {
				cur[part] = nil
				break
			}
			sub, ok := cur[part]
			if ok && sub == nil {
				break
			}
			if !ok {
				sub = Selector{}
				cur[part] = sub
			}
			cur = sub
		}
	}
	return sel
}

// merge folds src into s and returns the result.
func (s Selector) merge(src Selector) Selector {
	if s == nil {
		s = Selector{}
	}
	for name, sub := range src {
		existing, ok := s[name]
		switch {
		case !ok:
			s[name] = sub.clone()
		case existing == nil || sub == nil:
			s[name] = nil
		default:
			s[name] = existing.merge(sub)
		}
	}
	return s
}

func (s Selector) clone() Selector {
	if s == nil {
		return nil
	}
	out := make(Selector, len(s))
	for name, sub := range s {
		out[name] = sub.clone()
	}
	return out
}

type dumpConfig struct {
	include    Selector
	exclude    Selector
	excludeNil bool
	indent     string
}

// DumpOption configures Dump, DumpJSON and DumpYAML.
type DumpOption func(*dumpConfig)

// Include restricts output to the given top-level or dotted fields.
func Include(fields ...string) DumpOption {
	return IncludeNested(ParseSelector(fields...))
}

func IncludeNested(sel Selector) DumpOption {
	return func(c *dumpConfig) { c.include = c.include.merge(sel) }
}

// Exclude drops the given top-level or dotted fields.
func Exclude(fields ...string) DumpOption {
	return ExcludeNested(ParseSelector(fields...))
}

func ExcludeNested(sel Selector) DumpOption {
	return func(c *dumpConfig) { c.exclude = c.exclude.merge(sel) }
}

// ExcludeNil drops fields and mapping entries holding nil.
func ExcludeNil() DumpOption {
	return func(c *dumpConfig) { c.excludeNil = true }
}

// WithIndent pretty-prints DumpJSON output.
func WithIndent(indent string) DumpOption {
	return func(c *dumpConfig) { c.indent = indent }
}

// Dump converts the record into a plain mapping, nested records included.
// UUID values keep their uuid.UUID type.
func (r *Record) Dump(opts ...DumpOption) (map[string]any, error) {
	om, _, err := r.dumpOrdered(false, opts)
	if err != nil {
		return nil, err
	}
	return plain(om).(map[string]any), nil
}

// DumpJSON encodes the record as a JSON object in declaration order.
func (r *Record) DumpJSON(opts ...DumpOption) ([]byte, error) {
	om, cfg, err := r.dumpOrdered(true, opts)
	if err != nil {
		return nil, err
	}
	if cfg.indent != "" {
		return json.MarshalIndent(om, "", cfg.indent)
	}
	return json.Marshal(om)
}

// DumpYAML encodes the record as a YAML mapping in declaration order.
func (r *Record) DumpYAML(opts ...DumpOption) ([]byte, error) {
	om, _, err := r.dumpOrdered(true, opts)
	if err != nil {
		return nil, err
	}

	node, err := yamlNode(om)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type ordered = *orderedmap.OrderedMap[string, any]

func (r *Record) dumpOrdered(text bool, opts []DumpOption) (ordered, dumpConfig, error) {
	var cfg dumpConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.include != nil && cfg.exclude != nil {
		return nil, cfg, ErrConflictingSelectors
	}

	d := dumper{excludeNil: cfg.excludeNil, text: text}
	om, err := d.record(r, cfg.include, cfg.exclude)
	return om, cfg, err
}

type dumper struct {
	excludeNil bool
	// text renders UUIDs as strings for JSON and YAML output.
	text bool
}

func (d dumper) record(r *Record, include, exclude Selector) (ordered, error) {
	for _, sel := range []Selector{include, exclude} {
		for name := range sel {
			if _, ok := r.schema.index[name]; ok {
				continue
			}
			if _, ok := r.schema.computedField(name); ok {
				continue
			}
			return nil, fmt.Errorf("%w: %q in schema %q", ErrUnknownField, name, r.schema.name)
		}
	}

	names := append(r.schema.FieldNames(), r.schema.ComputedNames()...)
	om := orderedmap.New[string, any]()
	for _, name := range names {
		var inSub, exSub Selector
		if include != nil {
			sub, ok := include[name]
			if !ok {
				continue
			}
			inSub = sub
		}
		if exclude != nil {
			if sub, ok := exclude[name]; ok {
				if sub == nil {
					continue
				}
				exSub = sub
			}
		}

		v, _ := r.lookup(name)
		if v == nil && d.excludeNil {
			continue
		}
		out, err := d.value(v, inSub, exSub)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		om.Set(name, out)
	}
	return om, nil
}

func (d dumper) value(v any, include, exclude Selector) (any, error) {
	if v == nil {
		// nil optional fields have nothing to scope into
		return nil, nil
	}
	switch val := v.(type) {
	case *Record:
		return d.record(val, include, exclude)
	case map[string]any:
		return d.mapping(val, include, exclude)
	case []any:
		if include != nil || exclude != nil {
			return nil, fmt.Errorf("%w: sequences have no nested fields", ErrUnknownField)
		}
		out := make([]any, len(val))
		for i, item := range val {
			item, err := d.value(item, nil, nil)
			if err != nil {
				return nil, err
			}
			out[i] = item
		}
		return out, nil
	case uuid.UUID:
		if d.text {
			return val.String(), nil
		}
		return val, nil
	}
	if include != nil || exclude != nil {
		return nil, fmt.Errorf("%w: %T has no nested fields", ErrUnknownField, v)
	}
	return v, nil
}

// mapping selects keys of a mapping field. Unknown keys are data, not schema, and are ignored.
func (d dumper) mapping(m map[string]any, include, exclude Selector) (map[string]any, error) {
	out := make(map[string]any, len(m))
	for _, key := range slices.Sorted(maps.Keys(m)) {
		var inSub, exSub Selector
		if include != nil {
			sub, ok := include[key]
			if !ok {
				continue
			}
			inSub = sub
		}
		if exclude != nil {
			if sub, ok := exclude[key]; ok {
				if sub == nil {
					continue
				}
				exSub = sub
			}
		}
		if m[key] == nil && d.excludeNil {
			continue
		}
		v, err := d.value(m[key], inSub, exSub)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		out[key] = v
	}
	return out, nil
}

// plain replaces ordered maps with regular ones.
func plain(v any) any {
	switch val := v.(type) {
	case ordered:
		out := make(map[string]any, val.Len())
		for pair := val.Oldest(); pair != nil; pair = pair.Next() {
			out[pair.Key] = plain(pair.Value)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = plain(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = plain(item)
		}
		return out
	}
	return v
}

func yamlNode(v any) (*yaml.Node, error) {
	switch val := v.(type) {
	case ordered:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for pair := val.Oldest(); pair != nil; pair = pair.Next() {
			child, err := yamlNode(pair.Value)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, yamlKey(pair.Key), child)
		}
		return node, nil
	case map[string]any:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, key := range slices.Sorted(maps.Keys(val)) {
			child, err := yamlNode(val[key])
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, yamlKey(key), child)
		}
		return node, nil
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range val {
			child, err := yamlNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	case json.Number:
		if _, err := val.Int64(); err == nil {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: val.String()}, nil
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: val.String()}, nil
	}

	node := &yaml.Node{}
	if err := node.Encode(v); err != nil {
		return nil, err
	}
	return node, nil
}

func yamlKey(key string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
}
