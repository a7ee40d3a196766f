package wire

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedList reports an indexed field set that cannot be decoded back
// into an ordered list: a gap in the indices, a duplicate, or a missing
// attribute. Decoding never silently skips such entries.
var ErrMalformedList = errors.New("malformed indexed list")

// EncodeValues flattens an ordered slice of plain values into indexed fields:
// cuisines[0], cuisines[1], ... The index order is the list order; the
// upstream parser relies on it to reconstruct the sequence.
func EncodeValues(name string, values []string) []Field {
	fields := make([]Field, 0, len(values))
	for i, v := range values {
		fields = append(fields, Field{
			Name:  fmt.Sprintf("%s[%d]", name, i),
			Value: v,
		})
	}
	return fields
}

// EncodeList flattens an ordered slice of records into indexed fields, one
// per attribute: menuItems[0][name], menuItems[0][price], menuItems[1][name],
// ... attrs fixes the attribute order inside each record.
func EncodeList(name string, attrs []string, items []map[string]string) []Field {
	fields := make([]Field, 0, len(items)*len(attrs))
	for i, item := range items {
		for _, attr := range attrs {
			fields = append(fields, Field{
				Name:  fmt.Sprintf("%s[%d][%s]", name, i, attr),
				Value: item[attr],
			})
		}
	}
	return fields
}

// DecodeValues rebuilds an ordered slice from indexed fields produced by
// EncodeValues. Indices must be dense and zero-based.
func DecodeValues(name string, values map[string][]string) ([]string, error) {
	byIndex := map[int]string{}
	max := -1
	for key, vals := range values {
		suffix, ok := indexedSuffix(key, name)
		if !ok {
			continue
		}
		idx, rest, err := splitIndex(name, suffix)
		if err != nil {
			return nil, err
		}
		if rest != "" {
			return nil, fmt.Errorf("%w: %s: unexpected attribute in %q", ErrMalformedList, name, key)
		}
		if len(vals) != 1 {
			return nil, fmt.Errorf("%w: %s: %d values for %q", ErrMalformedList, name, len(vals), key)
		}
		if _, dup := byIndex[idx]; dup {
			return nil, fmt.Errorf("%w: %s: duplicate index %d", ErrMalformedList, name, idx)
		}
		byIndex[idx] = vals[0]
		if idx > max {
			max = idx
		}
	}

	out := make([]string, 0, max+1)
	for i := 0; i <= max; i++ {
		v, ok := byIndex[i]
		if !ok {
			return nil, fmt.Errorf("%w: %s: gap at index %d", ErrMalformedList, name, i)
		}
		out = append(out, v)
	}
	return out, nil
}

// DecodeList rebuilds an ordered slice of records from indexed fields
// produced by EncodeList. Every index in [0, n) must carry every attribute
// exactly once; anything else fails the decode.
func DecodeList(name string, attrs []string, values map[string][]string) ([]map[string]string, error) {
	known := map[string]bool{}
	for _, a := range attrs {
		known[a] = true
	}

	byIndex := map[int]map[string]string{}
	max := -1
	for key, vals := range values {
		suffix, ok := indexedSuffix(key, name)
		if !ok {
			continue
		}
		idx, rest, err := splitIndex(name, suffix)
		if err != nil {
			return nil, err
		}
		attr, err := attrName(name, rest)
		if err != nil {
			return nil, err
		}
		if !known[attr] {
			return nil, fmt.Errorf("%w: %s: unknown attribute %q", ErrMalformedList, name, attr)
		}
		if len(vals) != 1 {
			return nil, fmt.Errorf("%w: %s: %d values for %q", ErrMalformedList, name, len(vals), key)
		}
		item := byIndex[idx]
		if item == nil {
			item = map[string]string{}
			byIndex[idx] = item
		}
		if _, dup := item[attr]; dup {
			return nil, fmt.Errorf("%w: %s: duplicate %q for index %d", ErrMalformedList, name, attr, idx)
		}
		item[attr] = vals[0]
		if idx > max {
			max = idx
		}
	}

	out := make([]map[string]string, 0, max+1)
	for i := 0; i <= max; i++ {
		item, ok := byIndex[i]
		if !ok {
			return nil, fmt.Errorf("%w: %s: gap at index %d", ErrMalformedList, name, i)
		}
		for _, attr := range attrs {
			if _, ok := item[attr]; !ok {
				return nil, fmt.Errorf("%w: %s: index %d missing %q", ErrMalformedList, name, i, attr)
			}
		}
		out = append(out, item)
	}
	return out, nil
}

// indexedSuffix returns the part after "name[" when key belongs to the list,
// or ok=false when the key is unrelated and should be ignored.
func indexedSuffix(key, name string) (string, bool) {
	if !strings.HasPrefix(key, name+"[") {
		return "", false
	}
	return key[len(name)+1:], true
}

// splitIndex parses "<i>]..." into the numeric index and whatever follows the
// closing bracket.
func splitIndex(name, suffix string) (int, string, error) {
	end := strings.IndexByte(suffix, ']')
	if end < 0 {
		return 0, "", fmt.Errorf("%w: %s: unterminated index in %q", ErrMalformedList, name, suffix)
	}
	idx, err := strconv.Atoi(suffix[:end])
	if err != nil || idx < 0 {
		return 0, "", fmt.Errorf("%w: %s: bad index %q", ErrMalformedList, name, suffix[:end])
	}
	return idx, suffix[end+1:], nil
}

// attrName parses "[attr]" into the attribute name.
func attrName(name, rest string) (string, error) {
	if len(rest) < 3 || rest[0] != '[' || rest[len(rest)-1] != ']' {
		return "", fmt.Errorf("%w: %s: expected attribute, got %q", ErrMalformedList, name, rest)
	}
	return rest[1 : len(rest)-1], nil
}
