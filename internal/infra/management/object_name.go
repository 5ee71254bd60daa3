package management

import (
	"fmt"
	"sort"
	"strings"
)

const reservedChars = ":,=*?"

// Property is one key=value pair of an ObjectName.
type Property struct {
	Key   string
	Value string
}

// ObjectName identifies a bean in the registry: domain:key=value[,key=value]*.
// Two names are equal when their canonical forms are equal.
type ObjectName struct {
	domain     string
	properties []Property
	canonical  string
}

// ParseObjectName parses and validates s.
func ParseObjectName(s string) (ObjectName, error) {
	domain, list, ok := strings.Cut(s, ":")
	if !ok {
		return ObjectName{}, fmt.Errorf("%w: %q: missing domain separator", ErrMalformedObjectName, s)
	}

	if domain == "" || strings.ContainsAny(domain, reservedChars) {
		return ObjectName{}, fmt.Errorf("%w: %q: invalid domain", ErrMalformedObjectName, s)
	}

	if list == "" {
		return ObjectName{}, fmt.Errorf("%w: %q: empty key property list", ErrMalformedObjectName, s)
	}

	pairs := strings.Split(list, ",")
	properties := make([]Property, 0, len(pairs))
	seen := make(map[string]struct{}, len(pairs))

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return ObjectName{}, fmt.Errorf("%w: %q: property %q has no value", ErrMalformedObjectName, s, pair)
		}

		if key == "" || value == "" ||
			strings.ContainsAny(key, reservedChars) || strings.ContainsAny(value, reservedChars) {
			return ObjectName{}, fmt.Errorf("%w: %q: invalid property %q", ErrMalformedObjectName, s, pair)
		}

		if _, dup := seen[key]; dup {
			return ObjectName{}, fmt.Errorf("%w: %q: duplicate key %q", ErrMalformedObjectName, s, key)
		}

		seen[key] = struct{}{}

		properties = append(properties, Property{Key: key, Value: value})
	}

	return newObjectName(domain, properties), nil
}

// MustParseObjectName is like ParseObjectName but panics on error.
func MustParseObjectName(s string) ObjectName {
	name, err := ParseObjectName(s)
	if err != nil {
		panic(err)
	}

	return name
}

func newObjectName(domain string, properties []Property) ObjectName {
	sorted := make([]Property, len(properties))
	copy(sorted, properties)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Key < sorted[j].Key
	})

	parts := make([]string, 0, len(sorted))
	for _, p := range sorted {
		parts = append(parts, p.Key+"="+p.Value)
	}

	return ObjectName{
		domain:     domain,
		properties: properties,
		canonical:  domain + ":" + strings.Join(parts, ","),
	}
}

// Domain returns the domain part.
func (n ObjectName) Domain() string {
	return n.domain
}

// KeyProperty returns the value for key, or "" when absent.
func (n ObjectName) KeyProperty(key string) string {
	for _, p := range n.properties {
		if p.Key == key {
			return p.Value
		}
	}

	return ""
}

// Canonical returns the name with keys sorted lexicographically.
func (n ObjectName) Canonical() string {
	return n.canonical
}

// IsZero reports whether n was never parsed.
func (n ObjectName) IsZero() bool {
	return n.canonical == ""
}

// String returns the name with keys in their original order.
func (n ObjectName) String() string {
	parts := make([]string, 0, len(n.properties))
	for _, p := range n.properties {
		parts = append(parts, p.Key+"="+p.Value)
	}

	return n.domain + ":" + strings.Join(parts, ",")
}
