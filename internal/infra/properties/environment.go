package properties

import (
	"fmt"
	"slices"
	"strings"
)

const (
	placeholderPrefix    = "${"
	placeholderSuffix    = "}"
	placeholderSeparator = ":"
)

// Environment resolves properties against ordered sources; the first source
// holding a key wins. Values may reference other keys with ${key} or
// ${key:default}.
type Environment struct {
	sources []Source
}

// NewEnvironment creates an environment over sources, highest precedence first.
func NewEnvironment(sources ...Source) *Environment {
	return &Environment{
		sources: slices.Clone(sources),
	}
}

// Sources returns the source names in precedence order.
func (e *Environment) Sources() []string {
	names := make([]string, 0, len(e.sources))
	for _, s := range e.sources {
		names = append(names, s.Name())
	}

	return names
}

// Resolve returns the value of key with placeholders expanded. A missing key
// is reported as found == false with a nil error.
func (e *Environment) Resolve(key string) (string, bool, error) {
	raw, ok := e.lookup(key)
	if !ok {
		return "", false, nil
	}

	value, err := e.expand(raw, []string{key})
	if err != nil {
		return "", false, fmt.Errorf("resolve %q: %w", key, err)
	}

	return value, true, nil
}

func (e *Environment) lookup(key string) (string, bool) {
	for _, s := range e.sources {
		if value, ok := s.Lookup(key); ok {
			return value, true
		}
	}

	return "", false
}

func (e *Environment) expand(value string, visiting []string) (string, error) {
	var b strings.Builder

	rest := value

	for {
		start := strings.Index(rest, placeholderPrefix)
		if start < 0 {
			b.WriteString(rest)

			return b.String(), nil
		}

		end := matchingSuffix(rest, start+len(placeholderPrefix))
		if end < 0 {
			b.WriteString(rest)

			return b.String(), nil
		}

		b.WriteString(rest[:start])

		inner, err := e.expand(rest[start+len(placeholderPrefix):end], visiting)
		if err != nil {
			return "", err
		}

		resolved, err := e.placeholder(inner, visiting)
		if err != nil {
			return "", err
		}

		b.WriteString(resolved)

		rest = rest[end+len(placeholderSuffix):]
	}
}

func (e *Environment) placeholder(expr string, visiting []string) (string, error) {
	key, fallback, hasDefault := strings.Cut(expr, placeholderSeparator)

	if slices.Contains(visiting, key) {
		return "", fmt.Errorf("%w: %s -> %s", ErrCircularPlaceholder, strings.Join(visiting, " -> "), key)
	}

	raw, ok := e.lookup(key)
	if !ok {
		if hasDefault {
			return fallback, nil
		}

		return "", fmt.Errorf("%w: %q", ErrUnresolvablePlaceholder, key)
	}

	return e.expand(raw, append(slices.Clone(visiting), key))
}

// matchingSuffix returns the index of the "}" closing the placeholder opened
// before from, honoring nested placeholders, or -1.
func matchingSuffix(s string, from int) int {
	depth := 0

	for i := from; i < len(s); i++ {
		switch {
		case strings.HasPrefix(s[i:], placeholderPrefix):
			depth++
			i += len(placeholderPrefix) - 1
		case strings.HasPrefix(s[i:], placeholderSuffix):
			if depth == 0 {
				return i
			}

			depth--
		}
	}

	return -1
}
