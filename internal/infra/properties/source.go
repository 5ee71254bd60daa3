package properties

import (
	"maps"
	"os"
	"strings"
)

// Source is a named set of properties.
type Source interface {
	Name() string
	Lookup(key string) (string, bool)
}

// MapSource serves properties from an in-memory map.
type MapSource struct {
	name   string
	values map[string]string
}

// NewMapSource copies values into a new MapSource.
func NewMapSource(name string, values map[string]string) *MapSource {
	copied := make(map[string]string, len(values))
	maps.Copy(copied, values)

	return &MapSource{
		name:   name,
		values: copied,
	}
}

func (s *MapSource) Name() string {
	return s.name
}

func (s *MapSource) Lookup(key string) (string, bool) {
	value, ok := s.values[key]

	return value, ok
}

// Len returns the number of properties held by the source.
func (s *MapSource) Len() int {
	return len(s.values)
}

// NewArgsSource parses command line arguments of the form --key=value.
// Arguments that do not follow that form are ignored; a bare --key maps to "".
func NewArgsSource(args []string) *MapSource {
	values := make(map[string]string, len(args))

	for _, arg := range args {
		if !strings.HasPrefix(arg, "--") || arg == "--" {
			continue
		}

		key, value, _ := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
		if key == "" {
			continue
		}

		values[key] = value
	}

	return &MapSource{
		name:   "commandLineArgs",
		values: values,
	}
}

// EnvSource reads the process environment with relaxed names:
// foo.bar-baz is looked up as foo.bar-baz, then FOO_BAR_BAZ.
type EnvSource struct {
	lookupEnv func(string) (string, bool)
}

// NewEnvSource creates a source over os.LookupEnv.
func NewEnvSource() *EnvSource {
	return &EnvSource{
		lookupEnv: os.LookupEnv,
	}
}

func (s *EnvSource) Name() string {
	return "systemEnvironment"
}

func (s *EnvSource) Lookup(key string) (string, bool) {
	if value, ok := s.lookupEnv(key); ok {
		return value, true
	}

	return s.lookupEnv(envName(key))
}

var envReplacer = strings.NewReplacer(".", "_", "-", "_", "[", "_", "]", "")

func envName(key string) string {
	return strings.ToUpper(envReplacer.Replace(key))
}
