package properties

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a TOML or YAML properties file, chosen by extension, and
// flattens nested tables into dotted keys.
func LoadFile(path string) (*MapSource, error) {
	var raw map[string]any

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.DecodeFile(path, &raw); err != nil {
			return nil, fmt.Errorf("decode toml properties %s: %w", path, err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read yaml properties %s: %w", path, err)
		}

		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode yaml properties %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("load properties %s: %w: %q", path, ErrUnsupportedFormat, ext)
	}

	values := make(map[string]string)
	flatten("", raw, values)

	return NewMapSource("file ["+filepath.Base(path)+"]", values), nil
}

func flatten(prefix string, value any, out map[string]string) {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		for _, k := range keys {
			flatten(join(prefix, k), v[k], out)
		}
	case []map[string]any:
		for i, item := range v {
			flatten(prefix+"["+strconv.Itoa(i)+"]", item, out)
		}
	case []any:
		for i, item := range v {
			flatten(prefix+"["+strconv.Itoa(i)+"]", item, out)
		}
	case nil:
		out[prefix] = ""
	default:
		out[prefix] = fmt.Sprint(v)
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}

	return prefix + "." + key
}
