package schema

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const metaIndexMethod = "index_method"

// ParseMetadata decodes the Metadata cell as the body of a YAML flow mapping,
// e.g. `index_method: gist, note: x`.
func ParseMetadata(text string) (map[string]any, error) {
	meta := map[string]any{}
	text = strings.TrimSpace(text)
	if text == "" {
		return meta, nil
	}
	if err := yaml.Unmarshal([]byte("{"+text+"}"), &meta); err != nil {
		return map[string]any{}, fmt.Errorf("invalid metadata %q: %w", text, err)
	}
	if meta == nil {
		meta = map[string]any{}
	}
	return meta, nil
}

// IndexMethod returns the index_method override, or the default.
func IndexMethod(meta map[string]any) string {
	v, ok := meta[metaIndexMethod]
	if !ok || v == nil {
		return DefaultIndexMethod
	}
	s := strings.TrimSpace(fmt.Sprint(v))
	if s == "" {
		return DefaultIndexMethod
	}
	return s
}
