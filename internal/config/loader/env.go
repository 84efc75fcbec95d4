package loader

import (
	"os"
	"strconv"
	"strings"
)

// EnvLoader loads settings overrides from environment variables.
type EnvLoader struct {
	mapping map[string]string // Env var -> settings key
}

// NewEnvLoader creates a loader with the default mappings.
func NewEnvLoader() *EnvLoader {
	return &EnvLoader{mapping: defaultEnvMapping()}
}

// NewEnvLoaderWithMapping creates a loader with custom environment variable mappings.
func NewEnvLoaderWithMapping(mapping map[string]string) *EnvLoader {
	return &EnvLoader{mapping: mapping}
}

func defaultEnvMapping() map[string]string {
	return map[string]string{
		"HX_HELIX_MODE": "helix_mode",
	}
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, key string) {
	if l.mapping == nil {
		l.mapping = make(map[string]string)
	}
	l.mapping[envVar] = key
}

// Load reads the mapped environment variables. Unset variables provide
// no value; empty values are treated as set.
func (l *EnvLoader) Load() MapDocument {
	doc := make(MapDocument)
	for env, key := range l.mapping {
		if val, ok := os.LookupEnv(env); ok {
			setByPath(doc, key, parseValue(val))
		}
	}
	return doc
}

// parseValue attempts to parse the string value into an appropriate type.
func parseValue(s string) any {
	if s == "" {
		return s
	}

	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		return true
	case "false", "no", "off", "0":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	return s
}
