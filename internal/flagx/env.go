package flagx

import (
	"fmt"
	"os"
	"strconv"
)

// BoolEnv reads a boolean environment variable. Unset or empty yields def.
// Accepted values are those of strconv.ParseBool.
func BoolEnv(name string, def bool) (bool, error) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("invalid %s=%q: %w", name, v, err)
	}
	return b, nil
}

// StringEnv returns the variable value or def when unset.
func StringEnv(name string, def string) string {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		return v
	}
	return def
}
