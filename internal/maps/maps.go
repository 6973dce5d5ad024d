// Package maps ships the built-in map descriptors and loads custom ones from
// disk.
package maps

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
)

//go:embed data/*.txt
var builtin embed.FS

// ErrUnknownMap is returned for names that match no built-in map.
var ErrUnknownMap = errors.New("unknown map")

// Names returns the built-in map names in alphabetical order.
func Names() []string {
	entries, err := builtin.ReadDir("data")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".txt"))
	}
	sort.Strings(names)
	return names
}

// Load returns the descriptor of a built-in map. A name ending in ".txt" or
// containing a path separator is read from disk instead.
func Load(name string) (string, error) {
	if strings.HasSuffix(name, ".txt") || strings.ContainsRune(name, os.PathSeparator) {
		data, err := os.ReadFile(name)
		if err != nil {
			return "", fmt.Errorf("failed to read map %s: %w", name, err)
		}
		return string(data), nil
	}

	data, err := builtin.ReadFile(path.Join("data", name+".txt"))
	if err != nil {
		return "", fmt.Errorf("%w: %q (available: %s)", ErrUnknownMap, name, strings.Join(Names(), ", "))
	}
	return string(data), nil
}
