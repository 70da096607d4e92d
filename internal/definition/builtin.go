package definition

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// DefaultLanguage is the built-in used when nothing else is selected.
const DefaultLanguage = "cat"

// ErrUnknownBuiltin is returned for names that have no embedded definition.
var ErrUnknownBuiltin = errors.New("unknown built-in language")

// Builtins lists the embedded language names, sorted.
func Builtins() []string {
	entries, _ := fs.ReadDir(builtinFS, "builtin")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

// BuiltinSource returns the YAML text of an embedded definition.
func BuiltinSource(name string) ([]byte, error) {
	b, err := builtinFS.ReadFile(path.Join("builtin", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownBuiltin, name, strings.Join(Builtins(), ", "))
	}
	return b, nil
}

// Builtin parses an embedded definition.
func Builtin(name string) (*Definition, error) {
	b, err := BuiltinSource(name)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Resolve loads the definition at path when set, otherwise the named
// built-in, otherwise DefaultLanguage.
func Resolve(name, path string) (*Definition, error) {
	if path != "" {
		return Load(path)
	}
	if name == "" {
		name = DefaultLanguage
	}
	return Builtin(name)
}
