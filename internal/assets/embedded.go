package assets

import (
	"embed"
	"io/fs"
	"sort"
	"strings"
)

//go:embed templates themes
var builtin embed.FS

// EmbeddedLoader loads the built-in templates and themes.
// Implements Loader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadTemplate loads a built-in template by name.
func (e *EmbeddedLoader) LoadTemplate(name string) (*Template, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}
	return readTemplate(builtin, name)
}

// LoadTheme loads a built-in theme by name.
func (e *EmbeddedLoader) LoadTheme(name string) (*Theme, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}
	return readTheme(builtin, name)
}

// Compile-time interface check.
var _ Loader = (*EmbeddedLoader)(nil)

// BuiltinTemplates lists the names of the embedded templates.
func BuiltinTemplates() []string {
	return listNames("templates", func(e fs.DirEntry) (string, bool) {
		return e.Name(), e.IsDir()
	})
}

// BuiltinThemes lists the names of the embedded themes.
func BuiltinThemes() []string {
	return listNames("themes", func(e fs.DirEntry) (string, bool) {
		name, ok := strings.CutSuffix(e.Name(), ".yaml")
		return name, ok && !e.IsDir()
	})
}

func listNames(dir string, keep func(fs.DirEntry) (string, bool)) []string {
	entries, err := fs.ReadDir(builtin, dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if name, ok := keep(e); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
