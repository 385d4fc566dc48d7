package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/alnah/go-inspect2pdf/internal/yamlutil"
)

// Loader defines the contract for loading templates and themes.
type Loader interface {
	// LoadTemplate loads a page template by name.
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) (*Template, error)

	// LoadTheme loads a theme by name.
	// Returns ErrThemeNotFound if the theme doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTheme(name string) (*Theme, error)
}

const templateFile = "template.yaml"

func templatePath(name string) string { return path.Join("templates", name, templateFile) }
func themePath(name string) string    { return path.Join("themes", name+".yaml") }

// readTemplate decodes and compiles a template from fsys. Background
// images named by roles are read from the template directory.
func readTemplate(fsys fs.FS, name string) (*Template, error) {
	var t Template
	if err := yamlutil.ReadStrict(fsys, templatePath(name), &t); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
		}
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	if t.Name == "" {
		t.Name = name
	}
	for _, role := range RoleNames {
		r := t.Role(role)
		if r.BackgroundImage == "" {
			continue
		}
		if err := validateArtName(r.BackgroundImage); err != nil {
			return nil, err
		}
		data, err := fs.ReadFile(fsys, path.Join("templates", name, r.BackgroundImage))
		if err != nil {
			return nil, fmt.Errorf("%w: %s background: %v", ErrAssetRead, role, err)
		}
		r.Art = data
		r.ArtMIME = artMIME(r.BackgroundImage)
	}
	if err := t.compile(); err != nil {
		return nil, err
	}
	return &t, nil
}

// readTheme decodes and compiles a theme from fsys.
func readTheme(fsys fs.FS, name string) (*Theme, error) {
	var t Theme
	if err := yamlutil.ReadStrict(fsys, themePath(name), &t); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
		}
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	if t.Name == "" {
		t.Name = name
	}
	if err := t.compile(); err != nil {
		return nil, err
	}
	return &t, nil
}
