package assets

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader loads assets from a directory on the filesystem.
// Implements Loader interface.
type FilesystemLoader struct {
	basePath string
	fsys     fs.FS
}

// NewFilesystemLoader creates a FilesystemLoader for the given base path.
// Returns ErrInvalidBasePath if the path is not a valid, readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	// Resolve symlinks in base path so containment checks compare real paths.
	if realPath, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = realPath
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, absPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, absPath)
	}
	if _, err := os.ReadDir(absPath); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}

	return &FilesystemLoader{basePath: absPath, fsys: os.DirFS(absPath)}, nil
}

// LoadTemplate loads {basePath}/templates/{name}/template.yaml.
func (f *FilesystemLoader) LoadTemplate(name string) (*Template, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}
	dir := filepath.Join(f.basePath, "templates", name)
	if err := f.verifyPathContainment(dir + string(filepath.Separator)); err != nil {
		return nil, err
	}
	if err := f.verifyPathContainment(filepath.Join(dir, templateFile)); err != nil {
		return nil, err
	}
	return readTemplate(f.fsys, name)
}

// LoadTheme loads {basePath}/themes/{name}.yaml.
func (f *FilesystemLoader) LoadTheme(name string) (*Theme, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}
	if err := f.verifyPathContainment(filepath.Join(f.basePath, filepath.FromSlash(themePath(name)))); err != nil {
		return nil, err
	}
	return readTheme(f.fsys, name)
}

// verifyPathContainment ensures the resolved file path is within basePath,
// following symlinks so a link cannot point outside it.
func (f *FilesystemLoader) verifyPathContainment(filePath string) error {
	absFilePath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path", ErrPathTraversal)
	}

	// A missing file fails later on open; the prefix check still applies.
	if realPath, err := filepath.EvalSymlinks(absFilePath); err == nil {
		absFilePath = realPath
	}

	// The separator suffix rejects sibling prefixes (/base/path vs /base/pathevil).
	if !strings.HasPrefix(absFilePath, f.basePath+string(filepath.Separator)) {
		return fmt.Errorf("%w: path escapes base directory", ErrPathTraversal)
	}
	return nil
}

// Compile-time interface check.
var _ Loader = (*FilesystemLoader)(nil)
