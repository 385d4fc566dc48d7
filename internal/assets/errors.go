package assets

import "errors"

// Sentinel errors for asset operations.
var (
	// ErrTemplateNotFound indicates the requested template does not exist.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrThemeNotFound indicates the requested theme does not exist.
	ErrThemeNotFound = errors.New("theme not found")

	// ErrInvalidTemplate indicates a template file decoded but is unusable.
	ErrInvalidTemplate = errors.New("invalid template")

	// ErrInvalidTheme indicates a theme file decoded but is unusable.
	ErrInvalidTheme = errors.New("invalid theme")

	// ErrInvalidAssetName indicates the asset name contains invalid characters
	// such as path separators or traversal sequences.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath indicates the configured base path is not a valid directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrAssetRead indicates an I/O or decode error while reading an asset file.
	ErrAssetRead = errors.New("failed to read asset")

	// ErrPathTraversal indicates an attempt to access files outside the base path.
	ErrPathTraversal = errors.New("path traversal detected")
)
