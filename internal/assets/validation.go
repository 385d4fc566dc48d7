package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks that an asset name is safe for use as a filename.
// Returns ErrInvalidAssetName if the name is empty or contains path separators,
// dots, or other characters outside [A-Za-z0-9_-].
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	for _, r := range name {
		ok := r == '-' || r == '_' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !ok {
			return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
		}
	}
	return nil
}

// validateArtName checks a background image file name: one path element
// with a png or jpeg extension.
func validateArtName(name string) error {
	if strings.ContainsAny(name, "/\\") || strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: background %q", ErrInvalidAssetName, name)
	}
	if artMIME(name) == "" {
		return fmt.Errorf("%w: background %q must be png or jpeg", ErrInvalidAssetName, name)
	}
	return nil
}

func artMIME(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	case strings.HasSuffix(lower, ".jpg"), strings.HasSuffix(lower, ".jpeg"):
		return "image/jpeg"
	}
	return ""
}
