// Package assets loads report templates and themes.
//
// # Loader Architecture
//
//	Loader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in templates and themes (go:embed)
//	    ├── FilesystemLoader  - templates and themes from a directory on disk
//	    └── Resolver          - custom directory first, embedded fallback
//
// # Directory Structure
//
//	{basePath}/
//	├── themes/
//	│   └── {name}.yaml          # fonts, spacing, status and severity tables
//	└── templates/
//	    └── {name}/
//	        ├── template.yaml    # page size, roles, bands
//	        └── *.png|*.jpg      # optional role background art
//
// A template describes page geometry for three roles (cover, standard,
// last). A theme describes how units look. Both are plain YAML decoded in
// strict mode, so a typo in a field name is an error rather than a silent
// default.
//
// # Security
//
// Asset names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package assets
