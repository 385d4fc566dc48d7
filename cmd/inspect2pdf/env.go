package main

import (
	"io"
	"os"
	"path/filepath"
	"time"

	inspect2pdf "github.com/alnah/go-inspect2pdf"
	"github.com/alnah/go-inspect2pdf/internal/config"
)

// cacheDirName is the media cache directory under the user cache dir.
const cacheDirName = "go-inspect2pdf"

// Environment holds injectable dependencies for testability.
// Includes I/O, time, configuration, and converter pool creation.
type Environment struct {
	Now      func() time.Time
	Stdout   io.Writer
	Stderr   io.Writer
	Config   *config.Config // used when --config is not given
	CacheDir func() (string, error)
	NewPool  func(size int, opts ...inspect2pdf.Option) Pool
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:      time.Now,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Config:   config.DefaultConfig(),
		CacheDir: defaultCacheDir,
		NewPool: func(size int, opts ...inspect2pdf.Option) Pool {
			return &poolAdapter{pool: inspect2pdf.NewConverterPool(size, opts...)}
		},
	}
}

// defaultCacheDir places thumbnails under the OS user cache directory.
func defaultCacheDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, cacheDirName, "media"), nil
}
