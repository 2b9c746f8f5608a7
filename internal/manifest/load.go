// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package manifest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/switchboard/internal/ctxlog"
	"github.com/spf13/afero"
)

var (
	// ErrLoad is returned when a manifest source cannot be read.
	ErrLoad = errors.New("failed to load manifest")
	// ErrFetch is returned when a remote manifest cannot be fetched.
	ErrFetch = errors.New("failed to fetch manifest")
)

// FsFactory returns the filesystem local manifest paths are read from.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// DefaultFetchTimeout bounds fetching a remote manifest.
const DefaultFetchTimeout = 30 * time.Second

// Loader reads manifests from local paths or go-getter sources.
type Loader struct {
	FetchTimeout time.Duration
}

// Load reads every manifest of source. A directory yields each manifest file
// in it in lexical order; files with other extensions are ignored.
// Sources that do not exist locally are fetched with go-getter.
func (l Loader) Load(ctx context.Context, source string) ([]*Manifest, error) {
	if source == "" {
		return nil, fmt.Errorf("%w: empty source", ErrLoad)
	}

	fs := FsFactory()

	if _, err := fs.Stat(source); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, errors.Join(ErrLoad, err)
		}

		return l.loadRemote(ctx, source)
	}

	return readPath(ctx, fs, source)
}

// readPath reads the manifest at path, or each manifest file directly inside
// path when it is a directory.
func readPath(ctx context.Context, fs afero.Fs, path string) ([]*Manifest, error) {
	info, err := fs.Stat(path)
	if err != nil {
		return nil, errors.Join(ErrLoad, err)
	}

	if !info.IsDir() {
		m, err := loadFile(fs, path)
		if err != nil {
			return nil, err
		}

		return []*Manifest{m}, nil
	}

	entries, err := afero.ReadDir(fs, path)
	if err != nil {
		return nil, errors.Join(ErrLoad, err)
	}

	var (
		out    []*Manifest
		result *multierror.Error
	)

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		if _, ok := FormatOf(e.Name()); !ok {
			ctxlog.Debug(ctx, "skipping non-manifest file", "file", e.Name())
			continue
		}

		m, err := loadFile(fs, filepath.Join(path, e.Name()))
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}

		out = append(out, m)
	}

	return out, result.ErrorOrNil()
}

// LoadAll loads every source. Failing sources do not stop the others; their
// errors are returned together.
func (l Loader) LoadAll(ctx context.Context, sources []string) ([]*Manifest, error) {
	var (
		out    []*Manifest
		result *multierror.Error
	)

	for _, src := range sources {
		ms, err := l.Load(ctx, src)
		if err != nil {
			result = multierror.Append(result, err)
		}

		out = append(out, ms...)
	}

	return out, result.ErrorOrNil()
}

func loadFile(fs afero.Fs, path string) (*Manifest, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Join(ErrLoad, err)
	}

	return Decode(path, data)
}
