// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package manifest

import (
	"context"
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter/v2"
	"github.com/matt-FFFFFF/switchboard/internal/ctxlog"
	"github.com/spf13/afero"
)

const (
	getterSubdirSeparator = "//"
	getterQuerySeparator  = "?"
	schemeSeparator       = "://"
)

// remoteSource is a manifest source resolved into a go-getter download.
type remoteSource struct {
	// src is the go-getter source that is downloaded.
	src  string
	mode getter.Mode
	// file is the manifest to read from the download. Empty reads every
	// manifest at the top of a downloaded directory.
	file string
}

// resolveRemote works out what go-getter downloads for source.
// go-getter cannot fetch a single file out of a remote directory, so a manifest
// named below a "//" subdirectory is read from its downloaded directory.
// https://github.com/hashicorp/go-getter/issues/98
func resolveRemote(source, pwd string) (remoteSource, error) {
	local, err := getter.Detect(&getter.Request{Src: source, Pwd: pwd}, &getter.FileGetter{})
	if err != nil {
		return remoteSource{}, errors.Join(ErrFetch, err)
	}

	if local {
		return localSource(source), nil
	}

	return splitRemote(source), nil
}

// localSource fetches the directory of a local manifest file, or the named
// directory itself.
func localSource(source string) remoteSource {
	if _, ok := FormatOf(source); ok {
		return remoteSource{src: filepath.Dir(source), mode: getter.ModeDir, file: filepath.Base(source)}
	}

	return remoteSource{src: source, mode: getter.ModeDir}
}

// splitRemote resolves a non-local source. Sources that do not end in a
// manifest file name are fetched as directories.
func splitRemote(source string) remoteSource {
	addr, query, _ := strings.Cut(source, getterQuerySeparator)

	prefix, rest := "", addr
	if i := strings.Index(addr, schemeSeparator); i >= 0 {
		prefix, rest = addr[:i+len(schemeSeparator)], addr[i+len(schemeSeparator):]
	}

	repo, subdir, found := strings.Cut(rest, getterSubdirSeparator)
	if _, ok := FormatOf(path.Base(rest)); !ok {
		return remoteSource{src: source, mode: getter.ModeDir}
	}

	if !found {
		return remoteSource{src: source, mode: getter.ModeFile, file: path.Base(rest)}
	}

	src := prefix + repo
	if dir := path.Dir(subdir); dir != "." {
		src += getterSubdirSeparator + dir
	}

	if query != "" {
		src += getterQuerySeparator + query
	}

	return remoteSource{src: src, mode: getter.ModeDir, file: path.Base(subdir)}
}

func (l Loader) loadRemote(ctx context.Context, source string) ([]*Manifest, error) {
	timeout := l.FetchTimeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	rs, err := resolveRemote(source, wd)
	if err != nil {
		return nil, err
	}

	ctxlog.Info(ctx, "fetching manifest", "source", source, "getter_source", rs.src)

	return rs.fetch(ctx, source, wd)
}

// fetch downloads rs into a temporary directory and reads its manifests.
// Manifests are labelled with source, followed by "#<file>" when source names
// a directory.
func (rs remoteSource) fetch(ctx context.Context, source, pwd string) ([]*Manifest, error) {
	tmpDir, err := os.MkdirTemp("", "switchboard-getter-*")
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	dst := filepath.Join(tmpDir, "g")
	if rs.mode == getter.ModeFile {
		dst = filepath.Join(tmpDir, rs.file)
	}

	client := getter.Client{
		DisableSymlinks: true,
	}

	res, err := client.Get(ctx, &getter.Request{
		Src:     rs.src,
		Dst:     dst,
		Pwd:     pwd,
		GetMode: rs.mode,
	})
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	target := res.Dst
	if rs.mode == getter.ModeDir && rs.file != "" {
		target = filepath.Join(res.Dst, rs.file)
	}

	ms, err := readPath(ctx, afero.NewOsFs(), target)

	for _, m := range ms {
		if rs.file != "" {
			m.Source = source
			continue
		}

		m.Source = source + "#" + filepath.Base(m.Source)
	}

	if err != nil {
		return ms, errors.Join(ErrFetch, err)
	}

	return ms, nil
}
