// Package argfs presents files named on the command line as a flat
// fs.FS, so they can be split the same way as a directory tree.
package argfs

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// FS maps base names to paths on disk.
type FS map[string]string

var _ fs.FS = FS(nil)

// New builds an FS of paths. Two paths with the same base name would
// shadow each other and are rejected.
func New(paths ...string) (FS, error) {
	result := FS{}
	for _, p := range paths {
		if err := result.Add(p); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (m FS) Add(path string) error {
	name := filepath.Base(path)
	if existing, ok := m[name]; ok && existing != path {
		return fmt.Errorf("%s and %s have the same file name", existing, path)
	}
	m[name] = path
	return nil
}

// Path returns the path on disk behind name.
func (m FS) Path(name string) (string, bool) {
	p, ok := m[name]
	return p, ok
}

func (m FS) Open(name string) (fs.File, error) {
	if name == "." {
		var entries []fs.DirEntry
		for base, path := range m {
			info, err := os.Stat(path)
			if err != nil {
				continue
			}
			entries = append(entries, fileDirEntry{name: base, info: info})
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
		return &rootDir{entries: entries}, nil
	}

	path, ok := m[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return os.Open(path)
}

// rootDir implements fs.ReadDirFile for "."
type rootDir struct {
	entries []fs.DirEntry
	pos     int
}

func (d *rootDir) Stat() (fs.FileInfo, error) {
	return dirInfo{name: ".", mode: fs.ModeDir}, nil
}

func (d *rootDir) Read([]byte) (int, error) {
	return 0, io.EOF
}

func (d *rootDir) Close() error {
	return nil
}

func (d *rootDir) ReadDir(n int) ([]fs.DirEntry, error) {
	if d.pos >= len(d.entries) {
		if n <= 0 {
			return nil, nil
		}
		return nil, io.EOF
	}
	if n <= 0 || d.pos+n > len(d.entries) {
		n = len(d.entries) - d.pos
	}
	entries := d.entries[d.pos : d.pos+n]
	d.pos += n
	return entries, nil
}

type fileDirEntry struct {
	name string
	info os.FileInfo
}

func (e fileDirEntry) Name() string               { return e.name }
func (e fileDirEntry) IsDir() bool                { return e.info.IsDir() }
func (e fileDirEntry) Type() fs.FileMode          { return e.info.Mode().Type() }
func (e fileDirEntry) Info() (fs.FileInfo, error) { return e.info, nil }

type dirInfo struct {
	name string
	mode fs.FileMode
}

func (d dirInfo) Name() string       { return d.name }
func (d dirInfo) Size() int64        { return 0 }
func (d dirInfo) Mode() fs.FileMode  { return d.mode }
func (d dirInfo) ModTime() time.Time { return time.Time{} }
func (d dirInfo) IsDir() bool        { return d.mode.IsDir() }
func (d dirInfo) Sys() interface{}   { return nil }
