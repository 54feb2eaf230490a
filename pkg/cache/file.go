package cache

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/gzip"
)

// FileCache keeps one file per key under dir. Files are sharded into
// subdirectories named after the first two hex digits of the key hash.
//
// A file holds an 8-byte big-endian expiry in Unix nanoseconds (zero for
// no expiry) followed by the gzip-compressed value.
type FileCache struct {
	dir string
}

var _ Cache = (*FileCache)(nil)

const expiryLen = 8

func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &FileCache{dir: dir}, nil
}

func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:]+".gz")
}

// Get treats unreadable or expired files as misses and removes them.
func (c *FileCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	p := c.path(key)
	raw, err := os.ReadFile(p)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}

	value, live, err := decodeEntry(raw, time.Now())
	if err != nil || !live {
		os.Remove(p)
		return nil, false, nil
	}
	return value, true, nil
}

func (c *FileCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	var expires int64
	if ttl > 0 {
		expires = time.Now().Add(ttl).UnixNano()
	}
	raw, err := encodeEntry(data, expires)
	if err != nil {
		return err
	}

	p := c.path(key)
	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	// Rename keeps readers from observing a half-written file.
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	_, err = tmp.Write(raw)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), p)
}

func (c *FileCache) Delete(_ context.Context, key string) error {
	if err := os.Remove(c.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Clear removes every entry and returns how many were removed.
func (c *FileCache) Clear() (int, error) {
	files, err := filepath.Glob(filepath.Join(c.dir, "*", "*.gz"))
	if err != nil {
		return 0, err
	}
	n := 0
	for _, f := range files {
		if err := os.Remove(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return n, err
		}
		n++
	}
	return n, nil
}

func (c *FileCache) Close() error { return nil }

func encodeEntry(data []byte, expires int64) ([]byte, error) {
	var buf bytes.Buffer
	var hdr [expiryLen]byte
	binary.BigEndian.PutUint64(hdr[:], uint64(expires))
	buf.Write(hdr[:])

	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeEntry reports live=false once now is past the stored expiry.
func decodeEntry(raw []byte, now time.Time) (value []byte, live bool, err error) {
	if len(raw) < expiryLen {
		return nil, false, io.ErrUnexpectedEOF
	}
	expires := int64(binary.BigEndian.Uint64(raw[:expiryLen]))
	if expires != 0 && now.UnixNano() > expires {
		return nil, false, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(raw[expiryLen:]))
	if err != nil {
		return nil, false, err
	}
	defer zr.Close()
	value, err = io.ReadAll(zr)
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}
