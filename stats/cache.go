package stats

import (
	"bytes"
	"crypto/sha256"
	"encoding/gob"
	"fmt"
	"github.com/peterbourgon/diskv"
	"github.com/pkg/errors"
	"os"
	"path/filepath"
)

// BlockTransform determines how diskv should partition folders.
func BlockTransform(blockSize int) func(string) []string {
	return func(s string) []string {
		var (
			sliceSize = len(s) / blockSize
			pathSlice = make([]string, sliceSize)
		)
		for i := 0; i < sliceSize; i++ {
			from, to := i*blockSize, (i*blockSize)+blockSize
			pathSlice[i] = s[from:to]
		}
		return pathSlice
	}
}

// Cache keeps parsed corpus tables on disk so that large counter files are only
// parsed once. Entries are keyed by the identity of the source file, so a
// modified file is parsed again.
type Cache struct {
	*diskv.Diskv
}

// NewCache creates a table cache rooted at dir.
func NewCache(dir string) *Cache {
	return &Cache{diskv.New(diskv.Options{
		BasePath:     dir,
		Transform:    BlockTransform(8),
		CacheSizeMax: 64 * 1024 * 1024,
	})}
}

func fileKey(kind, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%d\x00%d", kind, abs, info.Size(), info.ModTime().UnixNano())
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

func (c *Cache) load(kind, path string, v interface{}, parse func() (interface{}, error)) error {
	key, err := fileKey(kind, path)
	if err != nil {
		return err
	}
	if c.Has(key) {
		b, err := c.Read(key)
		if err == nil && gob.NewDecoder(bytes.NewReader(b)).Decode(v) == nil {
			return nil
		}
	}
	parsed, err := parse()
	if err != nil {
		return err
	}
	var buff bytes.Buffer
	if err := gob.NewEncoder(&buff).Encode(parsed); err != nil {
		return errors.Wrapf(err, "encoding %s", kind)
	}
	if err := c.Write(key, buff.Bytes()); err != nil {
		return errors.Wrapf(err, "caching %s", kind)
	}
	return gob.NewDecoder(&buff).Decode(v)
}

// Counters loads a counter file through the cache.
func (c *Cache) Counters(path string) (Counters, error) {
	var counters Counters
	err := c.load("counters", path, &counters, func() (interface{}, error) {
		return LoadCounters(path)
	})
	return counters, err
}

// Linkouts loads a linkout file through the cache.
func (c *Cache) Linkouts(path string) (Linkouts, error) {
	var links Linkouts
	err := c.load("linkouts", path, &links, func() (interface{}, error) {
		return LoadLinkouts(path)
	})
	return links, err
}
