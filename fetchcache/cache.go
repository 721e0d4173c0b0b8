/*
Copyright © 2026 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

package fetchcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

// lockWait, lockRetries and lockStale implement the shared-resource
// protocol from spec.md §5: any mutating write on a persisted cache entry
// takes a per-path lockfile, retried every 250ms up to 25 times, with
// locks older than 60s treated as stale and reclaimed.
const (
	lockWait    = 250 * time.Millisecond
	lockRetries = 25
	lockStale   = 60 * time.Second
)

// entryMeta records the HTTP cache-control metadata needed to decide
// whether a stored response is still fresh.
type entryMeta struct {
	URL      string    `json:"url"`
	ETag     string    `json:"etag,omitempty"`
	MaxAge   int       `json:"maxAge,omitempty"`
	StoredAt time.Time `json:"storedAt"`
}

func (m entryMeta) fresh() bool {
	if m.MaxAge <= 0 {
		return false
	}
	return time.Since(m.StoredAt) < time.Duration(m.MaxAge)*time.Second
}

// memoEntry coordinates in-flight concurrent loads for the same key so a
// fan-out of entry fetches across sibling nodes (spec.md §5) issues at
// most one network request per URL per process.
type memoEntry struct {
	once sync.Once
	data []byte
	meta entryMeta
	err  error
}

// DiskCache is a process-wide, content-addressed cache for fetched bytes,
// persisted under a directory and guarded by per-key file locks for writes.
// Reads never take a lock, matching spec.md §5 ("cache reads are lock-free").
type DiskCache struct {
	dir string

	mu   sync.Mutex
	memo map[string]*memoEntry
}

// NewDiskCache creates a cache rooted at dir. The directory is created lazily
// on first write.
func NewDiskCache(dir string) *DiskCache {
	return &DiskCache{
		dir:  dir,
		memo: make(map[string]*memoEntry),
	}
}

func cacheKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}

func (c *DiskCache) dataPath(key string) string { return filepath.Join(c.dir, key+".body") }
func (c *DiskCache) metaPath(key string) string { return filepath.Join(c.dir, key+".meta.json") }
func (c *DiskCache) lockPath(key string) string { return filepath.Join(c.dir, key+".lock") }

// Get returns a fresh cached entry for url, if one exists on disk and has
// not expired per its stored Cache-Control max-age.
func (c *DiskCache) Get(url string) ([]byte, bool) {
	key := cacheKey(url)

	metaBytes, err := os.ReadFile(c.metaPath(key))
	if err != nil {
		return nil, false
	}
	var meta entryMeta
	if err := json.Unmarshal(metaBytes, &meta); err != nil {
		return nil, false
	}
	if !meta.fresh() {
		return nil, false
	}

	data, err := os.ReadFile(c.dataPath(key))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set persists data for url under the per-key lock, along with the
// cache-control metadata needed to compute freshness on later Get calls.
func (c *DiskCache) Set(url string, data []byte, etag string, maxAgeSeconds int) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	key := cacheKey(url)

	return withLock(c.lockPath(key), func() error {
		if err := os.WriteFile(c.dataPath(key), data, 0o644); err != nil {
			return err
		}
		meta := entryMeta{URL: url, ETag: etag, MaxAge: maxAgeSeconds, StoredAt: time.Now()}
		metaBytes, err := json.Marshal(meta)
		if err != nil {
			return err
		}
		return os.WriteFile(c.metaPath(key), metaBytes, 0o644)
	})
}

// GetOrLoad returns the cached bytes for url, loading them with loader at
// most once across concurrent callers within this process. Used to collapse
// the parallel entry-file fetches in spec.md §5 onto a single network
// request per URL.
func (c *DiskCache) GetOrLoad(url string, loader func() ([]byte, string, int, error)) ([]byte, error) {
	if data, ok := c.Get(url); ok {
		return data, nil
	}

	c.mu.Lock()
	entry, ok := c.memo[url]
	if !ok {
		entry = &memoEntry{}
		c.memo[url] = entry
	}
	c.mu.Unlock()

	entry.once.Do(func() {
		data, etag, maxAge, err := loader()
		entry.data, entry.err = data, err
		if err == nil {
			_ = c.Set(url, data, etag, maxAge)
		}
	})

	return entry.data, entry.err
}

// withLock acquires an exclusive file lock at lockPath, retrying on the
// spec's 250ms/25-retry schedule, reclaiming locks older than 60s as stale,
// and guarantees release on every exit path.
func withLock(lockPath string, fn func() error) error {
	fl := flock.New(lockPath)

	ctx, cancel := context.WithTimeout(context.Background(), lockWait*lockRetries)
	defer cancel()

	locked, err := fl.TryLockContext(ctx, lockWait)
	if err != nil || !locked {
		if isStale(lockPath) {
			_ = os.Remove(lockPath)
			locked, err = fl.TryLock()
		}
	}
	if err != nil {
		return err
	}
	if !locked {
		return &NotFoundError{Location: lockPath}
	}
	defer func() { _ = fl.Unlock() }()

	return fn()
}

func isStale(lockPath string) bool {
	info, err := os.Stat(lockPath)
	if err != nil {
		return false
	}
	return time.Since(info.ModTime()) > lockStale
}
