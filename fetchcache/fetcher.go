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

// Package fetchcache implements the unified fetcher from spec.md §4.B: it
// reads bytes from either a local file or an HTTP(S) URL through a
// content-addressed cache, stripping byte-order marks and surfacing JSON
// parse failures with their originating location.
package fetchcache

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"typings.dev/typings/fs"
	"typings.dev/typings/pathutil"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// Fetcher reads declaration-adjacent manifests and entry files from either
// the local filesystem or an HTTP(S) URL, through a shared cache.
type Fetcher struct {
	fs     fs.FileSystem
	client *http.Client
	cache  *DiskCache
	proxy  *url.URL
}

// Options configures a Fetcher. ProxyURL and CacheDir correspond directly
// to the "HTTP proxy URL" and "HTTP cache directory" configuration inputs
// in spec.md §6.
type Options struct {
	ProxyURL string
	CacheDir string
	Timeout  time.Duration
}

// New constructs a Fetcher. osfs reads local files; cache persists HTTP
// responses under opts.CacheDir (a temp directory is used if empty).
func New(osfs fs.FileSystem, opts Options) (*Fetcher, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := &http.Client{Timeout: timeout}

	var proxy *url.URL
	if opts.ProxyURL != "" {
		p, err := url.Parse(opts.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL %q: %w", opts.ProxyURL, err)
		}
		proxy = p
		client.Transport = &http.Transport{Proxy: http.ProxyURL(proxy)}
	}

	cacheDir := opts.CacheDir
	if cacheDir == "" {
		cacheDir = osfs.TempDir() + "/typings-fetch-cache"
	}

	return &Fetcher{
		fs:     osfs,
		client: client,
		cache:  NewDiskCache(cacheDir),
		proxy:  proxy,
	}, nil
}

// FetchText returns the decoded text content at location, dispatching to
// local or HTTP retrieval per pathutil.IsHTTP, and stripping a leading
// UTF-8 byte-order mark.
func (f *Fetcher) FetchText(ctx context.Context, location string) (string, error) {
	var raw []byte
	var err error

	if pathutil.IsHTTP(location) {
		raw, err = f.fetchHTTP(ctx, location)
	} else {
		raw, err = f.fetchLocal(location)
	}
	if err != nil {
		return "", err
	}

	raw = bytes.TrimPrefix(raw, bom)
	return string(raw), nil
}

// FetchJSON fetches location and unmarshals it into v, wrapping decode
// failures in a JSONParseError that names the offending location.
func (f *Fetcher) FetchJSON(ctx context.Context, location string, v any) error {
	text, err := f.FetchText(ctx, location)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(text), v); err != nil {
		return &JSONParseError{Location: location, Err: err}
	}
	return nil
}

func (f *Fetcher) fetchLocal(location string) ([]byte, error) {
	data, err := f.fs.ReadFile(location)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Location: location}
		}
		return nil, err
	}
	return data, nil
}

func (f *Fetcher) fetchHTTP(ctx context.Context, location string) ([]byte, error) {
	return f.cache.GetOrLoad(location, func() ([]byte, string, int, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
		if err != nil {
			return nil, "", 0, &NetworkError{URL: location, Err: err}
		}

		resp, err := f.client.Do(req)
		if err != nil {
			return nil, "", 0, &NetworkError{URL: location, Err: err}
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusOK {
			return nil, "", 0, &HTTPStatusError{URL: location, Code: resp.StatusCode}
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, "", 0, &NetworkError{URL: location, Err: err}
		}

		etag := resp.Header.Get("ETag")
		maxAge := parseMaxAge(resp.Header.Get("Cache-Control"))
		return body, etag, maxAge, nil
	})
}

// parseMaxAge extracts "max-age=N" from a Cache-Control header, matching
// standard HTTP cache semantics (spec.md §4.B). Returns 0 (no caching) if
// absent or unparsable.
func parseMaxAge(cacheControl string) int {
	for _, directive := range strings.Split(cacheControl, ",") {
		directive = strings.TrimSpace(directive)
		if rest, ok := strings.CutPrefix(directive, "max-age="); ok {
			if n, err := strconv.Atoi(rest); err == nil {
				return n
			}
		}
	}
	return 0
}
