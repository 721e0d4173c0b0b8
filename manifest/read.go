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

package manifest

import (
	"context"
	"errors"

	"typings.dev/typings/fetchcache"
	"typings.dev/typings/pathutil"
)

// Result wraps a parsed manifest of one ecosystem. Missing is true when no
// manifest document existed at location at all; spec.md §4.C requires that
// this never fail resolution of the other two ecosystems.
type Result struct {
	Missing bool
	Native  *Native
	Npm     *Npm
	Bower   *Bower
}

// ReadNative reads and parses the native typings.json manifest at location.
// A missing file yields Result{Missing: true}, not an error.
func ReadNative(ctx context.Context, f *fetchcache.Fetcher, location string) (*Result, error) {
	text, err := f.FetchText(ctx, location)
	if err != nil {
		if isNotFound(err) {
			return &Result{Missing: true}, nil
		}
		return nil, err
	}
	n, err := ParseNative([]byte(text))
	if err != nil {
		return nil, err
	}
	return &Result{Native: n}, nil
}

// ReadNpm reads and parses the package.json manifest at location.
func ReadNpm(ctx context.Context, f *fetchcache.Fetcher, location string) (*Result, error) {
	text, err := f.FetchText(ctx, location)
	if err != nil {
		if isNotFound(err) {
			return &Result{Missing: true}, nil
		}
		return nil, err
	}
	p, err := ParseNpm([]byte(text))
	if err != nil {
		return nil, err
	}
	return &Result{Npm: p}, nil
}

// ReadBower reads and parses the bower.json manifest at location, applying
// the .bowerrc components directory override if one exists alongside it.
func ReadBower(ctx context.Context, f *fetchcache.Fetcher, location string) (*Result, error) {
	text, err := f.FetchText(ctx, location)
	if err != nil {
		if isNotFound(err) {
			return &Result{Missing: true}, nil
		}
		return nil, err
	}
	b, err := ParseBower([]byte(text))
	if err != nil {
		return nil, err
	}
	return &Result{Bower: b}, nil
}

// ReadBowerRC reads the .bowerrc sibling of a bower.json at manifestLocation,
// returning the default components directory if none exists.
func ReadBowerRC(ctx context.Context, f *fetchcache.Fetcher, manifestLocation string) (*BowerRC, error) {
	rcLocation, err := pathutil.JoinLocation(manifestLocation, ".bowerrc")
	if err != nil {
		return &BowerRC{Directory: DefaultBowerComponentsDir}, nil
	}

	text, err := f.FetchText(ctx, rcLocation)
	if err != nil {
		if isNotFound(err) {
			return &BowerRC{Directory: DefaultBowerComponentsDir}, nil
		}
		return nil, err
	}
	return ParseBowerRC([]byte(text))
}

func isNotFound(err error) bool {
	var nf *fetchcache.NotFoundError
	return errors.As(err, &nf)
}
