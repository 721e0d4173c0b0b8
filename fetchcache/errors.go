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

import "fmt"

// NotFoundError is returned when a local file location does not exist.
type NotFoundError struct {
	Location string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.Location)
}

// HTTPStatusError is returned when a remote fetch completes but the
// response status is not 200 OK.
type HTTPStatusError struct {
	URL  string
	Code int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.Code)
}

// NetworkError wraps a transport-level failure (DNS, connection refused,
// timeout) while fetching a URL.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// JSONParseError surfaces the offending location alongside the underlying
// decode error, per spec.md §4.B's "fetchJson parse failures surface the
// offending file path".
type JSONParseError struct {
	Location string
	Err      error
}

func (e *JSONParseError) Error() string {
	return fmt.Sprintf("parsing %s: %s", e.Location, e.Err)
}

func (e *JSONParseError) Unwrap() error { return e.Err }
