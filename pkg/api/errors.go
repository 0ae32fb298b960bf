// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package api

import "fmt"

type ErrCreateOpenapiSchema struct {
	name string
	err  error
}

func (e ErrCreateOpenapiSchema) Error() string {
	return fmt.Sprintf("failed to get schema for check %s: %v", e.name, e.err)
}

func (e ErrCreateOpenapiSchema) Unwrap() error {
	return e.err
}

// ErrInvalidRoute is returned for routes the read-only API does not serve.
type ErrInvalidRoute struct {
	Method string
	Path   string
}

func (e ErrInvalidRoute) Error() string {
	return fmt.Sprintf("unsupported method %q for route %q", e.Method, e.Path)
}
