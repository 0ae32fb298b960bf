// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"fmt"
	"maps"
	"net/http"
	"slices"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/telekom/echoprobe/pkg/checks"
)

// NewOpenAPI describes the result endpoints of the given checks.
// The map is keyed by the path the check's result is served at.
func NewOpenAPI(version string, results map[string]checks.Check) (*openapi3.T, error) {
	opts := make([]openapi3.NewPathsOption, 0, len(results))
	for _, path := range slices.Sorted(maps.Keys(results)) {
		c := results[path]
		ref, err := c.Schema()
		if err != nil {
			return nil, ErrCreateOpenapiSchema{name: c.Name(), err: err}
		}

		res := openapi3.NewResponse().
			WithDescription(fmt.Sprintf("Latest result of the %s check", c.Name())).
			WithJSONSchemaRef(ref)
		opts = append(opts, openapi3.WithPath(path, &openapi3.PathItem{
			Get: &openapi3.Operation{
				Summary: fmt.Sprintf("Get the latest %s result", c.Name()),
				Tags:    []string{c.Name()},
				Responses: openapi3.NewResponses(
					openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{Value: res}),
					openapi3.WithStatus(http.StatusNotFound, &openapi3.ResponseRef{
						Value: openapi3.NewResponse().WithDescription("No result yet"),
					}),
				),
			},
		}))
	}

	return &openapi3.T{
		OpenAPI: "3.0.0",
		Info: &openapi3.Info{
			Title:       "echoprobe",
			Description: "Latest results of the echoprobe checks",
			Version:     version,
		},
		Paths: openapi3.NewPaths(opts...),
	}, nil
}
