// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package checks

import (
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
)

// OpenapiFromPerfData takes in check data and returns the schema
// of a [Result] carrying that data.
func OpenapiFromPerfData[T any](data T) (*openapi3.SchemaRef, error) {
	checkSchema, err := openapi3gen.NewSchemaRefForValue(Result{}, openapi3.Schemas{})
	if err != nil {
		return nil, err
	}
	perfDataSchema, err := openapi3gen.NewSchemaRefForValue(data, openapi3.Schemas{})
	if err != nil {
		return nil, err
	}

	checkSchema.Value.Properties["data"] = perfDataSchema
	return checkSchema, nil
}
