// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package transfer

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/cmdshelf/internal/store"
)

// ErrValidation is returned, joined with the details, when import data does not have the expected shape.
var ErrValidation = errors.New("invalid import data")

// ValidationError describes why one element of the import array was rejected.
// Index is -1 when the document as a whole is wrong.
type ValidationError struct {
	Index  int
	Reason string
}

// Error implements error.
func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return e.Reason
	}

	return fmt.Sprintf("item %d: %s", e.Index, e.Reason)
}

// Parse decodes import data. Every element must be an object with a string
// `command` and, optionally, a string `name`. Other fields are ignored.
// All invalid elements are reported, not only the first.
func Parse(data []byte) ([]store.Record, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, errors.Join(ErrValidation, &ValidationError{
			Index:  -1,
			Reason: fmt.Sprintf("expected a JSON array of commands: %s", err),
		})
	}

	var (
		merr    *multierror.Error
		records = make([]store.Record, 0, len(items))
	)

	for i, item := range items {
		r, reason := parseItem(item)
		if reason != "" {
			merr = multierror.Append(merr, &ValidationError{Index: i, Reason: reason})
			continue
		}

		records = append(records, r)
	}

	if err := merr.ErrorOrNil(); err != nil {
		return nil, errors.Join(ErrValidation, err)
	}

	return records, nil
}

func parseItem(item json.RawMessage) (store.Record, string) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
		return store.Record{}, "must be an object"
	}

	raw, ok := fields["command"]
	if !ok {
		return store.Record{}, `missing required field "command"`
	}

	var r store.Record

	if err := json.Unmarshal(raw, &r.Command); err != nil || isNull(raw) {
		return store.Record{}, `field "command" must be a string`
	}

	if raw, ok := fields["name"]; ok {
		if err := json.Unmarshal(raw, &r.Name); err != nil || isNull(raw) {
			return store.Record{}, `field "name" must be a string`
		}
	}

	return store.Normalize(r), ""
}

func isNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}
