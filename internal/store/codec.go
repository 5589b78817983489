// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// Snapshot formats understood by CodecFor.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrUnknownFormat is returned when a snapshot format is not supported.
var ErrUnknownFormat = errors.New("unknown snapshot format")

// Codec converts between the record list and the bytes held by a Backend slot.
type Codec interface {
	Marshal(records []Record) ([]byte, error)
	Unmarshal(data []byte) ([]Record, error)
	// Ext is the file extension used by file based backends, including the dot.
	Ext() string
}

// CodecFor returns the codec for the named format. An empty format selects JSON.
func CodecFor(format string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatJSON:
		return JSONCodec{}, nil
	case FormatYAML, "yml":
		return YAMLCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// JSONCodec stores the snapshot as an indented JSON array.
type JSONCodec struct{}

// Marshal implements Codec.
func (JSONCodec) Marshal(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}

	return json.MarshalIndent(records, "", "  ")
}

// Unmarshal implements Codec.
func (JSONCodec) Unmarshal(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	return records, nil
}

// Ext implements Codec.
func (JSONCodec) Ext() string { return ".json" }

// YAMLCodec stores the snapshot as a YAML sequence.
type YAMLCodec struct{}

// Marshal implements Codec.
func (YAMLCodec) Marshal(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}

	return yaml.Marshal(records)
}

// Unmarshal implements Codec.
func (YAMLCodec) Unmarshal(data []byte) ([]Record, error) {
	var records []Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	return records, nil
}

// Ext implements Codec.
func (YAMLCodec) Ext() string { return ".yaml" }
