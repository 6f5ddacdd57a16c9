/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0
 */

package storage

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"

	"layoutstudio/internal/domain"
)

// MaxDocumentBytes bounds a stored document.
const MaxDocumentBytes = 8 << 20

var (
	ErrNotFound = errors.New("document not found")
	ErrCorrupt  = errors.New("document is corrupt")
	ErrTooLarge = errors.New("document exceeds size limit")
)

//go:embed schema.json
var schemaJSON []byte

var schema = func() *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	if err != nil {
		panic(fmt.Sprintf("storage: invalid embedded schema: %v", err))
	}
	return s
}()

// SchemaJSON returns the document schema.
func SchemaJSON() []byte { return append([]byte(nil), schemaJSON...) }

// Encode renders a document in human-readable form.
func Encode(doc domain.Document) ([]byte, error) {
	if doc.Version == 0 {
		doc.Version = domain.DocumentVersion
	}
	if doc.Alternatives == nil {
		doc.Alternatives = []domain.LayoutAlternative{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	data = append(data, '\n')
	if len(data) > MaxDocumentBytes {
		return nil, fmt.Errorf("encode: %w (%d bytes)", ErrTooLarge, len(data))
	}
	return data, nil
}

// Decode validates and parses a stored document.
func Decode(data []byte) (domain.Document, error) {
	if len(data) > MaxDocumentBytes {
		return domain.Document{}, fmt.Errorf("decode: %w (%d bytes)", ErrTooLarge, len(data))
	}
	res, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return domain.Document{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return domain.Document{}, fmt.Errorf("%w: %s", ErrCorrupt, strings.Join(msgs, "; "))
	}
	var doc domain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.Document{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if doc.Version > domain.DocumentVersion {
		return domain.Document{}, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, doc.Version)
	}
	return doc, nil
}
