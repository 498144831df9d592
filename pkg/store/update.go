package store

import (
	"bytes"
	"context"
	"encoding/json"
	"maps"

	"github.com/matzehuels/stackcensus/pkg/errors"
	"github.com/matzehuels/stackcensus/pkg/jsonutil"
)

// Document is a persisted JSON object split into its top-level members.
type Document map[string]json.RawMessage

// Update merges sections into the JSON object stored at key and writes it
// back. Existing members named in sections are replaced whole; nothing
// below the top level is merged. A missing object is created.
//
// Errors carry [errors.ErrCodeConnectFailure], [errors.ErrCodeReadFailure]
// (existing object empty or not a JSON object) or [errors.ErrCodeWriteFailure].
func Update(ctx context.Context, b Blob, key string, sections Document) error {
	if err := errors.ValidateObjectKey(key); err != nil {
		return err
	}
	if err := b.Connect(ctx); err != nil {
		return errors.Wrap(errors.ErrCodeConnectFailure, err, "connect to %s", b.Location(key))
	}
	if !b.IsConnected() {
		return errors.New(errors.ErrCodeConnectFailure, "unable to connect to %s", b.Location(key))
	}

	merged, err := Read(ctx, b, key)
	if err != nil {
		return err
	}
	maps.Copy(merged, sections)

	data, err := jsonutil.MarshalNoEscape(merged)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s", b.Location(key))
	}
	if err := b.Put(ctx, key, data); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailure, err, "write %s", b.Location(key))
	}
	return nil
}

// Read returns the document at key, or an empty document if there is none.
// The store must already be connected.
func Read(ctx context.Context, b Blob, key string) (Document, error) {
	exists, err := b.Exists(ctx, key)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeReadFailure, err, "check %s", b.Location(key))
	}
	if !exists {
		return Document{}, nil
	}

	data, err := b.Get(ctx, key)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeReadFailure, err, "read %s", b.Location(key))
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New(errors.ErrCodeReadFailure, "unable to get the json data path: %s", b.Location(key))
	}
	if !jsonutil.IsObject(data) {
		return nil, errors.New(errors.ErrCodeReadFailure, "%s does not hold a JSON object", b.Location(key))
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeReadFailure, err, "decode %s", b.Location(key))
	}
	if len(doc) == 0 {
		return nil, errors.New(errors.ErrCodeReadFailure, "unable to get the json data path: %s", b.Location(key))
	}
	return doc, nil
}
