package inventory

import (
	"context"
	"encoding/json"
	"fmt"
)

// photoDoc is the stored shape of an item photo. Data marshals as base64.
type photoDoc struct {
	MIME string `json:"mime"`
	Data []byte `json:"data"`
}

func photoKey(id string) string {
	return "item_photo:" + id
}

// SetPhoto stores a processed photo for the item with the given id.
// Returns ErrNotFound if the item is not in the collection.
func (r *Repository) SetPhoto(ctx context.Context, id string, data []byte, mime string) error {
	if _, ok := r.Get(id); !ok {
		return ErrNotFound
	}

	raw, err := json.Marshal(photoDoc{MIME: mime, Data: data})
	if err != nil {
		return fmt.Errorf("encoding photo: %w", err)
	}
	if err := r.kv.Set(ctx, photoKey(id), raw); err != nil {
		return &PersistError{Err: err}
	}
	return nil
}

// Photo returns the stored photo bytes and MIME type for an item, or
// (nil, "") if the item has no photo.
func (r *Repository) Photo(ctx context.Context, id string) ([]byte, string, error) {
	raw, err := r.kv.Get(ctx, photoKey(id))
	if err != nil {
		return nil, "", fmt.Errorf("loading photo: %w", err)
	}
	if raw == nil {
		return nil, "", nil
	}

	var doc photoDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, "", fmt.Errorf("decoding photo: %w", err)
	}
	return doc.Data, doc.MIME, nil
}
