package repository

import (
	"errors"
	"fmt"

	"vibewiki_backend/internal/model"
	"vibewiki_backend/internal/util"

	json "github.com/goccy/go-json"
)

// ProgressRepository persists one user's progress snapshot under a
// fixed storage key.
type ProgressRepository struct {
	Store BlobStore
	Key   string
}

func NewProgressRepository(store BlobStore, key string) *ProgressRepository {
	return &ProgressRepository{Store: store, Key: key}
}

// Load returns the stored snapshot, or a zero-value progress when
// nothing has been stored yet.
func (r *ProgressRepository) Load() (model.UserProgress, error) {
	var progress model.UserProgress

	data, err := r.Store.Get(r.Key)
	if err != nil {
		if errors.Is(err, util.ErrBlobNotFound) {
			return progress, nil
		}
		return progress, fmt.Errorf("load progress: %w", err)
	}
	if err := json.Unmarshal(data, &progress); err != nil {
		return model.UserProgress{}, fmt.Errorf("decode progress: %w", err)
	}
	return progress, nil
}

func (r *ProgressRepository) Save(progress model.UserProgress) error {
	data, err := json.Marshal(progress)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	return r.Store.Set(r.Key, data)
}

func (r *ProgressRepository) Reset() error {
	return r.Store.Delete(r.Key)
}
