package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dmitrijs2005/cardbank/internal/common"
	"github.com/dmitrijs2005/cardbank/internal/filex"
	"github.com/dmitrijs2005/cardbank/internal/models"
)

// JSONBackend keeps all records in one JSON array on disk.
type JSONBackend struct {
	path string
}

// NewJSONBackend prepares a backend for path, creating the parent directory
// and an empty array file if nothing exists there yet.
func NewJSONBackend(path string) (*JSONBackend, error) {
	if err := filex.EnsureParentDir(path); err != nil {
		return nil, err
	}

	b := &JSONBackend{path: path}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := b.Save(context.Background(), nil); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (b *JSONBackend) Load(ctx context.Context) ([]*models.User, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", b.path, err)
	}

	var users []*models.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", common.ErrCorruptStore, b.path, err)
	}
	return users, nil
}

func (b *JSONBackend) Save(ctx context.Context, users []*models.User) error {
	if users == nil {
		users = []*models.User{}
	}
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	return filex.WriteFileAtomic(b.path, data, 0o600)
}

func (b *JSONBackend) Close() error { return nil }
