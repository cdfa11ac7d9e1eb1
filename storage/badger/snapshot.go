// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/docscore/core"
	"github.com/poiesic/docscore/storage"
)

// SnapshotStore implements storage.SnapshotStore for BadgerDB.
// A single key holds the full result set of the last completed live run.
type SnapshotStore struct {
	backend *Backend
}

var _ storage.SnapshotStore = (*SnapshotStore)(nil)

// NewSnapshotStore creates a run-level snapshot store over the backend.
func NewSnapshotStore(backend *Backend) storage.SnapshotStore {
	return &SnapshotStore{backend: backend}
}

// SaveSnapshot overwrites the snapshot with the given results.
func (s *SnapshotStore) SaveSnapshot(ctx context.Context, results []*core.EnrichmentResult) error {
	value, err := storage.MarshalSnapshot(results)
	if err != nil {
		return err
	}

	return s.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeSnapshotKey(), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// LoadSnapshot reads the snapshot from the last completed live run.
// Returns storage.ErrSnapshotNotFound if no snapshot exists.
func (s *SnapshotStore) LoadSnapshot(ctx context.Context) ([]*core.EnrichmentResult, error) {
	var results []*core.EnrichmentResult

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeSnapshotKey())
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrSnapshotNotFound
			}
			return err
		}

		return item.Value(func(val []byte) error {
			var unmarshalErr error
			results, unmarshalErr = storage.UnmarshalSnapshot(val)
			return unmarshalErr
		})
	}, false)

	if err != nil {
		return nil, err
	}
	return results, nil
}
