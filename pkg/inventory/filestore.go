/*
 * Copyright 2025 Oberon01.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package inventory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/Oberon01/it-tools/pkg/logger"
	"github.com/Oberon01/it-tools/pkg/models"
)

// FileStore keeps the inventory in a single JSON file, loaded on open and
// rewritten in full after every mutation. Writes go to a temp file in the same
// directory followed by a rename, so a crash mid-write never leaves a torn
// file behind.
type FileStore struct {
	mu      sync.RWMutex
	path    string
	records map[string]*models.DeviceRecord
	logger  logger.Logger
}

// NewFileStore opens the inventory at path, creating parent directories as
// needed. A missing file is an empty inventory, not an error.
func NewFileStore(path string, log logger.Logger) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create inventory directory: %w", err)
	}

	s := &FileStore{
		path:    path,
		records: make(map[string]*models.DeviceRecord),
		logger:  log,
	}

	if err := s.load(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *FileStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug().Str("path", s.path).Msg("No existing inventory file, starting empty")
			return nil
		}

		return fmt.Errorf("failed to read inventory file: %w", err)
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.records); err != nil {
		return fmt.Errorf("failed to parse inventory file %s: %w", s.path, err)
	}

	s.logger.Info().Str("path", s.path).Int("devices", len(s.records)).Msg("Loaded device inventory")

	return nil
}

// save rewrites the whole file. Caller must hold the write lock.
func (s *FileStore) save() error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", errPersist, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".inventory-*.json")
	if err != nil {
		return fmt.Errorf("%w: %w", errPersist, err)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("%w: %w", errPersist, err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("%w: %w", errPersist, err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("%w: %w", errPersist, err)
	}

	return nil
}

// Get returns the record for address, or ErrDeviceNotFound.
func (s *FileStore) Get(address string) (*models.DeviceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[address]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDeviceNotFound, address)
	}

	cp := *rec

	return &cp, nil
}

// Upsert stores the record under address and persists the inventory.
func (s *FileStore) Upsert(address string, record *models.DeviceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *record
	cp.Address = address
	s.records[address] = &cp

	return s.save()
}

// Remove deletes the record for address and persists the inventory. Removing
// an unknown address returns ErrDeviceNotFound without touching the file.
func (s *FileStore) Remove(address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[address]; !ok {
		return fmt.Errorf("%w: %s", ErrDeviceNotFound, address)
	}

	delete(s.records, address)

	return s.save()
}

// List returns all records sorted by address for stable output.
func (s *FileStore) List() ([]*models.DeviceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.DeviceRecord, 0, len(s.records))

	for _, rec := range s.records {
		cp := *rec
		out = append(out, &cp)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Address < out[j].Address
	})

	return out, nil
}
