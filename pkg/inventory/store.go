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

//go:generate mockgen -destination=mock_store.go -package=inventory github.com/Oberon01/it-tools/pkg/inventory Store

// Package inventory persists device records keyed by network address.
package inventory

import (
	"errors"

	"github.com/Oberon01/it-tools/pkg/models"
)

var (
	// ErrDeviceNotFound is returned by Get and Remove for unknown addresses.
	ErrDeviceNotFound = errors.New("device not found")

	errPersist = errors.New("failed to persist inventory")
)

// Store is the device inventory. Implementations are safe for one writer (the
// poll loop) with concurrent readers; no transactional multi-record atomicity
// is assumed anywhere.
type Store interface {
	Get(address string) (*models.DeviceRecord, error)
	Upsert(address string, record *models.DeviceRecord) error
	Remove(address string) error
	List() ([]*models.DeviceRecord, error)
}
