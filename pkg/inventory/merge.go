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
	"time"

	"github.com/Oberon01/it-tools/pkg/models"
)

// ApplyPoll folds one poll outcome into the prior record and returns the record
// to persist. A nil snapshot means the poll failed; the previous snapshot is
// retained as last-known-good so an unreachable device keeps showing its last
// readings alongside the Offline status. Identity fields (model, serial, page
// counter) that degraded to N/A on this poll keep their prior values.
func ApplyPoll(prev *models.DeviceRecord, address string, snap *models.Snapshot, status models.DeviceStatus, now time.Time) *models.DeviceRecord {
	rec := &models.DeviceRecord{
		Address:     address,
		Status:      status,
		LastUpdated: now,
	}

	if prev != nil {
		rec.DisplayName = prev.DisplayName
		rec.LatestSnapshot = prev.LatestSnapshot
	}

	if snap == nil {
		return rec
	}

	merged := *snap

	if prev != nil && prev.LatestSnapshot != nil {
		retainDegraded(&merged, prev.LatestSnapshot)
	}

	rec.LatestSnapshot = &merged

	return rec
}

// retainDegraded carries forward identity fields the fresh snapshot could not
// read. Supply and alert data always reflect the fresh poll.
func retainDegraded(fresh, prior *models.Snapshot) {
	if fresh.Model == models.ValueNA && prior.Model != models.ValueNA {
		fresh.Model = prior.Model
	}

	if fresh.SerialNumber == models.ValueNA && prior.SerialNumber != models.ValueNA {
		fresh.SerialNumber = prior.SerialNumber
	}

	if fresh.TotalPagesPrinted == models.ValueNA && prior.TotalPagesPrinted != models.ValueNA {
		fresh.TotalPagesPrinted = prior.TotalPagesPrinted
	}
}
