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

// Package health derives the coarse device status from a snapshot.
package health

import (
	"strconv"
	"strings"

	"github.com/Oberon01/it-tools/pkg/models"
)

// LowLevelThresholdPercent is the consumable level at or below which a device
// goes to Warning.
const LowLevelThresholdPercent = 5

// Classify maps one snapshot plus the outcome of the poll attempt to exactly
// one of the four states. Pure function of its inputs; recomputed on every
// poll, never incrementally updated.
//
// Precedence, first match wins:
//  1. Offline - the poll attempt failed to connect, regardless of any cached
//     snapshot content.
//  2. Error   - any alert outside the paper-out and toner-warning categories.
//  3. Warning - a consumable at or below the low-level threshold, or a
//     toner-warning alert.
//  4. OK      - otherwise; paper-out alerts never affect status.
func Classify(snap *models.Snapshot, online bool) models.DeviceStatus {
	if !online {
		return models.StatusOffline
	}

	if snap == nil {
		return models.StatusOK
	}

	tonerWarning := false

	for _, alert := range snap.Alerts {
		switch Categorize(alert.Description) {
		case CategoryTonerWarning:
			tonerWarning = true
		case CategoryPaperOut:
			// Routine; never pages an administrator.
		default:
			return models.StatusError
		}
	}

	if tonerWarning {
		return models.StatusWarning
	}

	for _, reading := range snap.Consumables() {
		if pct, ok := numericPercent(reading.Percent); ok && pct <= LowLevelThresholdPercent {
			return models.StatusWarning
		}
	}

	return models.StatusOK
}

// numericPercent extracts the integer from a "<n>%" reading. Sentinel readings
// (Unknown, N/A, Invalid) report false and never trigger the threshold.
func numericPercent(percent string) (int, bool) {
	if !strings.HasSuffix(percent, "%") {
		return 0, false
	}

	n, err := strconv.Atoi(strings.TrimSuffix(percent, "%"))
	if err != nil {
		return 0, false
	}

	return n, true
}
