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

// Package models defines the shared data model for the tonertrack tools.
package models

import "time"

// DeviceStatus is the coarse health classification derived from a snapshot.
type DeviceStatus string

const (
	StatusOK      DeviceStatus = "OK"
	StatusWarning DeviceStatus = "Warning"
	StatusError   DeviceStatus = "Error"
	StatusOffline DeviceStatus = "Offline"
)

// Sentinel percent values for consumable readings. Every ConsumableReading.Percent
// is either one of these or an integer percentage with a trailing "%".
const (
	PercentUnknown = "Unknown"
	PercentNA      = "N/A"
	PercentInvalid = "Invalid"
)

// ValueNA marks a single degraded field (model, serial, page counter) whose
// query failed while the rest of the collection succeeded.
const ValueNA = "N/A"

// Alert severity labels produced by the severity-code lookup.
const (
	SeverityCritical = "Critical"
	SeverityWarning  = "Warning"
	SeverityInfo     = "Info"
	SeverityUnknown  = "Unknown"
)

// ConsumableReading is one supply slot reading, unique per label within a snapshot.
type ConsumableReading struct {
	Label   string `json:"label"`
	Percent string `json:"percent"`
}

// AlertEntry is one row from the device alert table.
type AlertEntry struct {
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// Snapshot is the aggregate result of one collection cycle for one device.
// It is created fresh on every poll and never mutated afterwards; merging with
// prior persisted state is the store's responsibility, not the collector's.
type Snapshot struct {
	Model             string              `json:"model"`
	SerialNumber      string              `json:"serial_number"`
	Toner             []ConsumableReading `json:"toner_cartridges"`
	Drums             []ConsumableReading `json:"drum_units"`
	Other             []ConsumableReading `json:"other_supplies"`
	Alerts            []AlertEntry        `json:"alerts"`
	TotalPagesPrinted string              `json:"total_pages_printed"`
	CollectedAt       time.Time           `json:"collected_at"`
}

// HasAlerts reports whether the snapshot carries any active alert rows.
// Devices with alerts are eligible for faster re-polling.
func (s *Snapshot) HasAlerts() bool {
	return s != nil && len(s.Alerts) > 0
}

// Consumables returns all readings across the three groups.
func (s *Snapshot) Consumables() []ConsumableReading {
	if s == nil {
		return nil
	}

	out := make([]ConsumableReading, 0, len(s.Toner)+len(s.Drums)+len(s.Other))
	out = append(out, s.Toner...)
	out = append(out, s.Drums...)
	out = append(out, s.Other...)

	return out
}

// DeviceRecord is the persisted state for one device, keyed by network address.
type DeviceRecord struct {
	Address        string       `json:"address"`
	DisplayName    string       `json:"display_name"`
	LatestSnapshot *Snapshot    `json:"latest_snapshot,omitempty"`
	Status         DeviceStatus `json:"status"`
	LastUpdated    time.Time    `json:"last_updated"`
}
