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

// Package snmp collects printer status snapshots over the standard Printer-MIB.
package snmp

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Oberon01/it-tools/pkg/logger"
	"github.com/Oberon01/it-tools/pkg/models"
)

// severityByCode maps prtAlertSeverityLevel codes to display labels. Unmapped
// codes pass through raw.
var severityByCode = map[string]string{
	"1": models.SeverityInfo,
	"3": models.SeverityCritical,
	"4": models.SeverityWarning,
}

// Collector assembles one Snapshot per device by issuing a bounded sequence of
// SNMP queries. It holds no state between collections and never touches the
// store; any individual query failure degrades the affected field rather than
// aborting the cycle.
type Collector struct {
	factory ClientFactory
	logger  logger.Logger
}

// NewCollector creates a Collector using the given client factory.
func NewCollector(factory ClientFactory, log logger.Logger) *Collector {
	return &Collector{
		factory: factory,
		logger:  log,
	}
}

// Collect produces a status snapshot for one device address. It returns an
// error wrapping ErrDeviceUnreachable only when the device gives no response
// at all; partial data comes back as a snapshot with sentinel fields.
func (c *Collector) Collect(ctx context.Context, address string) (*models.Snapshot, error) {
	client, err := c.factory.CreateClient(address)
	if err != nil {
		return nil, err
	}

	if err := client.Connect(); err != nil {
		return nil, err
	}

	defer func() {
		if cerr := client.Close(); cerr != nil {
			c.logger.Warn().Err(cerr).Str("device", address).Msg("Failed to close SNMP session")
		}
	}()

	snap := &models.Snapshot{
		Model:             models.ValueNA,
		SerialNumber:      models.ValueNA,
		TotalPagesPrinted: models.ValueNA,
		CollectedAt:       time.Now(),
	}

	model, modelErr := client.Get(ctx, oidDeviceModel)
	serial, serialErr := client.Get(ctx, oidSerialNumber)

	// Both identity queries timing out means the device is not answering at
	// all; short-circuit instead of burning the full slot/alert query budget
	// against a dead address.
	if isTransportError(modelErr) && isTransportError(serialErr) {
		return nil, fmt.Errorf("%w: %s gave no response to identity queries", ErrDeviceUnreachable, address)
	}

	if modelErr == nil {
		snap.Model = strings.TrimSpace(model)
	}

	if serialErr == nil {
		snap.SerialNumber = strings.TrimSpace(serial)
	}

	c.collectSupplies(ctx, client, address, snap)

	snap.Alerts = c.collectAlerts(ctx, client, address)

	if pages, err := client.Get(ctx, oidMarkerLifeCount); err == nil {
		snap.TotalPagesPrinted = strings.TrimSpace(pages)
	}

	c.logger.Debug().
		Str("device", address).
		Str("model", snap.Model).
		Int("alert_count", len(snap.Alerts)).
		Msg("Collected device snapshot")

	return snap, nil
}

// collectSupplies probes the fixed slot range. A slot with any missing
// response is skipped, not treated as zero.
func (c *Collector) collectSupplies(ctx context.Context, client Client, address string, snap *models.Snapshot) {
	for slot := supplySlotMin; slot <= supplySlotMax; slot++ {
		if ctx.Err() != nil {
			c.logger.Warn().Str("device", address).Int("slot", slot).Msg("Device deadline exhausted during supply scan")
			return
		}

		name, err := client.Get(ctx, fmt.Sprintf("%s.%d", oidSupplyDescription, slot))
		if err != nil {
			continue
		}

		level, err := client.Get(ctx, fmt.Sprintf("%s.%d", oidSupplyLevel, slot))
		if err != nil {
			continue
		}

		maxCap, err := client.Get(ctx, fmt.Sprintf("%s.%d", oidSupplyMaxCapacity, slot))
		if err != nil {
			continue
		}

		reading := models.ConsumableReading{
			Label:   strings.TrimSpace(name),
			Percent: formatPercent(level, maxCap),
		}

		switch classifySupply(reading.Label) {
		case supplyToner:
			snap.Toner = append(snap.Toner, reading)
		case supplyDrum:
			snap.Drums = append(snap.Drums, reading)
		default:
			snap.Other = append(snap.Other, reading)
		}
	}
}

// collectAlerts walks the two parallel prtAlertTable columns keyed by a shared
// row suffix. Rows with a description but no severity row default to Unknown.
func (c *Collector) collectAlerts(ctx context.Context, client Client, address string) []models.AlertEntry {
	descRows, err := c.walkColumn(ctx, client, oidAlertDescription)
	if err != nil {
		c.logger.Debug().Err(err).Str("device", address).Msg("Alert description walk ended early")
	}

	if len(descRows) == 0 {
		return nil
	}

	sevRows, err := c.walkColumn(ctx, client, oidAlertSeverityLevel)
	if err != nil {
		c.logger.Debug().Err(err).Str("device", address).Msg("Alert severity walk ended early")
	}

	severities := make(map[string]string, len(sevRows))
	for _, row := range sevRows {
		severities[row.suffix] = row.value
	}

	entries := make([]models.AlertEntry, 0, len(descRows))

	for _, row := range descRows {
		entries = append(entries, models.AlertEntry{
			Description: strings.TrimSpace(row.value),
			Severity:    severityLabel(severities[row.suffix]),
		})
	}

	return entries
}

type walkRow struct {
	suffix string
	value  string
}

// walkColumn iterates one table column with GetNext until the returned OID
// leaves the queried sub-tree (lexicographic boundary) or an error indication
// comes back. Rows gathered before an early stop are kept.
func (c *Collector) walkColumn(ctx context.Context, client Client, prefix string) ([]walkRow, error) {
	var rows []walkRow

	boundary := prefix + "."
	cur := prefix

	for {
		if err := ctx.Err(); err != nil {
			return rows, err
		}

		next, value, err := client.GetNext(ctx, cur)
		if err != nil {
			if errors.Is(err, ErrEndOfWalk) {
				return rows, nil
			}

			return rows, err
		}

		if !strings.HasPrefix(next, boundary) {
			return rows, nil
		}

		if next == cur {
			// Broken agent repeating itself; stop rather than loop forever.
			return rows, nil
		}

		rows = append(rows, walkRow{suffix: strings.TrimPrefix(next, boundary), value: value})
		cur = next
	}
}

type supplyKind int

const (
	supplyOther supplyKind = iota
	supplyToner
	supplyDrum
)

func classifySupply(label string) supplyKind {
	lower := strings.ToLower(label)

	switch {
	case strings.Contains(lower, "toner"):
		return supplyToner
	case strings.Contains(lower, "drum"):
		return supplyDrum
	default:
		return supplyOther
	}
}

// formatPercent renders a level/maximum pair as one of the four reading
// representations: "<n>%", "Unknown", "N/A", or "Invalid".
func formatPercent(level, maxCapacity string) string {
	lvl, err := strconv.Atoi(strings.TrimSpace(level))
	if err != nil {
		return models.PercentInvalid
	}

	if lvl == supplyLevelUnknown {
		return models.PercentUnknown
	}

	maxCap, err := strconv.Atoi(strings.TrimSpace(maxCapacity))
	if err != nil {
		return models.PercentInvalid
	}

	if maxCap <= 0 {
		return models.PercentNA
	}

	pct := int(math.Round(float64(lvl) / float64(maxCap) * 100))

	if pct < 0 {
		pct = 0
	} else if pct > 100 {
		pct = 100
	}

	return strconv.Itoa(pct) + "%"
}

func severityLabel(code string) string {
	if code == "" {
		return models.SeverityUnknown
	}

	if label, ok := severityByCode[code]; ok {
		return label
	}

	return code
}

// isTransportError reports whether an error is a transport-class failure (no
// reply) rather than a per-field "no such object" degradation.
func isTransportError(err error) bool {
	if err == nil {
		return false
	}

	return !errors.Is(err, ErrNoSuchObject) && !errors.Is(err, ErrEndOfWalk)
}
