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

package snmp

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Oberon01/it-tools/pkg/logger"
	"github.com/Oberon01/it-tools/pkg/models"
)

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		maxCap   string
		expected string
	}{
		{name: "normal reading", level: "18", maxCap: "100", expected: "18%"},
		{name: "full", level: "100", maxCap: "100", expected: "100%"},
		{name: "empty", level: "0", maxCap: "100", expected: "0%"},
		{name: "rounds to nearest", level: "1", maxCap: "3", expected: "33%"},
		{name: "rounds up", level: "2", maxCap: "3", expected: "67%"},
		{name: "scaled capacity", level: "4500", maxCap: "9000", expected: "50%"},
		{name: "unknown sentinel wins over bad max", level: "-2", maxCap: "junk", expected: models.PercentUnknown},
		{name: "unknown sentinel with valid max", level: "-2", maxCap: "100", expected: models.PercentUnknown},
		{name: "zero max", level: "10", maxCap: "0", expected: models.PercentNA},
		{name: "negative max", level: "10", maxCap: "-1", expected: models.PercentNA},
		{name: "non-numeric level", level: "full", maxCap: "100", expected: models.PercentInvalid},
		{name: "non-numeric max", level: "10", maxCap: "lots", expected: models.PercentInvalid},
		{name: "empty strings", level: "", maxCap: "", expected: models.PercentInvalid},
		{name: "over capacity clamps", level: "150", maxCap: "100", expected: "100%"},
		{name: "negative level clamps", level: "-1", maxCap: "100", expected: "0%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatPercent(tt.level, tt.maxCap))
		})
	}
}

func TestSeverityLabel(t *testing.T) {
	assert.Equal(t, models.SeverityInfo, severityLabel("1"))
	assert.Equal(t, models.SeverityCritical, severityLabel("3"))
	assert.Equal(t, models.SeverityWarning, severityLabel("4"))
	assert.Equal(t, "2", severityLabel("2"))
	assert.Equal(t, models.SeverityUnknown, severityLabel(""))
}

func TestWalkColumn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("stops at subtree boundary", func(t *testing.T) {
		client := NewMockClient(ctrl)
		c := NewCollector(NewMockClientFactory(ctrl), logger.NewTestLogger())

		prefix := oidAlertDescription
		client.EXPECT().GetNext(gomock.Any(), prefix).Return(prefix+".1.1", "Paper Jam", nil)
		client.EXPECT().GetNext(gomock.Any(), prefix+".1.1").Return(prefix+".1.2", "Low Toner", nil)
		// Next OID leaves the description column entirely.
		client.EXPECT().GetNext(gomock.Any(), prefix+".1.2").Return(".1.3.6.1.2.1.43.18.1.1.9.1.1", "x", nil)

		rows, err := c.walkColumn(context.Background(), client, prefix)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, walkRow{suffix: "1.1", value: "Paper Jam"}, rows[0])
		assert.Equal(t, walkRow{suffix: "1.2", value: "Low Toner"}, rows[1])
	})

	t.Run("end of mib view terminates cleanly", func(t *testing.T) {
		client := NewMockClient(ctrl)
		c := NewCollector(NewMockClientFactory(ctrl), logger.NewTestLogger())

		prefix := oidAlertDescription
		client.EXPECT().GetNext(gomock.Any(), prefix).Return(prefix+".1.1", "Jam", nil)
		client.EXPECT().GetNext(gomock.Any(), prefix+".1.1").Return("", "", ErrEndOfWalk)

		rows, err := c.walkColumn(context.Background(), client, prefix)
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("empty subtree yields no rows", func(t *testing.T) {
		client := NewMockClient(ctrl)
		c := NewCollector(NewMockClientFactory(ctrl), logger.NewTestLogger())

		prefix := oidAlertDescription
		client.EXPECT().GetNext(gomock.Any(), prefix).Return(".1.3.6.1.2.1.43.18.1.1.9", "x", nil)

		rows, err := c.walkColumn(context.Background(), client, prefix)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("keeps partial rows on transport error", func(t *testing.T) {
		client := NewMockClient(ctrl)
		c := NewCollector(NewMockClientFactory(ctrl), logger.NewTestLogger())

		prefix := oidAlertDescription
		client.EXPECT().GetNext(gomock.Any(), prefix).Return(prefix+".1.1", "Jam", nil)
		client.EXPECT().GetNext(gomock.Any(), prefix+".1.1").Return("", "", errRequestFailed)

		rows, err := c.walkColumn(context.Background(), client, prefix)
		require.Error(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("repeated oid breaks the loop", func(t *testing.T) {
		client := NewMockClient(ctrl)
		c := NewCollector(NewMockClientFactory(ctrl), logger.NewTestLogger())

		prefix := oidAlertDescription
		client.EXPECT().GetNext(gomock.Any(), prefix).Return(prefix+".1.1", "Jam", nil)
		client.EXPECT().GetNext(gomock.Any(), prefix+".1.1").Return(prefix+".1.1", "Jam", nil)

		rows, err := c.walkColumn(context.Background(), client, prefix)
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})
}

func TestClassifySupply(t *testing.T) {
	assert.Equal(t, supplyToner, classifySupply("Black Toner Cartridge"))
	assert.Equal(t, supplyToner, classifySupply("TONER CYAN"))
	assert.Equal(t, supplyDrum, classifySupply("Drum Unit"))
	assert.Equal(t, supplyOther, classifySupply("Waste Box"))
	assert.Equal(t, supplyOther, classifySupply(""))
}

// expectSlotMiss makes one supply slot answer "no such object" on its first
// query so the collector skips it.
func expectSlotMiss(client *MockClient, slot int) {
	client.EXPECT().Get(gomock.Any(), fmt.Sprintf("%s.%d", oidSupplyDescription, slot)).Return("", ErrNoSuchObject)
}

func TestCollect(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("full snapshot", func(t *testing.T) {
		client := NewMockClient(ctrl)
		factory := NewMockClientFactory(ctrl)
		c := NewCollector(factory, logger.NewTestLogger())

		factory.EXPECT().CreateClient("10.0.0.5").Return(client, nil)
		client.EXPECT().Connect().Return(nil)
		client.EXPECT().Close().Return(nil)

		client.EXPECT().Get(gomock.Any(), oidDeviceModel).Return("Brother HL-L6200DW series ", nil)
		client.EXPECT().Get(gomock.Any(), oidSerialNumber).Return("U63885K1N123456", nil)

		client.EXPECT().Get(gomock.Any(), oidSupplyDescription+".1").Return("Black Toner Cartridge", nil)
		client.EXPECT().Get(gomock.Any(), oidSupplyLevel+".1").Return("18", nil)
		client.EXPECT().Get(gomock.Any(), oidSupplyMaxCapacity+".1").Return("100", nil)

		client.EXPECT().Get(gomock.Any(), oidSupplyDescription+".2").Return("Drum Unit", nil)
		client.EXPECT().Get(gomock.Any(), oidSupplyLevel+".2").Return("-2", nil)
		client.EXPECT().Get(gomock.Any(), oidSupplyMaxCapacity+".2").Return("100", nil)

		for slot := 3; slot <= supplySlotMax; slot++ {
			client.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", ErrNoSuchObject)
		}

		client.EXPECT().GetNext(gomock.Any(), oidAlertDescription).Return("", "", ErrEndOfWalk)

		client.EXPECT().Get(gomock.Any(), oidMarkerLifeCount).Return("48213", nil)

		snap, err := c.Collect(context.Background(), "10.0.0.5")
		require.NoError(t, err)
		require.NotNil(t, snap)

		assert.Equal(t, "Brother HL-L6200DW series", snap.Model)
		assert.Equal(t, "U63885K1N123456", snap.SerialNumber)
		assert.Equal(t, "48213", snap.TotalPagesPrinted)

		require.Len(t, snap.Toner, 1)
		assert.Equal(t, models.ConsumableReading{Label: "Black Toner Cartridge", Percent: "18%"}, snap.Toner[0])

		require.Len(t, snap.Drums, 1)
		assert.Equal(t, models.PercentUnknown, snap.Drums[0].Percent)

		assert.Empty(t, snap.Alerts)
		assert.False(t, snap.CollectedAt.IsZero())
	})

	t.Run("alerts pair descriptions with severities", func(t *testing.T) {
		client := NewMockClient(ctrl)
		factory := NewMockClientFactory(ctrl)
		c := NewCollector(factory, logger.NewTestLogger())

		factory.EXPECT().CreateClient("10.0.0.6").Return(client, nil)
		client.EXPECT().Connect().Return(nil)
		client.EXPECT().Close().Return(nil)

		client.EXPECT().Get(gomock.Any(), oidDeviceModel).Return("HP LaserJet", nil)
		client.EXPECT().Get(gomock.Any(), oidSerialNumber).Return("SN1", nil)

		for slot := supplySlotMin; slot <= supplySlotMax; slot++ {
			expectSlotMiss(client, slot)
		}

		desc := oidAlertDescription
		client.EXPECT().GetNext(gomock.Any(), desc).Return(desc+".1.1", "Paper Jam", nil)
		client.EXPECT().GetNext(gomock.Any(), desc+".1.1").Return(desc+".1.2", "Toner Low", nil)
		client.EXPECT().GetNext(gomock.Any(), desc+".1.2").Return("", "", ErrEndOfWalk)

		sev := oidAlertSeverityLevel
		// Only the first alert row has a severity entry.
		client.EXPECT().GetNext(gomock.Any(), sev).Return(sev+".1.1", "3", nil)
		client.EXPECT().GetNext(gomock.Any(), sev+".1.1").Return("", "", ErrEndOfWalk)

		client.EXPECT().Get(gomock.Any(), oidMarkerLifeCount).Return("", ErrNoSuchObject)

		snap, err := c.Collect(context.Background(), "10.0.0.6")
		require.NoError(t, err)

		require.Len(t, snap.Alerts, 2)
		assert.Equal(t, models.AlertEntry{Description: "Paper Jam", Severity: models.SeverityCritical}, snap.Alerts[0])
		assert.Equal(t, models.AlertEntry{Description: "Toner Low", Severity: models.SeverityUnknown}, snap.Alerts[1])

		assert.Equal(t, models.ValueNA, snap.TotalPagesPrinted)
	})

	t.Run("unreachable device", func(t *testing.T) {
		client := NewMockClient(ctrl)
		factory := NewMockClientFactory(ctrl)
		c := NewCollector(factory, logger.NewTestLogger())

		factory.EXPECT().CreateClient("10.0.0.9").Return(client, nil)
		client.EXPECT().Connect().Return(nil)
		client.EXPECT().Close().Return(nil)

		client.EXPECT().Get(gomock.Any(), oidDeviceModel).Return("", errRequestFailed)
		client.EXPECT().Get(gomock.Any(), oidSerialNumber).Return("", errRequestFailed)

		snap, err := c.Collect(context.Background(), "10.0.0.9")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDeviceUnreachable))
		assert.Nil(t, snap)
	})

	t.Run("connect failure", func(t *testing.T) {
		client := NewMockClient(ctrl)
		factory := NewMockClientFactory(ctrl)
		c := NewCollector(factory, logger.NewTestLogger())

		factory.EXPECT().CreateClient("10.0.0.9").Return(client, nil)
		client.EXPECT().Connect().Return(ErrDeviceUnreachable)

		snap, err := c.Collect(context.Background(), "10.0.0.9")
		require.Error(t, err)
		assert.Nil(t, snap)
	})

	t.Run("identity degrades to NA when only one query fails", func(t *testing.T) {
		client := NewMockClient(ctrl)
		factory := NewMockClientFactory(ctrl)
		c := NewCollector(factory, logger.NewTestLogger())

		factory.EXPECT().CreateClient("10.0.0.7").Return(client, nil)
		client.EXPECT().Connect().Return(nil)
		client.EXPECT().Close().Return(nil)

		client.EXPECT().Get(gomock.Any(), oidDeviceModel).Return("Xerox B210", nil)
		client.EXPECT().Get(gomock.Any(), oidSerialNumber).Return("", ErrNoSuchObject)

		for slot := supplySlotMin; slot <= supplySlotMax; slot++ {
			expectSlotMiss(client, slot)
		}

		client.EXPECT().GetNext(gomock.Any(), oidAlertDescription).Return("", "", ErrEndOfWalk)
		client.EXPECT().Get(gomock.Any(), oidMarkerLifeCount).Return("", ErrNoSuchObject)

		snap, err := c.Collect(context.Background(), "10.0.0.7")
		require.NoError(t, err)

		assert.Equal(t, "Xerox B210", snap.Model)
		assert.Equal(t, models.ValueNA, snap.SerialNumber)
	})
}
