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

package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Oberon01/it-tools/pkg/models"
)

// Dracula theme colors.
const (
	draculaGreen   = "#50FA7B"
	draculaYellow  = "#F1FA8C"
	draculaRed     = "#FF5555"
	draculaComment = "#6272A4"
	draculaCyan    = "#8BE9FD"
)

var (
	styleHeader  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(draculaCyan))
	styleSection = lipgloss.NewStyle().Bold(true)
	styleMuted   = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaComment))

	statusStyles = map[models.DeviceStatus]lipgloss.Style{
		models.StatusOK:      lipgloss.NewStyle().Foreground(lipgloss.Color(draculaGreen)),
		models.StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color(draculaYellow)),
		models.StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color(draculaRed)).Bold(true),
		models.StatusOffline: lipgloss.NewStyle().Foreground(lipgloss.Color(draculaComment)),
	}
)

func renderStatus(status models.DeviceStatus) string {
	if style, ok := statusStyles[status]; ok {
		return style.Render(string(status))
	}

	return string(status)
}

// renderDeviceTable prints the one-line-per-device summary used by `list`.
func renderDeviceTable(records []*models.DeviceRecord) string {
	var b strings.Builder

	b.WriteString(styleHeader.Render(fmt.Sprintf("%-18s %-20s %-28s %-8s %s",
		"ADDRESS", "NAME", "MODEL", "STATUS", "LAST UPDATED")))
	b.WriteString("\n")

	for _, rec := range records {
		model := models.ValueNA
		if rec.LatestSnapshot != nil {
			model = rec.LatestSnapshot.Model
		}

		updated := "never"
		if !rec.LastUpdated.IsZero() {
			updated = rec.LastUpdated.Format("2006-01-02 15:04:05")
		}

		b.WriteString(fmt.Sprintf("%-18s %-20s %-28s %-8s %s\n",
			rec.Address,
			truncate(rec.DisplayName, 20),
			truncate(model, 28),
			renderStatus(rec.Status),
			styleMuted.Render(updated)))
	}

	return b.String()
}

// renderDeviceDetail prints the full record used by `show` and `poll`.
func renderDeviceDetail(rec *models.DeviceRecord) string {
	var b strings.Builder

	name := rec.DisplayName
	if name == "" {
		name = rec.Address
	}

	b.WriteString(styleHeader.Render(name))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Address:  %s\n", rec.Address))
	b.WriteString(fmt.Sprintf("  Status:   %s\n", renderStatus(rec.Status)))

	if !rec.LastUpdated.IsZero() {
		b.WriteString(fmt.Sprintf("  Updated:  %s\n", rec.LastUpdated.Format("2006-01-02 15:04:05")))
	}

	snap := rec.LatestSnapshot
	if snap == nil {
		b.WriteString(styleMuted.Render("  No snapshot collected yet.\n"))
		return b.String()
	}

	b.WriteString(fmt.Sprintf("  Model:    %s\n", snap.Model))
	b.WriteString(fmt.Sprintf("  Serial:   %s\n", snap.SerialNumber))
	b.WriteString(fmt.Sprintf("  Pages:    %s\n", snap.TotalPagesPrinted))

	writeSupplySection(&b, "Toner", snap.Toner)
	writeSupplySection(&b, "Drums", snap.Drums)
	writeSupplySection(&b, "Other supplies", snap.Other)

	if len(snap.Alerts) > 0 {
		b.WriteString(styleSection.Render("  Alerts:"))
		b.WriteString("\n")

		for _, alert := range snap.Alerts {
			b.WriteString(fmt.Sprintf("    [%s] %s\n", alert.Severity, alert.Description))
		}
	}

	return b.String()
}

func writeSupplySection(b *strings.Builder, title string, readings []models.ConsumableReading) {
	if len(readings) == 0 {
		return
	}

	b.WriteString(styleSection.Render("  " + title + ":"))
	b.WriteString("\n")

	for _, r := range readings {
		b.WriteString(fmt.Sprintf("    %-32s %s\n", r.Label, r.Percent))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	if n <= 3 {
		return s[:n]
	}

	return s[:n-3] + "..."
}
