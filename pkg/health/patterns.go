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

package health

import "strings"

// AlertCategory buckets an alert description for classification purposes.
type AlertCategory string

const (
	// CategoryPaperOut covers out-of-paper conditions. Operationally routine;
	// excluded from status entirely.
	CategoryPaperOut AlertCategory = "paper_out"
	// CategoryTonerWarning covers low/replace-toner advisories.
	CategoryTonerWarning AlertCategory = "toner_warning"
	// CategoryOther is everything else: jams, hardware faults, unrecognized
	// alerts. Treated conservatively as errors requiring attention.
	CategoryOther AlertCategory = "other"
)

// AlertPattern is one declared predicate in the category table. New alert
// wordings get a pattern entry here and a unit test, nothing else.
type AlertPattern struct {
	Category AlertCategory
	Name     string
	Match    func(description string) bool
}

// patternTable is evaluated in order; first match wins.
var patternTable = []AlertPattern{
	{Category: CategoryPaperOut, Name: "no paper", Match: containsAll("no paper")},
	{Category: CategoryPaperOut, Name: "paper out", Match: containsAll("paper out")},
	{Category: CategoryPaperOut, Name: "input tray empty", Match: containsAll("input tray empty")},
	{Category: CategoryPaperOut, Name: "paper + out/empty/tray", Match: containsAny("paper", "out", "empty", "tray")},
	{Category: CategoryTonerWarning, Name: "toner + low/replace/%", Match: containsAny("toner", "low", "replace", "%")},
}

// containsAll matches when every needle appears in the description.
func containsAll(needles ...string) func(string) bool {
	return func(description string) bool {
		lower := strings.ToLower(description)

		for _, n := range needles {
			if !strings.Contains(lower, n) {
				return false
			}
		}

		return true
	}
}

// containsAny matches when the base needle appears together with at least one
// of the qualifiers.
func containsAny(base string, qualifiers ...string) func(string) bool {
	return func(description string) bool {
		lower := strings.ToLower(description)

		if !strings.Contains(lower, base) {
			return false
		}

		for _, q := range qualifiers {
			if strings.Contains(lower, q) {
				return true
			}
		}

		return false
	}
}

// Categorize maps an alert description to its category via the pattern table.
func Categorize(description string) AlertCategory {
	for _, p := range patternTable {
		if p.Match(description) {
			return p.Category
		}
	}

	return CategoryOther
}
