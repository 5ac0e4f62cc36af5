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
	"os"
	"path/filepath"

	"github.com/Oberon01/it-tools/pkg/logger"
	"github.com/Oberon01/it-tools/pkg/poller"
	"github.com/Oberon01/it-tools/pkg/snmp"
)

// AppConfig is the tonertrack configuration file layout.
type AppConfig struct {
	DBPath  string            `json:"db_path"`
	SNMP    snmp.ClientConfig `json:"snmp"`
	Poller  poller.Config     `json:"poller"`
	Logging *logger.Config    `json:"logging,omitempty"`
}

// Validate applies defaults and checks the poll cadence.
func (c *AppConfig) Validate() error {
	if c.DBPath == "" {
		c.DBPath = defaultDBPath()
	}

	return c.Poller.Validate()
}

// defaultDBPath resolves the per-user inventory location, falling back to the
// working directory when the platform config dir is unavailable.
func defaultDBPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "printers.json"
	}

	return filepath.Join(base, "tonertrack", "printers.json")
}
