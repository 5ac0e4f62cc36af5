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

package poller

import (
	"errors"
	"time"

	"github.com/Oberon01/it-tools/pkg/models"
)

const (
	defaultSweepInterval  = 5 * time.Minute
	defaultHotInterval    = time.Minute
	defaultDeviceDeadline = 30 * time.Second
)

var (
	errHotNotFaster  = errors.New("hot_interval must be shorter than sweep_interval")
	errNegativeValue = errors.New("poll intervals must be positive")
)

// Config controls the scheduler cadence. The hot interval re-polls only
// devices whose latest snapshot carries active alerts.
type Config struct {
	SweepInterval  models.Duration `json:"sweep_interval"`
	HotInterval    models.Duration `json:"hot_interval"`
	DeviceDeadline models.Duration `json:"device_deadline"`
}

// Validate applies defaults for zero fields and rejects inconsistent cadences.
func (c *Config) Validate() error {
	if c.SweepInterval == 0 {
		c.SweepInterval = models.Duration(defaultSweepInterval)
	}

	if c.HotInterval == 0 {
		c.HotInterval = models.Duration(defaultHotInterval)
	}

	if c.DeviceDeadline == 0 {
		c.DeviceDeadline = models.Duration(defaultDeviceDeadline)
	}

	if c.SweepInterval < 0 || c.HotInterval < 0 || c.DeviceDeadline < 0 {
		return errNegativeValue
	}

	if c.HotInterval >= c.SweepInterval {
		return errHotNotFaster
	}

	return nil
}
