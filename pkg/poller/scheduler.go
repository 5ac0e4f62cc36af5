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

// Package poller drives the periodic collection schedule over the inventory.
package poller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Oberon01/it-tools/pkg/health"
	"github.com/Oberon01/it-tools/pkg/inventory"
	"github.com/Oberon01/it-tools/pkg/logger"
	"github.com/Oberon01/it-tools/pkg/models"
)

// Scheduler runs the full-inventory sweep on a slow cadence and re-polls hot
// devices (those whose latest snapshot carries alerts) on a faster one. All
// sweeps run on a single goroutine, so a manual trigger never races a timer
// sweep; it is queued and coalesced instead.
type Scheduler struct {
	store     inventory.Store
	collector Collector
	config    Config
	clock     Clock
	logger    logger.Logger

	triggerCh chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// New creates a Scheduler. The config must already be validated.
func New(store inventory.Store, collector Collector, cfg Config, log logger.Logger) *Scheduler {
	return newWithClock(store, collector, cfg, realClock{}, log)
}

func newWithClock(store inventory.Store, collector Collector, cfg Config, clock Clock, log logger.Logger) *Scheduler {
	return &Scheduler{
		store:     store,
		collector: collector,
		config:    cfg,
		clock:     clock,
		logger:    log.WithComponent("poller"),
		triggerCh: make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
}

// Start runs an immediate full sweep, then loops until the context is
// cancelled or Stop is called. It blocks; run it on its own goroutine when the
// caller needs to do anything else.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info().
		Dur("sweep_interval", time.Duration(s.config.SweepInterval)).
		Dur("hot_interval", time.Duration(s.config.HotInterval)).
		Msg("Starting poll scheduler")

	s.wg.Add(1)
	defer s.wg.Done()

	s.sweep(ctx, sweepFull)

	sweepTicker := s.clock.Ticker(time.Duration(s.config.SweepInterval))
	defer sweepTicker.Stop()

	hotTicker := s.clock.Ticker(time.Duration(s.config.HotInterval))
	defer hotTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.done:
			return nil
		case <-sweepTicker.Chan():
			s.sweep(ctx, sweepFull)
		case <-hotTicker.Chan():
			s.sweep(ctx, sweepHot)
		case <-s.triggerCh:
			s.sweep(ctx, sweepFull)
		}
	}
}

// Stop terminates the loop and waits for any in-flight sweep to finish.
func (s *Scheduler) Stop() {
	s.closeOnce.Do(func() {
		close(s.done)
	})

	s.wg.Wait()
}

// TriggerNow requests an immediate full sweep. If a sweep is already running,
// it finishes first and exactly one more runs afterwards; further triggers in
// the meantime fold into that pending one.
func (s *Scheduler) TriggerNow() {
	select {
	case s.triggerCh <- struct{}{}:
	default:
		// A trigger is already queued.
	}
}

// SweepOnce runs a single full sweep on the caller's goroutine. Used by the
// one-shot refresh command; a long-running scheduler should use TriggerNow
// instead so sweeps stay serialized.
func (s *Scheduler) SweepOnce(ctx context.Context) {
	s.sweep(ctx, sweepFull)
}

type sweepMode int

const (
	sweepFull sweepMode = iota
	sweepHot
)

// sweep polls the selected device set sequentially. Per-device failures are
// recorded as Offline and never abort the rest of the sweep.
func (s *Scheduler) sweep(ctx context.Context, mode sweepMode) {
	sweepID := uuid.New().String()

	records, err := s.store.List()
	if err != nil {
		s.logger.Error().Err(err).Str("sweep_id", sweepID).Msg("Failed to list inventory for sweep")
		return
	}

	polled := 0

	for _, rec := range records {
		if ctx.Err() != nil {
			s.logger.Warn().Str("sweep_id", sweepID).Msg("Sweep cancelled")
			return
		}

		if mode == sweepHot && !rec.LatestSnapshot.HasAlerts() {
			continue
		}

		s.PollDevice(ctx, rec.Address)

		polled++
	}

	if mode == sweepFull || polled > 0 {
		s.logger.Info().
			Str("sweep_id", sweepID).
			Int("devices", polled).
			Bool("hot_only", mode == sweepHot).
			Msg("Sweep complete")
	}
}

// PollDevice collects, classifies, and persists one device under the
// per-device deadline. It returns the record as persisted.
func (s *Scheduler) PollDevice(ctx context.Context, address string) *models.DeviceRecord {
	pollCtx, cancel := context.WithTimeout(ctx, time.Duration(s.config.DeviceDeadline))
	defer cancel()

	prev, err := s.store.Get(address)
	if err != nil && !errors.Is(err, inventory.ErrDeviceNotFound) {
		s.logger.Error().Err(err).Str("device", address).Msg("Failed to read device record")
		return nil
	}

	snap, err := s.collector.Collect(pollCtx, address)
	online := err == nil

	if err != nil {
		s.logger.Warn().Err(err).Str("device", address).Msg("Device poll failed")
	}

	status := health.Classify(snap, online)

	rec := inventory.ApplyPoll(prev, address, snap, status, s.clock.Now())

	if err := s.store.Upsert(address, rec); err != nil {
		s.logger.Error().Err(err).Str("device", address).Msg("Failed to persist device record")
	}

	return rec
}
