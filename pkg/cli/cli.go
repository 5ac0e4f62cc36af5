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

// Package cli implements the tonertrack subcommands.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Oberon01/it-tools/pkg/inventory"
	"github.com/Oberon01/it-tools/pkg/logger"
	"github.com/Oberon01/it-tools/pkg/models"
	"github.com/Oberon01/it-tools/pkg/poller"
	"github.com/Oberon01/it-tools/pkg/snmp"
)

// App wires the store, collector, and scheduler for the command handlers.
type App struct {
	config    *AppConfig
	store     inventory.Store
	scheduler *poller.Scheduler
	logger    logger.Logger
}

// NewApp builds the application from a validated config.
func NewApp(cfg *AppConfig, log logger.Logger) (*App, error) {
	store, err := inventory.NewFileStore(cfg.DBPath, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open inventory: %w", err)
	}

	collector := snmp.NewCollector(snmp.NewFactory(cfg.SNMP, log), log)

	return &App{
		config:    cfg,
		store:     store,
		scheduler: poller.New(store, collector, cfg.Poller, log),
		logger:    log,
	}, nil
}

// Run dispatches one subcommand. args excludes the program name and the
// command word itself arrives as args[0].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printUsage()
		return fmt.Errorf("%w: no command given", errMissingArgument)
	}

	cmd, rest := args[0], args[1:]

	switch cmd {
	case "add":
		return a.runAdd(ctx, rest)
	case "remove":
		return a.runRemove(rest)
	case "list":
		return a.runList()
	case "show":
		return a.runShow(rest)
	case "poll":
		return a.runPoll(ctx, rest)
	case "refresh-all":
		return a.runRefreshAll(ctx)
	case "serve":
		return a.runServe(ctx)
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("%w: %s", errUnknownCommand, cmd)
	}
}

// runAdd registers a device and polls it once. Re-adding an existing address
// only updates the display name; collected history stays intact.
func (a *App) runAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	address := fs.String("address", "", "Device IP address or hostname")
	name := fs.String("name", "", "Display name for the device")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing add flags: %w", err)
	}

	if *address == "" && fs.NArg() > 0 {
		*address = fs.Arg(0)
	}

	if *address == "" {
		return errMissingAddress
	}

	rec, err := a.store.Get(*address)
	if err != nil {
		if !errors.Is(err, inventory.ErrDeviceNotFound) {
			return err
		}

		rec = &models.DeviceRecord{Address: *address}
	}

	if *name != "" {
		rec.DisplayName = *name
	}

	if err := a.store.Upsert(*address, rec); err != nil {
		return err
	}

	fmt.Printf("Added %s, polling...\n", *address)

	polled := a.scheduler.PollDevice(ctx, *address)
	if polled != nil {
		fmt.Print(renderDeviceDetail(polled))
	}

	return nil
}

func (a *App) runRemove(args []string) error {
	if len(args) == 0 {
		return errMissingAddress
	}

	address := args[0]

	if err := a.store.Remove(address); err != nil {
		return err
	}

	fmt.Printf("Removed %s\n", address)

	return nil
}

func (a *App) runList() error {
	records, err := a.store.List()
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No devices in inventory. Use 'add' to register one.")
		return nil
	}

	fmt.Print(renderDeviceTable(records))

	return nil
}

func (a *App) runShow(args []string) error {
	if len(args) == 0 {
		return errMissingAddress
	}

	rec, err := a.store.Get(args[0])
	if err != nil {
		return err
	}

	fmt.Print(renderDeviceDetail(rec))

	return nil
}

func (a *App) runPoll(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errMissingAddress
	}

	address := args[0]

	if _, err := a.store.Get(address); err != nil {
		return err
	}

	rec := a.scheduler.PollDevice(ctx, address)
	if rec == nil {
		return fmt.Errorf("poll of %s produced no record", address)
	}

	fmt.Print(renderDeviceDetail(rec))

	return nil
}

func (a *App) runRefreshAll(ctx context.Context) error {
	a.scheduler.SweepOnce(ctx)

	return a.runList()
}

// runServe runs the background scheduler until SIGINT/SIGTERM.
func (a *App) runServe(ctx context.Context) error {
	sigCtx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	fmt.Println("Poll scheduler running, Ctrl-C to stop.")

	if err := a.scheduler.Start(sigCtx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `tonertrack - printer status and toner inventory

Usage:
  tonertrack [-config FILE] <command> [arguments]

Commands:
  add -address ADDR [-name NAME]  Register a device and poll it once
  remove ADDR                     Remove a device from the inventory
  list                            Show all devices with status
  show ADDR                       Show the full record for a device
  poll ADDR                       Poll one device immediately
  refresh-all                     Poll every device once and list results
  serve                           Run the background poll scheduler
  help                            Show this help`)
}
