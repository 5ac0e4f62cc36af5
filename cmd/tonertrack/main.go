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

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Oberon01/it-tools/pkg/cli"
	"github.com/Oberon01/it-tools/pkg/config"
	"github.com/Oberon01/it-tools/pkg/logger"
)

var errFailedToLoadConfig = fmt.Errorf("failed to load config")

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to config file (optional)")
	flag.Parse()

	ctx := context.Background()

	appCfg := &cli.AppConfig{}

	if *configPath != "" {
		cfgLoader := config.NewConfig(nil)

		if err := cfgLoader.LoadAndValidate(ctx, *configPath, appCfg); err != nil {
			return fmt.Errorf("%w: %w", errFailedToLoadConfig, err)
		}
	} else if err := appCfg.Validate(); err != nil {
		return err
	}

	logCfg := appCfg.Logging
	if logCfg == nil {
		logCfg = logger.DefaultConfig()
	}

	if err := logger.Init(logCfg); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log := logger.Default().WithComponent("tonertrack")

	app, err := cli.NewApp(appCfg, log)
	if err != nil {
		return err
	}

	return app.Run(ctx, flag.Args())
}
