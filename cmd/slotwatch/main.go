/*
 * Copyright 2025 Carver Automation Corporation.
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
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/magnusoverli/VirtEditor/pkg/config"
	"github.com/magnusoverli/VirtEditor/pkg/core"
	"github.com/magnusoverli/VirtEditor/pkg/lifecycle"
	"github.com/magnusoverli/VirtEditor/pkg/logger"
	"github.com/magnusoverli/VirtEditor/pkg/models"
)

var errFailedToLoadConfig = fmt.Errorf("failed to load config")

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	// Parse command line flags
	configPath := flag.String("config", "/etc/virteditor/slotwatch.json", "Path to slotwatch config file")
	flag.Parse()

	ctx := context.Background()

	// Step 1: Load configuration
	cfgLoader := config.NewConfig(nil)

	var cfg core.Config

	if err := cfgLoader.LoadAndValidate(ctx, *configPath, &cfg); err != nil {
		return fmt.Errorf("%w: %w", errFailedToLoadConfig, err)
	}

	// Step 2: Create logger from loaded config
	logConfig := cfg.Logging
	if logConfig == nil {
		logConfig = &logger.Config{
			Level:  "info",
			Output: "stderr",
		}
	}

	slotLogger, err := lifecycle.CreateComponentLogger("slotwatch", logConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	console := newConsole(os.Stdout)

	manager, err := core.NewManager(&cfg, console, slotLogger)
	if err != nil {
		return err
	}

	// SIGINT cancels the in-flight run instead of killing the process so
	// partial results still render.
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh

		slotLogger.Info().Msg("Interrupt received, cancelling fetch")
		manager.Cancel()
		cancel()
	}()

	if err := manager.Connect(runCtx); err != nil {
		return console.exitError(err)
	}

	slots, err := manager.DiscoverSlots(runCtx)
	if err != nil {
		return console.exitError(err)
	}

	if err := manager.FetchAll(runCtx, slots); err != nil {
		return err
	}

	manager.Wait()

	result, ok := console.result()
	if !ok {
		console.printCancelled()
		return nil
	}

	console.renderSummary(result, func(outcome models.FetchOutcome) models.DeviceView {
		return manager.View(outcome)
	})

	return nil
}
