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
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/magnusoverli/VirtEditor/pkg/core"
	"github.com/magnusoverli/VirtEditor/pkg/models"
	"github.com/magnusoverli/VirtEditor/pkg/shelfapi"
)

// Dracula color palette.
const (
	draculaGreen   = "#50fa7b"
	draculaRed     = "#ff5555"
	draculaYellow  = "#f1fa8c"
	draculaComment = "#6272a4"
	draculaCyan    = "#8be9fd"
)

type consoleStyles struct {
	header, success, warning, error, muted lipgloss.Style
}

func newConsoleStyles() consoleStyles {
	return consoleStyles{
		header: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaCyan)).
			Bold(true),
		success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaGreen)),
		warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaYellow)),
		error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaRed)).
			Bold(true),
		muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment)),
	}
}

// console implements core.Events by printing progress to the terminal and
// buffering the aggregate result for the final summary.
type console struct {
	out    io.Writer
	styles consoleStyles

	mu        sync.Mutex
	batch     *models.BatchResult
	lastError string
	lastKind  shelfapi.ErrorKind
}

var _ core.Events = (*console)(nil)

func newConsole(out io.Writer) *console {
	return &console{
		out:    out,
		styles: newConsoleStyles(),
	}
}

func (c *console) OnSlotsDiscovered(slots []models.SlotID) {
	fmt.Fprintln(c.out, c.styles.muted.Render(fmt.Sprintf("Discovered %d slot(s): %v", len(slots), slots)))
}

func (c *console) OnProgress(completed, total int) {
	fmt.Fprintf(c.out, "\rFetching slots... %d/%d", completed, total)

	if completed == total {
		fmt.Fprintln(c.out)
	}
}

func (c *console) OnSlotResult(_ models.SlotID, _ models.FetchOutcome) {}

func (c *console) OnComplete(result models.BatchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.batch = &result
}

func (c *console) OnError(kind shelfapi.ErrorKind, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastKind = kind
	c.lastError = message
}

func (c *console) result() (models.BatchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.batch == nil {
		return models.BatchResult{}, false
	}

	return *c.batch, true
}

// exitError renders the kind-specific message recorded by OnError, falling
// back to classifying the returned error directly.
func (c *console) exitError(err error) error {
	c.mu.Lock()
	message := c.lastError
	c.mu.Unlock()

	if message == "" {
		_, message = shelfapi.Classify(err)
	}

	fmt.Fprintln(c.out, c.styles.error.Render(message))

	return err
}

func (c *console) printCancelled() {
	fmt.Fprintln(c.out, c.styles.warning.Render("Fetch cancelled."))
}

// renderSummary prints a per-slot table of the canonical views.
func (c *console) renderSummary(result models.BatchResult, view func(models.FetchOutcome) models.DeviceView) {
	slots := make([]models.SlotID, 0, len(result.Outcomes))
	for slot := range result.Outcomes {
		slots = append(slots, slot)
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })

	fmt.Fprintln(c.out, c.styles.header.Render(
		fmt.Sprintf("%-6s %-20s %-12s %-18s %-10s", "SLOT", "PRODUCT", "VERSION", "UPTIME", "ALARMS")))

	for _, slot := range slots {
		outcome := result.Outcomes[slot]

		if !outcome.Success() {
			_, message := shelfapi.Classify(outcome.Err)
			fmt.Fprintf(c.out, "%-6d %s\n", slot, c.styles.error.Render(message))

			continue
		}

		v := view(outcome)

		alarms := fmt.Sprintf("%dC/%dM/%dm", v.Alarms.Critical, v.Alarms.Major, v.Alarms.Minor)

		line := fmt.Sprintf("%-6d %-20s %-12s %-18s %-10s",
			v.Slot, v.Product.Name, v.Product.SWVersion, v.Time.Uptime, alarms)

		if v.Alarms.Critical > 0 {
			fmt.Fprintln(c.out, c.styles.error.Render(line))
		} else if v.Alarms.Major > 0 {
			fmt.Fprintln(c.out, c.styles.warning.Render(line))
		} else {
			fmt.Fprintln(c.out, c.styles.success.Render(line))
		}
	}

	status := fmt.Sprintf("Status: %s (%d slot(s) in %s)", result.Status, len(result.Outcomes), result.Elapsed)
	fmt.Fprintln(c.out, c.styles.muted.Render(status))
}
