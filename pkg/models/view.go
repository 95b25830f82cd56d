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

package models

// UnknownValue is the sentinel for string fields absent from every
// recognized JSON shape.
const UnknownValue = "Unknown"

// ProductInfo identifies the module in a slot.
type ProductInfo struct {
	Name      string `json:"name"`
	Serial    string `json:"serial"`
	SWVersion string `json:"sw_version"`
	BuildTime string `json:"build_time"`
}

// TimeInfo carries the module's clock and uptime as reported by the device.
type TimeInfo struct {
	LocalTime string `json:"local_time"`
	Uptime    string `json:"uptime"`
}

// MemoryPool is one named allocation pool's usage.
type MemoryPool struct {
	Used string `json:"used"`
	Size string `json:"size"`
}

// MemoryInfo summarizes the module's memory pools.
type MemoryInfo struct {
	Threshold string                `json:"threshold"`
	Pools     map[string]MemoryPool `json:"pools"`
}

// AlarmInfo counts active alarms by severity.
type AlarmInfo struct {
	Total    int `json:"total"`
	Critical int `json:"critical"`
	Major    int `json:"major"`
	Minor    int `json:"minor"`
	Warning  int `json:"warning"`
}

// DeviceView is the canonical read-only projection of a RawSlotPayload.
// It is constructed once by the normalizer and immutable thereafter.
type DeviceView struct {
	Slot    SlotID      `json:"slot"`
	Product ProductInfo `json:"product"`
	Time    TimeInfo    `json:"time"`
	Memory  MemoryInfo  `json:"memory"`
	Alarms  AlarmInfo   `json:"alarms"`
}

// EmptyDeviceView returns a view with every field at its sentinel.
func EmptyDeviceView(slot SlotID) DeviceView {
	return DeviceView{
		Slot: slot,
		Product: ProductInfo{
			Name:      UnknownValue,
			Serial:    UnknownValue,
			SWVersion: UnknownValue,
			BuildTime: UnknownValue,
		},
		Time: TimeInfo{
			LocalTime: UnknownValue,
			Uptime:    UnknownValue,
		},
		Memory: MemoryInfo{
			Threshold: UnknownValue,
			Pools:     map[string]MemoryPool{},
		},
	}
}
