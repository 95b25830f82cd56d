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

// Package deviceview normalizes heterogeneous per-slot JSON payloads into
// the canonical DeviceView. Devices across firmware generations nest the
// same records differently; extraction walks an ordered rule table per
// record, first match wins, and fields absent from every recognized shape
// fall back to sentinels.
package deviceview

import (
	"encoding/json"
	"strconv"

	"github.com/magnusoverli/VirtEditor/pkg/logger"
	"github.com/magnusoverli/VirtEditor/pkg/models"
)

// rule locates one candidate position of a record inside the decoded
// payload. When marker is set the node only matches if it carries that key,
// which distinguishes a bare record from a container of the same name.
type rule struct {
	path   []string
	marker string
}

// Rule order mirrors firmware history: the legacy doubly-nested shape
// first, then the sectioned shape, then known aliases.
var (
	productRules = []rule{
		{path: []string{"data", "dev", "product_info"}},
		{path: []string{"device_info", "product_info"}},
		{path: []string{"dev", "product_info"}},
		{path: []string{"device", "product_info"}},
	}

	timeRules = []rule{
		{path: []string{"data", "dev", "time"}},
		{path: []string{"device_info", "time"}},
		{path: []string{"dev", "time"}},
		{path: []string{"dev"}, marker: "timetxt"},
		{path: []string{"device", "time"}},
		{path: []string{"device"}, marker: "timetxt"},
		{path: []string{"time", "time"}},
		{path: []string{"time"}, marker: "timetxt"},
	}

	memoryRules = []rule{
		{path: []string{"data", "dev", "mem_usage"}},
		{path: []string{"device_info", "mem_usage"}},
		{path: []string{"dev", "mem_usage"}},
		{path: []string{"dev"}, marker: "pool_coll"},
		{path: []string{"device", "mem_usage"}},
		{path: []string{"device"}, marker: "pool_coll"},
		{path: []string{"memory", "mem_usage"}},
		{path: []string{"memory"}, marker: "pool_coll"},
		{path: []string{"mem_usage", "mem_usage"}},
		{path: []string{"mem_usage"}, marker: "pool_coll"},
	}

	alarmRules = []rule{
		{path: []string{"data", "dev", "alarms", "status", "severities"}},
		{path: []string{"alarms", "status", "severities"}},
		{path: []string{"alarms", "severities"}},
		{path: []string{"alarms", "group_status", "glob_severities"}},
		{path: []string{"device_info", "alarms", "status", "severities"}},
	}
)

// Normalize projects a raw slot payload into the canonical view. It never
// fails: unrecognized or missing data yields sentinel values.
func Normalize(payload *models.RawSlotPayload, slot models.SlotID, log logger.Logger) models.DeviceView {
	view := models.EmptyDeviceView(slot)

	if payload == nil || payload.IsEmpty() {
		return view
	}

	raw := decodePayload(payload, log)

	if node, ok := match(raw, productRules); ok {
		view.Product = models.ProductInfo{
			Name:      stringField(node, "prodname"),
			Serial:    stringField(node, "serialfull"),
			SWVersion: stringField(node, "swver"),
			BuildTime: stringField(node, "swbuildtime"),
		}
	} else {
		log.Debug().Int("slot", int(slot)).Msg("No product info in any recognized shape")
	}

	if node, ok := match(raw, timeRules); ok {
		view.Time = models.TimeInfo{
			LocalTime: stringField(node, "localtimetxt"),
			Uptime:    stringField(node, "uptimetxt"),
		}
	}

	if node, ok := match(raw, memoryRules); ok {
		view.Memory = models.MemoryInfo{
			Threshold: stringField(node, "threshold"),
			Pools:     extractPools(node),
		}
	}

	if node, ok := match(raw, alarmRules); ok {
		view.Alarms = models.AlarmInfo{
			Total:    countField(node, "n_total"),
			Critical: countField(node, "n_critical"),
			Major:    countField(node, "n_major"),
			Minor:    countField(node, "n_minor"),
			Warning:  countField(node, "n_warning"),
		}
	}

	return view
}

// decodePayload merges the payload's sections into one tree keyed by
// section name, the shape the rule paths are written against.
func decodePayload(payload *models.RawSlotPayload, log logger.Logger) map[string]interface{} {
	raw := make(map[string]interface{}, payload.SectionCount())

	for section, data := range payload.Data {
		var node interface{}

		if err := json.Unmarshal(data, &node); err != nil {
			log.Warn().Str("section", string(section)).Err(err).Msg("Skipping undecodable section")
			continue
		}

		raw[string(section)] = node
	}

	return raw
}

func match(raw map[string]interface{}, rules []rule) (map[string]interface{}, bool) {
	for _, r := range rules {
		node, ok := lookup(raw, r.path)
		if !ok {
			continue
		}

		if r.marker != "" {
			if _, ok := node[r.marker]; !ok {
				continue
			}
		}

		return node, true
	}

	return nil, false
}

func lookup(raw map[string]interface{}, path []string) (map[string]interface{}, bool) {
	node := raw

	for _, key := range path {
		child, ok := node[key]
		if !ok {
			return nil, false
		}

		node, ok = child.(map[string]interface{})
		if !ok {
			return nil, false
		}
	}

	return node, true
}

func extractPools(node map[string]interface{}) map[string]models.MemoryPool {
	pools := make(map[string]models.MemoryPool)

	coll, ok := node["pool_coll"].(map[string]interface{})
	if !ok {
		return pools
	}

	for id, v := range coll {
		pool, ok := v.(map[string]interface{})
		if !ok {
			continue
		}

		pools[id] = models.MemoryPool{
			Used: numericField(pool, "used"),
			Size: numericField(pool, "size"),
		}
	}

	return pools
}

// stringField stringifies a scalar leaf, falling back to the Unknown
// sentinel. Devices report some fields as numbers in newer firmware.
func stringField(node map[string]interface{}, key string) string {
	v, ok := node[key]
	if !ok {
		return models.UnknownValue
	}

	s, ok := asString(v)
	if !ok {
		return models.UnknownValue
	}

	return s
}

// numericField is like stringField but defaults to "0" for count-like
// values such as pool sizes.
func numericField(node map[string]interface{}, key string) string {
	v, ok := node[key]
	if !ok {
		return "0"
	}

	s, ok := asString(v)
	if !ok {
		return "0"
	}

	return s
}

func countField(node map[string]interface{}, key string) int {
	switch v := node[key].(type) {
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0
		}

		return n
	default:
		return 0
	}
}

func asString(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10), true
		}

		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}
