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

package core

import (
	"errors"

	"github.com/magnusoverli/VirtEditor/pkg/logger"
	"github.com/magnusoverli/VirtEditor/pkg/shelfapi"
)

var (
	errHostRequired     = errors.New("device host is required")
	errUsernameRequired = errors.New("device username is required")
	errPasswordRequired = errors.New("device password is required")
)

// Config is the top-level application configuration.
type Config struct {
	Device  shelfapi.ClientConfig `json:"device"`
	Logging *logger.Config        `json:"logging"`
}

// Validate implements config.Validator.
func (c *Config) Validate() error {
	if c.Device.Host == "" {
		return errHostRequired
	}

	if c.Device.Username == "" {
		return errUsernameRequired
	}

	if c.Device.Password == "" {
		return errPasswordRequired
	}

	if c.Logging == nil {
		c.Logging = logger.DefaultConfig()
	}

	return nil
}
