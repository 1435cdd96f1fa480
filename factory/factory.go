// SPDX-FileCopyrightText: 2024 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package factory

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/omec-project/n2gw/logger"
	"gopkg.in/yaml.v2"
)

var (
	N2gwConfig Config
	cfgPath    string
	cfgMu      sync.RWMutex
)

func InitConfigFactory(f string) error {
	cfg, err := readConfig(f)
	if err != nil {
		return err
	}

	cfgMu.Lock()
	N2gwConfig = *cfg
	cfgPath = f
	cfgMu.Unlock()
	return nil
}

func readConfig(f string) (*Config, error) {
	content, err := os.ReadFile(f)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err = yaml.UnmarshalStrict(content, cfg); err != nil {
		return nil, err
	}
	if cfg.Configuration == nil {
		return nil, fmt.Errorf("config file %s has no configuration section", f)
	}
	cfg.Configuration.setDefaults()
	return cfg, nil
}

func CheckConfigVersion() error {
	cfgMu.RLock()
	currentVersion := N2gwConfig.getVersion()
	cfgMu.RUnlock()

	if currentVersion != N2GW_EXPECTED_CONFIG_VERSION {
		return fmt.Errorf("config version is [%s], but expected is [%s]",
			currentVersion, N2GW_EXPECTED_CONFIG_VERSION)
	}

	logger.CfgLog.Infof("config version [%s]", currentVersion)

	return nil
}

// GetConfiguration returns a copy of the current configuration section.
func GetConfiguration() Configuration {
	cfgMu.RLock()
	defer cfgMu.RUnlock()
	if N2gwConfig.Configuration == nil {
		return Configuration{}
	}
	return *N2gwConfig.Configuration
}

// GetLogger returns the logger section, nil when absent.
func GetLogger() *Logger {
	cfgMu.RLock()
	defer cfgMu.RUnlock()
	return N2gwConfig.Logger
}

// ReloadConfig re-reads the file given to InitConfigFactory. Only timers and
// log levels take effect on a running gateway; the other fields are kept.
// The correlation timeout applies to requests sent after the reload.
func ReloadConfig() error {
	cfgMu.RLock()
	path := cfgPath
	cfgMu.RUnlock()
	if path == "" {
		return fmt.Errorf("configuration was never loaded")
	}

	cfg, err := readConfig(path)
	if err != nil {
		return err
	}
	if cfg.getVersion() != N2GW_EXPECTED_CONFIG_VERSION {
		return fmt.Errorf("config version is [%s], but expected is [%s]",
			cfg.getVersion(), N2GW_EXPECTED_CONFIG_VERSION)
	}

	cfgMu.Lock()
	defer cfgMu.Unlock()
	N2gwConfig.Info = cfg.Info
	N2gwConfig.Logger = cfg.Logger
	if N2gwConfig.Configuration == nil {
		N2gwConfig.Configuration = cfg.Configuration
	} else {
		current := *N2gwConfig.Configuration
		current.Timers = cfg.Configuration.Timers
		N2gwConfig.Configuration = &current
	}
	logger.CfgLog.Infof("configuration reloaded from %s", path)
	return nil
}

// UeContextReleaseTimeout is read on every use so that a reload applies to
// the next armed timer.
func UeContextReleaseTimeout() time.Duration {
	return GetConfiguration().Timers.UeContextReleaseComplete
}

func CorrelationTimeout() time.Duration {
	return GetConfiguration().Timers.CorrelationTimeout
}

func PeerResetGuardTimeout() time.Duration {
	return GetConfiguration().Timers.PeerResetGuard
}
