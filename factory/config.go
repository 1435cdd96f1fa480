// SPDX-FileCopyrightText: 2024 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package factory

import (
	"time"

	"github.com/omec-project/n2gw/context"
	utilLogger "github.com/omec-project/util/logger"
)

const (
	N2GW_EXPECTED_CONFIG_VERSION = "1.0.0"

	N2GW_DEFAULT_NGAP_PORT   = 38412
	N2GW_DEFAULT_OUT_STREAMS = 2
	N2GW_DEFAULT_IN_STREAMS  = 32
	N2GW_DEFAULT_QUEUE_LEN   = 1024
)

type Config struct {
	Info          *Info          `yaml:"info"`
	Configuration *Configuration `yaml:"configuration"`
	Logger        *Logger        `yaml:"logger"`
}

type Info struct {
	Version     string `yaml:"version,omitempty"`
	Description string `yaml:"description,omitempty"`
}

type Logger struct {
	N2GW *utilLogger.LogSetting `yaml:"N2GW,omitempty"`
	NGAP *utilLogger.LogSetting `yaml:"NGAP,omitempty"`
	Aper *utilLogger.LogSetting `yaml:"Aper,omitempty"`
	Util *utilLogger.LogSetting `yaml:"Util,omitempty"`
}

type Configuration struct {
	AmfInfo           context.AmfNfInfo `yaml:"amfInformation"`
	SctpBindAddresses []string          `yaml:"sctpBindAddresses"`
	Port              int               `yaml:"port,omitempty"`
	NumOutStreams     uint16            `yaml:"numOutStreams,omitempty"`
	MaxInStreams      uint16            `yaml:"maxInStreams,omitempty"`
	MaxPeers          int               `yaml:"maxPeers,omitempty"`
	MaxUes            int               `yaml:"maxUes,omitempty"`
	QueueLength       int               `yaml:"queueLength,omitempty"`
	Timers            Timers            `yaml:"timers"`
	Metrics           Metrics           `yaml:"metrics"`
	SnapshotFile      string            `yaml:"snapshotFile,omitempty"`
}

// Timers are given as duration strings, e.g. "1s" or "500ms".
type Timers struct {
	UeContextReleaseComplete time.Duration `yaml:"ueContextReleaseComplete,omitempty"`
	PeerResetGuard           time.Duration `yaml:"peerResetGuard,omitempty"`
	CorrelationTimeout       time.Duration `yaml:"correlationTimeout,omitempty"`
}

type Metrics struct {
	Enable   bool   `yaml:"enable"`
	BindAddr string `yaml:"bindAddr,omitempty"` // e.g. 0.0.0.0:9089
}

func (c *Config) getVersion() string {
	if c.Info != nil && c.Info.Version != "" {
		return c.Info.Version
	}
	return ""
}

// setDefaults fills the optional fields left empty in the file.
func (c *Configuration) setDefaults() {
	if c.Port == 0 {
		c.Port = N2GW_DEFAULT_NGAP_PORT
	}
	if c.NumOutStreams == 0 {
		c.NumOutStreams = N2GW_DEFAULT_OUT_STREAMS
	}
	if c.MaxInStreams == 0 {
		c.MaxInStreams = N2GW_DEFAULT_IN_STREAMS
	}
	if c.QueueLength == 0 {
		c.QueueLength = N2GW_DEFAULT_QUEUE_LEN
	}
	if c.Timers.UeContextReleaseComplete == 0 {
		c.Timers.UeContextReleaseComplete = time.Second
	}
	if c.Timers.CorrelationTimeout == 0 {
		c.Timers.CorrelationTimeout = 10 * time.Second
	}
	if c.Metrics.Enable && c.Metrics.BindAddr == "" {
		c.Metrics.BindAddr = "0.0.0.0:9089"
	}
}
