// SPDX-FileCopyrightText: 2024 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package context

import (
	"fmt"
	"strings"
)

// PeerId identifies one transport association with a radio node. It is only
// unique while the association is open.
type PeerId uint32

// CompositeUeKey is the primary UE index key, derived from the owning
// association and the radio-assigned UE id.
type CompositeUeKey uint64

const (
	// RadioUeIdMask keeps the lower 24 bits of a radio-assigned UE id.
	RadioUeIdMask int64 = 0x00ffffff

	// CoreUeIdInvalid marks a UE whose core id has not been bound yet.
	CoreUeIdInvalid int64 = 0xffffffffff

	// NonUeStream carries non-UE-associated signalling.
	NonUeStream uint16 = 0
)

// NewCompositeUeKey derives the primary key of a UE. Both the radio id path
// and the composite path of a lookup go through here so they always agree.
func NewCompositeUeKey(peerId PeerId, radioUeId int64) CompositeUeKey {
	return CompositeUeKey(uint64(peerId)<<32 | uint64(radioUeId&RadioUeIdMask))
}

func (k CompositeUeKey) PeerId() PeerId {
	return PeerId(uint64(k) >> 32)
}

func (k CompositeUeKey) RadioUeId() int64 {
	return int64(uint64(k) & uint64(RadioUeIdMask))
}

func (k CompositeUeKey) String() string {
	return fmt.Sprintf("%d:%d", k.PeerId(), k.RadioUeId())
}

// Imsi is a subscriber identity of up to 15 digits packed as BCD nibbles,
// most significant digit first, unused low nibbles set to 0xf.
type Imsi uint64

const (
	ImsiInvalid   Imsi = 0
	imsiMaxDigits      = 15
)

// ParseImsi packs a decimal IMSI string.
func ParseImsi(s string) (Imsi, error) {
	s = strings.TrimPrefix(s, "imsi-")
	if len(s) == 0 || len(s) > imsiMaxDigits {
		return ImsiInvalid, fmt.Errorf("invalid IMSI length %d", len(s))
	}
	var packed uint64
	for i := 0; i < 16; i++ {
		nibble := uint64(0xf)
		if i < len(s) {
			c := s[i]
			if c < '0' || c > '9' {
				return ImsiInvalid, fmt.Errorf("invalid IMSI digit %q", c)
			}
			nibble = uint64(c - '0')
		}
		packed = packed<<4 | nibble
	}
	return Imsi(packed), nil
}

func (i Imsi) Valid() bool {
	return i != ImsiInvalid
}

func (i Imsi) String() string {
	if !i.Valid() {
		return "invalid"
	}
	var b strings.Builder
	for shift := 60; shift >= 0; shift -= 4 {
		nibble := (uint64(i) >> uint(shift)) & 0xf
		if nibble == 0xf {
			break
		}
		b.WriteByte(byte('0' + nibble))
	}
	return b.String()
}

type AmfNfInfo struct {
	AmfName             string            `yaml:"name"`
	ServedGuamiList     []GuamiItem       `yaml:"servedGuamiList"`
	PlmnSupportList     []PlmnSupportItem `yaml:"plmnSupportList"`
	SupportedTaList     []SupportedTAItem `yaml:"supportedTaList"`
	RelativeAmfCapacity int64             `yaml:"relativeAmfCapacity"`
}

type GuamiItem struct {
	PlmnId      PlmnId `yaml:"plmnId"`
	AmfRegionId uint8  `yaml:"amfRegionId"`
	AmfSetId    uint16 `yaml:"amfSetId"`   // 10 bits
	AmfPointer  uint8  `yaml:"amfPointer"` // 6 bits
}

type PlmnSupportItem struct {
	PlmnId           PlmnId             `yaml:"plmnId"`
	SliceSupportList []SliceSupportItem `yaml:"sliceSupportList"`
}

type SupportedTAItem struct {
	Tac               string   `yaml:"tac"`
	BroadcastPlmnList []PlmnId `yaml:"broadcastPlmnList"`
}

type PlmnId struct {
	Mcc string `yaml:"mcc"`
	Mnc string `yaml:"mnc"`
}

func (p PlmnId) String() string {
	return p.Mcc + p.Mnc
}

type SliceSupportItem struct {
	Snssai SnssaiItem `yaml:"snssai"`
}

type SnssaiItem struct {
	Sst string `yaml:"sst"`
	Sd  string `yaml:"sd,omitempty"`
}

// Tai is a tracking area as advertised by a radio node.
type Tai struct {
	PlmnId PlmnId `yaml:"plmnId"`
	Tac    string `yaml:"tac"`
}

func (t Tai) String() string {
	return t.PlmnId.String() + "-" + t.Tac
}

// FiveGSTmsi is the temporary identity used to page a UE.
type FiveGSTmsi struct {
	AmfSetId   uint16
	AmfPointer uint8
	Tmsi       uint32
}
