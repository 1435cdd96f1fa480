// SPDX-FileCopyrightText: 2024 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/ishidawataru/sctp"
	"github.com/omec-project/n2gw/context"
	"github.com/omec-project/n2gw/factory"
	"github.com/omec-project/n2gw/logger"
	"github.com/vishvananda/netlink"
)

const (
	requiredTacLength int = 6
	requiredSdLength  int = 6
)

// ValidateConfiguration checks the configuration section and normalizes TAC
// and SD values in place. It is called once before any task starts.
func ValidateConfiguration(cfg *factory.Configuration) bool {
	if cfg == nil {
		logger.CtxLog.Errorln("no N2GW configuration found")
		return false
	}

	info := &cfg.AmfInfo
	if !checkEmpty(info.AmfName, "AMF name is empty") {
		return false
	}
	if len(info.ServedGuamiList) == 0 {
		logger.CtxLog.Errorln("served GUAMI list is empty")
		return false
	}
	for _, guami := range info.ServedGuamiList {
		if !validPlmnId(guami.PlmnId) {
			return false
		}
		if guami.AmfSetId > 0x3ff {
			logger.CtxLog.Errorf("AMF set id %d exceeds 10 bits", guami.AmfSetId)
			return false
		}
		if guami.AmfPointer > 0x3f {
			logger.CtxLog.Errorf("AMF pointer %d exceeds 6 bits", guami.AmfPointer)
			return false
		}
	}
	if len(info.PlmnSupportList) == 0 {
		logger.CtxLog.Errorln("PLMN support list is empty")
		return false
	}
	if !formatPlmnSupportList(info) {
		return false
	}
	if !formatSupportedTAList(info) {
		return false
	}
	if info.RelativeAmfCapacity < 0 || info.RelativeAmfCapacity > 255 {
		logger.CtxLog.Errorf("relative AMF capacity %d out of range", info.RelativeAmfCapacity)
		return false
	}

	if len(cfg.SctpBindAddresses) == 0 {
		logger.CtxLog.Errorln("no SCTP bind address specified")
		return false
	}
	if cfg.NumOutStreams == 0 || cfg.MaxInStreams == 0 {
		logger.CtxLog.Errorln("SCTP stream counts must be > 0")
		return false
	}
	if cfg.MaxPeers < 0 || cfg.MaxUes < 0 {
		logger.CtxLog.Errorln("peer and UE limits must be >= 0")
		return false
	}
	return true
}

// ResolveSctpBindAddress builds the multi-homed listen address.
func ResolveSctpBindAddress(cfg *factory.Configuration) (*sctp.SCTPAddr, error) {
	localAddr := &sctp.SCTPAddr{Port: cfg.Port}
	for _, addr := range cfg.SctpBindAddresses {
		ipAddr, err := net.ResolveIPAddr("ip", addr)
		if err != nil {
			return nil, fmt.Errorf("resolve SCTP bind address %s: %w", addr, err)
		}
		localAddr.IPAddrs = append(localAddr.IPAddrs, *ipAddr)
	}
	checkBindInterfaces(localAddr)
	return localAddr, nil
}

// checkBindInterfaces warns about bind addresses no local link carries. A
// wildcard address is always accepted.
func checkBindInterfaces(localAddr *sctp.SCTPAddr) {
	addrs, err := netlink.AddrList(nil, netlink.FAMILY_ALL)
	if err != nil {
		logger.CtxLog.Warnf("list local addresses failed: %+v", err)
		return
	}
	for _, ipAddr := range localAddr.IPAddrs {
		if ipAddr.IP.IsUnspecified() {
			continue
		}
		found := false
		for _, addr := range addrs {
			if addr.IPNet != nil && addr.IPNet.IP.Equal(ipAddr.IP) {
				logger.CtxLog.Infof("SCTP bind address %s on link index %d", ipAddr.IP, addr.LinkIndex)
				found = true
				break
			}
		}
		if !found {
			logger.CtxLog.Warnf("SCTP bind address %s is not configured on any local link", ipAddr.IP)
		}
	}
}

// Helper to check empty string config
func checkEmpty(val, msg string) bool {
	if val == "" {
		logger.CtxLog.Errorln(msg)
		return false
	}
	return true
}

func validPlmnId(plmnId context.PlmnId) bool {
	if len(plmnId.Mcc) != 3 || !isDigits(plmnId.Mcc) {
		logger.CtxLog.Errorf("invalid MCC %q", plmnId.Mcc)
		return false
	}
	if len(plmnId.Mnc) < 2 || len(plmnId.Mnc) > 3 || !isDigits(plmnId.Mnc) {
		logger.CtxLog.Errorf("invalid MNC %q", plmnId.Mnc)
		return false
	}
	return true
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func formatPlmnSupportList(info *context.AmfNfInfo) bool {
	for plmnIndex := range info.PlmnSupportList {
		plmnItem := &info.PlmnSupportList[plmnIndex]
		if !validPlmnId(plmnItem.PlmnId) {
			return false
		}
		if len(plmnItem.SliceSupportList) == 0 {
			logger.CtxLog.Errorf("PLMN %s has no slice", plmnItem.PlmnId)
			return false
		}
		for sliceIndex := range plmnItem.SliceSupportList {
			snssai := &plmnItem.SliceSupportList[sliceIndex].Snssai

			// Sst
			if snssai.Sst == "" {
				logger.CtxLog.Errorln("sst is mandatory")
				return false
			}
			if _, err := strconv.ParseUint(snssai.Sst, 10, 8); err != nil {
				logger.CtxLog.Errorf("invalid sst %q", snssai.Sst)
				return false
			}

			// Sd
			if snssai.Sd == "" {
				logger.CtxLog.Infoln("Snssai does not include sd")
				continue
			}
			sdLength := len(snssai.Sd)
			if sdLength > requiredSdLength {
				logger.CtxLog.Errorf("detected configuration sd length > %d", requiredSdLength)
				return false
			}
			if sdLength < requiredSdLength {
				logger.CtxLog.Debugf("detected configuration sd length < %d", requiredSdLength)
				snssai.Sd = strings.Repeat("0", requiredSdLength-sdLength) + snssai.Sd
				logger.CtxLog.Debugf("change to %s", snssai.Sd)
			}
		}
	}
	return true
}

func formatSupportedTAList(info *context.AmfNfInfo) bool {
	for taListIndex := range info.SupportedTaList {
		supportedTAItem := &info.SupportedTaList[taListIndex]

		// Checking Tac
		tacLength := len(supportedTAItem.Tac)
		if tacLength == 0 {
			logger.CtxLog.Errorln("tac is mandatory")
			return false
		}
		switch {
		case tacLength < requiredTacLength:
			logger.CtxLog.Debugf("detected configuration Tac length < %d", requiredTacLength)
			supportedTAItem.Tac = strings.Repeat("0", requiredTacLength-tacLength) + supportedTAItem.Tac
			logger.CtxLog.Debugf("changed to %s", supportedTAItem.Tac)
		case tacLength > requiredTacLength:
			logger.CtxLog.Errorf("detected configuration Tac length > %d", requiredTacLength)
			return false
		}

		for _, plmnId := range supportedTAItem.BroadcastPlmnList {
			if !validPlmnId(plmnId) {
				return false
			}
		}
	}

	return true
}
