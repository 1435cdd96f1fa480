// SPDX-FileCopyrightText: 2024 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/omec-project/aper"
	"github.com/omec-project/n2gw/context"
	"github.com/omec-project/n2gw/logger"
	"github.com/omec-project/ngap/ngapType"
)

func PlmnIdToNgap(plmnId context.PlmnId) (ngapPlmnId ngapType.PLMNIdentity) {
	var hexString string
	mcc := strings.Split(plmnId.Mcc, "")
	mnc := strings.Split(plmnId.Mnc, "")
	if len(mcc) != 3 || len(mnc) < 2 || len(mnc) > 3 {
		logger.UtilLog.Errorf("invalid PLMN id %s", plmnId)
		return
	}
	if len(plmnId.Mnc) == 2 {
		hexString = mcc[1] + mcc[0] + "f" + mcc[2] + mnc[1] + mnc[0]
	} else {
		hexString = mcc[1] + mcc[0] + mnc[0] + mcc[2] + mnc[2] + mnc[1]
	}
	var err error
	ngapPlmnId.Value, err = hex.DecodeString(hexString)
	if err != nil {
		logger.UtilLog.Errorf("decode string error: %+v", err)
	}
	return
}

func PlmnIdFromNgap(ngapPlmnId ngapType.PLMNIdentity) (plmnId context.PlmnId) {
	value := ngapPlmnId.Value
	if len(value) != 3 {
		return
	}
	hexString := strings.Split(hex.EncodeToString(value), "")
	plmnId.Mcc = hexString[1] + hexString[0] + hexString[3]
	if hexString[2] == "f" {
		plmnId.Mnc = hexString[5] + hexString[4]
	} else {
		plmnId.Mnc = hexString[2] + hexString[5] + hexString[4]
	}
	return
}

func TacToNgap(tac string) (ngapType.TAC, error) {
	value, err := hex.DecodeString(tac)
	if err != nil {
		return ngapType.TAC{}, fmt.Errorf("decode TAC %q: %w", tac, err)
	}
	if len(value) != 3 {
		return ngapType.TAC{}, fmt.Errorf("TAC %q is not 3 octets", tac)
	}
	return ngapType.TAC{Value: value}, nil
}

func TacFromNgap(tac ngapType.TAC) string {
	return hex.EncodeToString(tac.Value)
}

func TaiToNgap(tai context.Tai) (ngapType.TAI, error) {
	tac, err := TacToNgap(tai.Tac)
	if err != nil {
		return ngapType.TAI{}, err
	}
	return ngapType.TAI{PLMNIdentity: PlmnIdToNgap(tai.PlmnId), TAC: tac}, nil
}

func TaiFromNgap(tai ngapType.TAI) context.Tai {
	return context.Tai{PlmnId: PlmnIdFromNgap(tai.PLMNIdentity), Tac: TacFromNgap(tai.TAC)}
}

func AmfRegionIdToNgap(regionId uint8) aper.BitString {
	return aper.BitString{Bytes: []byte{regionId}, BitLength: 8}
}

// AmfSetIdToNgap encodes the 10 bit AMF set id, left aligned.
func AmfSetIdToNgap(setId uint16) aper.BitString {
	v := setId & 0x3ff
	return aper.BitString{Bytes: []byte{byte(v >> 2), byte(v&0x3) << 6}, BitLength: 10}
}

func AmfSetIdFromNgap(bs aper.BitString) uint16 {
	if len(bs.Bytes) < 2 {
		return 0
	}
	return uint16(bs.Bytes[0])<<2 | uint16(bs.Bytes[1])>>6
}

// AmfPointerToNgap encodes the 6 bit AMF pointer, left aligned.
func AmfPointerToNgap(pointer uint8) aper.BitString {
	return aper.BitString{Bytes: []byte{(pointer & 0x3f) << 2}, BitLength: 6}
}

func AmfPointerFromNgap(bs aper.BitString) uint8 {
	if len(bs.Bytes) < 1 {
		return 0
	}
	return bs.Bytes[0] >> 2
}

func GuamiToNgap(guami context.GuamiItem) ngapType.GUAMI {
	return ngapType.GUAMI{
		PLMNIdentity: PlmnIdToNgap(guami.PlmnId),
		AMFRegionID:  ngapType.AMFRegionID{Value: AmfRegionIdToNgap(guami.AmfRegionId)},
		AMFSetID:     ngapType.AMFSetID{Value: AmfSetIdToNgap(guami.AmfSetId)},
		AMFPointer:   ngapType.AMFPointer{Value: AmfPointerToNgap(guami.AmfPointer)},
	}
}

// GnbIdFromNgap extracts a 22 to 32 bit gNB id.
func GnbIdFromNgap(bs aper.BitString) (uint32, uint8, error) {
	if bs.BitLength < 22 || bs.BitLength > 32 || uint64(len(bs.Bytes))*8 < bs.BitLength {
		return 0, 0, fmt.Errorf("invalid gNB id bit length %d", bs.BitLength)
	}
	padded := make([]byte, 4)
	copy(padded, bs.Bytes)
	return binary.BigEndian.Uint32(padded) >> (32 - bs.BitLength), uint8(bs.BitLength), nil
}

func GnbIdToNgap(gnbId uint32, bitLength uint8) aper.BitString {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, gnbId<<(32-uint32(bitLength)))
	return aper.BitString{Bytes: buf[:(bitLength+7)/8], BitLength: uint64(bitLength)}
}

func SnssaiToNgap(snssai context.SnssaiItem) (ngapType.SNSSAI, error) {
	var ngapSnssai ngapType.SNSSAI
	sst, err := strconv.ParseUint(snssai.Sst, 10, 8)
	if err != nil {
		return ngapSnssai, fmt.Errorf("invalid sst %q: %w", snssai.Sst, err)
	}
	ngapSnssai.SST.Value = []byte{byte(sst)}
	if snssai.Sd != "" {
		sd, err := hex.DecodeString(snssai.Sd)
		if err != nil || len(sd) != 3 {
			return ngapSnssai, fmt.Errorf("invalid sd %q", snssai.Sd)
		}
		ngapSnssai.SD = &ngapType.SD{Value: sd}
	}
	return ngapSnssai, nil
}

func FiveGSTmsiFromNgap(tmsi ngapType.FiveGSTMSI) context.FiveGSTmsi {
	var value uint32
	if len(tmsi.FiveGTMSI.Value) == 4 {
		value = binary.BigEndian.Uint32(tmsi.FiveGTMSI.Value)
	}
	return context.FiveGSTmsi{
		AmfSetId:   AmfSetIdFromNgap(tmsi.AMFSetID.Value),
		AmfPointer: AmfPointerFromNgap(tmsi.AMFPointer.Value),
		Tmsi:       value,
	}
}

func FiveGSTmsiToNgap(tmsi context.FiveGSTmsi) ngapType.FiveGSTMSI {
	value := make([]byte, 4)
	binary.BigEndian.PutUint32(value, tmsi.Tmsi)
	return ngapType.FiveGSTMSI{
		AMFSetID:   ngapType.AMFSetID{Value: AmfSetIdToNgap(tmsi.AmfSetId)},
		AMFPointer: ngapType.AMFPointer{Value: AmfPointerToNgap(tmsi.AmfPointer)},
		FiveGTMSI:  ngapType.FiveGTMSI{Value: value},
	}
}
