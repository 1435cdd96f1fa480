// SPDX-FileCopyrightText: 2024 Intel Corporation
// Copyright 2021 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package context

import (
	"time"

	"github.com/omec-project/util/fsm"
)

// RadioUeIdInvalid marks an absent radio-assigned UE id in lookups.
const RadioUeIdInvalid int64 = -1

// UeContext is the signalling state of one UE on one association. The
// composite key table of the Registry owns it; the core id and IMSI tables
// only refer to it.
type UeContext struct {
	Key        CompositeUeKey
	PeerId     PeerId
	RadioUeId  int64
	StreamRecv uint16
	StreamSend uint16
	State      *fsm.State
	CreatedAt  time.Time

	// incarnation number, distinguishes a reused composite key
	seq          uint64
	coreUeId     int64
	imsi         Imsi
	releaseTimer *Timer
}

func newUeContext(seq uint64, peerId PeerId, radioUeId int64, streamRecv, streamSend uint16) *UeContext {
	return &UeContext{
		Key:        NewCompositeUeKey(peerId, radioUeId),
		PeerId:     peerId,
		RadioUeId:  radioUeId,
		StreamRecv: streamRecv,
		StreamSend: streamSend,
		State:      fsm.NewState(WaitingContextSetup),
		CreatedAt:  time.Now(),
		seq:        seq,
		coreUeId:   CoreUeIdInvalid,
	}
}

func (ue *UeContext) Seq() uint64 {
	return ue.seq
}

// CoreUeId returns CoreUeIdInvalid until Registry.BindCoreId succeeds.
func (ue *UeContext) CoreUeId() int64 {
	return ue.coreUeId
}

func (ue *UeContext) HasCoreUeId() bool {
	return ue.coreUeId != CoreUeIdInvalid
}

func (ue *UeContext) Imsi() Imsi {
	return ue.imsi
}

// CanTransport reports whether NAS transport is allowed in the current state.
func (ue *UeContext) CanTransport() bool {
	return ue.State.Is(Connected)
}

func (ue *UeContext) stopReleaseTimer() {
	if ue.releaseTimer != nil {
		ue.releaseTimer.Stop()
		ue.releaseTimer = nil
	}
}
