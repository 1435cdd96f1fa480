// SPDX-FileCopyrightText: 2024 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package context

import (
	"fmt"
	"time"

	"github.com/omec-project/n2gw/logger"
	"github.com/omec-project/util/fsm"
)

// UE context states
const (
	WaitingContextSetup fsm.StateType = "WaitingContextSetup"
	Connected           fsm.StateType = "Connected"
	WaitingRelease      fsm.StateType = "WaitingRelease"
	Released            fsm.StateType = "Released"
)

// UE context events
const (
	ContextSetupSuccessEvent fsm.EventType = "ContextSetupSuccess"
	ContextSetupFailureEvent fsm.EventType = "ContextSetupFailure"
	ReleaseCommandEvent      fsm.EventType = "ReleaseCommand"
	ReleaseCompleteEvent     fsm.EventType = "ReleaseComplete"
	ReleaseTimerExpiryEvent  fsm.EventType = "ReleaseTimerExpiry"
	LocalReleaseEvent        fsm.EventType = "LocalRelease"
)

const ArgUeContext string = "UE Context"

// ContextStateMachine applies UE lifecycle events. Entering WaitingRelease
// arms the release timer, leaving it stops the timer, and entering
// Released removes the UE from the registry.
type ContextStateMachine struct {
	fsm            *fsm.FSM
	registry       *Registry
	releaseTimeout func() time.Duration
	post           func(NgapEvt)
}

func NewContextStateMachine(registry *Registry, releaseTimeout func() time.Duration,
	post func(NgapEvt),
) (*ContextStateMachine, error) {
	sm := &ContextStateMachine{
		registry:       registry,
		releaseTimeout: releaseTimeout,
		post:           post,
	}

	f, err := fsm.NewFSM(fsm.Transitions{
		{Event: ContextSetupSuccessEvent, From: WaitingContextSetup, To: Connected},
		{Event: ContextSetupFailureEvent, From: WaitingContextSetup, To: Released},
		{Event: ReleaseCommandEvent, From: WaitingContextSetup, To: WaitingRelease},
		{Event: ReleaseCommandEvent, From: Connected, To: WaitingRelease},
		{Event: ReleaseCompleteEvent, From: WaitingRelease, To: Released},
		{Event: ReleaseTimerExpiryEvent, From: WaitingRelease, To: Released},
		{Event: LocalReleaseEvent, From: WaitingContextSetup, To: Released},
		{Event: LocalReleaseEvent, From: Connected, To: Released},
		{Event: LocalReleaseEvent, From: WaitingRelease, To: Released},
	}, fsm.Callbacks{
		WaitingContextSetup: sm.waitingContextSetup,
		Connected:           sm.connected,
		WaitingRelease:      sm.waitingRelease,
		Released:            sm.released,
	})
	if err != nil {
		return nil, err
	}
	sm.fsm = f
	return sm, nil
}

// ContextSetupSucceeded moves the UE to Connected. A response whose radio id
// differs from the stored one is rejected without a state change.
func (sm *ContextStateMachine) ContextSetupSucceeded(ue *UeContext, radioUeId int64) error {
	if ue.RadioUeId != radioUeId {
		return fmt.Errorf("%w: context setup for UE %s carries radio id %d, stored %d",
			ErrIdMismatch, ue.Key, radioUeId, ue.RadioUeId)
	}
	return sm.sendEvent(ue, ContextSetupSuccessEvent)
}

// ContextSetupFailed removes a UE whose context establishment failed.
func (sm *ContextStateMachine) ContextSetupFailed(ue *UeContext, radioUeId int64) error {
	if ue.RadioUeId != radioUeId {
		return fmt.Errorf("%w: context setup failure for UE %s carries radio id %d, stored %d",
			ErrIdMismatch, ue.Key, radioUeId, ue.RadioUeId)
	}
	return sm.sendEvent(ue, ContextSetupFailureEvent)
}

// ReleaseCommanded moves the UE to WaitingRelease and arms the release timer.
func (sm *ContextStateMachine) ReleaseCommanded(ue *UeContext) error {
	return sm.sendEvent(ue, ReleaseCommandEvent)
}

func (sm *ContextStateMachine) ReleaseCompleted(ue *UeContext) error {
	return sm.sendEvent(ue, ReleaseCompleteEvent)
}

func (sm *ContextStateMachine) ReleaseTimerExpired(ue *UeContext) error {
	return sm.sendEvent(ue, ReleaseTimerExpiryEvent)
}

// LocalRelease removes the UE from any live state without peer signalling.
func (sm *ContextStateMachine) LocalRelease(ue *UeContext) error {
	return sm.sendEvent(ue, LocalReleaseEvent)
}

func (sm *ContextStateMachine) sendEvent(ue *UeContext, event fsm.EventType) error {
	if err := sm.fsm.SendEvent(ue.State, event, fsm.ArgsType{ArgUeContext: ue}); err != nil {
		return fmt.Errorf("%w: UE %s: %v", ErrInvalidTransition, ue.Key, err)
	}
	return nil
}

func (sm *ContextStateMachine) waitingContextSetup(state *fsm.State, event fsm.EventType, args fsm.ArgsType) {
	ue := args[ArgUeContext].(*UeContext)
	switch event {
	case fsm.EntryEvent:
		logger.FsmLog.Debugf("UE %s waiting for context setup", ue.Key)
	case fsm.ExitEvent:
		logger.FsmLog.Debugf("UE %s leaves %s", ue.Key, state.Current())
	}
}

func (sm *ContextStateMachine) connected(state *fsm.State, event fsm.EventType, args fsm.ArgsType) {
	ue := args[ArgUeContext].(*UeContext)
	switch event {
	case fsm.EntryEvent:
		logger.FsmLog.Infof("UE %s core id[%d] connected", ue.Key, ue.coreUeId)
	case fsm.ExitEvent:
		logger.FsmLog.Debugf("UE %s leaves %s", ue.Key, state.Current())
	}
}

func (sm *ContextStateMachine) waitingRelease(state *fsm.State, event fsm.EventType, args fsm.ArgsType) {
	ue := args[ArgUeContext].(*UeContext)
	switch event {
	case fsm.EntryEvent:
		d := sm.releaseTimeout()
		key, seq := ue.Key, ue.seq
		ue.stopReleaseTimer()
		ue.releaseTimer = NewTimer(d, func() {
			sm.post(NewReleaseTimerExpiryEvt(key, seq))
		})
		logger.FsmLog.Debugf("UE %s release timer armed for %s", ue.Key, d)
	case fsm.ExitEvent:
		ue.stopReleaseTimer()
	}
}

func (sm *ContextStateMachine) released(state *fsm.State, event fsm.EventType, args fsm.ArgsType) {
	ue := args[ArgUeContext].(*UeContext)
	if event != fsm.EntryEvent {
		return
	}
	if sm.registry.removeUe(ue) {
		logger.FsmLog.Infof("UE %s core id[%d] released", ue.Key, ue.coreUeId)
	}
}
