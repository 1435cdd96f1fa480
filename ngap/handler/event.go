// SPDX-FileCopyrightText: 2024 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"github.com/omec-project/n2gw/context"
	"github.com/omec-project/n2gw/logger"
	ngap_message "github.com/omec-project/n2gw/ngap/message"
	"github.com/omec-project/ngap/ngapType"
)

func HandleEvent(gw *context.N2GWContext, ngapEvent context.NgapEvt) {
	logger.NgapLog.Debugf("NGAP event %s", ngapEvent.Type())

	switch ngapEvent.Type() {
	case context.AssociationUp:
		HandleAssociationUp(gw, ngapEvent)
	case context.AssociationDown:
		HandleAssociationDown(gw, ngapEvent)
	case context.ReleaseTimerExpiry:
		HandleReleaseTimerExpiry(gw, ngapEvent)
	case context.PeerResetGuardExpiry:
		HandlePeerResetGuardExpiry(gw, ngapEvent)
	case context.CoreIdNotification:
		HandleCoreIdNotification(gw, ngapEvent)
	case context.DownlinkNasRequest:
		HandleDownlinkNasRequest(gw, ngapEvent)
	case context.InitialContextSetupRequest:
		HandleInitialContextSetupRequestEvt(gw, ngapEvent)
	case context.UeContextReleaseCommand:
		HandleUeContextReleaseCommandEvt(gw, ngapEvent)
	case context.PagingRequest:
		HandlePagingRequest(gw, ngapEvent)
	case context.PeerResetRequest:
		HandlePeerResetRequest(gw, ngapEvent)
	default:
		logger.NgapLog.Errorf("undefined NGAP event type")
		return
	}
}

func HandleAssociationUp(gw *context.N2GWContext, ngapEvent context.NgapEvt) {
	evt := ngapEvent.(*context.AssociationUpEvt)
	logger.NgapLog.Infof("association up, peer %d streams in[%d] out[%d]", evt.PeerId, evt.InStreams, evt.OutStreams)

	if _, err := gw.Registry.RegisterPeer(evt.PeerId, evt.InStreams, evt.OutStreams); err != nil {
		// NG Setup from this peer is rejected later on
		logger.NgapLog.Warnf("register peer %d failed: %+v", evt.PeerId, err)
	}
}

func HandleAssociationDown(gw *context.N2GWContext, ngapEvent context.NgapEvt) {
	evt := ngapEvent.(*context.AssociationDownEvt)
	logger.NgapLog.Infof("association down, peer %d reason %s", evt.PeerId, evt.Reason)

	if evt.Reason == context.AssociationRestart {
		restartPeer(gw, evt.PeerId)
		return
	}

	removed, err := gw.Registry.RemovePeer(evt.PeerId)
	if err != nil {
		logger.NgapLog.Debugf("remove peer %d: %+v", evt.PeerId, err)
		return
	}
	for _, ue := range removed {
		_ = gw.Correlator.Notify(ue, &context.UeReleased{Cause: context.ReleaseCauseAssociationReset})
	}
}

// restartPeer handles a transport restart: the peer keeps its slot but loses
// its setup and every UE.
func restartPeer(gw *context.N2GWContext, peerId context.PeerId) {
	peer, ok := gw.Registry.LookupPeer(peerId)
	if !ok {
		logger.NgapLog.Debugf("restart of unknown peer %d", peerId)
		return
	}

	keys := peer.UeKeys()
	if peer.State() == context.PeerReady {
		var err error
		if keys, err = gw.Registry.ResetPeer(peerId); err != nil {
			logger.NgapLog.Errorf("reset peer %d: %+v", peerId, err)
			return
		}
	}

	for _, key := range keys {
		if ue, ok := gw.Registry.LookupByKey(key); ok {
			releaseLocally(gw, ue, context.ReleaseCauseAssociationReset)
		}
	}
	logger.NgapLog.Infof("peer %d restarted, %d UE(s) released, state %s", peerId, len(keys), peer.State())
}

func HandleReleaseTimerExpiry(gw *context.N2GWContext, ngapEvent context.NgapEvt) {
	evt := ngapEvent.(*context.ReleaseTimerExpiryEvt)

	ue, ok := gw.Registry.LookupByKey(evt.Key)
	if !ok || ue.Seq() != evt.Seq {
		logger.NgapLog.Debugf("stale release timer of UE %s", evt.Key)
		return
	}
	logger.NgapLog.Warnf("UE %s: no UE Context Release Complete before timer expiry", ue.Key)
	if err := gw.StateMachine.ReleaseTimerExpired(ue); err != nil {
		logger.NgapLog.Debugf("release timer expiry: %+v", err)
		return
	}
	_ = gw.Correlator.Notify(ue, &context.UeReleased{Cause: context.ReleaseCauseImplicit})
}

func HandlePeerResetGuardExpiry(gw *context.N2GWContext, ngapEvent context.NgapEvt) {
	evt := ngapEvent.(*context.PeerResetGuardExpiryEvt)

	peer, ok := gw.Registry.LookupPeer(evt.PeerId)
	if !ok || peer.State() != context.PeerResetting {
		logger.NgapLog.Debugf("stale reset guard of peer %d", evt.PeerId)
		return
	}
	keys := peer.UeKeys()
	logger.NgapLog.Warnf("peer %d still has %d UE(s) after reset guard, release locally", evt.PeerId, len(keys))
	for _, key := range keys {
		if ue, ok := gw.Registry.LookupByKey(key); ok {
			releaseLocally(gw, ue, context.ReleaseCauseAssociationReset)
		}
	}
}

func HandleCoreIdNotification(gw *context.N2GWContext, ngapEvent context.NgapEvt) {
	evt := ngapEvent.(*context.CoreIdNotificationEvt)

	ue, err := gw.Correlator.Resolve(evt.Key)
	if err != nil {
		logUeResolveError("core id notification", err)
		return
	}
	if err := gw.Registry.BindCoreId(ue.Key, evt.Key.CoreUeId); err != nil {
		logger.NgapLog.Warnf("bind core id %d to UE %s: %+v", evt.Key.CoreUeId, ue.Key, err)
		return
	}
	if evt.Imsi.Valid() {
		if err := gw.Registry.BindImsi(evt.Key.CoreUeId, evt.Imsi); err != nil {
			logger.NgapLog.Warnf("bind IMSI %s to UE %s: %+v", evt.Imsi, ue.Key, err)
		}
	}
	logger.NgapLog.Debugf("UE %s bound to core id %d", ue.Key, evt.Key.CoreUeId)
}

func HandleDownlinkNasRequest(gw *context.N2GWContext, ngapEvent context.NgapEvt) {
	evt := ngapEvent.(*context.DownlinkNasRequestEvt)

	ue, err := gw.Correlator.Resolve(evt.Key)
	if err != nil {
		logUeResolveError("downlink NAS request", err)
		return
	}
	if !ue.CanTransport() {
		logger.NgapLog.Warnf("drop downlink NAS of UE %s in state %s", ue.Key, ue.State.Current())
		return
	}
	_ = ngap_message.SendDownlinkNASTransport(gw.Transport, ue, evt.NasPdu)
}

func HandleInitialContextSetupRequestEvt(gw *context.N2GWContext, ngapEvent context.NgapEvt) {
	evt := ngapEvent.(*context.InitialContextSetupRequestEvt)

	ue, err := gw.Correlator.Resolve(evt.Key)
	if err != nil {
		logUeResolveError("initial context setup request", err)
		return
	}
	if !ue.State.Is(context.WaitingContextSetup) || !ue.HasCoreUeId() {
		logger.NgapLog.Warnf("drop initial context setup of UE %s in state %s, core id[%d]",
			ue.Key, ue.State.Current(), ue.CoreUeId())
		return
	}
	_ = ngap_message.SendInitialContextSetupRequest(gw.Transport, ue, gw.AmfInfo, evt.NasPdu, evt.SecurityKey)
}

func HandleUeContextReleaseCommandEvt(gw *context.N2GWContext, ngapEvent context.NgapEvt) {
	evt := ngapEvent.(*context.UeContextReleaseCommandEvt)

	ue, err := gw.Correlator.Resolve(evt.Key)
	if err != nil {
		logUeResolveError("release command", err)
		return
	}
	if evt.Cause.Local() || !ue.HasCoreUeId() {
		logger.NgapLog.Infof("release UE %s locally, cause %s", ue.Key, evt.Cause)
		releaseLocally(gw, ue, evt.Cause)
		return
	}
	commandRelease(gw, ue, ngap_message.ReleaseCauseToNgap(evt.Cause))
}

// commandRelease sends UE Context Release Command and waits for completion.
func commandRelease(gw *context.N2GWContext, ue *context.UeContext, cause *ngapType.Cause) {
	if err := gw.StateMachine.ReleaseCommanded(ue); err != nil {
		logger.NgapLog.Warnf("release command: %+v", err)
		return
	}
	_ = ngap_message.SendUEContextReleaseCommand(gw.Transport, ue.PeerId, ue.StreamSend,
		ue.CoreUeId(), ue.RadioUeId, cause)
}

func HandlePagingRequest(gw *context.N2GWContext, ngapEvent context.NgapEvt) {
	evt := ngapEvent.(*context.PagingRequestEvt)

	sent := 0
	for _, peer := range gw.Registry.Peers() {
		if peer.State() != context.PeerReady {
			continue
		}
		for _, tai := range evt.TaiList {
			if !peer.SupportsTai(tai) {
				continue
			}
			if err := ngap_message.SendPaging(gw.Transport, peer.PeerId, evt.FiveGSTmsi, evt.TaiList); err == nil {
				sent++
			}
			break
		}
	}
	if sent == 0 {
		logger.NgapLog.Warnf("no ready peer serves the paging area of TMSI %08x", evt.FiveGSTmsi.Tmsi)
		return
	}
	logger.NgapLog.Debugf("paging sent to %d peer(s)", sent)
}

// HandlePeerResetRequest drains a READY peer: every UE is commanded to
// release and the peer is back in INIT once the last one is gone.
func HandlePeerResetRequest(gw *context.N2GWContext, ngapEvent context.NgapEvt) {
	evt := ngapEvent.(*context.PeerResetRequestEvt)

	keys, err := gw.Registry.ResetPeer(evt.PeerId)
	if err != nil {
		logger.NgapLog.Warnf("reset peer %d: %+v", evt.PeerId, err)
		return
	}
	logger.NgapLog.Infof("reset peer %d with %d UE(s)", evt.PeerId, len(keys))
	if len(keys) == 0 {
		return
	}

	if d := gw.PeerResetGuard(); d > 0 {
		peerId := evt.PeerId
		timer := context.NewTimer(d, func() {
			gw.Post(context.NewPeerResetGuardExpiryEvt(peerId))
		})
		gw.Registry.ArmPeerResetGuard(peerId, timer)
	}

	cause := ngap_message.BuildCause(ngapType.CausePresentMisc, ngapType.CauseMiscPresentOmIntervention)
	for _, key := range keys {
		ue, ok := gw.Registry.LookupByKey(key)
		if !ok {
			continue
		}
		switch {
		case ue.State.Is(context.WaitingRelease):
			// already waiting for completion
		case ue.HasCoreUeId():
			commandRelease(gw, ue, cause)
		default:
			releaseLocally(gw, ue, context.ReleaseCauseAssociationReset)
		}
	}
}
