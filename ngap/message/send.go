// SPDX-FileCopyrightText: 2024 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package message

import (
	"github.com/omec-project/aper"
	"github.com/omec-project/n2gw/context"
	"github.com/omec-project/n2gw/logger"
	"github.com/omec-project/n2gw/metrics"
	"github.com/omec-project/ngap/ngapType"
)

// Procedure names used in logs and metric labels
const (
	ProcNGSetup                  = "NGSetup"
	ProcInitialUEMessage         = "InitialUEMessage"
	ProcUplinkNASTransport       = "UplinkNASTransport"
	ProcDownlinkNASTransport     = "DownlinkNASTransport"
	ProcNASNonDeliveryIndication = "NASNonDeliveryIndication"
	ProcInitialContextSetup      = "InitialContextSetup"
	ProcUEContextReleaseRequest  = "UEContextReleaseRequest"
	ProcUEContextRelease         = "UEContextRelease"
	ProcPaging                   = "Paging"
	ProcNGReset                  = "NGReset"
	ProcErrorIndication          = "ErrorIndication"
	ProcUnknown                  = "unknown"
)

func SendToPeer(transport context.Transport, peerId context.PeerId, stream uint16,
	procedure string, pkt []byte,
) error {
	if transport == nil {
		logger.NgapLog.Errorf("no transport to send %s to peer %d", procedure, peerId)
		metrics.IncNgapMessage(procedure, metrics.Outbound, metrics.ResultSendError)
		return context.EvtError("transport is nil")
	}
	if err := transport.SendOnAssociation(peerId, stream, pkt); err != nil {
		logger.NgapLog.Errorf("send %s to peer %d stream %d failed: %+v", procedure, peerId, stream, err)
		metrics.IncNgapMessage(procedure, metrics.Outbound, metrics.ResultSendError)
		return err
	}
	logger.NgapLog.Debugf("wrote %d bytes of %s to peer %d stream %d", len(pkt), procedure, peerId, stream)
	metrics.IncNgapMessage(procedure, metrics.Outbound, metrics.ResultSent)
	return nil
}

func SendNGSetupResponse(transport context.Transport, peerId context.PeerId, amfInfo context.AmfNfInfo) error {
	logger.NgapLog.Infof("send NG Setup Response to peer %d", peerId)

	pkt, err := BuildNGSetupResponse(amfInfo)
	if err != nil {
		logger.NgapLog.Errorf("build NG Setup Response failed: %+v", err)
		return err
	}
	return SendToPeer(transport, peerId, context.NonUeStream, ProcNGSetup, pkt)
}

func SendNGSetupFailure(transport context.Transport, peerId context.PeerId, cause *ngapType.Cause,
	timeToWait *aper.Enumerated, criticalityDiagnostics *ngapType.CriticalityDiagnostics,
) error {
	logger.NgapLog.Infof("send NG Setup Failure to peer %d", peerId)

	pkt, err := BuildNGSetupFailure(cause, timeToWait, criticalityDiagnostics)
	if err != nil {
		logger.NgapLog.Errorf("build NG Setup Failure failed: %+v", err)
		return err
	}
	return SendToPeer(transport, peerId, context.NonUeStream, ProcNGSetup, pkt)
}

func SendDownlinkNASTransport(transport context.Transport, ue *context.UeContext, nasPdu []byte) error {
	logger.NgapLog.Debugf("send Downlink NAS Transport to UE %s", ue.Key)

	pkt, err := BuildDownlinkNASTransport(ue.CoreUeId(), ue.RadioUeId, nasPdu)
	if err != nil {
		logger.NgapLog.Errorf("build Downlink NAS Transport failed: %+v", err)
		return err
	}
	return SendToPeer(transport, ue.PeerId, ue.StreamSend, ProcDownlinkNASTransport, pkt)
}

func SendInitialContextSetupRequest(transport context.Transport, ue *context.UeContext,
	amfInfo context.AmfNfInfo, nasPdu, securityKey []byte,
) error {
	logger.NgapLog.Infof("send Initial Context Setup Request to UE %s", ue.Key)

	pkt, err := BuildInitialContextSetupRequest(ue.CoreUeId(), ue.RadioUeId, amfInfo, nasPdu, securityKey)
	if err != nil {
		logger.NgapLog.Errorf("build Initial Context Setup Request failed: %+v", err)
		return err
	}
	return SendToPeer(transport, ue.PeerId, ue.StreamSend, ProcInitialContextSetup, pkt)
}

// SendUEContextReleaseCommand answers on the given association even when no
// UE context exists, as for an unknown AMF UE NGAP ID.
func SendUEContextReleaseCommand(transport context.Transport, peerId context.PeerId, stream uint16,
	amfUeNgapId, ranUeNgapId int64, cause *ngapType.Cause,
) error {
	logger.NgapLog.Infof("send UE Context Release Command to peer %d, AMF UE NGAP ID[%d] RAN UE NGAP ID[%d]",
		peerId, amfUeNgapId, ranUeNgapId)

	pkt, err := BuildUEContextReleaseCommand(amfUeNgapId, ranUeNgapId, cause)
	if err != nil {
		logger.NgapLog.Errorf("build UE Context Release Command failed: %+v", err)
		return err
	}
	return SendToPeer(transport, peerId, stream, ProcUEContextRelease, pkt)
}

func SendPaging(transport context.Transport, peerId context.PeerId, tmsi context.FiveGSTmsi,
	taiList []context.Tai,
) error {
	logger.NgapLog.Debugf("send Paging to peer %d", peerId)

	pkt, err := BuildPaging(tmsi, taiList)
	if err != nil {
		logger.NgapLog.Errorf("build Paging failed: %+v", err)
		return err
	}
	return SendToPeer(transport, peerId, context.NonUeStream, ProcPaging, pkt)
}

func SendNGResetAcknowledge(transport context.Transport, peerId context.PeerId,
	partOfNGInterface *ngapType.UEAssociatedLogicalNGConnectionList,
	diagnostics *ngapType.CriticalityDiagnostics,
) error {
	logger.NgapLog.Infof("send NG Reset Acknowledge to peer %d", peerId)

	pkt, err := BuildNGResetAcknowledge(partOfNGInterface, diagnostics)
	if err != nil {
		logger.NgapLog.Errorf("build NG Reset Acknowledge failed: %+v", err)
		return err
	}
	return SendToPeer(transport, peerId, context.NonUeStream, ProcNGReset, pkt)
}

func SendErrorIndication(transport context.Transport, peerId context.PeerId, stream uint16,
	amfUeNgapId, ranUeNgapId *int64, cause *ngapType.Cause,
	criticalityDiagnostics *ngapType.CriticalityDiagnostics,
) error {
	logger.NgapLog.Infof("send Error Indication to peer %d", peerId)

	pkt, err := BuildErrorIndication(amfUeNgapId, ranUeNgapId, cause, criticalityDiagnostics)
	if err != nil {
		logger.NgapLog.Errorf("build Error Indication failed: %+v", err)
		return err
	}
	return SendToPeer(transport, peerId, stream, ProcErrorIndication, pkt)
}
