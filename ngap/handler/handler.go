// SPDX-FileCopyrightText: 2024 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"errors"
	"strconv"

	"github.com/omec-project/aper"
	"github.com/omec-project/n2gw/context"
	"github.com/omec-project/n2gw/logger"
	ngap_message "github.com/omec-project/n2gw/ngap/message"
	"github.com/omec-project/n2gw/util"
	"github.com/omec-project/ngap/ngapType"
)

func HandleNGSetupRequest(gw *context.N2GWContext, peerId context.PeerId, stream uint16,
	message *ngapType.NGAPPDU,
) {
	logger.NgapLog.Infof("handle NG Setup Request from peer %d", peerId)

	var globalRANNodeID *ngapType.GlobalRANNodeID
	var rANNodeName *ngapType.RANNodeName
	var supportedTAList *ngapType.SupportedTAList
	var pagingDRX *ngapType.PagingDRX

	var iesCriticalityDiagnostics ngapType.CriticalityDiagnosticsIEList

	if message == nil {
		logger.NgapLog.Errorln("NGAP Message is nil")
		return
	}

	initiatingMessage := message.InitiatingMessage
	if initiatingMessage == nil {
		logger.NgapLog.Errorln("initiating Message is nil")
		return
	}

	nGSetupRequest := initiatingMessage.Value.NGSetupRequest
	if nGSetupRequest == nil {
		logger.NgapLog.Errorln("NGSetupRequest is nil")
		return
	}

	for _, ie := range nGSetupRequest.ProtocolIEs.List {
		switch ie.Id.Value {
		case ngapType.ProtocolIEIDGlobalRANNodeID:
			logger.NgapLog.Debugln("decode IE GlobalRANNodeID")
			globalRANNodeID = ie.Value.GlobalRANNodeID
		case ngapType.ProtocolIEIDRANNodeName:
			logger.NgapLog.Debugln("decode IE RANNodeName")
			rANNodeName = ie.Value.RANNodeName
		case ngapType.ProtocolIEIDSupportedTAList:
			logger.NgapLog.Debugln("decode IE SupportedTAList")
			supportedTAList = ie.Value.SupportedTAList
		case ngapType.ProtocolIEIDDefaultPagingDRX:
			logger.NgapLog.Debugln("decode IE DefaultPagingDRX")
			pagingDRX = ie.Value.DefaultPagingDRX
		}
	}

	if globalRANNodeID == nil {
		logger.NgapLog.Errorln("GlobalRANNodeID is nil")
		item := buildCriticalityDiagnosticsIEItem(
			ngapType.CriticalityPresentReject, ngapType.ProtocolIEIDGlobalRANNodeID, ngapType.TypeOfErrorPresentMissing)
		iesCriticalityDiagnostics.List = append(iesCriticalityDiagnostics.List, item)
	}
	if supportedTAList == nil || len(supportedTAList.List) == 0 {
		logger.NgapLog.Errorln("SupportedTAList is nil")
		item := buildCriticalityDiagnosticsIEItem(
			ngapType.CriticalityPresentReject, ngapType.ProtocolIEIDSupportedTAList, ngapType.TypeOfErrorPresentMissing)
		iesCriticalityDiagnostics.List = append(iesCriticalityDiagnostics.List, item)
	}

	if len(iesCriticalityDiagnostics.List) > 0 {
		procedureCode := ngapType.ProcedureCodeNGSetup
		trigger := ngapType.TriggeringMessagePresentInitiatingMessage
		criticality := ngapType.CriticalityPresentReject
		criticalityDiagnostics := buildCriticalityDiagnostics(
			&procedureCode, &trigger, &criticality, &iesCriticalityDiagnostics)
		cause := ngap_message.BuildCause(ngapType.CausePresentProtocol,
			ngapType.CauseProtocolPresentAbstractSyntaxErrorReject)
		_ = ngap_message.SendNGSetupFailure(gw.Transport, peerId, cause, nil, &criticalityDiagnostics)
		return
	}

	peer, ok := gw.Registry.LookupPeer(peerId)
	if !ok {
		// the association was accepted but not registered: the peer limit was hit
		logger.NgapLog.Warnf("peer %d is not registered, reject NG Setup", peerId)
		cause := ngap_message.BuildCause(ngapType.CausePresentMisc, ngapType.CauseMiscPresentControlProcessingOverload)
		_ = ngap_message.SendNGSetupFailure(gw.Transport, peerId, cause, nil, nil)
		return
	}
	if peer.State() == context.PeerResetting {
		logger.NgapLog.Warnf("peer %d is resetting, reject NG Setup", peerId)
		cause := ngap_message.BuildCause(ngapType.CausePresentTransport,
			ngapType.CauseTransportPresentTransportResourceUnavailable)
		timeToWait := aper.Enumerated(ngapType.TimeToWaitPresentV20s)
		_ = ngap_message.SendNGSetupFailure(gw.Transport, peerId, cause, &timeToWait, nil)
		return
	}

	info, err := setupInfoFromNgap(globalRANNodeID, rANNodeName, supportedTAList, pagingDRX)
	if err != nil {
		logger.NgapLog.Errorf("invalid NG Setup Request from peer %d: %+v", peerId, err)
		cause := ngap_message.BuildCause(ngapType.CausePresentProtocol, ngapType.CauseProtocolPresentSemanticError)
		_ = ngap_message.SendNGSetupFailure(gw.Transport, peerId, cause, nil, nil)
		return
	}

	if !servesAnyPlmn(gw.AmfInfo, info.SupportedTaList) {
		logger.NgapLog.Warnf("peer %d broadcasts no served PLMN", peerId)
		cause := ngap_message.BuildCause(ngapType.CausePresentMisc, ngapType.CauseMiscPresentUnknownPLMN)
		_ = ngap_message.SendNGSetupFailure(gw.Transport, peerId, cause, nil, nil)
		return
	}

	if err := gw.Registry.SetPeerReady(peerId, info); err != nil {
		logger.NgapLog.Errorf("set peer %d ready failed: %+v", peerId, err)
		cause := ngap_message.BuildCause(ngapType.CausePresentMisc, ngapType.CauseMiscPresentUnspecified)
		_ = ngap_message.SendNGSetupFailure(gw.Transport, peerId, cause, nil, nil)
		return
	}
	logger.NgapLog.Infof("peer %d [%s] %s is ready", peerId, info.RanNodeName, info.GlobalRanNodeId)

	_ = ngap_message.SendNGSetupResponse(gw.Transport, peerId, gw.AmfInfo)
}

func setupInfoFromNgap(globalRANNodeID *ngapType.GlobalRANNodeID, rANNodeName *ngapType.RANNodeName,
	supportedTAList *ngapType.SupportedTAList, pagingDRX *ngapType.PagingDRX,
) (context.PeerSetupInfo, error) {
	var info context.PeerSetupInfo

	if globalRANNodeID.Present != ngapType.GlobalRANNodeIDPresentGlobalGNBID || globalRANNodeID.GlobalGNBID == nil {
		return info, errors.New("global RAN node ID is not a gNB ID")
	}
	globalGNBID := globalRANNodeID.GlobalGNBID
	if globalGNBID.GNBID.Present != ngapType.GNBIDPresentGNBID || globalGNBID.GNBID.GNBID == nil {
		return info, errors.New("gNB ID is absent")
	}
	gnbId, gnbIdLength, err := util.GnbIdFromNgap(*globalGNBID.GNBID.GNBID)
	if err != nil {
		return info, err
	}
	info.GlobalRanNodeId = context.GlobalRanNodeId{
		PlmnId:      util.PlmnIdFromNgap(globalGNBID.PLMNIdentity),
		GnbId:       gnbId,
		GnbIdLength: gnbIdLength,
	}

	if rANNodeName != nil {
		info.RanNodeName = rANNodeName.Value
	}
	if pagingDRX != nil {
		info.DefaultPagingDrx = int64(pagingDRX.Value)
	}

	for _, taItem := range supportedTAList.List {
		if len(taItem.TAC.Value) != 3 {
			return info, errors.New("TAC is not 3 octets")
		}
		tac := util.TacFromNgap(taItem.TAC)
		for _, plmnItem := range taItem.BroadcastPLMNList.List {
			info.SupportedTaList = append(info.SupportedTaList, context.Tai{
				PlmnId: util.PlmnIdFromNgap(plmnItem.PLMNIdentity),
				Tac:    tac,
			})
		}
	}
	if len(info.SupportedTaList) == 0 {
		return info, errors.New("supported TA list has no broadcast PLMN")
	}
	return info, nil
}

func servesAnyPlmn(amfInfo context.AmfNfInfo, taList []context.Tai) bool {
	for _, guami := range amfInfo.ServedGuamiList {
		for _, tai := range taList {
			if tai.PlmnId == guami.PlmnId {
				return true
			}
		}
	}
	return false
}

func HandleInitialUEMessage(gw *context.N2GWContext, peerId context.PeerId, stream uint16,
	message *ngapType.NGAPPDU,
) {
	logger.NgapLog.Infof("handle Initial UE Message from peer %d", peerId)

	var rANUENGAPID *ngapType.RANUENGAPID
	var nASPDU *ngapType.NASPDU
	var userLocationInformation *ngapType.UserLocationInformation
	var rRCEstablishmentCause *ngapType.RRCEstablishmentCause
	var fiveGSTMSI *ngapType.FiveGSTMSI

	var iesCriticalityDiagnostics ngapType.CriticalityDiagnosticsIEList

	if message == nil {
		logger.NgapLog.Errorln("NGAP Message is nil")
		return
	}

	initiatingMessage := message.InitiatingMessage
	if initiatingMessage == nil {
		logger.NgapLog.Errorln("initiating Message is nil")
		return
	}

	initialUEMessage := initiatingMessage.Value.InitialUEMessage
	if initialUEMessage == nil {
		logger.NgapLog.Errorln("InitialUEMessage is nil")
		return
	}

	for _, ie := range initialUEMessage.ProtocolIEs.List {
		switch ie.Id.Value {
		case ngapType.ProtocolIEIDRANUENGAPID:
			logger.NgapLog.Debugln("decode IE RanUeNgapID")
			rANUENGAPID = ie.Value.RANUENGAPID
		case ngapType.ProtocolIEIDNASPDU:
			logger.NgapLog.Debugln("decode IE NasPdu")
			nASPDU = ie.Value.NASPDU
		case ngapType.ProtocolIEIDUserLocationInformation:
			logger.NgapLog.Debugln("decode IE UserLocationInformation")
			userLocationInformation = ie.Value.UserLocationInformation
		case ngapType.ProtocolIEIDRRCEstablishmentCause:
			logger.NgapLog.Debugln("decode IE RRCEstablishmentCause")
			rRCEstablishmentCause = ie.Value.RRCEstablishmentCause
		case ngapType.ProtocolIEIDFiveGSTMSI:
			logger.NgapLog.Debugln("decode IE 5G-S-TMSI")
			fiveGSTMSI = ie.Value.FiveGSTMSI
		}
	}

	if rANUENGAPID == nil {
		logger.NgapLog.Errorln("RanUeNgapID is nil")
		item := buildCriticalityDiagnosticsIEItem(
			ngapType.CriticalityPresentReject, ngapType.ProtocolIEIDRANUENGAPID, ngapType.TypeOfErrorPresentMissing)
		iesCriticalityDiagnostics.List = append(iesCriticalityDiagnostics.List, item)
	}
	if nASPDU == nil {
		logger.NgapLog.Errorln("NasPdu is nil")
		item := buildCriticalityDiagnosticsIEItem(
			ngapType.CriticalityPresentReject, ngapType.ProtocolIEIDNASPDU, ngapType.TypeOfErrorPresentMissing)
		iesCriticalityDiagnostics.List = append(iesCriticalityDiagnostics.List, item)
	}
	if userLocationInformation == nil {
		logger.NgapLog.Errorln("UserLocationInformation is nil")
		item := buildCriticalityDiagnosticsIEItem(ngapType.CriticalityPresentReject,
			ngapType.ProtocolIEIDUserLocationInformation, ngapType.TypeOfErrorPresentMissing)
		iesCriticalityDiagnostics.List = append(iesCriticalityDiagnostics.List, item)
	}

	if len(iesCriticalityDiagnostics.List) > 0 {
		var ranUeNgapId *int64
		if rANUENGAPID != nil {
			ranUeNgapId = &rANUENGAPID.Value
		}
		sendMissingIEsErrorIndication(gw, peerId, stream, nil, ranUeNgapId,
			ngapType.ProcedureCodeInitialUEMessage, ngapType.CriticalityPresentIgnore, &iesCriticalityDiagnostics)
		return
	}
	ranUeNgapId := rANUENGAPID.Value

	peer, ok := gw.Registry.LookupPeer(peerId)
	if !ok || peer.State() != context.PeerReady {
		logger.NgapLog.Warnf("Initial UE Message from peer %d that is not ready", peerId)
		cause := ngap_message.BuildCause(ngapType.CausePresentProtocol,
			ngapType.CauseProtocolPresentMessageNotCompatibleWithReceiverState)
		_ = ngap_message.SendErrorIndication(gw.Transport, peerId, stream, nil, &ranUeNgapId, cause, nil)
		return
	}

	ue, err := gw.Registry.RegisterUe(peerId, ranUeNgapId, stream)
	if err != nil {
		switch context.KindOf(err) {
		case context.KindResourceExhaustion:
			logger.NgapLog.Warnf("reject UE %d from peer %d: %+v", ranUeNgapId, peerId, err)
			cause := ngap_message.BuildCause(ngapType.CausePresentMisc,
				ngapType.CauseMiscPresentControlProcessingOverload)
			_ = ngap_message.SendErrorIndication(gw.Transport, peerId, stream, nil, &ranUeNgapId, cause, nil)
		default:
			logger.NgapLog.Warnf("drop Initial UE Message: %+v", err)
		}
		return
	}

	payload := &context.InitialUeMessage{
		NasPdu: nASPDU.Value,
	}
	if tai := taiFromUserLocation(userLocationInformation); tai != nil {
		payload.Tai = tai
	}
	if rRCEstablishmentCause != nil {
		payload.RrcEstablishmentCause = int64(rRCEstablishmentCause.Value)
	}
	if fiveGSTMSI != nil {
		tmsi := util.FiveGSTmsiFromNgap(*fiveGSTMSI)
		payload.FiveGSTmsi = &tmsi
	}

	if _, err := gw.Correlator.SendRequest(ue.Key, payload); err != nil {
		logger.NgapLog.Warnf("forward Initial UE Message of UE %s failed: %+v", ue.Key, err)
		if err := gw.StateMachine.LocalRelease(ue); err != nil {
			logger.NgapLog.Errorf("release UE %s: %+v", ue.Key, err)
		}
	}
}

func HandleUplinkNASTransport(gw *context.N2GWContext, peerId context.PeerId, stream uint16,
	message *ngapType.NGAPPDU,
) {
	logger.NgapLog.Debugf("handle Uplink NAS Transport from peer %d", peerId)

	var aMFUENGAPID *ngapType.AMFUENGAPID
	var rANUENGAPID *ngapType.RANUENGAPID
	var nASPDU *ngapType.NASPDU
	var userLocationInformation *ngapType.UserLocationInformation

	var iesCriticalityDiagnostics ngapType.CriticalityDiagnosticsIEList

	if message == nil {
		logger.NgapLog.Errorln("NGAP Message is nil")
		return
	}

	initiatingMessage := message.InitiatingMessage
	if initiatingMessage == nil {
		logger.NgapLog.Errorln("initiating Message is nil")
		return
	}

	uplinkNASTransport := initiatingMessage.Value.UplinkNASTransport
	if uplinkNASTransport == nil {
		logger.NgapLog.Errorln("UplinkNASTransport is nil")
		return
	}

	for _, ie := range uplinkNASTransport.ProtocolIEs.List {
		switch ie.Id.Value {
		case ngapType.ProtocolIEIDAMFUENGAPID:
			logger.NgapLog.Debugln("decode IE AmfUeNgapID")
			aMFUENGAPID = ie.Value.AMFUENGAPID
		case ngapType.ProtocolIEIDRANUENGAPID:
			logger.NgapLog.Debugln("decode IE RanUeNgapID")
			rANUENGAPID = ie.Value.RANUENGAPID
		case ngapType.ProtocolIEIDNASPDU:
			logger.NgapLog.Debugln("decode IE NasPdu")
			nASPDU = ie.Value.NASPDU
		case ngapType.ProtocolIEIDUserLocationInformation:
			logger.NgapLog.Debugln("decode IE UserLocationInformation")
			userLocationInformation = ie.Value.UserLocationInformation
		}
	}

	if aMFUENGAPID == nil {
		logger.NgapLog.Errorln("AmfUeNgapID is nil")
		item := buildCriticalityDiagnosticsIEItem(
			ngapType.CriticalityPresentReject, ngapType.ProtocolIEIDAMFUENGAPID, ngapType.TypeOfErrorPresentMissing)
		iesCriticalityDiagnostics.List = append(iesCriticalityDiagnostics.List, item)
	}
	if rANUENGAPID == nil {
		logger.NgapLog.Errorln("RanUeNgapID is nil")
		item := buildCriticalityDiagnosticsIEItem(
			ngapType.CriticalityPresentReject, ngapType.ProtocolIEIDRANUENGAPID, ngapType.TypeOfErrorPresentMissing)
		iesCriticalityDiagnostics.List = append(iesCriticalityDiagnostics.List, item)
	}
	if nASPDU == nil {
		logger.NgapLog.Errorln("NasPdu is nil")
		item := buildCriticalityDiagnosticsIEItem(
			ngapType.CriticalityPresentReject, ngapType.ProtocolIEIDNASPDU, ngapType.TypeOfErrorPresentMissing)
		iesCriticalityDiagnostics.List = append(iesCriticalityDiagnostics.List, item)
	}

	if len(iesCriticalityDiagnostics.List) > 0 {
		amfUeNgapId, ranUeNgapId := optionalIds(aMFUENGAPID, rANUENGAPID)
		sendMissingIEsErrorIndication(gw, peerId, stream, amfUeNgapId, ranUeNgapId,
			ngapType.ProcedureCodeUplinkNASTransport, ngapType.CriticalityPresentIgnore, &iesCriticalityDiagnostics)
		return
	}

	ue, err := gw.Registry.Resolve(peerId, aMFUENGAPID.Value, rANUENGAPID.Value)
	if err != nil {
		if context.KindOf(err) == context.KindNotFound {
			logger.NgapLog.Warnf("unknown AMF UE NGAP ID[%d] RAN UE NGAP ID[%d] from peer %d",
				aMFUENGAPID.Value, rANUENGAPID.Value, peerId)
			cause := ngap_message.BuildCause(ngapType.CausePresentRadioNetwork,
				ngapType.CauseRadioNetworkPresentUnknownLocalUENGAPID)
			_ = ngap_message.SendUEContextReleaseCommand(gw.Transport, peerId, stream,
				aMFUENGAPID.Value, rANUENGAPID.Value, cause)
			return
		}
		logger.NgapLog.Warnf("drop Uplink NAS Transport: %+v", err)
		return
	}

	if !ue.CanTransport() {
		logger.NgapLog.Warnf("drop Uplink NAS Transport of UE %s in state %s", ue.Key, ue.State.Current())
		return
	}

	payload := &context.UplinkNas{
		NasPdu: nASPDU.Value,
		Tai:    taiFromUserLocation(userLocationInformation),
	}
	_ = gw.Correlator.Notify(ue, payload)
}

func HandleNASNonDeliveryIndication(gw *context.N2GWContext, peerId context.PeerId, stream uint16,
	message *ngapType.NGAPPDU,
) {
	logger.NgapLog.Debugf("handle NAS Non Delivery Indication from peer %d", peerId)

	var aMFUENGAPID *ngapType.AMFUENGAPID
	var rANUENGAPID *ngapType.RANUENGAPID
	var nASPDU *ngapType.NASPDU
	var cause *ngapType.Cause

	var iesCriticalityDiagnostics ngapType.CriticalityDiagnosticsIEList

	if message == nil {
		logger.NgapLog.Errorln("NGAP Message is nil")
		return
	}

	initiatingMessage := message.InitiatingMessage
	if initiatingMessage == nil {
		logger.NgapLog.Errorln("initiating Message is nil")
		return
	}

	nASNonDeliveryIndication := initiatingMessage.Value.NASNonDeliveryIndication
	if nASNonDeliveryIndication == nil {
		logger.NgapLog.Errorln("NASNonDeliveryIndication is nil")
		return
	}

	if stream == context.NonUeStream {
		logger.NgapLog.Warnf("drop NAS Non Delivery Indication on non-UE stream from peer %d", peerId)
		return
	}

	for _, ie := range nASNonDeliveryIndication.ProtocolIEs.List {
		switch ie.Id.Value {
		case ngapType.ProtocolIEIDAMFUENGAPID:
			logger.NgapLog.Debugln("decode IE AmfUeNgapID")
			aMFUENGAPID = ie.Value.AMFUENGAPID
		case ngapType.ProtocolIEIDRANUENGAPID:
			logger.NgapLog.Debugln("decode IE RanUeNgapID")
			rANUENGAPID = ie.Value.RANUENGAPID
		case ngapType.ProtocolIEIDNASPDU:
			logger.NgapLog.Debugln("decode IE NasPdu")
			nASPDU = ie.Value.NASPDU
		case ngapType.ProtocolIEIDCause:
			logger.NgapLog.Debugln("decode IE Cause")
			cause = ie.Value.Cause
		}
	}

	if aMFUENGAPID == nil {
		logger.NgapLog.Errorln("AmfUeNgapID is nil")
		item := buildCriticalityDiagnosticsIEItem(
			ngapType.CriticalityPresentReject, ngapType.ProtocolIEIDAMFUENGAPID, ngapType.TypeOfErrorPresentMissing)
		iesCriticalityDiagnostics.List = append(iesCriticalityDiagnostics.List, item)
	}
	if rANUENGAPID == nil {
		logger.NgapLog.Errorln("RanUeNgapID is nil")
		item := buildCriticalityDiagnosticsIEItem(
			ngapType.CriticalityPresentReject, ngapType.ProtocolIEIDRANUENGAPID, ngapType.TypeOfErrorPresentMissing)
		iesCriticalityDiagnostics.List = append(iesCriticalityDiagnostics.List, item)
	}
	if nASPDU == nil {
		logger.NgapLog.Errorln("NasPdu is nil")
		item := buildCriticalityDiagnosticsIEItem(
			ngapType.CriticalityPresentIgnore, ngapType.ProtocolIEIDNASPDU, ngapType.TypeOfErrorPresentMissing)
		iesCriticalityDiagnostics.List = append(iesCriticalityDiagnostics.List, item)
	}
	if cause == nil {
		logger.NgapLog.Errorln("Cause is nil")
		item := buildCriticalityDiagnosticsIEItem(
			ngapType.CriticalityPresentIgnore, ngapType.ProtocolIEIDCause, ngapType.TypeOfErrorPresentMissing)
		iesCriticalityDiagnostics.List = append(iesCriticalityDiagnostics.List, item)
	}

	if len(iesCriticalityDiagnostics.List) > 0 {
		amfUeNgapId, ranUeNgapId := optionalIds(aMFUENGAPID, rANUENGAPID)
		sendMissingIEsErrorIndication(gw, peerId, stream, amfUeNgapId, ranUeNgapId,
			ngapType.ProcedureCodeNASNonDeliveryIndication, ngapType.CriticalityPresentIgnore, &iesCriticalityDiagnostics)
		return
	}

	ue, ok := lookupCoreUe(gw, peerId, aMFUENGAPID.Value)
	if !ok {
		return
	}
	if !ue.State.Is(context.Connected) {
		logger.NgapLog.Debugf("drop NAS Non Delivery Indication of UE %s in state %s", ue.Key, ue.State.Current())
		return
	}

	present, value := printAndGetCause(cause)
	logger.NgapLog.Infof("NAS PDU not delivered to UE %s", ue.Key)
	_ = gw.Correlator.Notify(ue, &context.NasNonDelivery{
		NasPdu: nASPDU.Value,
		Cause:  causeString(present, value),
	})
}

func HandleInitialContextSetupResponse(gw *context.N2GWContext, peerId context.PeerId, stream uint16,
	message *ngapType.NGAPPDU,
) {
	logger.NgapLog.Infof("handle Initial Context Setup Response from peer %d", peerId)

	var aMFUENGAPID *ngapType.AMFUENGAPID
	var rANUENGAPID *ngapType.RANUENGAPID
	var criticalityDiagnostics *ngapType.CriticalityDiagnostics

	if message == nil {
		logger.NgapLog.Errorln("NGAP Message is nil")
		return
	}

	successfulOutcome := message.SuccessfulOutcome
	if successfulOutcome == nil {
		logger.NgapLog.Errorln("successful Outcome is nil")
		return
	}

	initialContextSetupResponse := successfulOutcome.Value.InitialContextSetupResponse
	if initialContextSetupResponse == nil {
		logger.NgapLog.Errorln("InitialContextSetupResponse is nil")
		return
	}

	for _, ie := range initialContextSetupResponse.ProtocolIEs.List {
		switch ie.Id.Value {
		case ngapType.ProtocolIEIDAMFUENGAPID:
			logger.NgapLog.Debugln("decode IE AmfUeNgapID")
			aMFUENGAPID = ie.Value.AMFUENGAPID
		case ngapType.ProtocolIEIDRANUENGAPID:
			logger.NgapLog.Debugln("decode IE RanUeNgapID")
			rANUENGAPID = ie.Value.RANUENGAPID
		case ngapType.ProtocolIEIDCriticalityDiagnostics:
			logger.NgapLog.Debugln("decode IE CriticalityDiagnostics")
			criticalityDiagnostics = ie.Value.CriticalityDiagnostics
		}
	}

	if aMFUENGAPID == nil || rANUENGAPID == nil {
		logger.NgapLog.Errorln("UE NGAP ID is missing in Initial Context Setup Response")
		return
	}

	if criticalityDiagnostics != nil {
		printCriticalityDiagnostics(criticalityDiagnostics)
	}

	ue, ok := lookupCoreUe(gw, peerId, aMFUENGAPID.Value)
	if !ok {
		return
	}
	if err := gw.StateMachine.ContextSetupSucceeded(ue, rANUENGAPID.Value); err != nil {
		logger.NgapLog.Warnf("drop Initial Context Setup Response: %+v", err)
		return
	}
	_ = gw.Correlator.Notify(ue, &context.ContextSetupResult{Success: true})
}

func HandleInitialContextSetupFailure(gw *context.N2GWContext, peerId context.PeerId, stream uint16,
	message *ngapType.NGAPPDU,
) {
	logger.NgapLog.Infof("handle Initial Context Setup Failure from peer %d", peerId)

	var aMFUENGAPID *ngapType.AMFUENGAPID
	var rANUENGAPID *ngapType.RANUENGAPID
	var cause *ngapType.Cause
	var criticalityDiagnostics *ngapType.CriticalityDiagnostics

	if message == nil {
		logger.NgapLog.Errorln("NGAP Message is nil")
		return
	}

	unsuccessfulOutcome := message.UnsuccessfulOutcome
	if unsuccessfulOutcome == nil {
		logger.NgapLog.Errorln("unsuccessful Outcome is nil")
		return
	}

	initialContextSetupFailure := unsuccessfulOutcome.Value.InitialContextSetupFailure
	if initialContextSetupFailure == nil {
		logger.NgapLog.Errorln("InitialContextSetupFailure is nil")
		return
	}

	for _, ie := range initialContextSetupFailure.ProtocolIEs.List {
		switch ie.Id.Value {
		case ngapType.ProtocolIEIDAMFUENGAPID:
			logger.NgapLog.Debugln("decode IE AmfUeNgapID")
			aMFUENGAPID = ie.Value.AMFUENGAPID
		case ngapType.ProtocolIEIDRANUENGAPID:
			logger.NgapLog.Debugln("decode IE RanUeNgapID")
			rANUENGAPID = ie.Value.RANUENGAPID
		case ngapType.ProtocolIEIDCause:
			logger.NgapLog.Debugln("decode IE Cause")
			cause = ie.Value.Cause
		case ngapType.ProtocolIEIDCriticalityDiagnostics:
			logger.NgapLog.Debugln("decode IE CriticalityDiagnostics")
			criticalityDiagnostics = ie.Value.CriticalityDiagnostics
		}
	}

	if aMFUENGAPID == nil || rANUENGAPID == nil {
		logger.NgapLog.Errorln("UE NGAP ID is missing in Initial Context Setup Failure")
		return
	}

	result := &context.ContextSetupResult{Success: false}
	if cause != nil {
		present, value := printAndGetCause(cause)
		result.Cause = causeString(present, value)
	}
	if criticalityDiagnostics != nil {
		printCriticalityDiagnostics(criticalityDiagnostics)
	}

	ue, ok := lookupCoreUe(gw, peerId, aMFUENGAPID.Value)
	if !ok {
		return
	}
	if err := gw.StateMachine.ContextSetupFailed(ue, rANUENGAPID.Value); err != nil {
		logger.NgapLog.Warnf("drop Initial Context Setup Failure: %+v", err)
		return
	}
	_ = gw.Correlator.Notify(ue, result)
}

func HandleUEContextReleaseRequest(gw *context.N2GWContext, peerId context.PeerId, stream uint16,
	message *ngapType.NGAPPDU,
) {
	logger.NgapLog.Infof("handle UE Context Release Request from peer %d", peerId)

	var aMFUENGAPID *ngapType.AMFUENGAPID
	var rANUENGAPID *ngapType.RANUENGAPID
	var cause *ngapType.Cause

	var iesCriticalityDiagnostics ngapType.CriticalityDiagnosticsIEList

	if message == nil {
		logger.NgapLog.Errorln("NGAP Message is nil")
		return
	}

	initiatingMessage := message.InitiatingMessage
	if initiatingMessage == nil {
		logger.NgapLog.Errorln("initiating Message is nil")
		return
	}

	uEContextReleaseRequest := initiatingMessage.Value.UEContextReleaseRequest
	if uEContextReleaseRequest == nil {
		logger.NgapLog.Errorln("UEContextReleaseRequest is nil")
		return
	}

	for _, ie := range uEContextReleaseRequest.ProtocolIEs.List {
		switch ie.Id.Value {
		case ngapType.ProtocolIEIDAMFUENGAPID:
			logger.NgapLog.Debugln("decode IE AmfUeNgapID")
			aMFUENGAPID = ie.Value.AMFUENGAPID
		case ngapType.ProtocolIEIDRANUENGAPID:
			logger.NgapLog.Debugln("decode IE RanUeNgapID")
			rANUENGAPID = ie.Value.RANUENGAPID
		case ngapType.ProtocolIEIDCause:
			logger.NgapLog.Debugln("decode IE Cause")
			cause = ie.Value.Cause
		}
	}

	if aMFUENGAPID == nil {
		logger.NgapLog.Errorln("AmfUeNgapID is nil")
		item := buildCriticalityDiagnosticsIEItem(
			ngapType.CriticalityPresentReject, ngapType.ProtocolIEIDAMFUENGAPID, ngapType.TypeOfErrorPresentMissing)
		iesCriticalityDiagnostics.List = append(iesCriticalityDiagnostics.List, item)
	}
	if rANUENGAPID == nil {
		logger.NgapLog.Errorln("RanUeNgapID is nil")
		item := buildCriticalityDiagnosticsIEItem(
			ngapType.CriticalityPresentReject, ngapType.ProtocolIEIDRANUENGAPID, ngapType.TypeOfErrorPresentMissing)
		iesCriticalityDiagnostics.List = append(iesCriticalityDiagnostics.List, item)
	}

	if len(iesCriticalityDiagnostics.List) > 0 {
		amfUeNgapId, ranUeNgapId := optionalIds(aMFUENGAPID, rANUENGAPID)
		sendMissingIEsErrorIndication(gw, peerId, stream, amfUeNgapId, ranUeNgapId,
			ngapType.ProcedureCodeUEContextReleaseRequest, ngapType.CriticalityPresentIgnore,
			&iesCriticalityDiagnostics)
		return
	}

	if cause != nil {
		printAndGetCause(cause)
	}

	ue, err := gw.Registry.Resolve(peerId, aMFUENGAPID.Value, rANUENGAPID.Value)
	if err != nil {
		logUeResolveError("UE Context Release Request", err)
		return
	}

	if _, err := gw.Correlator.SendRequest(ue.Key, &context.ReleaseRequest{
		Cause: ngap_message.ReleaseCauseFromNgap(cause),
	}); err != nil {
		logger.NgapLog.Warnf("forward UE Context Release Request of UE %s failed: %+v", ue.Key, err)
	}
}

func HandleUEContextReleaseComplete(gw *context.N2GWContext, peerId context.PeerId, stream uint16,
	message *ngapType.NGAPPDU,
) {
	logger.NgapLog.Infof("handle UE Context Release Complete from peer %d", peerId)

	var aMFUENGAPID *ngapType.AMFUENGAPID
	var rANUENGAPID *ngapType.RANUENGAPID
	var criticalityDiagnostics *ngapType.CriticalityDiagnostics

	if message == nil {
		logger.NgapLog.Errorln("NGAP Message is nil")
		return
	}

	successfulOutcome := message.SuccessfulOutcome
	if successfulOutcome == nil {
		logger.NgapLog.Errorln("successful Outcome is nil")
		return
	}

	uEContextReleaseComplete := successfulOutcome.Value.UEContextReleaseComplete
	if uEContextReleaseComplete == nil {
		logger.NgapLog.Errorln("UEContextReleaseComplete is nil")
		return
	}

	for _, ie := range uEContextReleaseComplete.ProtocolIEs.List {
		switch ie.Id.Value {
		case ngapType.ProtocolIEIDAMFUENGAPID:
			logger.NgapLog.Debugln("decode IE AmfUeNgapID")
			aMFUENGAPID = ie.Value.AMFUENGAPID
		case ngapType.ProtocolIEIDRANUENGAPID:
			logger.NgapLog.Debugln("decode IE RanUeNgapID")
			rANUENGAPID = ie.Value.RANUENGAPID
		case ngapType.ProtocolIEIDCriticalityDiagnostics:
			logger.NgapLog.Debugln("decode IE CriticalityDiagnostics")
			criticalityDiagnostics = ie.Value.CriticalityDiagnostics
		}
	}

	if aMFUENGAPID == nil {
		logger.NgapLog.Errorln("AmfUeNgapID is missing in UE Context Release Complete")
		return
	}
	if criticalityDiagnostics != nil {
		printCriticalityDiagnostics(criticalityDiagnostics)
	}

	ue, err := gw.Registry.Resolve(peerId, aMFUENGAPID.Value, radioIdOrInvalid(rANUENGAPID))
	if err != nil {
		logUeResolveError("UE Context Release Complete", err)
		return
	}
	if err := gw.StateMachine.ReleaseCompleted(ue); err != nil {
		logger.NgapLog.Warnf("drop UE Context Release Complete: %+v", err)
		return
	}
	_ = gw.Correlator.Notify(ue, &context.UeReleased{Cause: context.ReleaseCauseNormal})
}

func HandleNGReset(gw *context.N2GWContext, peerId context.PeerId, stream uint16, message *ngapType.NGAPPDU) {
	logger.NgapLog.Infof("handle NG Reset from peer %d", peerId)

	var cause *ngapType.Cause
	var resetType *ngapType.ResetType

	var iesCriticalityDiagnostics ngapType.CriticalityDiagnosticsIEList

	if message == nil {
		logger.NgapLog.Errorln("NGAP Message is nil")
		return
	}

	initiatingMessage := message.InitiatingMessage
	if initiatingMessage == nil {
		logger.NgapLog.Errorln("InitiatingMessage is nil")
		return
	}

	nGReset := initiatingMessage.Value.NGReset
	if nGReset == nil {
		logger.NgapLog.Errorln("nGReset is nil")
		return
	}

	for _, ie := range nGReset.ProtocolIEs.List {
		switch ie.Id.Value {
		case ngapType.ProtocolIEIDCause:
			logger.NgapLog.Debugln("decode IE Cause")
			cause = ie.Value.Cause
		case ngapType.ProtocolIEIDResetType:
			logger.NgapLog.Debugln("decode IE ResetType")
			resetType = ie.Value.ResetType
		}
	}

	if resetType == nil {
		logger.NgapLog.Errorln("ResetType is nil")
		item := buildCriticalityDiagnosticsIEItem(
			ngapType.CriticalityPresentReject, ngapType.ProtocolIEIDResetType, ngapType.TypeOfErrorPresentMissing)
		iesCriticalityDiagnostics.List = append(iesCriticalityDiagnostics.List, item)
	}

	if len(iesCriticalityDiagnostics.List) > 0 {
		sendMissingIEsErrorIndication(gw, peerId, context.NonUeStream, nil, nil,
			ngapType.ProcedureCodeNGReset, ngapType.CriticalityPresentReject, &iesCriticalityDiagnostics)
		return
	}

	if cause != nil {
		printAndGetCause(cause)
	}

	peer, ok := gw.Registry.LookupPeer(peerId)
	if !ok {
		logger.NgapLog.Warnf("NG Reset from unknown peer %d", peerId)
		return
	}

	switch resetType.Present {
	case ngapType.ResetTypePresentNGInterface:
		logger.NgapLog.Debugln("ResetType Present: NG Interface")
		keys := peer.UeKeys()
		for _, key := range keys {
			if ue, ok := gw.Registry.LookupByKey(key); ok {
				releaseLocally(gw, ue, context.ReleaseCauseAssociationReset)
			}
		}
		logger.NgapLog.Infof("released %d UE(s) of peer %d", len(keys), peerId)
		_ = ngap_message.SendNGResetAcknowledge(gw.Transport, peerId, nil, nil)
	case ngapType.ResetTypePresentPartOfNGInterface:
		logger.NgapLog.Debugln("ResetType Present: Part of NG Interface")

		partOfNGInterface := resetType.PartOfNGInterface
		if partOfNGInterface == nil {
			logger.NgapLog.Errorln("PartOfNGInterface is nil")
			return
		}

		for _, item := range partOfNGInterface.List {
			var ue *context.UeContext
			if item.AMFUENGAPID != nil {
				logger.NgapLog.Debugf("AmfUeNgapID[%d]", item.AMFUENGAPID.Value)
				if found, ok := gw.Registry.LookupByCore(item.AMFUENGAPID.Value); ok && found.PeerId == peerId {
					ue = found
				}
			}
			if ue == nil && item.RANUENGAPID != nil {
				logger.NgapLog.Debugf("RanUeNgapID[%d]", item.RANUENGAPID.Value)
				ue, _ = gw.Registry.LookupByComposite(peerId, item.RANUENGAPID.Value)
			}

			if ue == nil {
				logger.NgapLog.Warnln("cannot find UE Context")
				if item.AMFUENGAPID != nil {
					logger.NgapLog.Warnf("AmfUeNgapID[%d]", item.AMFUENGAPID.Value)
				}
				if item.RANUENGAPID != nil {
					logger.NgapLog.Warnf("RanUeNgapID[%d]", item.RANUENGAPID.Value)
				}
				continue
			}
			releaseLocally(gw, ue, context.ReleaseCauseAssociationReset)
		}
		_ = ngap_message.SendNGResetAcknowledge(gw.Transport, peerId, partOfNGInterface, nil)
	default:
		logger.NgapLog.Warnf("invalid ResetType[%d]", resetType.Present)
	}
}

func HandleErrorIndication(gw *context.N2GWContext, peerId context.PeerId, stream uint16,
	message *ngapType.NGAPPDU,
) {
	logger.NgapLog.Infof("handle Error Indication from peer %d", peerId)

	var aMFUENGAPID *ngapType.AMFUENGAPID
	var rANUENGAPID *ngapType.RANUENGAPID
	var cause *ngapType.Cause
	var criticalityDiagnostics *ngapType.CriticalityDiagnostics

	if message == nil {
		logger.NgapLog.Errorln("NGAP Message is nil")
		return
	}
	initiatingMessage := message.InitiatingMessage
	if initiatingMessage == nil {
		logger.NgapLog.Errorln("InitiatingMessage is nil")
		return
	}
	errorIndication := initiatingMessage.Value.ErrorIndication
	if errorIndication == nil {
		logger.NgapLog.Errorln("ErrorIndication is nil")
		return
	}

	for _, ie := range errorIndication.ProtocolIEs.List {
		switch ie.Id.Value {
		case ngapType.ProtocolIEIDAMFUENGAPID:
			aMFUENGAPID = ie.Value.AMFUENGAPID
			logger.NgapLog.Debugln("decode IE AmfUeNgapID")
		case ngapType.ProtocolIEIDRANUENGAPID:
			rANUENGAPID = ie.Value.RANUENGAPID
			logger.NgapLog.Debugln("decode IE RanUeNgapID")
		case ngapType.ProtocolIEIDCause:
			cause = ie.Value.Cause
			logger.NgapLog.Debugln("decode IE Cause")
		case ngapType.ProtocolIEIDCriticalityDiagnostics:
			criticalityDiagnostics = ie.Value.CriticalityDiagnostics
			logger.NgapLog.Debugln("decode IE CriticalityDiagnostics")
		}
	}

	if cause == nil && criticalityDiagnostics == nil {
		logger.NgapLog.Errorln("both Cause IE and CriticalityDiagnostics IE are nil, should have at least one")
		return
	}

	if aMFUENGAPID != nil || rANUENGAPID != nil {
		amfUeNgapId, ranUeNgapId := coreIdOrInvalid(aMFUENGAPID), radioIdOrInvalid(rANUENGAPID)
		if ue, err := gw.Registry.Resolve(peerId, amfUeNgapId, ranUeNgapId); err == nil {
			logger.NgapLog.Warnf("UE-associated error for UE %s in state %s", ue.Key, ue.State.Current())
		} else {
			logger.NgapLog.Warnf("UE-associated error, AMF UE NGAP ID[%d] RAN UE NGAP ID[%d]",
				amfUeNgapId, ranUeNgapId)
		}
	}

	if cause != nil {
		printAndGetCause(cause)
	}

	if criticalityDiagnostics != nil {
		printCriticalityDiagnostics(criticalityDiagnostics)
	}
}

func lookupCoreUe(gw *context.N2GWContext, peerId context.PeerId, amfUeNgapId int64) (*context.UeContext, bool) {
	ue, ok := gw.Registry.LookupByCore(amfUeNgapId)
	if !ok {
		logger.NgapLog.Debugf("no UE with AMF UE NGAP ID[%d]", amfUeNgapId)
		return nil, false
	}
	if ue.PeerId != peerId {
		logger.NgapLog.Warnf("AMF UE NGAP ID[%d] is owned by peer %d, message from peer %d",
			amfUeNgapId, ue.PeerId, peerId)
		return nil, false
	}
	return ue, true
}

// releaseLocally removes a UE without peer signalling and tells the mobility
// task about it.
func releaseLocally(gw *context.N2GWContext, ue *context.UeContext, cause context.ReleaseCause) {
	if err := gw.StateMachine.LocalRelease(ue); err != nil {
		logger.NgapLog.Warnf("local release of UE %s: %+v", ue.Key, err)
		return
	}
	_ = gw.Correlator.Notify(ue, &context.UeReleased{Cause: cause})
}

func logUeResolveError(procedure string, err error) {
	if context.KindOf(err) == context.KindNotFound {
		logger.NgapLog.Debugf("drop %s: %+v", procedure, err)
		return
	}
	logger.NgapLog.Warnf("drop %s: %+v", procedure, err)
}

func sendMissingIEsErrorIndication(gw *context.N2GWContext, peerId context.PeerId, stream uint16,
	amfUeNgapId, ranUeNgapId *int64, procedureCode int64, criticality aper.Enumerated,
	iesCriticalityDiagnostics *ngapType.CriticalityDiagnosticsIEList,
) {
	logger.NgapLog.Debugln("sending error indication, because some mandatory IEs were not included")
	trigger := ngapType.TriggeringMessagePresentInitiatingMessage
	criticalityDiagnostics := buildCriticalityDiagnostics(
		&procedureCode, &trigger, &criticality, iesCriticalityDiagnostics)
	cause := ngap_message.BuildCause(ngapType.CausePresentProtocol,
		ngapType.CauseProtocolPresentAbstractSyntaxErrorReject)
	_ = ngap_message.SendErrorIndication(gw.Transport, peerId, stream, amfUeNgapId, ranUeNgapId,
		cause, &criticalityDiagnostics)
}

func taiFromUserLocation(userLocationInformation *ngapType.UserLocationInformation) *context.Tai {
	if userLocationInformation == nil ||
		userLocationInformation.Present != ngapType.UserLocationInformationPresentUserLocationInformationNR ||
		userLocationInformation.UserLocationInformationNR == nil {
		return nil
	}
	tai := util.TaiFromNgap(userLocationInformation.UserLocationInformationNR.TAI)
	return &tai
}

func optionalIds(aMFUENGAPID *ngapType.AMFUENGAPID, rANUENGAPID *ngapType.RANUENGAPID) (*int64, *int64) {
	var amfUeNgapId, ranUeNgapId *int64
	if aMFUENGAPID != nil {
		amfUeNgapId = &aMFUENGAPID.Value
	}
	if rANUENGAPID != nil {
		ranUeNgapId = &rANUENGAPID.Value
	}
	return amfUeNgapId, ranUeNgapId
}

func coreIdOrInvalid(aMFUENGAPID *ngapType.AMFUENGAPID) int64 {
	if aMFUENGAPID == nil {
		return context.CoreUeIdInvalid
	}
	return aMFUENGAPID.Value
}

func radioIdOrInvalid(rANUENGAPID *ngapType.RANUENGAPID) int64 {
	if rANUENGAPID == nil {
		return context.RadioUeIdInvalid
	}
	return rANUENGAPID.Value
}

func buildCriticalityDiagnostics(
	procedureCode *int64,
	triggeringMessage *aper.Enumerated,
	procedureCriticality *aper.Enumerated,
	iesCriticalityDiagnostics *ngapType.CriticalityDiagnosticsIEList) (
	criticalityDiagnostics ngapType.CriticalityDiagnostics,
) {
	if procedureCode != nil {
		criticalityDiagnostics.ProcedureCode = new(ngapType.ProcedureCode)
		criticalityDiagnostics.ProcedureCode.Value = *procedureCode
	}

	if triggeringMessage != nil {
		criticalityDiagnostics.TriggeringMessage = new(ngapType.TriggeringMessage)
		criticalityDiagnostics.TriggeringMessage.Value = *triggeringMessage
	}

	if procedureCriticality != nil {
		criticalityDiagnostics.ProcedureCriticality = new(ngapType.Criticality)
		criticalityDiagnostics.ProcedureCriticality.Value = *procedureCriticality
	}

	if iesCriticalityDiagnostics != nil {
		criticalityDiagnostics.IEsCriticalityDiagnostics = iesCriticalityDiagnostics
	}

	return criticalityDiagnostics
}

func buildCriticalityDiagnosticsIEItem(ieCriticality aper.Enumerated, ieID int64, typeOfErr aper.Enumerated) (
	item ngapType.CriticalityDiagnosticsIEItem,
) {
	item = ngapType.CriticalityDiagnosticsIEItem{
		IECriticality: ngapType.Criticality{
			Value: ieCriticality,
		},
		IEID: ngapType.ProtocolIEID{
			Value: ieID,
		},
		TypeOfError: ngapType.TypeOfError{
			Value: typeOfErr,
		},
	}

	return item
}

func printAndGetCause(cause *ngapType.Cause) (present int, value aper.Enumerated) {
	present = cause.Present
	switch {
	case cause.Present == ngapType.CausePresentRadioNetwork && cause.RadioNetwork != nil:
		logger.NgapLog.Warnf("cause RadioNetwork[%d]", cause.RadioNetwork.Value)
		value = cause.RadioNetwork.Value
	case cause.Present == ngapType.CausePresentTransport && cause.Transport != nil:
		logger.NgapLog.Warnf("cause Transport[%d]", cause.Transport.Value)
		value = cause.Transport.Value
	case cause.Present == ngapType.CausePresentProtocol && cause.Protocol != nil:
		logger.NgapLog.Warnf("cause Protocol[%d]", cause.Protocol.Value)
		value = cause.Protocol.Value
	case cause.Present == ngapType.CausePresentNas && cause.Nas != nil:
		logger.NgapLog.Warnf("cause Nas[%d]", cause.Nas.Value)
		value = cause.Nas.Value
	case cause.Present == ngapType.CausePresentMisc && cause.Misc != nil:
		logger.NgapLog.Warnf("cause Misc[%d]", cause.Misc.Value)
		value = cause.Misc.Value
	default:
		logger.NgapLog.Errorf("invalid Cause group[%d]", cause.Present)
	}
	return
}

func causeString(present int, value aper.Enumerated) string {
	var group string
	switch present {
	case ngapType.CausePresentRadioNetwork:
		group = "radioNetwork"
	case ngapType.CausePresentTransport:
		group = "transport"
	case ngapType.CausePresentNas:
		group = "nas"
	case ngapType.CausePresentProtocol:
		group = "protocol"
	case ngapType.CausePresentMisc:
		group = "misc"
	default:
		return "unknown"
	}
	return group + "/" + strconv.FormatInt(int64(value), 10)
}

func printCriticalityDiagnostics(criticalityDiagnostics *ngapType.CriticalityDiagnostics) {
	if criticalityDiagnostics == nil {
		return
	}
	iesCriticalityDiagnostics := criticalityDiagnostics.IEsCriticalityDiagnostics
	if iesCriticalityDiagnostics == nil {
		logger.NgapLog.Warnln("IEsCriticalityDiagnostics is nil")
		return
	}
	for index, item := range iesCriticalityDiagnostics.List {
		logger.NgapLog.Warnf("criticality IE item %d:", index+1)
		logger.NgapLog.Warnf("IE ID: %d", item.IEID.Value)

		switch item.IECriticality.Value {
		case ngapType.CriticalityPresentReject:
			logger.NgapLog.Warnln("IE Criticality: Reject")
		case ngapType.CriticalityPresentIgnore:
			logger.NgapLog.Warnln("IE Criticality: Ignore")
		case ngapType.CriticalityPresentNotify:
			logger.NgapLog.Warnln("IE Criticality: Notify")
		}

		switch item.TypeOfError.Value {
		case ngapType.TypeOfErrorPresentNotUnderstood:
			logger.NgapLog.Warnln("type of error: Not Understood")
		case ngapType.TypeOfErrorPresentMissing:
			logger.NgapLog.Warnln("type of error: Missing")
		}
	}
}
