// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	stdcontext "context"
	"sync"
	"testing"
	"time"

	"github.com/omec-project/aper"
	"github.com/omec-project/n2gw/context"
	"github.com/omec-project/n2gw/util"
	"github.com/omec-project/ngap"
	"github.com/omec-project/ngap/ngapType"
	"github.com/stretchr/testify/require"
)

const (
	testPeer   context.PeerId = 1
	otherPeer  context.PeerId = 2
	testGnbId                 = 0x10
	testTac                   = "000001"
	testStream uint16         = 1
)

var testPlmn = context.PlmnId{Mcc: "208", Mnc: "93"}

type sentPacket struct {
	peerId context.PeerId
	stream uint16
	pdu    *ngapType.NGAPPDU
}

// recordingTransport decodes every packet it is asked to send.
type recordingTransport struct {
	t    *testing.T
	mu   sync.Mutex
	sent []sentPacket
}

func (r *recordingTransport) SendOnAssociation(peerId context.PeerId, stream uint16, pkt []byte) error {
	pdu, err := ngap.Decoder(pkt)
	require.NoError(r.t, err)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sentPacket{peerId: peerId, stream: stream, pdu: pdu})
	return nil
}

func (r *recordingTransport) take() []sentPacket {
	r.mu.Lock()
	defer r.mu.Unlock()
	sent := r.sent
	r.sent = nil
	return sent
}

// last returns the only packet sent since the previous take.
func (r *recordingTransport) last(t *testing.T) sentPacket {
	t.Helper()
	sent := r.take()
	require.Len(t, sent, 1)
	return sent[0]
}

func testAmfInfo() context.AmfNfInfo {
	return context.AmfNfInfo{
		AmfName:         "amf-1",
		ServedGuamiList: []context.GuamiItem{{PlmnId: testPlmn, AmfRegionId: 0xca, AmfSetId: 0x3f8, AmfPointer: 1}},
		PlmnSupportList: []context.PlmnSupportItem{{
			PlmnId:           testPlmn,
			SliceSupportList: []context.SliceSupportItem{{Snssai: context.SnssaiItem{Sst: "1", Sd: "010203"}}},
		}},
		SupportedTaList:     []context.SupportedTAItem{{Tac: testTac, BroadcastPlmnList: []context.PlmnId{testPlmn}}},
		RelativeAmfCapacity: 255,
	}
}

type gatewayOptions struct {
	maxUes         int
	mmQueueLen     int
	releaseTimeout time.Duration
	resetGuard     time.Duration
}

func newTestGateway(t *testing.T, opts gatewayOptions) (*context.N2GWContext, *recordingTransport) {
	t.Helper()
	if opts.mmQueueLen == 0 {
		opts.mmQueueLen = 16
	}
	if opts.releaseTimeout == 0 {
		opts.releaseTimeout = time.Hour
	}
	ctx, cancel := stdcontext.WithCancel(stdcontext.Background())
	t.Cleanup(cancel)

	transport := &recordingTransport{t: t}
	gw, err := context.NewN2GWContext(ctx, context.Options{
		MaxUes:         opts.maxUes,
		PktQueueLen:    16,
		EvtQueueLen:    16,
		MmQueueLen:     opts.mmQueueLen,
		CorrelationTTL: time.Minute,
		AmfInfo:        testAmfInfo(),
		ReleaseTimeout: func() time.Duration { return opts.releaseTimeout },
		PeerResetGuard: func() time.Duration { return opts.resetGuard },
		Transport:      transport,
	})
	require.NoError(t, err)
	return gw, transport
}

// readyPeer brings testPeer up and through NG Setup.
func readyPeer(t *testing.T, gw *context.N2GWContext, transport *recordingTransport, peerId context.PeerId) {
	t.Helper()
	HandleEvent(gw, context.NewAssociationUpEvt(peerId, 4, 4))
	HandleNGSetupRequest(gw, peerId, context.NonUeStream, buildNGSetupRequest(testPlmn, testTac))
	sent := transport.last(t)
	require.Equal(t, ngapType.NGAPPDUPresentSuccessfulOutcome, sent.pdu.Present)
	peer, ok := gw.Registry.LookupPeer(peerId)
	require.True(t, ok)
	require.Equal(t, context.PeerReady, peer.State())
}

func nextMm(t *testing.T, gw *context.N2GWContext) context.MmMessage {
	t.Helper()
	select {
	case msg := <-gw.MmQueue:
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message for the mobility task")
		return context.MmMessage{}
	}
}

func assertNoMm(t *testing.T, gw *context.N2GWContext) {
	t.Helper()
	select {
	case msg := <-gw.MmQueue:
		t.Fatalf("unexpected %s for the mobility task", msg.Payload.Type())
	default:
	}
}

// connectedUe runs a UE through Initial UE Message, core id binding and
// Initial Context Setup on testPeer.
func connectedUe(t *testing.T, gw *context.N2GWContext, transport *recordingTransport,
	ranUeNgapId, amfUeNgapId int64,
) *context.UeContext {
	t.Helper()
	HandleInitialUEMessage(gw, testPeer, testStream, buildInitialUEMessage(ranUeNgapId, []byte{0x7e, 0x00, 0x41}, nil))
	msg := nextMm(t, gw)
	require.Equal(t, context.InitialUeMessageInd, msg.Payload.Type())

	key := msg.Key
	key.CoreUeId = amfUeNgapId
	HandleEvent(gw, context.NewCoreIdNotificationEvt(key, context.ImsiInvalid))
	HandleInitialContextSetupResponse(gw, testPeer, testStream, buildInitialContextSetupResponse(amfUeNgapId, ranUeNgapId))
	result := nextMm(t, gw)
	require.Equal(t, context.ContextSetupResultInd, result.Payload.Type())

	ue, ok := gw.Registry.LookupByCore(amfUeNgapId)
	require.True(t, ok)
	require.True(t, ue.State.Is(context.Connected))
	return ue
}

func buildNGSetupRequest(plmnId context.PlmnId, tac string) *ngapType.NGAPPDU {
	pdu := &ngapType.NGAPPDU{Present: ngapType.NGAPPDUPresentInitiatingMessage}
	pdu.InitiatingMessage = new(ngapType.InitiatingMessage)

	initiatingMessage := pdu.InitiatingMessage
	initiatingMessage.ProcedureCode.Value = ngapType.ProcedureCodeNGSetup
	initiatingMessage.Criticality.Value = ngapType.CriticalityPresentReject
	initiatingMessage.Value.Present = ngapType.InitiatingMessagePresentNGSetupRequest
	initiatingMessage.Value.NGSetupRequest = new(ngapType.NGSetupRequest)
	nGSetupRequestIEs := &initiatingMessage.Value.NGSetupRequest.ProtocolIEs

	ie := ngapType.NGSetupRequestIEs{}
	ie.Id.Value = ngapType.ProtocolIEIDGlobalRANNodeID
	ie.Criticality.Value = ngapType.CriticalityPresentReject
	ie.Value.Present = ngapType.NGSetupRequestIEsPresentGlobalRANNodeID
	gnbId := util.GnbIdToNgap(testGnbId, 22)
	ie.Value.GlobalRANNodeID = &ngapType.GlobalRANNodeID{
		Present: ngapType.GlobalRANNodeIDPresentGlobalGNBID,
		GlobalGNBID: &ngapType.GlobalGNBID{
			PLMNIdentity: util.PlmnIdToNgap(plmnId),
			GNBID:        ngapType.GNBID{Present: ngapType.GNBIDPresentGNBID, GNBID: &gnbId},
		},
	}
	nGSetupRequestIEs.List = append(nGSetupRequestIEs.List, ie)

	ie = ngapType.NGSetupRequestIEs{}
	ie.Id.Value = ngapType.ProtocolIEIDRANNodeName
	ie.Criticality.Value = ngapType.CriticalityPresentIgnore
	ie.Value.Present = ngapType.NGSetupRequestIEsPresentRANNodeName
	ie.Value.RANNodeName = &ngapType.RANNodeName{Value: "gnb-1"}
	nGSetupRequestIEs.List = append(nGSetupRequestIEs.List, ie)

	if tac != "" {
		ngapTac, _ := util.TacToNgap(tac)
		broadcastPLMNItem := ngapType.BroadcastPLMNItem{PLMNIdentity: util.PlmnIdToNgap(plmnId)}
		broadcastPLMNItem.TAISliceSupportList.List = append(broadcastPLMNItem.TAISliceSupportList.List,
			ngapType.SliceSupportItem{SNSSAI: ngapType.SNSSAI{SST: ngapType.SST{Value: []byte{0x01}}}})
		supportedTAItem := ngapType.SupportedTAItem{TAC: ngapTac}
		supportedTAItem.BroadcastPLMNList.List = append(supportedTAItem.BroadcastPLMNList.List, broadcastPLMNItem)

		ie = ngapType.NGSetupRequestIEs{}
		ie.Id.Value = ngapType.ProtocolIEIDSupportedTAList
		ie.Criticality.Value = ngapType.CriticalityPresentReject
		ie.Value.Present = ngapType.NGSetupRequestIEsPresentSupportedTAList
		ie.Value.SupportedTAList = &ngapType.SupportedTAList{List: []ngapType.SupportedTAItem{supportedTAItem}}
		nGSetupRequestIEs.List = append(nGSetupRequestIEs.List, ie)
	}

	ie = ngapType.NGSetupRequestIEs{}
	ie.Id.Value = ngapType.ProtocolIEIDDefaultPagingDRX
	ie.Criticality.Value = ngapType.CriticalityPresentIgnore
	ie.Value.Present = ngapType.NGSetupRequestIEsPresentDefaultPagingDRX
	ie.Value.DefaultPagingDRX = &ngapType.PagingDRX{Value: ngapType.PagingDRXPresentV128}
	nGSetupRequestIEs.List = append(nGSetupRequestIEs.List, ie)

	return pdu
}

func userLocation() *ngapType.UserLocationInformation {
	tac, _ := util.TacToNgap(testTac)
	return &ngapType.UserLocationInformation{
		Present: ngapType.UserLocationInformationPresentUserLocationInformationNR,
		UserLocationInformationNR: &ngapType.UserLocationInformationNR{
			NRCGI: ngapType.NRCGI{
				PLMNIdentity:   util.PlmnIdToNgap(testPlmn),
				NRCellIdentity: ngapType.NRCellIdentity{Value: aper.BitString{Bytes: make([]byte, 5), BitLength: 36}},
			},
			TAI: ngapType.TAI{PLMNIdentity: util.PlmnIdToNgap(testPlmn), TAC: tac},
		},
	}
}

func buildInitialUEMessage(ranUeNgapId int64, nasPdu []byte, tmsi *context.FiveGSTmsi) *ngapType.NGAPPDU {
	pdu := &ngapType.NGAPPDU{Present: ngapType.NGAPPDUPresentInitiatingMessage}
	pdu.InitiatingMessage = new(ngapType.InitiatingMessage)

	initiatingMessage := pdu.InitiatingMessage
	initiatingMessage.ProcedureCode.Value = ngapType.ProcedureCodeInitialUEMessage
	initiatingMessage.Criticality.Value = ngapType.CriticalityPresentIgnore
	initiatingMessage.Value.Present = ngapType.InitiatingMessagePresentInitialUEMessage
	initiatingMessage.Value.InitialUEMessage = new(ngapType.InitialUEMessage)
	initialUEMessageIEs := &initiatingMessage.Value.InitialUEMessage.ProtocolIEs

	ie := ngapType.InitialUEMessageIEs{}
	ie.Id.Value = ngapType.ProtocolIEIDRANUENGAPID
	ie.Criticality.Value = ngapType.CriticalityPresentReject
	ie.Value.Present = ngapType.InitialUEMessageIEsPresentRANUENGAPID
	ie.Value.RANUENGAPID = &ngapType.RANUENGAPID{Value: ranUeNgapId}
	initialUEMessageIEs.List = append(initialUEMessageIEs.List, ie)

	if nasPdu != nil {
		ie = ngapType.InitialUEMessageIEs{}
		ie.Id.Value = ngapType.ProtocolIEIDNASPDU
		ie.Criticality.Value = ngapType.CriticalityPresentReject
		ie.Value.Present = ngapType.InitialUEMessageIEsPresentNASPDU
		ie.Value.NASPDU = &ngapType.NASPDU{Value: nasPdu}
		initialUEMessageIEs.List = append(initialUEMessageIEs.List, ie)
	}

	ie = ngapType.InitialUEMessageIEs{}
	ie.Id.Value = ngapType.ProtocolIEIDUserLocationInformation
	ie.Criticality.Value = ngapType.CriticalityPresentReject
	ie.Value.Present = ngapType.InitialUEMessageIEsPresentUserLocationInformation
	ie.Value.UserLocationInformation = userLocation()
	initialUEMessageIEs.List = append(initialUEMessageIEs.List, ie)

	ie = ngapType.InitialUEMessageIEs{}
	ie.Id.Value = ngapType.ProtocolIEIDRRCEstablishmentCause
	ie.Criticality.Value = ngapType.CriticalityPresentIgnore
	ie.Value.Present = ngapType.InitialUEMessageIEsPresentRRCEstablishmentCause
	ie.Value.RRCEstablishmentCause = &ngapType.RRCEstablishmentCause{Value: ngapType.RRCEstablishmentCausePresentMoSignalling}
	initialUEMessageIEs.List = append(initialUEMessageIEs.List, ie)

	if tmsi != nil {
		fiveGSTmsi := util.FiveGSTmsiToNgap(*tmsi)
		ie = ngapType.InitialUEMessageIEs{}
		ie.Id.Value = ngapType.ProtocolIEIDFiveGSTMSI
		ie.Criticality.Value = ngapType.CriticalityPresentReject
		ie.Value.Present = ngapType.InitialUEMessageIEsPresentFiveGSTMSI
		ie.Value.FiveGSTMSI = &fiveGSTmsi
		initialUEMessageIEs.List = append(initialUEMessageIEs.List, ie)
	}

	return pdu
}

func buildUplinkNASTransport(amfUeNgapId, ranUeNgapId int64, nasPdu []byte) *ngapType.NGAPPDU {
	pdu := &ngapType.NGAPPDU{Present: ngapType.NGAPPDUPresentInitiatingMessage}
	pdu.InitiatingMessage = new(ngapType.InitiatingMessage)

	initiatingMessage := pdu.InitiatingMessage
	initiatingMessage.ProcedureCode.Value = ngapType.ProcedureCodeUplinkNASTransport
	initiatingMessage.Criticality.Value = ngapType.CriticalityPresentIgnore
	initiatingMessage.Value.Present = ngapType.InitiatingMessagePresentUplinkNASTransport
	initiatingMessage.Value.UplinkNASTransport = new(ngapType.UplinkNASTransport)
	uplinkNasTransportIEs := &initiatingMessage.Value.UplinkNASTransport.ProtocolIEs

	ie := ngapType.UplinkNASTransportIEs{}
	ie.Id.Value = ngapType.ProtocolIEIDAMFUENGAPID
	ie.Criticality.Value = ngapType.CriticalityPresentReject
	ie.Value.Present = ngapType.UplinkNASTransportIEsPresentAMFUENGAPID
	ie.Value.AMFUENGAPID = &ngapType.AMFUENGAPID{Value: amfUeNgapId}
	uplinkNasTransportIEs.List = append(uplinkNasTransportIEs.List, ie)

	ie = ngapType.UplinkNASTransportIEs{}
	ie.Id.Value = ngapType.ProtocolIEIDRANUENGAPID
	ie.Criticality.Value = ngapType.CriticalityPresentReject
	ie.Value.Present = ngapType.UplinkNASTransportIEsPresentRANUENGAPID
	ie.Value.RANUENGAPID = &ngapType.RANUENGAPID{Value: ranUeNgapId}
	uplinkNasTransportIEs.List = append(uplinkNasTransportIEs.List, ie)

	if nasPdu != nil {
		ie = ngapType.UplinkNASTransportIEs{}
		ie.Id.Value = ngapType.ProtocolIEIDNASPDU
		ie.Criticality.Value = ngapType.CriticalityPresentReject
		ie.Value.Present = ngapType.UplinkNASTransportIEsPresentNASPDU
		ie.Value.NASPDU = &ngapType.NASPDU{Value: nasPdu}
		uplinkNasTransportIEs.List = append(uplinkNasTransportIEs.List, ie)
	}

	ie = ngapType.UplinkNASTransportIEs{}
	ie.Id.Value = ngapType.ProtocolIEIDUserLocationInformation
	ie.Criticality.Value = ngapType.CriticalityPresentIgnore
	ie.Value.Present = ngapType.UplinkNASTransportIEsPresentUserLocationInformation
	ie.Value.UserLocationInformation = userLocation()
	uplinkNasTransportIEs.List = append(uplinkNasTransportIEs.List, ie)

	return pdu
}

func buildNASNonDeliveryIndication(amfUeNgapId, ranUeNgapId int64, nasPdu []byte,
	cause *ngapType.Cause,
) *ngapType.NGAPPDU {
	pdu := &ngapType.NGAPPDU{Present: ngapType.NGAPPDUPresentInitiatingMessage}
	pdu.InitiatingMessage = new(ngapType.InitiatingMessage)

	initiatingMessage := pdu.InitiatingMessage
	initiatingMessage.ProcedureCode.Value = ngapType.ProcedureCodeNASNonDeliveryIndication
	initiatingMessage.Criticality.Value = ngapType.CriticalityPresentIgnore
	initiatingMessage.Value.Present = ngapType.InitiatingMessagePresentNASNonDeliveryIndication
	initiatingMessage.Value.NASNonDeliveryIndication = new(ngapType.NASNonDeliveryIndication)
	nonDeliveryIEs := &initiatingMessage.Value.NASNonDeliveryIndication.ProtocolIEs

	ie := ngapType.NASNonDeliveryIndicationIEs{}
	ie.Id.Value = ngapType.ProtocolIEIDAMFUENGAPID
	ie.Criticality.Value = ngapType.CriticalityPresentReject
	ie.Value.Present = ngapType.NASNonDeliveryIndicationIEsPresentAMFUENGAPID
	ie.Value.AMFUENGAPID = &ngapType.AMFUENGAPID{Value: amfUeNgapId}
	nonDeliveryIEs.List = append(nonDeliveryIEs.List, ie)

	ie = ngapType.NASNonDeliveryIndicationIEs{}
	ie.Id.Value = ngapType.ProtocolIEIDRANUENGAPID
	ie.Criticality.Value = ngapType.CriticalityPresentReject
	ie.Value.Present = ngapType.NASNonDeliveryIndicationIEsPresentRANUENGAPID
	ie.Value.RANUENGAPID = &ngapType.RANUENGAPID{Value: ranUeNgapId}
	nonDeliveryIEs.List = append(nonDeliveryIEs.List, ie)

	ie = ngapType.NASNonDeliveryIndicationIEs{}
	ie.Id.Value = ngapType.ProtocolIEIDNASPDU
	ie.Criticality.Value = ngapType.CriticalityPresentIgnore
	ie.Value.Present = ngapType.NASNonDeliveryIndicationIEsPresentNASPDU
	ie.Value.NASPDU = &ngapType.NASPDU{Value: nasPdu}
	nonDeliveryIEs.List = append(nonDeliveryIEs.List, ie)

	if cause != nil {
		ie = ngapType.NASNonDeliveryIndicationIEs{}
		ie.Id.Value = ngapType.ProtocolIEIDCause
		ie.Criticality.Value = ngapType.CriticalityPresentIgnore
		ie.Value.Present = ngapType.NASNonDeliveryIndicationIEsPresentCause
		ie.Value.Cause = cause
		nonDeliveryIEs.List = append(nonDeliveryIEs.List, ie)
	}

	return pdu
}

func buildInitialContextSetupResponse(amfUeNgapId, ranUeNgapId int64) *ngapType.NGAPPDU {
	pdu := &ngapType.NGAPPDU{Present: ngapType.NGAPPDUPresentSuccessfulOutcome}
	pdu.SuccessfulOutcome = new(ngapType.SuccessfulOutcome)

	successfulOutcome := pdu.SuccessfulOutcome
	successfulOutcome.ProcedureCode.Value = ngapType.ProcedureCodeInitialContextSetup
	successfulOutcome.Criticality.Value = ngapType.CriticalityPresentReject
	successfulOutcome.Value.Present = ngapType.SuccessfulOutcomePresentInitialContextSetupResponse
	successfulOutcome.Value.InitialContextSetupResponse = new(ngapType.InitialContextSetupResponse)
	ies := &successfulOutcome.Value.InitialContextSetupResponse.ProtocolIEs

	ie := ngapType.InitialContextSetupResponseIEs{}
	ie.Id.Value = ngapType.ProtocolIEIDAMFUENGAPID
	ie.Criticality.Value = ngapType.CriticalityPresentIgnore
	ie.Value.Present = ngapType.InitialContextSetupResponseIEsPresentAMFUENGAPID
	ie.Value.AMFUENGAPID = &ngapType.AMFUENGAPID{Value: amfUeNgapId}
	ies.List = append(ies.List, ie)

	ie = ngapType.InitialContextSetupResponseIEs{}
	ie.Id.Value = ngapType.ProtocolIEIDRANUENGAPID
	ie.Criticality.Value = ngapType.CriticalityPresentIgnore
	ie.Value.Present = ngapType.InitialContextSetupResponseIEsPresentRANUENGAPID
	ie.Value.RANUENGAPID = &ngapType.RANUENGAPID{Value: ranUeNgapId}
	ies.List = append(ies.List, ie)

	return pdu
}

func buildInitialContextSetupFailure(amfUeNgapId, ranUeNgapId int64, cause *ngapType.Cause) *ngapType.NGAPPDU {
	pdu := &ngapType.NGAPPDU{Present: ngapType.NGAPPDUPresentUnsuccessfulOutcome}
	pdu.UnsuccessfulOutcome = new(ngapType.UnsuccessfulOutcome)

	unsuccessfulOutcome := pdu.UnsuccessfulOutcome
	unsuccessfulOutcome.ProcedureCode.Value = ngapType.ProcedureCodeInitialContextSetup
	unsuccessfulOutcome.Criticality.Value = ngapType.CriticalityPresentReject
	unsuccessfulOutcome.Value.Present = ngapType.UnsuccessfulOutcomePresentInitialContextSetupFailure
	unsuccessfulOutcome.Value.InitialContextSetupFailure = new(ngapType.InitialContextSetupFailure)
	ies := &unsuccessfulOutcome.Value.InitialContextSetupFailure.ProtocolIEs

	ie := ngapType.InitialContextSetupFailureIEs{}
	ie.Id.Value = ngapType.ProtocolIEIDAMFUENGAPID
	ie.Criticality.Value = ngapType.CriticalityPresentIgnore
	ie.Value.Present = ngapType.InitialContextSetupFailureIEsPresentAMFUENGAPID
	ie.Value.AMFUENGAPID = &ngapType.AMFUENGAPID{Value: amfUeNgapId}
	ies.List = append(ies.List, ie)

	ie = ngapType.InitialContextSetupFailureIEs{}
	ie.Id.Value = ngapType.ProtocolIEIDRANUENGAPID
	ie.Criticality.Value = ngapType.CriticalityPresentIgnore
	ie.Value.Present = ngapType.InitialContextSetupFailureIEsPresentRANUENGAPID
	ie.Value.RANUENGAPID = &ngapType.RANUENGAPID{Value: ranUeNgapId}
	ies.List = append(ies.List, ie)

	ie = ngapType.InitialContextSetupFailureIEs{}
	ie.Id.Value = ngapType.ProtocolIEIDCause
	ie.Criticality.Value = ngapType.CriticalityPresentIgnore
	ie.Value.Present = ngapType.InitialContextSetupFailureIEsPresentCause
	ie.Value.Cause = cause
	ies.List = append(ies.List, ie)

	return pdu
}

func buildUEContextReleaseRequest(amfUeNgapId, ranUeNgapId int64, cause aper.Enumerated) *ngapType.NGAPPDU {
	pdu := &ngapType.NGAPPDU{Present: ngapType.NGAPPDUPresentInitiatingMessage}
	pdu.InitiatingMessage = new(ngapType.InitiatingMessage)

	initiatingMessage := pdu.InitiatingMessage
	initiatingMessage.ProcedureCode.Value = ngapType.ProcedureCodeUEContextReleaseRequest
	initiatingMessage.Criticality.Value = ngapType.CriticalityPresentIgnore
	initiatingMessage.Value.Present = ngapType.InitiatingMessagePresentUEContextReleaseRequest
	initiatingMessage.Value.UEContextReleaseRequest = new(ngapType.UEContextReleaseRequest)
	ies := &initiatingMessage.Value.UEContextReleaseRequest.ProtocolIEs

	ie := ngapType.UEContextReleaseRequestIEs{}
	ie.Id.Value = ngapType.ProtocolIEIDAMFUENGAPID
	ie.Criticality.Value = ngapType.CriticalityPresentReject
	ie.Value.Present = ngapType.UEContextReleaseRequestIEsPresentAMFUENGAPID
	ie.Value.AMFUENGAPID = &ngapType.AMFUENGAPID{Value: amfUeNgapId}
	ies.List = append(ies.List, ie)

	ie = ngapType.UEContextReleaseRequestIEs{}
	ie.Id.Value = ngapType.ProtocolIEIDRANUENGAPID
	ie.Criticality.Value = ngapType.CriticalityPresentReject
	ie.Value.Present = ngapType.UEContextReleaseRequestIEsPresentRANUENGAPID
	ie.Value.RANUENGAPID = &ngapType.RANUENGAPID{Value: ranUeNgapId}
	ies.List = append(ies.List, ie)

	ie = ngapType.UEContextReleaseRequestIEs{}
	ie.Id.Value = ngapType.ProtocolIEIDCause
	ie.Criticality.Value = ngapType.CriticalityPresentIgnore
	ie.Value.Present = ngapType.UEContextReleaseRequestIEsPresentCause
	ie.Value.Cause = &ngapType.Cause{
		Present:      ngapType.CausePresentRadioNetwork,
		RadioNetwork: &ngapType.CauseRadioNetwork{Value: cause},
	}
	ies.List = append(ies.List, ie)

	return pdu
}

func buildUEContextReleaseComplete(amfUeNgapId, ranUeNgapId int64) *ngapType.NGAPPDU {
	pdu := &ngapType.NGAPPDU{Present: ngapType.NGAPPDUPresentSuccessfulOutcome}
	pdu.SuccessfulOutcome = new(ngapType.SuccessfulOutcome)

	successfulOutcome := pdu.SuccessfulOutcome
	successfulOutcome.ProcedureCode.Value = ngapType.ProcedureCodeUEContextRelease
	successfulOutcome.Criticality.Value = ngapType.CriticalityPresentReject
	successfulOutcome.Value.Present = ngapType.SuccessfulOutcomePresentUEContextReleaseComplete
	successfulOutcome.Value.UEContextReleaseComplete = new(ngapType.UEContextReleaseComplete)
	ies := &successfulOutcome.Value.UEContextReleaseComplete.ProtocolIEs

	ie := ngapType.UEContextReleaseCompleteIEs{}
	ie.Id.Value = ngapType.ProtocolIEIDAMFUENGAPID
	ie.Criticality.Value = ngapType.CriticalityPresentIgnore
	ie.Value.Present = ngapType.UEContextReleaseCompleteIEsPresentAMFUENGAPID
	ie.Value.AMFUENGAPID = &ngapType.AMFUENGAPID{Value: amfUeNgapId}
	ies.List = append(ies.List, ie)

	ie = ngapType.UEContextReleaseCompleteIEs{}
	ie.Id.Value = ngapType.ProtocolIEIDRANUENGAPID
	ie.Criticality.Value = ngapType.CriticalityPresentIgnore
	ie.Value.Present = ngapType.UEContextReleaseCompleteIEsPresentRANUENGAPID
	ie.Value.RANUENGAPID = &ngapType.RANUENGAPID{Value: ranUeNgapId}
	ies.List = append(ies.List, ie)

	return pdu
}

// buildNGReset resets the whole interface when items is nil.
func buildNGReset(items []ngapType.UEAssociatedLogicalNGConnectionItem) *ngapType.NGAPPDU {
	pdu := &ngapType.NGAPPDU{Present: ngapType.NGAPPDUPresentInitiatingMessage}
	pdu.InitiatingMessage = new(ngapType.InitiatingMessage)

	initiatingMessage := pdu.InitiatingMessage
	initiatingMessage.ProcedureCode.Value = ngapType.ProcedureCodeNGReset
	initiatingMessage.Criticality.Value = ngapType.CriticalityPresentReject
	initiatingMessage.Value.Present = ngapType.InitiatingMessagePresentNGReset
	initiatingMessage.Value.NGReset = new(ngapType.NGReset)
	ngResetIEs := &initiatingMessage.Value.NGReset.ProtocolIEs

	ie := ngapType.NGResetIEs{}
	ie.Id.Value = ngapType.ProtocolIEIDCause
	ie.Criticality.Value = ngapType.CriticalityPresentIgnore
	ie.Value.Present = ngapType.NGResetIEsPresentCause
	ie.Value.Cause = &ngapType.Cause{
		Present: ngapType.CausePresentMisc,
		Misc:    &ngapType.CauseMisc{Value: ngapType.CauseMiscPresentOmIntervention},
	}
	ngResetIEs.List = append(ngResetIEs.List, ie)

	ie = ngapType.NGResetIEs{}
	ie.Id.Value = ngapType.ProtocolIEIDResetType
	ie.Criticality.Value = ngapType.CriticalityPresentReject
	ie.Value.Present = ngapType.NGResetIEsPresentResetType
	ie.Value.ResetType = new(ngapType.ResetType)
	if items == nil {
		ie.Value.ResetType.Present = ngapType.ResetTypePresentNGInterface
		ie.Value.ResetType.NGInterface = &ngapType.ResetAll{Value: ngapType.ResetAllPresentResetAll}
	} else {
		ie.Value.ResetType.Present = ngapType.ResetTypePresentPartOfNGInterface
		ie.Value.ResetType.PartOfNGInterface = &ngapType.UEAssociatedLogicalNGConnectionList{List: items}
	}
	ngResetIEs.List = append(ngResetIEs.List, ie)

	return pdu
}

func causeOf(t *testing.T, cause *ngapType.Cause) (int, aper.Enumerated) {
	t.Helper()
	require.NotNil(t, cause)
	return printAndGetCause(cause)
}
