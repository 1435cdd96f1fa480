// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"testing"

	"github.com/omec-project/aper"
	"github.com/omec-project/n2gw/context"
	ngap_message "github.com/omec-project/n2gw/ngap/message"
	"github.com/omec-project/ngap"
	"github.com/omec-project/ngap/ngapType"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNGSetup(t *testing.T) {
	gw, transport := newTestGateway(t, gatewayOptions{})
	HandleEvent(gw, context.NewAssociationUpEvt(testPeer, 4, 4))
	HandleNGSetupRequest(gw, testPeer, context.NonUeStream, buildNGSetupRequest(testPlmn, testTac))

	sent := transport.last(t)
	assert.Equal(t, testPeer, sent.peerId)
	assert.Equal(t, context.NonUeStream, sent.stream)
	require.Equal(t, ngapType.NGAPPDUPresentSuccessfulOutcome, sent.pdu.Present)
	resp := sent.pdu.SuccessfulOutcome.Value.NGSetupResponse
	require.NotNil(t, resp)
	assert.Equal(t, "amf-1", resp.ProtocolIEs.List[0].Value.AMFName.Value)

	peer, ok := gw.Registry.LookupPeer(testPeer)
	require.True(t, ok)
	assert.Equal(t, context.PeerReady, peer.State())
	info := peer.SetupInfo()
	assert.Equal(t, "gnb-1", info.RanNodeName)
	assert.Equal(t, uint32(testGnbId), info.GlobalRanNodeId.GnbId)
	assert.Equal(t, uint8(22), info.GlobalRanNodeId.GnbIdLength)
	assert.Equal(t, []context.Tai{{PlmnId: testPlmn, Tac: testTac}}, info.SupportedTaList)
	assert.Equal(t, int64(ngapType.PagingDRXPresentV128), info.DefaultPagingDrx)

	// a repeated NG Setup refreshes the setup of a ready peer
	HandleNGSetupRequest(gw, testPeer, context.NonUeStream, buildNGSetupRequest(testPlmn, testTac))
	assert.Equal(t, ngapType.NGAPPDUPresentSuccessfulOutcome, transport.last(t).pdu.Present)
}

func TestNGSetupFailure(t *testing.T) {
	testCases := []struct {
		name        string
		prepare     func(t *testing.T, gw *context.N2GWContext, transport *recordingTransport)
		plmnId      context.PlmnId
		tac         string
		wantPresent int
		wantValue   aper.Enumerated
		timeToWait  bool
	}{
		{
			name:        "missing supported TA list",
			prepare:     associate,
			plmnId:      testPlmn,
			wantPresent: ngapType.CausePresentProtocol,
			wantValue:   ngapType.CauseProtocolPresentAbstractSyntaxErrorReject,
		},
		{
			name:        "unknown PLMN",
			prepare:     associate,
			plmnId:      context.PlmnId{Mcc: "001", Mnc: "01"},
			tac:         testTac,
			wantPresent: ngapType.CausePresentMisc,
			wantValue:   ngapType.CauseMiscPresentUnknownPLMN,
		},
		{
			name:        "peer not registered",
			prepare:     func(*testing.T, *context.N2GWContext, *recordingTransport) {},
			plmnId:      testPlmn,
			tac:         testTac,
			wantPresent: ngapType.CausePresentMisc,
			wantValue:   ngapType.CauseMiscPresentControlProcessingOverload,
		},
		{
			name: "peer resetting",
			prepare: func(t *testing.T, gw *context.N2GWContext, transport *recordingTransport) {
				readyPeer(t, gw, transport, testPeer)
				HandleInitialUEMessage(gw, testPeer, testStream, buildInitialUEMessage(5, []byte{0x7e}, nil))
				_, err := gw.Registry.ResetPeer(testPeer)
				require.NoError(t, err)
			},
			plmnId:      testPlmn,
			tac:         testTac,
			wantPresent: ngapType.CausePresentTransport,
			wantValue:   ngapType.CauseTransportPresentTransportResourceUnavailable,
			timeToWait:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gw, transport := newTestGateway(t, gatewayOptions{})
			tc.prepare(t, gw, transport)

			HandleNGSetupRequest(gw, testPeer, context.NonUeStream, buildNGSetupRequest(tc.plmnId, tc.tac))
			sent := transport.last(t)
			assert.Equal(t, context.NonUeStream, sent.stream)
			require.Equal(t, ngapType.NGAPPDUPresentUnsuccessfulOutcome, sent.pdu.Present)
			failure := sent.pdu.UnsuccessfulOutcome.Value.NGSetupFailure
			require.NotNil(t, failure)

			var cause *ngapType.Cause
			var timeToWait *ngapType.TimeToWait
			for _, ie := range failure.ProtocolIEs.List {
				switch ie.Id.Value {
				case ngapType.ProtocolIEIDCause:
					cause = ie.Value.Cause
				case ngapType.ProtocolIEIDTimeToWait:
					timeToWait = ie.Value.TimeToWait
				}
			}
			present, value := causeOf(t, cause)
			assert.Equal(t, tc.wantPresent, present)
			assert.Equal(t, tc.wantValue, value)
			assert.Equal(t, tc.timeToWait, timeToWait != nil)

			if peer, ok := gw.Registry.LookupPeer(testPeer); ok {
				assert.NotEqual(t, context.PeerReady, peer.State())
			}
		})
	}
}

func associate(t *testing.T, gw *context.N2GWContext, _ *recordingTransport) {
	HandleEvent(gw, context.NewAssociationUpEvt(testPeer, 4, 4))
	_, ok := gw.Registry.LookupPeer(testPeer)
	require.True(t, ok)
}

func errorIndicationCause(t *testing.T, pdu *ngapType.NGAPPDU) *ngapType.Cause {
	t.Helper()
	require.NotNil(t, pdu.InitiatingMessage)
	errorIndication := pdu.InitiatingMessage.Value.ErrorIndication
	require.NotNil(t, errorIndication)
	for _, ie := range errorIndication.ProtocolIEs.List {
		if ie.Id.Value == ngapType.ProtocolIEIDCause {
			return ie.Value.Cause
		}
	}
	return nil
}

func TestInitialUEMessage(t *testing.T) {
	gw, transport := newTestGateway(t, gatewayOptions{})
	readyPeer(t, gw, transport, testPeer)

	tmsi := &context.FiveGSTmsi{AmfSetId: 0x3f8, AmfPointer: 1, Tmsi: 0xc0ffee}
	HandleInitialUEMessage(gw, testPeer, 3, buildInitialUEMessage(5, []byte{0x7e, 0x00, 0x41}, tmsi))
	assert.Empty(t, transport.take())

	msg := nextMm(t, gw)
	assert.NotZero(t, msg.Key.Id)
	assert.Equal(t, testPeer, msg.Key.PeerId)
	assert.Equal(t, int64(5), msg.Key.RadioUeId)
	assert.Equal(t, context.CoreUeIdInvalid, msg.Key.CoreUeId)
	payload, ok := msg.Payload.(*context.InitialUeMessage)
	require.True(t, ok)
	assert.Equal(t, []byte{0x7e, 0x00, 0x41}, payload.NasPdu)
	require.NotNil(t, payload.Tai)
	assert.Equal(t, context.Tai{PlmnId: testPlmn, Tac: testTac}, *payload.Tai)
	assert.Equal(t, int64(ngapType.RRCEstablishmentCausePresentMoSignalling), payload.RrcEstablishmentCause)
	require.NotNil(t, payload.FiveGSTmsi)
	assert.Equal(t, *tmsi, *payload.FiveGSTmsi)

	ue, ok := gw.Registry.LookupByComposite(testPeer, 5)
	require.True(t, ok)
	assert.True(t, ue.State.Is(context.WaitingContextSetup))
	assert.False(t, ue.HasCoreUeId())
	assert.Equal(t, uint16(3), ue.StreamRecv)
	assert.Equal(t, uint16(1), ue.StreamSend)
	assert.Equal(t, 1, gw.Correlator.Pending())
}

func TestInitialUEMessageMissingIEs(t *testing.T) {
	gw, transport := newTestGateway(t, gatewayOptions{})
	readyPeer(t, gw, transport, testPeer)

	HandleInitialUEMessage(gw, testPeer, testStream, buildInitialUEMessage(5, nil, nil))
	sent := transport.last(t)
	assert.Equal(t, testStream, sent.stream)
	assert.Equal(t, ngapType.ProcedureCodeErrorIndication, sent.pdu.InitiatingMessage.ProcedureCode.Value)

	var diagnostics *ngapType.CriticalityDiagnostics
	var ranUeNgapId *ngapType.RANUENGAPID
	for _, ie := range sent.pdu.InitiatingMessage.Value.ErrorIndication.ProtocolIEs.List {
		switch ie.Id.Value {
		case ngapType.ProtocolIEIDCriticalityDiagnostics:
			diagnostics = ie.Value.CriticalityDiagnostics
		case ngapType.ProtocolIEIDRANUENGAPID:
			ranUeNgapId = ie.Value.RANUENGAPID
		}
	}
	require.NotNil(t, diagnostics)
	require.NotNil(t, diagnostics.IEsCriticalityDiagnostics)
	require.Len(t, diagnostics.IEsCriticalityDiagnostics.List, 1)
	assert.Equal(t, ngapType.ProtocolIEIDNASPDU, diagnostics.IEsCriticalityDiagnostics.List[0].IEID.Value)
	require.NotNil(t, ranUeNgapId)
	assert.Equal(t, int64(5), ranUeNgapId.Value)

	assert.Equal(t, 0, gw.Registry.Stats().Ues)
	assertNoMm(t, gw)
}

func TestInitialUEMessageRejected(t *testing.T) {
	t.Run("peer not ready", func(t *testing.T) {
		gw, transport := newTestGateway(t, gatewayOptions{})
		HandleEvent(gw, context.NewAssociationUpEvt(testPeer, 4, 4))

		HandleInitialUEMessage(gw, testPeer, testStream, buildInitialUEMessage(5, []byte{0x7e}, nil))
		present, value := causeOf(t, errorIndicationCause(t, transport.last(t).pdu))
		assert.Equal(t, ngapType.CausePresentProtocol, present)
		assert.Equal(t, aper.Enumerated(ngapType.CauseProtocolPresentMessageNotCompatibleWithReceiverState), value)
		assert.Equal(t, 0, gw.Registry.Stats().Ues)
	})

	t.Run("duplicate radio id", func(t *testing.T) {
		gw, transport := newTestGateway(t, gatewayOptions{})
		readyPeer(t, gw, transport, testPeer)

		HandleInitialUEMessage(gw, testPeer, testStream, buildInitialUEMessage(5, []byte{0x7e}, nil))
		first := nextMm(t, gw)
		HandleInitialUEMessage(gw, testPeer, testStream, buildInitialUEMessage(5, []byte{0x7e}, nil))
		assert.Empty(t, transport.take())
		assertNoMm(t, gw)

		ue, ok := gw.Registry.LookupByComposite(testPeer, 5)
		require.True(t, ok)
		assert.Equal(t, first.Key.RadioUeId, ue.RadioUeId)
		assert.Equal(t, 1, gw.Registry.Stats().Ues)
	})

	t.Run("UE limit", func(t *testing.T) {
		gw, transport := newTestGateway(t, gatewayOptions{maxUes: 1})
		readyPeer(t, gw, transport, testPeer)

		HandleInitialUEMessage(gw, testPeer, testStream, buildInitialUEMessage(5, []byte{0x7e}, nil))
		nextMm(t, gw)
		HandleInitialUEMessage(gw, testPeer, testStream, buildInitialUEMessage(6, []byte{0x7e}, nil))
		present, value := causeOf(t, errorIndicationCause(t, transport.last(t).pdu))
		assert.Equal(t, ngapType.CausePresentMisc, present)
		assert.Equal(t, aper.Enumerated(ngapType.CauseMiscPresentControlProcessingOverload), value)
		_, ok := gw.Registry.LookupByComposite(testPeer, 6)
		assert.False(t, ok)
	})

	t.Run("mobility queue full", func(t *testing.T) {
		gw, transport := newTestGateway(t, gatewayOptions{mmQueueLen: 1})
		readyPeer(t, gw, transport, testPeer)

		HandleInitialUEMessage(gw, testPeer, testStream, buildInitialUEMessage(5, []byte{0x7e}, nil))
		HandleInitialUEMessage(gw, testPeer, testStream, buildInitialUEMessage(6, []byte{0x7e}, nil))
		_, ok := gw.Registry.LookupByComposite(testPeer, 6)
		assert.False(t, ok)
		assert.Equal(t, 1, gw.Registry.Stats().Ues)
		assert.Equal(t, 1, gw.Correlator.Pending())
	})
}

func TestUplinkNASTransport(t *testing.T) {
	gw, transport := newTestGateway(t, gatewayOptions{})
	readyPeer(t, gw, transport, testPeer)
	ue := connectedUe(t, gw, transport, 5, 1001)

	HandleUplinkNASTransport(gw, testPeer, testStream, buildUplinkNASTransport(1001, 5, []byte{0x7e, 0x02}))
	msg := nextMm(t, gw)
	assert.Equal(t, int64(1001), msg.Key.CoreUeId)
	assert.Zero(t, msg.Key.Id)
	payload, ok := msg.Payload.(*context.UplinkNas)
	require.True(t, ok)
	assert.Equal(t, []byte{0x7e, 0x02}, payload.NasPdu)
	require.NotNil(t, payload.Tai)
	assert.Equal(t, testTac, payload.Tai.Tac)
	assert.Empty(t, transport.take())

	// radio id mismatch is dropped
	HandleUplinkNASTransport(gw, testPeer, testStream, buildUplinkNASTransport(1001, 6, []byte{0x7e}))
	assertNoMm(t, gw)
	assert.Empty(t, transport.take())

	// not allowed once release was commanded
	HandleEvent(gw, context.NewUeContextReleaseCommandEvt(
		context.CorrelationKey{PeerId: testPeer, RadioUeId: 5, CoreUeId: 1001}, context.ReleaseCauseNormal))
	transport.take()
	require.True(t, ue.State.Is(context.WaitingRelease))
	HandleUplinkNASTransport(gw, testPeer, testStream, buildUplinkNASTransport(1001, 5, []byte{0x7e}))
	assertNoMm(t, gw)
}

func TestUplinkNASTransportUnknownUe(t *testing.T) {
	gw, transport := newTestGateway(t, gatewayOptions{})
	readyPeer(t, gw, transport, testPeer)

	HandleUplinkNASTransport(gw, testPeer, 2, buildUplinkNASTransport(4242, 9, []byte{0x7e}))
	sent := transport.last(t)
	assert.Equal(t, uint16(2), sent.stream)
	require.Equal(t, ngapType.ProcedureCodeUEContextRelease, sent.pdu.InitiatingMessage.ProcedureCode.Value)
	ies := sent.pdu.InitiatingMessage.Value.UEContextReleaseCommand.ProtocolIEs.List
	pair := ies[0].Value.UENGAPIDs.UENGAPIDPair
	require.NotNil(t, pair)
	assert.Equal(t, int64(4242), pair.AMFUENGAPID.Value)
	assert.Equal(t, int64(9), pair.RANUENGAPID.Value)
	present, value := causeOf(t, ies[1].Value.Cause)
	assert.Equal(t, ngapType.CausePresentRadioNetwork, present)
	assert.Equal(t, aper.Enumerated(ngapType.CauseRadioNetworkPresentUnknownLocalUENGAPID), value)

	HandleUplinkNASTransport(gw, testPeer, testStream, buildUplinkNASTransport(4242, 9, nil))
	sent = transport.last(t)
	assert.Equal(t, ngapType.ProcedureCodeErrorIndication, sent.pdu.InitiatingMessage.ProcedureCode.Value)
}

func TestNASNonDeliveryIndication(t *testing.T) {
	gw, transport := newTestGateway(t, gatewayOptions{})
	readyPeer(t, gw, transport, testPeer)
	connectedUe(t, gw, transport, 5, 1001)
	cause := ngap_message.BuildCause(ngapType.CausePresentRadioNetwork, ngapType.CauseRadioNetworkPresentUnspecified)

	HandleNASNonDeliveryIndication(gw, testPeer, testStream,
		buildNASNonDeliveryIndication(1001, 5, []byte{0x7e, 0x00, 0x56}, cause))
	msg := nextMm(t, gw)
	assert.Equal(t, int64(1001), msg.Key.CoreUeId)
	assert.Equal(t, int64(5), msg.Key.RadioUeId)
	payload, ok := msg.Payload.(*context.NasNonDelivery)
	require.True(t, ok)
	assert.Equal(t, []byte{0x7e, 0x00, 0x56}, payload.NasPdu)
	assert.Equal(t, "radioNetwork/0", payload.Cause)
	assert.Empty(t, transport.take())

	// UE associated signalling is not accepted on the non-UE stream
	HandleNASNonDeliveryIndication(gw, testPeer, context.NonUeStream,
		buildNASNonDeliveryIndication(1001, 5, []byte{0x7e}, cause))
	// unknown AMF UE NGAP ID, and a UE owned by another peer
	HandleNASNonDeliveryIndication(gw, testPeer, testStream, buildNASNonDeliveryIndication(4242, 5, []byte{0x7e}, cause))
	HandleNASNonDeliveryIndication(gw, otherPeer, testStream, buildNASNonDeliveryIndication(1001, 5, []byte{0x7e}, cause))
	assertNoMm(t, gw)
	assert.Empty(t, transport.take())

	// only connected UEs
	HandleInitialUEMessage(gw, testPeer, testStream, buildInitialUEMessage(6, []byte{0x7e}, nil))
	key := nextMm(t, gw).Key
	key.CoreUeId = 1002
	HandleEvent(gw, context.NewCoreIdNotificationEvt(key, context.ImsiInvalid))
	HandleNASNonDeliveryIndication(gw, testPeer, testStream, buildNASNonDeliveryIndication(1002, 6, []byte{0x7e}, cause))
	assertNoMm(t, gw)
	assert.Empty(t, transport.take())

	// missing cause
	HandleNASNonDeliveryIndication(gw, testPeer, testStream, buildNASNonDeliveryIndication(1001, 5, []byte{0x7e}, nil))
	sent := transport.last(t)
	require.NotNil(t, sent.pdu.InitiatingMessage)
	assert.Equal(t, ngapType.ProcedureCodeErrorIndication, sent.pdu.InitiatingMessage.ProcedureCode.Value)
	assertNoMm(t, gw)
}

func TestInitialContextSetupFailure(t *testing.T) {
	gw, transport := newTestGateway(t, gatewayOptions{})
	readyPeer(t, gw, transport, testPeer)

	HandleInitialUEMessage(gw, testPeer, testStream, buildInitialUEMessage(5, []byte{0x7e}, nil))
	key := nextMm(t, gw).Key
	key.CoreUeId = 1001
	HandleEvent(gw, context.NewCoreIdNotificationEvt(key, context.ImsiInvalid))
	ue, ok := gw.Registry.LookupByCore(1001)
	require.True(t, ok)

	cause := ngap_message.BuildCause(ngapType.CausePresentRadioNetwork, ngapType.CauseRadioNetworkPresentUnspecified)

	// wrong radio id and wrong peer leave the UE alone
	HandleInitialContextSetupFailure(gw, testPeer, testStream, buildInitialContextSetupFailure(1001, 6, cause))
	HandleInitialContextSetupFailure(gw, otherPeer, testStream, buildInitialContextSetupFailure(1001, 5, cause))
	assert.True(t, ue.State.Is(context.WaitingContextSetup))
	assertNoMm(t, gw)

	HandleInitialContextSetupFailure(gw, testPeer, testStream, buildInitialContextSetupFailure(1001, 5, cause))
	assert.True(t, ue.State.Is(context.Released))
	_, ok = gw.Registry.LookupByCore(1001)
	assert.False(t, ok)

	msg := nextMm(t, gw)
	result, ok := msg.Payload.(*context.ContextSetupResult)
	require.True(t, ok)
	assert.False(t, result.Success)
	assert.Equal(t, "radioNetwork/0", result.Cause)
	assert.Equal(t, int64(1001), msg.Key.CoreUeId)
	assert.Empty(t, transport.take())
}

func TestInitialContextSetupResponseUnknownUe(t *testing.T) {
	gw, transport := newTestGateway(t, gatewayOptions{})
	readyPeer(t, gw, transport, testPeer)

	HandleInitialContextSetupResponse(gw, testPeer, testStream, buildInitialContextSetupResponse(1001, 5))
	assertNoMm(t, gw)
	assert.Empty(t, transport.take())
}

func TestUEContextReleaseRequest(t *testing.T) {
	gw, transport := newTestGateway(t, gatewayOptions{})
	readyPeer(t, gw, transport, testPeer)
	ue := connectedUe(t, gw, transport, 5, 1001)

	HandleUEContextReleaseRequest(gw, testPeer, testStream,
		buildUEContextReleaseRequest(1001, 5, ngapType.CauseRadioNetworkPresentUserInactivity))
	msg := nextMm(t, gw)
	assert.NotZero(t, msg.Key.Id)
	payload, ok := msg.Payload.(*context.ReleaseRequest)
	require.True(t, ok)
	assert.Equal(t, context.ReleaseCauseUserInactivity, payload.Cause)
	// the UE stays connected until the core commands the release
	assert.True(t, ue.State.Is(context.Connected))

	HandleUEContextReleaseRequest(gw, testPeer, testStream,
		buildUEContextReleaseRequest(2002, 6, ngapType.CauseRadioNetworkPresentUserInactivity))
	assertNoMm(t, gw)
	assert.Empty(t, transport.take())
}

func TestUEContextReleaseComplete(t *testing.T) {
	gw, transport := newTestGateway(t, gatewayOptions{})
	readyPeer(t, gw, transport, testPeer)
	ue := connectedUe(t, gw, transport, 5, 1001)

	HandleEvent(gw, context.NewUeContextReleaseCommandEvt(
		context.CorrelationKey{PeerId: testPeer, RadioUeId: 5, CoreUeId: 1001}, context.ReleaseCauseNormal))
	sent := transport.last(t)
	assert.Equal(t, ue.StreamSend, sent.stream)
	assert.Equal(t, ngapType.ProcedureCodeUEContextRelease, sent.pdu.InitiatingMessage.ProcedureCode.Value)
	require.True(t, ue.State.Is(context.WaitingRelease))

	HandleUEContextReleaseComplete(gw, testPeer, testStream, buildUEContextReleaseComplete(1001, 5))
	assert.True(t, ue.State.Is(context.Released))
	assert.Equal(t, 0, gw.Registry.Stats().Ues)
	msg := nextMm(t, gw)
	released, ok := msg.Payload.(*context.UeReleased)
	require.True(t, ok)
	assert.Equal(t, context.ReleaseCauseNormal, released.Cause)

	HandleUEContextReleaseComplete(gw, testPeer, testStream, buildUEContextReleaseComplete(1001, 5))
	assertNoMm(t, gw)
}

func TestUEContextReleaseCompleteWithoutCommand(t *testing.T) {
	gw, transport := newTestGateway(t, gatewayOptions{})
	readyPeer(t, gw, transport, testPeer)
	ue := connectedUe(t, gw, transport, 5, 1001)

	HandleUEContextReleaseComplete(gw, testPeer, testStream, buildUEContextReleaseComplete(1001, 5))
	assert.True(t, ue.State.Is(context.Connected))
	assertNoMm(t, gw)
}

func TestNGResetWholeInterface(t *testing.T) {
	gw, transport := newTestGateway(t, gatewayOptions{})
	readyPeer(t, gw, transport, testPeer)
	connectedUe(t, gw, transport, 5, 1001)
	HandleInitialUEMessage(gw, testPeer, testStream, buildInitialUEMessage(6, []byte{0x7e}, nil))
	nextMm(t, gw)

	HandleNGReset(gw, testPeer, context.NonUeStream, buildNGReset(nil))

	sent := transport.last(t)
	assert.Equal(t, context.NonUeStream, sent.stream)
	require.Equal(t, ngapType.NGAPPDUPresentSuccessfulOutcome, sent.pdu.Present)
	assert.Equal(t, ngapType.ProcedureCodeNGReset, sent.pdu.SuccessfulOutcome.ProcedureCode.Value)
	assert.Empty(t, sent.pdu.SuccessfulOutcome.Value.NGResetAcknowledge.ProtocolIEs.List)

	for i := 0; i < 2; i++ {
		released, ok := nextMm(t, gw).Payload.(*context.UeReleased)
		require.True(t, ok)
		assert.Equal(t, context.ReleaseCauseAssociationReset, released.Cause)
	}
	assert.Equal(t, 0, gw.Registry.Stats().Ues)
	peer, _ := gw.Registry.LookupPeer(testPeer)
	assert.Equal(t, context.PeerReady, peer.State())
}

func TestNGResetPartOfInterface(t *testing.T) {
	gw, transport := newTestGateway(t, gatewayOptions{})
	readyPeer(t, gw, transport, testPeer)
	connectedUe(t, gw, transport, 5, 1001)
	connectedUe(t, gw, transport, 6, 1002)
	kept := connectedUe(t, gw, transport, 7, 1003)

	byCore := ngapType.AMFUENGAPID{Value: 1001}
	byRadio := ngapType.RANUENGAPID{Value: 6}
	unknown := ngapType.RANUENGAPID{Value: 99}
	HandleNGReset(gw, testPeer, context.NonUeStream, buildNGReset([]ngapType.UEAssociatedLogicalNGConnectionItem{
		{AMFUENGAPID: &byCore},
		{RANUENGAPID: &byRadio},
		{RANUENGAPID: &unknown},
	}))

	sent := transport.last(t)
	ies := sent.pdu.SuccessfulOutcome.Value.NGResetAcknowledge.ProtocolIEs.List
	require.Len(t, ies, 1)
	assert.Len(t, ies[0].Value.UEAssociatedLogicalNGConnectionList.List, 3)

	nextMm(t, gw)
	nextMm(t, gw)
	assertNoMm(t, gw)
	_, ok := gw.Registry.LookupByCore(1001)
	assert.False(t, ok)
	_, ok = gw.Registry.LookupByCore(1002)
	assert.False(t, ok)
	got, ok := gw.Registry.LookupByCore(1003)
	require.True(t, ok)
	assert.Same(t, kept, got)
}

func TestNGResetMissingResetType(t *testing.T) {
	gw, transport := newTestGateway(t, gatewayOptions{})
	readyPeer(t, gw, transport, testPeer)

	pdu := buildNGReset(nil)
	ies := &pdu.InitiatingMessage.Value.NGReset.ProtocolIEs
	ies.List = ies.List[:1]
	HandleNGReset(gw, testPeer, context.NonUeStream, pdu)

	sent := transport.last(t)
	assert.Equal(t, context.NonUeStream, sent.stream)
	assert.Equal(t, ngapType.ProcedureCodeErrorIndication, sent.pdu.InitiatingMessage.ProcedureCode.Value)
}

func TestErrorIndication(t *testing.T) {
	gw, transport := newTestGateway(t, gatewayOptions{})
	readyPeer(t, gw, transport, testPeer)
	ue := connectedUe(t, gw, transport, 5, 1001)

	amfUeNgapId, ranUeNgapId := int64(1001), int64(5)
	pkt, err := ngap_message.BuildErrorIndication(&amfUeNgapId, &ranUeNgapId,
		ngap_message.BuildCause(ngapType.CausePresentProtocol, ngapType.CauseProtocolPresentSemanticError), nil)
	require.NoError(t, err)
	pdu, err := ngap.Decoder(pkt)
	require.NoError(t, err)

	HandleErrorIndication(gw, testPeer, testStream, pdu)
	assert.Empty(t, transport.take())
	assertNoMm(t, gw)
	assert.True(t, ue.State.Is(context.Connected))
}

func TestNilMessages(t *testing.T) {
	gw, transport := newTestGateway(t, gatewayOptions{})
	handlers := []func(*context.N2GWContext, context.PeerId, uint16, *ngapType.NGAPPDU){
		HandleNGSetupRequest, HandleInitialUEMessage, HandleUplinkNASTransport,
		HandleInitialContextSetupResponse, HandleInitialContextSetupFailure,
		HandleUEContextReleaseRequest, HandleUEContextReleaseComplete, HandleNGReset, HandleErrorIndication,
	}
	for _, handle := range handlers {
		assert.NotPanics(t, func() {
			handle(gw, testPeer, testStream, nil)
			handle(gw, testPeer, testStream, &ngapType.NGAPPDU{})
		})
	}
	assert.Empty(t, transport.take())
}

func TestCauseString(t *testing.T) {
	assert.Equal(t, "misc/5", causeString(ngapType.CausePresentMisc, 5))
	assert.Equal(t, "nas/0", causeString(ngapType.CausePresentNas, 0))
	assert.Equal(t, "unknown", causeString(ngapType.CausePresentNothing, 0))
}
