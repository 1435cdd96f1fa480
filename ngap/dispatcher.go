// SPDX-FileCopyrightText: 2024 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package ngap

import (
	"runtime/debug"
	"strconv"

	"github.com/omec-project/n2gw/context"
	"github.com/omec-project/n2gw/logger"
	"github.com/omec-project/n2gw/metrics"
	"github.com/omec-project/n2gw/ngap/handler"
	ngap_message "github.com/omec-project/n2gw/ngap/message"
	"github.com/omec-project/ngap"
	"github.com/omec-project/ngap/ngapType"
)

// Result tells the NGAP task what became of one received PDU.
type Result int

const (
	Handled Result = iota
	Unhandled
	DecodeError
)

func (r Result) String() string {
	switch r {
	case Handled:
		return metrics.ResultHandled
	case Unhandled:
		return metrics.ResultUnhandled
	case DecodeError:
		return metrics.ResultDecodeError
	}
	return "unknown"
}

// HandlerFunc processes one decoded PDU received from a peer.
type HandlerFunc func(gw *context.N2GWContext, peerId context.PeerId, stream uint16, message *ngapType.NGAPPDU)

type procedureKey struct {
	procedureCode int64
	present       int
}

type procedure struct {
	name    string
	handler HandlerFunc
}

// Dispatcher routes received PDUs to handlers by procedure code and
// message type.
type Dispatcher struct {
	gw         *context.N2GWContext
	procedures map[procedureKey]procedure
}

func NewDispatcher(gw *context.N2GWContext) *Dispatcher {
	d := &Dispatcher{
		gw:         gw,
		procedures: make(map[procedureKey]procedure),
	}

	initiating := ngapType.NGAPPDUPresentInitiatingMessage
	successful := ngapType.NGAPPDUPresentSuccessfulOutcome
	unsuccessful := ngapType.NGAPPDUPresentUnsuccessfulOutcome

	d.register(ngapType.ProcedureCodeNGSetup, initiating, ngap_message.ProcNGSetup,
		handler.HandleNGSetupRequest)
	d.register(ngapType.ProcedureCodeInitialUEMessage, initiating, ngap_message.ProcInitialUEMessage,
		handler.HandleInitialUEMessage)
	d.register(ngapType.ProcedureCodeUplinkNASTransport, initiating, ngap_message.ProcUplinkNASTransport,
		handler.HandleUplinkNASTransport)
	d.register(ngapType.ProcedureCodeNASNonDeliveryIndication, initiating, ngap_message.ProcNASNonDeliveryIndication,
		handler.HandleNASNonDeliveryIndication)
	d.register(ngapType.ProcedureCodeInitialContextSetup, successful, ngap_message.ProcInitialContextSetup,
		handler.HandleInitialContextSetupResponse)
	d.register(ngapType.ProcedureCodeInitialContextSetup, unsuccessful, ngap_message.ProcInitialContextSetup,
		handler.HandleInitialContextSetupFailure)
	d.register(ngapType.ProcedureCodeUEContextReleaseRequest, initiating, ngap_message.ProcUEContextReleaseRequest,
		handler.HandleUEContextReleaseRequest)
	d.register(ngapType.ProcedureCodeUEContextRelease, successful, ngap_message.ProcUEContextRelease,
		handler.HandleUEContextReleaseComplete)
	d.register(ngapType.ProcedureCodeNGReset, initiating, ngap_message.ProcNGReset,
		handler.HandleNGReset)
	d.register(ngapType.ProcedureCodeErrorIndication, initiating, ngap_message.ProcErrorIndication,
		handler.HandleErrorIndication)
	return d
}

func (d *Dispatcher) register(procedureCode int64, present int, name string, h HandlerFunc) {
	d.procedures[procedureKey{procedureCode: procedureCode, present: present}] = procedure{name: name, handler: h}
}

// Dispatch decodes msg and runs the matching handler. A decode failure is
// answered with an Error Indication on the non-UE stream.
func (d *Dispatcher) Dispatch(peerId context.PeerId, stream uint16, msg []byte) Result {
	pdu, err := ngap.Decoder(msg)
	if err != nil {
		logger.NgapLog.Errorf("NGAP decode error from peer %d: %+v", peerId, err)
		metrics.IncNgapMessage(ngap_message.ProcUnknown, metrics.Inbound, metrics.ResultDecodeError)
		cause := ngap_message.BuildCause(ngapType.CausePresentProtocol, ngapType.CauseProtocolPresentTransferSyntaxError)
		_ = ngap_message.SendErrorIndication(d.gw.Transport, peerId, context.NonUeStream, nil, nil, cause, nil)
		return DecodeError
	}
	return d.DispatchPDU(peerId, stream, pdu)
}

// DispatchPDU runs the handler of an already decoded PDU. Handler panics are
// recovered so the NGAP task keeps running.
func (d *Dispatcher) DispatchPDU(peerId context.PeerId, stream uint16, pdu *ngapType.NGAPPDU) (result Result) {
	procedureCode, ok := procedureCodeOf(pdu)
	if !ok {
		logger.NgapLog.Errorf("NGAP PDU from peer %d without message, present[%d]", peerId, pdu.Present)
		metrics.IncNgapMessage(ngap_message.ProcUnknown, metrics.Inbound, metrics.ResultDecodeError)
		return DecodeError
	}

	proc, ok := d.procedures[procedureKey{procedureCode: procedureCode, present: pdu.Present}]
	if !ok {
		name := "procedure_" + strconv.FormatInt(procedureCode, 10)
		logger.NgapLog.Debugf("unhandled NGAP message from peer %d, procedure code[%d] present[%d]",
			peerId, procedureCode, pdu.Present)
		metrics.IncNgapMessage(name, metrics.Inbound, metrics.ResultUnhandled)
		return Unhandled
	}

	defer func() {
		if p := recover(); p != nil {
			logger.NgapLog.Errorf("panic in %s handler: %v\n%s", proc.name, p, string(debug.Stack()))
			result = Handled
		}
		metrics.IncNgapMessage(proc.name, metrics.Inbound, result.String())
	}()

	proc.handler(d.gw, peerId, stream, pdu)
	return Handled
}

func procedureCodeOf(pdu *ngapType.NGAPPDU) (int64, bool) {
	switch pdu.Present {
	case ngapType.NGAPPDUPresentInitiatingMessage:
		if pdu.InitiatingMessage != nil {
			return pdu.InitiatingMessage.ProcedureCode.Value, true
		}
	case ngapType.NGAPPDUPresentSuccessfulOutcome:
		if pdu.SuccessfulOutcome != nil {
			return pdu.SuccessfulOutcome.ProcedureCode.Value, true
		}
	case ngapType.NGAPPDUPresentUnsuccessfulOutcome:
		if pdu.UnsuccessfulOutcome != nil {
			return pdu.UnsuccessfulOutcome.ProcedureCode.Value, true
		}
	}
	return 0, false
}
