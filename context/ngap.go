// SPDX-FileCopyrightText: 2025 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package context

// NgapServer holds the inbound queues drained by the NGAP task. Packets and
// events are consumed by a single goroutine.
type NgapServer struct {
	RcvNgapPktCh chan NgapReceivePacket
	RcvEventCh   chan NgapEvt
}

func NewNgapServer(pktChLen, evtChLen int) *NgapServer {
	return &NgapServer{
		RcvNgapPktCh: make(chan NgapReceivePacket, pktChLen),
		RcvEventCh:   make(chan NgapEvt, evtChLen),
	}
}

// NgapReceivePacket is one NGAP PDU as delivered by the transport.
type NgapReceivePacket struct {
	PeerId PeerId
	Stream uint16
	Buf    []byte
}

// NgapEventType enumerates NGAP task events
type NgapEventType int64

const (
	AssociationUp NgapEventType = iota
	AssociationDown
	ReleaseTimerExpiry
	PeerResetGuardExpiry
	CoreIdNotification
	DownlinkNasRequest
	InitialContextSetupRequest
	UeContextReleaseCommand
	PagingRequest
	PeerResetRequest
)

func (t NgapEventType) String() string {
	switch t {
	case AssociationUp:
		return "AssociationUp"
	case AssociationDown:
		return "AssociationDown"
	case ReleaseTimerExpiry:
		return "ReleaseTimerExpiry"
	case PeerResetGuardExpiry:
		return "PeerResetGuardExpiry"
	case CoreIdNotification:
		return "CoreIdNotification"
	case DownlinkNasRequest:
		return "DownlinkNasRequest"
	case InitialContextSetupRequest:
		return "InitialContextSetupRequest"
	case UeContextReleaseCommand:
		return "UeContextReleaseCommand"
	case PagingRequest:
		return "PagingRequest"
	case PeerResetRequest:
		return "PeerResetRequest"
	default:
		return "Unknown"
	}
}

// EvtError represents NGAP event errors
type EvtError string

func (e EvtError) Error() string { return string(e) }

// NgapEvt is the interface for all NGAP events
type NgapEvt interface {
	Type() NgapEventType
}

// AssociationDownReason tells a shutdown apart from an association restart.
type AssociationDownReason int

const (
	AssociationShutdown AssociationDownReason = iota
	AssociationRestart
)

func (r AssociationDownReason) String() string {
	if r == AssociationRestart {
		return "restart"
	}
	return "shutdown"
}

// AssociationUpEvt event
type AssociationUpEvt struct {
	PeerId     PeerId
	InStreams  uint16
	OutStreams uint16
}

func (e *AssociationUpEvt) Type() NgapEventType { return AssociationUp }

func NewAssociationUpEvt(peerId PeerId, inStreams, outStreams uint16) *AssociationUpEvt {
	return &AssociationUpEvt{PeerId: peerId, InStreams: inStreams, OutStreams: outStreams}
}

// AssociationDownEvt event
type AssociationDownEvt struct {
	PeerId PeerId
	Reason AssociationDownReason
}

func (e *AssociationDownEvt) Type() NgapEventType { return AssociationDown }

func NewAssociationDownEvt(peerId PeerId, reason AssociationDownReason) *AssociationDownEvt {
	return &AssociationDownEvt{PeerId: peerId, Reason: reason}
}

// ReleaseTimerExpiryEvt event
type ReleaseTimerExpiryEvt struct {
	Key CompositeUeKey
	Seq uint64
}

func (e *ReleaseTimerExpiryEvt) Type() NgapEventType { return ReleaseTimerExpiry }

func NewReleaseTimerExpiryEvt(key CompositeUeKey, seq uint64) *ReleaseTimerExpiryEvt {
	return &ReleaseTimerExpiryEvt{Key: key, Seq: seq}
}

// PeerResetGuardExpiryEvt event
type PeerResetGuardExpiryEvt struct {
	PeerId PeerId
}

func (e *PeerResetGuardExpiryEvt) Type() NgapEventType { return PeerResetGuardExpiry }

func NewPeerResetGuardExpiryEvt(peerId PeerId) *PeerResetGuardExpiryEvt {
	return &PeerResetGuardExpiryEvt{PeerId: peerId}
}

// CoreIdNotificationEvt answers an initial UE message forward with the
// core-assigned id and, when known, the subscriber identity.
type CoreIdNotificationEvt struct {
	Key  CorrelationKey
	Imsi Imsi
}

func (e *CoreIdNotificationEvt) Type() NgapEventType { return CoreIdNotification }

func NewCoreIdNotificationEvt(key CorrelationKey, imsi Imsi) *CoreIdNotificationEvt {
	return &CoreIdNotificationEvt{Key: key, Imsi: imsi}
}

// DownlinkNasRequestEvt event
type DownlinkNasRequestEvt struct {
	Key    CorrelationKey
	NasPdu []byte
}

func (e *DownlinkNasRequestEvt) Type() NgapEventType { return DownlinkNasRequest }

func NewDownlinkNasRequestEvt(key CorrelationKey, nasPdu []byte) *DownlinkNasRequestEvt {
	return &DownlinkNasRequestEvt{Key: key, NasPdu: nasPdu}
}

// InitialContextSetupRequestEvt asks for context establishment towards the
// radio node. NasPdu may be empty.
type InitialContextSetupRequestEvt struct {
	Key         CorrelationKey
	NasPdu      []byte
	SecurityKey []byte
}

func (e *InitialContextSetupRequestEvt) Type() NgapEventType { return InitialContextSetupRequest }

func NewInitialContextSetupRequestEvt(key CorrelationKey, nasPdu, securityKey []byte) *InitialContextSetupRequestEvt {
	return &InitialContextSetupRequestEvt{Key: key, NasPdu: nasPdu, SecurityKey: securityKey}
}

// ReleaseCause is the reason the mobility task gives for a release.
type ReleaseCause int

const (
	ReleaseCauseNormal ReleaseCause = iota
	ReleaseCauseUserInactivity
	ReleaseCauseRadioConnectionLost
	ReleaseCauseUnknownCoreUeId
	ReleaseCauseContextSetupFailed
	// causes below are handled locally, no command is sent to the peer
	ReleaseCauseImplicit
	ReleaseCauseAssociationReset
	ReleaseCauseInvalidPeer
)

func (c ReleaseCause) String() string {
	switch c {
	case ReleaseCauseNormal:
		return "normal"
	case ReleaseCauseUserInactivity:
		return "user-inactivity"
	case ReleaseCauseRadioConnectionLost:
		return "radio-connection-lost"
	case ReleaseCauseUnknownCoreUeId:
		return "unknown-core-ue-id"
	case ReleaseCauseContextSetupFailed:
		return "context-setup-failed"
	case ReleaseCauseImplicit:
		return "implicit"
	case ReleaseCauseAssociationReset:
		return "association-reset"
	case ReleaseCauseInvalidPeer:
		return "invalid-peer"
	default:
		return "unknown"
	}
}

// Local reports whether the release is done without telling the peer.
func (c ReleaseCause) Local() bool {
	return c == ReleaseCauseImplicit || c == ReleaseCauseAssociationReset || c == ReleaseCauseInvalidPeer
}

// UeContextReleaseCommandEvt event
type UeContextReleaseCommandEvt struct {
	Key   CorrelationKey
	Cause ReleaseCause
}

func (e *UeContextReleaseCommandEvt) Type() NgapEventType { return UeContextReleaseCommand }

func NewUeContextReleaseCommandEvt(key CorrelationKey, cause ReleaseCause) *UeContextReleaseCommandEvt {
	return &UeContextReleaseCommandEvt{Key: key, Cause: cause}
}

// PagingRequestEvt fans a paging message out to every ready peer serving
// one of the listed tracking areas.
type PagingRequestEvt struct {
	FiveGSTmsi FiveGSTmsi
	TaiList    []Tai
}

func (e *PagingRequestEvt) Type() NgapEventType { return PagingRequest }

func NewPagingRequestEvt(tmsi FiveGSTmsi, taiList []Tai) *PagingRequestEvt {
	return &PagingRequestEvt{FiveGSTmsi: tmsi, TaiList: taiList}
}

// PeerResetRequestEvt is an administrative reset of one peer.
type PeerResetRequestEvt struct {
	PeerId PeerId
}

func (e *PeerResetRequestEvt) Type() NgapEventType { return PeerResetRequest }

func NewPeerResetRequestEvt(peerId PeerId) *PeerResetRequestEvt {
	return &PeerResetRequestEvt{PeerId: peerId}
}
