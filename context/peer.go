// SPDX-FileCopyrightText: 2024 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package context

import "fmt"

// PeerState is the administrative state of a radio node association.
type PeerState int

const (
	PeerInit PeerState = iota
	PeerReady
	PeerResetting
	PeerShutdown
)

func (s PeerState) String() string {
	switch s {
	case PeerInit:
		return "INIT"
	case PeerReady:
		return "READY"
	case PeerResetting:
		return "RESETING"
	case PeerShutdown:
		return "SHUTDOWN"
	default:
		return fmt.Sprintf("PeerState(%d)", int(s))
	}
}

// validPeerTransition reports whether from -> to is allowed. SHUTDOWN is
// terminal and RESETING -> INIT only happens when the last UE is drained.
func validPeerTransition(from, to PeerState) bool {
	switch from {
	case PeerInit:
		return to == PeerReady || to == PeerShutdown
	case PeerReady:
		return to == PeerReady || to == PeerResetting || to == PeerShutdown
	case PeerResetting:
		return to == PeerInit || to == PeerShutdown
	default:
		return false
	}
}

// GlobalRanNodeId identifies the radio node behind an association.
type GlobalRanNodeId struct {
	PlmnId      PlmnId `yaml:"plmnId"`
	GnbId       uint32 `yaml:"gnbId"`
	GnbIdLength uint8  `yaml:"gnbIdLength"`
}

func (g GlobalRanNodeId) String() string {
	return fmt.Sprintf("%s-%x/%d", g.PlmnId, g.GnbId, g.GnbIdLength)
}

// PeerSetupInfo is what a successful setup request tells us about a peer.
type PeerSetupInfo struct {
	RanNodeName      string
	GlobalRanNodeId  GlobalRanNodeId
	SupportedTaList  []Tai
	DefaultPagingDrx int64
}

// GnbPeer is the per-association context of one radio node. Its fields are
// mutated only through the Registry that owns it.
type GnbPeer struct {
	PeerId     PeerId
	InStreams  uint16
	OutStreams uint16

	state      PeerState
	setup      PeerSetupInfo
	ues        map[CompositeUeKey]struct{}
	nextStream uint16
	resetGuard *Timer
}

func newGnbPeer(peerId PeerId, inStreams, outStreams uint16) *GnbPeer {
	return &GnbPeer{
		PeerId:     peerId,
		InStreams:  inStreams,
		OutStreams: outStreams,
		state:      PeerInit,
		ues:        make(map[CompositeUeKey]struct{}),
		nextStream: 1,
	}
}

func (p *GnbPeer) State() PeerState {
	return p.state
}

func (p *GnbPeer) SetupInfo() PeerSetupInfo {
	return p.setup
}

// NumUes is the associated UE count.
func (p *GnbPeer) NumUes() int {
	return len(p.ues)
}

// UeKeys lists the composite keys of every UE owned by this peer.
func (p *GnbPeer) UeKeys() []CompositeUeKey {
	keys := make([]CompositeUeKey, 0, len(p.ues))
	for key := range p.ues {
		keys = append(keys, key)
	}
	return keys
}

// SupportsTai reports whether the peer advertised tai in its supported TA list.
func (p *GnbPeer) SupportsTai(tai Tai) bool {
	for _, supported := range p.setup.SupportedTaList {
		if supported == tai {
			return true
		}
	}
	return false
}

func (p *GnbPeer) transition(to PeerState) error {
	if !validPeerTransition(p.state, to) {
		return fmt.Errorf("%w: peer %d %s -> %s", ErrInvalidTransition, p.PeerId, p.state, to)
	}
	p.state = to
	return nil
}

// allocateStream hands out the next UE stream round robin. The counter
// wraps back to 1 when it reaches the out-stream count.
func (p *GnbPeer) allocateStream() uint16 {
	if p.OutStreams <= 1 {
		return NonUeStream
	}
	stream := p.nextStream
	p.nextStream++
	if p.nextStream >= p.OutStreams {
		p.nextStream = 1
	}
	return stream
}

func (p *GnbPeer) stopResetGuard() {
	if p.resetGuard != nil {
		p.resetGuard.Stop()
		p.resetGuard = nil
	}
}
