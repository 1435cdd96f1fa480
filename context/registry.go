// SPDX-FileCopyrightText: 2024 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package context

import (
	"fmt"
	"sync"

	"github.com/omec-project/n2gw/logger"
)

// Registry holds every peer and UE context together with the secondary
// indices that map core ids and IMSIs back to composite keys.
//
// Only the task running the NGAP dispatcher mutates a Registry. The lock
// is there so that other goroutines can take consistent snapshots.
type Registry struct {
	mu sync.RWMutex

	maxPeers int
	maxUes   int

	peers   map[PeerId]*GnbPeer
	ues     map[CompositeUeKey]*UeContext
	coreIdx map[int64]CompositeUeKey
	imsiIdx map[Imsi]int64

	seq uint64
}

// NewRegistry returns an empty registry. A limit <= 0 means unlimited.
func NewRegistry(maxPeers, maxUes int) *Registry {
	return &Registry{
		maxPeers: maxPeers,
		maxUes:   maxUes,
		peers:    make(map[PeerId]*GnbPeer),
		ues:      make(map[CompositeUeKey]*UeContext),
		coreIdx:  make(map[int64]CompositeUeKey),
		imsiIdx:  make(map[Imsi]int64),
	}
}

// RegisterPeer starts tracking a new association. A slot left behind by a
// SHUTDOWN peer is reused.
func (r *Registry) RegisterPeer(peerId PeerId, inStreams, outStreams uint16) (*GnbPeer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if peer, ok := r.peers[peerId]; ok {
		if peer.state != PeerShutdown {
			return nil, fmt.Errorf("%w: peer %d in state %s", ErrAlreadyExists, peerId, peer.state)
		}
		logger.CtxLog.Infof("reuse slot of shutdown peer %d", peerId)
		r.discardPeerLocked(peer)
	}
	if r.maxPeers > 0 && len(r.peers) >= r.maxPeers {
		return nil, ErrPeerLimit
	}

	peer := newGnbPeer(peerId, inStreams, outStreams)
	r.peers[peerId] = peer
	logger.CtxLog.Infof("register peer %d, streams in[%d] out[%d]", peerId, inStreams, outStreams)
	return peer, nil
}

func (r *Registry) LookupPeer(peerId PeerId) (*GnbPeer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	peer, ok := r.peers[peerId]
	return peer, ok
}

// Peers returns every tracked peer.
func (r *Registry) Peers() []*GnbPeer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	peers := make([]*GnbPeer, 0, len(r.peers))
	for _, peer := range r.peers {
		peers = append(peers, peer)
	}
	return peers
}

// SetPeerReady records the setup information and moves the peer to READY.
func (r *Registry) SetPeerReady(peerId PeerId, info PeerSetupInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	peer, ok := r.peers[peerId]
	if !ok {
		return ErrUnknownPeer
	}
	if err := peer.transition(PeerReady); err != nil {
		return err
	}
	peer.setup = info
	return nil
}

// ResetPeer moves a READY peer to RESETING and returns the keys of the UEs
// that still need to be released. A peer without UEs goes back to INIT
// right away.
func (r *Registry) ResetPeer(peerId PeerId) ([]CompositeUeKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	peer, ok := r.peers[peerId]
	if !ok {
		return nil, ErrUnknownPeer
	}
	if peer.state != PeerReady {
		return nil, fmt.Errorf("%w: reset of peer %d in state %s", ErrInvalidTransition, peerId, peer.state)
	}
	peer.state = PeerResetting
	if len(peer.ues) == 0 {
		r.demotePeerLocked(peer)
		return nil, nil
	}
	return peer.UeKeys(), nil
}

// ArmPeerResetGuard attaches a guard timer to a RESETING peer. The timer is
// stopped when the peer leaves RESETING.
func (r *Registry) ArmPeerResetGuard(peerId PeerId, timer *Timer) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	peer, ok := r.peers[peerId]
	if !ok || peer.state != PeerResetting {
		timer.Stop()
		return false
	}
	peer.stopResetGuard()
	peer.resetGuard = timer
	return true
}

// RemovePeer tears down an association. Every UE it owns is removed first,
// then the peer itself is discarded. The removed UEs are returned.
func (r *Registry) RemovePeer(peerId PeerId) ([]*UeContext, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	peer, ok := r.peers[peerId]
	if !ok {
		return nil, ErrUnknownPeer
	}
	peer.state = PeerShutdown
	removed := make([]*UeContext, 0, len(peer.ues))
	for key := range peer.ues {
		if ue, ok := r.ues[key]; ok {
			r.removeUeLocked(ue)
			removed = append(removed, ue)
		}
	}
	r.discardPeerLocked(peer)
	logger.CtxLog.Infof("peer %d removed with %d UE(s)", peerId, len(removed))
	return removed, nil
}

// RegisterUe creates the context of a UE seen for the first time on peerId.
// The send stream is allocated from the peer round robin.
func (r *Registry) RegisterUe(peerId PeerId, radioUeId int64, streamRecv uint16) (*UeContext, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	peer, ok := r.peers[peerId]
	if !ok || peer.state == PeerShutdown {
		return nil, ErrUnknownPeer
	}
	key := NewCompositeUeKey(peerId, radioUeId)
	if _, exists := r.ues[key]; exists {
		return nil, fmt.Errorf("%w: key %s", ErrDuplicateUe, key)
	}
	if r.maxUes > 0 && len(r.ues) >= r.maxUes {
		return nil, ErrUeLimit
	}

	r.seq++
	ue := newUeContext(r.seq, peerId, radioUeId, streamRecv, peer.allocateStream())
	r.ues[key] = ue
	peer.ues[key] = struct{}{}
	logger.CtxLog.Debugf("register UE %s, stream recv[%d] send[%d]", key, ue.StreamRecv, ue.StreamSend)
	return ue, nil
}

// BindCoreId attaches the core-assigned id to a UE waiting for context
// setup. Binding the same id twice is a no-op.
func (r *Registry) BindCoreId(key CompositeUeKey, coreUeId int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ue, ok := r.ues[key]
	if !ok {
		return ErrNotFound
	}
	if coreUeId == CoreUeIdInvalid {
		return fmt.Errorf("%w: cannot bind invalid core id", ErrConflict)
	}
	if ue.coreUeId == coreUeId {
		return nil
	}
	if ue.coreUeId != CoreUeIdInvalid {
		return fmt.Errorf("%w: UE %s already bound to %d", ErrConflict, key, ue.coreUeId)
	}
	if other, taken := r.coreIdx[coreUeId]; taken {
		return fmt.Errorf("%w: core id %d owned by UE %s", ErrConflict, coreUeId, other)
	}
	if !ue.State.Is(WaitingContextSetup) {
		return fmt.Errorf("%w: bind in state %s", ErrInvalidState, ue.State.Current())
	}
	ue.coreUeId = coreUeId
	r.coreIdx[coreUeId] = key
	return nil
}

// BindImsi records the subscriber identity of a UE that has a core id.
func (r *Registry) BindImsi(coreUeId int64, imsi Imsi) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key, ok := r.coreIdx[coreUeId]
	if !ok {
		return ErrNotFound
	}
	ue := r.ues[key]
	if !imsi.Valid() {
		return fmt.Errorf("%w: invalid IMSI", ErrConflict)
	}
	if other, taken := r.imsiIdx[imsi]; taken && other != coreUeId {
		return fmt.Errorf("%w: IMSI %s owned by core id %d", ErrConflict, imsi, other)
	}
	if ue.imsi.Valid() && ue.imsi != imsi {
		return fmt.Errorf("%w: UE %s already has IMSI %s", ErrConflict, key, ue.imsi)
	}
	ue.imsi = imsi
	r.imsiIdx[imsi] = coreUeId
	return nil
}

func (r *Registry) LookupByCore(coreUeId int64) (*UeContext, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	key, ok := r.coreIdx[coreUeId]
	if !ok {
		return nil, false
	}
	ue, ok := r.ues[key]
	return ue, ok
}

func (r *Registry) LookupByComposite(peerId PeerId, radioUeId int64) (*UeContext, bool) {
	return r.LookupByKey(NewCompositeUeKey(peerId, radioUeId))
}

func (r *Registry) LookupByKey(key CompositeUeKey) (*UeContext, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ue, ok := r.ues[key]
	return ue, ok
}

func (r *Registry) LookupByImsi(imsi Imsi) (*UeContext, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	coreUeId, ok := r.imsiIdx[imsi]
	if !ok {
		return nil, false
	}
	key, ok := r.coreIdx[coreUeId]
	if !ok {
		return nil, false
	}
	ue, ok := r.ues[key]
	return ue, ok
}

// Resolve finds the UE a message refers to. The core id is tried first; the
// composite key is used only when the message carries no valid core id.
// When the message carries both ids they must name the same UE, and the UE
// must belong to peerId.
func (r *Registry) Resolve(peerId PeerId, coreUeId, radioUeId int64) (*UeContext, error) {
	if coreUeId != CoreUeIdInvalid {
		ue, ok := r.LookupByCore(coreUeId)
		if !ok {
			return nil, ErrNotFound
		}
		if radioUeId != RadioUeIdInvalid && ue.RadioUeId != radioUeId {
			return ue, fmt.Errorf("%w: core id %d has radio id %d, message carries %d",
				ErrIdMismatch, coreUeId, ue.RadioUeId, radioUeId)
		}
		if ue.PeerId != peerId {
			return ue, fmt.Errorf("%w: core id %d owned by peer %d, message from peer %d",
				ErrIdMismatch, coreUeId, ue.PeerId, peerId)
		}
		return ue, nil
	}
	if radioUeId == RadioUeIdInvalid {
		return nil, ErrNotFound
	}
	ue, ok := r.LookupByComposite(peerId, radioUeId)
	if !ok {
		return nil, ErrNotFound
	}
	if ue.RadioUeId != radioUeId {
		return ue, fmt.Errorf("%w: key %s holds radio id %d", ErrIdMismatch, ue.Key, ue.RadioUeId)
	}
	return ue, nil
}

// RemoveUe removes the UE bound to coreUeId from every index.
func (r *Registry) RemoveUe(coreUeId int64) (*UeContext, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key, ok := r.coreIdx[coreUeId]
	if !ok {
		return nil, ErrNotFound
	}
	ue := r.ues[key]
	r.removeUeLocked(ue)
	return ue, nil
}

// RemoveUeByKey removes a UE that may not have a core id yet.
func (r *Registry) RemoveUeByKey(key CompositeUeKey) (*UeContext, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ue, ok := r.ues[key]
	if !ok {
		return nil, ErrNotFound
	}
	r.removeUeLocked(ue)
	return ue, nil
}

// removeUe removes ue only if it is still the live incarnation of its key.
func (r *Registry) removeUe(ue *UeContext) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.ues[ue.Key]
	if !ok || current != ue {
		return false
	}
	r.removeUeLocked(ue)
	return true
}

func (r *Registry) removeUeLocked(ue *UeContext) {
	ue.stopReleaseTimer()
	delete(r.ues, ue.Key)
	if ue.coreUeId != CoreUeIdInvalid {
		if key, ok := r.coreIdx[ue.coreUeId]; ok && key == ue.Key {
			delete(r.coreIdx, ue.coreUeId)
		}
	}
	if ue.imsi.Valid() {
		if coreUeId, ok := r.imsiIdx[ue.imsi]; ok && coreUeId == ue.coreUeId {
			delete(r.imsiIdx, ue.imsi)
		}
	}
	if !ue.State.Is(Released) {
		ue.State.Set(Released)
	}

	peer, ok := r.peers[ue.PeerId]
	if !ok {
		return
	}
	delete(peer.ues, ue.Key)
	logger.CtxLog.Debugf("remove UE %s core id[%d], peer %d has %d UE(s)",
		ue.Key, ue.coreUeId, peer.PeerId, len(peer.ues))
	if len(peer.ues) == 0 && peer.state == PeerResetting {
		r.demotePeerLocked(peer)
	}
}

func (r *Registry) demotePeerLocked(peer *GnbPeer) {
	peer.stopResetGuard()
	peer.state = PeerInit
	peer.nextStream = 1
	logger.CtxLog.Infof("peer %d drained, back to %s", peer.PeerId, peer.state)
}

func (r *Registry) discardPeerLocked(peer *GnbPeer) {
	peer.stopResetGuard()
	delete(r.peers, peer.PeerId)
}

// Stats is a point-in-time count of the registry contents.
type Stats struct {
	Peers        int
	PeersByState map[PeerState]int
	Ues          int
	BoundUes     int
	ImsiEntries  int
}

func (r *Registry) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := Stats{
		Peers:        len(r.peers),
		PeersByState: make(map[PeerState]int),
		Ues:          len(r.ues),
		BoundUes:     len(r.coreIdx),
		ImsiEntries:  len(r.imsiIdx),
	}
	for _, peer := range r.peers {
		stats.PeersByState[peer.state]++
	}
	return stats
}
