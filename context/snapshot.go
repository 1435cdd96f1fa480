// SPDX-FileCopyrightText: 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package context

import (
	"fmt"
	"time"

	"github.com/mohae/deepcopy"
	"github.com/omec-project/n2gw/logger"
	"github.com/omec-project/util/fsm"
)

// RegistryState is the serializable form of a Registry.
type RegistryState struct {
	Peers []PeerRecord `yaml:"peers"`
	Ues   []UeRecord   `yaml:"ues"`
}

type PeerRecord struct {
	PeerId           PeerId          `yaml:"peerId"`
	State            PeerState       `yaml:"state"`
	InStreams        uint16          `yaml:"inStreams"`
	OutStreams       uint16          `yaml:"outStreams"`
	NextStream       uint16          `yaml:"nextStream"`
	RanNodeName      string          `yaml:"ranNodeName,omitempty"`
	GlobalRanNodeId  GlobalRanNodeId `yaml:"globalRanNodeId"`
	SupportedTaList  []Tai           `yaml:"supportedTaList,omitempty"`
	DefaultPagingDrx int64           `yaml:"defaultPagingDrx"`
}

type UeRecord struct {
	PeerId     PeerId        `yaml:"peerId"`
	RadioUeId  int64         `yaml:"radioUeId"`
	CoreUeId   int64         `yaml:"coreUeId"`
	Imsi       Imsi          `yaml:"imsi"`
	StreamRecv uint16        `yaml:"streamRecv"`
	StreamSend uint16        `yaml:"streamSend"`
	State      fsm.StateType `yaml:"state"`
	CreatedAt  time.Time     `yaml:"createdAt"`
}

// Snapshot copies the registry contents under the read lock. The result
// shares no memory with the registry.
func (r *Registry) Snapshot() *RegistryState {
	r.mu.RLock()
	state := &RegistryState{
		Peers: make([]PeerRecord, 0, len(r.peers)),
		Ues:   make([]UeRecord, 0, len(r.ues)),
	}
	for _, peer := range r.peers {
		state.Peers = append(state.Peers, PeerRecord{
			PeerId:           peer.PeerId,
			State:            peer.state,
			InStreams:        peer.InStreams,
			OutStreams:       peer.OutStreams,
			NextStream:       peer.nextStream,
			RanNodeName:      peer.setup.RanNodeName,
			GlobalRanNodeId:  peer.setup.GlobalRanNodeId,
			SupportedTaList:  peer.setup.SupportedTaList,
			DefaultPagingDrx: peer.setup.DefaultPagingDrx,
		})
	}
	for _, ue := range r.ues {
		state.Ues = append(state.Ues, UeRecord{
			PeerId:     ue.PeerId,
			RadioUeId:  ue.RadioUeId,
			CoreUeId:   ue.coreUeId,
			Imsi:       ue.imsi,
			StreamRecv: ue.StreamRecv,
			StreamSend: ue.StreamSend,
			State:      ue.State.Current(),
			CreatedAt:  ue.CreatedAt,
		})
	}
	copied := deepcopy.Copy(state).(*RegistryState)
	r.mu.RUnlock()
	return copied
}

// Restore loads state into an empty registry. Peers in SHUTDOWN and UEs in
// Released are skipped.
func (r *Registry) Restore(state *RegistryState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.peers) != 0 || len(r.ues) != 0 {
		return ErrRegistryNotEmpty
	}

	for _, rec := range state.Peers {
		if rec.State == PeerShutdown {
			continue
		}
		if _, dup := r.peers[rec.PeerId]; dup {
			r.resetLocked()
			return fmt.Errorf("%w: peer %d", ErrAlreadyExists, rec.PeerId)
		}
		peer := newGnbPeer(rec.PeerId, rec.InStreams, rec.OutStreams)
		peer.state = rec.State
		if rec.NextStream > 0 {
			peer.nextStream = rec.NextStream
		}
		peer.setup = PeerSetupInfo{
			RanNodeName:      rec.RanNodeName,
			GlobalRanNodeId:  rec.GlobalRanNodeId,
			SupportedTaList:  append([]Tai(nil), rec.SupportedTaList...),
			DefaultPagingDrx: rec.DefaultPagingDrx,
		}
		r.peers[rec.PeerId] = peer
	}

	for _, rec := range state.Ues {
		peer, ok := r.peers[rec.PeerId]
		if !ok {
			logger.CtxLog.Warnf("drop restored UE %d:%d of unknown peer", rec.PeerId, rec.RadioUeId)
			continue
		}
		if rec.State == Released {
			continue
		}
		key := NewCompositeUeKey(rec.PeerId, rec.RadioUeId)
		if _, dup := r.ues[key]; dup {
			r.resetLocked()
			return fmt.Errorf("%w: key %s", ErrDuplicateUe, key)
		}
		r.seq++
		ue := newUeContext(r.seq, rec.PeerId, rec.RadioUeId, rec.StreamRecv, rec.StreamSend)
		ue.State.Set(rec.State)
		ue.CreatedAt = rec.CreatedAt
		if rec.CoreUeId != CoreUeIdInvalid {
			if _, dup := r.coreIdx[rec.CoreUeId]; dup {
				r.resetLocked()
				return fmt.Errorf("%w: core id %d", ErrConflict, rec.CoreUeId)
			}
			ue.coreUeId = rec.CoreUeId
			r.coreIdx[rec.CoreUeId] = key
			if rec.Imsi.Valid() {
				ue.imsi = rec.Imsi
				r.imsiIdx[rec.Imsi] = rec.CoreUeId
			}
		}
		r.ues[key] = ue
		peer.ues[key] = struct{}{}
	}

	for _, peer := range r.peers {
		if peer.state == PeerResetting && len(peer.ues) == 0 {
			r.demotePeerLocked(peer)
		}
	}
	logger.CtxLog.Infof("restored %d peer(s) and %d UE(s)", len(r.peers), len(r.ues))
	return nil
}

func (r *Registry) resetLocked() {
	r.peers = make(map[PeerId]*GnbPeer)
	r.ues = make(map[CompositeUeKey]*UeContext)
	r.coreIdx = make(map[int64]CompositeUeKey)
	r.imsiIdx = make(map[Imsi]int64)
}
