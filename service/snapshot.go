// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	n2gwContext "github.com/omec-project/n2gw/context"
	"github.com/omec-project/n2gw/logger"
	"github.com/omec-project/n2gw/mm"
	"gopkg.in/yaml.v2"
)

func loadSnapshot(path string) (*n2gwContext.RegistryState, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	state := &n2gwContext.RegistryState{}
	if err := yaml.Unmarshal(content, state); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return state, nil
}

func writeSnapshot(path string, state *n2gwContext.RegistryState) error {
	content, err := yaml.Marshal(state)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, content, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// restoreRegistry loads the snapshot file, if any. The core ids it holds are
// reserved in MM so the allocator continues above them. The SCTP associations
// of the previous run are gone, so every restored peer is then removed as on
// association shutdown.
func restoreRegistry(gw *n2gwContext.N2GWContext, mmTask *mm.Task, path string) error {
	if path == "" {
		return nil
	}
	state, err := loadSnapshot(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.InitLog.Infof("no snapshot at %s", path)
		return nil
	}
	if err != nil {
		return err
	}

	if err := gw.Registry.Restore(state); err != nil {
		return err
	}
	mmTask.Reserve(gw.Registry.Snapshot().Ues)
	peers, ues := releaseRestoredPeers(gw, mmTask)
	logger.InitLog.Infof("restored snapshot %s, released %d stale peer(s) and %d UE(s)", path, peers, ues)
	return nil
}

// releaseRestoredPeers runs before any task, so MM is told synchronously.
func releaseRestoredPeers(gw *n2gwContext.N2GWContext, mmTask *mm.Task) (peers, ues int) {
	for _, peer := range gw.Registry.Peers() {
		removed, err := gw.Registry.RemovePeer(peer.PeerId)
		if err != nil {
			logger.InitLog.Warnf("remove restored peer %d: %+v", peer.PeerId, err)
			continue
		}
		peers++
		for _, ue := range removed {
			ues++
			mmTask.Handle(n2gwContext.MmMessage{
				Key: n2gwContext.CorrelationKey{
					PeerId:    ue.PeerId,
					RadioUeId: ue.RadioUeId,
					CoreUeId:  ue.CoreUeId(),
				},
				Payload: &n2gwContext.UeReleased{Cause: n2gwContext.ReleaseCauseAssociationReset},
			})
		}
	}
	return peers, ues
}

func saveRegistry(gw *n2gwContext.N2GWContext, path string) error {
	if path == "" {
		return nil
	}
	state := gw.Registry.Snapshot()
	if err := writeSnapshot(path, state); err != nil {
		return err
	}
	logger.InitLog.Infof("saved %d peer(s) and %d UE(s) to %s", len(state.Peers), len(state.Ues), path)
	return nil
}
