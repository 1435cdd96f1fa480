// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

// Package mm is a minimal mobility task. It allocates core UE ids, answers
// the NGAP task's requests and drives context setup and release.
package mm

import (
	"math"
	"sync"

	"github.com/omec-project/n2gw/context"
	"github.com/omec-project/n2gw/logger"
	"github.com/omec-project/n2gw/util"
	"github.com/omec-project/util/idgenerator"
)

const SecurityKeyLength = 32

type ueRecord struct {
	key  context.CorrelationKey
	imsi context.Imsi
}

// Task consumes the gateway's MM queue.
type Task struct {
	gw      *context.N2GWContext
	coreIds *idgenerator.IDGenerator

	mu          sync.RWMutex
	ues         map[int64]*ueRecord
	subscribers map[uint32]context.Imsi
}

func NewTask(gw *context.N2GWContext) *Task {
	return &Task{
		gw:          gw,
		coreIds:     idgenerator.NewGenerator(1, math.MaxUint32),
		ues:         make(map[int64]*ueRecord),
		subscribers: make(map[uint32]context.Imsi),
	}
}

// AddSubscriber lets a UE presenting tmsi be bound to imsi.
func (t *Task) AddSubscriber(tmsi uint32, imsi context.Imsi) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.subscribers[tmsi] = imsi
}

func (t *Task) subscriber(tmsi *context.FiveGSTmsi) context.Imsi {
	if tmsi == nil {
		return context.ImsiInvalid
	}
	return t.subscribers[tmsi.Tmsi]
}

// Reserve takes over the core ids of restored UEs. It must be called
// before Run.
func (t *Task) Reserve(ues []context.UeRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()
	var last int64
	for _, rec := range ues {
		if rec.CoreUeId == context.CoreUeIdInvalid {
			continue
		}
		t.ues[rec.CoreUeId] = &ueRecord{
			key:  context.CorrelationKey{PeerId: rec.PeerId, RadioUeId: rec.RadioUeId, CoreUeId: rec.CoreUeId},
			imsi: rec.Imsi,
		}
		last = max(last, rec.CoreUeId)
	}
	if last > 0 {
		t.coreIds = idgenerator.NewGenerator(last+1, math.MaxUint32)
	}
}

// Run consumes the MM queue until the gateway context is cancelled.
func (t *Task) Run() {
	t.gw.Wg.Add(1)
	go func() {
		defer util.RecoverWithLog(logger.MmLog)
		defer func() {
			logger.MmLog.Infoln("MM task stopped")
			t.gw.Wg.Done()
		}()

		for {
			select {
			case msg := <-t.gw.MmQueue:
				t.Handle(msg)
			case <-t.gw.Ctx.Done():
				return
			}
		}
	}()
}

// Handle processes one record from the NGAP task.
func (t *Task) Handle(msg context.MmMessage) {
	logger.MmLog.Debugf("received %s, %s", msg.Payload.Type(), msg.Key)

	switch payload := msg.Payload.(type) {
	case *context.InitialUeMessage:
		t.handleInitialUeMessage(msg.Key, payload)
	case *context.UplinkNas:
		logger.MmLog.Debugf("UL NAS of %d bytes from core id[%d]", len(payload.NasPdu), msg.Key.CoreUeId)
	case *context.ContextSetupResult:
		if !payload.Success {
			logger.MmLog.Warnf("context setup failed for core id[%d]: %s", msg.Key.CoreUeId, payload.Cause)
			t.forget(msg.Key.CoreUeId, context.ReleaseCauseContextSetupFailed)
		}
	case *context.ReleaseRequest:
		logger.MmLog.Infof("release requested for core id[%d], cause %s", msg.Key.CoreUeId, payload.Cause)
		t.gw.Post(context.NewUeContextReleaseCommandEvt(msg.Key, payload.Cause))
	case *context.UeReleased:
		t.forget(msg.Key.CoreUeId, payload.Cause)
	case *context.NasNonDelivery:
		logger.MmLog.Warnf("NAS PDU of %d bytes not delivered to core id[%d], cause %s",
			len(payload.NasPdu), msg.Key.CoreUeId, payload.Cause)
	default:
		logger.MmLog.Errorf("unknown MM payload %T", msg.Payload)
	}
}

func (t *Task) handleInitialUeMessage(key context.CorrelationKey, msg *context.InitialUeMessage) {
	t.mu.Lock()
	id, err := t.coreIds.Allocate()
	if err != nil {
		t.mu.Unlock()
		logger.MmLog.Errorf("allocate core id for %s: %+v", key, err)
		t.gw.Post(context.NewUeContextReleaseCommandEvt(key, context.ReleaseCauseImplicit))
		return
	}

	key.CoreUeId = id
	record := &ueRecord{key: key, imsi: t.subscriber(msg.FiveGSTmsi)}
	t.ues[id] = record
	t.mu.Unlock()
	logger.MmLog.Infof("UE peer[%d] radio[%d] assigned core id[%d], IMSI %s",
		key.PeerId, key.RadioUeId, id, record.imsi)

	t.gw.Post(context.NewCoreIdNotificationEvt(key, record.imsi))

	// the binding above is applied first, so the setup request resolves by core id
	setupKey := key
	setupKey.Id = 0
	t.gw.Post(context.NewInitialContextSetupRequestEvt(setupKey, msg.NasPdu, make([]byte, SecurityKeyLength)))
}

func (t *Task) forget(coreUeId int64, cause context.ReleaseCause) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.ues[coreUeId]; !ok {
		return
	}
	delete(t.ues, coreUeId)
	t.coreIds.FreeID(coreUeId)
	logger.MmLog.Infof("core id[%d] released, cause %s", coreUeId, cause)
}

// DownlinkNas sends a NAS PDU to a connected UE.
func (t *Task) DownlinkNas(coreUeId int64, nasPdu []byte) bool {
	t.mu.RLock()
	record, ok := t.ues[coreUeId]
	t.mu.RUnlock()
	if !ok {
		return false
	}
	key := record.key
	key.Id = 0
	t.gw.Post(context.NewDownlinkNasRequestEvt(key, nasPdu))
	return true
}

// Release commands the release of a UE.
func (t *Task) Release(coreUeId int64, cause context.ReleaseCause) bool {
	t.mu.RLock()
	record, ok := t.ues[coreUeId]
	t.mu.RUnlock()
	if !ok {
		return false
	}
	key := record.key
	key.Id = 0
	t.gw.Post(context.NewUeContextReleaseCommandEvt(key, cause))
	return true
}

func (t *Task) Page(tmsi context.FiveGSTmsi, taiList []context.Tai) {
	t.gw.Post(context.NewPagingRequestEvt(tmsi, taiList))
}

func (t *Task) ResetPeer(peerId context.PeerId) {
	t.gw.Post(context.NewPeerResetRequestEvt(peerId))
}

// Known is the number of UEs holding a core id.
func (t *Task) Known() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.ues)
}
