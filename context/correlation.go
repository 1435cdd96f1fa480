// SPDX-FileCopyrightText: 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package context

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/omec-project/n2gw/logger"
)

const ErrMmQueueFull = EvtError("mobility task queue full")

// CorrelationKey travels with every record exchanged with the mobility
// task. Id is zero for unsolicited records.
type CorrelationKey struct {
	Id        uint64
	PeerId    PeerId
	RadioUeId int64
	CoreUeId  int64
}

func (k CorrelationKey) String() string {
	return fmt.Sprintf("corr[%d] peer[%d] radio[%d] core[%d]", k.Id, k.PeerId, k.RadioUeId, k.CoreUeId)
}

// MmMessageType enumerates records sent to the mobility task
type MmMessageType int64

const (
	InitialUeMessageInd MmMessageType = iota
	UplinkNasInd
	ContextSetupResultInd
	ReleaseRequestInd
	UeReleasedInd
	NasNonDeliveryInd
)

func (t MmMessageType) String() string {
	switch t {
	case InitialUeMessageInd:
		return "InitialUeMessage"
	case UplinkNasInd:
		return "UplinkNas"
	case ContextSetupResultInd:
		return "ContextSetupResult"
	case ReleaseRequestInd:
		return "ReleaseRequest"
	case UeReleasedInd:
		return "UeReleased"
	case NasNonDeliveryInd:
		return "NasNonDelivery"
	default:
		return "Unknown"
	}
}

// MmPayload is the closed set of record bodies sent to the mobility task.
type MmPayload interface {
	Type() MmMessageType
	isMmPayload()
}

// MmMessage is one record on the mobility task queue.
type MmMessage struct {
	Key     CorrelationKey
	Payload MmPayload
}

type InitialUeMessage struct {
	NasPdu                []byte
	Tai                   *Tai
	RrcEstablishmentCause int64
	FiveGSTmsi            *FiveGSTmsi
}

func (*InitialUeMessage) Type() MmMessageType { return InitialUeMessageInd }
func (*InitialUeMessage) isMmPayload()        {}

type UplinkNas struct {
	NasPdu []byte
	Tai    *Tai
}

func (*UplinkNas) Type() MmMessageType { return UplinkNasInd }
func (*UplinkNas) isMmPayload()        {}

type ContextSetupResult struct {
	Success bool
	Cause   string
}

func (*ContextSetupResult) Type() MmMessageType { return ContextSetupResultInd }
func (*ContextSetupResult) isMmPayload()        {}

type ReleaseRequest struct {
	Cause ReleaseCause
}

func (*ReleaseRequest) Type() MmMessageType { return ReleaseRequestInd }
func (*ReleaseRequest) isMmPayload()        {}

type UeReleased struct {
	Cause ReleaseCause
}

func (*UeReleased) Type() MmMessageType { return UeReleasedInd }
func (*UeReleased) isMmPayload()        {}

// NasNonDelivery returns a downlink NAS PDU the radio node could not deliver.
// Cause is the NGAP cause as "group/value".
type NasNonDelivery struct {
	NasPdu []byte
	Cause  string
}

func (*NasNonDelivery) Type() MmMessageType { return NasNonDeliveryInd }
func (*NasNonDelivery) isMmPayload()        {}

type pendingRequest struct {
	key     CompositeUeKey
	seq     uint64
	msgType MmMessageType
}

// Correlator bridges the NGAP task and the mobility task. Outbound requests
// get a correlation id that the response has to carry back; requests not
// answered within the TTL are forgotten.
type Correlator struct {
	registry *Registry
	out      chan<- MmMessage
	pending  *ttlcache.Cache[uint64, pendingRequest]
	ttl      atomic.Int64
	nextId   uint64
}

func NewCorrelator(registry *Registry, out chan<- MmMessage, ttl time.Duration) *Correlator {
	pending := ttlcache.New[uint64, pendingRequest](
		ttlcache.WithTTL[uint64, pendingRequest](ttl),
		ttlcache.WithDisableTouchOnHit[uint64, pendingRequest](),
	)
	pending.OnEviction(func(ctx context.Context, reason ttlcache.EvictionReason,
		item *ttlcache.Item[uint64, pendingRequest],
	) {
		if reason == ttlcache.EvictionReasonExpired {
			logger.TaskLog.Debugf("%s request corr[%d] for UE %s expired",
				item.Value().msgType, item.Key(), item.Value().key)
		}
	})
	c := &Correlator{
		registry: registry,
		out:      out,
		pending:  pending,
	}
	c.ttl.Store(int64(ttl))
	return c
}

// SetTTL changes the lifetime of requests sent from now on. Pending requests
// keep the TTL they were sent with.
func (c *Correlator) SetTTL(ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.ttl.Store(int64(ttl))
}

// Start runs the expiry loop until Stop is called.
func (c *Correlator) Start() {
	c.pending.Start()
}

func (c *Correlator) Stop() {
	c.pending.Stop()
}

// Pending is the number of requests still waiting for a response.
func (c *Correlator) Pending() int {
	return c.pending.Len()
}

// SendRequest enqueues payload for the UE behind key and remembers it until
// the response arrives. It never blocks; the UE state is left untouched.
func (c *Correlator) SendRequest(key CompositeUeKey, payload MmPayload) (uint64, error) {
	ue, ok := c.registry.LookupByKey(key)
	if !ok {
		return 0, ErrNotFound
	}
	c.nextId++
	id := c.nextId
	msg := MmMessage{Key: keyOf(ue, id), Payload: payload}
	if err := c.enqueue(msg); err != nil {
		return 0, err
	}
	c.pending.Set(id, pendingRequest{key: ue.Key, seq: ue.seq, msgType: payload.Type()}, time.Duration(c.ttl.Load()))
	return id, nil
}

// Notify enqueues a record that expects no response.
func (c *Correlator) Notify(ue *UeContext, payload MmPayload) error {
	return c.enqueue(MmMessage{Key: keyOf(ue, 0), Payload: payload})
}

func (c *Correlator) enqueue(msg MmMessage) error {
	select {
	case c.out <- msg:
		logger.TaskLog.Debugf("send %s to MM task, %s", msg.Payload.Type(), msg.Key)
		return nil
	default:
		logger.TaskLog.Warnf("drop %s to MM task, %s: queue full", msg.Payload.Type(), msg.Key)
		return ErrMmQueueFull
	}
}

// Resolve maps the key of a mobility task response back to a live UE. A
// response to a request whose UE is gone, or whose key now names a newer UE,
// resolves to ErrNotFound.
func (c *Correlator) Resolve(key CorrelationKey) (*UeContext, error) {
	if key.Id == 0 {
		return c.registry.Resolve(key.PeerId, key.CoreUeId, key.RadioUeId)
	}

	item := c.pending.Get(key.Id)
	if item == nil {
		return nil, ErrNotFound
	}
	c.pending.Delete(key.Id)
	req := item.Value()

	ue, ok := c.registry.LookupByKey(req.key)
	if !ok || ue.seq != req.seq {
		return nil, ErrNotFound
	}
	if key.RadioUeId != RadioUeIdInvalid && key.RadioUeId != ue.RadioUeId {
		return ue, fmt.Errorf("%w: response radio id %d, UE %s", ErrIdMismatch, key.RadioUeId, ue.Key)
	}
	if key.PeerId != ue.PeerId {
		return ue, fmt.Errorf("%w: response peer %d, UE %s", ErrIdMismatch, key.PeerId, ue.Key)
	}
	return ue, nil
}

func keyOf(ue *UeContext, id uint64) CorrelationKey {
	return CorrelationKey{
		Id:        id,
		PeerId:    ue.PeerId,
		RadioUeId: ue.RadioUeId,
		CoreUeId:  ue.coreUeId,
	}
}
