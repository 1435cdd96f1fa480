// SPDX-FileCopyrightText: 2024 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package context

import (
	"context"
	"sync"
	"time"

	"github.com/omec-project/n2gw/logger"
)

// Transport sends an encoded PDU on one stream of an association.
type Transport interface {
	SendOnAssociation(peerId PeerId, stream uint16, pkt []byte) error
}

// Options sizes a gateway context.
type Options struct {
	MaxPeers       int
	MaxUes         int
	PktQueueLen    int
	EvtQueueLen    int
	MmQueueLen     int
	CorrelationTTL time.Duration
	AmfInfo        AmfNfInfo
	ReleaseTimeout func() time.Duration
	PeerResetGuard func() time.Duration
	Transport      Transport
}

// N2GWContext owns everything the NGAP task mutates. It is built once and
// handed to the task loop; there is no process-wide instance.
type N2GWContext struct {
	Registry     *Registry
	StateMachine *ContextStateMachine
	Correlator   *Correlator
	Transport    Transport
	NgapServer   *NgapServer
	MmQueue      chan MmMessage
	AmfInfo      AmfNfInfo

	PeerResetGuard func() time.Duration

	Ctx context.Context
	Wg  sync.WaitGroup
}

func NewN2GWContext(ctx context.Context, opts Options) (*N2GWContext, error) {
	n := &N2GWContext{
		Registry:       NewRegistry(opts.MaxPeers, opts.MaxUes),
		Transport:      opts.Transport,
		NgapServer:     NewNgapServer(opts.PktQueueLen, opts.EvtQueueLen),
		MmQueue:        make(chan MmMessage, opts.MmQueueLen),
		PeerResetGuard: opts.PeerResetGuard,
		AmfInfo:        opts.AmfInfo,
		Ctx:            ctx,
	}
	if n.PeerResetGuard == nil {
		n.PeerResetGuard = func() time.Duration { return 0 }
	}
	releaseTimeout := opts.ReleaseTimeout
	if releaseTimeout == nil {
		releaseTimeout = func() time.Duration { return time.Second }
	}

	sm, err := NewContextStateMachine(n.Registry, releaseTimeout, n.Post)
	if err != nil {
		return nil, err
	}
	n.StateMachine = sm
	n.Correlator = NewCorrelator(n.Registry, n.MmQueue, opts.CorrelationTTL)
	return n, nil
}

// Post enqueues an event for the NGAP task. It is used by timers and the
// mobility task and blocks only while the queue is full.
func (n *N2GWContext) Post(evt NgapEvt) {
	select {
	case n.NgapServer.RcvEventCh <- evt:
	case <-n.Ctx.Done():
		logger.TaskLog.Debugf("drop %s event: shutting down", evt.Type())
	}
}
