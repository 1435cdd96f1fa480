// SPDX-FileCopyrightText: 2025 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package context

import (
	"context"
	"time"
)

// Timer is a one-shot timer. The expiry callback runs on the timer's own
// goroutine and is expected to only enqueue an event for the owning task.
type Timer struct {
	cancel context.CancelFunc
}

// NewTimer arms a timer that calls expire after d unless stopped first.
func NewTimer(d time.Duration, expire func()) *Timer {
	ctx, cancel := context.WithCancel(context.Background())
	t := &Timer{cancel: cancel}

	go func() {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			if ctx.Err() == nil {
				expire()
			}
		}
	}()

	return t
}

// Stop cancels the timer. Stopping an expired or stopped timer is harmless.
func (t *Timer) Stop() {
	if t != nil && t.cancel != nil {
		t.cancel()
	}
}
