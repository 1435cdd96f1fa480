// SPDX-FileCopyrightText: 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	n2gwContext "github.com/omec-project/n2gw/context"
	"github.com/omec-project/n2gw/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// message directions
const (
	Inbound  = "in"
	Outbound = "out"
)

// message results
const (
	ResultHandled     = "handled"
	ResultUnhandled   = "unhandled"
	ResultDecodeError = "decode_error"
	ResultSent        = "sent"
	ResultSendError   = "send_error"
)

var (
	Registry = prometheus.NewRegistry()

	ngapMessages = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "n2gw_ngap_messages_total",
		Help: "NGAP messages by procedure, direction and result",
	}, []string{"procedure", "direction", "result"})

	peers = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "n2gw_peers",
		Help: "Radio node associations by state",
	}, []string{"state"})

	ueContexts = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "n2gw_ue_contexts",
		Help: "Live UE contexts",
	})

	boundUeContexts = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "n2gw_ue_contexts_bound",
		Help: "UE contexts with a core UE id",
	})

	pendingCorrelations = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "n2gw_pending_correlations",
		Help: "Requests to the mobility task waiting for a response",
	})
)

func init() {
	Registry.MustRegister(
		ngapMessages,
		peers,
		ueContexts,
		boundUeContexts,
		pendingCorrelations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

func IncNgapMessage(procedure, direction, result string) {
	ngapMessages.WithLabelValues(procedure, direction, result).Inc()
}

// SetRegistryStats publishes a registry count. Every peer state is set so
// that drained states drop back to zero.
func SetRegistryStats(stats n2gwContext.Stats, pending int) {
	for _, state := range []n2gwContext.PeerState{
		n2gwContext.PeerInit, n2gwContext.PeerReady,
		n2gwContext.PeerResetting, n2gwContext.PeerShutdown,
	} {
		peers.WithLabelValues(state.String()).Set(float64(stats.PeersByState[state]))
	}
	ueContexts.Set(float64(stats.Ues))
	boundUeContexts.Set(float64(stats.BoundUes))
	pendingCorrelations.Set(float64(pending))
}

// Serve exposes /metrics on bindAddr until ctx is done.
func Serve(ctx context.Context, bindAddr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry}))
	server := &http.Server{
		Addr:              bindAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.MetricsLog.Warnf("metrics server shutdown: %+v", err)
		}
	}()

	logger.MetricsLog.Infof("serving metrics on %s", bindAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
