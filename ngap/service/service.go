// SPDX-FileCopyrightText: 2024 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"math/bits"
	"sync"

	"github.com/ishidawataru/sctp"
	"github.com/omec-project/n2gw/context"
	"github.com/omec-project/n2gw/logger"
	"github.com/omec-project/n2gw/metrics"
	"github.com/omec-project/n2gw/ngap"
	"github.com/omec-project/n2gw/ngap/handler"
	"github.com/omec-project/n2gw/util"
	libNgap "github.com/omec-project/ngap"
	"github.com/omec-project/util/idgenerator"
)

const MAX_BUF_MSG_LEN = 65535

// SCTP notification layout (struct sctp_assoc_change)
const (
	sctpAssocChange        = 0x8001
	sctpAssocChangeMinLen  = 10
	sctpStateCommLost      = 1
	sctpStateRestart       = 2
	sctpStateShutdownComp  = 3
	sctpStateCantStrAssoc  = 4
	sctpNotificationOffset = 8
)

var ErrUnknownPeer = errors.New("no association for peer")

// Server accepts gNB associations and is the gateway's Transport.
type Server struct {
	gw       *context.N2GWContext
	initMsg  sctp.InitMsg
	listener *sctp.SCTPListener
	peerIds  *idgenerator.IDGenerator

	mu    sync.RWMutex
	conns map[context.PeerId]*sctp.SCTPConn
}

// NewServer makes the server the transport of gw. Peer ids start above
// those of restored peers.
func NewServer(gw *context.N2GWContext, outStreams, inStreams uint16) *Server {
	var first int64 = 1
	for _, peer := range gw.Registry.Peers() {
		if id := int64(peer.PeerId); id >= first {
			first = id + 1
		}
	}
	s := &Server{
		gw:      gw,
		initMsg: sctp.InitMsg{NumOstreams: outStreams, MaxInstreams: inStreams},
		peerIds: idgenerator.NewGenerator(first, math.MaxUint32),
		conns:   make(map[context.PeerId]*sctp.SCTPConn),
	}
	gw.Transport = s
	return s
}

// Run starts the NGAP task and the SCTP listener.
func (s *Server) Run(localAddr *sctp.SCTPAddr) error {
	listener, err := sctp.ListenSCTPExt("sctp", localAddr, s.initMsg)
	if err != nil {
		return fmt.Errorf("listen SCTP on %s: %w", localAddr, err)
	}
	s.listener = listener
	logger.SctpLog.Infof("listening NGAP on %s, streams out[%d] in[%d]",
		localAddr, s.initMsg.NumOstreams, s.initMsg.MaxInstreams)

	s.gw.Wg.Add(2)
	go RunNgapTask(s.gw, ngap.NewDispatcher(s.gw))
	go s.acceptLoop()
	return nil
}

// RunNgapTask is the single goroutine that owns the registry. It returns
// when the gateway context is cancelled.
func RunNgapTask(gw *context.N2GWContext, dispatcher *ngap.Dispatcher) {
	defer util.RecoverWithLog(logger.NgapLog)

	defer func() {
		logger.NgapLog.Infoln("NGAP server stopped")
		gw.Wg.Done()
	}()

	ngapServer := gw.NgapServer
	for {
		select {
		case rcvPkt := <-ngapServer.RcvNgapPktCh:
			result := dispatcher.Dispatch(rcvPkt.PeerId, rcvPkt.Stream, rcvPkt.Buf)
			logger.NgapLog.Debugf("peer %d stream %d: %s", rcvPkt.PeerId, rcvPkt.Stream, result)
		case rcvEvt := <-ngapServer.RcvEventCh:
			handleEvent(gw, rcvEvt)
		case <-gw.Ctx.Done():
			return
		}
		metrics.SetRegistryStats(gw.Registry.Stats(), gw.Correlator.Pending())
	}
}

func handleEvent(gw *context.N2GWContext, evt context.NgapEvt) {
	defer util.RecoverWithLog(logger.NgapLog)
	handler.HandleEvent(gw, evt)
}

func (s *Server) acceptLoop() {
	defer util.RecoverWithLog(logger.SctpLog)
	defer func() {
		logger.SctpLog.Infoln("SCTP listener stopped")
		s.gw.Wg.Done()
	}()

	for {
		conn, err := s.listener.AcceptSCTP()
		if err != nil {
			if s.gw.Ctx.Err() != nil {
				return
			}
			logger.SctpLog.Errorf("accept SCTP association: %+v", err)
			continue
		}

		peerId, err := s.addConn(conn)
		if err != nil {
			handleConnError(conn, "register association", err)
			continue
		}
		if err := conn.SubscribeEvents(sctp.SCTP_EVENT_DATA_IO | sctp.SCTP_EVENT_ASSOCIATION); err != nil {
			s.removeConn(peerId)
			s.peerIds.FreeID(int64(peerId))
			handleConnError(conn, "SubscribeEvents()", err)
			continue
		}
		logger.SctpLog.Infof("association from %s accepted as peer %d", remoteAddr(conn), peerId)

		s.gw.Post(context.NewAssociationUpEvt(peerId, s.initMsg.MaxInstreams, s.initMsg.NumOstreams))
		s.gw.Wg.Add(1)
		go s.readLoop(peerId, conn)
	}
}

func (s *Server) readLoop(peerId context.PeerId, conn *sctp.SCTPConn) {
	defer util.RecoverWithLog(logger.SctpLog)
	defer func() {
		logger.SctpLog.Debugf("receiver of peer %d stopped", peerId)
		s.gw.Wg.Done()
	}()

	data := make([]byte, MAX_BUF_MSG_LEN)
	for {
		n, info, err := conn.SCTPRead(data)
		if err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				logger.SctpLog.Warnf("peer %d closed the association", peerId)
			} else if s.gw.Ctx.Err() == nil {
				logger.SctpLog.Errorf("read from peer %d failed: %+v", peerId, err)
			}
			s.closePeer(peerId, conn)
			return
		}

		if info == nil || bits.ReverseBytes32(info.PPID) != libNgap.PPID {
			state, ok := parseAssocChange(data[:n])
			if !ok {
				logger.SctpLog.Warnf("received SCTP PPID != %d from peer %d", libNgap.PPID, peerId)
				continue
			}
			switch state {
			case sctpStateRestart:
				logger.SctpLog.Warnf("association of peer %d restarted", peerId)
				s.gw.Post(context.NewAssociationDownEvt(peerId, context.AssociationRestart))
			case sctpStateCommLost, sctpStateShutdownComp, sctpStateCantStrAssoc:
				logger.SctpLog.Warnf("association of peer %d is down, state[%d]", peerId, state)
				s.closePeer(peerId, conn)
				return
			}
			continue
		}
		logger.SctpLog.Debugf("read %d bytes from peer %d stream %d", n, peerId, info.Stream)

		forwardData := make([]byte, n)
		copy(forwardData, data[:n])

		select {
		case s.gw.NgapServer.RcvNgapPktCh <- context.NgapReceivePacket{
			PeerId: peerId,
			Stream: info.Stream,
			Buf:    forwardData,
		}:
		case <-s.gw.Ctx.Done():
			return
		}
	}
}

// parseAssocChange returns sac_state of an association change notification.
func parseAssocChange(buf []byte) (uint16, bool) {
	if len(buf) < sctpAssocChangeMinLen {
		return 0, false
	}
	if binary.NativeEndian.Uint16(buf[0:2]) != sctpAssocChange {
		return 0, false
	}
	return binary.NativeEndian.Uint16(buf[sctpNotificationOffset : sctpNotificationOffset+2]), true
}

func (s *Server) closePeer(peerId context.PeerId, conn *sctp.SCTPConn) {
	if !s.removeConn(peerId) {
		return
	}
	if err := conn.Close(); err != nil {
		logger.SctpLog.Debugf("close association of peer %d: %+v", peerId, err)
	}
	s.gw.Post(context.NewAssociationDownEvt(peerId, context.AssociationShutdown))
	s.peerIds.FreeID(int64(peerId))
}

func (s *Server) addConn(conn *sctp.SCTPConn) (context.PeerId, error) {
	id, err := s.peerIds.Allocate()
	if err != nil {
		return 0, err
	}
	peerId := context.PeerId(id)
	s.mu.Lock()
	s.conns[peerId] = conn
	s.mu.Unlock()
	return peerId, nil
}

func (s *Server) removeConn(peerId context.PeerId) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.conns[peerId]; !ok {
		return false
	}
	delete(s.conns, peerId)
	return true
}

// SendOnAssociation writes one NGAP PDU on the given stream.
func (s *Server) SendOnAssociation(peerId context.PeerId, stream uint16, pkt []byte) error {
	s.mu.RLock()
	conn, ok := s.conns[peerId]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w %d", ErrUnknownPeer, peerId)
	}

	info := &sctp.SndRcvInfo{
		Stream: stream,
		PPID:   bits.ReverseBytes32(libNgap.PPID),
	}
	n, err := conn.SCTPWrite(pkt, info)
	if err != nil {
		return err
	}
	if n != len(pkt) {
		return fmt.Errorf("short write to peer %d: %d of %d bytes", peerId, n, len(pkt))
	}
	return nil
}

// Stop closes the listener and every association.
func (s *Server) Stop() {
	logger.SctpLog.Infoln("close NGAP server")

	if s.listener != nil {
		if err := s.listener.Close(); err != nil {
			logger.SctpLog.Errorf("close SCTP listener: %+v", err)
		}
	}

	s.mu.Lock()
	conns := s.conns
	s.conns = make(map[context.PeerId]*sctp.SCTPConn)
	s.mu.Unlock()
	for peerId, conn := range conns {
		if err := conn.Close(); err != nil {
			logger.SctpLog.Errorf("close association of peer %d: %+v", peerId, err)
		}
	}
}

// handleConnError closes the connection after a setup failure
func handleConnError(conn *sctp.SCTPConn, logMsg string, err error) {
	logger.SctpLog.Errorf(logMsg+": %+v", err)
	if conn != nil {
		if errConn := conn.Close(); errConn != nil {
			logger.SctpLog.Errorf("conn close error: %+v", errConn)
		}
	}
}

func remoteAddr(conn *sctp.SCTPConn) string {
	if addr := conn.RemoteAddr(); addr != nil {
		return addr.String()
	}
	return "unknown"
}
