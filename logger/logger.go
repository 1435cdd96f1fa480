// SPDX-FileCopyrightText: 2024 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log         *zap.Logger
	AppLog      *zap.SugaredLogger
	InitLog     *zap.SugaredLogger
	CfgLog      *zap.SugaredLogger
	CtxLog      *zap.SugaredLogger
	FsmLog      *zap.SugaredLogger
	NgapLog     *zap.SugaredLogger
	SctpLog     *zap.SugaredLogger
	TaskLog     *zap.SugaredLogger
	MmLog       *zap.SugaredLogger
	MetricsLog  *zap.SugaredLogger
	UtilLog     *zap.SugaredLogger
	atomicLevel zap.AtomicLevel
)

func init() {
	atomicLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	config := zap.Config{
		Level:            atomicLevel,
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	// console encoder, caller and ISO8601 timestamps, no stack traces
	encCfg := &config.EncoderConfig
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.LevelKey = "level"
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encCfg.CallerKey = "caller"
	encCfg.EncodeCaller = zapcore.ShortCallerEncoder
	encCfg.MessageKey = "message"
	encCfg.StacktraceKey = ""

	var err error
	log, err = config.Build()
	if err != nil {
		panic(err)
	}

	// one sugared logger per category; FSM covers the UE state machine,
	// Task the NGAP task loop and the cross-task queues
	AppLog = log.Sugar().With("component", "N2GW", "category", "App")
	InitLog = log.Sugar().With("component", "N2GW", "category", "Init")
	CfgLog = log.Sugar().With("component", "N2GW", "category", "CFG")
	CtxLog = log.Sugar().With("component", "N2GW", "category", "Context")
	FsmLog = log.Sugar().With("component", "N2GW", "category", "FSM")
	NgapLog = log.Sugar().With("component", "N2GW", "category", "NGAP")
	SctpLog = log.Sugar().With("component", "N2GW", "category", "SCTP")
	TaskLog = log.Sugar().With("component", "N2GW", "category", "Task")
	MmLog = log.Sugar().With("component", "N2GW", "category", "MM")
	MetricsLog = log.Sugar().With("component", "N2GW", "category", "Metrics")
	UtilLog = log.Sugar().With("component", "N2GW", "category", "Util")
}

// GetLogger returns the base zap.Logger
func GetLogger() *zap.Logger {
	return log
}

// SetLogLevel sets the log level (panic|fatal|error|warn|info|debug)
func SetLogLevel(level zapcore.Level) {
	InitLog.Infoln("set log level:", level)
	atomicLevel.SetLevel(level)
}
