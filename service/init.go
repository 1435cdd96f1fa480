// SPDX-FileCopyrightText: 2024 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"

	aperLogger "github.com/omec-project/aper/logger"
	n2gwContext "github.com/omec-project/n2gw/context"
	"github.com/omec-project/n2gw/factory"
	"github.com/omec-project/n2gw/logger"
	"github.com/omec-project/n2gw/metrics"
	"github.com/omec-project/n2gw/mm"
	ngapService "github.com/omec-project/n2gw/ngap/service"
	"github.com/omec-project/n2gw/util"
	ngapLogger "github.com/omec-project/ngap/logger"
	utilLogger "github.com/omec-project/util/logger"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sys/unix"
)

// N2GW main struct
type N2GW struct{}

// Config holds configuration file path
type Config struct {
	cfg string
}

var config Config

var n2gwCli = []cli.Flag{
	&cli.StringFlag{
		Name:     "cfg",
		Usage:    "n2gw config file",
		Required: true,
	},
}

func (*N2GW) GetCliCmd() (flags []cli.Flag) {
	return n2gwCli
}

// Initialize loads config and sets log levels
func (n2gw *N2GW) Initialize(c *cli.Command) error {
	config = Config{cfg: c.String("cfg")}
	absPath, err := filepath.Abs(config.cfg)
	if err != nil {
		logger.CfgLog.Errorln(err)
		return err
	}
	if err := factory.InitConfigFactory(absPath); err != nil {
		return err
	}
	if err := factory.CheckConfigVersion(); err != nil {
		return err
	}
	n2gw.setLogLevel()
	return nil
}

// setLogLevel configures log levels for all modules
func (n2gw *N2GW) setLogLevel() {
	cfgLogger := factory.GetLogger()
	if cfgLogger == nil {
		logger.InitLog.Warnln("N2GW config without log level setting")
		return
	}
	setModuleLogLevel(cfgLogger.N2GW, logger.InitLog, logger.SetLogLevel, "N2GW")
	setModuleLogLevel(cfgLogger.NGAP, ngapLogger.NgapLog, ngapLogger.SetLogLevel, "NGAP")
	setModuleLogLevel(cfgLogger.Aper, aperLogger.AperLog, aperLogger.SetLogLevel, "Aper")
	setModuleLogLevel(cfgLogger.Util, utilLogger.UtilLog, utilLogger.SetLogLevel, "Util (fsm, idgenerator, etc.)")
}

// setModuleLogLevel is a helper to reduce repetition in log level setup
func setModuleLogLevel(moduleCfg *utilLogger.LogSetting, logObj *zap.SugaredLogger, setLevel func(zapcore.Level), moduleName string) {
	if moduleCfg == nil || moduleCfg.DebugLevel == "" {
		logObj.Warnf("%s Log level not set. Default set to [info] level", moduleName)
		setLevel(zap.InfoLevel)
		return
	}
	level, err := zapcore.ParseLevel(moduleCfg.DebugLevel)
	if err != nil {
		logObj.Warnf("%s Log level [%s] is invalid, set to [info] level", moduleName, moduleCfg.DebugLevel)
		setLevel(zap.InfoLevel)
		return
	}
	logObj.Infof("%s Log level is set to [%s] level", moduleName, level)
	setLevel(level)
}

// Start launches all tasks and blocks until a termination signal arrives or
// ctx is cancelled.
func (n2gw *N2GW) Start(ctx context.Context) error {
	logger.InitLog.Infoln("server started")

	cfg := factory.GetConfiguration()
	if !util.ValidateConfiguration(&cfg) {
		return errors.New("invalid N2GW configuration")
	}
	localAddr, err := util.ResolveSctpBindAddress(&cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	gw, err := n2gwContext.NewN2GWContext(ctx, n2gwContext.Options{
		MaxPeers:       cfg.MaxPeers,
		MaxUes:         cfg.MaxUes,
		PktQueueLen:    cfg.QueueLength,
		EvtQueueLen:    cfg.QueueLength,
		MmQueueLen:     cfg.QueueLength,
		CorrelationTTL: cfg.Timers.CorrelationTimeout,
		AmfInfo:        cfg.AmfInfo,
		ReleaseTimeout: factory.UeContextReleaseTimeout,
		PeerResetGuard: factory.PeerResetGuardTimeout,
	})
	if err != nil {
		logger.InitLog.Errorf("initializing context failed: %+v", err)
		return err
	}

	mmTask := mm.NewTask(gw)
	if err := restoreRegistry(gw, mmTask, cfg.SnapshotFile); err != nil {
		logger.InitLog.Warnf("restore snapshot %s: %+v", cfg.SnapshotFile, err)
	}

	if cfg.Metrics.Enable {
		gw.Wg.Add(1)
		go func() {
			defer gw.Wg.Done()
			if err := metrics.Serve(ctx, cfg.Metrics.BindAddr); err != nil {
				logger.MetricsLog.Errorf("metrics server: %+v", err)
			}
		}()
	}

	go gw.Correlator.Start()
	mmTask.Run()
	logger.InitLog.Infoln("MM task running")

	server := ngapService.NewServer(gw, cfg.NumOutStreams, cfg.MaxInStreams)
	if err := server.Run(localAddr); err != nil {
		logger.InitLog.Errorf("start NGAP service failed: %+v", err)
		cancel()
		gw.Correlator.Stop()
		gw.Wg.Wait()
		return err
	}
	logger.InitLog.Infoln("NGAP service running")
	logger.InitLog.Infoln("N2GW running")

	n2gw.waitForSignal(ctx, gw)

	cancel()
	server.Stop()
	gw.Correlator.Stop()
	gw.Wg.Wait()
	if err := saveRegistry(gw, cfg.SnapshotFile); err != nil {
		logger.InitLog.Errorf("save snapshot %s: %+v", cfg.SnapshotFile, err)
	}
	logger.InitLog.Infoln("N2GW stopped")
	return nil
}

func (n2gw *N2GW) waitForSignal(ctx context.Context, gw *n2gwContext.N2GWContext) {
	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, unix.SIGINT, unix.SIGTERM, unix.SIGHUP, unix.SIGUSR1)
	defer signal.Stop(signalChannel)

	for {
		select {
		case sig := <-signalChannel:
			switch sig {
			case unix.SIGHUP:
				if err := factory.ReloadConfig(); err != nil {
					logger.CfgLog.Errorf("reload configuration: %+v", err)
					continue
				}
				n2gw.setLogLevel()
				gw.Correlator.SetTTL(factory.CorrelationTimeout())
			case unix.SIGUSR1:
				util.DumpState(logger.AppLog, "registry stats", gw.Registry.Stats())
				util.DumpState(logger.AppLog, "registry", gw.Registry.Snapshot())
			default:
				logger.InitLog.Infof("received %s, shutting down", sig)
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
