// SPDX-FileCopyrightText: 2024 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/omec-project/n2gw/logger"
	"github.com/omec-project/n2gw/service"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

var N2GW = &service.N2GW{}

var appLog *zap.SugaredLogger

func init() {
	appLog = logger.AppLog
}

func main() {
	app := &cli.Command{
		Name:   "n2gw",
		Usage:  "-cfg n2gw configuration file",
		Action: action,
		Flags:  N2GW.GetCliCmd(),
	}
	appLog.Infoln(app.Name)
	if err := app.Run(context.Background(), os.Args); err != nil {
		appLog.Errorf("N2GW run Error: %v", err)
		os.Exit(1)
	}
}

func action(ctx context.Context, c *cli.Command) error {
	if err := N2GW.Initialize(c); err != nil {
		logger.CfgLog.Errorf("%+v", err)
		return fmt.Errorf("failed to initialize")
	}

	return N2GW.Start(ctx)
}
