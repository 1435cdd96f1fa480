// SPDX-FileCopyrightText: 2025 Intel Corporation
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"runtime/debug"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"
)

// RecoverWithLog recovers from panic and logs the error and stack trace using the provided logger
func RecoverWithLog(logger *zap.SugaredLogger) {
	if p := recover(); p != nil {
		logger.Errorw("panic recovered", "error", p, "stack", string(debug.Stack()))
	}
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// DumpState writes a readable rendering of v to the log at info level.
func DumpState(logger *zap.SugaredLogger, title string, v any) {
	logger.Infof("%s:\n%s", title, dumpConfig.Sdump(v))
}
