// Copyright 2018 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethereum. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/lmittmann/tint"
)

// setupLogging installs the root logger. Verbosity uses the legacy
// go-ethereum levels (0 silent .. 5 detail).
func setupLogging(format string, verbosity int) error {
	level := log.FromLegacyLevel(verbosity)

	var handler slog.Handler
	switch format {
	case "", "terminal":
		handler = log.NewTerminalHandlerWithLevel(os.Stderr, level, false)
	case "json":
		handler = log.JSONHandlerWithLevel(os.Stderr, level)
	case "tint":
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	default:
		return fmt.Errorf("unknown log format %q", format)
	}
	log.SetDefault(log.NewLogger(handler))
	return nil
}
