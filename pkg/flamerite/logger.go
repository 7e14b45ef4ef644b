// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The emberctl authors

package flamerite

import "github.com/sirupsen/logrus"

// log is the package logger. Library log lines carry a component field so
// embedders can filter them out of their own output.
var log = logrus.WithField("component", "flamerite")

// SetLogger redirects package logging to the supplied logrus logger.
func SetLogger(l *logrus.Logger) {
	log = l.WithField("component", "flamerite")
}
