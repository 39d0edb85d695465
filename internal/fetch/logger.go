// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package fetch

import (
	"fmt"

	"github.com/apex/log"
)

// leveled routes retryablehttp's own chatter into apex/log. It is all debug
// level; failures worth a warning are logged by checkRetry.
type leveled struct {
	logger log.Interface
}

func (l leveled) Error(msg string, kv ...interface{}) { l.entry(kv).Debug(msg) }
func (l leveled) Info(msg string, kv ...interface{})  { l.entry(kv).Debug(msg) }
func (l leveled) Debug(msg string, kv ...interface{}) { l.entry(kv).Debug(msg) }
func (l leveled) Warn(msg string, kv ...interface{})  { l.entry(kv).Debug(msg) }

func (l leveled) entry(kv []interface{}) *log.Entry {
	fields := log.Fields{}
	for i := 0; i+1 < len(kv); i += 2 {
		fields[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return l.logger.WithFields(fields)
}
