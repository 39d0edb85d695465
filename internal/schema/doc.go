// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package schema checks raw JSON payloads against declared shapes and decodes
// them into typed values. A payload that does not match is rejected outright;
// there is no partial result and no coercion.
package schema
