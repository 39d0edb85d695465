// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/apex/log"
)

// ErrValidation is matched by every *ValidationError via errors.Is.
var ErrValidation = errors.New("response failed validation")

// ValidationError reports a payload that did not match the schema for Label.
// Paths lists every offending field.
type ValidationError struct {
	Label string
	Paths []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("response failed validation as %s: %s", e.Label, strings.Join(e.Paths, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Decode checks payload against s and, if it matches, unmarshals it into a T.
// The offending paths are logged before a *ValidationError is returned. A nil
// logger falls back to the apex default.
func Decode[T any](payload []byte, s Schema, label string, logger log.Interface) (T, error) {
	var zero T
	if logger == nil {
		logger = log.Log
	}

	if paths := Check(payload, s); len(paths) > 0 {
		return zero, reject(logger, label, paths)
	}

	var out T
	if err := json.Unmarshal(payload, &out); err != nil {
		// The shape matched but T is narrower than the schema, e.g. a fractional
		// number headed for an int field.
		path := RootPath
		var ute *json.UnmarshalTypeError
		if errors.As(err, &ute) && ute.Field != "" {
			path = ute.Field
		}
		return zero, reject(logger, label, []string{path})
	}

	return out, nil
}

func reject(logger log.Interface, label string, paths []string) error {
	logger.WithFields(log.Fields{
		"type":  label,
		"paths": paths,
	}).Error("response failed validation")
	return &ValidationError{Label: label, Paths: paths}
}
