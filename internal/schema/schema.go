// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"strconv"

	"github.com/tidwall/gjson"
)

// Kind is the JSON type a schema node requires.
type Kind int

const (
	String Kind = iota
	Number
	Bool
	Array
	Object
	// Integer is a Number written without fraction or exponent that fits in
	// an int64, the only form encoding/json will place in a Go int.
	Integer
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Number:
		return "number"
	case Bool:
		return "boolean"
	case Array:
		return "array"
	case Object:
		return "object"
	case Integer:
		return "integer"
	default:
		return "unknown"
	}
}

// Schema describes the shape of a JSON value. Fields is only consulted for
// Object and Elem only for Array.
type Schema struct {
	Kind   Kind
	Fields []Field
	Elem   *Schema
}

// Field is a required member of an Object schema.
type Field struct {
	Name string
	Schema
}

func Str() Schema     { return Schema{Kind: String} }
func Num() Schema     { return Schema{Kind: Number} }
func Int() Schema     { return Schema{Kind: Integer} }
func Boolean() Schema { return Schema{Kind: Bool} }

// ArrayOf requires every element to match elem.
func ArrayOf(elem Schema) Schema {
	return Schema{Kind: Array, Elem: &elem}
}

// Obj requires each of fields to be present. Members not named are ignored.
func Obj(fields ...Field) Schema {
	return Schema{Kind: Object, Fields: fields}
}

// F pairs a member name with its schema.
func F(name string, s Schema) Field {
	return Field{Name: name, Schema: s}
}

// RootPath is reported when the payload as a whole is unusable.
const RootPath = "."

// Check returns the dotted path of every mismatch between payload and s, in
// document order of the schema. An empty result means payload matches.
func Check(payload []byte, s Schema) []string {
	if !gjson.ValidBytes(payload) {
		return []string{RootPath}
	}
	var paths []string
	check(gjson.ParseBytes(payload), s, "", &paths)
	return paths
}

func check(r gjson.Result, s Schema, path string, paths *[]string) {
	if !matches(r, s.Kind) {
		*paths = append(*paths, display(path))
		return
	}

	switch s.Kind {
	case Object:
		for _, f := range s.Fields {
			// Get would treat dots and wildcards in the name as path syntax.
			member := r.Get(gjson.Escape(f.Name))
			check(member, f.Schema, join(path, f.Name), paths)
		}
	case Array:
		if s.Elem == nil {
			return
		}
		for i, elem := range r.Array() {
			check(elem, *s.Elem, join(path, strconv.Itoa(i)), paths)
		}
	}
}

func matches(r gjson.Result, k Kind) bool {
	if !r.Exists() {
		return false
	}
	switch k {
	case String:
		return r.Type == gjson.String
	case Number:
		return r.Type == gjson.Number
	case Bool:
		return r.Type == gjson.True || r.Type == gjson.False
	case Array:
		return r.IsArray()
	case Object:
		return r.IsObject()
	case Integer:
		if r.Type != gjson.Number {
			return false
		}
		_, err := strconv.ParseInt(r.Raw, 10, 64)
		return err == nil
	}
	return false
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func display(path string) string {
	if path == "" {
		return RootPath
	}
	return path
}
