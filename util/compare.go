// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"reflect"
)

// ValEqual is the shallow equality used for state values and hook dependencies.
// Values of one comparable type use ==.  Numbers of different kinds compare by
// value (props decoded from json arrive as float64).  Maps and slices compare by
// identity, and non-nil funcs never match.
func ValEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	valA := reflect.ValueOf(a)
	valB := reflect.ValueOf(b)
	if valA.Type() == valB.Type() && valA.Type().Comparable() {
		return a == b
	}
	if numA, ok := numericValue(valA); ok {
		numB, ok := numericValue(valB)
		return ok && numA == numB
	}
	if valA.Type() != valB.Type() {
		return false
	}
	switch valA.Kind() {
	case reflect.Slice:
		return valA.Pointer() == valB.Pointer() && valA.Len() == valB.Len()
	case reflect.Map:
		return valA.Pointer() == valB.Pointer()
	case reflect.Func:
		return valA.IsNil() && valB.IsNil()
	}
	return false
}

func numericValue(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	}
	return 0, false
}

// DepsEqual reports whether two dependency lists have the same length and
// pairwise ValEqual entries.
func DepsEqual(deps1 []any, deps2 []any) bool {
	if len(deps1) != len(deps2) {
		return false
	}
	for i := range deps1 {
		if !ValEqual(deps1[i], deps2[i]) {
			return false
		}
	}
	return true
}
