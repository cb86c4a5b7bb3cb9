// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"fmt"
	"log"
	"reflect"
	"runtime/debug"
	"strings"
)

// PanicHandler handles panic recovery and logging.
// It can be called directly with recover() without checking for nil first.
// Example usage:
//
//	defer func() {
//	    util.PanicHandler("operation name", recover())
//	}()
func PanicHandler(debugStr string, recoverVal any) error {
	if recoverVal == nil {
		return nil
	}
	log.Printf("[panic] in %s: %v\n", debugStr, recoverVal)
	debug.PrintStack()
	if err, ok := recoverVal.(error); ok {
		return fmt.Errorf("panic in %s: %w", debugStr, err)
	}
	return fmt.Errorf("panic in %s: %v", debugStr, recoverVal)
}

// StructToMap converts a props struct into a props map keyed by json field name.
// Values are copied as-is (no deep conversion), so pointers, maps and funcs keep their identity.
func StructToMap(in any) (map[string]any, error) {
	val := reflect.ValueOf(in)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil, nil
		}
		val = val.Elem()
	}
	if val.Kind() == reflect.Map {
		if m, ok := val.Interface().(map[string]any); ok {
			return m, nil
		}
		return nil, fmt.Errorf("map input must be map[string]any, got %v", val.Type())
	}
	if val.Kind() != reflect.Struct {
		return nil, fmt.Errorf("input must be a struct or pointer to struct, got %v", val.Kind())
	}
	typ := val.Type()
	out := make(map[string]any)
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name, omitEmpty := getJSONName(field)
		if name == "" {
			continue
		}
		fieldVal := val.Field(i)
		if omitEmpty && fieldVal.IsZero() {
			continue
		}
		out[name] = fieldVal.Interface()
	}
	return out, nil
}

// MapToStruct is the reverse of StructToMap.  Missing keys leave the field at its zero value.
func MapToStruct(in map[string]any, out any) error {
	outValue := reflect.ValueOf(out)
	if outValue.Kind() != reflect.Ptr {
		return fmt.Errorf("out parameter must be a pointer, got %v", outValue.Kind())
	}
	elem := outValue.Elem()
	if elem.Kind() != reflect.Struct {
		return fmt.Errorf("out parameter must be a pointer to struct, got pointer to %v", elem.Kind())
	}
	typ := elem.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name, _ := getJSONName(field)
		if name == "" {
			continue
		}
		if value, ok := in[name]; ok {
			if err := setValue(elem.Field(i), value); err != nil {
				return fmt.Errorf("error setting field %s: %w", name, err)
			}
		}
	}
	return nil
}

// returns "" for json:"-"
func getJSONName(field reflect.StructField) (string, bool) {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return "", false
	}
	if tag == "" {
		return field.Name, false
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = field.Name
	}
	return name, strings.Contains(opts, "omitempty")
}

func setValue(field reflect.Value, value any) error {
	if value == nil {
		return nil
	}
	valueRef := reflect.ValueOf(value)
	if valueRef.Type().AssignableTo(field.Type()) {
		field.Set(valueRef)
		return nil
	}
	if valueRef.Type().ConvertibleTo(field.Type()) {
		field.Set(valueRef.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot set value of type %v to field of type %v", valueRef.Type(), field.Type())
}
