// Copyright 2026, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"errors"
	"fmt"
)

// CodedError wraps an error with a string code for categorization.
// The code can be extracted from anywhere in an error chain using GetErrorCode.
type CodedError struct {
	Code string
	Err  error
}

func (e CodedError) Error() string {
	return e.Err.Error()
}

func (e CodedError) Unwrap() error {
	return e.Err
}

func MakeCodedError(code string, err error) CodedError {
	return CodedError{Code: code, Err: err}
}

// GetErrorCode extracts the error code from anywhere in the error chain.
// Returns empty string if no CodedError is found.
func GetErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var coded CodedError
	if errors.As(err, &coded) {
		return coded.Code
	}
	return ""
}

// Errorf creates a formatted error wrapped in a CodedError.
func Errorf(code string, format string, args ...any) error {
	return MakeCodedError(code, fmt.Errorf(format, args...))
}
