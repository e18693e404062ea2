// Copyright (C) 2025 Dyne.org foundation
// designed, written and maintained by Denis Roio <jaromil@dyne.org>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package fserr defines the error vocabulary shared by every filesystem
// operation and surfaced to the protocol layer.
package fserr

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Code identifies a class of error for programmatic handling.
type Code string

const (
	CodeInvalidParams  Code = "invalid_params"
	CodeAccessDenied   Code = "access_denied"
	CodeNotFound       Code = "not_found"
	CodeNotAFile       Code = "not_a_file"
	CodeNotADirectory  Code = "not_a_directory"
	CodeTooLarge       Code = "too_large"
	CodeBinaryFile     Code = "binary_file"
	CodeNoMatch        Code = "no_match"
	CodeAmbiguousMatch Code = "ambiguous_match"
	CodeNotEmpty       Code = "not_empty"
	CodeBadPattern     Code = "bad_pattern"
	CodeInternal       Code = "internal"
)

// Error wraps an underlying error with a code and message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message == "" {
		if e.Err != nil {
			return e.Err.Error()
		}
		return string(e.Code)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new coded error with a message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a new coded error with a formatted message.
func Newf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a new coded error that wraps an underlying error.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf extracts the code from an error chain, or CodeInternal when the
// error carries no code.
func CodeOf(err error) Code {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return CodeInternal
}

// AccessDenied reports a path outside the allowed directories.
func AccessDenied(path string) *Error {
	return Newf(CodeAccessDenied, "access denied: %s", path)
}

// NotFound reports a path that does not exist.
func NotFound(path string) *Error {
	return Newf(CodeNotFound, "not found: %s", path)
}

// IO wraps an unexpected I/O failure, distinguishing OS-level permission
// denials from sandbox denials so the two are never conflated.
func IO(err error, path string) *Error {
	if errors.Is(err, fs.ErrPermission) || os.IsPermission(err) {
		return Wrap(CodeInternal, fmt.Sprintf("permission denied by operating system: %s", path), err)
	}
	return Wrap(CodeInternal, fmt.Sprintf("i/o error on %s", path), err)
}
