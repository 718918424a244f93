// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	// ErrNotInitialized indicates a query arrived before Initialize completed.
	ErrNotInitialized = errors.New("knowledge base not initialized")

	// ErrNotFound indicates the requested resource code has no matching entry.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidQuery indicates malformed or out-of-range query parameters.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrInvalidResource indicates a corpus record failed validation.
	ErrInvalidResource = errors.New("invalid resource")

	// ErrInvalidResourceType indicates an unknown resource type value.
	ErrInvalidResourceType = errors.New("invalid resource type")

	// ErrInvalidFounderStage indicates an unknown founder stage value.
	ErrInvalidFounderStage = errors.New("invalid founder stage")

	// ErrDuplicateCode indicates two corpus records share a resource code.
	ErrDuplicateCode = errors.New("duplicate resource code")
)

// NotFoundError carries the offending code so callers can render a
// 404-equivalent. It matches ErrNotFound under errors.Is.
type NotFoundError struct {
	Code string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource %q not found", e.Code)
}

// Is makes errors.Is(err, ErrNotFound) succeed.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// InvalidQueryError carries a human-readable reason for rejecting a query.
// It matches ErrInvalidQuery under errors.Is.
type InvalidQueryError struct {
	Reason string
}

func (e *InvalidQueryError) Error() string {
	return "invalid query: " + e.Reason
}

// Is makes errors.Is(err, ErrInvalidQuery) succeed.
func (e *InvalidQueryError) Is(target error) bool {
	return target == ErrInvalidQuery
}
