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

import "fmt"

// ParseResourceType validates a raw type value at the input boundary.
func ParseResourceType(value string) (ResourceType, error) {
	switch t := ResourceType(value); t {
	case ResourceTypeEssay, ResourceTypeVideo, ResourceTypePodcast:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidResourceType, value)
	}
}

// ParseFounderStage validates a raw stage value at the input boundary.
func ParseFounderStage(value string) (FounderStage, error) {
	switch s := FounderStage(value); s {
	case StagePreIdea, StageIdea, StageBuilding, StageLaunched, StageScaling, StageAll:
		return s, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFounderStage, value)
	}
}

// ValidateResource validates a corpus record according to domain rules.
//
// Validation rules:
//   - Code must not be empty
//   - Title must not be empty
//   - Type must be a known ResourceType
//   - Stages must all be known FounderStage values
//   - Lines must not be negative
//
// NOT validated (owned by the content-loading collaborator):
//   - FilePath (opaque locator, may point anywhere)
//   - Related (dangling codes resolve to nothing at read time)
func ValidateResource(resource *Resource) error {
	if resource == nil {
		return fmt.Errorf("%w: resource is nil", ErrInvalidResource)
	}
	if resource.Code == "" {
		return fmt.Errorf("%w: code is empty", ErrInvalidResource)
	}
	if resource.Title == "" {
		return fmt.Errorf("%w: %q has no title", ErrInvalidResource, resource.Code)
	}
	if _, err := ParseResourceType(string(resource.Type)); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidResource, resource.Code, err)
	}
	for _, stage := range resource.Stages {
		if _, err := ParseFounderStage(string(stage)); err != nil {
			return fmt.Errorf("%w: %q: %w", ErrInvalidResource, resource.Code, err)
		}
	}
	if resource.Lines < 0 {
		return fmt.Errorf("%w: %q has negative line count", ErrInvalidResource, resource.Code)
	}
	return nil
}

// ValidateQuery validates query parameters before any scoring work begins.
// Callers should normalize defaults (e.g. Limit) before validating.
func ValidateQuery(query *SearchQuery) error {
	if query == nil {
		return &InvalidQueryError{Reason: "query is nil"}
	}
	if query.Limit <= 0 {
		return &InvalidQueryError{Reason: "limit must be positive"}
	}
	if query.Offset < 0 {
		return &InvalidQueryError{Reason: "offset must not be negative"}
	}
	switch query.Sort {
	case "", SortByRelevance, SortByLines, SortByTitle:
	default:
		return &InvalidQueryError{Reason: fmt.Sprintf("unknown sort order %q", query.Sort)}
	}
	for _, t := range query.Filters.Types {
		if _, err := ParseResourceType(string(t)); err != nil {
			return &InvalidQueryError{Reason: err.Error()}
		}
	}
	for _, s := range query.Filters.Stages {
		if _, err := ParseFounderStage(string(s)); err != nil {
			return &InvalidQueryError{Reason: err.Error()}
		}
	}
	if query.Filters.MinLines > 0 && query.Filters.MaxLines > 0 &&
		query.Filters.MinLines > query.Filters.MaxLines {
		return &InvalidQueryError{Reason: "minLines exceeds maxLines"}
	}
	return nil
}
