// Copyright 2026 NoteSpace Labs
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

import "errors"

// Domain validation errors
var (
	// ErrInvalidTopic indicates a Topic failed validation.
	ErrInvalidTopic = errors.New("invalid topic")

	// ErrInvalidSourceDocument indicates a SourceDocument failed validation.
	ErrInvalidSourceDocument = errors.New("invalid source document")

	// ErrInvalidJob indicates a ProcessingJob failed validation.
	ErrInvalidJob = errors.New("invalid processing job")

	// ErrEmptyTopicName indicates the topic Name field is empty.
	ErrEmptyTopicName = errors.New("topic name cannot be empty")

	// ErrEmptyLocator indicates the StorageLocator field is empty.
	ErrEmptyLocator = errors.New("storage locator cannot be empty")

	// ErrEmptyFilename indicates the OriginalFilename field is empty.
	ErrEmptyFilename = errors.New("original filename cannot be empty")

	// ErrInvalidStatus indicates an invalid JobStatus value.
	ErrInvalidStatus = errors.New("invalid job status")

	// ErrInvalidTransition indicates a job status transition that the
	// state machine does not allow.
	ErrInvalidTransition = errors.New("invalid status transition")
)
