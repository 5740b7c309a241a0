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

import "fmt"

// ValidateTopic validates a Topic according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//
// NOT validated:
//   - ID (0 is valid from database sequences)
func ValidateTopic(topic *Topic) error {
	if topic == nil {
		return fmt.Errorf("%w: topic is nil", ErrInvalidTopic)
	}

	if topic.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTopic, ErrEmptyTopicName)
	}

	return nil
}

// ValidateSourceDocument validates a SourceDocument according to domain rules.
//
// Validation rules:
//   - TopicId must be set
//   - StorageLocator must not be empty
//   - OriginalFilename must not be empty
func ValidateSourceDocument(doc *SourceDocument) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidSourceDocument)
	}

	if doc.TopicId == 0 {
		return fmt.Errorf("%w: topic id is required", ErrInvalidSourceDocument)
	}

	if doc.StorageLocator == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSourceDocument, ErrEmptyLocator)
	}

	if doc.OriginalFilename == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSourceDocument, ErrEmptyFilename)
	}

	return nil
}

// ValidateJob validates a ProcessingJob according to domain rules.
//
// Validation rules:
//   - TopicId must be set
//   - Status must be a known value
//   - SynthesizedContent is non-empty iff Status is completed
//   - ErrorMessage is non-empty iff Status is failed
func ValidateJob(job *ProcessingJob) error {
	if job == nil {
		return fmt.Errorf("%w: job is nil", ErrInvalidJob)
	}

	if job.TopicId == 0 {
		return fmt.Errorf("%w: topic id is required", ErrInvalidJob)
	}

	if err := ValidateStatus(job.Status); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJob, err)
	}

	if (job.Status == JobStatusCompleted) != (job.SynthesizedContent != "") {
		return fmt.Errorf("%w: synthesized content must be set exactly when status is completed", ErrInvalidJob)
	}

	if (job.Status == JobStatusFailed) != (job.ErrorMessage != "") {
		return fmt.Errorf("%w: error message must be set exactly when status is failed", ErrInvalidJob)
	}

	return nil
}

// ValidateStatus validates that a JobStatus has a valid value.
func ValidateStatus(status JobStatus) error {
	switch status {
	case JobStatusPending, JobStatusProcessing, JobStatusCompleted, JobStatusFailed:
		return nil
	default:
		return fmt.Errorf("%w: value %d", ErrInvalidStatus, status)
	}
}

// ValidateTransition checks a status move against the job state machine:
// pending -> processing -> {completed, failed}. Terminal states never
// transition again. Same-state writes are allowed so that a job can be
// updated in place while processing.
func ValidateTransition(from, to JobStatus) error {
	if err := ValidateStatus(from); err != nil {
		return err
	}
	if err := ValidateStatus(to); err != nil {
		return err
	}

	if from == to {
		if from.Terminal() {
			return fmt.Errorf("%w: %s is terminal", ErrInvalidTransition, from)
		}
		return nil
	}

	switch from {
	case JobStatusPending:
		if to == JobStatusProcessing {
			return nil
		}
	case JobStatusProcessing:
		if to == JobStatusCompleted || to == JobStatusFailed {
			return nil
		}
	}

	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
