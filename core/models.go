package core

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// JobStatus tracks the lifecycle of a processing job.
type JobStatus int

const (
	// JobStatusPending is the initial state of a newly created job.
	JobStatusPending JobStatus = iota + 1
	// JobStatusProcessing marks a job whose pipeline run is in flight.
	JobStatusProcessing
	// JobStatusCompleted marks a job that produced a synthesized document.
	JobStatusCompleted
	// JobStatusFailed marks a job that terminated with an error.
	JobStatusFailed
)

// String returns the lowercase name used in results and logs.
func (s JobStatus) String() string {
	switch s {
	case JobStatusPending:
		return "pending"
	case JobStatusProcessing:
		return "processing"
	case JobStatusCompleted:
		return "completed"
	case JobStatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status is an end state.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// Topic is a named grouping of source documents that forms the unit of synthesis.
type Topic struct {
	Id        ID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SourceDocument describes an uploaded file belonging to a topic.
// It is immutable once registered; the pipeline only reads it.
type SourceDocument struct {
	Id               ID
	TopicId          ID
	StorageLocator   string // path relative to the configured uploads root
	OriginalFilename string
	ByteSize         int64
	UploadedAt       time.Time
}

// Tuple returns a string representation of the document as "(TopicId,StorageLocator)".
// This is used for generating deterministic IDs, so registering the same file
// for the same topic twice yields the same document.
func (d *SourceDocument) Tuple() string {
	return fmt.Sprintf("(%d,%s)", d.TopicId, d.StorageLocator)
}

// ProcessingJob is the persisted record tracking one synthesis attempt.
//
// Invariants:
//   - Status transitions only pending -> processing -> {completed, failed}
//   - SynthesizedContent is non-empty iff Status is completed
//   - ErrorMessage is non-empty iff Status is failed
//   - ChunkCount and TokenCount stay 0 until a completed run or a failed
//     synthesis attempt
type ProcessingJob struct {
	Id                 ID
	TopicId            ID
	SourceId           ID // non-zero in single-file mode; the job is still topic-scoped
	SynthesizedContent string
	SourceFilenames    []string // filenames actually used, in source order
	ChunkCount         int
	TokenCount         int
	Status             JobStatus
	ErrorMessage       string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ResultStatus is the outcome classification of a pipeline invocation.
type ResultStatus string

const (
	// ResultSuccess indicates the invocation produced a completed job.
	ResultSuccess ResultStatus = "success"
	// ResultError indicates the invocation failed; Message carries the reason.
	ResultError ResultStatus = "error"
)

// JobResult is the structured value returned by every pipeline entry point.
type JobResult struct {
	Status     ResultStatus
	Message    string
	JobId      ID
	ChunkCount int
	TokenCount int
}
