package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTopic(t *testing.T) {
	t.Run("valid topic", func(t *testing.T) {
		assert.NoError(t, ValidateTopic(&Topic{Name: "Algorithms"}))
	})

	t.Run("nil topic", func(t *testing.T) {
		err := ValidateTopic(nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidTopic)
	})

	t.Run("empty name", func(t *testing.T) {
		err := ValidateTopic(&Topic{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEmptyTopicName)
	})
}

func TestValidateSourceDocument(t *testing.T) {
	valid := func() *SourceDocument {
		return &SourceDocument{
			TopicId:          1,
			StorageLocator:   "abc123.pdf",
			OriginalFilename: "lecture-notes.pdf",
			ByteSize:         1024,
		}
	}

	t.Run("valid document", func(t *testing.T) {
		assert.NoError(t, ValidateSourceDocument(valid()))
	})

	t.Run("nil document", func(t *testing.T) {
		assert.ErrorIs(t, ValidateSourceDocument(nil), ErrInvalidSourceDocument)
	})

	t.Run("missing topic", func(t *testing.T) {
		doc := valid()
		doc.TopicId = 0
		assert.ErrorIs(t, ValidateSourceDocument(doc), ErrInvalidSourceDocument)
	})

	t.Run("missing locator", func(t *testing.T) {
		doc := valid()
		doc.StorageLocator = ""
		assert.ErrorIs(t, ValidateSourceDocument(doc), ErrEmptyLocator)
	})

	t.Run("missing filename", func(t *testing.T) {
		doc := valid()
		doc.OriginalFilename = ""
		assert.ErrorIs(t, ValidateSourceDocument(doc), ErrEmptyFilename)
	})
}

func TestValidateJob(t *testing.T) {
	t.Run("valid processing job", func(t *testing.T) {
		job := &ProcessingJob{TopicId: 1, Status: JobStatusProcessing}
		assert.NoError(t, ValidateJob(job))
	})

	t.Run("valid completed job", func(t *testing.T) {
		job := &ProcessingJob{TopicId: 1, Status: JobStatusCompleted, SynthesizedContent: "doc"}
		assert.NoError(t, ValidateJob(job))
	})

	t.Run("valid failed job", func(t *testing.T) {
		job := &ProcessingJob{TopicId: 1, Status: JobStatusFailed, ErrorMessage: "boom"}
		assert.NoError(t, ValidateJob(job))
	})

	t.Run("nil job", func(t *testing.T) {
		assert.ErrorIs(t, ValidateJob(nil), ErrInvalidJob)
	})

	t.Run("unknown status", func(t *testing.T) {
		job := &ProcessingJob{TopicId: 1, Status: JobStatus(42)}
		assert.ErrorIs(t, ValidateJob(job), ErrInvalidStatus)
	})

	t.Run("completed without content", func(t *testing.T) {
		job := &ProcessingJob{TopicId: 1, Status: JobStatusCompleted}
		assert.ErrorIs(t, ValidateJob(job), ErrInvalidJob)
	})

	t.Run("content without completed", func(t *testing.T) {
		job := &ProcessingJob{TopicId: 1, Status: JobStatusProcessing, SynthesizedContent: "doc"}
		assert.ErrorIs(t, ValidateJob(job), ErrInvalidJob)
	})

	t.Run("failed without error message", func(t *testing.T) {
		job := &ProcessingJob{TopicId: 1, Status: JobStatusFailed}
		assert.ErrorIs(t, ValidateJob(job), ErrInvalidJob)
	})
}

func TestValidateTransition(t *testing.T) {
	allowed := []struct{ from, to JobStatus }{
		{JobStatusPending, JobStatusProcessing},
		{JobStatusProcessing, JobStatusCompleted},
		{JobStatusProcessing, JobStatusFailed},
		{JobStatusPending, JobStatusPending},
		{JobStatusProcessing, JobStatusProcessing},
	}
	for _, tc := range allowed {
		assert.NoError(t, ValidateTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	denied := []struct{ from, to JobStatus }{
		{JobStatusPending, JobStatusCompleted},
		{JobStatusPending, JobStatusFailed},
		{JobStatusCompleted, JobStatusProcessing},
		{JobStatusCompleted, JobStatusFailed},
		{JobStatusFailed, JobStatusProcessing},
		{JobStatusCompleted, JobStatusCompleted},
		{JobStatusFailed, JobStatusFailed},
	}
	for _, tc := range denied {
		assert.ErrorIs(t, ValidateTransition(tc.from, tc.to), ErrInvalidTransition, "%s -> %s", tc.from, tc.to)
	}
}
