package storage

import (
	"testing"
	"time"

	"github.com/notespace/metadoc/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDRoundTrip(t *testing.T) {
	for _, id := range []core.ID{0, 1, 255, 1 << 20, 1<<63 + 17} {
		got, err := UnmarshalID(MarshalID(id))
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}

func TestUnmarshalIDTruncated(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.Error(t, err)
}

func TestTopicRoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	topic := &core.Topic{
		Id:        42,
		Name:      "Operating Systems",
		CreatedAt: now,
		UpdatedAt: now.Add(time.Hour),
	}

	got, err := UnmarshalTopic(MarshalTopic(topic))
	require.NoError(t, err)
	assert.Equal(t, topic, got)
}

func TestSourceDocumentRoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	doc := &core.SourceDocument{
		Id:               core.IDFromContent("(3,abc.pdf)"),
		TopicId:          3,
		StorageLocator:   "abc.pdf",
		OriginalFilename: "lecture 3 — paging.pdf",
		ByteSize:         920_133,
		UploadedAt:       now,
	}

	got, err := UnmarshalSourceDocument(MarshalSourceDocument(doc))
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestProcessingJobRoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("completed job", func(t *testing.T) {
		job := &core.ProcessingJob{
			Id:                 7,
			TopicId:            3,
			SynthesizedContent: "Combined notes.",
			SourceFilenames:    []string{"a.txt", "b.txt"},
			ChunkCount:         1,
			TokenCount:         42,
			Status:             core.JobStatusCompleted,
			CreatedAt:          now,
			UpdatedAt:          now.Add(time.Minute),
		}

		got, err := UnmarshalProcessingJob(MarshalProcessingJob(job))
		require.NoError(t, err)
		assert.Equal(t, job, got)
	})

	t.Run("failed job with source id", func(t *testing.T) {
		job := &core.ProcessingJob{
			Id:           8,
			TopicId:      3,
			SourceId:     91,
			Status:       core.JobStatusFailed,
			ErrorMessage: "no text could be extracted from any files",
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		got, err := UnmarshalProcessingJob(MarshalProcessingJob(job))
		require.NoError(t, err)
		assert.Equal(t, job, got)
	})

	t.Run("fresh job with zero timestamps", func(t *testing.T) {
		job := &core.ProcessingJob{TopicId: 1, Status: core.JobStatusPending}
		got, err := UnmarshalProcessingJob(MarshalProcessingJob(job))
		require.NoError(t, err)
		assert.Equal(t, job, got)
		assert.True(t, got.CreatedAt.IsZero())
	})
}

func TestUnmarshalProcessingJobTruncated(t *testing.T) {
	job := &core.ProcessingJob{
		TopicId:         3,
		SourceFilenames: []string{"a.txt"},
		Status:          core.JobStatusProcessing,
	}
	data := MarshalProcessingJob(job)

	_, err := UnmarshalProcessingJob(data[:len(data)/2])
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
