package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		id1 := IDFromContent("(1,uploads/notes.pdf)")
		id2 := IDFromContent("(1,uploads/notes.pdf)")
		assert.Equal(t, id1, id2)
	})

	t.Run("distinct content distinct IDs", func(t *testing.T) {
		id1 := IDFromContent("(1,uploads/notes.pdf)")
		id2 := IDFromContent("(2,uploads/notes.pdf)")
		assert.NotEqual(t, id1, id2)
	})

	t.Run("empty content has an ID", func(t *testing.T) {
		assert.NotZero(t, IDFromContent(""))
	})
}

func TestJobStatusString(t *testing.T) {
	assert.Equal(t, "pending", JobStatusPending.String())
	assert.Equal(t, "processing", JobStatusProcessing.String())
	assert.Equal(t, "completed", JobStatusCompleted.String())
	assert.Equal(t, "failed", JobStatusFailed.String())
	assert.Equal(t, "unknown", JobStatus(0).String())
}

func TestJobStatusTerminal(t *testing.T) {
	assert.False(t, JobStatusPending.Terminal())
	assert.False(t, JobStatusProcessing.Terminal())
	assert.True(t, JobStatusCompleted.Terminal())
	assert.True(t, JobStatusFailed.Terminal())
}

func TestSourceDocumentTuple(t *testing.T) {
	doc := &SourceDocument{TopicId: 7, StorageLocator: "uploads/a.txt"}
	assert.Equal(t, "(7,uploads/a.txt)", doc.Tuple())
}
