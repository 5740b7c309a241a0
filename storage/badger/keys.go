package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/notespace/metadoc/core"
)

// Key prefixes for different data types
const (
	topicRecordPrefix  = "toprec"
	topicIDSeq         = "toprecseq"
	sourceRecordPrefix = "srcrec"
	sourceTopicPrefix  = "srctop"
	jobRecordPrefix    = "jobrec"
	jobTopicPrefix     = "jobtop"
	jobActivePrefix    = "jobact"
	jobIDSeq           = "jobrecseq"
)

// makeTopicKey generates a key for a topic by ID.
func makeTopicKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", topicRecordPrefix, id))
}

// makeSourceKey generates a key for a source document by ID.
func makeSourceKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", sourceRecordPrefix, id))
}

// makeSourceTopicKey generates a composite key for the per-topic source index.
// Format: prefix:topicID:uploadedAt:sourceID. Upload time is part of the key
// so iteration yields documents in upload order.
func makeSourceTopicKey(topicID core.ID, uploadedAt time.Time, sourceID core.ID) []byte {
	prefix := sourceTopicPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 24 // 8 bytes each for topicID, timestamp, sourceID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(topicID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(uploadedAt.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(sourceID))
	return buf
}

// makePartialSourceTopicKey generates a partial key for per-topic source scans.
// Format: prefix:topicID
func makePartialSourceTopicKey(topicID core.ID) []byte {
	prefix := sourceTopicPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(topicID))
	return buf
}

// makeJobKey generates a key for a processing job by ID.
func makeJobKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", jobRecordPrefix, id))
}

// makeJobTopicKey generates a composite key for the per-topic job index.
// Format: prefix:topicID:jobID. Job IDs come from a sequence, so iteration
// yields jobs in creation order.
func makeJobTopicKey(topicID, jobID core.ID) []byte {
	prefix := jobTopicPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(topicID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(jobID))
	return buf
}

// makePartialJobTopicKey generates a partial key for per-topic job scans.
// Format: prefix:topicID
func makePartialJobTopicKey(topicID core.ID) []byte {
	prefix := jobTopicPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(topicID))
	return buf
}

// makeJobActiveKey generates the active-job slot key for a topic.
// At most one job per topic holds this slot; it exists exactly while a job
// for the topic is in a non-terminal state.
func makeJobActiveKey(topicID core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", jobActivePrefix, topicID))
}
