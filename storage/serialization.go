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


package storage

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/notespace/metadoc/core"
)

// Record serializers are written by hand against the mus-go primitive
// serializers. The records are small and change rarely, so hand-rolled
// field order beats a code generation step. Timestamps are stored as
// microseconds since the Unix epoch.

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, varint.Uint64.Size(uint64(id)))
	varint.Uint64.Marshal(uint64(id), buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	v, _, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return core.ID(v), nil
}

// MarshalTopic serializes a Topic to bytes.
func MarshalTopic(topic *core.Topic) []byte {
	size := varint.Uint64.Size(uint64(topic.Id)) +
		ord.String.Size(topic.Name) +
		timeSize(topic.CreatedAt) +
		timeSize(topic.UpdatedAt)

	buf := make([]byte, size)
	n := varint.Uint64.Marshal(uint64(topic.Id), buf)
	n += ord.String.Marshal(topic.Name, buf[n:])
	n += marshalTime(topic.CreatedAt, buf[n:])
	marshalTime(topic.UpdatedAt, buf[n:])
	return buf
}

// UnmarshalTopic deserializes a Topic from bytes.
func UnmarshalTopic(data []byte) (*core.Topic, error) {
	var (
		topic core.Topic
		n     int
	)
	err := decode(data, &n,
		uint64Field((*uint64)(&topic.Id)),
		stringField(&topic.Name),
		timeField(&topic.CreatedAt),
		timeField(&topic.UpdatedAt),
	)
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

// MarshalSourceDocument serializes a SourceDocument to bytes.
func MarshalSourceDocument(doc *core.SourceDocument) []byte {
	size := varint.Uint64.Size(uint64(doc.Id)) +
		varint.Uint64.Size(uint64(doc.TopicId)) +
		ord.String.Size(doc.StorageLocator) +
		ord.String.Size(doc.OriginalFilename) +
		varint.Int64.Size(doc.ByteSize) +
		timeSize(doc.UploadedAt)

	buf := make([]byte, size)
	n := varint.Uint64.Marshal(uint64(doc.Id), buf)
	n += varint.Uint64.Marshal(uint64(doc.TopicId), buf[n:])
	n += ord.String.Marshal(doc.StorageLocator, buf[n:])
	n += ord.String.Marshal(doc.OriginalFilename, buf[n:])
	n += varint.Int64.Marshal(doc.ByteSize, buf[n:])
	marshalTime(doc.UploadedAt, buf[n:])
	return buf
}

// UnmarshalSourceDocument deserializes a SourceDocument from bytes.
func UnmarshalSourceDocument(data []byte) (*core.SourceDocument, error) {
	var (
		doc core.SourceDocument
		n   int
	)
	err := decode(data, &n,
		uint64Field((*uint64)(&doc.Id)),
		uint64Field((*uint64)(&doc.TopicId)),
		stringField(&doc.StorageLocator),
		stringField(&doc.OriginalFilename),
		int64Field(&doc.ByteSize),
		timeField(&doc.UploadedAt),
	)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// MarshalProcessingJob serializes a ProcessingJob to bytes.
func MarshalProcessingJob(job *core.ProcessingJob) []byte {
	size := varint.Uint64.Size(uint64(job.Id)) +
		varint.Uint64.Size(uint64(job.TopicId)) +
		varint.Uint64.Size(uint64(job.SourceId)) +
		ord.String.Size(job.SynthesizedContent) +
		stringSliceSize(job.SourceFilenames) +
		varint.Int.Size(job.ChunkCount) +
		varint.Int.Size(job.TokenCount) +
		varint.Int.Size(int(job.Status)) +
		ord.String.Size(job.ErrorMessage) +
		timeSize(job.CreatedAt) +
		timeSize(job.UpdatedAt)

	buf := make([]byte, size)
	n := varint.Uint64.Marshal(uint64(job.Id), buf)
	n += varint.Uint64.Marshal(uint64(job.TopicId), buf[n:])
	n += varint.Uint64.Marshal(uint64(job.SourceId), buf[n:])
	n += ord.String.Marshal(job.SynthesizedContent, buf[n:])
	n += marshalStringSlice(job.SourceFilenames, buf[n:])
	n += varint.Int.Marshal(job.ChunkCount, buf[n:])
	n += varint.Int.Marshal(job.TokenCount, buf[n:])
	n += varint.Int.Marshal(int(job.Status), buf[n:])
	n += ord.String.Marshal(job.ErrorMessage, buf[n:])
	n += marshalTime(job.CreatedAt, buf[n:])
	marshalTime(job.UpdatedAt, buf[n:])
	return buf
}

// UnmarshalProcessingJob deserializes a ProcessingJob from bytes.
func UnmarshalProcessingJob(data []byte) (*core.ProcessingJob, error) {
	var (
		job    core.ProcessingJob
		status int
		n      int
	)
	err := decode(data, &n,
		uint64Field((*uint64)(&job.Id)),
		uint64Field((*uint64)(&job.TopicId)),
		uint64Field((*uint64)(&job.SourceId)),
		stringField(&job.SynthesizedContent),
		stringSliceField(&job.SourceFilenames),
		intField(&job.ChunkCount),
		intField(&job.TokenCount),
		intField(&status),
		stringField(&job.ErrorMessage),
		timeField(&job.CreatedAt),
		timeField(&job.UpdatedAt),
	)
	if err != nil {
		return nil, err
	}
	job.Status = core.JobStatus(status)
	return &job, nil
}

// field decoders

type fieldDecoder func(data []byte) (int, error)

func decode(data []byte, n *int, fields ...fieldDecoder) error {
	for _, f := range fields {
		m, err := f(data[*n:])
		if err != nil {
			return fmt.Errorf("%w: %w", ErrSerializationFailed, err)
		}
		*n += m
	}
	return nil
}

func uint64Field(dst *uint64) fieldDecoder {
	return func(data []byte) (int, error) {
		v, n, err := varint.Uint64.Unmarshal(data)
		*dst = v
		return n, err
	}
}

func int64Field(dst *int64) fieldDecoder {
	return func(data []byte) (int, error) {
		v, n, err := varint.Int64.Unmarshal(data)
		*dst = v
		return n, err
	}
}

func intField(dst *int) fieldDecoder {
	return func(data []byte) (int, error) {
		v, n, err := varint.Int.Unmarshal(data)
		*dst = v
		return n, err
	}
}

func stringField(dst *string) fieldDecoder {
	return func(data []byte) (int, error) {
		v, n, err := ord.String.Unmarshal(data)
		*dst = v
		return n, err
	}
}

func timeField(dst *time.Time) fieldDecoder {
	return func(data []byte) (int, error) {
		micros, n, err := varint.Int64.Unmarshal(data)
		if err != nil {
			return n, err
		}
		if micros == 0 {
			*dst = time.Time{}
		} else {
			*dst = time.UnixMicro(micros).UTC()
		}
		return n, nil
	}
}

func stringSliceField(dst *[]string) fieldDecoder {
	return func(data []byte) (int, error) {
		count, n, err := varint.Int.Unmarshal(data)
		if err != nil {
			return n, err
		}
		if count < 0 {
			return n, fmt.Errorf("negative slice length %d", count)
		}
		var items []string
		for i := 0; i < count; i++ {
			v, m, err := ord.String.Unmarshal(data[n:])
			if err != nil {
				return n, err
			}
			n += m
			items = append(items, v)
		}
		*dst = items
		return n, nil
	}
}

// time helpers: zero times are stored as 0 micros

func marshalTime(t time.Time, buf []byte) int {
	var micros int64
	if !t.IsZero() {
		micros = t.UnixMicro()
	}
	return varint.Int64.Marshal(micros, buf)
}

func timeSize(t time.Time) int {
	var micros int64
	if !t.IsZero() {
		micros = t.UnixMicro()
	}
	return varint.Int64.Size(micros)
}

func marshalStringSlice(items []string, buf []byte) int {
	n := varint.Int.Marshal(len(items), buf)
	for _, item := range items {
		n += ord.String.Marshal(item, buf[n:])
	}
	return n
}

func stringSliceSize(items []string) int {
	size := varint.Int.Size(len(items))
	for _, item := range items {
		size += ord.String.Size(item)
	}
	return size
}
