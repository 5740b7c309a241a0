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


// Package storage provides the storage abstraction layer for metadoc.
//
// This package defines repository interfaces that decouple storage
// implementation from the processing pipeline. It allows different storage
// backends (BadgerDB, in-memory, etc.) to be used interchangeably.
//
// # Architecture
//
// The storage layer follows the Repository pattern:
//
//   - TopicRepository: operations for topics
//   - SourceRepository: operations for uploaded source documents
//   - JobRepository: operations for processing jobs, including atomic
//     acquisition of the single active job per topic
//
// # Job acquisition
//
// JobRepository.AcquireJob is the concurrency boundary of the system: it
// either returns the topic's current in-flight job or creates a new one, in
// a single transaction. This replaces a query-then-insert sequence that
// would race under concurrent requests for the same topic.
//
// # Thread safety
//
// All repository implementations must be thread-safe and support concurrent
// access from multiple goroutines.
//
// # Context support
//
// All repository methods accept context.Context for cancellation and timeout
// support. Pass context.Background() for operations without specific timeout
// requirements.
package storage
