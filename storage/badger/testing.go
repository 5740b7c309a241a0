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


package badger

import "github.com/notespace/metadoc/storage"

// NewMemoryRepositories creates in-memory topic, source, and job repositories
// for testing. Returns topicRepo, sourceRepo, jobRepo, backend, and error.
// Caller must close the repos and the backend when done.
func NewMemoryRepositories() (storage.TopicRepository, storage.SourceRepository, storage.JobRepository, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	topicRepo, err := NewTopicRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, nil, nil, err
	}

	sourceRepo, err := NewSourceRepository(backend)
	if err != nil {
		topicRepo.Close()
		backend.Close()
		return nil, nil, nil, nil, err
	}

	jobRepo, err := NewJobRepository(backend)
	if err != nil {
		sourceRepo.Close()
		topicRepo.Close()
		backend.Close()
		return nil, nil, nil, nil, err
	}

	return topicRepo, sourceRepo, jobRepo, backend, nil
}
