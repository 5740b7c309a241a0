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


// Package metadoc turns a topic's uploaded documents into synthesized
// study notes. System is the assembled application: badger-backed
// repositories plus the processing pipeline.
package metadoc

import (
	"log/slog"

	"github.com/notespace/metadoc/ai"
	"github.com/notespace/metadoc/chunk"
	"github.com/notespace/metadoc/extract"
	"github.com/notespace/metadoc/pipeline"
	"github.com/notespace/metadoc/storage"
	"github.com/notespace/metadoc/storage/badger"
)

// System wires storage and processing into one handle.
type System struct {
	backend    *badger.Backend
	topicRepo  storage.TopicRepository
	sourceRepo storage.SourceRepository
	jobRepo    storage.JobRepository
	uploadRoot string
	logger     *slog.Logger
}

// SystemOption configures a System.
type SystemOption func(*systemOptions)

type systemOptions struct {
	uploadRoot string
}

// WithUploadRoot sets the directory that relative document locators
// resolve against. Default: "uploads".
func WithUploadRoot(dir string) SystemOption {
	return func(o *systemOptions) {
		o.uploadRoot = dir
	}
}

// NewSystem opens the database at filePath and builds the repositories.
func NewSystem(filePath string, opts ...SystemOption) (*System, error) {
	options := &systemOptions{
		uploadRoot: "uploads",
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	topicRepo, err := badger.NewTopicRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	sourceRepo, err := badger.NewSourceRepository(backend)
	if err != nil {
		topicRepo.Close()
		backend.Close()
		return nil, err
	}

	jobRepo, err := badger.NewJobRepository(backend)
	if err != nil {
		sourceRepo.Close()
		topicRepo.Close()
		backend.Close()
		return nil, err
	}

	return &System{
		backend:    backend,
		topicRepo:  topicRepo,
		sourceRepo: sourceRepo,
		jobRepo:    jobRepo,
		uploadRoot: options.uploadRoot,
		logger:     slog.Default(),
	}, nil
}

// Close releases the repositories and the underlying database.
func (s *System) Close() error {
	if err := s.jobRepo.Close(); err != nil {
		s.logger.Error("error closing job repository", "err", err)
		return err
	}
	if err := s.sourceRepo.Close(); err != nil {
		s.logger.Error("error closing source repository", "err", err)
		return err
	}
	if err := s.topicRepo.Close(); err != nil {
		s.logger.Error("error closing topic repository", "err", err)
		return err
	}
	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// TopicRepository returns the topic store.
func (s *System) TopicRepository() storage.TopicRepository {
	return s.topicRepo
}

// SourceRepository returns the source document store.
func (s *System) SourceRepository() storage.SourceRepository {
	return s.sourceRepo
}

// JobRepository returns the processing job store.
func (s *System) JobRepository() storage.JobRepository {
	return s.jobRepo
}

// UploadRoot returns the directory documents are stored under.
func (s *System) UploadRoot() string {
	return s.uploadRoot
}

// NewPipeline builds a processing pipeline over the system's repositories
// using the given synthesizer.
func (s *System) NewPipeline(synthesizer ai.Synthesizer) (*pipeline.Pipeline, error) {
	return pipeline.NewPipeline(
		s.topicRepo,
		s.sourceRepo,
		s.jobRepo,
		extract.NewExtractor(),
		chunk.NewChunker(),
		synthesizer,
		s.uploadRoot,
	)
}
