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


package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/notespace/metadoc/ai"
	"github.com/notespace/metadoc/chunk"
	"github.com/notespace/metadoc/core"
	"github.com/notespace/metadoc/extract"
	"github.com/notespace/metadoc/storage"
)

// TextExtractor extracts plain text from a document file.
type TextExtractor interface {
	Extract(path string) (string, error)
}

// Pipeline runs topic processing end to end.
type Pipeline struct {
	topics      storage.TopicRepository
	sources     storage.SourceRepository
	jobs        storage.JobRepository
	extractor   TextExtractor
	chunker     *chunk.Chunker
	synthesizer ai.Synthesizer
	uploadRoot  string
	logger      *slog.Logger
}

// NewPipeline wires a processing pipeline. uploadRoot is the directory
// that relative storage locators resolve against.
func NewPipeline(
	topics storage.TopicRepository,
	sources storage.SourceRepository,
	jobs storage.JobRepository,
	extractor TextExtractor,
	chunker *chunk.Chunker,
	synthesizer ai.Synthesizer,
	uploadRoot string,
) (*Pipeline, error) {
	if topics == nil || sources == nil || jobs == nil {
		return nil, ErrNilRepository
	}
	if extractor == nil {
		return nil, ErrNilExtractor
	}
	if chunker == nil {
		return nil, ErrNilChunker
	}
	if synthesizer == nil {
		return nil, ErrNilSynthesizer
	}

	return &Pipeline{
		topics:      topics,
		sources:     sources,
		jobs:        jobs,
		extractor:   extractor,
		chunker:     chunker,
		synthesizer: synthesizer,
		uploadRoot:  uploadRoot,
		logger:      slog.Default().With("component", "pipeline"),
	}, nil
}

// ProcessTopic synthesizes study notes from every document registered
// under the topic. The run is recorded as a processing job; the returned
// result always carries the job id once a job exists.
//
// Lookup failures before a job is acquired (unknown topic, topic with no
// documents) come back as an error result without a job id.
func (p *Pipeline) ProcessTopic(ctx context.Context, topicID core.ID) *core.JobResult {
	topic, err := p.topics.GetTopic(ctx, topicID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errorResult(ErrTopicNotFound.Error())
		}
		return errorResult(err.Error())
	}

	sources, err := p.sources.GetSourcesByTopic(ctx, topicID)
	if err != nil {
		return errorResult(err.Error())
	}
	if len(sources) == 0 {
		return errorResult(ErrNoSources.Error())
	}

	return p.run(ctx, topic, sources, 0)
}

// ProcessSource resolves the document's owning topic and runs topic
// processing over every document registered under it. The meta document is
// always topic-scoped; the job only records which document triggered the
// run.
func (p *Pipeline) ProcessSource(ctx context.Context, sourceID core.ID) *core.JobResult {
	source, err := p.sources.GetSource(ctx, sourceID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errorResult(ErrSourceNotFound.Error())
		}
		return errorResult(err.Error())
	}

	topic, err := p.topics.GetTopic(ctx, source.TopicId)
	if err != nil {
		return errorResult(err.Error())
	}

	sources, err := p.sources.GetSourcesByTopic(ctx, topic.Id)
	if err != nil {
		return errorResult(err.Error())
	}

	return p.run(ctx, topic, sources, sourceID)
}

// JobStatus returns the stored job for status inspection.
func (p *Pipeline) JobStatus(ctx context.Context, jobID core.ID) (*core.ProcessingJob, error) {
	return p.jobs.GetJob(ctx, jobID)
}

// run acquires the topic's job slot and processes the given documents.
// A run that finds another job already in flight returns that job's id
// without touching it.
func (p *Pipeline) run(ctx context.Context, topic *core.Topic, sources []*core.SourceDocument, sourceID core.ID) (result *core.JobResult) {
	job, created, err := p.jobs.AcquireJob(ctx, topic.Id, sourceID)
	if err != nil {
		return errorResult(err.Error())
	}
	if !created {
		p.logger.Info("processing already in progress", "topic_id", topic.Id, "job_id", job.Id)
		return &core.JobResult{
			Status:  core.ResultSuccess,
			Message: "processing already in progress",
			JobId:   job.Id,
		}
	}

	// Document parsers are not trusted to never panic. Whatever happens
	// below, the job must reach a terminal state.
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("processing panicked", "topic_id", topic.Id, "job_id", job.Id, "panic", r)
			message := fmt.Sprintf("processing panicked: %v", r)
			p.failJob(ctx, job, message)
			result = &core.JobResult{
				Status:  core.ResultError,
				Message: message,
				JobId:   job.Id,
			}
		}
	}()

	p.logger.Info("processing started",
		"topic_id", topic.Id,
		"topic", topic.Name,
		"job_id", job.Id,
		"documents", len(sources))

	sections, filenames := p.extractAll(sources)
	if len(sections) == 0 {
		p.failJob(ctx, job, ErrNoExtractedText.Error())
		return &core.JobResult{
			Status:  core.ResultError,
			Message: ErrNoExtractedText.Error(),
			JobId:   job.Id,
		}
	}

	combined := strings.Join(sections, "\n\n---\n\n")
	chunks := p.chunker.Split(combined)
	job.ChunkCount = len(chunks)
	job.SourceFilenames = filenames

	synthesis, err := p.synthesizer.Synthesize(ctx, chunks, topic.Name)
	if err != nil {
		p.failJob(ctx, job, err.Error())
		return &core.JobResult{
			Status:     core.ResultError,
			Message:    err.Error(),
			JobId:      job.Id,
			ChunkCount: job.ChunkCount,
		}
	}

	job.Status = core.JobStatusCompleted
	job.SynthesizedContent = synthesis.Content
	job.TokenCount = synthesis.TotalTokens
	if _, err := p.jobs.UpdateJob(ctx, job); err != nil {
		// The job must still reach a terminal state, or the topic's slot
		// stays held and blocks every later run.
		message := fmt.Sprintf("persisting synthesis result: %v", err)
		p.failJob(ctx, job, message)
		return &core.JobResult{
			Status:     core.ResultError,
			Message:    message,
			JobId:      job.Id,
			ChunkCount: job.ChunkCount,
		}
	}

	p.logger.Info("processing completed",
		"topic_id", topic.Id,
		"job_id", job.Id,
		"chunks", job.ChunkCount,
		"tokens", job.TokenCount)

	return &core.JobResult{
		Status:     core.ResultSuccess,
		Message:    "study notes generated",
		JobId:      job.Id,
		ChunkCount: job.ChunkCount,
		TokenCount: job.TokenCount,
	}
}

// extractAll extracts and normalizes text from each document, skipping
// documents that fail or come back empty. Sections keep upload order and
// name their source file so provenance survives synthesis.
func (p *Pipeline) extractAll(sources []*core.SourceDocument) (sections, filenames []string) {
	for _, source := range sources {
		path := source.StorageLocator
		if !filepath.IsAbs(path) {
			path = filepath.Join(p.uploadRoot, path)
		}

		text, err := p.extractor.Extract(path)
		if err != nil {
			p.logger.Warn("skipping document", "filename", source.OriginalFilename, "err", err)
			continue
		}

		text = extract.Clean(text)
		if text == "" {
			p.logger.Warn("skipping document with no text", "filename", source.OriginalFilename)
			continue
		}

		sections = append(sections, fmt.Sprintf("Source: %s\n\n%s", source.OriginalFilename, text))
		filenames = append(filenames, source.OriginalFilename)
	}
	return sections, filenames
}

// failJob moves the job to failed. Persistence errors here are logged and
// swallowed: the original failure is what the caller needs to see.
func (p *Pipeline) failJob(ctx context.Context, job *core.ProcessingJob, message string) {
	job.Status = core.JobStatusFailed
	job.ErrorMessage = message
	job.SynthesizedContent = ""
	job.TokenCount = 0
	if _, err := p.jobs.UpdateJob(ctx, job); err != nil {
		p.logger.Error("failed to record job failure", "job_id", job.Id, "err", err)
	}
}

func errorResult(message string) *core.JobResult {
	return &core.JobResult{
		Status:  core.ResultError,
		Message: message,
	}
}
