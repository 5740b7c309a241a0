package pipeline

import "errors"

var (
	// ErrNilRepository indicates a pipeline constructed without one of its
	// required repositories.
	ErrNilRepository = errors.New("repository cannot be nil")

	// ErrNilExtractor indicates a pipeline constructed without an extractor.
	ErrNilExtractor = errors.New("extractor cannot be nil")

	// ErrNilChunker indicates a pipeline constructed without a chunker.
	ErrNilChunker = errors.New("chunker cannot be nil")

	// ErrNilSynthesizer indicates a pipeline constructed without a synthesizer.
	ErrNilSynthesizer = errors.New("synthesizer cannot be nil")

	// ErrTopicNotFound indicates the requested topic does not exist.
	ErrTopicNotFound = errors.New("topic not found")

	// ErrSourceNotFound indicates the requested document is not registered.
	ErrSourceNotFound = errors.New("source document not found")

	// ErrNoSources indicates the topic has no registered documents.
	ErrNoSources = errors.New("no files found for this topic")

	// ErrNoExtractedText indicates every document failed extraction or
	// yielded no text.
	ErrNoExtractedText = errors.New("no text could be extracted from any files")
)
