// Package ai defines the synthesis abstraction used by the processing
// pipeline, plus its configuration. Concrete implementations live in
// subpackages: openai for the real service, mock for tests.
package ai
