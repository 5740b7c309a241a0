// Package openai implements ai.Synthesizer against OpenAI-compatible chat
// APIs.
package openai
