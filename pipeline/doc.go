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


// Package pipeline orchestrates topic processing: it collects a topic's
// source documents, extracts and normalizes their text, splits the result
// into token-bounded chunks, synthesizes study notes with a model, and
// records the whole run as a processing job.
//
// Every run ends in a terminal job state. Failures inside a run, including
// panics from document parsers, are converted into a failed job rather
// than propagating to the caller.
package pipeline
