// Package openai implements the transcription and chat completion
// collaborators against the OpenAI HTTP API. Requests are single-shot;
// callers decide what a failure means.
package openai
