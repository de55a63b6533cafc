// Package models lists the chat models available from an OpenAI compatible
// provider such as DeepSeek, so users can pick a value for backend.model.
package models
