// Package translation provides English to Russian translation of game mod
// texts using an LLM provider (DeepSeek through its OpenAI compatible API,
// or Google Gemini). It includes a circuit breaker around provider calls and
// an in-memory cache for repeated texts.
package translation
