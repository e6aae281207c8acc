// Package openai implements the ai package interfaces against any
// OpenAI-compatible chat completion API (OpenAI, Ollama, LocalAI, vLLM).
package openai
