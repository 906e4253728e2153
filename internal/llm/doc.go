// Package llm turns free-form expense utterances into structured expenses.
// It provides a remote classifier speaking the OpenAI-compatible chat completions
// protocol (DeepSeek by default) and a local heuristic classifier used when the
// remote one is unavailable.
package llm
