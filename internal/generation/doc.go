// Package generation talks to an Ollama-compatible text-generation endpoint.
// It performs a single non-streaming request per call and hands back the raw
// response body; interpreting that body is the resolver's job.
package generation
