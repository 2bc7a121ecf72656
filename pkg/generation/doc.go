// Package generation produces article drafts by calling the Gemini
// generateContent REST API with a caller-supplied key. Model output is
// requested as strict JSON, cleaned of markdown code fences and
// validated before it is returned.
package generation
