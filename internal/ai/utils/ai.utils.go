package utils

import (
	"encoding/base64"
	"strings"
)

// CleanJSONOutput trims whitespace and a surrounding markdown code fence
// (```json ... ``` or ``` ... ```) from raw model output.
func CleanJSONOutput(llmOutput string) string {
	cleaned := strings.TrimSpace(llmOutput)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	return strings.TrimSpace(cleaned)
}

// DataURI wraps raw bytes as a base64 data URI.
func DataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
