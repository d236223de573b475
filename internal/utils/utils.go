package utils

import (
	"errors"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// IsTransient reports whether a provider error looks like a temporary outage.
// Generation calls are never retried; this only feeds log fields.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var openAIErr *openai.APIError
	if errors.As(err, &openAIErr) {
		return openAIErr.HTTPStatusCode >= 500 || openAIErr.HTTPStatusCode == 429
	}
	var genaiErr genai.APIError
	if errors.As(err, &genaiErr) {
		return genaiErr.Code >= 500 || genaiErr.Code == 429
	}
	var genaiErrPtr *genai.APIError
	if errors.As(err, &genaiErrPtr) && genaiErrPtr != nil {
		return genaiErrPtr.Code >= 500 || genaiErrPtr.Code == 429
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "rate limit") ||
		strings.Contains(errMsg, "502 bad gateway") ||
		strings.Contains(errMsg, "503 service unavailable") ||
		strings.Contains(errMsg, "504 gateway timeout") ||
		strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "connection reset by peer")
}

// DetectImageMIME returns the MIME type of raw image bytes, falling back to
// image/png when the payload is not recognisable as an image.
func DetectImageMIME(data []byte) string {
	if len(data) == 0 {
		return "image/png"
	}
	mt := mimetype.Detect(data)
	for m := mt; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "image/") {
			return mt.String()
		}
	}
	return "image/png"
}
