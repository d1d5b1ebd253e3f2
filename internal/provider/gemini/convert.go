package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	provider "github.com/Cyclone1070/archpilot/internal/provider/models"
)

const jsonMIMEType = "application/json"

// toGeminiContents converts a prompt and history to Gemini Content format.
func toGeminiContents(prompt string, history []provider.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+1)

	for _, msg := range history {
		if msg.Content == "" {
			continue
		}
		role := genai.RoleUser
		if msg.Role == "model" || msg.Role == "assistant" {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Content, genai.Role(role)))
	}

	if prompt != "" {
		contents = append(contents, genai.NewContentFromText(prompt, genai.RoleUser))
	}
	return contents
}

// toGeminiConfig converts the request options to a Gemini config.
func toGeminiConfig(system string, config *provider.GenerateConfig) *genai.GenerateContentConfig {
	geminiConfig := &genai.GenerateContentConfig{
		SafetySettings: defaultSafetySettings(),
	}
	if system != "" {
		geminiConfig.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	if config == nil {
		return geminiConfig
	}
	if config.Temperature != nil {
		geminiConfig.Temperature = config.Temperature
	}
	if config.MaxOutputTokens > 0 {
		geminiConfig.MaxOutputTokens = config.MaxOutputTokens
	}
	if config.JSONMode {
		geminiConfig.ResponseMIMEType = jsonMIMEType
	}
	return geminiConfig
}

// defaultSafetySettings only blocks high-probability harmful content; the
// prompts here are drafting commands and rarely trip the filters.
func defaultSafetySettings() []*genai.SafetySetting {
	categories := []genai.HarmCategory{
		genai.HarmCategoryHateSpeech,
		genai.HarmCategoryDangerousContent,
		genai.HarmCategoryHarassment,
		genai.HarmCategorySexuallyExplicit,
	}
	settings := make([]*genai.SafetySetting, 0, len(categories))
	for _, c := range categories {
		settings = append(settings, &genai.SafetySetting{
			Category:  c,
			Threshold: genai.HarmBlockThresholdBlockOnlyHigh,
		})
	}
	return settings
}

// fromGeminiResponse converts a Gemini response to internal format.
func fromGeminiResponse(resp *genai.GenerateContentResponse, modelUsed string) (*provider.GenerateResponse, error) {
	if resp == nil {
		return nil, &provider.ProviderError{
			Code:       provider.ErrorCodeEmptyResponse,
			Message:    "nil response",
			Underlying: provider.ErrEmptyResponse,
		}
	}

	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" && fb.BlockReason != genai.BlockedReasonUnspecified {
		return refusal(fmt.Sprintf("prompt blocked: %s", fb.BlockReason), resp.UsageMetadata, modelUsed), nil
	}

	if len(resp.Candidates) == 0 {
		return nil, &provider.ProviderError{
			Code:       provider.ErrorCodeEmptyResponse,
			Message:    "no candidates in response",
			Underlying: provider.ErrEmptyResponse,
		}
	}

	candidate := resp.Candidates[0]
	switch candidate.FinishReason {
	case genai.FinishReasonSafety:
		return refusal("content blocked by safety filters", resp.UsageMetadata, modelUsed), nil
	case genai.FinishReasonMaxTokens:
		return buildResponse(candidate, resp.UsageMetadata, modelUsed), &provider.ProviderError{
			Code:    provider.ErrorCodeTruncated,
			Message: "response truncated due to max tokens",
		}
	}

	out := buildResponse(candidate, resp.UsageMetadata, modelUsed)
	if strings.TrimSpace(out.Content.Text) == "" {
		return nil, &provider.ProviderError{
			Code:       provider.ErrorCodeEmptyResponse,
			Message:    "response has no text",
			Underlying: provider.ErrEmptyResponse,
		}
	}
	return out, nil
}

func refusal(reason string, usage *genai.GenerateContentResponseUsageMetadata, modelUsed string) *provider.GenerateResponse {
	return &provider.GenerateResponse{
		Content: provider.ResponseContent{
			Type:          provider.ResponseTypeRefusal,
			RefusalReason: reason,
		},
		Metadata: buildMetadata(usage, modelUsed),
	}
}

// buildResponse builds a text response from a candidate.
func buildResponse(candidate *genai.Candidate, usage *genai.GenerateContentResponseUsageMetadata, modelUsed string) *provider.GenerateResponse {
	var sb strings.Builder
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part != nil && part.Text != "" && !part.Thought {
				sb.WriteString(part.Text)
			}
		}
	}

	return &provider.GenerateResponse{
		Content: provider.ResponseContent{
			Type: provider.ResponseTypeText,
			Text: sb.String(),
		},
		Metadata: buildMetadata(usage, modelUsed),
	}
}

// buildMetadata builds response metadata from usage data.
func buildMetadata(usage *genai.GenerateContentResponseUsageMetadata, modelUsed string) provider.ResponseMetadata {
	metadata := provider.ResponseMetadata{
		ModelUsed: modelUsed,
	}
	if usage != nil {
		metadata.PromptTokens = int(usage.PromptTokenCount)
		metadata.CompletionTokens = int(usage.CandidatesTokenCount)
		metadata.TotalTokens = int(usage.TotalTokenCount)
	}
	return metadata
}

// mapGeminiError maps Gemini API errors to provider errors.
func mapGeminiError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &provider.ProviderError{
			Code:       provider.ErrorCodeTimeout,
			Message:    "request timed out",
			Underlying: err,
			Retryable:  true,
		}
	}

	if apiErr, ok := asAPIError(err); ok {
		switch apiErr.Code {
		case 401, 403:
			return &provider.ProviderError{
				Code:       provider.ErrorCodeAuth,
				Message:    "authentication failed",
				Underlying: err,
			}
		case 429:
			if strings.Contains(strings.ToLower(apiErr.Message), "quota") {
				return &provider.ProviderError{
					Code:       provider.ErrorCodeQuota,
					Message:    "quota exceeded",
					Underlying: err,
					RetryAfter: parseRetryAfter(apiErr),
				}
			}
			return &provider.ProviderError{
				Code:       provider.ErrorCodeRateLimit,
				Message:    "rate limit exceeded",
				Underlying: err,
				Retryable:  true,
				RetryAfter: parseRetryAfter(apiErr),
			}
		case 400:
			return &provider.ProviderError{
				Code:       provider.ErrorCodeInvalidRequest,
				Message:    fmt.Sprintf("invalid request: %s", apiErr.Message),
				Underlying: err,
			}
		case 404:
			return &provider.ProviderError{
				Code:       provider.ErrorCodeInvalidModel,
				Message:    fmt.Sprintf("model not found: %s", apiErr.Message),
				Underlying: err,
			}
		case 408, 504:
			return &provider.ProviderError{
				Code:       provider.ErrorCodeTimeout,
				Message:    "request timed out",
				Underlying: err,
				Retryable:  true,
			}
		case 500, 502, 503:
			return &provider.ProviderError{
				Code:       provider.ErrorCodeUnavailable,
				Message:    "service unavailable",
				Underlying: err,
				Retryable:  true,
			}
		default:
			return &provider.ProviderError{
				Code:       provider.ErrorCodeNetwork,
				Message:    fmt.Sprintf("API error: %s", apiErr.Message),
				Underlying: err,
				Retryable:  true,
			}
		}
	}

	return &provider.ProviderError{
		Code:       provider.ErrorCodeNetwork,
		Message:    "network error",
		Underlying: err,
		Retryable:  true,
	}
}

// asAPIError finds a genai.APIError in err's chain. The SDK returns it by
// value, but a pointer is accepted too.
func asAPIError(err error) (genai.APIError, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return *apiErrPtr, true
	}
	return genai.APIError{}, false
}

// parseRetryAfter reads the retry delay from a google.rpc.RetryInfo detail.
func parseRetryAfter(apiErr genai.APIError) *time.Duration {
	for _, detail := range apiErr.Details {
		typ, _ := detail["@type"].(string)
		if !strings.HasSuffix(typ, "google.rpc.RetryInfo") {
			continue
		}
		delay, ok := detail["retryDelay"].(string)
		if !ok {
			continue
		}
		if d, err := time.ParseDuration(delay); err == nil {
			return &d
		}
	}
	return nil
}
