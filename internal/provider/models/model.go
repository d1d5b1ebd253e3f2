package models

// Message is one turn of a conversation sent to the model.
type Message struct {
	Role    string // "user" or "model"
	Content string
}

// GenerateRequest encapsulates all parameters for a generation request.
type GenerateRequest struct {
	// SystemInstruction sets the model's behaviour for the whole request.
	SystemInstruction string

	// Prompt is the user's input for this turn
	Prompt string

	// History contains earlier turns, oldest first
	History []Message

	// Config contains optional generation parameters
	Config *GenerateConfig
}

// GenerateConfig contains optional generation parameters.
// Pointer fields distinguish between "not set" and "zero value".
type GenerateConfig struct {
	Temperature     *float32
	MaxOutputTokens int32

	// JSONMode asks the model to reply with a single JSON document.
	JSONMode bool
}

// GenerateResponse contains the model's response and metadata.
type GenerateResponse struct {
	Content  ResponseContent
	Metadata ResponseMetadata
}

// ResponseContent is a union type representing different response types.
type ResponseContent struct {
	Type ResponseType

	// For Type = ResponseTypeText
	Text string

	// For Type = ResponseTypeRefusal (safety block, policy violation)
	RefusalReason string
}

// ResponseType indicates the type of response from the model.
type ResponseType string

const (
	ResponseTypeText    ResponseType = "text"
	ResponseTypeRefusal ResponseType = "refusal"
)

// ResponseMetadata contains information about the generation.
type ResponseMetadata struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int

	ModelUsed string
	LatencyMs int64
}
