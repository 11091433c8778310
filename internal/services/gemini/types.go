// File: internal/services/gemini/types.go
package gemini

// Turn roles used in conversation history.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// InlineData carries base64-encoded media paired with a prompt part.
type InlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

// Part is one unit of content: text or inline media, never both.
type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inline_data,omitempty"`
}

// Content is one turn of conversation, or an unattributed prompt when Role
// is empty.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// GenerateContentRequest is the generateContent call payload.
type GenerateContentRequest struct {
	Contents          []Content `json:"contents"`
	SystemInstruction *Content  `json:"systemInstruction,omitempty"`
}

type Candidate struct {
	Content Content `json:"content"`
}

// GenerateContentResponse is the parsed generateContent response body.
type GenerateContentResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// FirstText returns the first text part of the first candidate, or "" when
// the model returned nothing usable.
func (r *GenerateContentResponse) FirstText() string {
	if r == nil || len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return ""
	}
	return r.Candidates[0].Content.Parts[0].Text
}

// TextRequest builds a single-prompt request with no role or system
// instruction attached.
func TextRequest(prompt string) *GenerateContentRequest {
	return &GenerateContentRequest{
		Contents: []Content{{Parts: []Part{{Text: prompt}}}},
	}
}

// apiErrorEnvelope is the provider's error body. Only the status marker is
// inspected, to classify transient unavailability.
type apiErrorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
