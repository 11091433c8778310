// File: internal/services/analysis_service.go
package services

import (
	"context"
	"fmt"

	"github.com/agrisense/agri-gateway/internal/domain"
	"github.com/agrisense/agri-gateway/internal/services/gemini"
)

// analysisPromptFormat fixes the five-field diagnosis layout. The structure
// is advisory to the model; the response text is returned verbatim.
const analysisPromptFormat = `Analyze the image of the plant and provide the output in the following strict format. Respond entirely in %s. Use these exact labels (translated to the target language) followed by a colon and a space.

Plant Name: [Identified Plant Name]
Condition: [Healthy/Diseased/Pest Infestation]
Disease/Pest Found: [Name of the disease or pest, or "None"]
Suggested Treatment/Care: [Provide a detailed, step-by-step plan for treatment if a disease is found. If the plant is healthy, provide general care tips including watering, sunlight, and soil requirements.]`

// AnalysisService runs the stateless single-shot plant image diagnosis.
type AnalysisService struct {
	client gemini.Client
	model  string
	logger Logger
}

func NewAnalysisService(client gemini.Client, model string, logger Logger) (*AnalysisService, error) {
	if client == nil {
		return nil, NewValidationError("constructor", "gemini client is required")
	}
	if model == "" {
		return nil, NewValidationError("constructor", "text model is required")
	}
	if logger == nil {
		logger = NewNoOpLogger()
	}

	return &AnalysisService{client: client, model: model, logger: logger}, nil
}

// AnalyzePlant pairs the fixed diagnosis prompt with the inline image bytes
// and returns the model's raw text.
func (s *AnalysisService) AnalyzePlant(ctx context.Context, imageBase64, imageMimeType, language string) (string, error) {
	if imageBase64 == "" || imageMimeType == "" {
		return "", NewValidationError("analyze_plant", "Image data is required")
	}

	languageName := "English"
	if language == domain.LanguageMalayalam {
		languageName = "Malayalam"
	}

	req := &gemini.GenerateContentRequest{
		Contents: []gemini.Content{{
			Parts: []gemini.Part{
				{Text: fmt.Sprintf(analysisPromptFormat, languageName)},
				{InlineData: &gemini.InlineData{MIMEType: imageMimeType, Data: imageBase64}},
			},
		}},
	}

	resp, err := s.client.GenerateContent(ctx, s.model, req)
	if err != nil {
		return "", NewUpstreamError("analyze_plant", err)
	}

	text := resp.FirstText()
	if text == "" {
		return "", NewEmptyResponseError("analyze_plant")
	}

	return text, nil
}
