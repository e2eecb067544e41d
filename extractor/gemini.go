package extractor

import (
	"context"
	"fmt"

	"press-lens/models"
	"press-lens/prompt"

	"google.golang.org/genai"
)

type GeminiProvider struct {
	client *genai.Client
}

func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiProvider{client: client}, nil
}

func (p *GeminiProvider) Name() string { return "google" }

func (p *GeminiProvider) Generate(ctx context.Context, call Call) (*Reply, error) {
	result, err := p.client.Models.GenerateContent(ctx, call.Model, geminiContents(call), geminiConfig(call))
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("empty response from gemini")
	}

	reply := &Reply{Text: result.Text(), ModelVersion: result.ModelVersion}
	if result.UsageMetadata != nil {
		reply.Usage = Usage{
			InputTokens:  int64(result.UsageMetadata.PromptTokenCount),
			OutputTokens: int64(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int64(result.UsageMetadata.TotalTokenCount),
		}
	}
	return reply, nil
}

func geminiConfig(call Call) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: call.System}}},
		Temperature:       genai.Ptr(call.Temperature),
		MaxOutputTokens:   call.MaxOutputTokens,
		ResponseMIMEType:  "application/json",
		ResponseSchema:    geminiSchema(call.Schema),
	}
}

// geminiContents 는 첫 사용자 턴에만 이미지를 붙인다.
func geminiContents(call Call) []*genai.Content {
	contents := make([]*genai.Content, 0, len(call.Turns))
	for i, t := range call.Turns {
		var role genai.Role = genai.RoleUser
		if t.Role == prompt.RoleModel {
			role = genai.RoleModel
		}
		parts := []*genai.Part{genai.NewPartFromText(t.Text)}
		if i == 0 && call.Image != nil && len(call.Image.Data) > 0 {
			parts = append(parts, genai.NewPartFromBytes(call.Image.Data, call.Image.MIMEType))
		}
		contents = append(contents, genai.NewContentFromParts(parts, role))
	}
	return contents
}

func geminiSchema(f models.FieldSpec) *genai.Schema {
	s := &genai.Schema{
		Description: f.Description,
		Enum:        f.Enum,
		Minimum:     f.Minimum,
		Maximum:     f.Maximum,
	}
	switch f.Type {
	case models.FieldObject:
		s.Type = genai.TypeObject
	case models.FieldArray:
		s.Type = genai.TypeArray
	case models.FieldInteger:
		s.Type = genai.TypeInteger
	case models.FieldNumber:
		s.Type = genai.TypeNumber
	default:
		s.Type = genai.TypeString
	}
	if f.MinItems != nil {
		s.MinItems = genai.Ptr(int64(*f.MinItems))
	}
	if f.MaxItems != nil {
		s.MaxItems = genai.Ptr(int64(*f.MaxItems))
	}
	if f.Items != nil {
		s.Items = geminiSchema(*f.Items)
	}
	if len(f.Fields) > 0 {
		s.Properties = make(map[string]*genai.Schema, len(f.Fields))
		for _, c := range f.Fields {
			s.Properties[c.Name] = geminiSchema(c)
			s.PropertyOrdering = append(s.PropertyOrdering, c.Name)
		}
		s.Required = f.Required()
	}
	return s
}
