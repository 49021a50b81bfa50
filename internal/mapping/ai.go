package mapping

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
	"xlcompare/internal/logger"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// AIMapping represents an AI-suggested column mapping with confidence
type AIMapping struct {
	DerivedColumn string  `json:"derived_column"`
	SourceColumn  string  `json:"source_column"`
	Confidence    float64 `json:"confidence"`
}

// AIMapper suggests mappings between derived and source column headers
// that did not match by name.
type AIMapper struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewAIMapper creates a new AI mapper instance
func NewAIMapper(apiKey string) (*AIMapper, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	logger.Info("Initializing AI mapper with Gemini API")

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		logger.Error("Failed to create Gemini client", "error", err)
		return nil, fmt.Errorf("failed to create Gemini client: %v", err)
	}

	modelName := "gemini-2.0-flash-exp"
	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.1) // Low temperature for consistent results

	logger.Info("AI mapper initialized", "model", modelName)

	return &AIMapper{
		client: client,
		model:  model,
	}, nil
}

// Close cleans up the AI mapper resources
func (ai *AIMapper) Close() error {
	if ai.client != nil {
		return ai.client.Close()
	}
	return nil
}

// SuggestMappings asks the model to map derived column headers onto source
// column headers.
func (ai *AIMapper) SuggestMappings(derivedColumns, sourceColumns []string) ([]AIMapping, error) {
	if len(derivedColumns) == 0 || len(sourceColumns) == 0 {
		return nil, fmt.Errorf("both derived and source columns must be provided")
	}

	logger.Info("Generating AI column mappings",
		"derived_count", len(derivedColumns),
		"source_count", len(sourceColumns))

	// 50 columns is fine, only chunk if we have 100+ columns
	if len(derivedColumns) > 100 {
		logger.Info("Large request detected, processing in chunks",
			"total_columns", len(derivedColumns))
		return ai.suggestInChunks(derivedColumns, sourceColumns, 50)
	}

	return ai.suggestSingleBatch(derivedColumns, sourceColumns)
}

func (ai *AIMapper) suggestInChunks(derivedColumns, sourceColumns []string, chunkSize int) ([]AIMapping, error) {
	var allMappings []AIMapping
	totalChunks := (len(derivedColumns) + chunkSize - 1) / chunkSize

	for i := 0; i < len(derivedColumns); i += chunkSize {
		end := i + chunkSize
		if end > len(derivedColumns) {
			end = len(derivedColumns)
		}

		chunk := derivedColumns[i:end]
		chunkNum := (i / chunkSize) + 1

		logger.Info("Processing chunk",
			"chunk", chunkNum,
			"total_chunks", totalChunks,
			"size", len(chunk))

		chunkMappings, err := ai.suggestSingleBatch(chunk, sourceColumns)
		if err != nil {
			logger.Error("Failed to process chunk", "chunk", chunkNum, "error", err)
			// Continue with other chunks instead of failing completely
			continue
		}

		allMappings = append(allMappings, chunkMappings...)

		if chunkNum < totalChunks {
			time.Sleep(2 * time.Second)
		}
	}

	logger.Info("All chunks processed", "total_mappings", len(allMappings))
	return allMappings, nil
}

func (ai *AIMapper) suggestSingleBatch(derivedColumns, sourceColumns []string) ([]AIMapping, error) {
	prompt := ai.buildMappingPrompt(derivedColumns, sourceColumns)

	timeout := 60 * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logger.Info("Sending request to Gemini API", "timeout", timeout, "prompt_length", len(prompt))

	start := time.Now()
	resp, err := ai.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			logger.Error("Gemini API request timed out", "timeout", timeout)
			return nil, fmt.Errorf("API request timed out after %v", timeout)
		}
		logger.Error("Gemini API request failed", "error", err, "duration", time.Since(start))
		return nil, fmt.Errorf("failed to generate AI response: %v", err)
	}

	logger.Info("Received response from Gemini API", "duration", time.Since(start))
	return ai.processAPIResponse(resp)
}

func (ai *AIMapper) processAPIResponse(resp *genai.GenerateContentResponse) ([]AIMapping, error) {
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		logger.Error("No response candidates received from Gemini API")
		return nil, fmt.Errorf("no response generated from AI")
	}

	// Extract text from response
	var responseText string
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			responseText += string(textPart)
		}
	}

	mappings, err := ai.parseMappingResponse(responseText)
	if err != nil {
		logger.Error("Failed to parse AI response", "error", err)
		return nil, fmt.Errorf("failed to parse AI response: %v", err)
	}

	logger.Info("AI response parsed", "mappings_found", len(mappings))
	saveAISuggestionsToFile(responseText, mappings)
	return mappings, nil
}

// buildMappingPrompt creates a prompt for the AI to generate column mappings
func (ai *AIMapper) buildMappingPrompt(derivedColumns, sourceColumns []string) string {
	prompt := `You are an expert data analyst helping to reconcile two versions of the same report.

TASK: Map each derived-report column to the matching source-report column, or mark as "NO_MATCH" if uncertain.

DERIVED COLUMNS (from the rebuilt report):
`
	for _, col := range derivedColumns {
		prompt += fmt.Sprintf("- %s\n", col)
	}

	prompt += `
SOURCE COLUMNS (from the source-of-truth report):
`
	for _, col := range sourceColumns {
		prompt += fmt.Sprintf("- %s\n", col)
	}

	prompt += `
INSTRUCTIONS:
1. Only suggest mappings you are confident about (>80% certainty)
2. Consider semantic meaning, not just text similarity
3. Map each derived column to AT MOST ONE source column
4. If uncertain or no clear match exists, use "NO_MATCH"

OUTPUT FORMAT (one line per derived column):
DerivedColumn|SourceColumn|Confidence

EXAMPLES:
Customer Name|Name|0.95
Cust_ID|ID|0.90
Net Amt|Net Amount|0.95
Random_Data|NO_MATCH|0.00

Now provide mappings for the derived columns:`

	return prompt
}

// parseMappingResponse parses the AI response into structured mappings
func (ai *AIMapper) parseMappingResponse(response string) ([]AIMapping, error) {
	var mappings []AIMapping
	lines := strings.Split(strings.TrimSpace(response), "\n")

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "DerivedColumn|") {
			continue
		}

		parts := strings.Split(line, "|")
		if len(parts) != 3 {
			continue
		}

		derivedCol := strings.TrimSpace(parts[0])
		sourceCol := strings.TrimSpace(parts[1])
		confidenceStr := strings.TrimSpace(parts[2])

		var confidence float64
		if _, err := fmt.Sscanf(confidenceStr, "%f", &confidence); err != nil {
			confidence = 0.0
		}

		// Skip if NO_MATCH or low confidence
		if sourceCol == "NO_MATCH" || confidence < 0.8 {
			continue
		}

		mappings = append(mappings, AIMapping{
			DerivedColumn: derivedCol,
			SourceColumn:  sourceCol,
			Confidence:    confidence,
		})
	}

	return mappings, nil
}

// GetGeminiAPIKey gets the API key from environment variable
func GetGeminiAPIKey() string {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		logger.Warn("GEMINI_API_KEY environment variable not set")
	}
	return apiKey
}
