package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"quizdeck/internal/config"
	"quizdeck/internal/domain"
	"quizdeck/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

const promptTemplate = `Generate %d multiple choice questions based on this text: "%s".
Each question should test understanding of key concepts from the text.
Provide 4 distinct options for each question. Only one of the options should be correct.

Respond with ONLY a JSON array in the following format:
[
  {
    "text": "Question text here?",
    "options": ["First option", "Second option", "Third option", "Fourth option"],
    "correctOption": "A"
  }
]

Rules:
1. "options" must contain exactly 4 strings
2. "correctOption" must be one of "A", "B", "C", "D", naming the correct entry by position
3. Do not include markdown fences or any text outside the JSON array`

// llmCallTimeout bounds each generation call so a hung upstream cannot pin a
// request forever.
const llmCallTimeout = 60 * time.Second

// LLMQuestionGenerator implements domain.QuestionGenerator over a langchaingo
// model.
type LLMQuestionGenerator struct {
	llm          llms.Model
	numQuestions int
}

// NewLLMQuestionGenerator creates a generator that asks the model for
// numQuestions questions per call.
func NewLLMQuestionGenerator(llm llms.Model, numQuestions int) domain.QuestionGenerator {
	return &LLMQuestionGenerator{
		llm:          llm,
		numQuestions: numQuestions,
	}
}

// NewLLMFromConfig constructs the langchaingo model named by config:
// "gemini" for the hosted Gemini API, "ollama" for a local server.
func NewLLMFromConfig(ctx context.Context, cfg config.LLMConfig) (llms.Model, error) {
	switch cfg.Source {
	case "gemini":
		if cfg.Gemini.APIKey == "" {
			return nil, fmt.Errorf("gemini API key cannot be empty")
		}
		return googleai.New(ctx,
			googleai.WithAPIKey(cfg.Gemini.APIKey),
			googleai.WithDefaultModel(cfg.Gemini.Model),
		)
	case "ollama":
		httpClient := &http.Client{Timeout: llmCallTimeout}
		return ollama.New(
			ollama.WithServerURL(cfg.Ollama.ServerURL),
			ollama.WithModel(cfg.Ollama.Model),
			ollama.WithHTTPClient(httpClient),
		)
	default:
		return nil, fmt.Errorf("unsupported llm source: %s", cfg.Source)
	}
}

// GenerateQuestions sends the extracted text to the model and parses the
// returned JSON array of questions. Upstream failures and unparseable
// responses surface as domain.GenerationError.
func (g *LLMQuestionGenerator) GenerateQuestions(ctx context.Context, text string) ([]domain.Question, error) {
	l := logger.Get()

	prompt := fmt.Sprintf(promptTemplate, g.numQuestions, text)

	ctx, cancel := context.WithTimeout(ctx, llmCallTimeout)
	defer cancel()

	response, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt, llms.WithTemperature(0.2))
	if err != nil {
		l.Error("LLM question generation call failed", zap.Error(err))
		return nil, domain.NewGenerationError(err)
	}

	l.Debug("Raw LLM response received", zap.String("raw_response", response))

	jsonText := extractJSONArray(response)
	if jsonText == "" {
		l.Error("No JSON array found in LLM response", zap.String("response", response))
		return nil, domain.NewGenerationError(fmt.Errorf("no JSON array in LLM response"))
	}

	var parsed []struct {
		Text          string   `json:"text"`
		Options       []string `json:"options"`
		CorrectOption string   `json:"correctOption"`
	}
	if err := json.Unmarshal([]byte(jsonText), &parsed); err != nil {
		l.Error("Failed to unmarshal LLM question JSON",
			zap.Error(err),
			zap.String("json_text", jsonText))
		return nil, domain.NewGenerationError(fmt.Errorf("failed to parse LLM response: %w", err))
	}

	questions := make([]domain.Question, 0, len(parsed))
	for _, q := range parsed {
		questions = append(questions, domain.Question{
			Text:          q.Text,
			Options:       q.Options,
			CorrectOption: strings.ToUpper(strings.TrimSpace(q.CorrectOption)),
		})
	}

	l.Info("Parsed LLM question response", zap.Int("num_questions", len(questions)))
	return questions, nil
}

// extractJSONArray pulls the first JSON array out of a completion that may be
// wrapped in markdown fences, <think> blocks, or prose.
func extractJSONArray(response string) string {
	cleaned := strings.TrimSpace(response)

	if thinkStart := strings.Index(cleaned, "<think>"); thinkStart != -1 {
		if thinkEnd := strings.Index(cleaned, "</think>"); thinkEnd != -1 && thinkEnd > thinkStart {
			cleaned = cleaned[:thinkStart] + cleaned[thinkEnd+len("</think>"):]
			cleaned = strings.TrimSpace(cleaned)
		}
	}

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start == -1 || end == -1 || end <= start {
		return ""
	}
	return cleaned[start : end+1]
}
