package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/dagrapport/internal/util"
)

// OllamaProvider implements the Provider interface for Ollama local models.
// Reports describe children; a local model keeps the form on the machine.
type OllamaProvider struct {
	baseURL string
	api     jsonClient
	config  Config
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	System  string        `json:"system,omitempty"`
	Options ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float32 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`

	// Only present when done
	PromptEvalCount int `json:"prompt_eval_count,omitempty"`
	EvalCount       int `json:"eval_count,omitempty"`
}

type ollamaTags struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// NewOllamaProvider creates a new Ollama provider
func NewOllamaProvider(config Config) (*OllamaProvider, error) {
	if config.Model == "" {
		return nil, fmt.Errorf("ollama model must be specified (e.g., llama3.1:8b, mistral)")
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second // first load of a local model is slow
	}

	return &OllamaProvider{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		api: jsonClient{
			provider:  "Ollama",
			http:      util.NewHTTPClient(timeout, config.HTTPProxy, config.HTTPSProxy, config.NoProxy),
			decodeErr: decodeOllamaError,
		},
		config: config,
	}, nil
}

func (p *OllamaProvider) Name() string {
	return "ollama"
}

func (p *OllamaProvider) Model() string {
	return p.config.Model
}

func (p *OllamaProvider) Endpoint() string {
	return p.baseURL
}

// IsAvailable reports whether Ollama answers. A server that lists models but not the
// configured one is still available; Ollama pulls on first use when allowed.
func (p *OllamaProvider) IsAvailable(ctx context.Context) bool {
	log := zap.L().Named("llm")

	var tags ollamaTags
	if err := p.api.do(ctx, http.MethodGet, p.baseURL+"/api/tags", nil, &tags); err != nil {
		log.Warn("Ollama availability check failed", zap.String("base_url", p.baseURL), zap.Error(err))
		return false
	}

	if len(tags.Models) > 0 && !hasOllamaModel(tags, p.config.Model) {
		log.Warn("Ollama model not pulled", zap.String("model", p.config.Model))
	}
	return true
}

// Generate runs a completion using Ollama's generate endpoint
func (p *OllamaProvider) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	apiReq := ollamaRequest{
		Model:  p.config.model(req.Model, ""),
		Prompt: req.Prompt,
		System: req.System,
		Options: ollamaOptions{
			Temperature: req.Temperature,
			NumPredict:  p.config.maxTokens(req.MaxTokens),
		},
	}

	var resp ollamaResponse
	if err := p.api.do(ctx, http.MethodPost, p.baseURL+"/api/generate", apiReq, &resp); err != nil {
		return nil, err
	}

	text := strings.TrimSpace(resp.Response)

	// Some models report no counts; estimate at four bytes per token
	tokens := resp.PromptEvalCount + resp.EvalCount
	if tokens == 0 {
		tokens = (len(req.System) + len(req.Prompt) + len(text)) / 4
	}

	model := resp.Model
	if model == "" {
		model = apiReq.Model
	}

	return &GenerateResponse{
		Text:       text,
		Model:      model,
		TokensUsed: tokens,
	}, nil
}

// hasOllamaModel matches "llama3.1" against "llama3.1:latest"
func hasOllamaModel(tags ollamaTags, model string) bool {
	for _, m := range tags.Models {
		if m.Name == model || strings.TrimSuffix(m.Name, ":latest") == model {
			return true
		}
	}
	return false
}

func decodeOllamaError(body []byte) (string, string) {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &e) != nil {
		return "", ""
	}
	return "", e.Error
}
