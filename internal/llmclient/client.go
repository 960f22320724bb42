// Package llmclient talks to an OpenRouter-compatible chat completion
// endpoint: request construction, retry/backoff on rate limits and
// transport errors, and a JSON-mode agent helper that loads a prompt,
// calls the model, and extracts the reply's JSON payload.
package llmclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/rs/zerolog/log"

	domainerrors "github.com/smilemakc/namazing/internal/domain/errors"
	"github.com/smilemakc/namazing/internal/jsonextract"
	"github.com/smilemakc/namazing/internal/promptstore"
)

// debugLogPath is where raw request/response payloads are appended when
// a Client has DebugLLM enabled (spec.md §6, DEBUG_LLM).
const debugLogPath = "llm_debug.log"

// DefaultModel is used when a Request leaves Model empty and no
// LLM_MODEL override is configured.
const DefaultModel = "openai/gpt-oss-20b"

// openRouterURL is the chat completions endpoint this client targets.
const openRouterURL = "https://openrouter.ai/api/v1/chat/completions"

// Request describes one chat completion call.
type Request struct {
	Model       string
	System      string
	Messages    []openai.ChatCompletionMessage
	JSONMode    bool
	Temperature float32
	MaxRetries  int
}

// Client calls the configured chat completion backend over HTTP.
type Client struct {
	APIKey   string
	Model    string
	Provider string
	HTTP     *http.Client
	DebugLLM bool
}

// NewClient builds a Client. apiKey may be empty, in which case Call
// always fails with a CredentialsMissing error; callers check for that
// to decide whether to fall back to stub output. When debugLLM is true,
// Call appends the raw request and response JSON for every live call to
// llm_debug.log (spec.md §6, DEBUG_LLM).
func NewClient(apiKey, model, provider string, debugLLM bool) *Client {
	return &Client{
		APIKey:   apiKey,
		Model:    model,
		Provider: provider,
		HTTP:     &http.Client{Timeout: 60 * time.Second},
		DebugLLM: debugLLM,
	}
}

// logDebugLLM appends a labeled raw payload to llm_debug.log. Failures to
// write are logged and otherwise swallowed; debug logging never affects
// the outcome of a call.
func (c *Client) logDebugLLM(label string, payload []byte) {
	if !c.DebugLLM {
		return
	}
	f, err := os.OpenFile(debugLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Warn().Err(err).Str("path", debugLogPath).Msg("llmclient: could not open debug log")
		return
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "[%s] %s\n", label, payload); err != nil {
		log.Warn().Err(err).Msg("llmclient: could not write debug log")
	}
}

// BackendAvailable reports whether a credential is configured. Stages
// use this to decide, before ever attempting a call, whether to route
// straight to stub output (spec.md §4.9 step 2-3).
func (c *Client) BackendAvailable() bool {
	return c.APIKey != ""
}

type chatRequestPayload struct {
	Model          string                          `json:"model"`
	Messages       []openai.ChatCompletionMessage  `json:"messages"`
	Temperature    float32                         `json:"temperature"`
	Provider       *providerPayload                `json:"provider,omitempty"`
	ResponseFormat *responseFormatPayload          `json:"response_format,omitempty"`
}

type providerPayload struct {
	Order          []string `json:"order"`
	AllowFallbacks bool     `json:"allow_fallbacks"`
}

type responseFormatPayload struct {
	Type string `json:"type"`
}

type chatResponsePayload struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Call sends req to the backend, retrying on HTTP 429 (wait
// (attempt+1)*2 seconds) and on transport/timeout errors (wait 1
// second), up to req.MaxRetries attempts (default 3 when zero).
func (c *Client) Call(ctx context.Context, req Request) (string, error) {
	if c.APIKey == "" {
		return "", domainerrors.New(domainerrors.CredentialsMissing, "OPENROUTER_API_KEY missing; set it to enable live agent runs")
	}

	model := req.Model
	if model == "" {
		model = c.Model
	}
	if model == "" {
		model = DefaultModel
	}

	maxRetries := req.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, req.Messages...)

	payload := chatRequestPayload{
		Model:       model,
		Messages:    messages,
		Temperature: req.Temperature,
	}
	if c.Provider != "" {
		payload.Provider = &providerPayload{Order: []string{c.Provider}, AllowFallbacks: false}
	}
	if req.JSONMode {
		payload.ResponseFormat = &responseFormatPayload{Type: "json_object"}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", domainerrors.Wrap(domainerrors.BackendUnavailable, "encoding chat completion request", err)
	}
	c.logDebugLLM("request", body)

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		resp, err := c.doRequest(ctx, body)
		if err != nil {
			lastErr = err
			if attempt < maxRetries-1 {
				log.Debug().Err(err).Int("attempt", attempt).Msg("llmclient: transport error, retrying")
				if !sleep(ctx, time.Second) {
					return "", ctx.Err()
				}
				continue
			}
			return "", domainerrors.Wrap(domainerrors.BackendUnavailable, "chat completion request failed", err)
		}

		if resp.status == http.StatusTooManyRequests {
			resp.close()
			if attempt < maxRetries-1 {
				wait := time.Duration(attempt+1) * 2 * time.Second
				log.Debug().Int("attempt", attempt).Dur("wait", wait).Msg("llmclient: rate limited, retrying")
				if !sleep(ctx, wait) {
					return "", ctx.Err()
				}
				continue
			}
			return "", domainerrors.New(domainerrors.BackendUnavailable, "rate limited after exhausting retries")
		}

		defer resp.close()
		if resp.status < 200 || resp.status >= 300 {
			return "", domainerrors.New(domainerrors.BackendUnavailable, fmt.Sprintf("chat completion returned status %d", resp.status))
		}

		respBody, err := io.ReadAll(resp.body)
		if err != nil {
			return "", domainerrors.Wrap(domainerrors.BackendUnavailable, "reading chat completion response", err)
		}
		c.logDebugLLM("response", respBody)

		var parsed chatResponsePayload
		if err := json.Unmarshal(respBody, &parsed); err != nil {
			return "", domainerrors.Wrap(domainerrors.BackendUnavailable, "decoding chat completion response", err)
		}
		if len(parsed.Choices) == 0 {
			return "", nil
		}
		return parsed.Choices[0].Message.Content, nil
	}

	return "", domainerrors.Wrap(domainerrors.BackendUnavailable, fmt.Sprintf("failed after %d attempts", maxRetries), lastErr)
}

type httpResult struct {
	status int
	body   io.ReadCloser
}

func (r *httpResult) close() {
	if r.body != nil {
		_ = r.body.Close()
	}
}

func (c *Client) doRequest(ctx context.Context, body []byte) (*httpResult, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, openRouterURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return nil, err
	}
	return &httpResult{status: resp.StatusCode, body: resp.Body}, nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// JSONAgentRequest configures RunJSONAgent.
type JSONAgentRequest struct {
	PromptSlug  string
	Model       string
	UserInput   string
	Temperature float32
}

// RunJSONAgent loads a prompt's system/instruction segments, calls the
// model in JSON mode, and extracts the reply's JSON payload.
func (c *Client) RunJSONAgent(ctx context.Context, store *promptstore.Store, req JSONAgentRequest) (any, error) {
	segments, err := store.Load(req.PromptSlug)
	if err != nil {
		return nil, err
	}

	content := segments.Instruction + "\n\n" + req.UserInput

	raw, err := c.Call(ctx, Request{
		Model:       req.Model,
		System:      segments.System,
		Messages:    []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: content}},
		JSONMode:    true,
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, err
	}

	return jsonextract.Extract(raw)
}
