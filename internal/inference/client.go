package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Client chat-completions 协议的推理客户端
type Client struct {
	endpoint   string
	deployment string
	apiKey     string
	httpClient *http.Client
}

// NewClient 创建推理客户端
// timeout 为单次调用上限，0 取 60s；调用级 ctx 可进一步收紧
func NewClient(endpoint, deployment, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		deployment: deployment,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

const systemPrompt = "You are an assistant for a supplemental pay system. " +
	"Answer using only the facts provided; if the data does not support an answer, say so."

// Generate 生成文本；事实数据以 JSON 附在提示之后
func (c *Client) Generate(ctx context.Context, prompt string, contextFacts map[string]any) (string, error) {
	if c.endpoint == "" {
		return "", &Error{Kind: KindFatal, Msg: "inference endpoint not configured"}
	}

	user := prompt
	if len(contextFacts) > 0 {
		facts, err := json.MarshalIndent(contextFacts, "", "  ")
		if err != nil {
			return "", &Error{Kind: KindFatal, Msg: fmt.Sprintf("marshal facts: %v", err)}
		}
		user = prompt + "\n\nSupporting data:\n" + string(facts)
	}

	body, err := json.Marshal(chatRequest{
		Model: c.deployment,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", &Error{Kind: KindFatal, Msg: fmt.Sprintf("marshal request: %v", err)}
	}

	url := c.endpoint + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", &Error{Kind: KindFatal, Msg: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("api-key", c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// 网络层失败视为瞬态
		return "", &Error{Kind: KindTransient, Msg: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Kind: KindTransient, Msg: err.Error()}
	}

	if resp.StatusCode != http.StatusOK {
		kind := KindFatal
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			kind = KindTransient
		}
		return "", &Error{Kind: kind, Status: resp.StatusCode, Msg: truncate(string(data), 200)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", &Error{Kind: KindFatal, Status: resp.StatusCode, Msg: "malformed response body"}
	}
	if parsed.Error != nil {
		return "", &Error{Kind: KindFatal, Status: resp.StatusCode, Msg: parsed.Error.Message}
	}
	if len(parsed.Choices) == 0 {
		return "", &Error{Kind: KindFatal, Status: resp.StatusCode, Msg: "empty choices"}
	}

	log.Printf("[inference] %s responded in %v", c.deployment, time.Since(start).Round(time.Millisecond))
	return parsed.Choices[0].Message.Content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
