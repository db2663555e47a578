package ai

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"sudarshan-portal/pkg/config"
	"sudarshan-portal/pkg/telemetry"

	"github.com/Role1776/gigago"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	gigaChatBaseURL  = "https://gigachat.devices.sberbank.ru/api/v1"
	gigaChatOAuthURL = "https://ngw.devices.sberbank.ru:9443/api/v2/oauth"
	gigaChatModel    = "GigaChat"

	// tokenLeeway refreshes the cached token slightly before it expires.
	tokenLeeway = 30 * time.Second
	// defaultTokenTTL is used when the OAuth response carries no expiry.
	defaultTokenTTL = 25 * time.Minute
)

// GigaChat sends text prompts through the gigago SDK and image prompts
// through the REST files + chat completions endpoints.
type GigaChat struct {
	client     *gigago.Client
	config     *config.AIConfig
	logger     *zap.Logger
	httpClient *http.Client
	model      string
	baseURL    string
	oauthURL   string

	// generate handles prompts without an image.
	generate func(ctx context.Context, system, user string) (string, error)

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

func NewGigaChat(ctx context.Context, cfg *config.AIConfig, logger *zap.Logger) (*GigaChat, error) {
	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	g := newGigaChat(cfg, telemetry.NewHTTPClient(transport), logger)
	g.client = client
	g.generate = g.generateWithSDK

	logger.Info("GigaChat client initialized", zap.String("model", g.model))

	return g, nil
}

func newGigaChat(cfg *config.AIConfig, httpClient *http.Client, logger *zap.Logger) *GigaChat {
	model := cfg.Model
	if model == "" {
		model = gigaChatModel
	}
	return &GigaChat{
		config:     cfg,
		logger:     logger,
		httpClient: httpClient,
		model:      model,
		baseURL:    gigaChatBaseURL,
		oauthURL:   gigaChatOAuthURL,
	}
}

func (g *GigaChat) GenerateText(ctx context.Context, p Prompt) (string, error) {
	if p.Image == nil {
		text, err := g.generate(ctx, p.System, p.User)
		if err != nil {
			return "", err
		}
		g.logger.Info("GigaChat text response received",
			zap.String("session_id", p.SessionID),
			zap.Int("length", len(text)),
		)
		return text, nil
	}

	data, err := p.Image.Bytes()
	if err != nil {
		return "", err
	}

	fileID, err := g.uploadFile(ctx, p.SessionID, data, p.Image.MIMEType)
	if err != nil {
		return "", err
	}

	return g.chatWithAttachment(ctx, p, fileID)
}

func (g *GigaChat) generateWithSDK(ctx context.Context, system, user string) (string, error) {
	model := g.client.GenerativeModel(g.model)
	model.SystemInstruction = system
	model.Temperature = 0.3

	resp, err := model.Generate(ctx, []gigago.Message{
		{Role: gigago.RoleUser, Content: user},
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from GigaChat")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// token returns a cached access token, requesting a new one when the cached
// token is missing or about to expire.
func (g *GigaChat) token(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.accessToken != "" && time.Now().Add(tokenLeeway).Before(g.expiresAt) {
		return g.accessToken, nil
	}

	rqUID := uuid.New().String()

	form := url.Values{}
	form.Set("scope", g.config.Scope)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.oauthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create OAuth request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("RqUID", rqUID)
	// the key is already base64-encoded client credentials
	req.Header.Set("Authorization", "Basic "+g.config.APIKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to get access token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		g.logger.Error("OAuth request failed",
			zap.Int("status", resp.StatusCode),
			zap.String("response", string(body)),
			zap.String("rq_uid", rqUID),
		)
		return "", fmt.Errorf("OAuth failed with status %d: %s", resp.StatusCode, string(body))
	}

	var oauthResp struct {
		AccessToken string `json:"access_token"`
		ExpiresAt   int64  `json:"expires_at"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&oauthResp); err != nil {
		return "", fmt.Errorf("failed to decode OAuth response: %w", err)
	}
	if oauthResp.AccessToken == "" {
		return "", fmt.Errorf("empty access token in OAuth response")
	}

	expiresAt := time.Now().Add(defaultTokenTTL)
	if oauthResp.ExpiresAt > 0 {
		expiresAt = time.UnixMilli(oauthResp.ExpiresAt)
	}

	g.accessToken = oauthResp.AccessToken
	g.expiresAt = expiresAt

	g.logger.Info("Access token obtained", zap.Time("expires_at", expiresAt))

	return g.accessToken, nil
}

func (g *GigaChat) uploadFile(ctx context.Context, sessionID string, data []byte, mimeType string) (string, error) {
	token, err := g.token(ctx)
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	// "general" makes the file usable as a chat attachment
	if err := writer.WriteField("purpose", "general"); err != nil {
		return "", fmt.Errorf("failed to write purpose field: %w", err)
	}

	part, err := writer.CreatePart(map[string][]string{
		"Content-Type":        {mimeType},
		"Content-Disposition": {fmt.Sprintf(`form-data; name="file"; filename="%s"`, uploadName(mimeType))},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("failed to copy file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/files", &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Session-ID", sessionID)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		g.invalidateToken()
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var uploadResp struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&uploadResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if uploadResp.ID == "" {
		return "", fmt.Errorf("upload response has no file id")
	}

	g.logger.Info("File uploaded to GigaChat",
		zap.String("session_id", sessionID),
		zap.String("file_id", uploadResp.ID),
	)

	return uploadResp.ID, nil
}

type chatMessage struct {
	Role        string   `json:"role"`
	Content     string   `json:"content"`
	Attachments []string `json:"attachments,omitempty"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (g *GigaChat) chatWithAttachment(ctx context.Context, p Prompt, fileID string) (string, error) {
	token, err := g.token(ctx)
	if err != nil {
		return "", err
	}

	var messages []chatMessage
	if p.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: p.System})
	}
	messages = append(messages, chatMessage{
		Role:        "user",
		Content:     p.User,
		Attachments: []string{fileID},
	})

	payload, err := json.Marshal(chatRequest{
		Model:       g.model,
		Messages:    messages,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Session-ID", p.SessionID)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		g.invalidateToken()
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("chat completion failed with status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no response from GigaChat")
	}

	text := strings.TrimSpace(chatResp.Choices[0].Message.Content)

	g.logger.Info("GigaChat vision response received",
		zap.String("session_id", p.SessionID),
		zap.String("file_id", fileID),
		zap.Int("length", len(text)),
	)

	return text, nil
}

// invalidateToken drops the cached token so the next call re-authenticates.
func (g *GigaChat) invalidateToken() {
	g.mu.Lock()
	g.accessToken = ""
	g.expiresAt = time.Time{}
	g.mu.Unlock()
}

func uploadName(mimeType string) string {
	switch mimeType {
	case "image/png":
		return "document.png"
	case "image/webp":
		return "document.webp"
	case "image/gif":
		return "document.gif"
	default:
		return "document.jpg"
	}
}

func (g *GigaChat) Close() error {
	if g.client != nil {
		g.client.Close()
	}
	return nil
}
