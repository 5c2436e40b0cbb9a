package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"storefront/configs"
	"storefront/internal/domain"
	"storefront/internal/ports/output"
)

const (
	defaultTextURL  = "http://localhost:8501/api/query"
	defaultVoiceURL = "http://localhost:8502/api/voice/chat"
	defaultTimeout  = 60 * time.Second

	voiceFilename    = "voice.webm"
	voiceContentType = "audio/webm"

	// emptyAnswer is used when the text endpoint succeeds without an answer
	emptyAnswer = "No se pudo obtener una respuesta"
)

var _ output.AssistantClient = (*ClientAdapter)(nil)

// ClientAdapter struct - Output adapter for the text (RAG) and voice assistant endpoints
type ClientAdapter struct {
	httpClient *http.Client
	textURL    string
	voiceURL   string
	timeout    time.Duration
}

// NewClientAdapter func - Creates new assistant client adapter
func NewClientAdapter(config configs.Assistant) (*ClientAdapter, error) {
	textURL := config.TextURL
	if textURL == "" {
		textURL = defaultTextURL
	}
	voiceURL := config.VoiceURL
	if voiceURL == "" {
		voiceURL = defaultVoiceURL
	}
	for _, raw := range []string{textURL, voiceURL} {
		if _, err := url.ParseRequestURI(raw); err != nil {
			return nil, fmt.Errorf("invalid assistant url %q: %w", raw, err)
		}
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if config.Timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	logrus.Infof("Assistant client adapter initialized with text endpoint: %s, voice endpoint: %s, timeout: %v", textURL, voiceURL, timeout)

	return &ClientAdapter{
		httpClient: httpClient,
		textURL:    textURL,
		voiceURL:   voiceURL,
		timeout:    timeout,
	}, nil
}

// TextEndpoint returns host:port of the text endpoint
func (a *ClientAdapter) TextEndpoint() string {
	return endpointName(a.textURL)
}

// VoiceEndpoint returns host:port of the voice endpoint
func (a *ClientAdapter) VoiceEndpoint() string {
	return endpointName(a.voiceURL)
}

func endpointName(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Host
}

// QueryText posts the question with its product and conversation context as JSON
func (a *ClientAdapter) QueryText(ctx context.Context, request domain.AssistantTextRequest) (*domain.AssistantReply, error) {
	body := textQueryAPIRequest{
		Query:               request.Query,
		ProductContext:      request.ProductContext,
		ConversationContext: make([]conversationTurnAPI, 0, len(request.ConversationContext)),
		UserIntent:          string(request.UserIntent),
		UseVoice:            request.UseVoice,
		EnhanceResponse:     request.EnhanceResponse,
	}
	for _, turn := range request.ConversationContext {
		body.ConversationContext = append(body.ConversationContext, conversationTurnAPI{
			Role:    string(turn.Role),
			Content: turn.Content,
		})
	}

	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal text query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.textURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create text query request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.do(req)
	if err != nil {
		return nil, fmt.Errorf("text query: %w", err)
	}
	defer resp.Body.Close()

	var apiResp textQueryAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse text query response: %v", domain.ErrEndpointUnavailable, err)
	}
	if apiResp.Success != nil && !*apiResp.Success {
		reason := apiResp.Error
		if reason == "" {
			reason = "unknown error"
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrEndpointUnavailable, reason)
	}

	answer := apiResp.Response
	if answer == "" {
		answer = apiResp.Answer
	}
	if answer == "" {
		answer = emptyAnswer
	}

	logrus.Infof("Text query answered by %s (%d chars)", a.TextEndpoint(), len(answer))

	return &domain.AssistantReply{Response: answer}, nil
}

// QueryVoice posts the recorded audio and the product context as multipart form data
func (a *ClientAdapter) QueryVoice(ctx context.Context, request domain.AssistantVoiceRequest) (*domain.AssistantReply, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	filename := request.Filename
	if filename == "" {
		filename = voiceFilename
	}
	contentType := request.ContentType
	if contentType == "" {
		contentType = voiceContentType
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="audio"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio part: %w", err)
	}
	if _, err := part.Write(request.Audio); err != nil {
		return nil, fmt.Errorf("failed to write audio part: %w", err)
	}

	if request.ProductContext != nil {
		productJSON, err := json.Marshal(request.ProductContext)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal product context: %w", err)
		}
		if err := writer.WriteField("product_context", string(productJSON)); err != nil {
			return nil, fmt.Errorf("failed to write product context: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.voiceURL, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create voice query request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := a.do(req)
	if err != nil {
		return nil, fmt.Errorf("voice query: %w", err)
	}
	defer resp.Body.Close()

	var apiResp voiceQueryAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse voice query response: %v", domain.ErrEndpointUnavailable, err)
	}
	if apiResp.Success != nil && !*apiResp.Success {
		return nil, fmt.Errorf("%w: %s", domain.ErrEndpointUnavailable, apiResp.Error)
	}

	logrus.Infof("Voice query answered by %s (transcript %d chars)", a.VoiceEndpoint(), len(apiResp.Transcript))

	return &domain.AssistantReply{
		Response:   apiResp.Response,
		Transcript: apiResp.Transcript,
	}, nil
}

// do sends the request once and classifies the outcome.
// Transport failures and 5xx wrap ErrEndpointUnavailable, 4xx wraps ErrInvalidRequest.
func (a *ClientAdapter) do(req *http.Request) (*http.Response, error) {
	resp, err := a.httpClient.Do(req)
	if err != nil {
		if a.isTransientError(err, 0) {
			logrus.Warnf("Assistant endpoint %s unreachable: %v", req.URL.Host, err)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrEndpointUnavailable, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	resp.Body.Close()

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return nil, fmt.Errorf("%w: status %d - %s", domain.ErrInvalidRequest, resp.StatusCode, string(body))
	}
	logrus.Warnf("Assistant endpoint %s failed with status %d", req.URL.Host, resp.StatusCode)
	return nil, fmt.Errorf("%w: status %d - %s", domain.ErrEndpointUnavailable, resp.StatusCode, string(body))
}

// isTransientError reports whether an error or status code means the endpoint is down rather than the request being wrong
func (a *ClientAdapter) isTransientError(err error, statusCode int) bool {
	if statusCode >= 500 && statusCode < 600 {
		return true
	}
	if statusCode >= 400 && statusCode < 500 {
		return false
	}
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	errMsg := strings.ToLower(err.Error())
	for _, pattern := range []string{
		"connection refused",
		"connection reset",
		"no such host",
		"network is unreachable",
		"i/o timeout",
		"eof",
	} {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}

// API request/response structures of the assistant endpoints

type conversationTurnAPI struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type textQueryAPIRequest struct {
	Query               string                 `json:"query"`
	ProductContext      *domain.ProductContext `json:"product_context"`
	ConversationContext []conversationTurnAPI  `json:"conversation_context"`
	UserIntent          string                 `json:"user_intent"`
	UseVoice            bool                   `json:"use_voice"`
	EnhanceResponse     bool                   `json:"enhance_response"`
}

type textQueryAPIResponse struct {
	Success  *bool  `json:"success"`
	Response string `json:"response"`
	Answer   string `json:"answer"`
	Error    string `json:"error"`
}

type voiceQueryAPIResponse struct {
	Success    *bool  `json:"success"`
	Transcript string `json:"transcript"`
	Response   string `json:"response"`
	Error      string `json:"error"`
}
