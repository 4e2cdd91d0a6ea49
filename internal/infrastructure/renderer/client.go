package renderer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/frontandrew/rental/internal/domain"
)

// RenderRequest содержит смету и логотип для внешнего сервиса рендеринга
type RenderRequest struct {
	Quote      *domain.Quote `json:"quote"`
	LogoBase64 string        `json:"logo_base64,omitempty"`
}

// RenderResult содержит сгенерированные артефакты.
// Оба артефакта опциональны: сервис может вернуть только один из них.
type RenderResult struct {
	Success        bool    `json:"success"`
	PDFBase64      string  `json:"pdf_base64,omitempty"`
	ImageBase64    string  `json:"image_base64,omitempty"`
	ProcessingTime float64 `json:"processing_time_ms"`
	Error          string  `json:"error,omitempty"`
}

// Client - интерфейс для работы с сервисом рендеринга смет
type Client interface {
	// RenderQuote генерирует печатный документ и изображение сметы
	RenderQuote(ctx context.Context, req *RenderRequest) (*RenderResult, error)

	// Health проверяет доступность сервиса рендеринга
	Health(ctx context.Context) error
}

// httpClient - HTTP реализация клиента рендеринга
type httpClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient создает новый HTTP клиент для сервиса рендеринга
func NewHTTPClient(baseURL string, timeout time.Duration) Client {
	return &httpClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// RenderQuote отправляет смету на рендеринг
func (c *httpClient) RenderQuote(ctx context.Context, req *RenderRequest) (*RenderResult, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/render", c.baseURL)

	// Отправляем запрос с retry логикой
	var result *RenderResult
	var lastErr error

	maxRetries := 3
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			// Экспоненциальная задержка между попытками
			backoff := time.Duration(attempt) * time.Second
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		result, lastErr = c.doRequest(ctx, url, jsonData)
		if lastErr == nil {
			return result, nil
		}

		// Если это не временная ошибка, не повторяем
		if !isRetryable(lastErr) {
			break
		}
	}

	return nil, fmt.Errorf("rendering failed after %d attempts: %w", maxRetries, lastErr)
}

// doRequest выполняет HTTP запрос и обрабатывает ответ
func (c *httpClient) doRequest(ctx context.Context, url string, jsonData []byte) (*RenderResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Читаем тело ответа
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("renderer service returned status %d: %s", resp.StatusCode, string(body))
	}

	// Парсим ответ
	var result RenderResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &result, nil
}

// Health проверяет доступность сервиса рендеринга
func (c *httpClient) Health(ctx context.Context) error {
	url := fmt.Sprintf("%s/health", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("renderer service is unhealthy: status %d", resp.StatusCode)
	}

	return nil
}

// isRetryable определяет, стоит ли повторять запрос после ошибки
func isRetryable(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	// Ошибки соединения тоже временные
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
