package steps

import (
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Ошибки шагов.
var (
	// ErrProbeTransport — probe не получил ответ (DNS, TLS, соединение).
	ErrProbeTransport = errors.New("probe transport error")

	// ErrProbeStatus — probe получил ответ, но не 200.
	ErrProbeStatus = errors.New("probe unexpected status")

	// ErrInvalidConfig — невалидная конфигурация шага.
	ErrInvalidConfig = errors.New("invalid step config")
)

// StatusError — probe получил ответ с неожиданным статусом.
// errors.Is(err, ErrProbeStatus) == true.
type StatusError struct {
	StatusCode int
}

// Error реализует интерфейс error.
func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d", ErrProbeStatus, e.StatusCode)
}

// Is позволяет сравнивать StatusError с ErrProbeStatus через errors.Is.
func (e *StatusError) Is(target error) bool {
	return target == ErrProbeStatus
}

var maxResponseBody int64 = 10 * 1024 * 1024 // 10 MB

// clientOptions — настройки HTTP клиента шага.
type clientOptions struct {
	Timeout     time.Duration
	ValidateSSL bool
}

// buildClient создаёт HTTP клиент с таймаутом и настройками TLS.
func buildClient(opts clientOptions) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: !opts.ValidateSSL, //nolint:gosec // opt-in через AAP_INSECURE_SKIP_VERIFY
	}

	return &http.Client{
		Timeout:   opts.Timeout,
		Transport: transport,
	}
}

// readBody читает тело ответа с ограничением размера.
// Тело сверх maxResponseBody обрезается и помечается маркером.
func readBody(resp *http.Response, logger *slog.Logger) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody+1))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if int64(len(body)) > maxResponseBody {
		logger.Warn("response body truncated", "limit_bytes", maxResponseBody)
		body = append(body[:maxResponseBody], fmt.Sprintf("...[truncated: response exceeded %d bytes]", maxResponseBody)...)
	}
	return body, nil
}

// truncate обрезает строку до указанной длины.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

