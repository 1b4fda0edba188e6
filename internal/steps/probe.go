package steps

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/shaiso/ritm-launch/internal/config"
	"github.com/shaiso/ritm-launch/internal/telemetry"
)

// Probe — connectivity probe.
//
// Делает один GET к заведомо рабочему внешнему эндпоинту, чтобы отличить
// "у нас не работает HTTPS" от "контроллер отказал". Сертификат probe
// проверяется всегда.
type Probe struct {
	cfg    config.ProbeConfig
	client *http.Client
	logger *slog.Logger
}

// NewProbe создаёт Probe.
func NewProbe(cfg config.ProbeConfig, logger *slog.Logger) *Probe {
	if cfg.Timeout <= 0 {
		cfg.Timeout = config.DefaultProbeTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = config.DefaultProbeUserAgent
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Probe{
		cfg:    cfg,
		client: buildClient(clientOptions{Timeout: cfg.Timeout, ValidateSSL: true}),
		logger: logger,
	}
}

// URL возвращает адрес probe.
func (p *Probe) URL() string {
	return p.cfg.URL
}

// Check выполняет probe. Успех — HTTP 200.
//
// Ошибки: ErrInvalidConfig, ErrProbeTransport, *StatusError (ErrProbeStatus).
func (p *Probe) Check(ctx context.Context) error {
	if p.cfg.URL == "" {
		return fmt.Errorf("%w: probe url is required", ErrInvalidConfig)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.URL, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrInvalidConfig, err)
	}
	req.Header.Set("User-Agent", p.cfg.UserAgent)

	logger := telemetry.FromContext(ctx, p.logger)
	logger.Debug("probe request", "url", p.cfg.URL)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProbeTransport, err)
	}
	defer resp.Body.Close()

	body, err := readBody(resp, logger)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProbeTransport, err)
	}

	logger.Debug("probe response", "status_code", resp.StatusCode, "body", truncate(string(body), 200))

	if resp.StatusCode != http.StatusOK {
		return &StatusError{StatusCode: resp.StatusCode}
	}
	return nil
}
