package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/shaiso/ritm-launch/internal/config"
	"github.com/shaiso/ritm-launch/internal/domain"
	"github.com/shaiso/ritm-launch/internal/telemetry"
)

// LaunchKind — класс результата launch-запроса.
type LaunchKind string

const (
	// LaunchSucceeded — 201 и разобранный идентификатор job.
	LaunchSucceeded LaunchKind = "succeeded"

	// LaunchRejected — контроллер ответил не 201.
	LaunchRejected LaunchKind = "rejected"

	// LaunchTransportFailed — ответ не получен.
	LaunchTransportFailed LaunchKind = "transport_failed"

	// LaunchMalformed — 201, но тело не соответствует контракту.
	LaunchMalformed LaunchKind = "malformed"
)

// LaunchResult — результат одного launch-запроса.
//
// Заполнены только поля, относящиеся к Kind:
//   - succeeded: JobID
//   - rejected: StatusCode, Body
//   - transport_failed: Err
//   - malformed: StatusCode, Body, Err
type LaunchResult struct {
	Kind       LaunchKind
	JobID      string
	StatusCode int
	Body       string
	Err        error
}

// launchPayload — тело запроса на запуск job template.
type launchPayload struct {
	ExtraVars domain.OrchestrationVariables `json:"extra_vars"`
}

// Launcher запускает job template на контроллере.
type Launcher struct {
	cfg    config.ControllerConfig
	client *http.Client
	logger *slog.Logger
}

// NewLauncher создаёт Launcher.
//
// Если cfg.InsecureSkipVerify, проверка сертификата контроллера отключается
// и об этом пишется предупреждение.
func NewLauncher(cfg config.ControllerConfig, logger *slog.Logger) *Launcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = config.DefaultLaunchTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.InsecureSkipVerify {
		logger.Warn("TLS certificate verification DISABLED for automation controller",
			"controller_url", cfg.BaseURL,
			"env", config.EnvInsecureSkipVerify,
		)
	}
	return &Launcher{
		cfg:    cfg,
		client: buildClient(clientOptions{Timeout: cfg.Timeout, ValidateSSL: !cfg.InsecureSkipVerify}),
		logger: logger,
	}
}

// JobURL возвращает ссылку на job в UI контроллера.
func (l *Launcher) JobURL(jobID string) string {
	return l.cfg.JobURL(jobID)
}

// Launch отправляет POST на launch-эндпоинт job template.
//
// Никогда не возвращает ошибку: любой исход описывается LaunchResult.
func (l *Launcher) Launch(ctx context.Context, vars domain.OrchestrationVariables) LaunchResult {
	body, err := json.Marshal(launchPayload{ExtraVars: vars})
	if err != nil {
		return LaunchResult{Kind: LaunchTransportFailed, Err: fmt.Errorf("marshal payload: %w", err)}
	}

	url := l.cfg.LaunchURL()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return LaunchResult{Kind: LaunchTransportFailed, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Authorization", "Bearer "+l.cfg.Token)
	req.Header.Set("Content-Type", "application/json")

	logger := telemetry.FromContext(ctx, l.logger)
	logger.Debug("launch request", "url", url, "method", http.MethodPost, "payload", string(body))

	resp, err := l.client.Do(req)
	if err != nil {
		return LaunchResult{Kind: LaunchTransportFailed, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := readBody(resp, logger)
	if err != nil {
		return LaunchResult{Kind: LaunchTransportFailed, Err: err}
	}

	logger.Debug("launch response", "status_code", resp.StatusCode, "body", truncate(string(respBody), 500))

	if resp.StatusCode != http.StatusCreated {
		return LaunchResult{Kind: LaunchRejected, StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	jobID, err := parseJobID(respBody)
	if err != nil {
		return LaunchResult{Kind: LaunchMalformed, StatusCode: resp.StatusCode, Body: string(respBody), Err: err}
	}

	return LaunchResult{Kind: LaunchSucceeded, JobID: jobID, StatusCode: resp.StatusCode}
}
