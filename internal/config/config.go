package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrMissingControllerConfig — не задан обязательный параметр контроллера.
// Фатальное предусловие: pipeline не запускается.
var ErrMissingControllerConfig = errors.New("controller config incomplete")

// Переменные окружения.
const (
	EnvControllerURL      = "AAP_URL"
	EnvControllerToken    = "AAP_TOKEN"
	EnvJobTemplateID      = "AAP_JOB_TEMPLATE_ID"
	EnvInsecureSkipVerify = "AAP_INSECURE_SKIP_VERIFY"
	EnvLaunchTimeout      = "AAP_LAUNCH_TIMEOUT"
	EnvProbeURL           = "PROBE_URL"
	EnvProbeTimeout       = "PROBE_TIMEOUT"
	EnvPushgatewayURL     = "PUSHGATEWAY_URL"
)

// Значения по умолчанию.
const (
	DefaultProbeURL       = "https://jsonplaceholder.typicode.com/posts/1"
	DefaultProbeTimeout   = 10 * time.Second
	DefaultLaunchTimeout  = 30 * time.Second
	DefaultJobTemplateID  = "9"
	DefaultProbeUserAgent = "ServiceNow-Test-Agent/1.0"
)

// ControllerConfig — параметры автоматизационного контроллера (AAP).
type ControllerConfig struct {
	// BaseURL — базовый URL контроллера, например https://aap.example.com.
	BaseURL string

	// Token — bearer-токен. Непрозрачная строка.
	Token string

	// JobTemplateID — идентификатор job template.
	JobTemplateID string

	// InsecureSkipVerify отключает проверку сертификата контроллера.
	// Только для контроллеров с внутренне выпущенным сертификатом, по умолчанию false.
	InsecureSkipVerify bool

	// Timeout — таймаут launch-запроса.
	Timeout time.Duration
}

// Validate проверяет, что обязательные поля заданы.
func (c ControllerConfig) Validate() error {
	var missing []string
	if strings.TrimSpace(c.BaseURL) == "" {
		missing = append(missing, "base url")
	}
	if strings.TrimSpace(c.Token) == "" {
		missing = append(missing, "token")
	}
	if strings.TrimSpace(c.JobTemplateID) == "" {
		missing = append(missing, "job template id")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrMissingControllerConfig, strings.Join(missing, ", "))
	}
	return nil
}

// LaunchURL возвращает URL launch-эндпоинта job template.
func (c ControllerConfig) LaunchURL() string {
	return fmt.Sprintf("%s/api/v2/job_templates/%s/launch/", c.trimmedBase(), c.JobTemplateID)
}

// JobURL возвращает ссылку на job в UI контроллера.
func (c ControllerConfig) JobURL(jobID string) string {
	return fmt.Sprintf("%s/#/jobs/playbook/%s", c.trimmedBase(), jobID)
}

func (c ControllerConfig) trimmedBase() string {
	return strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
}

// ProbeConfig — параметры connectivity probe.
type ProbeConfig struct {
	URL       string
	UserAgent string
	Timeout   time.Duration
}

// Config — полная конфигурация одного запуска.
type Config struct {
	Controller ControllerConfig
	Probe      ProbeConfig

	// PushgatewayURL — адрес Prometheus Pushgateway. Пусто — метрики не отправляются.
	PushgatewayURL string
}

// FromEnv читает конфигурацию из переменных окружения.
func FromEnv() (*Config, error) {
	insecure, err := envBool(EnvInsecureSkipVerify, false)
	if err != nil {
		return nil, err
	}
	launchTimeout, err := envDuration(EnvLaunchTimeout, DefaultLaunchTimeout)
	if err != nil {
		return nil, err
	}
	probeTimeout, err := envDuration(EnvProbeTimeout, DefaultProbeTimeout)
	if err != nil {
		return nil, err
	}

	return &Config{
		Controller: ControllerConfig{
			BaseURL:            envString(EnvControllerURL, ""),
			Token:              envString(EnvControllerToken, ""),
			JobTemplateID:      envString(EnvJobTemplateID, DefaultJobTemplateID),
			InsecureSkipVerify: insecure,
			Timeout:            launchTimeout,
		},
		Probe: ProbeConfig{
			URL:       envString(EnvProbeURL, DefaultProbeURL),
			UserAgent: DefaultProbeUserAgent,
			Timeout:   probeTimeout,
		},
		PushgatewayURL: envString(EnvPushgatewayURL, ""),
	}, nil
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func envBool(key string, def bool) (bool, error) {
	if v, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("parse %s: %w", key, err)
		}
		return b, nil
	}
	return def, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	if v, ok := os.LookupEnv(key); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("parse %s: %w", key, err)
		}
		return d, nil
	}
	return def, nil
}
