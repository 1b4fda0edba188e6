package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/shaiso/ritm-launch/internal/config"
)

// Env — общие зависимости команд, создаются после парсинга PersistentFlags.
type Env struct {
	Logger      *slog.Logger
	Output      *Output
	FixturePath string
}

// controllerFlags — флаги, переопределяющие переменные окружения.
type controllerFlags struct {
	controllerURL  string
	token          string
	jobTemplateID  string
	insecure       bool
	launchTimeout  time.Duration
	probeURL       string
	probeTimeout   time.Duration
	pushgatewayURL string
}

func (f *controllerFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.controllerURL, "controller-url", "", "Automation controller base URL (env "+config.EnvControllerURL+")")
	fs.StringVar(&f.token, "token", "", "Controller bearer token (env "+config.EnvControllerToken+")")
	fs.StringVar(&f.jobTemplateID, "job-template-id", "", "Job template ID (env "+config.EnvJobTemplateID+")")
	fs.BoolVar(&f.insecure, "insecure-skip-verify", false, "Accept self-signed controller certificates (env "+config.EnvInsecureSkipVerify+")")
	fs.DurationVar(&f.launchTimeout, "launch-timeout", 0, "Launch request timeout (env "+config.EnvLaunchTimeout+")")
	f.registerProbe(cmd)
	fs.StringVar(&f.pushgatewayURL, "pushgateway-url", "", "Prometheus Pushgateway URL (env "+config.EnvPushgatewayURL+")")
}

func (f *controllerFlags) registerProbe(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.probeURL, "probe-url", "", "Connectivity probe URL (env "+config.EnvProbeURL+")")
	fs.DurationVar(&f.probeTimeout, "probe-timeout", 0, "Connectivity probe timeout (env "+config.EnvProbeTimeout+")")
}

// load читает конфигурацию из окружения и применяет явно заданные флаги.
func (f *controllerFlags) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	changed := cmd.Flags().Changed
	if changed("controller-url") {
		cfg.Controller.BaseURL = f.controllerURL
	}
	if changed("token") {
		cfg.Controller.Token = f.token
	}
	if changed("job-template-id") {
		cfg.Controller.JobTemplateID = f.jobTemplateID
	}
	if changed("insecure-skip-verify") {
		cfg.Controller.InsecureSkipVerify = f.insecure
	}
	if changed("launch-timeout") {
		cfg.Controller.Timeout = f.launchTimeout
	}
	if changed("probe-url") {
		cfg.Probe.URL = f.probeURL
	}
	if changed("probe-timeout") {
		cfg.Probe.Timeout = f.probeTimeout
	}
	if changed("pushgateway-url") {
		cfg.PushgatewayURL = f.pushgatewayURL
	}
	return cfg, nil
}
