// Package telemetry обеспечивает наблюдаемость pipeline.
//
// Включает:
//   - logging.go — structured logging через slog
//   - sink.go — info/error sinks поверх slog (аналог gs.info / gs.error платформы)
//   - metrics.go — Prometheus метрики и отправка в Pushgateway
//
// ritm-launch — короткоживущая команда, поэтому метрики не отдаются
// по /metrics, а отправляются в Pushgateway по завершении прогона.
package telemetry
