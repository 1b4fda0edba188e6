// Package steps содержит сетевые шаги pipeline.
//
// # Probe (probe.go)
//
// GET к внешнему эндпоинту (по умолчанию jsonplaceholder). Успех — 200.
// Ошибки разделены на ErrProbeTransport (ответа нет) и ErrProbeStatus
// (ответ не 200). Сертификат проверяется всегда.
//
// # Launcher (launch.go)
//
// POST {base}/api/v2/job_templates/{id}/launch/ с телом:
//
//	{"extra_vars": {"project_name": "...", ...}}
//
// и заголовками Authorization: Bearer {token}, Content-Type: application/json.
//
// Результат — LaunchResult, ошибок Launch не возвращает:
//   - succeeded — 201 и {"job": <id>}
//   - rejected — любой другой статус
//   - transport_failed — ответ не получен
//   - malformed — 201, но тело не прошло разбор (schema.go)
//
// Проверку сертификата контроллера можно отключить только явно
// (config.ControllerConfig.InsecureSkipVerify), это логируется как WARN.
//
// Оба шага используют клиент с таймаутом; retry нет.
package steps
