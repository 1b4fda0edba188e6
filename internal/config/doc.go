// Package config собирает конфигурацию ritm-launch.
//
// Источники (по возрастанию приоритета):
//   - значения по умолчанию
//   - переменные окружения (AAP_URL, AAP_TOKEN, AAP_JOB_TEMPLATE_ID, ...)
//   - флаги командной строки (выставляются в internal/cli)
//
// Fixture записи RITM и catalog variables загружается из YAML/JSON файла
// (fixture.go). Без файла используется встроенный fixture RITM0010022.
package config
