// Package cli реализует команды ritm-launch.
//
// # Команды
//
//   - run — полный прогон: gate, probe, переменные, launch, интерпретация
//   - probe — только connectivity probe
//   - vars — вывести extra_vars для fixture, без сетевых вызовов
//
// Каждая команда создаётся фабричной функцией (NewRunCmd и т.д.),
// принимающей envFn — замыкание для ленивого создания Env после
// парсинга PersistentFlags.
//
// # Конфигурация
//
// Параметры контроллера читаются из окружения (config.FromEnv), флаги
// команды переопределяют только явно заданные значения.
//
// # Output
//
// Отчёт выводится таблицей ключ-значение или JSON (--json) в stdout,
// логи и сообщения — в stderr:
//
//	ritm-launch run --json | jq .update
package cli
