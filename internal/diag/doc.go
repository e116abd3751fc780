// Package diag defines the diagnostic model shared by the stream driver
// and the CLI.
//
//   - Diagnostic is the central record: Severity, a stable numeric Code,
//     a human message and the stream position it points at, plus optional
//     Notes with extra context.
//   - Producers emit through a Reporter so storage stays decoupled;
//     BagReporter aggregates into a Bag, which supports limits, merging,
//     deterministic sorting and deduplication.
//
// Package diag performs no formatting or IO. Rendering lives in
// internal/diagfmt, orchestration in internal/driver.
//
// Позиции здесь — потоковые (файл:строка:колонка), а не байтовые спаны:
// слой символьного ввода не хранит содержимое файлов.
package diag
