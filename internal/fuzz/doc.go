
// Package fuzztests houses Go fuzz harnesses that exercise the character
// input layer (raw bytes -> normalized stream). Its goal is to smoke test
// robustness and guard against panics or allocator explosions on arbitrary
// inputs.
//
// Назначение: прогонять произвольные байты через cstream и проверять
// инварианты нормализации против простого эталона.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/cstream.

package fuzztests
