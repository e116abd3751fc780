// Package cstream provides the character input stream for C source code.
//
// A stream is an ordered stack of input units; each unit is backed either
// by an externally owned reader (an open file) or by an owned string. Only
// the top unit is ever read from. The following processing happens at this
// stage, before tokenization:
//
//   - "\r\n" and a lone "\r" are canonicalized to "\n" (C11 5.1.1.2p1).
//   - A backslash immediately followed by a newline is removed, joining
//     the two physical lines (C11 5.1.1.2p2). Removal is reprocessed, so
//     chained splices collapse in one Read.
//   - An input whose last delivered character was not a newline yields one
//     synthetic newline before EOF (the C standard requires source files
//     to end in a newline; non-conforming files are repaired here).
//
// Trigraphs are not handled.
//
// # Units and nesting
//
// Push adds an outermost unit whose EOF is reported to the caller. Insert
// adds an auto-pop unit: when it is exhausted the stack silently resumes
// the unit below, which is how #include makes the included file invisible
// at this layer. PushString adds a string-backed unit used for macro
// re-scan buffers; the lexer pops it explicitly when done.
//
// # Positions and pushback
//
// Every unit tracks the 1-based line and 0-based column of the next
// character to be delivered. Unread pushes a character back onto a small
// bounded buffer and exactly inverts the position update; only characters
// previously obtained from Read may be unread, and no more of them than
// the buffer holds. Violating either rule is a caller bug and panics.
//
// # Ошибки ввода-вывода
//
// Read не различает отказ нижележащего чтения и логический конец ввода:
// в обоих случаях срабатывает та же EOF-регуляризация. Первая не-EOF
// ошибка сохраняется и доступна через Err.
//
// A Stream carries no global state: independent compilations each own
// their stream, and a stream must only be used from one goroutine.
package cstream
