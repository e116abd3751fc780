package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"cfront/internal/cstream"
)

// CharOutput описывает один символ нормализованного потока для JSON.
type CharOutput struct {
	Char string `json:"char"`
	Code int32  `json:"code"`
	File string `json:"file"`
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

// CharsOutput представляет корневую структуру JSON вывода.
type CharsOutput struct {
	Chars []CharOutput `json:"chars"`
	Total int          `json:"total"`
}

// FormatCharsPretty выводит символы потока в человекочитаемом формате.
// Positions point just past each character; the source file is printed
// whenever it changes (include boundaries).
func FormatCharsPretty(w io.Writer, chars []cstream.Char) error {
	lastFile := ""
	for i, ch := range chars {
		if ch.Pos.File != lastFile {
			lastFile = ch.Pos.File
			if _, err := fmt.Fprintf(w, "-- %s\n", lastFile); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%4d: %-6s at %d:%d\n",
			i+1, charLabel(ch.C), ch.Pos.Line, ch.Pos.Col); err != nil {
			return err
		}
	}
	return nil
}

// Поток отдаёт сырые байты как руны; всё ≥ 0x80 печатаем hex-эскейпом,
// чтобы многобайтовый UTF-8 не расползался на «символы».
func charLabel(c rune) string {
	if c < 0x80 {
		return fmt.Sprintf("%q", c)
	}
	return fmt.Sprintf("'\\x%02x'", c)
}

func jsonChar(c rune) string {
	if c < 0x80 {
		return string(c)
	}
	return fmt.Sprintf("\\x%02x", c)
}

// FormatCharsJSON выводит символы потока в JSON формате.
func FormatCharsJSON(w io.Writer, chars []cstream.Char) error {
	out := CharsOutput{Chars: make([]CharOutput, 0, len(chars)), Total: len(chars)}
	for _, ch := range chars {
		out.Chars = append(out.Chars, CharOutput{
			Char: jsonChar(ch.C),
			Code: int32(ch.C),
			File: ch.Pos.File,
			Line: ch.Pos.Line,
			Col:  ch.Pos.Col,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
