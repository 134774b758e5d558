package validate

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gunvolt24/storefront/internal/ports"
)

const maxJSONLLine = 10 * 1024 * 1024

// LineError — ошибка валидации строки JSONL (нумерация с 1).
type LineError struct {
	Line int
	Err  error
}

func (e LineError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }

// ValidateJSONLStream — читает JSONL из reader'а, валидирует каждую строку, валидные пишет в writer
// одной строкой канонического JSON. Пустые строки пропускаются, невалидные попадают в Summary.Errors.
func ValidateJSONLStream(ctx context.Context, validator ports.OrderValidator, ir io.Reader, ow io.Writer) (Summary, error) {
	var res Summary

	scanner := bufio.NewScanner(ir)
	scanner.Buffer(make([]byte, 0, 64*1024), maxJSONLLine)

	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		req, err := ValidateOrderFromJSON(ctx, validator, raw)
		if err != nil {
			res.Invalid++
			res.Errors = append(res.Errors, LineError{Line: line, Err: err})
			continue
		}

		canonical, err := json.Marshal(req)
		if err != nil {
			return res, fmt.Errorf("marshal line %d: %w", line, err)
		}
		if _, err := ow.Write(append(canonical, '\n')); err != nil {
			return res, fmt.Errorf("write valid line: %w", err)
		}
		res.Valid++
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("scan: %w", err)
	}
	return res, nil
}
