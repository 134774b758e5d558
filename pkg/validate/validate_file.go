package validate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gunvolt24/storefront/internal/ports"
)

// InputFormat допустимые значения.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
)

// StdinPath — путь, означающий чтение из stdin.
const StdinPath = "-"

// Summary — итог проверки входа.
type Summary struct {
	Valid   int
	Invalid int
	Errors  []LineError
}

func (s Summary) String() string {
	return fmt.Sprintf("%d valid / %d invalid", s.Valid, s.Invalid)
}

// DetectFormat — формат по расширению; неизвестное расширение и stdin считаются JSON.
func DetectFormat(filePath string, format InputFormat) InputFormat {
	if format != FormatAuto {
		return format
	}
	if strings.ToLower(filepath.Ext(filePath)) == ".jsonl" {
		return FormatJSONL
	}
	return FormatJSON
}

// ValidateFile — валидирует файл (или stdin при пути "-") как JSON или JSONL,
// валидные запросы пишет в writer в каноническом виде.
func ValidateFile(ctx context.Context, validator ports.OrderValidator, filePath string, format InputFormat, in io.Reader, ow io.Writer) (Summary, error) {
	format = DetectFormat(filePath, format)

	if filePath != StdinPath {
		file, err := os.Open(filePath)
		if err != nil {
			return Summary{}, fmt.Errorf("open file: %w", err)
		}
		defer file.Close()
		in = file
	}
	return ValidateReader(ctx, validator, in, format, ow)
}

// ValidateReader — то же, что ValidateFile, но для произвольного reader'а.
func ValidateReader(ctx context.Context, validator ports.OrderValidator, in io.Reader, format InputFormat, ow io.Writer) (Summary, error) {
	switch format {
	case FormatJSON:
		raw, err := io.ReadAll(in)
		if err != nil {
			return Summary{}, fmt.Errorf("read input: %w", err)
		}
		req, err := ValidateOrderFromJSON(ctx, validator, raw)
		if err != nil {
			return Summary{Invalid: 1, Errors: []LineError{{Line: 1, Err: err}}}, err
		}
		canonical, err := json.Marshal(req)
		if err != nil {
			return Summary{}, fmt.Errorf("marshal: %w", err)
		}
		if _, err := ow.Write(append(canonical, '\n')); err != nil {
			return Summary{}, fmt.Errorf("write json: %w", err)
		}
		return Summary{Valid: 1}, nil

	case FormatJSONL:
		return ValidateJSONLStream(ctx, validator, in, ow)

	default:
		return Summary{}, fmt.Errorf("unsupported format: %s", format)
	}
}
