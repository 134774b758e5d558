package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Gunvolt24/storefront/pkg/validate"
)

// CLI-приложение для валидации запросов на создание заказа (тот же валидатор, что и в API).
func main() {
	inputPath := flag.String("in", validate.StdinPath, "path to input (.json or .jsonl); \"-\" reads stdin")
	formatStr := flag.String("format", "auto", "input format: auto|json|jsonl")
	flag.Parse()

	ctx := context.Background()
	orderValidator := validate.NewOrderValidator()

	summary, err := validate.ValidateFile(ctx, orderValidator, *inputPath, validate.InputFormat(*formatStr), os.Stdin, os.Stdout)
	for _, lineErr := range summary.Errors {
		fmt.Fprintf(os.Stderr, "%v\n", lineErr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "validation: %v (%s)\n", err, summary)
		os.Exit(1)
	}
	if summary.Invalid > 0 {
		fmt.Fprintf(os.Stderr, "validation failed (%s)\n", summary)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "validation ok (%s)\n", summary)
}
