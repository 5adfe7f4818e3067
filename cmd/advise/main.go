// Command advise prints the advisory for a single disaster report as JSON.
//
// Usage:
//
//	go run ./cmd/advise "Major flooding reported in Dhaka, water level 4"
//	echo "earthquake near Tokyo" | go run ./cmd/advise -pretty
//
// Providers are configured from the same environment variables as the
// advisor service.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/couchcryptid/disaster-response-advisor/internal/app"
	"github.com/couchcryptid/disaster-response-advisor/internal/config"
	"github.com/couchcryptid/disaster-response-advisor/internal/observability"
)

func main() {
	pretty := flag.Bool("pretty", false, "indent JSON output")
	textOnly := flag.Bool("text", false, "print only the response plan text")
	flag.Parse()

	_ = godotenv.Load()

	if err := run(flag.Args(), os.Stdin, os.Stdout, observability.NewMetrics(), *pretty, *textOnly); err != nil {
		fmt.Fprintf(os.Stderr, "advise: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer, metrics *observability.Metrics, pretty, textOnly bool) error {
	report, err := readReport(args, stdin)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := observability.NewLoggerTo(os.Stderr, cfg)
	engine, err := app.Build(ctx, cfg, logger, metrics)
	if err != nil {
		return err
	}
	defer engine.Close()

	advisory := engine.Advisor.Advise(ctx, report)

	if textOnly {
		_, err := fmt.Fprintln(stdout, advisory.Response.Text)
		return err
	}

	enc := json.NewEncoder(stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(advisory)
}

// readReport joins positional arguments, or reads all of stdin when none are given.
func readReport(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		report := strings.TrimSpace(strings.Join(args, " "))
		if report == "" {
			return "", errors.New("report is empty")
		}
		return report, nil
	}

	var b strings.Builder
	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		b.WriteString(scanner.Text())
		b.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}

	report := strings.TrimSpace(b.String())
	if report == "" {
		return "", errors.New("no report given: pass it as arguments or on stdin")
	}
	return report, nil
}
