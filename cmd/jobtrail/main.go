package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/jobtrail/jobtrail/internal/adapters/ingest"
	"github.com/jobtrail/jobtrail/internal/core"
	"github.com/jobtrail/jobtrail/internal/di"
	"go.uber.org/zap"
)

func main() {
	flags := di.ParseFlags()

	container, err := di.BuildCLIContainer(flags)
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run classifies a single email from a file or stdin and prints a report
func run(
	flags *di.CLIFlags,
	logger *zap.Logger,
	svc *core.ClassifierService,
	llm core.LLMClassifier,
) error {
	defer logger.Sync()

	var emailReader io.Reader
	if flags.InputFile != "" {
		file, err := os.Open(flags.InputFile)
		if err != nil {
			return fmt.Errorf("failed to open input file %s: %w", flags.InputFile, err)
		}
		defer file.Close()
		emailReader = file
		logger.Info("Reading email from file", zap.String("file", flags.InputFile))
	} else {
		emailReader = os.Stdin
		logger.Info("Reading email from stdin")
	}

	msg, err := mail.ReadMessage(bufio.NewReader(emailReader))
	if err != nil {
		return fmt.Errorf("failed to parse email: %w", err)
	}

	content, err := ingest.ExtractTextFromMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to extract email text: %w", err)
	}

	email := &core.EmailRecord{
		Subject:   msg.Header.Get("Subject"),
		From:      msg.Header.Get("From"),
		Content:   content,
		MessageID: strings.Trim(msg.Header.Get("Message-Id"), " "),
	}
	if date, err := msg.Header.Date(); err == nil {
		email.Date = date
	}

	fmt.Printf("\n=== Email Summary ===\n")
	fmt.Printf("From: %s\n", email.From)
	fmt.Printf("Subject: %s\n", email.Subject)
	fmt.Printf("Body length: %d bytes\n", len(email.Content))

	fmt.Printf("\n=== Analysis ===\n")
	fmt.Printf("Provider: %s\n", flags.Provider)

	startTime := time.Now()
	result := svc.ClassifyEmail(context.Background(), email)
	duration := time.Since(startTime)

	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("Status: %s\n", result.Status)
	fmt.Printf("Company: %s\n", result.Company.OrElse("(unknown)"))
	fmt.Printf("Job title: %s\n", result.JobTitle.OrElse("(unknown)"))
	fmt.Printf("Confidence: %.4f\n", result.Confidence)
	fmt.Printf("Method: %s\n", result.Method)
	if result.ModelUsed != "" {
		fmt.Printf("Model used: %s\n", result.ModelUsed)
	}
	if !svc.Retain(result) {
		fmt.Printf("Note: confidence below the retain threshold; this email would be discarded on import\n")
	}
	fmt.Printf("Processing time: %v\n", duration)

	// Close any resources that need closing
	if closer, ok := llm.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close LLM classifier", zap.Error(err))
		}
	}

	return nil
}
