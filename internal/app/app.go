// Package app wires configuration, integrations and the use case into a
// ready handler. Both entrypoints share it.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"

	"code-assistant/handler"
	"code-assistant/internal/config"
	"code-assistant/internal/integrations/openai"
	"code-assistant/internal/integrations/paramstore"
	"code-assistant/internal/repository"
	"code-assistant/internal/usecase"
)

// NewLogger returns the JSON logger used by both entrypoints.
func NewLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// AWSLoader loads the AWS SDK configuration. It is only called when an
// AWS-backed integration is enabled.
type AWSLoader func(ctx context.Context) (aws.Config, error)

func DefaultAWSLoader(ctx context.Context) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx)
}

// Build resolves the credential, constructs every collaborator and returns
// the handler. Nothing built here is mutated afterwards.
func Build(ctx context.Context, cfg config.Config, logger *slog.Logger, loadAWS AWSLoader) (*handler.Handler, error) {
	apiKey := cfg.APIKey
	var recorder usecase.Recorder

	if cfg.NeedsAWS() {
		awsCfg, err := loadAWS(ctx)
		if err != nil {
			return nil, fmt.Errorf("app: load AWS config: %w", err)
		}

		if apiKey == "" && cfg.APIKeyParam != "" {
			ps, err := paramstore.New(awsssm.NewFromConfig(awsCfg))
			if err != nil {
				return nil, fmt.Errorf("app: create SSM client: %w", err)
			}
			apiKey, err = ps.GetToken(ctx, cfg.APIKeyParam)
			if err != nil {
				return nil, fmt.Errorf("app: resolve API key: %w", err)
			}
			logger.Info("loaded upstream credential from parameter store", "param", cfg.APIKeyParam)
		}

		if cfg.InteractionTable != "" {
			repo, err := repository.New(awsdynamodb.NewFromConfig(awsCfg), cfg.InteractionTable)
			if err != nil {
				return nil, fmt.Errorf("app: create interaction log: %w", err)
			}
			recorder = repo
			logger.Info("interaction log enabled", "table", cfg.InteractionTable)
		}
	}

	if apiKey == "" {
		logger.Warn("no upstream credential configured; requests will fail upstream authentication")
	}

	client := openai.NewClient(apiKey,
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithTimeout(cfg.UpstreamTimeout),
	)

	opts := []usecase.Option{
		usecase.WithLogger(logger),
		usecase.WithBalancedExtraction(cfg.JSONExtraction == config.ExtractionBalanced),
		usecase.WithStrictTheme(cfg.ThemeValidation == config.ThemeValidationStrict),
	}
	if recorder != nil {
		opts = append(opts, usecase.WithRecorder(recorder))
	}
	svc, err := usecase.NewAssistService(client, cfg.Model, opts...)
	if err != nil {
		return nil, fmt.Errorf("app: create assist service: %w", err)
	}

	h, err := handler.NewHandler(svc, handler.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("app: create handler: %w", err)
	}
	return h, nil
}
