package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"code-assistant/internal/usecase"
)

const (
	correlationHeader = "X-Correlation-Id"
	maxBodyBytes      = 1 << 20
)

// Assistant is the use case surface served over HTTP and API Gateway.
type Assistant interface {
	Explain(ctx context.Context, in usecase.ExplainInput) (usecase.ExplainOutput, error)
	Refactor(ctx context.Context, in usecase.RefactorInput) (usecase.RefactorOutput, error)
	Generate(ctx context.Context, in usecase.GenerateInput) (usecase.GenerateOutput, error)
	SuggestTheme(ctx context.Context, in usecase.ThemeInput) (usecase.ThemeOutput, error)
}

type Handler struct {
	svc    Assistant
	logger *slog.Logger
	newID  func() string
	routes map[string]route
}

// route ties a public path to its use case call and the generic message
// returned when that call fails.
type route struct {
	name        string
	failMessage string
	run         func(ctx context.Context, req assistRequest) (any, error)
}

type Option func(*Handler)

func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

func NewHandler(svc Assistant, opts ...Option) (*Handler, error) {
	if svc == nil {
		return nil, errors.New("handler: assistant must not be nil")
	}
	h := &Handler{
		svc:    svc,
		logger: slog.Default(),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.routes = map[string]route{
		"/api/explain": {
			name:        usecase.RouteExplain,
			failMessage: "Failed to get explanation from AI",
			run: func(ctx context.Context, req assistRequest) (any, error) {
				out, err := h.svc.Explain(ctx, usecase.ExplainInput{Code: string(req.Code)})
				return explainResponse{Explanation: out.Explanation}, err
			},
		},
		"/api/refactor": {
			name:        usecase.RouteRefactor,
			failMessage: "Failed to refactor code",
			run: func(ctx context.Context, req assistRequest) (any, error) {
				out, err := h.svc.Refactor(ctx, usecase.RefactorInput{Code: string(req.Code), Command: string(req.Command)})
				return refactorResponse{RefactoredCode: out.RefactoredCode}, err
			},
		},
		"/api/generate": {
			name:        usecase.RouteGenerate,
			failMessage: "Failed to generate code",
			run: func(ctx context.Context, req assistRequest) (any, error) {
				out, err := h.svc.Generate(ctx, usecase.GenerateInput{Command: string(req.Command)})
				return generateResponse{GeneratedCode: out.GeneratedCode}, err
			},
		},
		"/api/suggest-theme": {
			name:        usecase.RouteSuggestTheme,
			failMessage: "Failed to suggest theme",
			run: func(ctx context.Context, req assistRequest) (any, error) {
				out, err := h.svc.SuggestTheme(ctx, usecase.ThemeInput{Topic: string(req.Topic)})
				return themeResponse{Theme: out.Theme}, err
			},
		},
	}
	return h, nil
}

// dispatch runs one route and returns the status code and JSON body to send.
func (h *Handler) dispatch(ctx context.Context, rt route, body []byte) (int, any) {
	req, err := decodeRequest(body)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid request body",
			"route", rt.name,
			"code", usecase.ErrorInvalidInput,
			"err", err,
			"correlation_id", usecase.CorrelationID(ctx),
		)
		return http.StatusBadRequest, errorResponse{Error: "invalid request body"}
	}

	out, err := rt.run(ctx, req)
	if err != nil {
		code, reason := usecase.Classify(err)
		h.logger.ErrorContext(ctx, "route failed",
			"route", rt.name,
			"code", code,
			"reason", reason,
			"err", err,
			"correlation_id", usecase.CorrelationID(ctx),
		)
		return http.StatusInternalServerError, errorResponse{Error: rt.failMessage}
	}
	return http.StatusOK, out
}

func (h *Handler) correlationID(provided string) string {
	if id := strings.TrimSpace(provided); id != "" {
		return id
	}
	return h.newID()
}

// decodeRequest accepts an empty body, a JSON object or a JSON array. An array
// carries no named fields, so every field stays empty. Scalars and null are
// rejected.
func decodeRequest(body []byte) (assistRequest, error) {
	var req assistRequest
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return req, nil
	}
	switch trimmed[0] {
	case '{':
		if err := json.Unmarshal(trimmed, &req); err != nil {
			return assistRequest{}, err
		}
		return req, nil
	case '[':
		if !json.Valid(trimmed) {
			return assistRequest{}, errors.New("handler: malformed JSON array")
		}
		return req, nil
	default:
		return assistRequest{}, errors.New("handler: body must be a JSON object or array")
	}
}
