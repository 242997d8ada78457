package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"code-assistant/internal/domain"
)

const (
	RouteExplain      = "explain"
	RouteRefactor     = "refactor"
	RouteGenerate     = "generate"
	RouteSuggestTheme = "suggest-theme"
)

type LLMClient interface {
	Chat(ctx context.Context, model string, messages []domain.ChatMessage) (string, error)
}

// Recorder persists interaction metadata. Failures never fail a request.
type Recorder interface {
	RecordInteraction(ctx context.Context, in domain.Interaction) error
}

// DefaultRecordTimeout bounds a single interaction write.
const DefaultRecordTimeout = 2 * time.Second

type httpStatusCoder interface {
	HTTPStatusCode() int
}

// AssistService runs the prompt, completion and normalization steps for each
// route. It holds no per-request state and is safe for concurrent use.
type AssistService struct {
	llm         LLMClient
	model       string
	recorder    Recorder
	recordWait  time.Duration
	logger      *slog.Logger
	extractJSON func(string) (json.RawMessage, error)
	strictTheme bool
	now         func() time.Time
}

type Option func(*AssistService)

// WithRecorder enables the interaction log.
func WithRecorder(r Recorder) Option {
	return func(s *AssistService) {
		s.recorder = r
	}
}

// WithRecordTimeout overrides DefaultRecordTimeout. Non-positive values are
// ignored.
func WithRecordTimeout(d time.Duration) Option {
	return func(s *AssistService) {
		if d > 0 {
			s.recordWait = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *AssistService) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithBalancedExtraction switches theme parsing from the greedy first-to-last
// brace span to the first balanced object.
func WithBalancedExtraction(enabled bool) Option {
	return func(s *AssistService) {
		if enabled {
			s.extractJSON = ExtractBalancedJSONObject
		} else {
			s.extractJSON = ExtractJSONObject
		}
	}
}

// WithStrictTheme rejects themes missing any palette or font field. When
// disabled, such themes are passed through and only logged.
func WithStrictTheme(enabled bool) Option {
	return func(s *AssistService) {
		s.strictTheme = enabled
	}
}

type ExplainInput struct {
	Code string
}

type ExplainOutput struct {
	Explanation string
}

type RefactorInput struct {
	Code    string
	Command string
}

type RefactorOutput struct {
	RefactoredCode string
}

type GenerateInput struct {
	Command string
}

type GenerateOutput struct {
	GeneratedCode string
}

type ThemeInput struct {
	Topic string
}

type ThemeOutput struct {
	// Theme is the parsed model reply, compacted but otherwise untouched.
	Theme json.RawMessage
}

func NewAssistService(llm LLMClient, model string, opts ...Option) (*AssistService, error) {
	if llm == nil {
		return nil, errors.New("usecase: llm client must not be nil")
	}
	model = strings.TrimSpace(model)
	if model == "" {
		return nil, errors.New("usecase: model must not be empty")
	}
	s := &AssistService{
		llm:         llm,
		model:       model,
		recordWait:  DefaultRecordTimeout,
		logger:      slog.Default(),
		extractJSON: ExtractJSONObject,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *AssistService) Explain(ctx context.Context, in ExplainInput) (out ExplainOutput, err error) {
	defer s.track(ctx, RouteExplain, s.now(), &err)

	raw, err := s.complete(ctx, buildExplainPrompt(in.Code))
	if err != nil {
		return ExplainOutput{}, err
	}
	return ExplainOutput{Explanation: raw}, nil
}

func (s *AssistService) Refactor(ctx context.Context, in RefactorInput) (out RefactorOutput, err error) {
	defer s.track(ctx, RouteRefactor, s.now(), &err)

	raw, err := s.complete(ctx, buildRefactorPrompt(in.Code, in.Command))
	if err != nil {
		return RefactorOutput{}, err
	}
	return RefactorOutput{RefactoredCode: StripCodeFences(raw)}, nil
}

func (s *AssistService) Generate(ctx context.Context, in GenerateInput) (out GenerateOutput, err error) {
	defer s.track(ctx, RouteGenerate, s.now(), &err)

	raw, err := s.complete(ctx, buildGeneratePrompt(in.Command))
	if err != nil {
		return GenerateOutput{}, err
	}
	return GenerateOutput{GeneratedCode: StripCodeFences(raw)}, nil
}

func (s *AssistService) SuggestTheme(ctx context.Context, in ThemeInput) (out ThemeOutput, err error) {
	defer s.track(ctx, RouteSuggestTheme, s.now(), &err)

	raw, err := s.complete(ctx, buildThemePrompt(in.Topic))
	if err != nil {
		return ThemeOutput{}, err
	}

	theme, err := s.extractJSON(raw)
	if err != nil {
		if errors.Is(err, ErrNoJSONObject) {
			return ThemeOutput{}, newError(ErrorMalformedReply, "no_json_object", err)
		}
		return ThemeOutput{}, newError(ErrorMalformedReply, "invalid_json", err)
	}

	if err := s.checkTheme(ctx, theme); err != nil {
		return ThemeOutput{}, err
	}
	return ThemeOutput{Theme: theme}, nil
}

func (s *AssistService) checkTheme(ctx context.Context, raw json.RawMessage) error {
	var theme domain.Theme
	var missing []string
	if err := json.Unmarshal(raw, &theme); err != nil {
		missing = []string{"(decode: " + err.Error() + ")"}
	} else {
		missing = theme.MissingFields()
	}
	if len(missing) == 0 {
		return nil
	}
	if s.strictTheme {
		return newError(ErrorSchemaMismatch, "theme_shape", fmt.Errorf("missing or invalid fields: %s", strings.Join(missing, ", ")))
	}
	s.logger.WarnContext(ctx, "theme reply does not match expected shape",
		"missing", missing,
		"correlation_id", CorrelationID(ctx),
	)
	return nil
}

func (s *AssistService) complete(ctx context.Context, prompt string) (string, error) {
	raw, err := s.llm.Chat(ctx, s.model, userMessages(prompt))
	if err != nil {
		if status, ok := upstreamStatusCode(err); ok && status == 429 {
			return "", newError(ErrorUpstream, "upstream_rate_limited", err)
		}
		return "", newError(ErrorUpstream, "upstream_error", err)
	}
	s.logger.DebugContext(ctx, "llm reply received",
		"model", s.model,
		"chars", len(raw),
		"correlation_id", CorrelationID(ctx),
	)
	return raw, nil
}

// track records the outcome of one route call once it returns.
func (s *AssistService) track(ctx context.Context, route string, started time.Time, errp *error) {
	if s.recorder == nil {
		return
	}
	in := domain.Interaction{
		Route:         route,
		CorrelationID: CorrelationID(ctx),
		Model:         s.model,
		Status:        "ok",
		LatencyMillis: s.now().Sub(started).Milliseconds(),
	}
	if err := *errp; err != nil {
		code, _ := Classify(err)
		in.Status = "error"
		in.ErrorCode = string(code)
	}
	// The inbound request may already be finished; the record should still land,
	// but a stalled write must not hold the response.
	recCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.recordWait)
	defer cancel()
	if err := s.recorder.RecordInteraction(recCtx, in); err != nil {
		s.logger.WarnContext(ctx, "failed to record interaction",
			"route", route,
			"err", err,
		)
	}
}

func upstreamStatusCode(err error) (int, bool) {
	var statusErr httpStatusCoder
	if !errors.As(err, &statusErr) {
		return 0, false
	}
	return statusErr.HTTPStatusCode(), true
}
