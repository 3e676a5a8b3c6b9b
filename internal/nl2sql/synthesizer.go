package nl2sql

import (
	"context"
	"log/slog"
	"time"

	"github.com/staffinder/staffinder/internal/observability"
)

const (
	SourceModel    = "model"
	SourceFallback = "fallback"
)

type Synthesis struct {
	SQL    string
	Source string
	Model  string
}

// Synthesizer turns a natural-language query into validated SQL. The model
// path is best effort; extraction failures and call errors degrade to the
// deterministic fallback rules, so Synthesize never fails.
type Synthesizer struct {
	translator Translator
	logger     *slog.Logger
}

func NewSynthesizer(translator Translator, logger *slog.Logger) *Synthesizer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Synthesizer{translator: translator, logger: logger}
}

func (s *Synthesizer) Synthesize(ctx context.Context, query string) Synthesis {
	if s.translator != nil {
		start := time.Now()
		result, err := s.translator.Translate(ctx, Request{NaturalLanguage: query})
		observability.ObserveModelTranslation(time.Since(start))
		if err != nil {
			s.logger.WarnContext(ctx, "model translation failed, using fallback rules",
				slog.Any("error", err),
			)
		} else {
			sqlText, extractErr := ExtractSQL(result.RawResponse)
			if extractErr == nil {
				observability.ObserveSynthesis(SourceModel)
				return Synthesis{SQL: sqlText, Source: SourceModel, Model: result.Model}
			}
			observability.IncrementExtractionFailure()
			s.logger.WarnContext(ctx, "no SQL extracted from model response, using fallback rules",
				slog.String("model", result.Model),
				slog.Int("response_len", len(result.RawResponse)),
			)
		}
	}

	observability.ObserveSynthesis(SourceFallback)
	return Synthesis{SQL: FallbackSQL(query), Source: SourceFallback}
}
