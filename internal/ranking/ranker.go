package ranking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/embedding"
	"github.com/spigell/resume-ranker/internal/logger"
	"github.com/spigell/resume-ranker/internal/metrics"
	"github.com/spigell/resume-ranker/internal/resume"
	"github.com/spigell/resume-ranker/internal/scoring"
)

// ErrEmptyJobDescription is returned by CheckJobDescription for blank input.
var ErrEmptyJobDescription = errors.New("job description is empty")

// CheckJobDescription reports whether jd has any content to rank against.
func CheckJobDescription(jd string) error {
	if strings.TrimSpace(jd) == "" {
		return ErrEmptyJobDescription
	}
	return nil
}

// Ranker scores records with an embedding encoder and orders them.
type Ranker struct {
	encoder embedding.Encoder
	weights Weights
	logger  *zap.Logger
	metrics *metrics.Metrics
	newID   func() string
}

type Option func(*Ranker)

func WithWeights(w Weights) Option {
	return func(r *Ranker) { r.weights = w }
}

func WithLogger(l *zap.Logger) Option {
	return func(r *Ranker) { r.logger = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Ranker) { r.metrics = m }
}

// New creates a Ranker using the default weights unless overridden.
func New(encoder embedding.Encoder, opts ...Option) (*Ranker, error) {
	if encoder == nil {
		return nil, errors.New("encoder is required")
	}

	r := &Ranker{
		encoder: encoder,
		weights: DefaultWeights(),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := r.weights.Validate(); err != nil {
		return nil, fmt.Errorf("invalid weights: %w", err)
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}

	return r, nil
}

// Rank scores every record against jd and returns them sorted by total score,
// highest first. Records with equal totals keep their input order. Any
// encoder failure aborts the whole run and no partial result is returned.
func (r *Ranker) Rank(ctx context.Context, records []resume.Value, jd string) ([]ScoreRecord, error) {
	if len(records) == 0 {
		return []ScoreRecord{}, nil
	}

	log := logger.WithRun(r.logger, r.newID())
	log.Info("ranking candidates", zap.Int("candidates", len(records)))
	started := time.Now()

	scores := make([]ScoreRecord, 0, len(records))
	for i, record := range records {
		score, err := r.score(ctx, record, jd, i)
		if err != nil {
			log.Error("ranking aborted", zap.Int("candidate", i+1), zap.Error(err))
			return nil, fmt.Errorf("score candidate %d: %w", i+1, err)
		}

		log.Debug("candidate scored",
			zap.Int("candidate", i+1),
			zap.String("name", score.Name),
			zap.Float64("skill", score.SkillScore),
			zap.Float64("experience", score.ExperienceScore),
			zap.Float64("education", score.EducationScore),
			zap.Float64("keyword", score.KeywordScore),
			zap.Float64("total", score.TotalScore),
		)
		r.metrics.ObserveCandidate(score.TotalScore)

		scores = append(scores, score)
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].TotalScore > scores[j].TotalScore
	})

	took := time.Since(started)
	r.metrics.ObserveRanking(took.Seconds())
	log.Info("ranking finished", zap.Duration("took", took), zap.String("top", scores[0].Name))

	return scores, nil
}

func (r *Ranker) score(ctx context.Context, record resume.Value, jd string, index int) (ScoreRecord, error) {
	skills := resume.Skills(record)
	out := ScoreRecord{Index: index}

	var err error
	if out.SkillScore, err = r.similarity(ctx, "skills", skills, jd); err != nil {
		return ScoreRecord{}, err
	}
	if out.ExperienceScore, err = r.similarity(ctx, "experience", resume.Experience(record), jd); err != nil {
		return ScoreRecord{}, err
	}
	if out.EducationScore, err = r.similarity(ctx, "education", resume.Education(record), jd); err != nil {
		return ScoreRecord{}, err
	}

	out.KeywordScore = scoring.Clamp(scoring.SkillMatch(resume.SkillTerms(skills), jd))
	out.TotalScore = r.weights.Total(out)
	out.Name = candidateName(record, index)

	return out, nil
}

func (r *Ranker) similarity(ctx context.Context, section string, v resume.Value, jd string) (float64, error) {
	sim, err := scoring.Similarity(ctx, resume.Normalize(v), jd, r.encoder)
	if err != nil {
		return 0, fmt.Errorf("%s similarity: %w", section, err)
	}
	return sim, nil
}

// candidateName falls back to a placeholder numbered by the 1-based position
// of the record in the input.
func candidateName(record resume.Value, index int) string {
	if name, ok := resume.Name(record); ok {
		return name
	}
	return fmt.Sprintf("Unknown Candidate %d", index+1)
}
