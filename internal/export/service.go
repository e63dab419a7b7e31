// Package export renders finished resume documents into downloadable
// artifacts and hands them to storage sinks.
package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/ats"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
	"golang.org/x/sync/errgroup"
)

// Content types of the supported formats
const (
	ContentTypeLaTeX = "application/x-tex"
	ContentTypeJSON  = "application/json"
)

// Sink stores an artifact somewhere and returns where it put it.
type Sink interface {
	Name() string
	Store(ctx context.Context, artifact *types.ExportArtifact) (string, error)
}

// Service implements the wizard's exporter.
type Service struct {
	templatePath string
	format       string
	sinks        []Sink
	logger       *slog.Logger
	now          func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithTemplate renders LaTeX with the template file at path instead of the built-in one.
func WithTemplate(path string) Option {
	return func(s *Service) { s.templatePath = path }
}

// WithFormat selects types.FormatLaTeX (default) or types.FormatJSON.
func WithFormat(format string) Option {
	return func(s *Service) { s.format = format }
}

// WithSinks adds sinks that receive every artifact.
func WithSinks(sinks ...Sink) Option {
	return func(s *Service) { s.sinks = append(s.sinks, sinks...) }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithClock overrides the artifact timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService returns a LaTeX exporter without sinks unless options add them.
func NewService(opts ...Option) *Service {
	s := &Service{
		format: types.FormatLaTeX,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Export renders doc and stores it in every sink concurrently. When sinks
// fail the artifact is still returned, together with the joined SinkErrors.
func (s *Service) Export(ctx context.Context, doc *types.ResumeDocument) (*types.ExportArtifact, error) {
	if doc == nil {
		return nil, fmt.Errorf("failed to export resume: document is nil")
	}

	artifact, err := s.build(ctx, doc)
	if err != nil {
		return nil, err
	}

	locations := make([]string, len(s.sinks))
	sinkErrs := make([]error, len(s.sinks))
	var g errgroup.Group
	for i, sink := range s.sinks {
		g.Go(func() error {
			loc, err := sink.Store(ctx, artifact)
			if err != nil {
				sinkErrs[i] = &SinkError{Sink: sink.Name(), Cause: err}
				return nil
			}
			locations[i] = loc
			return nil
		})
	}
	_ = g.Wait()

	for i, loc := range locations {
		if loc != "" {
			artifact.Locations = append(artifact.Locations, loc)
			s.logger.Info("resume exported", "sink", s.sinks[i].Name(), "location", loc, "export_id", artifact.ID.String())
		}
	}

	if err := errors.Join(sinkErrs...); err != nil {
		s.logger.Error("export sink failed", "export_id", artifact.ID.String(), "error", err)
		return artifact, err
	}
	return artifact, nil
}

func (s *Service) build(ctx context.Context, doc *types.ResumeDocument) (*types.ExportArtifact, error) {
	artifact := &types.ExportArtifact{
		ID:        uuid.New(),
		Owner:     OwnerFromContext(ctx),
		Candidate: strings.TrimSpace(strings.TrimSpace(doc.Personal.FirstName) + " " + strings.TrimSpace(doc.Personal.LastName)),
		Format:    s.format,
		Score:     ats.Score(doc).Total,
		CreatedAt: s.now().UTC(),
	}

	switch s.format {
	case types.FormatLaTeX:
		tex, err := rendering.RenderLaTeX(doc, s.templatePath)
		if err != nil {
			return nil, fmt.Errorf("failed to render resume: %w", err)
		}
		artifact.Content = []byte(tex)
		artifact.ContentType = ContentTypeLaTeX
		artifact.Filename = Filename(doc, ".tex")
	case types.FormatJSON:
		content, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode resume: %w", err)
		}
		artifact.Content = content
		artifact.ContentType = ContentTypeJSON
		artifact.Filename = Filename(doc, ".json")
	default:
		return nil, fmt.Errorf("unsupported export format %q", s.format)
	}
	return artifact, nil
}

// Filename derives a file name from the candidate's name, e.g. "ada-lovelace.tex".
// Documents without a usable name export as "resume".
func Filename(doc *types.ResumeDocument, ext string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(doc.Personal.FirstName + " " + doc.Personal.LastName) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
		default:
			dash = true
		}
	}
	if b.Len() == 0 {
		return "resume" + ext
	}
	return b.String() + ext
}

type ownerKey struct{}

// ContextWithOwner records who is exporting; sinks use it to scope storage.
func ContextWithOwner(ctx context.Context, owner string) context.Context {
	return context.WithValue(ctx, ownerKey{}, owner)
}

// OwnerFromContext returns the owner set by ContextWithOwner.
func OwnerFromContext(ctx context.Context) string {
	owner, _ := ctx.Value(ownerKey{}).(string)
	return owner
}
