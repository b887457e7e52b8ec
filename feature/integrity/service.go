package integrity

import (
	"context"
	"fmt"

	"relation-checker/feature/integrity/checks"
	"relation-checker/feature/report"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one check.
type Result struct {
	Kind       Kind              `json:"kind"`
	Mismatches []checks.Mismatch `json:"mismatches"`
	// Report is the generated file, empty when no report was written.
	Report string `json:"report,omitempty"`
}

// Service runs relationship checks and reports their results.
type Service struct {
	checker *checks.Checker
	writer  report.Writer
	logger  *zap.Logger
}

// NewService creates a new integrity service. writer may be nil when reports are never written.
func NewService(checker *checks.Checker, writer report.Writer, logger *zap.Logger) *Service {
	return &Service{
		checker: checker,
		writer:  writer,
		logger:  logger,
	}
}

// LayerCounts returns the feature count of each configured layer.
func (s *Service) LayerCounts(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, layer := range s.checker.Layers().Names() {
		n, err := s.checker.LayerCount(ctx, layer)
		if err != nil {
			return nil, err
		}
		counts[layer] = n
	}
	return counts, nil
}

// Check runs one check without writing a report.
func (s *Service) Check(ctx context.Context, kind Kind) (Result, error) {
	def, err := definition(kind)
	if err != nil {
		return Result{}, err
	}

	s.logger.Info("Running check", zap.String("check", string(kind)))
	mismatches, err := def.run(s.checker, ctx)
	if err != nil {
		return Result{}, fmt.Errorf("%s check failed: %w", kind, err)
	}
	s.logger.Info("Check completed", zap.String("check", string(kind)), zap.Int("mismatches", len(mismatches)))
	return Result{Kind: kind, Mismatches: mismatches}, nil
}

// WriteReport writes result through the report writer and records the location.
func (s *Service) WriteReport(ctx context.Context, result *Result) error {
	if s.writer == nil {
		return fmt.Errorf("no report writer configured")
	}
	def, err := definition(result.Kind)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(result.Mismatches))
	for _, m := range result.Mismatches {
		rows = append(rows, m.Record())
	}
	file, err := s.writer.Write(ctx, def.Report, def.Header, rows)
	result.Report = file
	if err != nil {
		return fmt.Errorf("failed to write %s report: %w", result.Kind, err)
	}
	return nil
}

// Run runs kinds one after another and writes a report for each.
// The first failure aborts the remaining checks.
func (s *Service) Run(ctx context.Context, kinds []Kind) ([]Result, error) {
	counts, err := s.LayerCounts(ctx)
	if err != nil {
		return nil, err
	}
	for _, layer := range s.checker.Layers().Names() {
		s.logger.Info("Layer loaded", zap.String("layer", layer), zap.Int("features", counts[layer]))
	}

	results := make([]Result, 0, len(kinds))
	for _, kind := range kinds {
		result, err := s.Check(ctx, kind)
		if err != nil {
			return results, err
		}
		if err := s.WriteReport(ctx, &result); err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

// CheckAll runs kinds concurrently. Results keep the order of kinds.
func (s *Service) CheckAll(ctx context.Context, kinds []Kind) ([]Result, error) {
	results := make([]Result, len(kinds))
	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		g.Go(func() error {
			result, err := s.Check(gctx, kind)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
