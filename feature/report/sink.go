package report

import (
	"context"
	"fmt"
)

// Writer persists one report and returns where it went.
type Writer interface {
	Write(ctx context.Context, name string, header []string, rows [][]string) (string, error)
}

// Sink writes reports to disk and, when a publisher is set, uploads them.
type Sink struct {
	generator *Generator
	publisher *Publisher
}

// NewSink creates a sink. publisher may be nil.
func NewSink(generator *Generator, publisher *Publisher) *Sink {
	return &Sink{generator: generator, publisher: publisher}
}

// Write generates the CSV and publishes it. The returned location is the local path.
func (s *Sink) Write(ctx context.Context, name string, header []string, rows [][]string) (string, error) {
	file, err := s.generator.Generate(name, header, rows)
	if err != nil {
		return "", err
	}
	if s.publisher == nil {
		return file, nil
	}
	if _, err := s.publisher.Publish(ctx, file); err != nil {
		return file, fmt.Errorf("report %s written but not published: %w", file, err)
	}
	return file, nil
}
