// Package indexer walks a Moodle course and feeds every downloadable file
// through text extraction into the vector store.
package indexer

import (
	"context"
	"fmt"

	"github.com/sandevgo/campusrag/internal/extract"
	"github.com/sandevgo/campusrag/internal/moodle"
	"github.com/sandevgo/campusrag/pkg/log"
)

type Source interface {
	ListCourses(ctx context.Context) ([]moodle.Course, error)
	CourseContents(ctx context.Context, courseID int) ([]moodle.Section, error)
	DownloadFile(ctx context.Context, fileURL, filename string) ([]byte, string, error)
}

type Indexer interface {
	IndexDocument(ctx context.Context, text string, metadata map[string]any) error
}

type Service struct {
	source Source
	store  Indexer
}

func NewService(source Source, store Indexer) *Service {
	return &Service{source: source, store: store}
}

// Run indexes every file of the course identified by its short name.
// Failures are per-file: a file that cannot be downloaded, extracted or
// indexed is logged and skipped while the rest of the batch continues.
func (s *Service) Run(ctx context.Context, courseShortName string) error {
	logger := log.FromCtx(ctx)

	course, err := s.findCourse(ctx, courseShortName)
	if err != nil {
		return err
	}
	logger.Info().Str("course", course.FullName).Msg("indexing course")

	sections, err := s.source.CourseContents(ctx, course.ID)
	if err != nil {
		return fmt.Errorf("failed to fetch course contents: %w", err)
	}

	var indexed, skipped int
	for _, section := range sections {
		logger.Info().Str("section", section.Name).Msg("processing section")

		for _, module := range section.Modules {
			for _, content := range module.Contents {
				if content.FileURL == "" {
					continue
				}

				if err := s.indexFile(ctx, course, section, module, content); err != nil {
					logger.Error().Err(err).Str("file", content.Filename).Msg("skipping file")
					skipped++
					continue
				}
				indexed++
			}
		}
	}

	logger.Info().Int("indexed", indexed).Int("skipped", skipped).Msg("course indexing finished")
	return nil
}

func (s *Service) findCourse(ctx context.Context, shortName string) (moodle.Course, error) {
	logger := log.FromCtx(ctx)

	courses, err := s.source.ListCourses(ctx)
	if err != nil {
		return moodle.Course{}, fmt.Errorf("failed to list courses: %w", err)
	}

	for _, course := range courses {
		if course.ShortName == shortName {
			return course, nil
		}
	}

	for _, course := range courses {
		logger.Info().Str("shortname", course.ShortName).Str("fullname", course.FullName).Msg("available course")
	}
	return moodle.Course{}, fmt.Errorf("course %q not found", shortName)
}

func (s *Service) indexFile(ctx context.Context, course moodle.Course, section moodle.Section, module moodle.Module, content moodle.Content) error {
	logger := log.FromCtx(ctx)
	logger.Info().Str("file", content.Filename).Msg("downloading file")

	data, contentType, err := s.source.DownloadFile(ctx, content.FileURL, content.Filename)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	text, metadata, err := extract.Text(ctx, data, contentType, content.Filename)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	if text == "" {
		logger.Warn().Str("file", content.Filename).Msg("no text extracted, skipping")
		return nil
	}

	metadata["course"] = course.FullName
	metadata["section"] = section.Name
	metadata["module"] = module.Name
	metadata["module_type"] = module.ModName

	logger.Info().Str("file", content.Filename).Msg("indexing document")
	if err := s.store.IndexDocument(ctx, text, metadata); err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}
	return nil
}
