package application

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/suitelint/suitelint/internal/domain"
	"github.com/suitelint/suitelint/internal/domain/rules"
)

// ValidateService orchestrates the validation pipeline:
// load → size check → preflight duplicate scan → hierarchy walk → semantic
// phase → enrich and dedup.
type ValidateService struct {
	loader domain.TextLoader
	store  *domain.MetadataStore
	cfg    domain.Config
	locks  *PathLocks
}

func NewValidateService(loader domain.TextLoader, store *domain.MetadataStore, cfg domain.Config, locks *PathLocks) *ValidateService {
	return &ValidateService{
		loader: loader,
		store:  store,
		cfg:    cfg,
		locks:  locks,
	}
}

// ValidateFile runs the full pipeline against one suite file.
func (s *ValidateService) ValidateFile(path string) (*domain.ValidationResult, error) {
	s.locks.Lock(path)
	defer s.locks.Unlock(path)
	return s.validateLocked(path)
}

// validateLocked is the pipeline body; callers must hold the path lock.
func (s *ValidateService) validateLocked(path string) (*domain.ValidationResult, error) {
	start := time.Now()

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", path, err)
	}
	if limit := int64(s.cfg.MaxFileSizeMB) * 1024 * 1024; limit > 0 && info.Size() > limit {
		return nil, fmt.Errorf("%s is %d bytes, over the %d MB limit", path, info.Size(), s.cfg.MaxFileSizeMB)
	}

	text, encoding, err := s.loader.Load(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(text, "\n")

	findings := rules.Preflight(lines)

	validator := rules.NewHierarchyValidator(path, s.store)
	findings = append(findings, validator.Validate(text)...)

	return &domain.ValidationResult{
		FilePath:     path,
		Findings:     rules.Finalize(findings, lines),
		ValidatedAt:  start,
		Duration:     time.Since(start),
		FileSize:     info.Size(),
		ModTime:      info.ModTime(),
		Encoding:     encoding,
		MetadataUsed: s.store != nil && s.store.Len() > 0 && !validator.Aborted(),
	}, nil
}

// ValidateBatch validates files concurrently on a bounded worker pool.
// Results come back in input order; per-file failures are joined into the
// returned error without aborting the rest of the batch. Cancellation stops
// workers between files.
func (s *ValidateService) ValidateBatch(ctx context.Context, paths []string) ([]*domain.ValidationResult, error) {
	workers := s.cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	type job struct {
		idx  int
		path string
	}

	jobs := make(chan job)
	results := make([]*domain.ValidationResult, len(paths))
	errs := make([]error, len(paths))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				if ctx.Err() != nil {
					errs[j.idx] = ctx.Err()
					continue
				}
				results[j.idx], errs[j.idx] = s.ValidateFile(j.path)
			}
		}()
	}

	for i, p := range paths {
		select {
		case jobs <- job{idx: i, path: p}:
		case <-ctx.Done():
			errs[i] = ctx.Err()
		}
	}
	close(jobs)
	wg.Wait()

	out := make([]*domain.ValidationResult, 0, len(paths))
	for _, r := range results {
		if r != nil {
			out = append(out, r)
		}
	}
	return out, errors.Join(errs...)
}
