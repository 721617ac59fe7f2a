package service

import (
	"context"
	"time"

	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/api/dto"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/sequence"
	ierr "github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/errors"
)

// SequenceService hands out document numbers. Every value comes from one
// atomic increment at the store, so concurrent callers in any process never
// share a value. A failed allocation is never retried: its outcome is unknown
// and the caller must not create the document.
type SequenceService interface {
	// Allocate returns the next value of the named counter
	Allocate(ctx context.Context, name string) (int64, error)
	// AllocateCode allocates the next value and formats it with the counter's template
	AllocateCode(ctx context.Context, name string) (string, error)
	// Next is Allocate plus AllocateCode's formatting, as an API response
	Next(ctx context.Context, name string) (*dto.SequenceResponse, error)
	// Peek returns the last allocated value without allocating
	Peek(ctx context.Context, name string) (*dto.SequenceResponse, error)
}

type sequenceService struct {
	ServiceParams
}

func NewSequenceService(params ServiceParams) SequenceService {
	return &sequenceService{
		ServiceParams: params,
	}
}

func (s *sequenceService) Allocate(ctx context.Context, name string) (int64, error) {
	if err := dto.ValidateCounterName(name); err != nil {
		return 0, err
	}

	value, err := s.SequenceRepo.Next(ctx, name)
	if err != nil {
		s.Logger.Errorw("sequence allocation failed",
			"counter", name,
			"error", err,
		)
		if ierr.IsAllocationFailed(err) {
			return 0, err
		}
		return 0, ierr.WithError(err).
			WithHint("Could not allocate a document number").
			WithReportableDetails(map[string]any{"counter": name}).
			Mark(ierr.ErrAllocationFailed)
	}

	s.Logger.Debugw("allocated sequence value",
		"counter", name,
		"value", value,
	)
	return value, nil
}

func (s *sequenceService) AllocateCode(ctx context.Context, name string) (string, error) {
	value, err := s.Allocate(ctx, name)
	if err != nil {
		return "", err
	}
	return s.template(name).Format(value, time.Now().UTC()), nil
}

func (s *sequenceService) Next(ctx context.Context, name string) (*dto.SequenceResponse, error) {
	value, err := s.Allocate(ctx, name)
	if err != nil {
		return nil, err
	}
	return &dto.SequenceResponse{
		Name:  name,
		Value: value,
		Code:  s.template(name).Format(value, time.Now().UTC()),
	}, nil
}

func (s *sequenceService) Peek(ctx context.Context, name string) (*dto.SequenceResponse, error) {
	if err := dto.ValidateCounterName(name); err != nil {
		return nil, err
	}

	value, err := readWithRetry(ctx, s.ServiceParams, func(ctx context.Context) (int64, error) {
		return s.SequenceRepo.Current(ctx, name)
	})
	if err != nil {
		return nil, err
	}
	return &dto.SequenceResponse{Name: name, Value: value}, nil
}

func (s *sequenceService) template(name string) sequence.Template {
	overrides := make(map[string]sequence.Template, len(s.Config.Sequences))
	for counter, c := range s.Config.Sequences {
		overrides[counter] = sequence.Template{
			Prefix:     c.Prefix,
			Width:      c.Width,
			DateLayout: c.DateLayout,
		}
	}
	return sequence.TemplateFor(name, overrides)
}
