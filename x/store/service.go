// Package store serves the shared document store: a postgres/redis/memcache backed service, an
// in-memory variant and their REST and websocket handlers.
package store

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ironfellow/companion/core"
)

// Service is a core.RemoteStore that also reports its size.
type Service interface {
	core.RemoteStore
	Count(ctx context.Context) (int64, error)
	GetMetrics() map[string]int64
}

type service struct {
	repository Repository
}

// NewService creates a new store service
func NewService(repository Repository) Service {
	return &service{repository}
}

// Get implements core.RemoteStore
func (s *service) Get(ctx context.Context, path string) (core.Document, error) {
	ctx, span := tracer.Start(ctx, "Store.Service.Get")
	defer span.End()

	info, err := documentPath(path)
	if err != nil {
		return core.Document{}, err
	}
	span.SetAttributes(attribute.String("path", info.Path))

	record, err := s.repository.Get(ctx, info.Path)
	if err != nil {
		span.RecordError(err)
		return core.Document{}, err
	}

	return record.ToDocument(), nil
}

// List implements core.RemoteStore
func (s *service) List(ctx context.Context, path string) ([]core.Document, error) {
	ctx, span := tracer.Start(ctx, "Store.Service.List")
	defer span.End()

	info, err := collectionPath(path)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("path", info.Path))

	records, err := s.repository.List(ctx, info.Path)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	docs := make([]core.Document, len(records))
	for i, record := range records {
		docs[i] = record.ToDocument()
	}
	return docs, nil
}

// Set implements core.RemoteStore
func (s *service) Set(ctx context.Context, path string, data json.RawMessage) error {
	ctx, span := tracer.Start(ctx, "Store.Service.Set")
	defer span.End()

	info, err := documentPath(path)
	if err != nil {
		return err
	}
	if err := validateObject(data); err != nil {
		return err
	}
	span.SetAttributes(attribute.String("path", info.Path))

	_, err = s.repository.Upsert(ctx, core.DocumentRecord{
		Path:       info.Path,
		Collection: core.ParentPath(info.Path),
		Payload:    string(data),
	})
	if err != nil {
		span.RecordError(err)
		return err
	}

	s.publish(ctx, info.Path)
	return nil
}

// Patch implements core.RemoteStore
func (s *service) Patch(ctx context.Context, path string, patch core.Patch) error {
	ctx, span := tracer.Start(ctx, "Store.Service.Patch")
	defer span.End()

	info, err := documentPath(path)
	if err != nil {
		return err
	}
	if patch.IsEmpty() {
		return core.NewErrorValidation("empty patch")
	}
	span.SetAttributes(attribute.String("path", info.Path))

	_, err = s.repository.Patch(ctx, info.Path, patch)
	if err != nil {
		span.RecordError(err)
		return err
	}

	s.publish(ctx, info.Path)
	return nil
}

// Delete implements core.RemoteStore
func (s *service) Delete(ctx context.Context, path string) error {
	ctx, span := tracer.Start(ctx, "Store.Service.Delete")
	defer span.End()

	info, err := documentPath(path)
	if err != nil {
		return err
	}
	span.SetAttributes(attribute.String("path", info.Path))

	existed, err := s.repository.Delete(ctx, info.Path)
	if err != nil {
		span.RecordError(err)
		return err
	}

	if existed {
		s.publish(ctx, info.Path)
	}
	return nil
}

// the write already committed, so a lost notification is only logged
func (s *service) publish(ctx context.Context, path string) {
	err := s.repository.Publish(ctx, path)
	if err != nil {
		slog.WarnContext(
			ctx, "change notification lost",
			slog.String("path", path),
			slog.String("error", err.Error()),
			slog.String("module", "store"),
		)
	}
}

// Subscribe implements core.RemoteStore
func (s *service) Subscribe(ctx context.Context, path string, snapshots chan<- core.Snapshot) error {
	info, err := core.ParsePath(path)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	notify := make(chan string, 16)
	errc := make(chan error, 1)
	go func() {
		errc <- s.repository.Subscribe(ctx, []string{info.Path}, notify)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errc:
			if ctx.Err() != nil {
				return nil
			}
			if err == nil {
				err = core.NewErrorNetworkFailure()
			}
			return err
		case <-notify:
			// a burst of changes yields one snapshot of the latest state
			for drained := false; !drained; {
				select {
				case <-notify:
				default:
					drained = true
				}
			}

			snapshot, err := s.snapshot(ctx, info)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}

			select {
			case <-ctx.Done():
				return nil
			case snapshots <- snapshot:
			}
		}
	}
}

func (s *service) snapshot(ctx context.Context, info core.PathInfo) (core.Snapshot, error) {
	if info.Collection {
		docs, err := s.List(ctx, info.Path)
		if err != nil {
			return core.Snapshot{}, err
		}
		return core.Snapshot{Path: info.Path, Exists: true, Documents: docs}, nil
	}

	doc, err := s.Get(ctx, info.Path)
	if err != nil {
		if errors.Is(err, core.ErrorNotFound{}) {
			return core.Snapshot{Path: info.Path, Exists: false, Documents: []core.Document{}}, nil
		}
		return core.Snapshot{}, err
	}
	return core.Snapshot{Path: info.Path, Exists: true, Documents: []core.Document{doc}}, nil
}

func (s *service) Count(ctx context.Context) (int64, error) {
	return s.repository.Count(ctx)
}

func (s *service) GetMetrics() map[string]int64 {
	return s.repository.GetMetrics()
}
