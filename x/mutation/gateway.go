// Package mutation is the single write path to the remote store.
package mutation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/xid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ironfellow/companion/core"
)

var tracer = otel.Tracer("mutation")

type fieldKey struct {
	path  string
	field string
}

// fieldEntry exists only while a field is not confirmed.
type fieldEntry struct {
	state      core.FieldState
	generation uint64
}

type gateway struct {
	store core.RemoteStore

	mu         sync.Mutex
	fields     map[fieldKey]fieldEntry
	generation uint64
}

// NewGateway creates a mutation gateway writing to store.
func NewGateway(store core.RemoteStore) core.MutationGateway {
	return &gateway{
		store:  store,
		fields: make(map[fieldKey]fieldEntry),
	}
}

func documentPath(path string) (string, error) {
	info, err := core.ParsePath(path)
	if err != nil {
		return "", err
	}
	if info.Collection {
		return "", core.NewErrorValidation("not a document path: " + path)
	}
	return info.Path, nil
}

// classify maps store failures into the error taxonomy. Anything unrecognized is treated as a
// transient transport failure.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, core.ErrorNotFound{}) ||
		errors.Is(err, core.ErrorPermissionDenied{}) ||
		errors.Is(err, core.ErrorValidation{}) ||
		errors.Is(err, core.ErrorNetworkFailure{}) ||
		errors.Is(err, context.Canceled) {
		return err
	}
	return errors.Wrap(core.NewErrorNetworkFailure(), err.Error())
}

func (g *gateway) begin(path string, fields []string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.generation++
	for _, field := range fields {
		g.fields[fieldKey{path, field}] = fieldEntry{state: core.FieldPendingWrite, generation: g.generation}
	}
	return g.generation
}

// transition moves fields still owned by generation to state. Fields taken over by a newer
// write are left alone.
func (g *gateway) transition(path string, fields []string, generation uint64, state core.FieldState) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, field := range fields {
		key := fieldKey{path, field}
		entry, ok := g.fields[key]
		if !ok || entry.generation != generation {
			continue
		}
		if state == core.FieldConfirmed {
			delete(g.fields, key)
			continue
		}
		g.fields[key] = fieldEntry{state: state, generation: generation}
	}
}

// FieldState implements core.MutationGateway
func (g *gateway) FieldState(path, field string) core.FieldState {
	cleaned, err := core.CleanPath(path)
	if err != nil {
		return core.FieldConfirmed
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	entry, ok := g.fields[fieldKey{cleaned, field}]
	if !ok {
		return core.FieldConfirmed
	}
	return entry.state
}

// Write implements core.MutationGateway
func (g *gateway) Write(ctx context.Context, path string, patch core.Patch) error {
	ctx, span := tracer.Start(ctx, "Mutation.Gateway.Write")
	defer span.End()

	path, err := documentPath(path)
	if err != nil {
		return err
	}
	if patch.IsEmpty() {
		return core.NewErrorValidation("empty patch")
	}
	span.SetAttributes(attribute.String("path", path))

	fields := patch.Fields()
	generation := g.begin(path, fields)
	defer g.transition(path, fields, generation, core.FieldConfirmed)

	err = classify(g.store.Patch(ctx, path, patch))
	if err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}

// WriteOptimistic implements core.MutationGateway
func (g *gateway) WriteOptimistic(ctx context.Context, path string, patch core.Patch, apply func(), revert func()) error {
	ctx, span := tracer.Start(ctx, "Mutation.Gateway.WriteOptimistic")
	defer span.End()

	path, err := documentPath(path)
	if err != nil {
		return err
	}
	if patch.IsEmpty() {
		return core.NewErrorValidation("empty patch")
	}
	span.SetAttributes(attribute.String("path", path))

	fields := patch.Fields()
	generation := g.begin(path, fields)

	if apply != nil {
		apply()
	}

	err = classify(g.store.Patch(ctx, path, patch))
	if err != nil {
		span.RecordError(err)

		g.transition(path, fields, generation, core.FieldReverting)
		if revert != nil {
			revert()
		}
		g.transition(path, fields, generation, core.FieldConfirmed)

		slog.WarnContext(
			ctx, fmt.Sprintf("optimistic write to %s reverted: %v", path, err),
			slog.String("module", "mutation"),
		)
		return err
	}

	g.transition(path, fields, generation, core.FieldConfirmed)
	return nil
}

// Set implements core.MutationGateway
func (g *gateway) Set(ctx context.Context, path string, value any) error {
	ctx, span := tracer.Start(ctx, "Mutation.Gateway.Set")
	defer span.End()

	path, err := documentPath(path)
	if err != nil {
		return err
	}
	span.SetAttributes(attribute.String("path", path))

	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(core.NewErrorValidation("value is not serializable"), err.Error())
	}

	err = classify(g.store.Set(ctx, path, data))
	if err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}

// Add implements core.MutationGateway
func (g *gateway) Add(ctx context.Context, collectionPath string, value any) (string, error) {
	ctx, span := tracer.Start(ctx, "Mutation.Gateway.Add")
	defer span.End()

	info, err := core.ParsePath(collectionPath)
	if err != nil {
		return "", err
	}
	if !info.Collection {
		return "", core.NewErrorValidation("not a collection path: " + collectionPath)
	}

	id := xid.New().String()
	err = g.Set(ctx, core.JoinPath(info.Path, id), value)
	if err != nil {
		return "", err
	}

	return id, nil
}

// Delete implements core.MutationGateway
func (g *gateway) Delete(ctx context.Context, path string) error {
	ctx, span := tracer.Start(ctx, "Mutation.Gateway.Delete")
	defer span.End()

	path, err := documentPath(path)
	if err != nil {
		return err
	}
	span.SetAttributes(attribute.String("path", path))

	err = classify(g.store.Delete(ctx, path))
	if err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}
