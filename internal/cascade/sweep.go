package cascade

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/ironfellow/companion/core"
)

const (
	PhaseList   = "list"
	PhaseDelete = "delete"
)

// Sweep deletes root and every document listed under collections. Lists run concurrently, then
// deletes run concurrently, at most limit at a time when limit is positive. A failed list or
// delete does not stop the others; each is reported as one failure. root is always deleted
// first in the returned order, followed by the listed documents sorted by path.
func Sweep(ctx context.Context, store core.RemoteStore, gateway core.MutationGateway, root string, collections []string, limit int) ([]string, []core.OperationFailure) {
	listed := make([][]core.Document, len(collections))
	listErrs := make([]error, len(collections))

	g := group(limit)
	for i, collection := range collections {
		g.Go(func() error {
			listed[i], listErrs[i] = store.List(ctx, collection)
			return nil
		})
	}
	g.Wait()

	var failures []core.OperationFailure
	paths := []string{root}
	for i, collection := range collections {
		if listErrs[i] != nil {
			failures = append(failures, core.OperationFailure{Phase: PhaseList, Path: collection, Err: listErrs[i]})
			continue
		}
		for _, doc := range listed[i] {
			paths = append(paths, doc.Path)
		}
	}
	sort.Strings(paths[1:])

	deleteErrs := make([]error, len(paths))
	g = group(limit)
	for i, path := range paths {
		g.Go(func() error {
			deleteErrs[i] = gateway.Delete(ctx, path)
			return nil
		})
	}
	g.Wait()

	deleted := make([]string, 0, len(paths))
	for i, path := range paths {
		if deleteErrs[i] != nil {
			failures = append(failures, core.OperationFailure{Phase: PhaseDelete, Path: path, Err: deleteErrs[i]})
			continue
		}
		deleted = append(deleted, path)
	}

	return deleted, failures
}

func group(limit int) *errgroup.Group {
	g := &errgroup.Group{}
	if limit > 0 {
		g.SetLimit(limit)
	}
	return g
}
