//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mock/repository.go
package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"sync/atomic"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ironfellow/companion/core"
)

const (
	documentCountKey = "document_count"
	docCachePrefix   = "doc:"
	docCacheTTL      = 60 * 10
	channelPrefix    = "companion:path:"
	maxCacheKeyLen   = 250
)

// Repository persists documents in postgres and fans out change notifications through redis.
type Repository interface {
	Get(ctx context.Context, path string) (core.DocumentRecord, error)
	List(ctx context.Context, collection string) ([]core.DocumentRecord, error)
	Upsert(ctx context.Context, record core.DocumentRecord) (core.DocumentRecord, error)
	Patch(ctx context.Context, path string, patch core.Patch) (core.DocumentRecord, error)
	Delete(ctx context.Context, path string) (bool, error)
	Count(ctx context.Context) (int64, error)

	// Publish notifies listeners of path and of its parent collection.
	Publish(ctx context.Context, path string) error
	// Subscribe sends the changed path for every notification on the channels of paths. One
	// notification per path is sent once the subscription is established.
	Subscribe(ctx context.Context, paths []string, notify chan<- string) error

	GetMetrics() map[string]int64
}

type repository struct {
	db  *gorm.DB
	rdb *redis.Client
	mc  *memcache.Client

	cacheHits   atomic.Int64
	cacheMisses atomic.Int64
}

// NewRepository creates a new document repository
func NewRepository(db *gorm.DB, rdb *redis.Client, mc *memcache.Client) Repository {
	return &repository{
		db:  db,
		rdb: rdb,
		mc:  mc,
	}
}

func channelName(path string) string {
	return channelPrefix + path
}

func cacheKey(path string) (string, bool) {
	key := docCachePrefix + path
	return key, len(key) <= maxCacheKeyLen
}

func (r *repository) setCurrentCount() {
	var count int64
	err := r.db.Model(&core.DocumentRecord{}).Count(&count).Error
	if err != nil {
		slog.Error(
			"failed to count documents",
			slog.String("error", err.Error()),
			slog.String("module", "store"),
		)
		return
	}

	r.mc.Set(&memcache.Item{Key: documentCountKey, Value: []byte(strconv.FormatInt(count, 10))})
}

func (r *repository) invalidate(path string) {
	key, ok := cacheKey(path)
	if !ok {
		return
	}
	err := r.mc.Delete(key)
	if err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
		slog.Warn(
			"failed to invalidate document cache",
			slog.String("error", err.Error()),
			slog.String("module", "store"),
		)
	}
}

func (r *repository) GetMetrics() map[string]int64 {
	return map[string]int64{
		"document_cache_hits":   r.cacheHits.Load(),
		"document_cache_misses": r.cacheMisses.Load(),
	}
}

// Get returns the document stored at path
func (r *repository) Get(ctx context.Context, path string) (core.DocumentRecord, error) {
	ctx, span := tracer.Start(ctx, "Store.Repository.Get")
	defer span.End()

	key, cacheable := cacheKey(path)
	if cacheable {
		item, err := r.mc.Get(key)
		if err == nil {
			var record core.DocumentRecord
			err = json.Unmarshal(item.Value, &record)
			if err == nil {
				r.cacheHits.Add(1)
				return record, nil
			}
		}
		r.cacheMisses.Add(1)
	}

	var record core.DocumentRecord
	err := r.db.WithContext(ctx).First(&record, "path = ?", path).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.DocumentRecord{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.DocumentRecord{}, err
	}

	if cacheable {
		value, err := json.Marshal(record)
		if err == nil {
			r.mc.Set(&memcache.Item{Key: key, Value: value, Expiration: docCacheTTL})
		}
	}

	return record, nil
}

// List returns every document directly under collection ordered by path
func (r *repository) List(ctx context.Context, collection string) ([]core.DocumentRecord, error) {
	ctx, span := tracer.Start(ctx, "Store.Repository.List")
	defer span.End()

	var records []core.DocumentRecord
	err := r.db.WithContext(ctx).Where("collection = ?", collection).Order("path asc").Find(&records).Error
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return records, nil
}

// Upsert replaces the payload of a document, creating it when missing
func (r *repository) Upsert(ctx context.Context, record core.DocumentRecord) (core.DocumentRecord, error) {
	ctx, span := tracer.Start(ctx, "Store.Repository.Upsert")
	defer span.End()

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "path"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "m_date"}),
	}).Create(&record).Error
	if err != nil {
		span.RecordError(err)
		return core.DocumentRecord{}, err
	}

	r.invalidate(record.Path)
	r.mc.Delete(documentCountKey)

	return record, nil
}

// Patch applies patch to the stored payload inside a row lock
func (r *repository) Patch(ctx context.Context, path string, patch core.Patch) (core.DocumentRecord, error) {
	ctx, span := tracer.Start(ctx, "Store.Repository.Patch")
	defer span.End()

	var record core.DocumentRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&record, "path = ?", path).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return core.NewErrorNotFound()
			}
			return err
		}

		data, err := core.ApplyPatch([]byte(record.Payload), patch)
		if err != nil {
			return err
		}
		record.Payload = string(data)

		return tx.Save(&record).Error
	})
	if err != nil {
		span.RecordError(err)
		return core.DocumentRecord{}, err
	}

	r.invalidate(path)

	return record, nil
}

// Delete removes the document at path. The boolean reports whether it existed.
func (r *repository) Delete(ctx context.Context, path string) (bool, error) {
	ctx, span := tracer.Start(ctx, "Store.Repository.Delete")
	defer span.End()

	result := r.db.WithContext(ctx).Where("path = ?", path).Delete(&core.DocumentRecord{})
	if result.Error != nil {
		span.RecordError(result.Error)
		return false, result.Error
	}

	r.invalidate(path)
	if result.RowsAffected > 0 {
		r.mc.Decrement(documentCountKey, 1)
	}

	return result.RowsAffected > 0, nil
}

// Count returns the total number of documents
func (r *repository) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Store.Repository.Count")
	defer span.End()

	item, err := r.mc.Get(documentCountKey)
	if err != nil {
		span.RecordError(err)

		if errors.Is(err, memcache.ErrCacheMiss) {
			r.setCurrentCount()
			return 0, errors.Wrap(err, "trying to fix...")
		}

		return 0, err
	}

	count, err := strconv.ParseInt(string(item.Value), 10, 64)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	return count, nil
}

func (r *repository) Publish(ctx context.Context, path string) error {
	ctx, span := tracer.Start(ctx, "Store.Repository.Publish")
	defer span.End()

	for _, target := range []string{path, core.ParentPath(path)} {
		err := r.rdb.Publish(ctx, channelName(target), path).Err()
		if err != nil {
			span.RecordError(err)
			slog.ErrorContext(
				ctx, "fail to publish message to Redis",
				slog.String("error", err.Error()),
				slog.String("module", "store"),
			)
			return err
		}
	}

	return nil
}

func (r *repository) Subscribe(ctx context.Context, paths []string, notify chan<- string) error {
	if len(paths) == 0 {
		return nil
	}

	channels := make([]string, len(paths))
	for i, path := range paths {
		channels[i] = channelName(path)
	}

	pubsub := r.rdb.Subscribe(ctx, channels...)
	defer pubsub.Close()

	// wait for the subscription so that no change after the first snapshot is missed
	for range channels {
		_, err := pubsub.Receive(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}

	for _, path := range paths {
		select {
		case <-ctx.Done():
			return nil
		case notify <- path:
		}
	}

	psch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-psch:
			if !ok {
				return errors.New("redis subscription closed")
			}
			select {
			case <-ctx.Done():
				return nil
			case notify <- msg.Payload:
			}
		}
	}
}
