//go:build wireinject

package main

import (
	"github.com/bradfitz/gomemcache/memcache"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/ironfellow/companion/x/store"
)

var storeServiceProvider = wire.NewSet(store.NewService, store.NewRepository)

func SetupStoreService(db *gorm.DB, rdb *redis.Client, mc *memcache.Client) store.Service {
	wire.Build(storeServiceProvider)
	return nil
}
