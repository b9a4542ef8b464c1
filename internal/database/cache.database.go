package database

import (
	"fmt"

	"mantis/config"

	"github.com/valkey-io/valkey-go"
)

type CacheClient = valkey.Client

type Cache struct {
	General     CacheClient
	Performance CacheClient
}

// Valkey database index organization. Each index keeps a cache category
// separate so a flush of one never touches the other.
const (
	// GENERAL_CACHE_INDEX (DB 0) - miscellaneous cache operations
	GENERAL_CACHE_INDEX = iota

	// PERFORMANCE_CACHE_INDEX (DB 1) - precomputed performance aggregates
	// (current-year unit and section completion rates, warmed nightly)
	PERFORMANCE_CACHE_INDEX
)

func (s *DB) initializeCacheDB(config config.Config) error {
	log := s.log.Function("initializeCacheDB")
	log.Info("initializing cache database")

	address := config.DatabaseCacheAddress
	port := config.DatabaseCachePort
	if address == "" || port == 0 {
		return log.ErrMsg("cache address or port is empty")
	}

	var cacheDB Cache

	var err error
	cacheDB.General, err = valkey.NewClient(
		valkey.ClientOption{
			InitAddress: []string{fmt.Sprintf("%s:%d", address, port)},
			SelectDB:    GENERAL_CACHE_INDEX,
		},
	)
	if err != nil {
		return log.Err("failed to create general valkey client", err)
	}

	cacheDB.Performance, err = valkey.NewClient(
		valkey.ClientOption{
			InitAddress: []string{fmt.Sprintf("%s:%d", address, port)},
			SelectDB:    PERFORMANCE_CACHE_INDEX,
		},
	)
	if err != nil {
		return log.Err("failed to create performance valkey client", err)
	}

	s.Cache = cacheDB
	log.Info("cache database initialized")
	return nil
}
