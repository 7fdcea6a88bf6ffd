package repos_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/modashop/catalog-gateway/internal/adapters/repos"
	"github.com/modashop/catalog-gateway/internal/config"
	"github.com/modashop/catalog-gateway/internal/infrastructure"
	"github.com/modashop/catalog-gateway/internal/ports"
	"github.com/modashop/catalog-gateway/pkg/logger"
	"github.com/stretchr/testify/suite"
)

type KeydbCacheRepositoryTestSuite struct {
	suite.Suite
	miniRedis   *miniredis.Miniredis
	keydbClient *infrastructure.KeydbClient
	repo        *repos.KeydbCacheRepository
}

func TestKeydbCacheRepositoryTestSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(KeydbCacheRepositoryTestSuite))
}

func (s *KeydbCacheRepositoryTestSuite) SetupTest() {
	var err error
	s.miniRedis, err = miniredis.Run()
	s.Require().NoError(err)

	cfg := config.Cache{
		Address:      s.miniRedis.Addr(),
		Password:     "",
		DB:           0,
		PoolSize:     5,
		DialTimeout:  time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	}

	s.keydbClient = infrastructure.NewKeydbClient(cfg, logger.NewTestLogger())
	s.repo = repos.NewKeydbCacheRepository(s.keydbClient, ports.SystemClock{}, 512, logger.NewTestLogger())
}

func (s *KeydbCacheRepositoryTestSuite) TearDownTest() {
	if s.keydbClient != nil {
		_ = s.keydbClient.Close()
	}
	if s.miniRedis != nil {
		s.miniRedis.Close()
	}
}

func (s *KeydbCacheRepositoryTestSuite) TestLookup_Miss() {
	entry, hit, err := s.repo.Lookup(context.Background(), "catalog.search:absent")

	s.Require().NoError(err)
	s.Require().False(hit)
	s.Require().Nil(entry)
}

func (s *KeydbCacheRepositoryTestSuite) TestStoreAndLookup() {
	ctx := context.Background()
	payload := []byte(`{"items":[{"id":"sku-1"}],"total":1}`)

	err := s.repo.Store(ctx, "catalog.search:abc", payload, time.Hour)
	s.Require().NoError(err)

	entry, hit, err := s.repo.Lookup(ctx, "catalog.search:abc")

	s.Require().NoError(err)
	s.Require().True(hit)
	s.Require().NotNil(entry)
	s.Require().Equal("catalog.search:abc", entry.Fingerprint)
	s.Require().Equal(payload, entry.Payload)
}

func (s *KeydbCacheRepositoryTestSuite) TestStore_RejectsNonPositiveTTL() {
	err := s.repo.Store(context.Background(), "fp", []byte("x"), 0)
	s.Require().Error(err)
}

func (s *KeydbCacheRepositoryTestSuite) TestEntryExpiration() {
	ctx := context.Background()

	err := s.repo.Store(ctx, "fp", []byte("payload"), 100*time.Millisecond)
	s.Require().NoError(err)

	_, hit, err := s.repo.Lookup(ctx, "fp")
	s.Require().NoError(err)
	s.Require().True(hit)

	s.miniRedis.FastForward(200 * time.Millisecond)

	_, hit, err = s.repo.Lookup(ctx, "fp")
	s.Require().NoError(err)
	s.Require().False(hit)
}

func (s *KeydbCacheRepositoryTestSuite) TestStats() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Store(ctx, "a", []byte("a"), time.Hour))
	s.Require().NoError(s.repo.Store(ctx, "b", []byte("b"), time.Hour))

	_, hit, err := s.repo.Lookup(ctx, "a")
	s.Require().NoError(err)
	s.Require().True(hit)

	_, hit, err = s.repo.Lookup(ctx, "missing")
	s.Require().NoError(err)
	s.Require().False(hit)

	stats := s.repo.Stats(ctx)
	s.Require().Equal(2, stats.Size)
	s.Require().Equal(512, stats.MaxSize)
	s.Require().Equal(uint64(1), stats.HitCount)
	s.Require().Equal(uint64(1), stats.MissCount)
}

func (s *KeydbCacheRepositoryTestSuite) TestIsHealthy() {
	s.Require().True(s.repo.IsHealthy(context.Background()))

	s.Require().NoError(s.keydbClient.Close())
	s.Require().False(s.repo.IsHealthy(context.Background()))
	s.keydbClient = nil
}
