package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/atelieperto/atelieperto/internal/logging"
	sc "github.com/atelieperto/atelieperto/internal/server/config"
	"github.com/atelieperto/atelieperto/internal/server/models"
	"github.com/atelieperto/atelieperto/internal/server/repositories/providers"
	"github.com/redis/go-redis/v9"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Featured listings get identifiers offset from the underlying rows so the
// two carousels never collide in the client.
const featuredIDOffset = 100

const featuredCacheKey = "featured_providers"

// loadDefaultAWSConfig is a test seam for the AWS SDK config loader.
var loadDefaultAWSConfig = config.LoadDefaultConfig

type ProviderService struct {
	repo   providers.Repository
	cache  *redis.Client // nil disables the featured cache
	config *sc.Config
	log    logging.Logger
}

func NewProviderService(repo providers.Repository, cache *redis.Client, cfg *sc.Config, log logging.Logger) *ProviderService {
	return &ProviderService{repo: repo, cache: cache, config: cfg, log: log}
}

func (s *ProviderService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return s3.NewPresignClient(client), nil
}

// resolvePhotos fills Photo from PhotoKey for each provider. With an S3
// endpoint configured the key is presigned for PhotoURLValidity; otherwise
// the raw key is passed through. Presign failures fall back to the raw key
// so the listing never breaks over photos.
func (s *ProviderService) resolvePhotos(ctx context.Context, list []models.Provider) {
	for i := range list {
		list[i].Photo = list[i].PhotoKey
	}
	if s.config.S3BaseEndpoint == "" {
		return
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		s.log.Warn(ctx, "building presign client failed", "err", err)
		return
	}

	bucket := s.config.S3Bucket
	for i := range list {
		if list[i].PhotoKey == "" {
			continue
		}
		req, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
			Bucket: &bucket,
			Key:    &list[i].PhotoKey,
		}, s3.WithPresignExpires(s.config.PhotoURLValidity))
		if err != nil {
			s.log.Warn(ctx, "presigning photo failed", "key", list[i].PhotoKey, "err", err)
			continue
		}
		list[i].Photo = req.URL
	}
}

// List returns the full directory listing with resolved photo URLs.
func (s *ProviderService) List(ctx context.Context) ([]models.Provider, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.resolvePhotos(ctx, list)
	return list, nil
}

// Featured returns the featured subset with offset identifiers and carousel
// addresses. The result is cached in Redis for FeaturedCacheTTL when a cache
// client is configured; cache faults are logged and served around.
func (s *ProviderService) Featured(ctx context.Context) ([]models.Provider, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, featuredCacheKey).Result()
		if err == nil {
			var list []models.Provider
			if err := json.Unmarshal([]byte(raw), &list); err == nil {
				return list, nil
			}
			s.log.Warn(ctx, "cached featured listing unreadable", "err", err)
		} else if !errors.Is(err, redis.Nil) {
			s.log.Warn(ctx, "reading featured cache failed", "err", err)
		}
	}

	list, err := s.repo.Featured(ctx)
	if err != nil {
		return nil, err
	}

	for i := range list {
		list[i].ID += featuredIDOffset
		list[i].Address = fmt.Sprintf("Rua Principal, %d - Centro, Timon - MA", 200+30*i)
	}
	s.resolvePhotos(ctx, list)

	if s.cache != nil {
		b, err := json.Marshal(list)
		if err == nil {
			if err := s.cache.Set(ctx, featuredCacheKey, b, s.config.FeaturedCacheTTL).Err(); err != nil {
				s.log.Warn(ctx, "writing featured cache failed", "err", err)
			}
		}
	}

	return list, nil
}

// Profile returns the full record for one provider. Unknown identifiers
// surface common.ErrorNotFound.
func (s *ProviderService) Profile(ctx context.Context, id int64) (*models.Profile, error) {
	p, err := s.repo.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	wrap := []models.Provider{{PhotoKey: p.PhotoKey}}
	s.resolvePhotos(ctx, wrap)
	p.Photo = wrap[0].Photo

	return p, nil
}

// WarmFeaturedCache primes the cache shortly after startup so the first
// client request is served hot. Failures are logged only.
func (s *ProviderService) WarmFeaturedCache(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := s.Featured(ctx); err != nil {
		s.log.Warn(ctx, "warming featured cache failed", "err", err)
	}
}
