package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/maxhum-sudo/LifeCost/internal/domain"
	"github.com/maxhum-sudo/LifeCost/internal/engine"
)

// QuestionnaireLoader fetches questionnaire content from a backing store (file, Postgres).
type QuestionnaireLoader interface {
	LoadQuestionnaire(ctx context.Context, questionnaireID string) (domain.Questionnaire, error)
}

// CatalogRepository caches questionnaire JSON in Redis and falls back to a loader on cache miss.
// Questionnaires are stored as: SET questionnaire:{id} {json} EX ttl
// The last decoded catalog is kept in process and reused while the cached JSON is unchanged.
type CatalogRepository struct {
	client *redis.Client
	loader QuestionnaireLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
	rndMu  sync.Mutex

	mu    sync.Mutex
	built map[string]builtCatalog
}

type builtCatalog struct {
	raw     string
	catalog *engine.Catalog
}

func NewCatalogRepository(client *redis.Client, loader QuestionnaireLoader, ttl time.Duration) *CatalogRepository {
	return &CatalogRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		built:  make(map[string]builtCatalog),
	}
}

func (r *CatalogRepository) GetCatalog(ctx context.Context, questionnaireID string) (*engine.Catalog, error) {
	key := r.key(questionnaireID)

	raw, err := r.client.Get(ctx, key).Result()
	if err == nil {
		if c, err := r.build(questionnaireID, raw); err == nil {
			return c, nil
		}
	}

	result, err, _ := r.sf.Do(questionnaireID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if raw, err := r.client.Get(ctx, key).Result(); err == nil {
			if c, err := r.build(questionnaireID, raw); err == nil {
				return c, nil
			}
		}

		q, err := r.loader.LoadQuestionnaire(ctx, questionnaireID)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(q)
		if err != nil {
			return nil, err
		}
		c, err := r.build(questionnaireID, string(data))
		if err != nil {
			return nil, err
		}

		// best-effort: a Redis outage still serves the loaded questionnaire
		_ = r.client.Set(ctx, key, data, r.ttlWithJitter()).Err()
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*engine.Catalog), nil
}

// build decodes and validates raw, reusing the previous catalog when raw is unchanged.
func (r *CatalogRepository) build(questionnaireID, raw string) (*engine.Catalog, error) {
	r.mu.Lock()
	prev, ok := r.built[questionnaireID]
	r.mu.Unlock()
	if ok && prev.raw == raw {
		return prev.catalog, nil
	}

	var q domain.Questionnaire
	if err := json.Unmarshal([]byte(raw), &q); err != nil {
		return nil, err
	}
	c, err := engine.NewCatalog(q)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.built[questionnaireID] = builtCatalog{raw: raw, catalog: c}
	r.mu.Unlock()
	return c, nil
}

// Invalidate drops the cached questionnaire so the next read reloads it.
func (r *CatalogRepository) Invalidate(ctx context.Context, questionnaireID string) error {
	return r.client.Del(ctx, r.key(questionnaireID)).Err()
}

func (r *CatalogRepository) key(questionnaireID string) string {
	return "questionnaire:" + questionnaireID
}

func (r *CatalogRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
