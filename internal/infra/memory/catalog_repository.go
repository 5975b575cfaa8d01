package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/maxhum-sudo/LifeCost/internal/domain"
	"github.com/maxhum-sudo/LifeCost/internal/engine"
)

// QuestionnaireLoader fetches questionnaire content from a backing store (file, Postgres).
type QuestionnaireLoader interface {
	LoadQuestionnaire(ctx context.Context, questionnaireID string) (domain.Questionnaire, error)
}

// CatalogRepository validates questionnaires once and keeps the resulting
// catalogs in process. A ttl <= 0 keeps a catalog for the process lifetime.
type CatalogRepository struct {
	loader QuestionnaireLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand
	rndMu  sync.Mutex

	mu    sync.RWMutex
	cache map[string]cachedCatalog
}

type cachedCatalog struct {
	catalog   *engine.Catalog
	expiresAt time.Time
}

func NewCatalogRepository(loader QuestionnaireLoader, ttl time.Duration) *CatalogRepository {
	return &CatalogRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedCatalog),
	}
}

func (r *CatalogRepository) GetCatalog(ctx context.Context, questionnaireID string) (*engine.Catalog, error) {
	if c, ok := r.lookup(questionnaireID, r.clock()); ok {
		return c, nil
	}

	result, err, _ := r.sf.Do(questionnaireID, func() (interface{}, error) {
		now := r.clock()
		if c, ok := r.lookup(questionnaireID, now); ok {
			return c, nil
		}

		q, err := r.loader.LoadQuestionnaire(ctx, questionnaireID)
		if err != nil {
			return nil, err
		}
		c, err := engine.NewCatalog(q)
		if err != nil {
			return nil, err
		}

		entry := cachedCatalog{catalog: c}
		if ttl := r.ttlWithJitter(); ttl > 0 {
			entry.expiresAt = now.Add(ttl)
		}
		r.mu.Lock()
		r.cache[questionnaireID] = entry
		r.mu.Unlock()
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*engine.Catalog), nil
}

func (r *CatalogRepository) lookup(questionnaireID string, now time.Time) (*engine.Catalog, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.cache[questionnaireID]
	if !ok {
		return nil, false
	}
	if !entry.expiresAt.IsZero() && !entry.expiresAt.After(now) {
		return nil, false
	}
	return entry.catalog, true
}

func (r *CatalogRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticQuestionnaireLoader is a simple loader backed by an in-memory map (useful for tests/demos).
type StaticQuestionnaireLoader struct {
	questionnaires map[string]domain.Questionnaire
}

func NewStaticQuestionnaireLoader(questionnaires map[string]domain.Questionnaire) *StaticQuestionnaireLoader {
	return &StaticQuestionnaireLoader{questionnaires: questionnaires}
}

func (l *StaticQuestionnaireLoader) LoadQuestionnaire(_ context.Context, questionnaireID string) (domain.Questionnaire, error) {
	if q, ok := l.questionnaires[questionnaireID]; ok {
		return q, nil
	}
	return domain.Questionnaire{}, domain.ErrQuestionnaireNotFound
}
