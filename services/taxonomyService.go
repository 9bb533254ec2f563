package services

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"snapquiz/db"
	"snapquiz/models"

	"github.com/samber/lo"
)

// taxonomyTTL bounds how long the cached taxonomy is served before the
// reference store is consulted again.
const taxonomyTTL = 300 * time.Second

// Taxonomy is the category reference pair fed into prompt construction:
// Prefixes[i] and Descriptions[i] are derived from the same topic row, in
// store iteration order.
type Taxonomy struct {
	Prefixes     []string
	Descriptions []string
}

type TaxonomyService struct {
	repo db.TopicRepository
	now  func() time.Time

	mu          sync.Mutex
	cached      *Taxonomy
	refreshedAt time.Time
}

func NewTaxonomyService(repo db.TopicRepository) *TaxonomyService {
	return &TaxonomyService{
		repo: repo,
		now:  time.Now,
	}
}

// GetTaxonomy returns the cached taxonomy, refreshing it from the store when
// the entry is older than taxonomyTTL. Concurrent refreshes after expiry are
// tolerated; the last writer wins. A fetch failure is fatal for the caller,
// there is no stale fallback.
func (s *TaxonomyService) GetTaxonomy() (*Taxonomy, error) {
	s.mu.Lock()
	cached := s.cached
	fresh := cached != nil && s.now().Sub(s.refreshedAt) < taxonomyTTL
	s.mu.Unlock()

	if fresh {
		log.Printf("[INFO] Serving taxonomy from cache (%d categories)", len(cached.Prefixes))
		return cached, nil
	}

	topics, err := s.repo.FetchTopics()
	if err != nil {
		log.Printf("[ERROR] Failed to fetch reference topics: %v", err)
		return nil, fmt.Errorf("%w: failed to fetch reference topics: %v", models.ErrStoreFailure, err)
	}

	taxonomy := &Taxonomy{
		Prefixes: lo.Map(topics, func(t *models.TopicRef, _ int) string {
			return strings.SplitN(t.ID, "-", 2)[0]
		}),
		Descriptions: lo.Map(topics, func(t *models.TopicRef, _ int) string {
			return t.Topic + " : " + t.Description
		}),
	}

	s.mu.Lock()
	s.cached = taxonomy
	s.refreshedAt = s.now()
	s.mu.Unlock()

	log.Printf("[INFO] Refreshed taxonomy cache with %d categories", len(taxonomy.Prefixes))
	return taxonomy, nil
}
