package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"coach-crm/models"
	"coach-crm/monitoring"
)

const (
	defaultCatalogURL = "https://wger.de/api/v2"
	poolSize          = 50
	englishLanguage   = 2
	maxDescription    = 200
	descPlaceholder   = "A great exercise to add to your routine."
)

// Result always carries exercises: on any catalog failure the fallback
// table fills in and Success turns false, but the caller never gets a
// hard error.
type Result struct {
	Success   bool                       `json:"success"`
	Exercises []models.SuggestedExercise `json:"exercises"`
	Error     string                     `json:"error,omitempty"`
}

// Service fetches exercise suggestions from the external catalog. No
// caching: every call is a fresh request.
type Service struct {
	baseURL string
	client  *http.Client

	mu   sync.Mutex
	rand *rand.Rand
}

func NewService() *Service {
	baseURL := os.Getenv("CATALOG_URL")
	if baseURL == "" {
		baseURL = defaultCatalogURL
	}

	return &Service{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewServiceWith lets tests point at a fake catalog and pin the random
// source.
func NewServiceWith(baseURL string, client *http.Client, r *rand.Rand) *Service {
	return &Service{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		rand:    r,
	}
}

type catalogResponse struct {
	Results []catalogExercise `json:"results"`
}

type catalogExercise struct {
	Translations []catalogTranslation `json:"translations"`
	Category     *catalogCategory     `json:"category"`
}

type catalogTranslation struct {
	Language    int    `json:"language"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type catalogCategory struct {
	Name string `json:"name"`
}

// Suggest returns limit exercises for the given goal. Catalog records
// are normalized, shuffled and sampled; any failure falls back to the
// static goal-keyed table with Success=false and a user-facing message.
func (s *Service) Suggest(ctx context.Context, goal string, limit int) Result {
	if limit <= 0 {
		limit = 5
	}

	pool, err := s.fetchPool(ctx)
	if err != nil {
		monitoring.CatalogFetchFailures.Inc()
		return s.fallback(goal, limit)
	}
	if len(pool) == 0 {
		monitoring.CatalogFetchFailures.Inc()
		return s.fallback(goal, limit)
	}

	s.shuffle(pool)
	if len(pool) > limit {
		pool = pool[:limit]
	}

	return Result{Success: true, Exercises: pool}
}

func (s *Service) fetchPool(ctx context.Context) ([]models.SuggestedExercise, error) {
	url := fmt.Sprintf("%s/exerciseinfo/?language=%d&limit=%d", s.baseURL, englishLanguage, poolSize)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var payload catalogResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	pool := make([]models.SuggestedExercise, 0, len(payload.Results))
	for _, rec := range payload.Results {
		if ex, ok := normalize(rec); ok {
			pool = append(pool, ex)
		}
	}
	return pool, nil
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// normalize resolves name and description, preferring the English
// translation and falling back to the first available one. Records with
// no usable name are skipped.
func normalize(rec catalogExercise) (models.SuggestedExercise, bool) {
	var tr *catalogTranslation
	for i := range rec.Translations {
		if rec.Translations[i].Language == englishLanguage {
			tr = &rec.Translations[i]
			break
		}
	}
	if tr == nil && len(rec.Translations) > 0 {
		tr = &rec.Translations[0]
	}
	if tr == nil || strings.TrimSpace(tr.Name) == "" {
		return models.SuggestedExercise{}, false
	}

	desc := strings.TrimSpace(tagPattern.ReplaceAllString(tr.Description, ""))
	if runes := []rune(desc); len(runes) > maxDescription {
		desc = string(runes[:maxDescription])
	}
	if desc == "" {
		desc = descPlaceholder
	}

	ex := models.SuggestedExercise{
		Name:        strings.TrimSpace(tr.Name),
		Description: desc,
	}
	if rec.Category != nil {
		ex.Category = rec.Category.Name
	}
	return ex, true
}

// shuffle is a Fisher-Yates permutation over the injected source, so
// repeated calls surface varied exercises.
func (s *Service) shuffle(list []models.SuggestedExercise) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(list) - 1; i >= 1; i-- {
		j := s.rand.Intn(i + 1)
		list[i], list[j] = list[j], list[i]
	}
}

func (s *Service) fallback(goal string, limit int) Result {
	table, ok := fallbackTables[goal]
	if !ok {
		table = defaultFallback
	}

	pool := make([]models.SuggestedExercise, len(table))
	copy(pool, table)
	s.shuffle(pool)
	if len(pool) > limit {
		pool = pool[:limit]
	}

	return Result{
		Success:   false,
		Exercises: pool,
		Error:     "Could not reach the exercise catalog. Showing standard suggestions instead.",
	}
}
