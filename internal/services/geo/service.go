package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wellworld/internal/cache"
	"wellworld/internal/services/llm"
	"wellworld/internal/services/search"

	"github.com/rs/zerolog/log"
)

// Backoff grows linearly with the attempt index. Transport failures wait
// longer than empty parses because the upstream is more likely to need
// breathing room than a re-roll.
const (
	transportBackoffStep  = 800 * time.Millisecond
	emptyParseBackoffStep = 600 * time.Millisecond
)

// LinkSearcher produces the ordered link list for a country. A limit <= 0
// means the searcher's default.
type LinkSearcher interface {
	Search(ctx context.Context, country string, limit int) ([]string, error)
}

// Options configures the retry/escalation loop. FastModel and StrongModel may
// be empty; an empty model falls through to the completion client's default.
type Options struct {
	MaxRetries  int
	FastModel   string
	StrongModel string
	CacheTTL    time.Duration
}

// Service runs the link-to-geo conversion pipeline: search links, prompt the
// completion client with retry and model escalation, parse the reply, and
// reconcile the parsed records back onto the source links. All state is
// request-scoped; concurrent Convert calls are independent.
type Service struct {
	search     LinkSearcher
	llm        llm.CompletionClient
	parser     ResponseParser
	reconciler LinkReconciler
	cache      *cache.RedisCache
	opts       Options

	// sleep is swapped out by tests to record backoff instead of waiting.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewService wires the pipeline. cache may be nil, which disables result
// caching.
func NewService(searcher LinkSearcher, client llm.CompletionClient, redisCache *cache.RedisCache, opts Options) *Service {
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 3
	}
	return &Service{
		search:     searcher,
		llm:        client,
		parser:     LatLonListParser{},
		reconciler: PositionalReconciler{},
		cache:      redisCache,
		opts:       opts,
		sleep:      sleepContext,
	}
}

// Convert runs one pipeline invocation. Search failures degrade to an empty
// result unless the searcher reports a caller-facing status error, which is
// passed through unchanged. Transport or parse exhaustion surfaces as
// ErrUpstreamUnavailable / ErrUpstreamUnparsable.
func (s *Service) Convert(ctx context.Context, req ConvertRequest) ([]Location, error) {
	cacheKey := cache.ConvertKey(req.Country, req.Limit, req.Model)
	if cached, ok := s.cachedResult(ctx, cacheKey); ok {
		return cached, nil
	}

	links, err := s.search.Search(ctx, req.Country, req.Limit)
	if err != nil {
		var statusErr *search.StatusError
		if errors.As(err, &statusErr) {
			return nil, err
		}
		log.Warn().Err(err).Str("country", req.Country).Msg("Link search failed; returning empty result")
		return []Location{}, nil
	}
	if len(links) == 0 {
		return []Location{}, nil
	}

	prompt := BuildPrompt(links)

	parsed, err := s.completeWithRetry(ctx, prompt, req.Model)
	if err != nil {
		return nil, err
	}

	final, err := s.reconciler.Reconcile(parsed, links)
	if err != nil {
		// Degrade rather than fail: the coordinates are still useful without
		// their source links.
		log.Warn().Err(err).Msg("Reconciliation failed; returning unlinked records")
		return unlinked(parsed), nil
	}

	s.storeResult(ctx, cacheKey, final)
	return final, nil
}

// completeWithRetry drives the bounded attempt loop. Attempt 1 uses the fast
// model, later attempts escalate to the strong model when one is configured;
// an explicit model pins every attempt.
func (s *Service) completeWithRetry(ctx context.Context, prompt, explicitModel string) ([]ParsedLocation, error) {
	for attempt := 1; attempt <= s.opts.MaxRetries; attempt++ {
		model := s.modelForAttempt(attempt, explicitModel)

		text, err := s.llm.Complete(ctx, prompt, "", model)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt).Str("model", model).Msg("Completion call failed")
			if attempt == s.opts.MaxRetries {
				return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
			}
			if err := s.sleep(ctx, time.Duration(attempt)*transportBackoffStep); err != nil {
				return nil, err
			}
			continue
		}

		parsed := s.parser.Parse(text)
		if len(parsed) > 0 {
			return parsed, nil
		}

		log.Warn().Int("attempt", attempt).Str("model", model).Msg("Parsed location list empty; retrying")
		if attempt < s.opts.MaxRetries {
			if err := s.sleep(ctx, time.Duration(attempt)*emptyParseBackoffStep); err != nil {
				return nil, err
			}
		}
	}
	return nil, ErrUpstreamUnparsable
}

func (s *Service) modelForAttempt(attempt int, explicitModel string) string {
	if explicitModel != "" {
		return explicitModel
	}
	if attempt > 1 && s.opts.StrongModel != "" {
		return s.opts.StrongModel
	}
	return s.opts.FastModel
}

func (s *Service) cachedResult(ctx context.Context, key string) ([]Location, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrKeyNotFound) {
			log.Warn().Err(err).Str("key", key).Msg("Cache lookup failed")
		}
		return nil, false
	}
	var locations []Location
	if err := json.Unmarshal(data, &locations); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Discarding undecodable cache entry")
		return nil, false
	}
	return locations, true
}

func (s *Service) storeResult(ctx context.Context, key string, locations []Location) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, locations, s.opts.CacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to cache conversion result")
	}
}

func unlinked(parsed []ParsedLocation) []Location {
	locations := make([]Location, len(parsed))
	for i, p := range parsed {
		locations[i] = Location{LatLon: p.LatLon, Country: p.Country}
	}
	return locations
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
