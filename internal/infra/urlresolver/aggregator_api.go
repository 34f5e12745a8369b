package urlresolver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hornwatch/internal/resilience/circuitbreaker"
	"hornwatch/internal/resilience/retry"

	"github.com/sony/gobreaker"
)

const (
	batchConcurrency = 5
	batchPause       = 200 * time.Millisecond
)

// batchAPIEndpoint is the aggregator's batch-execute endpoint used to
// decode an item id into its publisher URL. Unresolved after strategies
// 1/2/4, this is invoked only for items still needed for image enrichment.
const batchAPIEndpoint = "https://news.google.com/_/DotsSplashUi/data/batchexecute"

// BatchResolver resolves aggregator item ids to publisher URLs through the
// aggregator's asynchronous batch-execute API (strategy 3).
type BatchResolver struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	endpoint       string
}

// NewBatchResolver creates a BatchResolver using client for HTTP calls.
func NewBatchResolver(client *http.Client) *BatchResolver {
	return &BatchResolver{
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.AggregatorAPIConfig()),
		retryConfig:    retry.AggregatorAPIConfig(),
		endpoint:       batchAPIEndpoint,
	}
}

// NewBatchResolverForTest creates a BatchResolver against a custom endpoint,
// for tests that stand up a fake batch-execute server.
func NewBatchResolverForTest(client *http.Client, endpoint string) *BatchResolver {
	b := NewBatchResolver(client)
	b.endpoint = endpoint
	return b
}

// ResolveBatchURLs resolves a batch of aggregator URLs still unresolved
// after strategies 1/2/4, by extracting each URL's opaque article id and
// decoding it through the batch-execute API. The returned map is keyed by
// the original aggregator URL; URLs whose id could not be extracted or
// whose id did not resolve are simply absent from the result.
func (b *BatchResolver) ResolveBatchURLs(ctx context.Context, aggregatorURLs []string) map[string]string {
	idToURL := make(map[string]string, len(aggregatorURLs))
	ids := make([]string, 0, len(aggregatorURLs))
	for _, u := range aggregatorURLs {
		id, ok := articlesPathSegment(u)
		if !ok {
			continue
		}
		idToURL[id] = u
		ids = append(ids, id)
	}

	resolvedByID := b.ResolveBatch(ctx, ids)
	resolved := make(map[string]string, len(resolvedByID))
	for id, publisherURL := range resolvedByID {
		if original, ok := idToURL[id]; ok {
			resolved[original] = publisherURL
		}
	}
	return resolved
}

// ResolveBatch decodes each encoded id in ids, at most batchConcurrency
// concurrent calls per batch with a batchPause between batches. The
// returned map only contains ids that resolved to a non-aggregator URL;
// failures are omitted rather than surfaced.
func (b *BatchResolver) ResolveBatch(ctx context.Context, ids []string) map[string]string {
	resolved := make(map[string]string, len(ids))

	for start := 0; start < len(ids); start += batchConcurrency {
		end := start + batchConcurrency
		if end > len(ids) {
			end = len(ids)
		}
		batch := ids[start:end]

		results := make(chan struct {
			id  string
			url string
		}, len(batch))

		for _, id := range batch {
			go func(id string) {
				u, err := b.resolveOne(ctx, id)
				if err != nil {
					slog.Debug("aggregator batch decode failed", slog.String("id", id), slog.Any("error", err))
					results <- struct {
						id  string
						url string
					}{id, ""}
					return
				}
				results <- struct {
					id  string
					url string
				}{id, u}
			}(id)
		}

		for range batch {
			r := <-results
			if r.url != "" {
				resolved[r.id] = r.url
			}
		}

		if end < len(ids) {
			select {
			case <-time.After(batchPause):
			case <-ctx.Done():
				return resolved
			}
		}
	}

	return resolved
}

func (b *BatchResolver) resolveOne(ctx context.Context, id string) (string, error) {
	var found string

	retryErr := retry.WithBackoff(ctx, b.retryConfig, func() error {
		cbResult, err := b.circuitBreaker.Execute(func() (interface{}, error) {
			return b.doResolve(ctx, id)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("aggregator API circuit breaker open, request rejected",
					slog.String("id", id), slog.String("state", b.circuitBreaker.State().String()))
			}
			return err
		}
		found = cbResult.(string)
		return nil
	})
	if retryErr != nil {
		return "", retryErr
	}
	return found, nil
}

func (b *BatchResolver) doResolve(ctx context.Context, id string) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, strategyTimeout)
	defer cancel()

	freq, err := buildBatchRequestPayload(id)
	if err != nil {
		return "", err
	}
	payload := url.Values{}
	payload.Set("f.req", freq)

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, b.endpoint, strings.NewReader(payload.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := b.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", &retry.HTTPError{StatusCode: resp.StatusCode, Message: "aggregator batch API"}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}

	var raw interface{}
	if err := json.Unmarshal(stripAntiXSSIPrefix(body), &raw); err != nil {
		return "", err
	}

	candidate, ok := findURLInResponse(raw)
	if !ok || !isCandidatePublisherURL(candidate) {
		return "", errors.New("no publisher URL in aggregator response")
	}
	return candidate, nil
}

// batchRequestParamPadding is the trailing null slots the aggregator's
// batch-execute RPC expects after the locale/country/id tuple.
const batchRequestParamPadding = 30

// buildBatchRequestPayload builds the f.req form value for decoding id:
// the inner RPC payload ["garturlreq", [[["en-US","US",[id]], null×30]]]
// wrapped as [[["Fbv4je", <json>, null, "generic"]]].
func buildBatchRequestPayload(id string) (string, error) {
	params := make([]interface{}, 0, batchRequestParamPadding+1)
	params = append(params, []interface{}{"en-US", "US", []string{id}})
	for i := 0; i < batchRequestParamPadding; i++ {
		params = append(params, nil)
	}

	inner, err := json.Marshal([]interface{}{"garturlreq", []interface{}{params}})
	if err != nil {
		return "", err
	}

	wrapped, err := json.Marshal([]interface{}{
		[]interface{}{
			[]interface{}{"Fbv4je", string(inner), nil, "generic"},
		},
	})
	if err != nil {
		return "", err
	}
	return string(wrapped), nil
}

// stripAntiXSSIPrefix removes the ")]}'\n<length>\n" anti-hijacking header
// the batch-execute endpoint prepends to every response body.
func stripAntiXSSIPrefix(body []byte) []byte {
	if !bytes.HasPrefix(body, []byte(")]}'")) {
		return body
	}
	firstNL := bytes.IndexByte(body, '\n')
	if firstNL == -1 {
		return body
	}
	rest := body[firstNL+1:]
	secondNL := bytes.IndexByte(rest, '\n')
	if secondNL == -1 {
		return rest
	}
	return rest[secondNL+1:]
}

// findURLInResponse walks an arbitrarily nested JSON value looking for the
// first string that looks like a non-aggregator URL. The batch-execute
// response shape is an opaque, deeply nested array; this avoids binding to
// its exact structure.
func findURLInResponse(v interface{}) (string, bool) {
	switch val := v.(type) {
	case string:
		if isCandidatePublisherURL(val) {
			return val, true
		}
	case []interface{}:
		for _, item := range val {
			if u, ok := findURLInResponse(item); ok {
				return u, true
			}
		}
	case map[string]interface{}:
		for _, item := range val {
			if u, ok := findURLInResponse(item); ok {
				return u, true
			}
		}
	}
	return "", false
}
