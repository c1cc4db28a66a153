package authflow

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/credport/authflow/internal/transport"
	"github.com/credport/authflow/internal/validate"
	"github.com/credport/authflow/markers"
)

// Builder defines a public type used by authflow APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config

	httpClient  *http.Client
	redisClient *redis.Client
	markerStore markers.Store
	navigator   Navigator
	auditSink   AuditSink

	built bool
}

// New describes the new operation and its observable behavior.
//
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithBaseURL sets the portal backend origin without replacing the rest of
// the configuration.
func (b *Builder) WithBaseURL(baseURL string) *Builder {
	b.config.HTTP.BaseURL = baseURL
	return b
}

// WithHTTPClient injects a custom HTTP client. A cookie jar is installed
// on it during Build if it has none.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// WithRedis backs the session marker store with Redis instead of process
// memory, for shells that outlive a single process.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redisClient = client
	return b
}

// WithMarkerStore injects a custom marker store, overriding both the
// default memory store and any Redis client.
func (b *Builder) WithMarkerStore(store markers.Store) *Builder {
	b.markerStore = store
	return b
}

// WithNavigator wires the presentational navigation callback invoked after
// a successful terminal state.
func (b *Builder) WithNavigator(nav Navigator) *Builder {
	b.navigator = nav
	return b
}

// WithAuditSink enables auditing into the given sink.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	b.config.Audit.Enabled = true
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	if err := b.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	client, err := transport.New(transport.Options{
		BaseURL:           b.config.HTTP.BaseURL,
		Timeout:           b.config.HTTP.Timeout,
		UserAgent:         b.config.HTTP.UserAgent,
		CorrelationHeader: b.config.HTTP.CorrelationHeader,
		HTTPClient:        b.httpClient,
	})
	if err != nil {
		return nil, err
	}

	checker, err := validate.New(validate.Policy{
		MinLength:      b.config.Password.MinLength,
		RequireUpper:   b.config.Password.RequireUpper,
		RequireLower:   b.config.Password.RequireLower,
		RequireDigit:   b.config.Password.RequireDigit,
		RequireSpecial: b.config.Password.RequireSpecial,
	})
	if err != nil {
		return nil, err
	}

	store := b.markerStore
	if store == nil {
		if b.redisClient != nil {
			store = markers.NewRedisStore(b.redisClient, b.config.Markers.RedisPrefix)
		} else {
			store = markers.NewMemoryStore()
		}
	}

	engine := &Engine{
		config:    b.config,
		transport: client,
		checker:   checker,
		markers:   store,
		navigator: b.navigator,
		gate:      newSurfaceGate(),
		audit:     newAuditDispatcher(b.config.Audit, b.auditSink),
		metrics:   NewMetrics(b.config.Metrics),
	}

	b.built = true
	return engine, nil
}
