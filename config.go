package authflow

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// Config defines a public type used by authflow APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	HTTP     HTTPConfig
	Password PasswordPolicyConfig
	Routes   RouteConfig
	Entry    EntryConfig
	Markers  MarkerConfig
	Audit    AuditConfig
	Metrics  MetricsConfig
}

/*
====================================
HTTP CONFIG
====================================
*/

// HTTPConfig defines a public type used by authflow APIs.
//
// HTTPConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HTTPConfig struct {
	// BaseURL is the portal backend origin, e.g. "https://portal.example.edu".
	// Exchange paths from the /auth/* table are resolved against it.
	BaseURL string

	// Timeout bounds each exchange. There is no application-level retry on
	// top of it; a timed-out exchange surfaces as an error state.
	Timeout time.Duration

	UserAgent string

	// CorrelationHeader carries the per-exchange correlation ID. A uuid is
	// generated when the context does not supply one.
	CorrelationHeader string
}

/*
====================================
PASSWORD POLICY CONFIG
====================================
*/

// PasswordPolicyConfig is the local strength policy applied before any
// network call. Registration and set-password exchanges are rejected with
// zero network calls when the candidate password fails it.
type PasswordPolicyConfig struct {
	MinLength      int
	RequireUpper   bool
	RequireLower   bool
	RequireDigit   bool
	RequireSpecial bool
}

/*
====================================
ROUTE CONFIG
====================================
*/

// RouteConfig holds the destination table consumed by the route resolver,
// plus the post-success navigation delay.
type RouteConfig struct {
	StudentDestination     RouteTarget
	EmployerDestination    RouteTarget
	RegistrarDestination   RouteTarget
	AdminDestination       RouteTarget
	SetPasswordDestination RouteTarget
	FallbackDestination    RouteTarget

	// NavigationDelay is the fixed pause between a successful terminal
	// state and the navigator call, so the session cookie set by the
	// server is durably committed before the next page's own identity
	// check runs. Ordering pragmatism, not a protocol guarantee.
	NavigationDelay time.Duration
}

/*
====================================
ENTRY CONFIG
====================================
*/

// EntryConfig defines a public type used by authflow APIs.
//
// EntryConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type EntryConfig struct {
	// RegistrarAllowedRoles is the post-authentication authorization set
	// for the registrar-restricted entry point. A resolved role outside it
	// fails with ErrAccessRestricted even though the credential exchange
	// itself succeeded.
	RegistrarAllowedRoles []Role
}

/*
====================================
MARKER CONFIG
====================================
*/

// MarkerConfig defines a public type used by authflow APIs.
//
// MarkerConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MarkerConfig struct {
	// RedisPrefix namespaces marker keys when a Redis-backed store is
	// wired through [Builder.WithRedis].
	RedisPrefix string
}

/*
====================================
AUDIT / METRICS CONFIG
====================================
*/

// AuditConfig defines a public type used by authflow APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig defines a public type used by authflow APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
DEFAULT CONFIG
====================================
*/

// DefaultConfig returns the configuration used by [New] before any
// Builder overrides are applied.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		HTTP: HTTPConfig{
			Timeout:           30 * time.Second,
			UserAgent:         "authflow/1",
			CorrelationHeader: "X-Correlation-ID",
		},
		Password: PasswordPolicyConfig{
			MinLength:    8,
			RequireUpper: true,
			RequireLower: true,
			RequireDigit: true,
		},
		Routes: RouteConfig{
			StudentDestination:     "/student",
			EmployerDestination:    "/employer",
			RegistrarDestination:   "/registrar",
			AdminDestination:       "/admin/portal",
			SetPasswordDestination: "/set-password",
			FallbackDestination:    "/",
			NavigationDelay:        150 * time.Millisecond,
		},
		Entry: EntryConfig{
			RegistrarAllowedRoles: []Role{RoleAdmin, RoleEmployer, RoleRegistrar},
		},
		Markers: MarkerConfig{
			RedisPrefix: "af",
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	if len(cfg.Entry.RegistrarAllowedRoles) > 0 {
		out.Entry.RegistrarAllowedRoles = make([]Role, len(cfg.Entry.RegistrarAllowedRoles))
		copy(out.Entry.RegistrarAllowedRoles, cfg.Entry.RegistrarAllowedRoles)
	}
	return out
}

/*
====================================
VALIDATION
====================================
*/

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	if c.HTTP.BaseURL == "" {
		return errors.New("http base url required")
	}
	u, err := url.Parse(c.HTTP.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("http base url must be an absolute URL")
	}
	if c.HTTP.Timeout <= 0 {
		return errors.New("http timeout must be positive")
	}
	if c.HTTP.CorrelationHeader == "" {
		return errors.New("correlation header required")
	}

	if c.Password.MinLength < 1 {
		return errors.New("password min length must be at least 1")
	}

	for _, dest := range []RouteTarget{
		c.Routes.StudentDestination,
		c.Routes.EmployerDestination,
		c.Routes.RegistrarDestination,
		c.Routes.AdminDestination,
		c.Routes.SetPasswordDestination,
		c.Routes.FallbackDestination,
	} {
		if dest == "" {
			return errors.New("route destinations must all be set")
		}
		if !strings.HasPrefix(string(dest), "/") {
			return errors.New("route destinations must be absolute paths")
		}
	}
	if c.Routes.NavigationDelay < 0 {
		return errors.New("navigation delay must not be negative")
	}

	if len(c.Entry.RegistrarAllowedRoles) == 0 {
		return errors.New("registrar entry point requires at least one allowed role")
	}

	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("audit buffer size must be positive when audit is enabled")
	}

	return nil
}
