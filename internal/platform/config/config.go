package config

import (
	"os"
	"strings"
	"time"
)

// Server captures process-level configuration. Everything comes from the
// environment so main stays lean.
type Server struct {
	Addr string

	// RulesPath points at a YAML rule file. Empty means the built-in seed
	// (or Postgres when RulesPostgresDSN is set).
	RulesPath string

	// RulesPostgresDSN switches rule loading to the jurisdiction_rules
	// table. Takes precedence over RulesPath.
	RulesPostgresDSN string

	// RedisURL enables the rule snapshot cache when non-empty.
	RedisURL      string
	RulesCacheTTL time.Duration

	// AuditPostgresDSN enables the outbox-backed audit store.
	AuditPostgresDSN string

	// KafkaBrokers enables the direct audit sink when non-empty.
	KafkaBrokers []string
	KafkaTopic   string

	// AdminJWTKey signs admin bearer tokens for the rules surface.
	AdminJWTKey string
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	addr := os.Getenv("CANNA_GATE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	cacheTTL := 5 * time.Minute
	if raw := os.Getenv("CANNA_GATE_RULES_CACHE_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cacheTTL = d
		}
	}

	var brokers []string
	if raw := os.Getenv("CANNA_GATE_KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	topic := os.Getenv("CANNA_GATE_KAFKA_TOPIC")
	if topic == "" {
		topic = "cannagate.audit"
	}

	jwtKey := os.Getenv("CANNA_GATE_ADMIN_JWT_KEY")
	if jwtKey == "" {
		// Development default - must be overridden in production.
		jwtKey = "dev-secret-key-change-in-production"
	}

	return Server{
		Addr:             addr,
		RulesPath:        os.Getenv("CANNA_GATE_RULES_FILE"),
		RulesPostgresDSN: os.Getenv("CANNA_GATE_RULES_POSTGRES_DSN"),
		RedisURL:         os.Getenv("CANNA_GATE_REDIS_URL"),
		RulesCacheTTL:    cacheTTL,
		AuditPostgresDSN: os.Getenv("CANNA_GATE_AUDIT_POSTGRES_DSN"),
		KafkaBrokers:     brokers,
		KafkaTopic:       topic,
		AdminJWTKey:      jwtKey,
	}
}
