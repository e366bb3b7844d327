package config

import (
	"fmt"
	"strconv"
	"strings"
)

// LookupFunc matches os.LookupEnv
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides fields from environment variables. Variables that are
// unset or empty leave the current value in place.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	strs := []struct {
		key string
		dst *string
	}{
		{"APP_NAME", &c.AppName},
		{"DATABASE_URL", &c.DatabaseURL},
		{"GEMINI_API_KEY", &c.APIKey},
		{"GEMINI_MODEL", &c.GeminiModel},
		{"LOG_LEVEL", &c.LogLevel},
		{"LOG_FORMAT", &c.LogFormat},
		{"STORAGE_DIR", &c.Storage.Dir},
		{"S3_BUCKET", &c.Storage.S3Bucket},
		{"S3_REGION", &c.Storage.S3Region},
		{"S3_ENDPOINT", &c.Storage.S3Endpoint},
		{"S3_ACCESS_KEY", &c.Storage.S3AccessKey},
		{"S3_SECRET_KEY", &c.Storage.S3SecretKey},
		{"S3_PUBLIC_URL", &c.Storage.PublicURL},
		{"RABBITMQ_URL", &c.Queue.URL},
		{"RABBITMQ_QUEUE", &c.Queue.Queue},
		{"RABBITMQ_EXCHANGE", &c.Queue.Exchange},
		{"SCORING_STRATEGY", &c.Scoring.Strategy},
		{"FETCH_CACHE_TTL", &c.Fetch.CacheTTL},
	}
	for _, s := range strs {
		if v, ok := get(s.key); ok {
			*s.dst = v
		}
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"PORT", &c.Server.Port},
		{"WORKER_COUNT", &c.Queue.Workers},
		{"SCORING_WORKERS", &c.Scoring.Workers},
		{"RESPONSIBILITY_CAP", &c.Scoring.ResponsibilityCap},
	}
	for _, i := range ints {
		if v, ok := get(i.key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", i.key, err)
			}
			*i.dst = n
		}
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"USE_BROWSER", &c.Fetch.UseBrowser},
		{"EXPORT_PDF", &c.Server.ExportPDF},
		{"AUTH_REQUIRED", &c.Auth.Required},
	}
	for _, b := range bools {
		if v, ok := get(b.key); ok {
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", b.key, err)
			}
			*b.dst = parsed
		}
	}

	if v, ok := get("AUTH_CLIENTS"); ok {
		clients, err := parseClients(v)
		if err != nil {
			return err
		}
		c.Auth.Clients = clients
	}
	return nil
}

// parseClients reads "id:hash,id2:hash2". bcrypt hashes never contain ':' or ','.
func parseClients(s string) (map[string]string, error) {
	clients := map[string]string{}
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		id, hash, ok := strings.Cut(pair, ":")
		if !ok || id == "" || hash == "" {
			return nil, fmt.Errorf("invalid AUTH_CLIENTS entry %q (want id:bcrypt-hash)", pair)
		}
		clients[id] = hash
	}
	return clients, nil
}
