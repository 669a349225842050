package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"SERVER_PORT", "CHANGE_FEED", "SIGNED_URL_TTL_SECONDS", "MAX_IMAGE_BYTES", "FEED_RECONNECT_DELAY"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr() != ":8080" {
		t.Fatalf("addr = %s", cfg.Addr())
	}
	if cfg.ChangeFeed != FeedPostgres || cfg.SignedURLTTL != time.Hour || cfg.MaxImageBytes != 5<<20 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.FeedReconnectDelay != 2*time.Second {
		t.Fatalf("reconnect delay = %s", cfg.FeedReconnectDelay)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CHANGE_FEED", "redis")
	t.Setenv("SIGNED_URL_TTL_SECONDS", "120")
	t.Setenv("FEED_RECONNECT_DELAY", "500ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ChangeFeed != FeedRedis || cfg.SignedURLTTL != 2*time.Minute || cfg.FeedReconnectDelay != 500*time.Millisecond {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"MAX_IMAGE_BYTES":        "five",
		"SIGNED_URL_TTL_SECONDS": "-1",
		"FEED_RECONNECT_DELAY":   "soon",
		"CHANGE_FEED":            "kafka",
		"CLINIC_TIMEZONE":        "Mars/Olympus",
	}
	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			t.Setenv(k, v)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", k, v)
			}
		})
	}
}
