package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.HTTPAddr != ":3445" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if !cfg.KafkaEnabled {
		t.Error("kafka should be enabled by default")
	}
	if cfg.ValidateItemsTopic != "validate-items" || cfg.RestoreStockTopic != "restore-stock" || cfg.ChangeStateTopic != "change-order-state" {
		t.Errorf("unexpected topics: %q %q %q", cfg.ValidateItemsTopic, cfg.RestoreStockTopic, cfg.ChangeStateTopic)
	}
	if cfg.DedupTTL != 10*time.Minute {
		t.Errorf("DedupTTL = %s", cfg.DedupTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("KAFKA_ENABLED", "false")
	t.Setenv("KAFKA_BROKERS", "b1:9092,b2:9092")
	t.Setenv("SHUTDOWN_TIMEOUT", "3")

	cfg := Load()
	if cfg.KafkaEnabled {
		t.Error("KAFKA_ENABLED=false not honored")
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "b2:9092" {
		t.Errorf("brokers = %v", cfg.KafkaBrokers)
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Errorf("ShutdownTimeout = %s", cfg.ShutdownTimeout)
	}
}
