package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"registry": map[string]any{
			"householdCodePrefix": "HK",
		},
		"secretKey": map[string]any{
			"access": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "REGISTRY_HOUSEHOLDCODEPREFIX", want: "registry.householdCodePrefix"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestBuildReplicasFromEnv(t *testing.T) {
	t.Setenv("POSTGRES_REPLICAS_0_HOST", "replica-a")
	t.Setenv("POSTGRES_REPLICAS_0_PORT", "5433")
	t.Setenv("POSTGRES_REPLICAS_0_USERNAME", "reader")
	t.Setenv("POSTGRES_REPLICAS_0_PASSWORD", "secret")
	t.Setenv("POSTGRES_REPLICAS_1_HOST", "replica-b")
	t.Setenv("POSTGRES_REPLICAS_1_PORT", "5434")

	replicas := buildReplicasFromEnv()

	if len(replicas) != 2 {
		t.Fatalf("len(replicas) = %d, want 2", len(replicas))
	}
	if replicas[0].Host != "replica-a" || replicas[0].Port != "5433" ||
		replicas[0].UserName != "reader" || replicas[0].Password != "secret" {
		t.Fatalf("replica 0 = %+v", replicas[0])
	}
	if replicas[1].Host != "replica-b" || replicas[1].Port != "5434" {
		t.Fatalf("replica 1 = %+v", replicas[1])
	}
}

func TestBuildReplicasFromEnv_StopsAtIncompleteEntry(t *testing.T) {
	t.Setenv("POSTGRES_REPLICAS_0_HOST", "replica-a")
	t.Setenv("POSTGRES_REPLICAS_0_PORT", "5433")
	// Replica 1 has a host but no port, so enumeration stops before it.
	t.Setenv("POSTGRES_REPLICAS_1_HOST", "replica-b")

	replicas := buildReplicasFromEnv()

	if len(replicas) != 1 {
		t.Fatalf("len(replicas) = %d, want 1", len(replicas))
	}
}

func TestApplyRegistryDefaults(t *testing.T) {
	cfg := &Config{}
	applyRegistryDefaults(cfg)

	if cfg.Registry.HouseholdCodePrefix != defaultHouseholdCodePrefix {
		t.Fatalf("prefix = %q, want %q", cfg.Registry.HouseholdCodePrefix, defaultHouseholdCodePrefix)
	}
	if cfg.Registry.HouseholdCodeWidth != defaultHouseholdCodeWidth {
		t.Fatalf("width = %d, want %d", cfg.Registry.HouseholdCodeWidth, defaultHouseholdCodeWidth)
	}

	// An explicit configuration is left alone.
	cfg = &Config{Registry: &RegistryConfig{HouseholdCodePrefix: "TT", HouseholdCodeWidth: 7}}
	applyRegistryDefaults(cfg)

	if cfg.Registry.HouseholdCodePrefix != "TT" || cfg.Registry.HouseholdCodeWidth != 7 {
		t.Fatalf("explicit registry config was overridden: %+v", cfg.Registry)
	}
}
