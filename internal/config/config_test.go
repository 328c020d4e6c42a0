package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("AUTH_PROVIDER", AuthJWT)
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("UPTRACE_ENABLED", "false")
}

func TestLoad_AppEnvValidation(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StoreBackend != StoreMemory {
		t.Fatalf("expected memory store by default, got %q", cfg.StoreBackend)
	}
	if cfg.PrincipalCache != PrincipalCacheMemory {
		t.Fatalf("expected memory principal cache by default, got %q", cfg.PrincipalCache)
	}
	if !cfg.AuthRequireGoogleForTeams {
		t.Fatalf("expected Google sign-in to be required for teams by default")
	}
	if cfg.ReconcileWorkers != 8 || cfg.MigrationWorkers != 4 {
		t.Fatalf("unexpected worker defaults: reconcile=%d migration=%d", cfg.ReconcileWorkers, cfg.MigrationWorkers)
	}
	if cfg.NATSSubjectPrefix != "registration.changes" {
		t.Fatalf("unexpected NATS subject prefix: %q", cfg.NATSSubjectPrefix)
	}
}

func TestLoad_StoreBackendValidation(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STORE_BACKEND", "sqlite")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown STORE_BACKEND")
	}
}

func TestLoad_JWTRequiresSecret(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when AUTH_PROVIDER=jwt without JWT_SECRET")
	}
}

func TestLoad_AnubisDoesNotNeedJWTSecret(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("AUTH_PROVIDER", AuthAnubis)
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ANUBIS_CIRCUIT_FAILURE_COUNT", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AnubisCircuitFailureCount != 3 {
		t.Fatalf("unexpected AnubisCircuitFailureCount: %d", cfg.AnubisCircuitFailureCount)
	}
}

func TestLoad_RedisCacheRequiresURL(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PRINCIPAL_CACHE", PrincipalCacheRedis)
	t.Setenv("REDIS_URL", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PRINCIPAL_CACHE=redis without REDIS_URL")
	}
}

func TestLoad_AdminUserIDsParsing(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ADMIN_USER_IDS", " staff-1, ,staff-2 ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.AdminUserIDs) != 2 || cfg.AdminUserIDs[0] != "staff-1" || cfg.AdminUserIDs[1] != "staff-2" {
		t.Fatalf("unexpected AdminUserIDs: %#v", cfg.AdminUserIDs)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("APP_SERVICE_NAME", "registration-api")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://pyroscope:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "registration-api" {
		t.Fatalf("unexpected PyroscopeAppName: %q", cfg.PyroscopeAppName)
	}
	if cfg.PyroscopeUploadRate != 15*time.Second {
		t.Fatalf("unexpected PyroscopeUploadRate: %s", cfg.PyroscopeUploadRate)
	}
}

func TestLoad_CORSOriginsParsing(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.org, https://b.example.org")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("unexpected CORSAllowedOrigins: %#v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_ReadsDotEnvWithoutOverridingEnvironment(t *testing.T) {
	setBaseEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	content := "MONGO_DATABASE=from_file\nAPP_HTTP_ADDR=:9999\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("APP_ENV_FILE", path)
	t.Setenv("APP_HTTP_ADDR", ":7070")
	// godotenv sets MONGO_DATABASE through os.Setenv; restore it afterwards.
	t.Setenv("MONGO_DATABASE", "")
	_ = os.Unsetenv("MONGO_DATABASE")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.MongoDatabase != "from_file" {
		t.Fatalf("expected MONGO_DATABASE from file, got %q", cfg.MongoDatabase)
	}
	if cfg.HTTPAddr != ":7070" {
		t.Fatalf("expected environment to win over file, got %q", cfg.HTTPAddr)
	}
}

func TestLoad_QStashRequiresTokenTargetAndJobToken(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("QSTASH_ENABLED", "true")
	t.Setenv("QSTASH_TOKEN", "qstash-token")
	t.Setenv("QSTASH_TARGET_BASE_URL", "https://api.example.com")
	t.Setenv("INTERNAL_JOB_TOKEN", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error without INTERNAL_JOB_TOKEN")
	}

	t.Setenv("INTERNAL_JOB_TOKEN", "job-token")
	t.Setenv("QSTASH_REPAIR_DELAY", "90s")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.QStashRepairDelay.Seconds() != 90 {
		t.Fatalf("unexpected repair delay %s", cfg.QStashRepairDelay)
	}
}

func TestLoad_ProfileCacheTTLCanBeDisabled(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PROFILE_CACHE_TTL", "0s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ProfileCacheTTL != 0 {
		t.Fatalf("expected disabled profile cache, got %s", cfg.ProfileCacheTTL)
	}
}
