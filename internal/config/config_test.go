package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testConfigYAML = `
server:
  host: "localhost"
  port: 8080
  mode: "test"
  read_timeout: 30s
  write_timeout: 30s
  idle_timeout: 60s
  max_header_bytes: 1048576

database:
  mysql:
    host: "localhost"
    port: 3306
    username: "test_user"
    password: "test_password"
    database: "test_db"
    charset: "utf8mb4"
    parse_time: true
    loc: "Local"
    max_idle_conns: 10
    max_open_conns: 100
    conn_max_lifetime: 3600s
    conn_max_idle_time: 1800s
    log_level: "info"
  redis:
    host: "localhost"
    port: 6379
    password: ""
    database: 0
    pool_size: 10
    min_idle_conns: 5
    dial_timeout: 5s
    read_timeout: 3s
    write_timeout: 3s
    pool_timeout: 4s
    idle_timeout: 300s

log:
  level: "info"
  format: "json"
  output: "stdout"
  file_path: "logs/app.log"
  max_size: 100
  max_backups: 5
  max_age: 30
  compress: true
  caller: true

security:
  jwt:
    secret: "test_jwt_secret_key_at_least_32_chars"
    issuer: "neoauth-test"
    access_token_expire: 24h
    refresh_token_expire: 168h
  cors:
    allowed_origins: ["*"]
    allowed_methods: ["GET", "POST", "PUT", "DELETE", "OPTIONS"]
    allowed_headers: ["*"]
    allow_credentials: true
    max_age: 43200
  rate_limit:
    enabled: true
    requests_per_second: 100
    burst_size: 200

otp:
  code_length: 4
  expire_window: 5m

app:
  name: "NeoAuth Test"
  version: "1.0.0"
  environment: "test"
  debug: true
  timezone: "Asia/Shanghai"
`

// TestLoadConfig 测试配置加载功能
func TestLoadConfig(t *testing.T) {
	// 创建临时配置文件
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")
	if err := os.WriteFile(configFile, []byte(testConfigYAML), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	// 测试加载配置
	config, err := LoadConfig(tempDir, "test")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// 验证配置值
	if config.Server.Host != "localhost" {
		t.Errorf("Expected server host 'localhost', got '%s'", config.Server.Host)
	}

	if config.Server.Port != 8080 {
		t.Errorf("Expected server port 8080, got %d", config.Server.Port)
	}

	if config.Database.MySQL.Database != "test_db" {
		t.Errorf("Expected database name 'test_db', got '%s'", config.Database.MySQL.Database)
	}

	if config.Security.JWT.Secret != "test_jwt_secret_key_at_least_32_chars" {
		t.Errorf("Expected JWT secret, got '%s'", config.Security.JWT.Secret)
	}

	if config.Otp.CodeLength != 4 {
		t.Errorf("Expected otp code length 4, got %d", config.Otp.CodeLength)
	}

	if config.Otp.ExpireWindow != 5*time.Minute {
		t.Errorf("Expected otp expire window 5m, got %v", config.Otp.ExpireWindow)
	}

	if config.App.Environment != "test" {
		t.Errorf("Expected environment 'test', got '%s'", config.App.Environment)
	}
}

// TestLoadConfigWithEnvVars 测试环境变量覆盖配置
func TestLoadConfigWithEnvVars(t *testing.T) {
	// 设置环境变量
	os.Setenv("NEOAUTH_SERVER_PORT", "9090")
	os.Setenv("NEOAUTH_MYSQL_HOST", "env_mysql_host")
	os.Setenv("NEOAUTH_JWT_SECRET", "env_jwt_secret_key_at_least_32_chars")
	defer func() {
		os.Unsetenv("NEOAUTH_SERVER_PORT")
		os.Unsetenv("NEOAUTH_MYSQL_HOST")
		os.Unsetenv("NEOAUTH_JWT_SECRET")
	}()

	// 创建临时配置文件
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")
	if err := os.WriteFile(configFile, []byte(testConfigYAML), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	// 测试加载配置
	config, err := LoadConfig(tempDir, "test")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// 验证环境变量覆盖了配置文件的值
	if config.Server.Port != 9090 {
		t.Errorf("Expected server port 9090 (from env), got %d", config.Server.Port)
	}

	if config.Database.MySQL.Host != "env_mysql_host" {
		t.Errorf("Expected mysql host 'env_mysql_host' (from env), got '%s'", config.Database.MySQL.Host)
	}

	if config.Security.JWT.Secret != "env_jwt_secret_key_at_least_32_chars" {
		t.Errorf("Expected JWT secret from env, got '%s'", config.Security.JWT.Secret)
	}
}

// TestConfigValidation 测试配置验证
func TestConfigValidation(t *testing.T) {
	validBase := func() *Config {
		return &Config{
			Server: ServerConfig{
				Host: "localhost",
				Port: 8080,
				Mode: "debug",
			},
			Database: DatabaseConfig{
				MySQL: MySQLConfig{
					Host:     "localhost",
					Database: "test_db",
				},
				Redis: RedisConfig{
					Host: "localhost",
				},
			},
			Security: SecurityConfig{
				JWT: JWTConfig{
					Secret: "test_jwt_secret_key_at_least_32_chars",
				},
			},
			Log: LogConfig{
				Level:  "info",
				Format: "json",
				Output: "stdout",
			},
			Otp: OtpConfig{
				CodeLength:   4,
				ExpireWindow: 5 * time.Minute,
			},
		}
	}

	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
		errorMsg    string
	}{
		{
			name:        "valid config",
			mutate:      func(c *Config) {},
			expectError: false,
		},
		{
			name:        "invalid port",
			mutate:      func(c *Config) { c.Server.Port = -1 },
			expectError: true,
			errorMsg:    "invalid server port",
		},
		{
			name:        "short jwt secret",
			mutate:      func(c *Config) { c.Security.JWT.Secret = "short" },
			expectError: true,
			errorMsg:    "jwt secret must be at least 32 characters long",
		},
		{
			name:        "invalid otp length",
			mutate:      func(c *Config) { c.Otp.CodeLength = 0 },
			expectError: true,
			errorMsg:    "invalid otp code length",
		},
		{
			name:        "zero otp expire window",
			mutate:      func(c *Config) { c.Otp.ExpireWindow = 0 },
			expectError: true,
			errorMsg:    "otp expire window must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validBase()
			tt.mutate(config)
			err := validateConfig(config)
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error but got none")
				} else if tt.errorMsg != "" && !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("Expected error message to contain '%s', got '%s'", tt.errorMsg, err.Error())
				}
			} else {
				if err != nil {
					t.Errorf("Expected no error but got: %v", err)
				}
			}
		})
	}
}

// TestEnvManager 测试环境变量管理器
func TestEnvManager(t *testing.T) {
	em := NewEnvManager("NEOAUTHTEST")

	os.Setenv("NEOAUTHTEST_STRING_VAL", "test_value")
	os.Setenv("NEOAUTHTEST_INT_VAL", "42")
	os.Setenv("NEOAUTHTEST_BOOL_VAL", "true")
	os.Setenv("NEOAUTHTEST_DURATION_VAL", "5m")
	os.Setenv("NEOAUTHTEST_SLICE_VAL", "a, b ,c")
	defer func() {
		os.Unsetenv("NEOAUTHTEST_STRING_VAL")
		os.Unsetenv("NEOAUTHTEST_INT_VAL")
		os.Unsetenv("NEOAUTHTEST_BOOL_VAL")
		os.Unsetenv("NEOAUTHTEST_DURATION_VAL")
		os.Unsetenv("NEOAUTHTEST_SLICE_VAL")
	}()

	if val := em.GetString("STRING_VAL", "default"); val != "test_value" {
		t.Errorf("Expected 'test_value', got '%s'", val)
	}

	if val := em.GetInt("INT_VAL", 0); val != 42 {
		t.Errorf("Expected 42, got %d", val)
	}

	if val := em.GetBool("BOOL_VAL", false); val != true {
		t.Errorf("Expected true, got %t", val)
	}

	if val := em.GetDuration("DURATION_VAL", 0); val != 5*time.Minute {
		t.Errorf("Expected 5m, got %v", val)
	}

	if val := em.GetStringSlice("SLICE_VAL", nil); len(val) != 3 || val[0] != "a" || val[1] != "b" {
		t.Errorf("Expected [a b c], got %v", val)
	}

	// 测试不存在的环境变量
	if val := em.GetString("NON_EXISTENT", "default"); val != "default" {
		t.Errorf("Expected 'default', got '%s'", val)
	}

	if !em.Exists("STRING_VAL") {
		t.Error("Expected environment variable to exist")
	}

	if em.Exists("NON_EXISTENT") {
		t.Error("Expected environment variable to not exist")
	}
}

// TestConfigHelperMethods 测试配置辅助方法
func TestConfigHelperMethods(t *testing.T) {
	config := &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		App: AppConfig{
			Environment: "development",
		},
		Database: DatabaseConfig{
			MySQL: MySQLConfig{
				Host:      "localhost",
				Port:      3306,
				Username:  "user",
				Password:  "pass",
				Database:  "test",
				Charset:   "utf8mb4",
				ParseTime: true,
				Loc:       "Local",
			},
			Redis: RedisConfig{
				Host: "localhost",
				Port: 6379,
			},
		},
	}

	// 测试服务器地址
	expectedAddr := "localhost:8080"
	if addr := config.Server.GetAddress(); addr != expectedAddr {
		t.Errorf("Expected address '%s', got '%s'", expectedAddr, addr)
	}

	// 测试环境判断
	if !config.App.IsDevelopment() {
		t.Error("Expected to be development environment")
	}

	if config.App.IsProduction() {
		t.Error("Expected not to be production environment")
	}

	// 测试MySQL DSN
	expectedDSN := "user:pass@tcp(localhost:3306)/test?charset=utf8mb4&parseTime=true&loc=Local"
	if dsn := config.Database.MySQL.GetMySQLDSN(); dsn != expectedDSN {
		t.Errorf("Expected DSN '%s', got '%s'", expectedDSN, dsn)
	}

	// 测试Redis地址
	expectedRedisAddr := "localhost:6379"
	if addr := config.Database.Redis.GetRedisAddress(); addr != expectedRedisAddr {
		t.Errorf("Expected Redis address '%s', got '%s'", expectedRedisAddr, addr)
	}
}
