package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearEnv blanks every key Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CONFIG_PATH", "APP_PORT", "CHAIN_ID", "CHAIN_NAME", "CHAIN_RPC_URL", "CHAIN_EXPLORER_URL",
		"CHAIN_CURRENCY", "CONTRACT_ADDRESS", "WALLET_KEYS", "REDIS_ADDR", "REDIS_DB",
		"BUSY_TTL_SECONDS", "USERS_DRIVER", "USERS_SQLITE_DSN", "MYSQL_HOST", "MYSQL_PORT",
		"MYSQL_DB", "MYSQL_USER", "MYSQL_PASS", "TIMEZONE",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.AppPort != "8080" || c.ChainID != 656476 || c.UsersDriver != DriverSQLite || c.BusyTTLSeconds != 120 {
		t.Fatalf("defaults = %+v", c)
	}
	if len(c.WalletKeys) != 0 {
		t.Fatalf("wallet keys = %v", c.WalletKeys)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	n := c.Network()
	if n.ChainName != "EDU Chain Testnet" || n.Currency.Symbol != "EDU" || n.Currency.Decimals != 18 || len(n.ExplorerURLs) != 1 {
		t.Fatalf("network = %+v", n)
	}
	if c.BusyTTL() != 2*time.Minute || c.Location() != time.UTC {
		t.Fatalf("ttl = %v, loc = %v", c.BusyTTL(), c.Location())
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", "9000")
	t.Setenv("CHAIN_ID", "0x539")
	t.Setenv("WALLET_KEYS", " aa , ,bb ")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("BUSY_TTL_SECONDS", "30")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.AppPort != "9000" || c.ChainID != 1337 || c.RedisDB != 3 || c.BusyTTLSeconds != 30 {
		t.Fatalf("config = %+v", c)
	}
	if len(c.WalletKeys) != 2 || c.WalletKeys[0] != "aa" || c.WalletKeys[1] != "bb" {
		t.Fatalf("keys = %q", c.WalletKeys)
	}
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := "app_port: \"7000\"\nchain_id: 31337\nchain_name: Local\nwallet_keys:\n  - cc\nusers_driver: mysql\nmysql_db: fromfile\n"
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("MYSQL_DB", "fromenv")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.AppPort != "7000" || c.ChainID != 31337 || c.ChainName != "Local" || c.UsersDriver != DriverMySQL {
		t.Fatalf("config = %+v", c)
	}
	if c.MySQLDB != "fromenv" {
		t.Fatalf("env should win over file, got %q", c.MySQLDB)
	}
	if len(c.WalletKeys) != 1 || c.WalletKeys[0] != "cc" {
		t.Fatalf("keys = %v", c.WalletKeys)
	}
	if !strings.Contains(c.MySQLDSN(), "tcp(mysql:3306)/fromenv") {
		t.Fatalf("dsn = %s", c.MySQLDSN())
	}
}

func TestLoad_BadInput(t *testing.T) {
	clearEnv(t)
	t.Setenv("CHAIN_ID", "nope")
	if _, err := Load(); err == nil {
		t.Fatalf("expected CHAIN_ID error")
	}

	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	_ = os.WriteFile(path, []byte("app_port: [oops"), 0o600)
	t.Setenv("CONFIG_PATH", path)
	if _, err := Load(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoad_MissingFileIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))
	if _, err := Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestParseChainID(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
		ok   bool
	}{
		{"656476", 656476, true},
		{"0xa045c", 656476, true},
		{"0XA045C", 656476, true},
		{"0", 0, false},
		{"0xzz", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseChainID(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Fatalf("ParseChainID(%q) = %d, %v", tt.in, got, err)
		}
	}
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	base, _ := Load()

	tests := []struct {
		name string
		mut  func(c *Config)
		want string
	}{
		{"contract", func(c *Config) { c.ContractAddress = "0x123" }, "CONTRACT_ADDRESS"},
		{"driver", func(c *Config) { c.UsersDriver = "postgres" }, "USERS_DRIVER"},
		{"mysql port", func(c *Config) { c.UsersDriver = DriverMySQL; c.MySQLPort = "notaport" }, "MYSQL_PORT"},
		{"mysql host", func(c *Config) { c.UsersDriver = DriverMySQL; c.MySQLHost = "" }, "MySQL"},
		{"timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }, "TIMEZONE"},
		{"ttl", func(c *Config) { c.BusyTTLSeconds = 0 }, "BUSY_TTL_SECONDS"},
		{"rpc", func(c *Config) { c.ChainRPCURL = "" }, "CHAIN_RPC_URL"},
	}
	for _, tt := range tests {
		c := *base
		tt.mut(&c)
		err := c.Validate()
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Fatalf("%s: err = %v", tt.name, err)
		}
	}
}
