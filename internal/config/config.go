package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"

	"loanchain-web/internal/domain/chain"
)

type Config struct {
	AppPort string `yaml:"app_port"`

	// Target chain, as sent in wallet_addEthereumChain.
	ChainID          uint64 `yaml:"chain_id"`
	ChainName        string `yaml:"chain_name"`
	ChainRPCURL      string `yaml:"chain_rpc_url"`
	ChainExplorerURL string `yaml:"chain_explorer_url"`
	ChainCurrency    string `yaml:"chain_currency"`
	ContractAddress  string `yaml:"contract_address"`
	// WalletKeys are hex private keys; none means no wallet provider.
	WalletKeys []string `yaml:"wallet_keys"`

	RedisAddr      string `yaml:"redis_addr"`
	RedisDB        int    `yaml:"redis_db"`
	BusyTTLSeconds int    `yaml:"busy_ttl_seconds"`

	UsersDriver    string `yaml:"users_driver"`
	UsersSQLiteDSN string `yaml:"users_sqlite_dsn"`
	MySQLHost      string `yaml:"mysql_host"`
	MySQLPort      string `yaml:"mysql_port"`
	MySQLDB        string `yaml:"mysql_db"`
	MySQLUser      string `yaml:"mysql_user"`
	MySQLPass      string `yaml:"mysql_pass"`

	Timezone string `yaml:"timezone"`
}

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// Load reads CONFIG_PATH when set, applies environment overrides, then
// fills defaults.
func Load() (*Config, error) {
	c := &Config{}
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, c); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	c.AppPort = getenv("APP_PORT", orDefault(c.AppPort, "8080"))
	c.ChainName = getenv("CHAIN_NAME", orDefault(c.ChainName, "EDU Chain Testnet"))
	c.ChainRPCURL = getenv("CHAIN_RPC_URL", orDefault(c.ChainRPCURL, "https://rpc.open-campus-codex.gelato.digital"))
	c.ChainExplorerURL = getenv("CHAIN_EXPLORER_URL", orDefault(c.ChainExplorerURL, "https://opencampus-codex.blockscout.com"))
	c.ChainCurrency = getenv("CHAIN_CURRENCY", orDefault(c.ChainCurrency, "EDU"))
	c.ContractAddress = getenv("CONTRACT_ADDRESS", orDefault(c.ContractAddress, "0xd1e3D48B720928235fCCDae0631EcAc748434CcC"))
	c.RedisAddr = getenv("REDIS_ADDR", orDefault(c.RedisAddr, "redis:6379"))
	c.UsersDriver = getenv("USERS_DRIVER", orDefault(c.UsersDriver, DriverSQLite))
	c.UsersSQLiteDSN = getenv("USERS_SQLITE_DSN", orDefault(c.UsersSQLiteDSN, "file::memory:?cache=shared"))
	c.MySQLHost = getenv("MYSQL_HOST", orDefault(c.MySQLHost, "mysql"))
	c.MySQLPort = getenv("MYSQL_PORT", orDefault(c.MySQLPort, "3306"))
	c.MySQLDB = getenv("MYSQL_DB", orDefault(c.MySQLDB, "loanchain"))
	c.MySQLUser = getenv("MYSQL_USER", orDefault(c.MySQLUser, "loanchain"))
	c.MySQLPass = getenv("MYSQL_PASS", orDefault(c.MySQLPass, "loanchain"))
	c.Timezone = getenv("TIMEZONE", orDefault(c.Timezone, "UTC"))

	if c.ChainID == 0 {
		c.ChainID = 0xa045c
	}
	if v := os.Getenv("CHAIN_ID"); v != "" {
		n, err := ParseChainID(v)
		if err != nil {
			return nil, err
		}
		c.ChainID = n
	}
	if v := os.Getenv("WALLET_KEYS"); v != "" {
		c.WalletKeys = splitList(v)
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RedisDB = n
		}
	}
	if c.BusyTTLSeconds == 0 {
		c.BusyTTLSeconds = 120
	}
	if v := os.Getenv("BUSY_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.BusyTTLSeconds = n
		}
	}
	return c, nil
}

func orDefault(v, d string) string {
	if v != "" {
		return v
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseChainID accepts decimal or 0x-prefixed hex.
func ParseChainID(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	var (
		n   uint64
		err error
	)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		n, err = strconv.ParseUint(s[2:], 16, 64)
	} else {
		n, err = strconv.ParseUint(s, 10, 64)
	}
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid CHAIN_ID %q", s)
	}
	return n, nil
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.ChainRPCURL == "" {
		return errors.New("missing CHAIN_RPC_URL")
	}
	if !common.IsHexAddress(c.ContractAddress) {
		return fmt.Errorf("invalid CONTRACT_ADDRESS %q", c.ContractAddress)
	}
	if c.BusyTTLSeconds <= 0 {
		return errors.New("BUSY_TTL_SECONDS must be positive")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	switch c.UsersDriver {
	case DriverSQLite:
		if c.UsersSQLiteDSN == "" {
			return errors.New("missing USERS_SQLITE_DSN")
		}
	case DriverMySQL:
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	default:
		return fmt.Errorf("unknown USERS_DRIVER %q", c.UsersDriver)
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

// Network is the chain the wallet is switched to, or added when unknown.
func (c *Config) Network() chain.Network {
	n := chain.Network{
		ChainID:   c.ChainID,
		ChainName: c.ChainName,
		RPCURLs:   []string{c.ChainRPCURL},
		Currency:  chain.Currency{Name: c.ChainCurrency, Symbol: c.ChainCurrency, Decimals: 18},
	}
	if c.ChainExplorerURL != "" {
		n.ExplorerURLs = []string{c.ChainExplorerURL}
	}
	return n
}

func (c *Config) Contract() common.Address { return common.HexToAddress(c.ContractAddress) }

func (c *Config) BusyTTL() time.Duration { return time.Duration(c.BusyTTLSeconds) * time.Second }

// Location is the zone timestamps are rendered in. Validate has checked it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
