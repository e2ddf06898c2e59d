package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the gateway configuration, loadable from environment
// variables (SHOPFRONT_ prefix), flags, or YAML config files.
type Config struct {
	Addr       string `default:"127.0.0.1:8099" usage:"Gateway listen address"`
	ShopAPIURL string `usage:"Base URL of the remote shop API (SHOPFRONT_SHOP_API_URL)" flag:"shop-api-url"`
	DataDir    string `usage:"Directory for the persisted guest cart and session" flag:"data-dir"`

	APITimeout time.Duration `default:"10s" usage:"Per-request timeout for remote shop API calls" flag:"api-timeout"`
	CORS       CORSConfig
	Graceful   GracefulConfig
}

// CORSConfig controls which view-layer origins may call the gateway.
type CORSConfig struct {
	Origins          []string `default:"*" usage:"Allowed CORS origins"`
	AllowCredentials bool     `default:"false" usage:"Allow credentials (cookies, auth headers)" flag:"cors-credentials"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"1s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"10s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables and YAML files,
// then applies defaults that need the process environment.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "SHOPFRONT",
		Files:     []string{"config.yaml", "/etc/shopfront/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyDefaults()

	if cfg.ShopAPIURL == "" {
		return nil, errors.New("shop API URL is required: set SHOPFRONT_SHOP_API_URL")
	}
	return &cfg, nil
}

// applyDefaults fills in values that depend on the process environment: the
// data directory defaults to the OS user cache dir, and PORT overrides the
// listen address when a platform injects one.
func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			base = "."
		}
		c.DataDir = filepath.Join(base, "shopfront")
	}
	if port := os.Getenv("PORT"); port != "" && c.Addr == "127.0.0.1:8099" {
		c.Addr = "127.0.0.1:" + port
	}
}
