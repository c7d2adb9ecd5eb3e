package configs

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App struct {
		Name     string `koanf:"name"`
		HTTPAddr string `koanf:"http_addr"`
		LogLevel string `koanf:"log_level"`
		LogFile  string `koanf:"log_file"`
	} `koanf:"app"`

	HTTP struct {
		ReadTimeout    time.Duration `koanf:"read_timeout"`
		WriteTimeout   time.Duration `koanf:"write_timeout"`
		IdleTimeout    time.Duration `koanf:"idle_timeout"`
		AllowedOrigins []string      `koanf:"allowed_origins"`
	} `koanf:"http"`

	Backend struct {
		BaseURL        string        `koanf:"base_url"`
		RequestTimeout time.Duration `koanf:"request_timeout"`
		UserAgent      string        `koanf:"user_agent"`
	} `koanf:"backend"`

	Redis struct {
		Addr     string `koanf:"addr"`
		Password string `koanf:"password"`
	} `koanf:"redis"`

	Session struct {
		TTL        time.Duration `koanf:"ttl"`
		CookieName string        `koanf:"cookie_name"`
	} `koanf:"session"`

	Catalog struct {
		CacheTTL time.Duration `koanf:"cache_ttl"`
	} `koanf:"catalog"`

	Checkout struct {
		PollInterval     time.Duration `koanf:"poll_interval"`
		PollCeiling      time.Duration `koanf:"poll_ceiling"`
		StateTTL         time.Duration `koanf:"state_ttl"`
		ShippingStandard float64       `koanf:"shipping_standard"`
		ShippingExpress  float64       `koanf:"shipping_express"`
		GiftWrapFee      float64       `koanf:"gift_wrap_fee"`
	} `koanf:"checkout"`
}

func Load(pathDir, envName string) (Config, error) {
	k := koanf.New(".")
	// 1) base
	if err := k.Load(file.Provider(fmt.Sprintf("%s/base.yaml", pathDir)), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("load base: %w", err)
	}

	// 2) env override (dev/staging/prod). Optional: allow missing for local runs.
	_ = k.Load(file.Provider(fmt.Sprintf("%s/%s.yaml", pathDir, envName)), yaml.Parser())

	// 3) environment variables override (prefix IMPRESSA_, nested with __)
	// e.g. IMPRESSA_BACKEND__BASE_URL, IMPRESSA_REDIS__PASSWORD
	if err := k.Load(env.Provider("IMPRESSA_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "IMPRESSA_")
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.App.HTTPAddr == "" {
		return fmt.Errorf("app.http_addr required")
	}
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url required")
	}
	if c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr required")
	}
	if c.Checkout.PollInterval <= 0 || c.Checkout.PollCeiling <= 0 {
		return fmt.Errorf("checkout.poll_interval and checkout.poll_ceiling must be positive")
	}
	return nil
}
