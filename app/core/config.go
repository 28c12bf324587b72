package core

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/dkg-node/dkg-plugins/pkg/dkg"
)

const (
	DEFAULT_ADDR     = ":9200"
	DEFAULT_VERSION  = "1.0.0"
	DEFAULT_MCP_PATH = "/mcp"
)

var DEFAULT_PLUGINS = []string{"example", "publishnote"}

func MustLoadBaseConfig(path string) CoreConfig {
	if path == "" {
		return LoadBaseConfigFromENV()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	conf := &CoreConfig{}
	conf.SetConfigBytes(raw)

	if err = toml.Unmarshal(raw, conf); err != nil {
		panic(err)
	}
	conf.applyDefaults()

	return *conf
}

// LoadCustomConfig decodes the raw config file into cfg, letting a plugin read
// its own section. Without a config file cfg is left untouched.
func (c CoreConfig) LoadCustomConfig(cfg any) error {
	if len(c.bytes) == 0 {
		return nil
	}
	if _, err := toml.Decode(string(c.bytes), cfg); err != nil {
		return err
	}
	return nil
}

func LoadBaseConfigFromENV() CoreConfig {
	var c CoreConfig
	c.FromENV()
	c.applyDefaults()
	return c
}

type CoreConfig struct {
	Addr    string          `toml:"addr"`
	Version string          `toml:"version"`
	Log     Log             `toml:"log"`
	Plugins PluginsConfig   `toml:"plugins"`
	DKG     DKGConfig       `toml:"dkg"`
	MCP     MCPConfig       `toml:"mcp"`
	Limit   RateLimitConfig `toml:"limit"`
	Tracing TracingConfig   `toml:"tracing"`

	bytes []byte `toml:"-"`
}

func (c *CoreConfig) SetConfigBytes(raw []byte) {
	c.bytes = raw
}

func (c *CoreConfig) FromENV() {
	c.Addr = os.Getenv("DKG_PLUGINS_ADDRESS")
	c.Version = os.Getenv("DKG_PLUGINS_VERSION")
	c.Log.FromENV()
	c.Plugins.FromENV()
	c.DKG.FromENV()
	c.MCP.FromENV()
	c.Limit.FromENV()
	c.Tracing.FromENV()
}

func (c *CoreConfig) applyDefaults() {
	if c.Addr == "" {
		c.Addr = DEFAULT_ADDR
	}
	if c.Version == "" {
		c.Version = DEFAULT_VERSION
	}
	if len(c.Plugins.Enabled) == 0 {
		c.Plugins.Enabled = DEFAULT_PLUGINS
	}
	if c.MCP.Path == "" {
		c.MCP.Path = DEFAULT_MCP_PATH
	}
}

type PluginsConfig struct {
	// Enabled lists the plugins to install, in installation order.
	Enabled []string `toml:"enabled"`
}

func (p *PluginsConfig) FromENV() {
	if v := os.Getenv("DKG_PLUGINS_ENABLED"); v != "" {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				p.Enabled = append(p.Enabled, name)
			}
		}
	}
}

type DKGConfig struct {
	Endpoint        string   `toml:"endpoint"`
	Blockchain      string   `toml:"blockchain"`
	Timeout         Duration `toml:"timeout"`
	PollInterval    Duration `toml:"poll_interval"`
	MaxPollAttempts int      `toml:"max_poll_attempts"`
	// consecutive node failures before calls fail fast, 0 disables the breaker
	BreakerFailures int      `toml:"breaker_failures"`
	BreakerTimeout  Duration `toml:"breaker_timeout"`
}

func (d *DKGConfig) FromENV() {
	d.Endpoint = os.Getenv("DKG_PLUGINS_DKG_ENDPOINT")
	d.Blockchain = os.Getenv("DKG_PLUGINS_DKG_BLOCKCHAIN")
	if v, err := time.ParseDuration(os.Getenv("DKG_PLUGINS_DKG_TIMEOUT")); err == nil {
		d.Timeout = Duration(v)
	}
	if v, err := time.ParseDuration(os.Getenv("DKG_PLUGINS_DKG_POLL_INTERVAL")); err == nil {
		d.PollInterval = Duration(v)
	}
	if v, err := strconv.Atoi(os.Getenv("DKG_PLUGINS_DKG_MAX_POLL_ATTEMPTS")); err == nil {
		d.MaxPollAttempts = v
	}
	if v, err := strconv.Atoi(os.Getenv("DKG_PLUGINS_DKG_BREAKER_FAILURES")); err == nil {
		d.BreakerFailures = v
	}
	if v, err := time.ParseDuration(os.Getenv("DKG_PLUGINS_DKG_BREAKER_TIMEOUT")); err == nil {
		d.BreakerTimeout = Duration(v)
	}
}

func (d DKGConfig) ClientConfig() dkg.Config {
	return dkg.Config{
		Endpoint:        d.Endpoint,
		Blockchain:      d.Blockchain,
		Timeout:         time.Duration(d.Timeout),
		PollInterval:    time.Duration(d.PollInterval),
		MaxPollAttempts: d.MaxPollAttempts,
		BreakerFailures: uint32(max(d.BreakerFailures, 0)),
		BreakerTimeout:  time.Duration(d.BreakerTimeout),
	}
}

type MCPConfig struct {
	Path string `toml:"path"`
	// AccessToken enables bearer token auth on the streamable endpoint when set.
	AccessToken  string `toml:"access_token"`
	JSONResponse bool   `toml:"json_response"`
	Stateless    bool   `toml:"stateless"`
}

func (m *MCPConfig) FromENV() {
	m.Path = os.Getenv("DKG_PLUGINS_MCP_PATH")
	m.AccessToken = os.Getenv("DKG_PLUGINS_MCP_ACCESS_TOKEN")
	m.JSONResponse, _ = strconv.ParseBool(os.Getenv("DKG_PLUGINS_MCP_JSON_RESPONSE"))
	m.Stateless, _ = strconv.ParseBool(os.Getenv("DKG_PLUGINS_MCP_STATELESS"))
}

type RateLimitConfig struct {
	// PublishPerMinute caps asset creation per client over REST. 0 disables the limit.
	PublishPerMinute int `toml:"publish_per_minute"`
}

func (l *RateLimitConfig) FromENV() {
	l.PublishPerMinute, _ = strconv.Atoi(os.Getenv("DKG_PLUGINS_LIMIT_PUBLISH_PER_MINUTE"))
}

type TracingConfig struct {
	Enabled     bool    `toml:"enabled"`
	Exporter    string  `toml:"exporter"` // stdout | otlp
	Endpoint    string  `toml:"endpoint"`
	SampleRatio float64 `toml:"sample_ratio"`
}

func (t *TracingConfig) FromENV() {
	t.Enabled, _ = strconv.ParseBool(os.Getenv("DKG_PLUGINS_TRACING_ENABLED"))
	t.Exporter = os.Getenv("DKG_PLUGINS_TRACING_EXPORTER")
	t.Endpoint = os.Getenv("DKG_PLUGINS_TRACING_ENDPOINT")
	t.SampleRatio, _ = strconv.ParseFloat(os.Getenv("DKG_PLUGINS_TRACING_SAMPLE_RATIO"), 64)
}

type Log struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

func (l *Log) FromENV() {
	l.Level = os.Getenv("DKG_PLUGINS_LOG_LEVEL")
	l.Path = os.Getenv("DKG_PLUGINS_LOG_PATH")
}

func (l *Log) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}

// Duration reads "30s"-style strings from TOML.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}
