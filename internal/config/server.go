package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// ServerConfig configures the HTTP rendition of the demo.
type ServerConfig struct {
	Server struct {
		Port           string        `yaml:"port"`
		RequestTimeout time.Duration `yaml:"request_timeout"`
		AllowedOrigins []string      `yaml:"allowed_origins"`
	} `yaml:"server"`

	Sessions struct {
		Max     int           `yaml:"max"`
		IdleTTL time.Duration `yaml:"idle_ttl"`
	} `yaml:"sessions"`

	Pipeline struct {
		FailureRate  float64       `yaml:"failure_rate"`
		MinDelay     time.Duration `yaml:"min_delay"`
		MaxDelay     time.Duration `yaml:"max_delay"`
		AnalyzeDelay time.Duration `yaml:"analyze_delay"`
		Seed         int64         `yaml:"seed"`
	} `yaml:"pipeline"`

	Redis struct {
		Host      string `yaml:"host"`
		Password  string `yaml:"password"`
		RateLimit int    `yaml:"rate_limit"`
	} `yaml:"redis"`

	RabbitMQ struct {
		URL   string `yaml:"url"`
		Queue string `yaml:"queue"`
	} `yaml:"rabbitmq"`

	Minio struct {
		Endpoint  string `yaml:"endpoint"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
		Bucket    string `yaml:"bucket"`
		UseSSL    bool   `yaml:"use_ssl"`
	} `yaml:"minio"`

	DownloadDir string `yaml:"download_dir"`
	LogLevel    string `yaml:"log_level"`
}

// DefaultServerConfig returns the configuration used when nothing is set.
func DefaultServerConfig() *ServerConfig {
	var cfg ServerConfig
	cfg.Server.Port = "8080"
	cfg.Server.RequestTimeout = 30 * time.Second
	cfg.Server.AllowedOrigins = []string{"*"}
	cfg.Sessions.Max = 1000
	cfg.Sessions.IdleTTL = 30 * time.Minute
	cfg.Pipeline.FailureRate = 0.10
	cfg.Pipeline.MinDelay = 2 * time.Second
	cfg.Pipeline.MaxDelay = 5 * time.Second
	cfg.Pipeline.AnalyzeDelay = 2 * time.Second
	cfg.Redis.RateLimit = 30
	cfg.RabbitMQ.Queue = "notify.q"
	cfg.Minio.Bucket = "playlist-demo"
	cfg.DownloadDir = "downloads"
	cfg.LogLevel = "info"
	return &cfg
}

// LoadServerConfig reads path over the defaults, then applies .env and the
// environment. A missing file is not an error.
func LoadServerConfig(path string) (*ServerConfig, error) {
	cfg := DefaultServerConfig()

	if path != "" {
		f, err := os.Open(path)
		switch {
		case err == nil:
			defer f.Close()
			if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
				return nil, errors.Wrapf(err, "decode %s", path)
			}
		case !os.IsNotExist(err):
			return nil, errors.Wrapf(err, "open %s", path)
		}
	}

	// .env is optional
	_ = godotenv.Load()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *ServerConfig) applyEnv() {
	setString(&c.Server.Port, "PORT")
	setString(&c.Redis.Host, "REDIS_HOST")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.RabbitMQ.URL, "RMQ_HOST")
	setString(&c.Minio.Endpoint, "MINIO_ENDPOINT")
	setString(&c.Minio.AccessKey, "MINIO_ACCESS_KEY")
	setString(&c.Minio.SecretKey, "MINIO_SECRET_KEY")
	setString(&c.Minio.Bucket, "MINIO_BUCKET")
	setString(&c.DownloadDir, "DOWNLOAD_DIR")
	setString(&c.LogLevel, "LOG_LEVEL")

	if v := os.Getenv("MINIO_USE_SSL"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Minio.UseSSL = b
		}
	}
	if v := os.Getenv("FAILURE_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Pipeline.FailureRate = f
		}
	}
}

// Validate rejects values the server cannot run with.
func (c *ServerConfig) Validate() error {
	if c.Server.Port == "" {
		return errors.New("server port is required")
	}
	if c.Pipeline.FailureRate < 0 || c.Pipeline.FailureRate > 1 {
		return errors.Errorf("failure rate %v outside [0, 1]", c.Pipeline.FailureRate)
	}
	if c.Pipeline.MinDelay < 0 || c.Pipeline.MaxDelay < c.Pipeline.MinDelay {
		return errors.Errorf("invalid delay range [%v, %v)", c.Pipeline.MinDelay, c.Pipeline.MaxDelay)
	}
	if c.Sessions.Max <= 0 {
		return errors.New("sessions.max must be positive")
	}
	return nil
}

// Addr returns the listen address for the configured port.
func (c *ServerConfig) Addr() string {
	return ":" + c.Server.Port
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
