package conf

import (
	"encoding/json"
	"fmt"
	"time"
)

// Bootstrap is the root of configs/config.yaml
type Bootstrap struct {
	Server   *Server   `json:"server"`
	Data     *Data     `json:"data"`
	Provider *Provider `json:"provider"`
	Log      *Log      `json:"log"`
}

// Server holds transport settings
type Server struct {
	Http *Transport `json:"http"`
	Grpc *Transport `json:"grpc"`
}

// Transport is a listener definition shared by HTTP and gRPC
type Transport struct {
	Network string   `json:"network"`
	Addr    string   `json:"addr"`
	Timeout Duration `json:"timeout"`
}

// Data holds storage settings
type Data struct {
	Database *Database `json:"database"`
	Redis    *Redis    `json:"redis"`
}

type Database struct {
	Driver       string `json:"driver"`
	Source       string `json:"source"`
	AutoMigrate  bool   `json:"auto_migrate"`
	MaxIdleConns int    `json:"max_idle_conns"`
	MaxOpenConns int    `json:"max_open_conns"`
}

type Redis struct {
	Addr         string   `json:"addr"`
	Password     string   `json:"password"`
	DB           int      `json:"db"`
	ReadTimeout  Duration `json:"read_timeout"`
	WriteTimeout Duration `json:"write_timeout"`
	CacheTTL     Duration `json:"cache_ttl"`
}

// Provider configures the movie metadata API client
type Provider struct {
	BaseURL           string   `json:"base_url"`
	APIKey            string   `json:"api_key"`
	Timeout           Duration `json:"timeout"`
	EnrichConcurrency int      `json:"enrich_concurrency"`
}

type Log struct {
	Level string `json:"level"`
}

// Duration decodes "5s" style strings as well as plain nanosecond numbers.
type Duration struct {
	time.Duration
}

// AsDuration mirrors durationpb so call sites read the same.
func (d Duration) AsDuration() time.Duration {
	return d.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
	case string:
		if value == "" {
			d.Duration = 0
			return nil
		}
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
		d.Duration = parsed
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
	return nil
}
