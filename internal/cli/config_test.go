package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	arborerrors "github.com/matzehuels/arbor/pkg/errors"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("LoadConfig() = %+v, want defaults", cfg)
	}
}

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		check   func(t *testing.T, c Config)
		wantErr bool
	}{
		{
			name: "overrides",
			data: `
orientation = "Vertical"
formats = ["png", "json"]
scale = 3.0
strict = true
cache = "redis"
redis_addr = "cache:6379"
store = "mongo"
mongo_uri = "mongodb://db"
listen = ":9000"
`,
			check: func(t *testing.T, c Config) {
				want := Config{
					Orientation: "vertical",
					Formats:     []string{"png", "json"},
					Scale:       3,
					Strict:      true,
					Cache:       CacheRedis,
					RedisAddr:   "cache:6379",
					Store:       StoreMongo,
					MongoURI:    "mongodb://db",
					Listen:      ":9000",
				}
				if !reflect.DeepEqual(c, want) {
					t.Errorf("got %+v\nwant %+v", c, want)
				}
			},
		},
		{
			name: "partial keeps defaults",
			data: `orientation = "v"`,
			check: func(t *testing.T, c Config) {
				if c.Orientation != "v" || c.Cache != CacheFile || c.Store != StoreFile || c.Scale != 2 {
					t.Errorf("got %+v", c)
				}
			},
		},
		{name: "bad orientation", data: `orientation = "diagonal"`, wantErr: true},
		{name: "bad format", data: `formats = ["gif"]`, wantErr: true},
		{name: "bad cache", data: `cache = "memcached"`, wantErr: true},
		{name: "bad store", data: `store = "sqlite"`, wantErr: true},
		{name: "not toml", data: `orientation = `, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parseConfig([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestParseConfigSyntaxErrorCode(t *testing.T) {
	_, err := parseConfig([]byte("[[["))
	if !arborerrors.Is(err, arborerrors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`formats = ["svg", "dot"]`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cfg.Formats, []string{"svg", "dot"}) {
		t.Errorf("Formats = %v", cfg.Formats)
	}
	opts := cfg.pipelineOptions()
	if opts.Orientation != "horizontal" || len(opts.Formats) != 2 {
		t.Errorf("pipelineOptions() = %+v", opts)
	}
}
