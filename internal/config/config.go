package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string     `yaml:"env" env:"ENV" env-default:"local"`
	AdminToken string     `yaml:"admin_token" env:"ADMIN_TOKEN" env-required:"true"`
	HTTPServer HTTPServer `yaml:"http_server"`
	DB         DB         `yaml:"db"`
	Cache      Cache      `yaml:"cache"`
	Engine     Engine     `yaml:"engine"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type DB struct {
	Addr     string `yaml:"addr" env:"DB_ADDR" env-default:"localhost"`
	Port     string `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER" env-required:"true"`
	Password string `yaml:"password" env:"DB_PASSWORD" env-required:"true"`
	DB       string `yaml:"db" env:"DB_NAME" env-required:"true"`
}

type Cache struct {
	Addr        string        `yaml:"addr" env:"CACHE_ADDR" env-default:"localhost:6379"`
	Password    string        `yaml:"password" env:"CACHE_PASSWORD"`
	DB          int           `yaml:"db" env:"CACHE_DB" env-default:"0"`
	SessionTTL  time.Duration `yaml:"session_ttl" env-default:"24h"`
	SettingsTTL time.Duration `yaml:"settings_ttl" env-default:"10m"`
}

// Engine holds the query and edit-lock policy knobs.
type Engine struct {
	DefaultPageSize            int           `yaml:"default_page_size" env-default:"10"`
	DefaultOrderBy             string        `yaml:"default_order_by" env-default:"modified"`
	LockWindow                 time.Duration `yaml:"lock_window" env-default:"0"`
	GroupMembersOpenWhenPublic bool          `yaml:"group_members_open_when_public" env-default:"true"`
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		panic("config file does not exist: " + path)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		panic("failed to read config: " + err.Error())
	}

	return &cfg
}

// fetchConfigPath reads the config location from the --config flag or
// the CONFIG_PATH env var, flag taking priority.
func fetchConfigPath() string {
	var path string

	flag.StringVar(&path, "config", "", "path to config file")
	flag.Parse()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	return path
}
