package config

import (
	"os"
	"path"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v2"
)

const (
	DefaultJwtTTL         = 24 * time.Hour
	DefaultMinPasswordLen = 8
	DefaultHttpPort       = "8080"
	DefaultMoviePageSize  = 12
	DefaultRevocationTick = time.Minute
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	JwtTTL                    time.Duration `yaml:"jwt_ttl"`
	BcryptCost                int           `yaml:"bcrypt_cost"`
	MinPasswordLen            int           `yaml:"min_password_len"`
	LogLevel                  string        `yaml:"log_level"`
	LogJSON                   bool          `yaml:"log_json"`
	HttpPort                  string        `yaml:"http_port"`
	AllowedOrigins            []string      `yaml:"allowed_origins"`
	SecureHeaders             bool          `yaml:"secure_headers"` // adds HSTS, enable behind TLS only
	RevocationRefreshInterval time.Duration `yaml:"revocation_refresh_interval"`
	MoviePageSize             int           `yaml:"movie_page_size"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

type Private struct {
	JwtKey string `yaml:"jwt_key"`
	Pg     Pg     `yaml:"pg"`
}

func (s *Config) JwtKey() string {
	return s.Private.JwtKey
}

func (s *Config) JwtTTL() time.Duration {
	return s.Public.JwtTTL
}

// applyDefaults fills zero values so a minimal public.yaml is enough.
func (p *Public) applyDefaults() {
	if p.JwtTTL <= 0 {
		p.JwtTTL = DefaultJwtTTL
	}
	if p.BcryptCost == 0 {
		p.BcryptCost = bcrypt.DefaultCost
	}
	if p.MinPasswordLen <= 0 {
		p.MinPasswordLen = DefaultMinPasswordLen
	}
	if p.HttpPort == "" {
		p.HttpPort = DefaultHttpPort
	}
	if p.RevocationRefreshInterval <= 0 {
		p.RevocationRefreshInterval = DefaultRevocationTick
	}
	if p.MoviePageSize <= 0 {
		p.MoviePageSize = DefaultMoviePageSize
	}
	if p.LogLevel == "" {
		p.LogLevel = "info"
	}
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)

	if err != nil {
		panic("can't read config file")
	}

	err = yaml.UnmarshalStrict(configFile, output)
	if err != nil {
		panic("can't unmarshal config file: " + err.Error())
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)
	public.applyDefaults()
	if port := os.Getenv("PORT"); port != "" {
		public.HttpPort = port
	}

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)
	if private.JwtKey == "" {
		panic("jwt_key is required in private.yaml")
	}

	return &Config{public, private}
}
