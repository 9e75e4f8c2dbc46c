package config

import (
	"bytes"
	"fmt"
	"net"
	neturl "net/url"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort       = 2333
	defaultEnv        = "development"
	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "root"
	defaultDBPassword = "password"
	defaultDBName     = "inkwell"
	defaultDBCharset  = "utf8mb4"
	defaultDBLoc      = "Local"
	defaultRedisHost  = "localhost"
	defaultRedisPort  = 6379
	defaultRedisDB    = 0

	defaultCommentMinLength = 5
	defaultCommentMaxLength = 1000
	defaultUploadMaxSizeMB  = 5
	defaultS3Region         = "auto"
)

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int           `yaml:"port"`
	Env            string        `yaml:"env"` // "development" | "production"
	JWTSecret      string        `yaml:"jwt_secret"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	Database       DatabaseConfig `yaml:"database"`
	Redis          RedisConfig    `yaml:"redis"`
	Comment        CommentConfig  `yaml:"comment"`
	Upload         UploadConfig   `yaml:"upload"`
	S3             S3Config       `yaml:"s3"`

	// Derived forms, resolved after load.
	DSN      string `yaml:"-"`
	RedisURL string `yaml:"-"`
}

type DatabaseConfig struct {
	DSN      string `yaml:"dsn"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Charset  string `yaml:"charset"`
	Loc      string `yaml:"loc"`
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TLS      bool   `yaml:"tls"`
}

// CommentConfig tunes the comment module. DefaultStatus controls whether new
// comments publish immediately ("approved") or queue for review ("pending").
type CommentConfig struct {
	Disable       bool   `yaml:"disable"`
	DefaultStatus string `yaml:"default_status"`
	MinLength     int    `yaml:"min_length"`
	MaxLength     int    `yaml:"max_length"`
}

type UploadConfig struct {
	MaxSizeMB int `yaml:"max_size_mb"`
}

type S3Config struct {
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	Bucket          string `yaml:"bucket"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	CustomDomain    string `yaml:"custom_domain"`
	PathStyleAccess bool   `yaml:"path_style_access"`
}

// Load reads and validates the YAML config at path.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	cfg := defaultAppConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config file %q: %w", path, err)
	}

	normalize(&cfg)
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d in %q, expected 1-65535", cfg.Port, path)
	}
	if cfg.Database.Port < 1 || cfg.Database.Port > 65535 {
		return nil, fmt.Errorf("invalid database.port %d in %q, expected 1-65535", cfg.Database.Port, path)
	}
	if cfg.Redis.Port < 1 || cfg.Redis.Port > 65535 {
		return nil, fmt.Errorf("invalid redis.port %d in %q, expected 1-65535", cfg.Redis.Port, path)
	}
	if cfg.Redis.DB < 0 {
		return nil, fmt.Errorf("invalid redis.db %d in %q, expected >= 0", cfg.Redis.DB, path)
	}
	switch cfg.Comment.DefaultStatus {
	case "approved", "pending":
	default:
		return nil, fmt.Errorf("invalid comment.default_status %q in %q, expected approved or pending", cfg.Comment.DefaultStatus, path)
	}
	if cfg.Comment.MinLength < 1 || cfg.Comment.MaxLength < cfg.Comment.MinLength {
		return nil, fmt.Errorf("invalid comment length bounds [%d, %d] in %q", cfg.Comment.MinLength, cfg.Comment.MaxLength, path)
	}

	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Database: DatabaseConfig{
			Host:     defaultDBHost,
			Port:     defaultDBPort,
			User:     defaultDBUser,
			Password: defaultDBPassword,
			Name:     defaultDBName,
			Charset:  defaultDBCharset,
			Loc:      defaultDBLoc,
		},
		Redis: RedisConfig{
			Host: defaultRedisHost,
			Port: defaultRedisPort,
			DB:   defaultRedisDB,
		},
		Comment: CommentConfig{
			DefaultStatus: "approved",
			MinLength:     defaultCommentMinLength,
			MaxLength:     defaultCommentMaxLength,
		},
		Upload: UploadConfig{
			MaxSizeMB: defaultUploadMaxSizeMB,
		},
		S3: S3Config{
			Region: defaultS3Region,
		},
	}
}

func normalize(cfg *AppConfig) {
	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	cfg.JWTSecret = strings.TrimSpace(cfg.JWTSecret)

	origins := make([]string, 0, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	cfg.AllowedOrigins = origins

	if cfg.Database.Host == "" {
		cfg.Database.Host = defaultDBHost
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = defaultDBPort
	}
	if cfg.Database.Charset == "" {
		cfg.Database.Charset = defaultDBCharset
	}
	if cfg.Database.Loc == "" {
		cfg.Database.Loc = defaultDBLoc
	}
	if cfg.Redis.Host == "" && cfg.Redis.URL == "" {
		cfg.Redis.Host = defaultRedisHost
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = defaultRedisPort
	}

	cfg.Comment.DefaultStatus = strings.ToLower(strings.TrimSpace(cfg.Comment.DefaultStatus))
	if cfg.Comment.DefaultStatus == "" {
		cfg.Comment.DefaultStatus = "approved"
	}
	if cfg.Comment.MinLength == 0 {
		cfg.Comment.MinLength = defaultCommentMinLength
	}
	if cfg.Comment.MaxLength == 0 {
		cfg.Comment.MaxLength = defaultCommentMaxLength
	}
	if cfg.Upload.MaxSizeMB <= 0 {
		cfg.Upload.MaxSizeMB = defaultUploadMaxSizeMB
	}
	if strings.TrimSpace(cfg.S3.Region) == "" {
		cfg.S3.Region = defaultS3Region
	}
	cfg.S3.Endpoint = strings.TrimRight(strings.TrimSpace(cfg.S3.Endpoint), "/")
	cfg.S3.CustomDomain = strings.TrimRight(strings.TrimSpace(cfg.S3.CustomDomain), "/")

	cfg.DSN = cfg.Database.DSNValue()
	cfg.RedisURL = cfg.Redis.URLValue()
}

// DSNValue builds the MySQL DSN, preferring an explicit dsn field.
func (c DatabaseConfig) DSNValue() string {
	if v := strings.TrimSpace(c.DSN); v != "" {
		return v
	}

	host := c.Host
	if host == "" {
		host = defaultDBHost
	}
	port := c.Port
	if port == 0 {
		port = defaultDBPort
	}
	user := strings.TrimSpace(c.User)
	if user == "" {
		user = defaultDBUser
	}
	password := c.Password
	if password == "" {
		password = defaultDBPassword
	}
	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = defaultDBName
	}
	charset := c.Charset
	if charset == "" {
		charset = defaultDBCharset
	}
	loc := c.Loc
	if loc == "" {
		loc = defaultDBLoc
	}

	params := neturl.Values{}
	params.Set("charset", charset)
	params.Set("parseTime", "true")
	params.Set("loc", loc)

	return fmt.Sprintf("%s:%s@tcp(%s)/%s?%s",
		user, password, net.JoinHostPort(host, strconv.Itoa(port)), name, params.Encode())
}

// URLValue builds the redis URL, preferring an explicit url field.
func (c RedisConfig) URLValue() string {
	if raw := strings.TrimSpace(c.URL); raw != "" {
		if strings.HasPrefix(raw, "redis://") || strings.HasPrefix(raw, "rediss://") {
			return raw
		}
		return "redis://" + raw
	}

	host := c.Host
	if host == "" {
		host = defaultRedisHost
	}
	port := c.Port
	if port == 0 {
		port = defaultRedisPort
	}
	scheme := "redis"
	if c.TLS {
		scheme = "rediss"
	}

	u := &neturl.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(host, strconv.Itoa(port)),
		Path:   "/" + strconv.Itoa(c.DB),
	}
	username := strings.TrimSpace(c.Username)
	password := strings.TrimSpace(c.Password)
	switch {
	case username != "" && password != "":
		u.User = neturl.UserPassword(username, password)
	case username != "":
		u.User = neturl.User(username)
	case password != "":
		u.User = neturl.UserPassword("", password)
	}
	return u.String()
}

func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, defaultEnv)
}

// UploadMaxBytes is the configured upload ceiling in bytes.
func (c *AppConfig) UploadMaxBytes() int64 {
	return int64(c.Upload.MaxSizeMB) << 20
}
