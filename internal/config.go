package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"http_server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Directory     DirectoryConfig     `mapstructure:"directory"`
	SSO           SSOConfig           `mapstructure:"sso" validate:"required"`
	Chat          ChatConfig          `mapstructure:"chat"`
	Storage       StorageConfig       `mapstructure:"storage"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	BaseURL           string        `mapstructure:"base_url"`
	AllowedOrigins    string        `mapstructure:"allowed_origins"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"required,min=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"required,min=1"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Source          string        `mapstructure:"source"`
}

// DirectoryConfig describes the external employee directory reached through a
// dblink from the application database. LinkName is the server-side connection
// name; at most one live link exists under it per backend session.
type DirectoryConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	Database       string        `mapstructure:"database"`
	User           string        `mapstructure:"user"`
	Password       string        `mapstructure:"password"`
	LinkName       string        `mapstructure:"link_name"`
	Table          string        `mapstructure:"table"`
	EmployeeIDCol  string        `mapstructure:"employee_id_column"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	QueryTimeout   time.Duration `mapstructure:"query_timeout"`
}

type SSOConfig struct {
	Secret          string `mapstructure:"secret" validate:"required"`
	Algorithm       string `mapstructure:"algorithm"`
	EmailClaim      string `mapstructure:"email_claim"`
	EmployeeIDClaim string `mapstructure:"employee_id_claim"`
}

type ChatConfig struct {
	WriteWait      time.Duration `mapstructure:"write_wait"`
	PongWait       time.Duration `mapstructure:"pong_wait"`
	MaxMessageSize int64         `mapstructure:"max_message_size"`
}

type StorageConfig struct {
	UploadDir     string `mapstructure:"upload_dir"`
	MaxUploadSize int64  `mapstructure:"max_upload_size"`
}

type ObservabilityConfig struct {
	Metrics MetricsConfig `mapstructure:"metrics"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required_if=Enabled true"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// ----------------- DEFAULTS -----------------

const (
	DefaultDirectoryLink  = "hr_directory"
	DefaultDirectoryTable = "employees"
	DefaultEmployeeIDCol  = "employee_id"
)

func (c *DirectoryConfig) ApplyDefaults() {
	if c.LinkName == "" {
		c.LinkName = DefaultDirectoryLink
	}
	if c.Table == "" {
		c.Table = DefaultDirectoryTable
	}
	if c.EmployeeIDCol == "" {
		c.EmployeeIDCol = DefaultEmployeeIDCol
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = 5 * time.Second
	}
	if c.QueryTimeout <= 0 {
		c.QueryTimeout = 5 * time.Second
	}
}

func (c *SSOConfig) ApplyDefaults() {
	if c.Algorithm == "" {
		c.Algorithm = "HS256"
	}
	if c.EmailClaim == "" {
		c.EmailClaim = "email"
	}
	if c.EmployeeIDClaim == "" {
		c.EmployeeIDClaim = "employee_id"
	}
}

func (c *ChatConfig) ApplyDefaults() {
	if c.WriteWait <= 0 {
		c.WriteWait = 10 * time.Second
	}
	if c.PongWait <= 0 {
		c.PongWait = 60 * time.Second
	}
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = 8 << 10
	}
}

// ----------------- HELPERS -----------------

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

// LoadConfigFromEnv builds a Config from environment variables, used for
// container deployments where no config file is mounted.
func LoadConfigFromEnv() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port:              getEnvAsInt("SERVER_PORT", 8080),
			BaseURL:           getEnv("SERVER_BASE_URL", "http://localhost:8080"),
			AllowedOrigins:    getEnv("SERVER_ALLOWED_ORIGINS", "*"),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		Database: DatabaseConfig{
			Source:          getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getEnvAsInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: 30 * time.Minute,
			ConnMaxIdleTime: 5 * time.Minute,
		},
		Directory: DirectoryConfig{
			Host:     getEnv("DIRECTORY_HOST", ""),
			Port:     getEnvAsInt("DIRECTORY_PORT", 5432),
			Database: getEnv("DIRECTORY_DATABASE", ""),
			User:     getEnv("DIRECTORY_USER", ""),
			Password: getEnv("DIRECTORY_PASSWORD", ""),
			LinkName: getEnv("DIRECTORY_LINK_NAME", DefaultDirectoryLink),
		},
		SSO: SSOConfig{
			Secret:          getEnv("SSO_SECRET", ""),
			Algorithm:       getEnv("SSO_ALGORITHM", "HS256"),
			EmailClaim:      getEnv("SSO_EMAIL_CLAIM", "email"),
			EmployeeIDClaim: getEnv("SSO_EMPLOYEE_ID_CLAIM", "employee_id"),
		},
		Storage: StorageConfig{
			UploadDir:     getEnv("STORAGE_UPLOAD_DIR", "./uploads"),
			MaxUploadSize: 10 << 20,
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{Enabled: true, Path: "/metrics"},
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "json"),
			},
		},
	}
	cfg.Directory.ApplyDefaults()
	cfg.SSO.ApplyDefaults()
	cfg.Chat.ApplyDefaults()
	return cfg
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	c.Directory.ApplyDefaults()
	c.SSO.ApplyDefaults()
	c.Chat.ApplyDefaults()

	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.Directory.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("directory config: %v", err))
	}

	if err := c.SSO.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("sso config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.AllowedOrigins != "" {
		origins := strings.Split(c.AllowedOrigins, ",")
		for _, origin := range origins {
			origin = strings.TrimSpace(origin)
			if origin == "*" {
				continue
			}
			if _, err := url.Parse(origin); err != nil {
				return fmt.Errorf("invalid allowed origin %s: %w", origin, err)
			}
		}
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.Source == "" {
		return errors.New("source is required")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *DatabaseConfig) GetDSN() string {
	return c.Source
}

func (c *DirectoryConfig) Validate() error {
	if c.Host == "" {
		return errors.New("host is required")
	}
	if c.Database == "" {
		return errors.New("database is required")
	}
	if c.User == "" {
		return errors.New("user is required")
	}
	return nil
}

// ConnInfo renders the libpq connection string passed to dblink_connect on the
// remote side.
func (c *DirectoryConfig) ConnInfo() string {
	parts := []string{
		fmt.Sprintf("host=%s", c.Host),
		fmt.Sprintf("port=%d", c.Port),
		fmt.Sprintf("dbname=%s", c.Database),
		fmt.Sprintf("user=%s", c.User),
	}
	if c.Password != "" {
		parts = append(parts, fmt.Sprintf("password=%s", quoteConnInfoValue(c.Password)))
	}
	parts = append(parts, fmt.Sprintf("connect_timeout=%d", int(c.ConnectTimeout.Seconds())))
	return strings.Join(parts, " ")
}

// quoteConnInfoValue single-quotes a libpq conninfo value; backslashes and
// embedded quotes are escaped so spaces and quotes in passwords survive.
func quoteConnInfoValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

func (c *SSOConfig) Validate() error {
	if strings.TrimSpace(strings.Trim(strings.TrimSpace(c.Secret), `"'`)) == "" {
		return errors.New("secret is required")
	}
	if c.Algorithm != "HS256" && c.Algorithm != "HS384" && c.Algorithm != "HS512" {
		return fmt.Errorf("unsupported signing algorithm %q", c.Algorithm)
	}
	return nil
}
