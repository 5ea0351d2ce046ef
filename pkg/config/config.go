package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Drivers de persistencia soportados.
const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Drivers de almacenamiento de imágenes.
const (
	UploadsLocal = "local"
	UploadsMinio = "minio"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Store   StoreConfig
	DB      DBConfig
	Mongo   MongoConfig
	Uploads UploadsConfig
	Minio   MinioConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	JWT     JWTConfig
	Admin   AdminConfig
	Debug   DebugConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	BodyLimitMB int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StoreConfig selecciona el adaptador de persistencia de categorías.
type StoreConfig struct {
	Driver string // mongo | postgres | memory
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL   string
	Host          string
	Port          int
	User          string
	Password      string
	DBName        string
	SSLMode       string
	MaxConns      int
	RunMigrations bool
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// MongoConfig configuración del document store.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

// UploadsConfig dónde y cómo se guardan las imágenes subidas.
type UploadsConfig struct {
	Driver    string // local | minio
	Dir       string
	MaxSizeMB int
}

// MinioConfig credenciales y bucket para imágenes en MinIO.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// RedisConfig caché opcional de listados. Addr vacío = sin caché.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	ListTTL  time.Duration
}

// Enabled indica si hay que conectar a Redis.
func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// KafkaConfig publicación opcional de eventos. Sin brokers = sin eventos.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Enabled indica si hay que crear el productor.
func (c KafkaConfig) Enabled() bool { return len(c.Brokers) > 0 }

// JWTConfig configuración de JWT. Secret vacío deja las rutas abiertas.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// AdminConfig cuenta única de administración del panel.
type AdminConfig struct {
	Username     string
	PasswordHash string // bcrypt
}

// DebugConfig habilita los endpoints de diagnóstico.
type DebugConfig struct {
	Endpoints bool
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, STORE_DRIVER, MONGO_URI, DB_HOST, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "categories-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 5000),
			BodyLimitMB: getInt(v, "HTTP_BODY_LIMIT_MB", 20),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getString(v, "STORE_DRIVER", StoreMongo)),
		},
		DB: DBConfig{
			DatabaseURL:   getString(v, "DATABASE_URL", ""),
			Host:          getString(v, "DB_HOST", "localhost"),
			Port:          getInt(v, "DB_PORT", 5432),
			User:          getString(v, "DB_USER", "postgres"),
			Password:      getString(v, "DB_PASSWORD", ""),
			DBName:        getString(v, "DB_NAME", "categories"),
			SSLMode:       getString(v, "DB_SSLMODE", "disable"),
			MaxConns:      getInt(v, "DB_MAX_CONNS", 10),
			RunMigrations: getBool(v, "DB_RUN_MIGRATIONS", true),
		},
		Mongo: MongoConfig{
			URI:        getString(v, "MONGO_URI", "mongodb://localhost:27017"),
			Database:   getString(v, "MONGO_DATABASE", "marketplace"),
			Collection: getString(v, "MONGO_COLLECTION", "categories"),
			Timeout:    getDuration(v, "MONGO_TIMEOUT", 10*time.Second),
		},
		Uploads: UploadsConfig{
			Driver:    strings.ToLower(getString(v, "UPLOADS_DRIVER", UploadsLocal)),
			Dir:       getString(v, "UPLOADS_DIR", "uploads"),
			MaxSizeMB: getInt(v, "UPLOADS_MAX_SIZE_MB", 10),
		},
		Minio: MinioConfig{
			Endpoint:  getString(v, "MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getString(v, "MINIO_ACCESS_KEY", ""),
			SecretKey: getString(v, "MINIO_SECRET_KEY", ""),
			Bucket:    getString(v, "MINIO_BUCKET", "category-images"),
			UseSSL:    getBool(v, "MINIO_USE_SSL", false),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
			ListTTL:  getDuration(v, "REDIS_LIST_TTL", 2*time.Minute),
		},
		Kafka: KafkaConfig{
			Brokers: getList(v, "KAFKA_BROKERS"),
			Topic:   getString(v, "KAFKA_TOPIC", "category-events"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "categories-api"),
		},
		Admin: AdminConfig{
			Username:     getString(v, "ADMIN_USERNAME", "admin"),
			PasswordHash: getString(v, "ADMIN_PASSWORD_HASH", ""),
		},
		Debug: DebugConfig{
			Endpoints: getBool(v, "DEBUG_ENDPOINTS", false),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case StoreMongo, StorePostgres, StoreMemory:
	default:
		return fmt.Errorf("STORE_DRIVER inválido: %q", c.Store.Driver)
	}
	switch c.Uploads.Driver {
	case UploadsLocal, UploadsMinio:
	default:
		return fmt.Errorf("UPLOADS_DRIVER inválido: %q", c.Uploads.Driver)
	}
	if c.JWT.Secret != "" && c.Admin.PasswordHash == "" {
		return fmt.Errorf("ADMIN_PASSWORD_HASH es requerido cuando JWT_SECRET está definido")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return b
}

func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	d, err := time.ParseDuration(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return d
}

// getList separa valores por coma (KAFKA_BROKERS=a:9092,b:9092).
func getList(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v.GetString(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
