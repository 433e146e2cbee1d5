package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la consola (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	GraphQL GraphQLConfig
	Cache   CacheConfig
	Redis   RedisConfig
	Auth    AuthConfig
	Editor  EditorConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GraphQLConfig configuración del endpoint GraphQL que expone los datos de negocio.
// Si JWTSecret no está vacío se firma un Bearer token por operador para cada petición.
type GraphQLConfig struct {
	URL            string
	TimeoutSeconds int
	JWTSecret      string
	JWTIssuer      string
}

// Timeout devuelve el timeout de red para cada operación.
func (c GraphQLConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CacheConfig selecciona el backend de la caché de respuestas.
type CacheConfig struct {
	Backend    string // memory | redis
	TTLSeconds int    // 0 = sin expiración; solo la invalidación explícita limpia entradas
}

// TTL devuelve la expiración de cada entrada.
func (c CacheConfig) TTL() time.Duration {
	if c.TTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TTLSeconds) * time.Second
}

// RedisConfig configuración de Redis (solo si Cache.Backend es "redis").
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr devuelve host:port de Redis.
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AuthConfig login de operador. Deshabilitado si OperatorPasswordHash está vacío.
type AuthConfig struct {
	OperatorUser         string
	OperatorPasswordHash string // hash bcrypt
	JWTSecret            string
	JWTExpiration        int // minutos
	JWTIssuer            string
}

// Enabled indica si las páginas exigen sesión de operador.
func (c AuthConfig) Enabled() bool {
	return c.OperatorPasswordHash != ""
}

// EditorConfig comportamiento del editor en línea de términos.
type EditorConfig struct {
	SwallowErrors     bool // true: un guardado fallido vuelve a Display sin mostrar el error
	SessionTTLMinutes int
}

// SessionTTL devuelve la inactividad máxima antes de descartar el estado de edición de una sesión.
func (c EditorConfig) SessionTTL() time.Duration {
	if c.SessionTTLMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, GRAPHQL_URL, CACHE_BACKEND, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "customer-console"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 3000),
		},
		GraphQL: GraphQLConfig{
			URL:            getString(v, "GRAPHQL_URL", "http://localhost:4000/graphql"),
			TimeoutSeconds: getInt(v, "GRAPHQL_TIMEOUT_SECONDS", 10),
			JWTSecret:      getString(v, "GRAPHQL_JWT_SECRET", ""),
			JWTIssuer:      getString(v, "GRAPHQL_JWT_ISSUER", "customer-console"),
		},
		Cache: CacheConfig{
			Backend:    strings.ToLower(getString(v, "CACHE_BACKEND", "memory")),
			TTLSeconds: getInt(v, "CACHE_TTL_SECONDS", 0),
		},
		Redis: RedisConfig{
			Host:     getString(v, "REDIS_HOST", "localhost"),
			Port:     getInt(v, "REDIS_PORT", 6379),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		Auth: AuthConfig{
			OperatorUser:         getString(v, "AUTH_OPERATOR_USER", "admin"),
			OperatorPasswordHash: getString(v, "AUTH_OPERATOR_PASSWORD_HASH", ""),
			JWTSecret:            getString(v, "AUTH_JWT_SECRET", ""),
			JWTExpiration:        getInt(v, "AUTH_JWT_EXPIRATION_MINUTES", 480),
			JWTIssuer:            getString(v, "AUTH_JWT_ISSUER", "customer-console"),
		},
		Editor: EditorConfig{
			SwallowErrors:     getBool(v, "INLINE_EDIT_SWALLOW_ERRORS", false),
			SessionTTLMinutes: getInt(v, "SESSION_TTL_MINUTES", 30),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.GraphQL.URL == "" {
		return fmt.Errorf("config: GRAPHQL_URL es requerido")
	}
	switch c.Cache.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("config: CACHE_BACKEND inválido %q (memory|redis)", c.Cache.Backend)
	}
	if c.Auth.Enabled() && c.Auth.JWTSecret == "" {
		return fmt.Errorf("config: AUTH_JWT_SECRET es requerido si AUTH_OPERATOR_PASSWORD_HASH está definido")
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
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case bool:
			return v.GetBool(key)
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return b
		default:
			return v.GetBool(key)
		}
	}
	return def
}
