package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Port string `mapstructure:"port"`
		Env  string `mapstructure:"env"`
		// PublicURL is used for links in the RSS feed.
		PublicURL string `mapstructure:"public_url"`
	} `mapstructure:"app"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Mongo struct {
		URI      string `mapstructure:"uri"`
		Database string `mapstructure:"database"`
	} `mapstructure:"mongo"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
	} `mapstructure:"kafka"`
	Auth struct {
		JWTSecret     string        `mapstructure:"jwt_secret"`
		TokenLifespan time.Duration `mapstructure:"token_lifespan"`
	} `mapstructure:"auth"`
	Cloudinary struct {
		CloudName string `mapstructure:"cloud_name"`
		ApiKey    string `mapstructure:"api_key"`
		ApiSecret string `mapstructure:"api_secret"`
	} `mapstructure:"cloudinary"`
	Github struct {
		BaseURL      string        `mapstructure:"base_url"`
		ClientID     string        `mapstructure:"client_id"`
		ClientSecret string        `mapstructure:"client_secret"`
		CacheTTL     time.Duration `mapstructure:"cache_ttl"`
		RatePerSec   float64       `mapstructure:"rate_per_sec"`
	} `mapstructure:"github"`
	Jaeger struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"jaeger"`
}

// LoadConfig reads config.yaml from the given directories (the working directory when none),
// then overlays .env and process environment.
func LoadConfig(paths ...string) (cfg Config, err error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	v := viper.New()
	setDefaults(v)

	for _, p := range paths {
		if err := godotenv.Load(p + "/.env"); err == nil {
			break
		}
	}

	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if rerr := v.ReadInConfig(); rerr != nil {
		log.Printf("note: config.yaml not found, read environment only. Error: %v", rerr)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("app.port", "APP_PORT")
	v.BindEnv("app.env", "APP_ENV")
	v.BindEnv("app.public_url", "APP_PUBLIC_URL")
	v.BindEnv("db.dsn", "DB_DSN")
	v.BindEnv("mongo.uri", "MONGO_URI")
	v.BindEnv("mongo.database", "MONGO_DB")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	v.BindEnv("auth.token_lifespan", "TOKEN_LIFESPAN")

	v.BindEnv("cloudinary.cloud_name", "CLOUDINARY_CLOUD_NAME")
	v.BindEnv("cloudinary.api_key", "CLOUDINARY_API_KEY")
	v.BindEnv("cloudinary.api_secret", "CLOUDINARY_API_SECRET")

	v.BindEnv("github.base_url", "GITHUB_BASE_URL")
	v.BindEnv("github.client_id", "GITHUB_CLIENT_ID")
	v.BindEnv("github.client_secret", "GITHUB_SECRET")
	v.BindEnv("github.cache_ttl", "GITHUB_CACHE_TTL")
	v.BindEnv("github.rate_per_sec", "GITHUB_RATE_PER_SEC")

	v.BindEnv("jaeger.otlp_endpoint", "OTLP_ENDPOINT")

	err = v.Unmarshal(&cfg)
	return
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "5000")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.public_url", "http://localhost:5000")
	v.SetDefault("mongo.database", "devconnect")
	v.SetDefault("auth.token_lifespan", 360000*time.Second)
	v.SetDefault("github.base_url", "https://api.github.com")
	v.SetDefault("github.cache_ttl", 10*time.Minute)
	v.SetDefault("github.rate_per_sec", 5.0)
}
