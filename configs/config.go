package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver string
	DBSource string
	Port     string

	JWTSecret string
	JWTTTL    time.Duration

	RedisAddr   string
	KafkaBroker string
	KafkaTopic  string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string

	PaymentAPIURL string
	PaymentAPIKey string

	// base URL encoded into table QR codes
	OrderingBaseURL string

	UploadDir string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	return &Config{
		DBDriver: getEnv("DB_DRIVER", "sqlite"),
		DBSource: getEnv("DB_SOURCE", "tapeat.db"),
		Port:     getEnv("PORT", "8000"),

		JWTSecret: getEnv("JWT_SECRET", "changeme"),
		JWTTTL:    time.Duration(24) * time.Hour,

		RedisAddr:   os.Getenv("REDIS_ADDR"),
		KafkaBroker: os.Getenv("KAFKA_BROKER"),
		KafkaTopic:  getEnv("KAFKA_TOPIC", "order-events"),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: getEnvInt("SMTP_PORT", 587),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		MailFrom: getEnv("MAIL_FROM", "no-reply@tapeat.app"),

		PaymentAPIURL: os.Getenv("PAYMENT_API_URL"),
		PaymentAPIKey: os.Getenv("PAYMENT_API_KEY"),

		OrderingBaseURL: getEnv("ORDERING_BASE_URL", "https://order.tapeat.app"),

		UploadDir: getEnv("UPLOAD_DIR", "uploads"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
