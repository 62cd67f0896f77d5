package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Env           string
	ServerPort    string
	BaseURL       string
	DatabaseDSN   string
	AccessSecret  string
	UploadDir     string
	CloudinaryUrl string

	KafkaBroker   string
	KafkaTopic    string
	KafkaGroupID  string
	KafkaUsername string
	KafkaPassword string

	AuditQueueSize int
	AuditWorkers   int

	SMTPHost      string
	SMTPPort      string
	SMTPUser      string
	SMTPPassword  string
	MailFrom      string
	MailFromName  string
	NotifyTo      []string
	NotifyActions []string
}

func LoadConfig() Config {
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Overload(); err != nil {
			log.Println("Warning: env file not found or could not be loaded:", err)
		}
	}

	return Config{
		Env:           getEnv("ENV", "dev"),
		ServerPort:    getEnv("SERVER_PORT", ":3000"),
		BaseURL:       getEnv("BASE_URL", "*"),
		DatabaseDSN:   os.Getenv("DATABASE_DSN"),
		AccessSecret:  os.Getenv("ACCESS_SECRET"),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		CloudinaryUrl: os.Getenv("CLOUDINARY_URL"),

		KafkaBroker:   os.Getenv("KAFKA_BROKER"),
		KafkaTopic:    getEnv("KAFKA_TOPIC", "pim.audit"),
		KafkaGroupID:  getEnv("KAFKA_GROUP_ID", "pim-relay"),
		KafkaUsername: os.Getenv("KAFKA_USERNAME"),
		KafkaPassword: os.Getenv("KAFKA_PASSWORD"),

		AuditQueueSize: getEnvInt("AUDIT_QUEUE_SIZE", 256),
		AuditWorkers:   getEnvInt("AUDIT_WORKERS", 2),

		SMTPHost:      getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
		MailFrom:      os.Getenv("MAIL_FROM"),
		MailFromName:  getEnv("MAIL_FROM_NAME", "PIM"),
		NotifyTo:      splitList(os.Getenv("NOTIFY_TO")),
		NotifyActions: splitList(getEnv("NOTIFY_ACTIONS", "DELETE")),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
