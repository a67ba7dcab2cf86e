package utils

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`
	DBTimeZone string `yaml:"DB_TIMEZONE"`

	// HTTP server
	AppPort string `yaml:"APP_PORT"`
	LogFile string `yaml:"LOG_FILE"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// Order events
	AMQPURL string `yaml:"AMQP_URL"`
}

var config Config

var defaults = map[string]string{
	"DB_PORT":     "5432",
	"DB_TIMEZONE": "UTC",
	"APP_PORT":    "8080",
	"LOG_FILE":    "./logs/app.log",
}

// LoadConfig reads config.yaml, then lets .env and the process environment
// override any key that is set there.
func LoadConfig() {
	file, err := os.ReadFile("config.yaml")
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
	} else if err := yaml.Unmarshal(file, &config); err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
	}

	_ = godotenv.Load()

	for _, key := range keys {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			SetConfig(key, v)
		}
	}
}

var keys = []string{
	"DB_USER", "DB_NAME", "DB_PASSWORD", "DB_PORT", "DB_HOST", "DB_TIMEZONE",
	"APP_PORT", "LOG_FILE", "JWT_SECRET",
	"SMTP_HOST", "SMTP_PORT", "SMTP_SENDER_NAME", "SMTP_AUTH_EMAIL", "SMTP_AUTH_PASSWORD",
	"AWS_S3_BUCKET", "AWS_S3_REGION", "AWS_ACCESS_KEY", "AWS_SECRET_KEY",
	"AMQP_URL",
}

func GetConfig(key string) string {
	v := lookup(key)
	if v == "" {
		return defaults[key]
	}
	return v
}

func lookup(key string) string {
	switch key {
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "DB_TIMEZONE":
		return config.DBTimeZone
	case "APP_PORT":
		return config.AppPort
	case "LOG_FILE":
		return config.LogFile
	case "JWT_SECRET":
		return config.JWTSecret
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "AMQP_URL":
		return config.AMQPURL
	default:
		return ""
	}
}

func SetConfig(key, value string) {
	switch key {
	case "DB_USER":
		config.DBUser = value
	case "DB_NAME":
		config.DBName = value
	case "DB_PASSWORD":
		config.DBPassword = value
	case "DB_PORT":
		config.DBPort = value
	case "DB_HOST":
		config.DBHost = value
	case "DB_TIMEZONE":
		config.DBTimeZone = value
	case "APP_PORT":
		config.AppPort = value
	case "LOG_FILE":
		config.LogFile = value
	case "JWT_SECRET":
		config.JWTSecret = value
	case "SMTP_HOST":
		config.SMTPHost = value
	case "SMTP_PORT":
		config.SMTPPort = value
	case "SMTP_SENDER_NAME":
		config.SMTPSenderName = value
	case "SMTP_AUTH_EMAIL":
		config.SMTPAuthEmail = value
	case "SMTP_AUTH_PASSWORD":
		config.SMTPAuthPassword = value
	case "AWS_S3_BUCKET":
		config.AWSS3Bucket = value
	case "AWS_S3_REGION":
		config.AWSS3Region = value
	case "AWS_ACCESS_KEY":
		config.AWSAccessKey = value
	case "AWS_SECRET_KEY":
		config.AWSSecretKey = value
	case "AMQP_URL":
		config.AMQPURL = value
	}
}
