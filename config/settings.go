package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Settings holds every runtime knob, loaded from the environment once at
// startup. Mock flags default to true so the service runs end-to-end with no
// AWS credentials.
type Settings struct {
	Environment string
	Port        string
	LogLevel    string

	PostgresURI string
	RedisAddr   string

	JWTSecret     string
	JWTIssuer     string
	JWTExpiration time.Duration

	DefaultManagerEmail    string
	DefaultManagerPassword string
	DefaultManagerName     string

	AWSRegion          string
	S3Bucket           string
	S3UploadExpiration time.Duration
	SNSTopicARN        string
	SESSender          string

	UseMockTextract  bool
	UseMockSageMaker bool
	UseMockS3        bool
	UseMockSNS       bool

	SageMakerEndpoint string

	ApplicationsCacheTTL time.Duration
}

func Load() *Settings {
	return &Settings{
		Environment: getenv("ENVIRONMENT", "development"),
		Port:        getenv("PORT", "8000"),
		LogLevel:    getenv("LOG_LEVEL", "info"),

		PostgresURI: os.Getenv("POSTGRES_URI"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),

		JWTSecret:     getenv("JWT_SECRET", "change-this-secret-key-in-production"),
		JWTIssuer:     getenv("JWT_ISSUER", "loanpilot"),
		JWTExpiration: durationHours("JWT_EXPIRATION_HOURS", 24),

		DefaultManagerEmail:    getenv("DEFAULT_MANAGER_EMAIL", "admin@loanbank.com"),
		DefaultManagerPassword: getenv("DEFAULT_MANAGER_PASSWORD", "admin123"),
		DefaultManagerName:     getenv("DEFAULT_MANAGER_NAME", "Admin Manager"),

		AWSRegion:          getenv("AWS_REGION", "us-east-1"),
		S3Bucket:           getenv("S3_BUCKET_NAME", "loan-documents-bucket"),
		S3UploadExpiration: durationSeconds("S3_UPLOAD_EXPIRATION", 3600),
		SNSTopicARN:        os.Getenv("SNS_TOPIC_ARN"),
		SESSender:          os.Getenv("SES_SENDER_EMAIL"),

		UseMockTextract:  getbool("USE_MOCK_TEXTRACT", true),
		UseMockSageMaker: getbool("USE_MOCK_SAGEMAKER", true),
		UseMockS3:        getbool("USE_MOCK_S3", true),
		UseMockSNS:       getbool("USE_MOCK_SNS", true),

		SageMakerEndpoint: getenv("SAGEMAKER_ENDPOINT_NAME", "loan-eligibility-endpoint"),

		ApplicationsCacheTTL: durationSeconds("APPLICATIONS_CACHE_TTL_SECONDS", 30),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if v == "" {
		return def
	}
	return v == "true" || v == "1" || v == "yes"
}

func durationHours(key string, def int) time.Duration {
	n := def
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			n = parsed
		}
	}
	return time.Duration(n) * time.Hour
}

func durationSeconds(key string, def int) time.Duration {
	n := def
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			n = parsed
		}
	}
	return time.Duration(n) * time.Second
}
