package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string

	// Intake targets
	MasterSheetID  string // spreadsheet holding the email -> case id mapping
	AdminEmail     string // always granted access and notified
	RootFolderName string // must pre-exist and be shared to the service identity

	// OAuth user-delegated credentials (enables Gmail send)
	OAuthClientID     string
	OAuthClientSecret string
	OAuthRefreshToken string

	// Service-account credential sources, tried in order by the resolver
	ServiceAccountJSON string // raw key JSON
	SAClientEmail      string // flat fields
	SAPrivateKey       string
	CredentialsFile    string // key file path

	// SMTP fallback for notifications when not in OAuth mode
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string

	// Optional YAML file carrying the service-account block and header aliases
	ConfigFile string

	// Optional shared secret required on API requests
	OperatorToken string

	// Optional directory for file logging alongside stdout
	LogDir      string
	LogMaxFiles int

	// Debug flags
	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),

		MasterSheetID:  getEnv("MASTER_SHEET_ID", "1zXHavJqhOBq1-m_VR7sxMkeOHdXoD9EmQCEM1Nl816I"),
		AdminEmail:     getEnv("ADMIN_EMAIL", "rhk9903@gmail.com"),
		RootFolderName: getEnv("ROOT_FOLDER_NAME", "Meta_Ads_System"),

		OAuthClientID:     getEnv("GOOGLE_OAUTH_CLIENT_ID", ""),
		OAuthClientSecret: getEnv("GOOGLE_OAUTH_CLIENT_SECRET", ""),
		OAuthRefreshToken: getEnv("GOOGLE_OAUTH_REFRESH_TOKEN", ""),

		ServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
		SAClientEmail:      getEnv("GOOGLE_SA_CLIENT_EMAIL", ""),
		SAPrivateKey:       getEnv("GOOGLE_SA_PRIVATE_KEY", ""),
		CredentialsFile:    getEnv("GOOGLE_APPLICATION_CREDENTIALS", "service-account.json"),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		ConfigFile: getEnv("METAADS_CONFIG", "metaads.yaml"),

		OperatorToken: getEnv("OPERATOR_TOKEN", ""),

		LogDir:      getEnv("LOG_DIR", ""),
		LogMaxFiles: getEnvInt("LOG_MAX_FILES", 10),

		// Debug defaults to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
