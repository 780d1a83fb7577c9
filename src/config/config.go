package config

import (
	"os"
)

type Config struct {
	Port        string
	DbPath      string
	MongoURI    string
	MongoDbName string
}

func getEnvStrOrDefault(key string, defaultValue string) string {
	value := os.Getenv(key)

	if value == "" {
		return defaultValue
	}

	return value
}

func LoadFromEnv() *Config {
	return &Config{
		Port:        getEnvStrOrDefault("PORT", "3000"),
		DbPath:      getEnvStrOrDefault("DB_PATH", "./hackmate.db"),
		MongoURI:    getEnvStrOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDbName: getEnvStrOrDefault("MONGO_DB_NAME", "hackmate"),
	}
}
