package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// Fee uniqueness scopes. The original system keyed fee uniqueness on the
// student alone even though every fee carries a session; the scope is
// configurable so per-session ledgers can be enabled without a code change.
const (
	FeeScopeStudent        = "student"
	FeeScopeStudentSession = "student_session"
)

type Config struct {
	DB             *sql.DB
	Port           string
	JWTSecret      string
	UploadDir      string
	FeeUniqueScope string
}

var AppConfig *Config

// Load reads .env (if present) and environment variables into AppConfig and
// opens the database pool. Call once at startup.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	scope := getEnv("FEE_UNIQUE_SCOPE", FeeScopeStudent)
	if scope != FeeScopeStudent && scope != FeeScopeStudentSession {
		log.Printf("Unknown FEE_UNIQUE_SCOPE %q, falling back to %q", scope, FeeScopeStudent)
		scope = FeeScopeStudent
	}

	AppConfig = &Config{
		Port:           getEnv("PORT", "3009"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
		FeeUniqueScope: scope,
	}

	initDB()
}

func initDB() {
	psqlInfo := os.Getenv("DATABASE_URL")
	if psqlInfo == "" {
		psqlInfo = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_PORT", "5432"),
			getEnv("DB_USER", "postgres"),
			getEnv("DB_PASSWORD", ""),
			getEnv("DB_NAME", "institute"),
			getEnv("DB_SSLMODE", "disable"),
		)
	}

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	// Connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	log.Println("Testing database connection...")
	if err = db.Ping(); err != nil {
		log.Fatal("Cannot establish database connection: ", err)
	}

	AppConfig.DB = db
	log.Println("Database connected successfully")
}

func GetDB() *sql.DB {
	return AppConfig.DB
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
