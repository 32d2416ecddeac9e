package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	AppPort string
	AppEnv  string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret string
	JWTTTL    time.Duration

	// Grading: accepted marks run from 2 up to MaxMark, plus the absent marker.
	MaxMark    uint
	AbsentMark string

	DefaultPassword string
	MediaRoot       string
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getUint(k string, def uint) uint {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			return uint(n)
		}
	}
	return def
}

func Load() *Config {
	ttl := 7 * 24 * time.Hour
	if v := os.Getenv("JWT_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			ttl = d
		}
	}
	return &Config{
		AppPort: get("APP_PORT", "8080"),
		AppEnv:  get("APP_ENV", "dev"),

		DBHost:     get("DB_HOST", "localhost"),
		DBPort:     get("DB_PORT", "5432"),
		DBUser:     get("DB_USER", "postgres"),
		DBPassword: get("DB_PASSWORD", "postgres"),
		DBName:     get("DB_NAME", "projectcollege"),
		DBSSLMode:  get("DB_SSLMODE", "disable"),

		JWTSecret: get("JWT_SECRET", "dev-secret"),
		JWTTTL:    ttl,

		MaxMark:    getUint("MARKS_SYSTEM", 5),
		AbsentMark: get("MARK_ABSENT_VALUE", "н"),

		DefaultPassword: get("DEFAULT_ACCOUNT_PASSWORD", "college2024"),
		MediaRoot:       get("MEDIA_ROOT", "media"),
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}

// MarkValues lists every string the journal accepts as a mark value:
// "2".."MaxMark" and the absent marker.
func (c *Config) MarkValues() []string {
	vals := make([]string, 0, c.MaxMark)
	for m := uint(2); m <= c.MaxMark; m++ {
		vals = append(vals, strconv.FormatUint(uint64(m), 10))
	}
	return append(vals, c.AbsentMark)
}

// MarksRating maps a numeric mark to its rating label.
func (c *Config) MarksRating() map[string]string {
	return map[string]string{
		"2": "неудовлетворительно",
		"3": "удовлетворительно",
		"4": "хорошо",
		"5": "отлично",
	}
}

// DayNames are the six schedulable weekdays, index 0-5.
func (c *Config) DayNames() []string {
	return []string{"Понедельник", "Вторник", "Среда", "Четверг", "Пятница", "Суббота"}
}

func (c *Config) ExcelDir() string {
	return filepath.Join(c.MediaRoot, "files", "excel")
}

func (c *Config) TopicTemplatePath() string {
	return filepath.Join(c.ExcelDir(), "topic-pattern.xlsx")
}

func (c *Config) StudentTemplatePath() string {
	return filepath.Join(c.ExcelDir(), "student-pattern.xlsx")
}
