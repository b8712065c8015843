package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DB       DBConfig
	Telegram TelegramConfig
	Schedule ScheduleConfig
	Payroll  PayrollConfig
	Branches []Branch
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type TelegramConfig struct {
	Token string
}

type ScheduleConfig struct {
	SheetURL string // published CSV export of the weekly schedule sheet
}

type PayrollConfig struct {
	HourlyRate int64 // rubles per hour
}

// Branch is one city branch couriers work from (e.g. surgut_1).
type Branch struct {
	ID    string
	Title string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	rate, _ := strconv.ParseInt(getEnv("HOURLY_RATE", "250"), 10, 64)

	return &Config{
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     port,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "courier"),
		},
		Telegram: TelegramConfig{
			Token: getEnv("TOKEN", ""),
		},
		Schedule: ScheduleConfig{
			SheetURL: getEnv("SCHEDULE_SHEET_URL", ""),
		},
		Payroll: PayrollConfig{
			HourlyRate: rate,
		},
		Branches: parseBranches(getEnv("BRANCHES", "surgut_1:Сургут-1,surgut_2:Сургут-2,surgut_3:Сургут-3")),
	}, nil
}

// parseBranches parses "id:Title,id:Title". An entry without a title uses the id as title.
func parseBranches(s string) []Branch {
	var out []Branch
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, title, ok := strings.Cut(part, ":")
		if !ok || title == "" {
			title = id
		}
		out = append(out, Branch{ID: id, Title: title})
	}
	return out
}

// BranchTitle returns the display title for a branch id, or the id itself when unknown.
func (c *Config) BranchTitle(id string) string {
	for _, b := range c.Branches {
		if b.ID == id {
			return b.Title
		}
	}
	return id
}

// HasBranch reports whether id is a configured branch.
func (c *Config) HasBranch(id string) bool {
	for _, b := range c.Branches {
		if b.ID == id {
			return true
		}
	}
	return false
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
