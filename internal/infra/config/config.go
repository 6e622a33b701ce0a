package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Режимы получения обновлений ботом
const (
	BotModeWebhook = "webhook"
	BotModePolling = "polling"
	BotModeOff     = "off"
)

// Admin учетная запись администратора панели
type Admin struct {
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	PasswordHash string `yaml:"password_hash"`
	TelegramID   int64  `yaml:"telegram_id"`
}

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port string `yaml:"port"`
		// PublicURL внешний адрес сервиса, на него регистрируется вебхук
		PublicURL   string   `yaml:"public_url"`
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`
	TelegramBot struct {
		Token string `yaml:"token"`
		// ChatID канал, куда приходят результаты экзаменов
		ChatID       int64         `yaml:"chat_id"`
		Mode         string        `yaml:"mode"`
		PollInterval time.Duration `yaml:"poll_interval"`
		Debug        bool          `yaml:"debug"`
	} `yaml:"telegram_bot"`
	Auth struct {
		JWTSecret    string  `yaml:"jwt_secret"`
		RequireToken *bool   `yaml:"require_token"`
		Admins       []Admin `yaml:"admins"`
	} `yaml:"auth"`
	Storage struct {
		Type     string `yaml:"type"`
		DataDir  string `yaml:"data_dir"`
		BoltPath string `yaml:"bolt_path"`
		Sheets   struct {
			SpreadsheetID   string `yaml:"spreadsheet_id"`
			CredentialsJSON string `yaml:"credentials_json"`
			CredentialsFile string `yaml:"credentials_file"`
		} `yaml:"sheets"`
		// SeedQuestions JSON-файл банка вопросов, загружается в пустое хранилище при старте
		SeedQuestions string `yaml:"seed_questions"`
	} `yaml:"storage"`
	Database struct {
		URL      string `yaml:"url"`
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"dbname"`
		SSLMode  string `yaml:"sslmode"`
	} `yaml:"database"`
	Export struct {
		FontDir string `yaml:"font_dir"`
	} `yaml:"export"`
}

// LoadConfig читает YAML-файл filename, подгружает .env и применяет переменные окружения.
// Пустой filename означает конфигурацию только из окружения.
func LoadConfig(filename string) (*Config, error) {
	// .env необязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	config := &Config{}
	if filename != "" {
		if err := decodeFile(filename, config); err != nil {
			return nil, err
		}
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	config.setDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func decodeFile(filename string, config *Config) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open config %s: %w", filename, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(config); err != nil {
		return fmt.Errorf("failed to decode config %s: %w", filename, err)
	}
	return nil
}

// applyEnv переопределяет значения файла переменными окружения
func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	setString("PORT", &c.Server.Port)
	setString("RENDER_EXTERNAL_URL", &c.Server.PublicURL)
	setString("TELEGRAM_TOKEN", &c.TelegramBot.Token)
	setString("BOT_MODE", &c.TelegramBot.Mode)
	setString("JWT_SECRET", &c.Auth.JWTSecret)
	setString("STORAGE_TYPE", &c.Storage.Type)
	setString("DATA_DIR", &c.Storage.DataDir)
	setString("SEED_QUESTIONS", &c.Storage.SeedQuestions)
	setString("SHEET_ID", &c.Storage.Sheets.SpreadsheetID)
	setString("GOOGLE_SERVICE_ACCOUNT", &c.Storage.Sheets.CredentialsJSON)
	setString("DATABASE_URL", &c.Database.URL)

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid CHAT_ID %q: %w", v, err)
		}
		c.TelegramBot.ChatID = id
	}
	if v := os.Getenv("DEBUG"); v != "" {
		c.TelegramBot.Debug = v == "true" || v == "1"
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "5000"
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"https://client-95yu.onrender.com", "http://localhost:5173"}
	}
	if c.TelegramBot.Mode == "" {
		switch {
		case c.TelegramBot.Token == "":
			c.TelegramBot.Mode = BotModeOff
		case c.Server.PublicURL != "":
			c.TelegramBot.Mode = BotModeWebhook
		default:
			c.TelegramBot.Mode = BotModePolling
		}
	}
	if c.TelegramBot.PollInterval == 0 {
		c.TelegramBot.PollInterval = 10 * time.Second
	}
	if c.Storage.Type == "" {
		c.Storage.Type = "memory"
	}
	if c.Storage.DataDir == "" {
		c.Storage.DataDir = "data"
	}
	if c.Storage.BoltPath == "" {
		c.Storage.BoltPath = "data/exam.db"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret (JWT_SECRET) is required")
	}

	switch c.TelegramBot.Mode {
	case BotModeOff:
	case BotModePolling:
		if c.TelegramBot.Token == "" {
			return errors.New("telegram_bot.token is required in polling mode")
		}
	case BotModeWebhook:
		if c.TelegramBot.Token == "" || c.Server.PublicURL == "" {
			return errors.New("telegram_bot.token and server.public_url are required in webhook mode")
		}
	default:
		return fmt.Errorf("unknown telegram_bot.mode %q", c.TelegramBot.Mode)
	}

	switch c.Storage.Type {
	case "memory", "json", "bolt":
	case "sheets":
		if c.Storage.Sheets.SpreadsheetID == "" {
			return errors.New("storage.sheets.spreadsheet_id (SHEET_ID) is required for sheets storage")
		}
		if c.Storage.Sheets.CredentialsJSON == "" && c.Storage.Sheets.CredentialsFile == "" {
			return errors.New("sheets storage needs credentials_json (GOOGLE_SERVICE_ACCOUNT) or credentials_file")
		}
	case "postgres":
		if c.Database.URL == "" && c.Database.Host == "" {
			return errors.New("database.url (DATABASE_URL) or database.host is required for postgres storage")
		}
	default:
		return fmt.Errorf("unknown storage.type %q", c.Storage.Type)
	}
	return nil
}

// RequiresToken сообщает, защищены ли административные маршруты токеном (по умолчанию да)
func (c *Config) RequiresToken() bool {
	return c.Auth.RequireToken == nil || *c.Auth.RequireToken
}

// Addr адрес для http.Server
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// DSN строка подключения к PostgreSQL
func (c *Config) DSN() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     fmt.Sprintf("%s:%s", c.Database.Host, c.Database.Port),
		Path:     "/" + c.Database.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.Database.SSLMode),
	}
	return u.String()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
