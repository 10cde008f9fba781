package config

import (
	"os"
	"strconv"
	"time"

	"agent_arena/internal/logger"

	"github.com/joho/godotenv"
)

// Timing - phase windows and the ready-forfeit penalty.
// Single source of truth; nothing else hardcodes these values.
type Timing struct {
	ReadyCheckWindow time.Duration
	CommitWindow     time.Duration
	RevealWindow     time.Duration
	RoundInterval    time.Duration
	EloRetryDelay    time.Duration
	ReadyForfeitElo  int
}

// Rules - scoring and move-diversity constants
type Rules struct {
	WinThreshold     int
	MaxRounds        int
	MoveUseLimit     int
	ConsecutiveLimit int
	NormalWinPoints  int
	ReadBonusPoints  int
}

type Config struct {
	AppPort     string
	DatabaseURL string
	RedisAddr   string
	JWTSecret   string
	LogLevel    string
	LogJSON     bool

	Timing Timing
	Rules  Rules
}

// DefaultTiming returns production phase windows.
func DefaultTiming() Timing {
	return Timing{
		ReadyCheckWindow: 30 * time.Second,
		CommitWindow:     30 * time.Second,
		RevealWindow:     15 * time.Second,
		RoundInterval:    5 * time.Second,
		EloRetryDelay:    5 * time.Second,
		ReadyForfeitElo:  -15,
	}
}

// DefaultRules returns the standard arena ruleset.
func DefaultRules() Rules {
	return Rules{
		WinThreshold:     4,
		MaxRounds:        12,
		MoveUseLimit:     4,
		ConsecutiveLimit: 3,
		NormalWinPoints:  1,
		ReadBonusPoints:  2,
	}
}

// Load reads configuration from env
func Load() *Config {
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	timing := DefaultTiming()
	timing.ReadyCheckWindow = envSeconds("READY_CHECK_SEC", timing.ReadyCheckWindow)
	timing.CommitWindow = envSeconds("COMMIT_SEC", timing.CommitWindow)
	timing.RevealWindow = envSeconds("REVEAL_SEC", timing.RevealWindow)
	timing.RoundInterval = envSeconds("ROUND_INTERVAL_SEC", timing.RoundInterval)
	timing.EloRetryDelay = envSeconds("ELO_RETRY_SEC", timing.EloRetryDelay)

	rules := DefaultRules()
	rules.WinThreshold = envInt("WIN_THRESHOLD", rules.WinThreshold)
	rules.MaxRounds = envInt("MAX_ROUNDS", rules.MaxRounds)
	rules.MoveUseLimit = envInt("MOVE_USE_LIMIT", rules.MoveUseLimit)
	rules.ConsecutiveLimit = envInt("CONSECUTIVE_LIMIT", rules.ConsecutiveLimit)

	return &Config{
		AppPort:     port,
		DatabaseURL: os.Getenv("DATABASE_URL"), // empty disables the archiver
		RedisAddr:   os.Getenv("REDIS_ADDR"),   // empty disables rate limiting
		JWTSecret:   jwtSecret,
		LogLevel:    envString("LOG_LEVEL", "info"),
		LogJSON:     os.Getenv("LOG_JSON") == "true",
		Timing:      timing,
		Rules:       rules,
	}
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func envSeconds(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return def
}
