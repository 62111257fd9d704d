package config

import "time"

// DefaultPrompt asks the model for a single Thai word and a Thai hint as JSON.
const DefaultPrompt = "Generate a single Thai word and its hint for a word guessing game. " +
	"The word should be 3-7 letters long. The hint should explain what the word means in Thai.\n\n" +
	`Respond ONLY with valid JSON in the format {"word": "Thai word", "hint": "Hint in Thai"} ` +
	"without any explanation or additional text. Just the JSON object."

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Generation GenerationConfig `yaml:"generation"`
	Corpus     CorpusConfig     `yaml:"corpus"`
	HighScore  HighScoreConfig  `yaml:"high_score"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string        `yaml:"port"             env:"PORT"             env-default:"8080"`
	Env             string        `yaml:"env"              env:"ENV"              env-default:"development"`
	StaticDir       string        `yaml:"static_dir"       env:"STATIC_DIR"       env-default:"static"`
	StaticCacheAge  time.Duration `yaml:"static_cache_age" env:"STATIC_CACHE_AGE" env-default:"5m"`
	CookieMaxAge    time.Duration `yaml:"cookie_max_age"   env:"COOKIE_MAX_AGE"   env-default:"8760h"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// GenerationConfig holds settings for the word generation endpoint.
type GenerationConfig struct {
	Enabled  bool          `yaml:"enabled"  env:"GENERATION_ENABLED"  env-default:"true"`
	Endpoint string        `yaml:"endpoint" env:"GENERATION_ENDPOINT" env-default:"http://localhost:11434/api/generate"`
	Model    string        `yaml:"model"    env:"GENERATION_MODEL"    env-default:"gemma3"`
	Prompt   string        `yaml:"prompt"   env:"GENERATION_PROMPT"`
	Timeout  time.Duration `yaml:"timeout"  env:"GENERATION_TIMEOUT"  env-default:"30s"`
}

// CorpusConfig points at an optional replacement for the embedded word list.
type CorpusConfig struct {
	Path string `yaml:"path" env:"CORPUS_PATH"`
}

// HighScoreConfig selects the high score backend.
type HighScoreConfig struct {
	Backend string        `yaml:"backend" env:"HIGHSCORE_BACKEND" env-default:"file"`
	Dir     string        `yaml:"dir"     env:"HIGHSCORE_DIR"     env-default:"data/highscores"`
	MaxAge  time.Duration `yaml:"max_age" env:"HIGHSCORE_MAX_AGE" env-default:"0s"`
	DSN     string        `yaml:"dsn"     env:"HIGHSCORE_DSN"     env-default:"data/khamthai.db"`
}

// RateLimitConfig holds the per-client token bucket.
type RateLimitConfig struct {
	RPS   int `yaml:"rps"   env:"RATE_LIMIT_RPS"   env-default:"5"`
	Burst int `yaml:"burst" env:"RATE_LIMIT_BURST" env-default:"10"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"console"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}
