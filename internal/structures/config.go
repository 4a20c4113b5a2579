package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

// GameConfig holds the gameplay tunables. PackSize is the number of cards
// minted per pack open; CardsPerPack is how many normal-rarity duplicates
// fund one pack via trade-in.
type GameConfig struct {
	PackSize      int           `yaml:"packSize" validate:"required|min:1"`
	CardsPerPack  int           `yaml:"cardsPerPack" validate:"required|min:1"`
	StartingPacks int           `yaml:"startingPacks"`
	InactiveTTL   time.Duration `yaml:"inactiveTTL"`
	ColdDir       string        `yaml:"coldDir"`
}

type PlayersConfig struct {
	Source          string        `yaml:"source" validate:"required|in:file,http"`
	FilePath        string        `yaml:"filePath"`
	Url             string        `yaml:"url"`
	FetchTimeout    time.Duration `yaml:"fetchTimeout"`
	RefreshInterval time.Duration `yaml:"refreshInterval"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
	TTL     int  `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled"`
	Rps     float64 `yaml:"rps"`
	Burst   int     `yaml:"burst"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	Game        GameConfig      `yaml:"game"`
	Players     PlayersConfig   `yaml:"players"`
	WebServer   Server          `yaml:"webServer"`
	Persistence Persistence     `yaml:"persistence"`
	Logger      LoggerConfig    `yaml:"logger"`
	Cache       CacheConfig     `yaml:"cache"`
	Metrics     MetricsConfig   `yaml:"metrics"`
	RateLimit   RateLimitConfig `yaml:"rateLimit"`
}
