package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port                    string        `env:"PORT" envDefault:"5001"`
	SiteURL                 string        `env:"SITE_URL" envDefault:"http://localhost:5173"`
	GoEnv                   string        `env:"GO_ENV" envDefault:"dev"`
	SpeakerInterval         time.Duration `env:"SPEAKER_INTERVAL" envDefault:"4s"`
	ChatInterval            time.Duration `env:"CHAT_INTERVAL" envDefault:"12s"`
	ReactionTTL             time.Duration `env:"REACTION_TTL" envDefault:"3s"`
	AmbientReactionInterval time.Duration `env:"AMBIENT_REACTION_INTERVAL" envDefault:"3s"`
}

// Load reads .env when present and parses the environment into a Config.
func Load() (Config, error) {
	_ = godotenv.Load()

	return env.ParseAs[Config]()
}
