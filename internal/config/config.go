package config

import (
	"flag"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	RunAddress    string `env:"RUN_ADDRESS" envDefault:":5000"`
	DatabasePath  string `env:"DB_PATH" envDefault:"orders.db"`
	AdminDBPath   string `env:"ADMIN_DB_PATH" envDefault:"app.db"`
	AdminKey      string `env:"FAVHOME_ADMIN_KEY" envDefault:"change_me"`
	AdminPath     string `env:"ADMIN_PATH" envDefault:"1q2w3e"`
	SecretKey     string `env:"KEY" envDefault:""`
	Paybill       string `env:"FAVHOME_PAYBILL" envDefault:"400200"`
	UploadDir     string `env:"UPLOAD_DIR" envDefault:"uploads"`
	GithubToken   string `env:"GITHUB_TOKEN" envDefault:""`
	GithubRepo    string `env:"GITHUB_REPO" envDefault:""`
	GithubDBPath  string `env:"GITHUB_DB_PATH" envDefault:"orders.db"`
	GithubAPIBase string `env:"GITHUB_API_BASE" envDefault:"https://api.github.com"`
}

func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MirrorEnabled reports whether the GitHub mirror is configured. When false the
// service runs local-only and all sync machinery degrades to no-ops.
func (cfg *Config) MirrorEnabled() bool {
	return cfg.GithubToken != "" && cfg.GithubRepo != ""
}

func (cfg *Config) ParseFlags() {
	var (
		runAddress string
		dbPath     string
		adminKey   string
	)

	flag.StringVar(&runAddress, "a", "", "address host:port")
	flag.StringVar(&dbPath, "d", "", "path to the orders database file")
	flag.StringVar(&adminKey, "k", "", "admin shared key")

	flag.Parse()

	if runAddress != "" {
		cfg.RunAddress = runAddress
	}

	if dbPath != "" {
		cfg.DatabasePath = dbPath
	}

	if adminKey != "" {
		cfg.AdminKey = adminKey
	}
}
