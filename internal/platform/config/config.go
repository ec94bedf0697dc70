package config

import "os"

// Server captures HTTP server level configuration.
type Server struct {
	Addr      string
	RulesFile string
	Seed      bool
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("FAIRLENS_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	// Optional YAML file overriding the built-in flagging vocabulary.
	rulesFile := os.Getenv("FAIRLENS_RULES_FILE")

	seed := os.Getenv("FAIRLENS_SEED") != "false"

	return Server{
		Addr:      addr,
		RulesFile: rulesFile,
		Seed:      seed,
	}
}
