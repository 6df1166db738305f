package config

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/hachimi-dev/hachimi-installer/internal/game"
)

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks the configuration for correctness and returns every
// problem found as *ValidationErrors.
func Validate(cfg *Config) error {
	var errs []ValidationError

	errs = append(errs, validateGame(&cfg.Game)...)

	if cfg.Steam.PollInterval < 0 {
		errs = append(errs, ValidationError{
			Field:   "steam.poll_interval",
			Message: "must not be negative",
			Value:   cfg.Steam.PollInterval,
			Wrapped: ErrInvalidConfig,
		})
	}

	errs = append(errs, validateSystem(&cfg.System)...)

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

func validateGame(g *GameConfig) []ValidationError {
	var errs []ValidationError

	if g.Channel != "" {
		if _, err := game.ParseChannel(g.Channel); err != nil {
			errs = append(errs, ValidationError{
				Field:   "game.channel",
				Message: "must be one of: dmm, steam, steam-global",
				Value:   g.Channel,
				Wrapped: ErrInvalidConfig,
			})
		}
	}

	if _, err := game.ParseTarget(g.Target); err != nil {
		errs = append(errs, ValidationError{
			Field:   "game.target",
			Message: "must be one of: unityplayer, cri_mana_vpx",
			Value:   g.Target,
			Wrapped: ErrInvalidConfig,
		})
	}

	if name := g.CustomTarget; name != "" {
		if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
			errs = append(errs, ValidationError{
				Field:   "game.custom_target",
				Message: "must be a file name without directories",
				Value:   name,
				Wrapped: ErrInvalidConfig,
			})
		}
	}

	return errs
}

func validateSystem(s *SystemConfig) []ValidationError {
	var errs []ValidationError

	if s.LogLevel != "" && !validLogLevels[s.LogLevel] {
		errs = append(errs, ValidationError{
			Field:   "system.log_level",
			Message: "must be one of: debug, info, warn, error",
			Value:   s.LogLevel,
			Wrapped: ErrInvalidConfig,
		})
	}

	if s.Language != "" {
		if _, err := language.Parse(s.Language); err != nil {
			errs = append(errs, ValidationError{
				Field:   "system.language",
				Message: "must be a BCP 47 language tag such as en or ja",
				Value:   s.Language,
				Wrapped: ErrInvalidConfig,
			})
		}
	}

	return errs
}
