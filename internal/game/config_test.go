package game

import (
	"testing"
	"time"

	"github.com/Iron-Ham/tambola/internal/errors"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"default is valid", func(*Config) {}, ""},
		{"one player", func(c *Config) { c.Players = 1 }, ""},
		{"first winner policy", func(c *Config) { c.StopPolicy = StopOnFirstWinner }, ""},
		{"zero interval", func(c *Config) { c.RoundInterval = 0 }, ""},
		{"zero players", func(c *Config) { c.Players = 0 }, "players"},
		{"negative players", func(c *Config) { c.Players = -2 }, "players"},
		{"zero ticket size", func(c *Config) { c.TicketSize = 0 }, "ticket_size"},
		{"zero ticket width", func(c *Config) { c.TicketWidth = 0 }, "ticket_width"},
		{"zero threshold", func(c *Config) { c.MatchThreshold = 0 }, "match_threshold"},
		{"threshold above ticket size", func(c *Config) { c.MatchThreshold = 11 }, "match_threshold"},
		{"range too small", func(c *Config) { c.NumberRange = 49 }, "number_range"},
		{"negative interval", func(c *Config) { c.RoundInterval = -time.Second }, "round_interval"},
		{"negative max rounds", func(c *Config) { c.MaxRounds = -1 }, "max_rounds"},
		{"unknown stop policy", func(c *Config) { c.StopPolicy = "never" }, "stop_policy"},
		{"empty stop policy", func(c *Config) { c.StopPolicy = "" }, "stop_policy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()

			if tt.field == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, errors.ErrInvalidConfig) {
				t.Fatalf("Validate() error = %v, want ErrInvalidConfig", err)
			}
			var ve *errors.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate() error type = %T, want *ValidationError", err)
			}
			if ve.Field != tt.field {
				t.Errorf("Field = %q, want %q", ve.Field, tt.field)
			}
		})
	}
}
