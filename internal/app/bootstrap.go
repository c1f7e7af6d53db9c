package app

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/MrJamesThe3rd/toolrent/internal/clock"
	"github.com/MrJamesThe3rd/toolrent/internal/config"
	"github.com/MrJamesThe3rd/toolrent/internal/database"
	"github.com/MrJamesThe3rd/toolrent/internal/memstore"
	"github.com/MrJamesThe3rd/toolrent/internal/rate"
)

// seedLateFee matches the late fee the initial migration inserts.
const seedLateFee = 2000

// NewLogger builds the process logger. format is "json" or "text".
func NewLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}

	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// Open sets the calendar zone and connects the configured store. The returned
// func releases it.
func Open(cfg *config.Config) (Repositories, func() error, error) {
	clock.Location = cfg.Location()

	if cfg.Store == "memory" {
		slog.Warn("using in-memory store, data is lost on exit")
		return Memory(memstore.New(cfg.Rates.LateFeeName, seedLateFee)), func() error { return nil }, nil
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return Repositories{}, nil, fmt.Errorf("connecting to database: %w", err)
	}

	if cfg.DB.Migrate {
		if err := database.Migrate(db); err != nil {
			db.Close()
			return Repositories{}, nil, err
		}
	}

	return Postgres(db), db.Close, nil
}

// OptionsFrom maps the configuration onto service options.
func OptionsFrom(cfg *config.Config) Options {
	return Options{
		Names: rate.Names{
			DailyRental:      cfg.Rates.DailyRentalName,
			ReplacementValue: cfg.Rates.ReplacementValueName,
			LateFee:          cfg.Rates.LateFeeName,
		},
		MaxOpenLoans: cfg.Loans.MaxOpenPerCustomer,
	}
}
