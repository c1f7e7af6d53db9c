// Package app wires the domain services over a chosen persistence backend.
// Both binaries and the HTTP tests build their object graph here.
package app

import (
	"database/sql"

	"github.com/MrJamesThe3rd/toolrent/internal/clock"
	"github.com/MrJamesThe3rd/toolrent/internal/customer"
	customerStore "github.com/MrJamesThe3rd/toolrent/internal/customer/store"
	"github.com/MrJamesThe3rd/toolrent/internal/database"
	"github.com/MrJamesThe3rd/toolrent/internal/events"
	"github.com/MrJamesThe3rd/toolrent/internal/fine"
	fineStore "github.com/MrJamesThe3rd/toolrent/internal/fine/store"
	"github.com/MrJamesThe3rd/toolrent/internal/importer"
	"github.com/MrJamesThe3rd/toolrent/internal/inventory"
	inventoryStore "github.com/MrJamesThe3rd/toolrent/internal/inventory/store"
	"github.com/MrJamesThe3rd/toolrent/internal/loan"
	loanStore "github.com/MrJamesThe3rd/toolrent/internal/loan/store"
	"github.com/MrJamesThe3rd/toolrent/internal/memstore"
	"github.com/MrJamesThe3rd/toolrent/internal/rate"
	rateStore "github.com/MrJamesThe3rd/toolrent/internal/rate/store"
	"github.com/MrJamesThe3rd/toolrent/internal/report"
)

// Repositories is one implementation of every persistence port.
type Repositories struct {
	Inventory  inventory.Repository
	Customers  customer.Repository
	Rates      rate.Repository
	Fines      fine.Repository
	Loans      loan.Repository
	Transactor database.Transactor
}

func Postgres(db *sql.DB) Repositories {
	return Repositories{
		Inventory:  inventoryStore.New(db),
		Customers:  customerStore.New(db),
		Rates:      rateStore.New(db),
		Fines:      fineStore.New(db),
		Loans:      loanStore.New(db),
		Transactor: database.NewTransactor(db),
	}
}

func Memory(s *memstore.Store) Repositories {
	return Repositories{
		Inventory:  s,
		Customers:  s,
		Rates:      s,
		Fines:      s,
		Loans:      s,
		Transactor: s,
	}
}

type Options struct {
	Names        rate.Names
	MaxOpenLoans int
	Clock        clock.Clock // nil means time.Now
}

type Services struct {
	Bus       *events.Bus
	Inventory *inventory.Service
	Customers *customer.Service
	Tracker   *customer.Tracker
	Rates     *rate.Service
	Resolver  *rate.Resolver
	Fines     *fine.Service
	Loans     *loan.Service
	Importer  *importer.Service
	Reports   *report.Service
}

// NewServices builds the services and registers the event listeners. Loan
// closure runs before the standing refresh on every fine payment.
func NewServices(repos Repositories, opts Options) *Services {
	loanOpts := []loan.Option{}
	fineOpts := []fine.Option{}

	if opts.Clock != nil {
		loanOpts = append(loanOpts, loan.WithClock(opts.Clock))
		fineOpts = append(fineOpts, fine.WithClock(opts.Clock))
	}

	if opts.MaxOpenLoans > 0 {
		loanOpts = append(loanOpts, loan.WithMaxOpenLoans(opts.MaxOpenLoans))
	}

	s := &Services{Bus: events.NewBus()}

	s.Inventory = inventory.NewService(repos.Inventory, repos.Transactor)
	s.Customers = customer.NewService(repos.Customers)
	s.Tracker = customer.NewTracker(repos.Customers, opts.Clock)
	s.Rates = rate.NewService(repos.Rates, opts.Names)
	s.Resolver = rate.NewResolver(repos.Rates, opts.Names)
	s.Fines = fine.NewService(repos.Fines, repos.Transactor, s.Resolver, s.Inventory, s.Bus, fineOpts...)
	s.Loans = loan.NewService(repos.Loans, repos.Transactor, loan.Deps{
		Inventory: s.Inventory,
		Rates:     s.Resolver,
		Fines:     s.Fines,
		Standing:  s.Tracker,
		Bus:       s.Bus,
	}, loanOpts...)
	s.Importer = importer.NewService(s.Inventory)
	s.Reports = report.NewService(s.Loans, s.Fines, s.Inventory)

	s.Loans.Subscribe(s.Bus)
	s.Tracker.Subscribe(s.Bus)

	return s
}
