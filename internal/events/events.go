package events

import "github.com/google/uuid"

const (
	NameLoanCreated    = "loan.created"
	NameLoanReturned   = "loan.returned"
	NameDamageAssessed = "loan.damage_assessed"
	NameFinePaid       = "fine.paid"
)

type LoanCreated struct {
	LoanID     uuid.UUID
	CustomerID uuid.UUID
	ToolID     uuid.UUID
}

func (LoanCreated) Name() string { return NameLoanCreated }

type LoanReturned struct {
	LoanID     uuid.UUID
	CustomerID uuid.UUID
	ToolID     uuid.UUID
	Late       bool
	Damaged    bool
}

func (LoanReturned) Name() string { return NameLoanReturned }

type DamageAssessed struct {
	LoanID      uuid.UUID
	CustomerID  uuid.UUID
	ToolID      uuid.UUID
	Irreparable bool
}

func (DamageAssessed) Name() string { return NameDamageAssessed }

type FinePaid struct {
	FineID     uuid.UUID
	LoanID     uuid.UUID
	CustomerID uuid.UUID
}

func (FinePaid) Name() string { return NameFinePaid }
