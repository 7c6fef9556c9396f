package model

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/okian/ringside/internal/domain/calendar"
)

// TransactionType is the direction of a ledger entry.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// Media deal defaults.
const (
	weeksPerYear      = 52
	dealTermYears     = 3
	defaultDealValue  = 100000
	defaultDealRating = 70
)

// Media deal types that are filed under broadcasting.
const (
	DealTelevision = "Television"
	DealStreaming  = "Streaming"
)

// Finances is the company ledger. History is append-only and every entry's
// BalanceAfter equals the balance right after that entry was applied.
type Finances struct {
	Balance        int64         `json:"balance"`
	WeeklyRevenue  int64         `json:"weeklyRevenue"`
	WeeklyExpenses int64         `json:"weeklyExpenses"`
	ProfitMargin   float64       `json:"profitMargin"` // percent
	DebtLevel      int64         `json:"debtLevel"`
	CreditRating   string        `json:"creditRating"`
	History        []Transaction `json:"history"`
}

func defaultFinances() Finances {
	return Finances{
		Balance:        250000,
		WeeklyRevenue:  25000,
		WeeklyExpenses: 20000,
		ProfitMargin:   20,
		CreditRating:   "A",
	}
}

func (f *Finances) UnmarshalJSON(b []byte) error {
	type plain Finances
	v := plain(defaultFinances())
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = Finances(v)
	return nil
}

// Transaction is one ledger line.
type Transaction struct {
	Date         string          `json:"date"`
	Type         TransactionType `json:"type"`
	Amount       int64           `json:"amount"`
	Description  string          `json:"description"`
	BalanceAfter int64           `json:"balanceAfter"`
}

// Delta is the signed balance change of the entry.
func (t Transaction) Delta() int64 {
	if t.Type == Expense {
		return -t.Amount
	}
	return t.Amount
}

// TransactionInput is a request to post to the ledger.
type TransactionInput struct {
	Type        TransactionType `json:"type"`
	Amount      int64           `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date,omitempty"`
}

// FinanceUpdate is returned by UpdateFinances.
type FinanceUpdate struct {
	Message        string `json:"message"`
	CurrentBalance int64  `json:"currentBalance"`
}

// UpdateFinances applies a transaction to the balance and records it. An
// empty date is stamped with now.
func (p *Promotion) UpdateFinances(in TransactionInput, now time.Time) (FinanceUpdate, error) {
	switch in.Type {
	case Income:
		p.Finances.Balance += in.Amount
	case Expense:
		p.Finances.Balance -= in.Amount
	default:
		return FinanceUpdate{}, fmt.Errorf("%w: %q", ErrInvalidTransactionType, in.Type)
	}

	date := in.Date
	if date == "" {
		date = timestamp(now)
	}
	p.Finances.History = append(p.Finances.History, Transaction{
		Date:         date,
		Type:         in.Type,
		Amount:       in.Amount,
		Description:  in.Description,
		BalanceAfter: p.Finances.Balance,
	})

	if p.Finances.WeeklyRevenue > 0 {
		p.Finances.ProfitMargin = p.profitMargin()
	}

	return FinanceUpdate{
		Message:        fmt.Sprintf("Financial %s of $%d recorded: %s", in.Type, in.Amount, in.Description),
		CurrentBalance: p.Finances.Balance,
	}, nil
}

// WeeklyFinances is returned by ProcessWeeklyFinances.
type WeeklyFinances struct {
	Message        string  `json:"message"`
	WeeklyRevenue  int64   `json:"weeklyRevenue"`
	WeeklyExpenses int64   `json:"weeklyExpenses"`
	WeeklyProfit   int64   `json:"weeklyProfit"`
	CurrentBalance int64   `json:"currentBalance"`
	ProfitMargin   float64 `json:"profitMargin"`
}

// ProcessWeeklyFinances books one week of operations as a single ledger
// line dated date. With zero weekly revenue the profit margin is left as is.
func (p *Promotion) ProcessWeeklyFinances(date string) WeeklyFinances {
	f := &p.Finances
	profit := f.WeeklyRevenue - f.WeeklyExpenses
	f.Balance += profit

	kind, amount := Income, profit
	if profit < 0 {
		kind, amount = Expense, -profit
	}
	f.History = append(f.History, Transaction{
		Date:         date,
		Type:         kind,
		Amount:       amount,
		Description:  "Weekly operations",
		BalanceAfter: f.Balance,
	})

	if f.WeeklyRevenue != 0 {
		f.ProfitMargin = p.profitMargin()
	}

	outcome := "Profit"
	if profit < 0 {
		outcome = "Loss"
	}
	return WeeklyFinances{
		Message:        fmt.Sprintf("Weekly finances processed: %s of $%d", outcome, amount),
		WeeklyRevenue:  f.WeeklyRevenue,
		WeeklyExpenses: f.WeeklyExpenses,
		WeeklyProfit:   profit,
		CurrentBalance: f.Balance,
		ProfitMargin:   f.ProfitMargin,
	}
}

func (p *Promotion) profitMargin() float64 {
	f := p.Finances
	return float64(f.WeeklyRevenue-f.WeeklyExpenses) / float64(f.WeeklyRevenue) * 100
}

// VerifyLedger replays the history from the balance before its first entry
// and reports the first entry whose BalanceAfter does not match, or -1.
func (f Finances) VerifyLedger() int {
	if len(f.History) == 0 {
		return -1
	}
	first := f.History[0]
	running := first.BalanceAfter - first.Delta()
	for i, t := range f.History {
		running += t.Delta()
		if running != t.BalanceAfter {
			return i
		}
	}
	if running != f.Balance {
		return len(f.History) - 1
	}
	return -1
}

// MediaDeal is a TV or streaming contract. Value is annual.
type MediaDeal struct {
	ID           string           `json:"id"`
	Partner      string           `json:"partner"`
	Type         string           `json:"type"`
	Show         *string          `json:"show"`
	Value        int64            `json:"value"`
	StartDate    string           `json:"startDate"`
	EndDate      string           `json:"endDate"`
	Requirements DealRequirements `json:"requirements"`
}

// DealRequirements are the partner's conditions.
type DealRequirements struct {
	MinimumRating       int      `json:"minimumRating"`
	ContentRestrictions []string `json:"contentRestrictions"`
}

// MediaDealAdded is returned by AddMediaDeal.
type MediaDealAdded struct {
	Message string    `json:"message"`
	Deal    MediaDeal `json:"deal"`
}

// AddMediaDeal files the deal under TV or streaming and adds a week's share
// of its annual value to weekly revenue. Other deal types only add revenue.
func (p *Promotion) AddMediaDeal(in MediaDeal, now time.Time) MediaDealAdded {
	d := in
	if d.ID == "" {
		d.ID = newID()
	}
	if d.Partner == "" {
		d.Partner = "TV Network"
	}
	if d.Type == "" {
		d.Type = DealTelevision
	}
	if d.Value == 0 {
		d.Value = defaultDealValue
	}
	if d.StartDate == "" {
		d.StartDate = timestamp(now)
	}
	if d.EndDate == "" {
		if end, err := calendar.AddYears(d.StartDate, dealTermYears); err == nil {
			d.EndDate = end
		} else {
			d.EndDate = timestamp(now.AddDate(dealTermYears, 0, 0))
		}
	}
	if d.Requirements.MinimumRating == 0 && d.Requirements.ContentRestrictions == nil {
		d.Requirements.MinimumRating = defaultDealRating
	}
	d.Requirements.ContentRestrictions = orEmpty(d.Requirements.ContentRestrictions)

	switch d.Type {
	case DealTelevision:
		p.Broadcasting.TVDeals = append(p.Broadcasting.TVDeals, d)
	case DealStreaming:
		p.Broadcasting.StreamingPlatforms = append(p.Broadcasting.StreamingPlatforms, d)
	}

	p.Finances.WeeklyRevenue += int64(math.Floor(float64(d.Value) / weeksPerYear))

	return MediaDealAdded{
		Message: fmt.Sprintf("New %s deal added with %s", d.Type, d.Partner),
		Deal:    d,
	}
}
