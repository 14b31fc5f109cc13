package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Matchweek status constants
const (
	MatchweekUpcoming  = "upcoming"
	MatchweekOpen      = "open"
	MatchweekClosed    = "closed"
	MatchweekCompleted = "completed"
)

// Payment status constants
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

// Fixture result constants
const (
	ResultHome = "home"
	ResultAway = "away"
	ResultDraw = "draw"
)

// Request types

type CreateCompetitionRequest struct {
	Name          string          `json:"name"`
	StartingLives int             `json:"starting_lives"`
	EntryFee      decimal.Decimal `json:"entry_fee"`
}

type UpdatePaymentRequest struct {
	Status    string          `json:"status"`
	PaymentID string          `json:"payment_id"`
	Amount    decimal.Decimal `json:"amount"`
}

type CreateMatchweekRequest struct {
	WeekNumber int       `json:"week_number"`
	Name       string    `json:"name"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Deadline   time.Time `json:"deadline"`
}

type AddFixtureRequest struct {
	HomeTeam    string    `json:"home_team"`
	AwayTeam    string    `json:"away_team"`
	KickoffTime time.Time `json:"kickoff_time"`
}

type AdvanceMatchweekRequest struct {
	Status string `json:"status"`
}

type SubmitPickRequest struct {
	MatchweekID  string `json:"matchweek_id"`
	FixtureID    string `json:"fixture_id"`
	SelectedTeam string `json:"selected_team"`
}

// fixture_id -> outcome
type ResolveMatchweekRequest struct {
	Outcomes map[string]Outcome `json:"outcomes"`
}

// Response types

type TeamUsageResponse struct {
	EntryID string   `json:"entry_id"`
	Teams   []string `json:"teams"`
}

// Domain types

type Competition struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Slug          string          `json:"slug"`
	StartingLives int             `json:"starting_lives"`
	EntryFee      decimal.Decimal `json:"entry_fee"`
	CreatedAt     time.Time       `json:"created_at"`
}

type Entry struct {
	ID             string    `json:"id"`
	CompetitionID  string    `json:"competition_id"`
	UserID         string    `json:"user_id"`
	LivesRemaining int       `json:"lives_remaining"`
	IsActive       bool      `json:"is_active"`
	PaymentStatus  string    `json:"payment_status"`
	PaymentID      *string   `json:"payment_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type Matchweek struct {
	ID            string    `json:"id"`
	CompetitionID string    `json:"competition_id"`
	WeekNumber    int       `json:"week_number"`
	Name          string    `json:"name"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	Deadline      time.Time `json:"deadline"`
	Status        string    `json:"status"`
}

type Fixture struct {
	ID          string    `json:"id"`
	MatchweekID string    `json:"matchweek_id"`
	HomeTeam    string    `json:"home_team"`
	AwayTeam    string    `json:"away_team"`
	KickoffTime time.Time `json:"kickoff_time"`
	Result      *string   `json:"result"`
	WinningTeam *string   `json:"winning_team"`
}

// IsWinningPick is nil until the matchweek is resolved.
type Pick struct {
	ID            string    `json:"id"`
	EntryID       string    `json:"entry_id"`
	MatchweekID   string    `json:"matchweek_id"`
	FixtureID     string    `json:"fixture_id"`
	SelectedTeam  string    `json:"selected_team"`
	IsWinningPick *bool     `json:"is_winning_pick"`
	CreatedAt     time.Time `json:"created_at"`
}

// Outcome is one fixture result as delivered by the result feed.
// WinningTeam is optional; it is derived from Result when empty.
type Outcome struct {
	Result      string `json:"result" yaml:"result"`
	WinningTeam string `json:"winning_team,omitempty" yaml:"winning_team,omitempty"`
}

// Resolution summarizes one resolved matchweek.
type Resolution struct {
	MatchweekID string   `json:"matchweek_id"`
	Survivors   int      `json:"survivors"`
	LivesLost   int      `json:"lives_lost"`
	Forfeits    int      `json:"forfeits"`
	Eliminated  []string `json:"eliminated"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
