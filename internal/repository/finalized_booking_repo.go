package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"atvtours/internal/domain"
)

var ErrBookingNotFound = errors.New("booking not found")

// ErrDuplicateTransaction means a settlement with this transaction id was
// already recorded; the write is idempotent from the caller's view.
var ErrDuplicateTransaction = errors.New("transaction already recorded")

// FinalizedBookingRepository is the booking-history store. It receives
// immutable FinalizedBooking snapshots after settlement; durability across
// restarts is not part of the checkout contract.
type FinalizedBookingRepository struct {
	db *gorm.DB
}

func NewFinalizedBookingRepository(db *gorm.DB) *FinalizedBookingRepository {
	return &FinalizedBookingRepository{db: db}
}

// Migrate creates the finalized_bookings table.
func (r *FinalizedBookingRepository) Migrate() error {
	return r.db.AutoMigrate(&finalizedBookingModel{})
}

type finalizedBookingModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	SessionID     string    `gorm:"column:session_id"`
	TransactionID string    `gorm:"column:transaction_id;uniqueIndex"`
	Amount        int64     `gorm:"column:amount"`
	Currency      string    `gorm:"column:currency"`
	Email         string    `gorm:"column:email"`
	TourID        string    `gorm:"column:tour_id"`
	Date          string    `gorm:"column:date"`
	TimeSlot      string    `gorm:"column:time_slot"`
	PartySize     int       `gorm:"column:party_size"`
	Selection     string    `gorm:"column:selection;type:text"`
	Breakdown     string    `gorm:"column:breakdown;type:text"`
	SettledAt     time.Time `gorm:"column:settled_at"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (finalizedBookingModel) TableName() string { return "finalized_bookings" }

func toFinalizedBookingModel(fb *domain.FinalizedBooking) (finalizedBookingModel, error) {
	selRaw, err := json.Marshal(fb.Selection)
	if err != nil {
		return finalizedBookingModel{}, err
	}
	bdRaw, err := json.Marshal(fb.Breakdown)
	if err != nil {
		return finalizedBookingModel{}, err
	}

	return finalizedBookingModel{
		ID:            fb.ID,
		SessionID:     fb.SessionID,
		TransactionID: fb.TransactionID,
		Amount:        int64(fb.Amount),
		Currency:      fb.Currency,
		Email:         fb.Selection.Email,
		TourID:        fb.Selection.TourID,
		Date:          fb.Selection.Date,
		TimeSlot:      fb.Selection.TimeSlot,
		PartySize:     fb.Selection.PartySize,
		Selection:     string(selRaw),
		Breakdown:     string(bdRaw),
		SettledAt:     fb.SettledAt,
		CreatedAt:     fb.CreatedAt,
	}, nil
}

func toDomainFinalizedBooking(m finalizedBookingModel) (*domain.FinalizedBooking, error) {
	fb := &domain.FinalizedBooking{
		ID:            m.ID,
		SessionID:     m.SessionID,
		TransactionID: m.TransactionID,
		Amount:        domain.Money(m.Amount),
		Currency:      m.Currency,
		SettledAt:     m.SettledAt,
		CreatedAt:     m.CreatedAt,
	}
	if err := json.Unmarshal([]byte(m.Selection), &fb.Selection); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(m.Breakdown), &fb.Breakdown); err != nil {
		return nil, err
	}
	return fb, nil
}

func (r *FinalizedBookingRepository) Create(ctx context.Context, fb *domain.FinalizedBooking) error {
	m, err := toFinalizedBookingModel(fb)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isDuplicate(err) {
			return ErrDuplicateTransaction
		}
		return err
	}

	fb.ID = m.ID
	return nil
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// The modernc sqlite driver is not covered by gorm's error translation.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (r *FinalizedBookingRepository) GetByTransactionID(ctx context.Context, transactionID string) (*domain.FinalizedBooking, error) {
	var m finalizedBookingModel
	err := r.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return toDomainFinalizedBooking(m)
}

func (r *FinalizedBookingRepository) List(ctx context.Context, limit, offset int) ([]domain.FinalizedBooking, error) {
	var models []finalizedBookingModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.FinalizedBooking, 0, len(models))
	for _, m := range models {
		fb, err := toDomainFinalizedBooking(m)
		if err != nil {
			return nil, err
		}
		out = append(out, *fb)
	}
	return out, nil
}
