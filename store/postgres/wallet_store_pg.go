package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/MileWise/milewise-backend/errors"
	internal_store "github.com/MileWise/milewise-backend/internal/store"
	"github.com/MileWise/milewise-backend/logger"
	"github.com/MileWise/milewise-backend/types"
	"github.com/jackc/pgx/v5"
)

// Ensure pgWalletStore implements internal_store.WalletStore.
var _ internal_store.WalletStore = (*pgWalletStore)(nil)

type pgWalletStore struct {
	pool PgxPool
}

// NewPgWalletStore creates a new PostgreSQL wallet store.
func NewPgWalletStore(pool PgxPool) internal_store.WalletStore {
	return &pgWalletStore{pool: pool}
}

const walletEntryColumns = `id, user_id, currency_type, program, balance, redemption_value, created_at, updated_at`

func scanWalletEntry(row pgx.Row) (*types.WalletEntry, error) {
	var entry types.WalletEntry
	err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.CurrencyType,
		&entry.Program,
		&entry.Balance,
		&entry.RedemptionValue,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// CreateEntry implements internal_store.WalletStore.
func (s *pgWalletStore) CreateEntry(ctx context.Context, userID string, create types.WalletEntryCreate) (*types.WalletEntry, error) {
	log := logger.GetLogger()

	row := s.pool.QueryRow(ctx, `
        INSERT INTO wallet_entries (user_id, currency_type, program, balance, redemption_value)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING `+walletEntryColumns,
		userID,
		string(create.CurrencyType),
		create.Program,
		create.Balance,
		create.RedemptionValue,
	)

	entry, err := scanWalletEntry(row)
	if err != nil {
		log.Errorw("Failed to create wallet entry", "userId", userID, "program", create.Program, "error", err)
		return nil, fmt.Errorf("failed to insert wallet entry: %w", err)
	}

	log.Infow("Created wallet entry", "entryId", entry.ID, "userId", userID, "program", entry.Program)
	return entry, nil
}

// GetEntry implements internal_store.WalletStore.
func (s *pgWalletStore) GetEntry(ctx context.Context, id string) (*types.WalletEntry, error) {
	log := logger.GetLogger()

	row := s.pool.QueryRow(ctx, `
        SELECT `+walletEntryColumns+`
        FROM wallet_entries
        WHERE id = $1`, id)

	entry, err := scanWalletEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Warnw("Wallet entry not found", "entryId", id)
			return nil, apperrors.WalletEntryNotFound(id)
		}
		log.Errorw("Failed to get wallet entry", "entryId", id, "error", err)
		return nil, fmt.Errorf("failed to execute GetEntry query: %w", err)
	}
	return entry, nil
}

// ListEntries implements internal_store.WalletStore.
// Entries come back in insertion order so the optimizer consumes balances in
// the order the user added them.
func (s *pgWalletStore) ListEntries(ctx context.Context, userID string) ([]types.WalletEntry, error) {
	log := logger.GetLogger()

	rows, err := s.pool.Query(ctx, `
        SELECT `+walletEntryColumns+`
        FROM wallet_entries
        WHERE user_id = $1
        ORDER BY created_at, id`, userID)
	if err != nil {
		log.Errorw("Failed to list wallet entries", "userId", userID, "error", err)
		return nil, fmt.Errorf("failed to execute ListEntries query: %w", err)
	}
	defer rows.Close()

	var entries []types.WalletEntry
	for rows.Next() {
		entry, err := scanWalletEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wallet entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading wallet entries: %w", err)
	}
	return entries, nil
}

// UpdateEntry implements internal_store.WalletStore.
// Only non-nil fields of the update are applied. The entry must belong to the
// given user.
func (s *pgWalletStore) UpdateEntry(ctx context.Context, id string, userID string, update types.WalletEntryUpdate) (*types.WalletEntry, error) {
	log := logger.GetLogger()

	var setFields []string
	var args []interface{}
	argPosition := 1

	if update.Program != nil && *update.Program != "" {
		setFields = append(setFields, fmt.Sprintf("program = $%d", argPosition))
		args = append(args, *update.Program)
		argPosition++
	}
	if update.Balance != nil {
		setFields = append(setFields, fmt.Sprintf("balance = $%d", argPosition))
		args = append(args, *update.Balance)
		argPosition++
	}
	if update.RedemptionValue != nil {
		setFields = append(setFields, fmt.Sprintf("redemption_value = $%d", argPosition))
		args = append(args, *update.RedemptionValue)
		argPosition++
	}

	if len(args) == 0 {
		return nil, apperrors.ValidationFailed("no fields to update", "provide at least one of program, balance, redemption_value")
	}

	setFields = append(setFields, "updated_at = CURRENT_TIMESTAMP")

	query := fmt.Sprintf(`
        UPDATE wallet_entries
        SET %s
        WHERE id = $%d AND user_id = $%d
        RETURNING %s`,
		strings.Join(setFields, ", "), argPosition, argPosition+1, walletEntryColumns)
	args = append(args, id, userID)

	entry, err := scanWalletEntry(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Warnw("Wallet entry not found during update", "entryId", id, "userId", userID)
			return nil, apperrors.WalletEntryNotFound(id)
		}
		log.Errorw("Failed to update wallet entry", "entryId", id, "error", err)
		return nil, fmt.Errorf("failed to execute UpdateEntry query: %w", err)
	}

	log.Infow("Updated wallet entry", "entryId", id, "userId", userID)
	return entry, nil
}

// DeleteEntry implements internal_store.WalletStore.
func (s *pgWalletStore) DeleteEntry(ctx context.Context, id string, userID string) error {
	log := logger.GetLogger()

	tag, err := s.pool.Exec(ctx, `
        DELETE FROM wallet_entries
        WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		log.Errorw("Failed to delete wallet entry", "entryId", id, "error", err)
		return fmt.Errorf("failed to execute DeleteEntry query: %w", err)
	}
	if tag.RowsAffected() == 0 {
		log.Warnw("Wallet entry not found during delete", "entryId", id, "userId", userID)
		return apperrors.WalletEntryNotFound(id)
	}

	log.Infow("Deleted wallet entry", "entryId", id, "userId", userID)
	return nil
}
