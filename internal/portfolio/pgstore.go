package portfolio

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgStore persists holdings and summaries in Postgres. The delete+insert of
// a replace runs in a single transaction so a concurrent reader never sees a
// half-replaced scheme.
type PgStore struct {
	pool *pgxpool.Pool
}

func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

func (s *PgStore) GetOrCreateUpload(ctx context.Context, amcName, schemeID string) (*UploadRecord, error) {
	rec := &UploadRecord{AMCName: amcName, SchemeID: schemeID}
	err := s.pool.QueryRow(ctx, `
		SELECT upload_id, uploaded_at FROM portfolio_upload
		WHERE amc_name = $1 AND scheme_id = $2
	`, amcName, schemeID).Scan(&rec.ID, &rec.UploadedAt)
	if err == nil {
		// re-upload for an existing key: bump the timestamp
		_, err = s.pool.Exec(ctx, `
			UPDATE portfolio_upload SET uploaded_at = now() WHERE upload_id = $1
		`, rec.ID)
		return rec, err
	}
	if err != pgx.ErrNoRows {
		return nil, err
	}

	rec.ID = uuid.New().String()
	rec.UploadedAt = time.Now()
	_, err = s.pool.Exec(ctx, `
		INSERT INTO portfolio_upload (upload_id, amc_name, scheme_id, uploaded_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (amc_name, scheme_id) DO UPDATE SET uploaded_at = EXCLUDED.uploaded_at
	`, rec.ID, amcName, schemeID, rec.UploadedAt)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *PgStore) ReplaceHoldings(ctx context.Context, schemeID string, holdings []Holding) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM mutual_fund_holding WHERE scheme_id = $1`, schemeID); err != nil {
		return err
	}

	if len(holdings) > 0 {
		copyRows := make([][]interface{}, len(holdings))
		for i, h := range holdings {
			copyRows[i] = []interface{}{
				h.SchemeID, h.AMCName, h.InstrumentName, h.ISIN, h.IndustryRating,
				h.Quantity, h.MarketValue, h.PercentageToNAV, h.YieldPercentage,
				h.YieldToCall, h.InstrumentType,
			}
		}
		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"mutual_fund_holding"},
			[]string{
				"scheme_id", "amc_name", "instrument_name", "isin", "industry_rating",
				"quantity", "market_value", "percentage_to_nav", "yield_percentage",
				"ytc", "instrument_type",
			},
			pgx.CopyFromRows(copyRows),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (s *PgStore) SaveSummary(ctx context.Context, summary *Summary) error {
	categoryJSON, err := json.Marshal(summary.CategoryTotals)
	if err != nil {
		return err
	}
	sectorsJSON, err := json.Marshal(summary.TopSectors)
	if err != nil {
		return err
	}
	holdingsJSON, err := json.Marshal(summary.TopHoldings)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO portfolio_summary (
			scheme_id, amc_name, category_totals, equity_total, debt_total,
			others_total, total_market_value, equity_percentage, debt_percentage,
			top_sectors, top_holdings, holding_count, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12, now())
		ON CONFLICT (scheme_id) DO UPDATE SET
			amc_name = EXCLUDED.amc_name,
			category_totals = EXCLUDED.category_totals,
			equity_total = EXCLUDED.equity_total,
			debt_total = EXCLUDED.debt_total,
			others_total = EXCLUDED.others_total,
			total_market_value = EXCLUDED.total_market_value,
			equity_percentage = EXCLUDED.equity_percentage,
			debt_percentage = EXCLUDED.debt_percentage,
			top_sectors = EXCLUDED.top_sectors,
			top_holdings = EXCLUDED.top_holdings,
			holding_count = EXCLUDED.holding_count,
			updated_at = now()
	`, summary.SchemeID, summary.AMCName, categoryJSON, summary.EquityTotal,
		summary.DebtTotal, summary.OthersTotal, summary.TotalMarketValue,
		summary.EquityPercentage, summary.DebtPercentage, sectorsJSON,
		holdingsJSON, summary.HoldingCount)
	return err
}

func (s *PgStore) GetHoldings(ctx context.Context, schemeID string) ([]Holding, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT scheme_id, amc_name, instrument_name, isin, industry_rating,
		       quantity, market_value, percentage_to_nav, yield_percentage,
		       ytc, instrument_type
		FROM mutual_fund_holding
		WHERE scheme_id = $1
		ORDER BY market_value DESC
	`, schemeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]Holding, 0)
	for rows.Next() {
		var h Holding
		if err := rows.Scan(
			&h.SchemeID, &h.AMCName, &h.InstrumentName, &h.ISIN, &h.IndustryRating,
			&h.Quantity, &h.MarketValue, &h.PercentageToNAV, &h.YieldPercentage,
			&h.YieldToCall, &h.InstrumentType,
		); err != nil {
			return nil, err
		}
		results = append(results, h)
	}
	return results, rows.Err()
}

func (s *PgStore) GetSummary(ctx context.Context, schemeID string) (*Summary, error) {
	var (
		sum          Summary
		categoryJSON []byte
		sectorsJSON  []byte
		holdingsJSON []byte
	)
	err := s.pool.QueryRow(ctx, `
		SELECT scheme_id, amc_name, category_totals, equity_total, debt_total,
		       others_total, total_market_value, equity_percentage, debt_percentage,
		       top_sectors, top_holdings, holding_count
		FROM portfolio_summary
		WHERE scheme_id = $1
	`, schemeID).Scan(
		&sum.SchemeID, &sum.AMCName, &categoryJSON, &sum.EquityTotal, &sum.DebtTotal,
		&sum.OthersTotal, &sum.TotalMarketValue, &sum.EquityPercentage,
		&sum.DebtPercentage, &sectorsJSON, &holdingsJSON, &sum.HoldingCount,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(categoryJSON, &sum.CategoryTotals); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(sectorsJSON, &sum.TopSectors); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(holdingsJSON, &sum.TopHoldings); err != nil {
		return nil, err
	}
	return &sum, nil
}
