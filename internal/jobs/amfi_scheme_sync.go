package jobs

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"FundFolioSaas/internal/config"
	"FundFolioSaas/internal/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
)

type Config struct {
	SchemeURL      string
	SchemeSchedule string
	TimeZone       string
	BatchSize      int
	MaxRetries     int
	RetryDelay     time.Duration
}

// NewDefaultConfig creates a Config with the defaults from the config package
func NewDefaultConfig() *Config {
	return &Config{
		SchemeURL:      config.DefaultSchemeURL,
		SchemeSchedule: config.DefaultSchemeSchedule,
		TimeZone:       config.DefaultTimeZone,
		BatchSize:      config.SchemeBatchSize,
		MaxRetries:     config.MaxSyncRetries,
		RetryDelay:     2 * time.Second,
	}
}

// RetryWithBackoff executes a function with exponential backoff retry logic
func RetryWithBackoff(maxRetries int, initialDelay time.Duration, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(math.Pow(2, float64(attempt-1))) * initialDelay
			audit(fmt.Sprintf("Retrying after %v (attempt %d/%d)", delay, attempt, maxRetries))
			time.Sleep(delay)
		}
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		audit(fmt.Sprintf("Attempt %d failed: %v", attempt+1, lastErr))
	}
	return fmt.Errorf("failed after %d attempts: %v", maxRetries+1, lastErr)
}

func audit(msg string) {
	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit(msg)
	}
}

// RunAMFISchemeSync schedules the AMFI scheme-master download. The dump
// keeps the AMC and scheme master tables current so uploads can be matched
// to known schemes.
func RunAMFISchemeSync(cfg *Config, db *pgxpool.Pool) error {
	if cfg.SchemeURL == "" {
		cfg.SchemeURL = config.DefaultSchemeURL
	}
	if cfg.SchemeSchedule == "" {
		cfg.SchemeSchedule = config.DefaultSchemeSchedule
	}
	if cfg.TimeZone == "" {
		cfg.TimeZone = config.DefaultTimeZone
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = config.SchemeBatchSize
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = config.MaxSyncRetries
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = 2 * time.Second
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return fmt.Errorf("invalid timezone for AMFI scheme sync: %v", err)
	}

	c := cron.New(cron.WithLocation(loc))
	_, err = c.AddFunc(cfg.SchemeSchedule, func() {
		audit(fmt.Sprintf("Running AMFI scheme sync at %s", time.Now().In(loc)))
		syncErr := RetryWithBackoff(cfg.MaxRetries, cfg.RetryDelay, func() error {
			return syncSchemeData(cfg.SchemeURL, db, cfg.BatchSize)
		})
		if syncErr != nil {
			audit(fmt.Sprintf("AMFI scheme sync failed: %v", syncErr))
		} else {
			audit("AMFI scheme sync completed at " + time.Now().In(loc).String())
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule AMFI scheme sync: %v", err)
	}

	c.Start()
	audit("AMFI scheme sync scheduled for " + cfg.SchemeSchedule + " (" + cfg.TimeZone + ")")
	return nil
}

func syncSchemeData(url string, db *pgxpool.Pool, batchSize int) error {
	audit("Downloading AMFI scheme data from: " + url + " ...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %v", err)
	}
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error fetching AMFI scheme data: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true // the AMFI dump carries unescaped quotes
	records, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("error parsing AMFI scheme CSV: %v", err)
	}
	if len(records) < 2 {
		return fmt.Errorf("AMFI scheme dump is empty")
	}
	audit(fmt.Sprintf("Downloaded %d scheme records, processing in batches...", len(records)-1))
	return upsertSchemeBatches(records[1:], db, batchSize)
}

func upsertSchemeBatches(records [][]string, db *pgxpool.Pool, batchSize int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Second)
	defer cancel()

	_, _ = db.Exec(ctx, "DROP TABLE IF EXISTS temp_scheme_staging")
	_, err := db.Exec(ctx, `
		CREATE TEMP TABLE temp_scheme_staging (
			amc_name    TEXT,
			scheme_code TEXT,
			scheme_name TEXT,
			scheme_type TEXT
		)`)
	if err != nil {
		return fmt.Errorf("error creating temp scheme table: %v", err)
	}

	for start := 0; start < len(records); start += batchSize {
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[start:end]
		copyRows := make([][]interface{}, 0, len(batch))
		for _, rec := range batch {
			// AMFI dump columns: AMC, Code, Scheme Name, Type, ...
			if len(rec) < 3 {
				continue
			}
			amc := strings.TrimSpace(rec[0])
			code := strings.TrimSpace(rec[1])
			name := strings.TrimSpace(rec[2])
			schemeType := ""
			if len(rec) > 3 {
				schemeType = strings.TrimSpace(rec[3])
			}
			if amc == "" || code == "" {
				continue
			}
			copyRows = append(copyRows, []interface{}{amc, code, name, schemeType})
		}
		if len(copyRows) == 0 {
			continue
		}
		if _, err := db.CopyFrom(
			ctx,
			pgx.Identifier{"temp_scheme_staging"},
			[]string{"amc_name", "scheme_code", "scheme_name", "scheme_type"},
			pgx.CopyFromRows(copyRows),
		); err != nil {
			return fmt.Errorf("error staging scheme batch: %v", err)
		}
	}

	if _, err := db.Exec(ctx, `
		INSERT INTO master_amc (amc_name)
		SELECT DISTINCT amc_name FROM temp_scheme_staging
		ON CONFLICT (amc_name) DO NOTHING
	`); err != nil {
		return fmt.Errorf("error upserting AMC master: %v", err)
	}

	if _, err := db.Exec(ctx, `
		INSERT INTO master_scheme (scheme_code, amc_name, scheme_name, scheme_type)
		SELECT DISTINCT ON (scheme_code) scheme_code, amc_name, scheme_name, scheme_type
		FROM temp_scheme_staging
		ON CONFLICT (scheme_code) DO UPDATE SET
			amc_name = EXCLUDED.amc_name,
			scheme_name = EXCLUDED.scheme_name,
			scheme_type = EXCLUDED.scheme_type
	`); err != nil {
		return fmt.Errorf("error upserting scheme master: %v", err)
	}

	_, _ = db.Exec(ctx, "DROP TABLE IF EXISTS temp_scheme_staging")
	return nil
}
