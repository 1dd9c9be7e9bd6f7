package portfolio

import (
	"errors"
	"net/http"
	"strings"

	"FundFolioSaas/api"
	"FundFolioSaas/api/auth"
	core "FundFolioSaas/internal/portfolio"
)

// UploadResult is the response body for one processed disclosure file.
type UploadResult struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

func summaryData(s *core.Summary) map[string]interface{} {
	if s == nil {
		return map[string]interface{}{}
	}
	return map[string]interface{}{
		"equity_total":       s.EquityTotal,
		"debt_total":         s.DebtTotal,
		"others_total":       s.OthersTotal,
		"total_market_value": s.TotalMarketValue,
		"equity_percentage":  s.EquityPercentage,
		"debt_percentage":    s.DebtPercentage,
		"top_sectors":        s.TopSectors,
		"top_holdings":       s.TopHoldings,
	}
}

// getUserFriendlyPortfolioError converts processing/database errors to
// user-facing messages. Known parse failures come back as status "error"
// with HTTP 200 so the frontend can show them inline.
func getUserFriendlyPortfolioError(err error) (string, int) {
	if err == nil {
		return "", http.StatusOK
	}
	var missing *core.MissingColumnError
	switch {
	case errors.As(err, &missing):
		return missing.Error() + ". Check that the right AMC was selected for this file.", http.StatusOK
	case errors.Is(err, core.ErrNoTerminalRow):
		return "No 'Grand Total' row found. The file does not match the expected layout.", http.StatusOK
	case errors.Is(err, core.ErrEmptyTable):
		return "The file has no data rows.", http.StatusOK
	}
	errStr := err.Error()
	if strings.Contains(errStr, "unsupported file type") {
		return "Unsupported file type. Upload .xlsx or .csv.", http.StatusOK
	}
	if strings.Contains(errStr, "connection") || strings.Contains(errStr, "timeout") {
		return "Database connection error. Please try again.", http.StatusServiceUnavailable
	}
	return errStr, http.StatusInternalServerError
}

// Handler: UploadPortfolioFile
// Accepts multipart form (user_id, amc, scheme, file) and runs the
// extraction pipeline. Holdings for the scheme are fully replaced; nothing
// is committed if the parse fails.
func UploadPortfolioFile(processor *core.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := r.ParseMultipartForm(32 << 20); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, "Failed to parse multipart form")
			return
		}

		userID := r.FormValue("user_id")
		if userID == "" {
			api.RespondWithError(w, http.StatusBadRequest, "user_id required in form")
			return
		}
		userName := ""
		for _, s := range auth.GetActiveSessions() {
			if s.UserID == userID {
				userName = s.Name
				break
			}
		}
		if userName == "" {
			api.RespondWithError(w, http.StatusUnauthorized, "User not found in active sessions")
			return
		}

		amcName := strings.TrimSpace(r.FormValue("amc"))
		schemeID := strings.TrimSpace(r.FormValue("scheme"))
		if amcName == "" || schemeID == "" {
			api.RespondWithError(w, http.StatusBadRequest, "amc and scheme required in form")
			return
		}

		files := r.MultipartForm.File["file"]
		if len(files) == 0 {
			api.RespondWithError(w, http.StatusBadRequest, "No files uploaded")
			return
		}

		results := make([]UploadResult, 0, len(files))
		for _, fh := range files {
			f, err := fh.Open()
			if err != nil {
				api.RespondWithError(w, http.StatusBadRequest, "Failed to open file: "+fh.Filename)
				return
			}
			summary, err := processor.Process(ctx, amcName, schemeID, f, fh.Filename)
			f.Close()

			switch {
			case err == nil:
				results = append(results, UploadResult{
					Status:  "success",
					Message: "Data processed and updated successfully!",
					Data:    summaryData(summary),
				})
			case errors.Is(err, core.ErrUnrecognizedAMC):
				// not a failure: AMCs without a profile upload as a no-op
				results = append(results, UploadResult{
					Status:  "success",
					Message: "No processing defined for " + amcName + "; nothing imported.",
					Data:    map[string]interface{}{},
				})
			default:
				msg, status := getUserFriendlyPortfolioError(err)
				if status != http.StatusOK {
					api.RespondWithError(w, status, msg)
					return
				}
				results = append(results, UploadResult{
					Status:  "error",
					Message: msg,
					Data:    map[string]interface{}{},
				})
			}
		}

		if len(results) == 1 {
			api.RespondWithPayload(w, results[0])
			return
		}
		api.RespondWithPayload(w, results)
	}
}

// Handler: GetPortfolioHoldings
// Returns the stored holdings for a scheme, largest first.
func GetPortfolioHoldings(store core.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		schemeID := strings.TrimSpace(r.URL.Query().Get("scheme"))
		if schemeID == "" {
			api.RespondWithError(w, http.StatusBadRequest, "scheme query param required")
			return
		}
		holdings, err := store.GetHoldings(r.Context(), schemeID)
		if err != nil {
			msg, status := getUserFriendlyPortfolioError(err)
			api.RespondWithError(w, status, msg)
			return
		}
		api.RespondWithPayload(w, holdings)
	}
}

// Handler: GetPortfolioSummary
func GetPortfolioSummary(store core.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		schemeID := strings.TrimSpace(r.URL.Query().Get("scheme"))
		if schemeID == "" {
			api.RespondWithError(w, http.StatusBadRequest, "scheme query param required")
			return
		}
		summary, err := store.GetSummary(r.Context(), schemeID)
		if err != nil {
			msg, status := getUserFriendlyPortfolioError(err)
			api.RespondWithError(w, status, msg)
			return
		}
		if summary == nil {
			api.RespondWithError(w, http.StatusNotFound, "No summary stored for scheme "+schemeID)
			return
		}
		api.RespondWithPayload(w, summary)
	}
}

// Handler: GetRegisteredAMCs
// Lists the AMC names with a registered layout profile (drives the upload
// form's dropdown).
func GetRegisteredAMCs(processor *core.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		api.RespondWithPayload(w, processor.Registry().Names())
	}
}
