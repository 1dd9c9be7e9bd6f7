package portfolio

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	core "FundFolioSaas/internal/portfolio"
)

// StartPortfolioService runs the portfolio vertical on its own port behind
// the gateway: disclosure upload plus holdings/summary browsing.
func StartPortfolioService() {
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASSWORD")
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	name := os.Getenv("DB_NAME")
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, pass, host, port, name)

	pgxPool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatalf("portfolio service: failed to connect to pgxpool DB: %v", err)
	}

	store := core.NewPgStore(pgxPool)
	processor := core.NewProcessor(store, core.DefaultRegistry())

	router := mux.NewRouter()
	router.HandleFunc("/portfolio/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Portfolio Service is active"))
	}).Methods("GET")
	router.HandleFunc("/portfolio/upload", UploadPortfolioFile(processor)).Methods("POST")
	router.HandleFunc("/portfolio/holdings", GetPortfolioHoldings(store)).Methods("GET")
	router.HandleFunc("/portfolio/summary", GetPortfolioSummary(store)).Methods("GET")
	router.HandleFunc("/portfolio/amcs", GetRegisteredAMCs(processor)).Methods("GET")

	log.Println("Portfolio Service started on :7143")
	if err := http.ListenAndServe(":7143", router); err != nil {
		log.Fatalf("Portfolio Service failed: %v", err)
	}
}
