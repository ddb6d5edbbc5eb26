package routing

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"

	"debttracker/internal/config"
	"debttracker/pkg/debt"
	"debttracker/pkg/handlers"
	"debttracker/pkg/session"
	"debttracker/pkg/user"
)

const staticPath = "./static"

func InitRoutes(api *mux.Router, db *sqlx.DB, sessions session.Store, logger *slog.Logger) {

	issuer := session.NewIssuer(config.JWTSecret(), sessions)

	userService := user.NewService(user.NewMySQLRepo(db.DB))
	userHandler := handlers.NewUserHandler(userService, issuer, sessions, logger)

	debtService := debt.NewService(debt.NewMySQLRepo(db))
	debtHandler := handlers.NewDebtHandler(debtService, logger)

	/* -+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+ */

	authRouter := api.PathPrefix("").Subrouter()
	debtsRouter := api.PathPrefix("/debts").Subrouter()

	/* auth routers */
	authRouter.HandleFunc("/register", userHandler.Register).Methods("POST").Name("register")
	authRouter.HandleFunc("/login", userHandler.Login).Methods("POST").Name("login")
	authRouter.HandleFunc("/logout", userHandler.Logout).Methods("POST").Name("logout")

	/* debt routers; export and summary go before the id match */
	debtsRouter.HandleFunc("", debtHandler.CreateDebt).Methods("POST")
	debtsRouter.HandleFunc("", debtHandler.GetDebts).Methods("GET")
	debtsRouter.HandleFunc("/export", debtHandler.ExportCSV).Methods("GET")
	debtsRouter.HandleFunc("/summary", debtHandler.GetSummary).Methods("GET")
	debtsRouter.HandleFunc("/{debt_id:[0-9]+}", debtHandler.GetDebtByID).Methods("GET")
	debtsRouter.HandleFunc("/{debt_id:[0-9]+}", debtHandler.UpdateDebt).Methods("PUT")
	debtsRouter.HandleFunc("/{debt_id:[0-9]+}", debtHandler.DeleteDebt).Methods("DELETE")
	debtsRouter.HandleFunc("/{debt_id:[0-9]+}/pay", debtHandler.MarkPaid).Methods("PATCH")
}

func ServeStaticFiles(r *mux.Router) {
	fs := http.FileServer(http.Dir(staticPath))
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", fs))
}

func ServeFallback(r *mux.Router, logger *slog.Logger) {
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") || strings.HasPrefix(r.URL.Path, "/static/") {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			if _, err := w.Write([]byte("[]")); err != nil {
				logger.Error("failed to write fallback JSON", slog.String("path", r.URL.Path), slog.Any("error", err))
			}
			return
		}
		http.ServeFile(w, r, "static/html/index.html")
	})
}

func StartServer(r *mux.Router) {
	port := config.Port()
	fmt.Println("\n\033[32m", "The server is running on http://localhost:"+port, "\033[0m")
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatal("Server failed:", err)
	}
}
