// Package api exposes the ledger services over a JSON HTTP interface.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/parthgupta9/splitr/internal/auth"
	"github.com/parthgupta9/splitr/internal/middleware"
	"github.com/parthgupta9/splitr/internal/seed"
	"github.com/parthgupta9/splitr/internal/service"
)

// API bundles the services behind the HTTP handlers.
type API struct {
	auth     *service.AuthService
	groups   *service.GroupService
	ledger   *service.LedgerService
	contacts *service.ContactService
	seeder   *seed.Seeder
	jwt      *auth.JWTManager
}

// New creates the API with its dependencies.
func New(
	authSvc *service.AuthService,
	groups *service.GroupService,
	ledger *service.LedgerService,
	contacts *service.ContactService,
	seeder *seed.Seeder,
	jwt *auth.JWTManager,
) *API {
	return &API{
		auth:     authSvc,
		groups:   groups,
		ledger:   ledger,
		contacts: contacts,
		seeder:   seeder,
		jwt:      jwt,
	}
}

// Router builds the route table. Write operations and reads of personal
// ledger data all sit behind the auth middleware.
func (a *API) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Metrics, middleware.Logging)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	public := r.PathPrefix("/api").Subrouter()
	public.HandleFunc("/register", a.handleRegister).Methods("POST")
	public.HandleFunc("/login", a.handleLogin).Methods("POST")

	private := r.PathPrefix("/api").Subrouter()
	private.Use(middleware.RequireAuth(a.jwt))
	private.HandleFunc("/me", a.handleCurrentUser).Methods("GET")
	private.HandleFunc("/groups", a.handleCreateGroup).Methods("POST")
	private.HandleFunc("/groups", a.handleListGroups).Methods("GET")
	private.HandleFunc("/groups/{groupId}", a.handleGetGroup).Methods("GET")
	private.HandleFunc("/groups/{groupId}/expenses", a.handleGroupLedger).Methods("GET")
	private.HandleFunc("/expenses", a.handleRecordExpense).Methods("POST")
	private.HandleFunc("/expenses/user/{userId}", a.handlePairLedger).Methods("GET")
	private.HandleFunc("/settlements", a.handleRecordSettlement).Methods("POST")
	private.HandleFunc("/contacts", a.handleGetContacts).Methods("GET")
	private.HandleFunc("/seed", a.handleSeed).Methods("POST")

	return r
}
