package api

import (
	"net/http"

	"github.com/decred/slog"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/shardwallet/shardwallet/internal/chain"
	"github.com/shardwallet/shardwallet/internal/orchestrator/authn"
	"github.com/shardwallet/shardwallet/internal/orchestrator/ceremony"
	orchdb "github.com/shardwallet/shardwallet/internal/orchestrator/db"
	"github.com/shardwallet/shardwallet/internal/orchestrator/reconcile"
)

// Server wires the orchestrator's HTTP boundary (spec.md sections 4.1
// and 6.4) to its DB, participant fan-out, and chain encoding
// dependencies.
type Server struct {
	db           *gorm.DB
	users        *orchdb.UserRepository
	wallets      *orchdb.WalletRepository
	txs          *orchdb.TransactionRepository
	participants *ceremony.Participants
	threshold    int
	builders     map[orchdb.Chain]chain.Builder
	providers    map[orchdb.Chain]chain.Provider
	reconcile    *reconcile.Queue
	issuer       *authn.TokenIssuer
	log          slog.Logger
}

// NewServer constructs the orchestrator's HTTP handler.
func NewServer(
	gdb *gorm.DB,
	participants *ceremony.Participants,
	threshold int,
	builders map[orchdb.Chain]chain.Builder,
	providers map[orchdb.Chain]chain.Provider,
	reconcileQueue *reconcile.Queue,
	issuer *authn.TokenIssuer,
	log slog.Logger,
) *Server {
	return &Server{
		db:           gdb,
		users:        orchdb.NewUserRepository(gdb),
		wallets:      orchdb.NewWalletRepository(gdb),
		txs:          orchdb.NewTransactionRepository(gdb),
		participants: participants,
		threshold:    threshold,
		builders:     builders,
		providers:    providers,
		reconcile:    reconcileQueue,
		issuer:       issuer,
		log:          log,
	}
}

// Router builds the full mux.Router, with the wallet/tx/user routes
// behind the bearer-auth middleware (spec.md section 7's "Authorization
// missing/invalid" -> 401 row) and signup/login open.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/auth/signup", s.Signup).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", s.Login).Methods(http.MethodPost)

	authed := r.NewRoute().Subrouter()
	authed.Use(authn.Middleware(s.issuer))
	authed.HandleFunc("/api/users/{id}", s.GetUser).Methods(http.MethodGet)
	authed.HandleFunc("/wallets", s.CreateWallet).Methods(http.MethodPost)
	authed.HandleFunc("/wallets/{id}", s.DeleteWallet).Methods(http.MethodDelete)
	authed.HandleFunc("/wallets/{id}/tx", s.SignTx).Methods(http.MethodPost)

	r.HandleFunc("/internal/reconcile", s.ReconcileStatus).Methods(http.MethodGet)

	return r
}
