package main

import (
	"net/http"

	"github.com/PrimeConsultoria/api-parceiros/internal/atividade"
	"github.com/PrimeConsultoria/api-parceiros/internal/auth"
	"github.com/PrimeConsultoria/api-parceiros/internal/avaliacao"
	"github.com/PrimeConsultoria/api-parceiros/internal/cliente"
	"github.com/PrimeConsultoria/api-parceiros/internal/config"
	"github.com/PrimeConsultoria/api-parceiros/internal/contrato"
	"github.com/PrimeConsultoria/api-parceiros/internal/database"
	"github.com/PrimeConsultoria/api-parceiros/internal/logger"
	"github.com/PrimeConsultoria/api-parceiros/internal/pagamento"
	"github.com/PrimeConsultoria/api-parceiros/internal/parceiro"
	"github.com/PrimeConsultoria/api-parceiros/internal/termo"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	lg := logger.New()
	defer lg.Sync()

	cfg, err := config.Load()
	if err != nil {
		lg.Fatalw("configuração inválida", "error", err)
	}

	db, err := database.Conectar(cfg.DatabaseURL)
	if err != nil {
		lg.Fatalw("erro ao conectar no banco", "error", err)
	}

	if err := db.AutoMigrate(
		&parceiro.Parceiro{},
		&cliente.Cliente{},
		&contrato.Contrato{},
		&termo.TermoAutorizacao{},
		&pagamento.Pagamento{},
		&atividade.Atividade{},
		&avaliacao.Avaliacao{},
	); err != nil {
		lg.Fatalw("erro no AutoMigrate", "error", err)
	}

	// Gateway e autenticação
	gateway := pagamento.NewAsaasGateway(cfg.AsaasAPIKey, lg)
	autenticador := auth.NewAutenticador(cfg.JWTSecret)

	// Handlers
	authHandler := auth.NewHandler(autenticador, cfg.AdminPassword)
	parceiroHandler := parceiro.NewHandler(db, lg)
	clienteHandler := cliente.NewHandler(db, lg)
	contratoService := contrato.NewService(db, gateway, lg, cfg.PublicBaseURL, cfg.PaymentDueDays)
	contratoHandler := contrato.NewHandler(db, contratoService)
	termoHandler := termo.NewHandler(db, lg)
	pagamentoHandler := pagamento.NewHandler(db, gateway)
	atividadeHandler := atividade.NewHandler(db)
	avaliacaoHandler := avaliacao.NewHandler(db)

	// Router
	r := mux.NewRouter()

	// Rotas públicas de assinatura (sem auth, protegidas pelo token do link)
	pub := r.PathPrefix("/api/public").Subrouter()
	pub.HandleFunc("/contract/{token}", contratoHandler.BuscarPorToken).Methods("GET")
	pub.HandleFunc("/contract/{token}/sign-authorization", contratoHandler.AssinarAutorizacao).Methods("POST")
	pub.HandleFunc("/contract/{token}/sign", contratoHandler.Assinar).Methods("POST")
	pub.HandleFunc("/term/{token}", termoHandler.BuscarPorToken).Methods("GET")
	pub.HandleFunc("/term/{token}/sign", termoHandler.Assinar).Methods("POST")
	pub.HandleFunc("/partner-dashboard/{token}", parceiroHandler.DashboardPorToken).Methods("GET")

	// Login administrativo
	r.HandleFunc("/api/login", authHandler.Login).Methods("POST")

	// Rotas administrativas (JWT)
	adm := r.PathPrefix("/api").Subrouter()
	adm.Use(autenticador.MiddlewareAutenticacao, auth.RequireAdmin)

	// Parceiros
	adm.HandleFunc("/partners", parceiroHandler.Criar).Methods("POST")
	adm.HandleFunc("/partners", parceiroHandler.ListarTodos).Methods("GET")
	adm.HandleFunc("/partners/{id}", parceiroHandler.BuscarPorID).Methods("GET")
	adm.HandleFunc("/partners/{id}", parceiroHandler.Atualizar).Methods("PUT")
	adm.HandleFunc("/partners/{id}", parceiroHandler.Deletar).Methods("DELETE")
	adm.HandleFunc("/partners/{id}/admin-fee", parceiroHandler.AtualizarTaxa).Methods("PATCH")
	adm.HandleFunc("/partners/{id}/access", parceiroHandler.AtualizarAcesso).Methods("PATCH")
	adm.HandleFunc("/partners/{id}/generate-dashboard-token", parceiroHandler.GerarTokenDashboard).Methods("POST")
	adm.HandleFunc("/partners/{id}/ratings", avaliacaoHandler.Criar).Methods("POST")
	adm.HandleFunc("/partners/{id}/ratings", avaliacaoHandler.ListarPorParceiro).Methods("GET")
	adm.HandleFunc("/ratings/{id}", avaliacaoHandler.Deletar).Methods("DELETE")

	// Clientes
	adm.HandleFunc("/customers", clienteHandler.Criar).Methods("POST")
	adm.HandleFunc("/customers", clienteHandler.ListarTodos).Methods("GET")
	adm.HandleFunc("/customers/{id}", clienteHandler.BuscarPorID).Methods("GET")
	adm.HandleFunc("/customers/{id}", clienteHandler.Atualizar).Methods("PUT")
	adm.HandleFunc("/customers/{id}", clienteHandler.Deletar).Methods("DELETE")

	// Contratos
	adm.HandleFunc("/contracts", contratoHandler.Criar).Methods("POST")
	adm.HandleFunc("/contracts", contratoHandler.ListarTodos).Methods("GET")
	adm.HandleFunc("/contracts/{id}", contratoHandler.BuscarPorID).Methods("GET")
	adm.HandleFunc("/contracts/{id}", contratoHandler.Atualizar).Methods("PUT")
	adm.HandleFunc("/contracts/{id}", contratoHandler.Deletar).Methods("DELETE")
	adm.HandleFunc("/contracts/{id}/generate-payment", contratoHandler.GerarPagamento).Methods("POST")

	// Termos de autorização avulsos
	adm.HandleFunc("/authorization-terms", termoHandler.Criar).Methods("POST")
	adm.HandleFunc("/authorization-terms", termoHandler.ListarTodos).Methods("GET")
	adm.HandleFunc("/authorization-terms/{id}", termoHandler.BuscarPorID).Methods("GET")
	adm.HandleFunc("/authorization-terms/{id}", termoHandler.Atualizar).Methods("PUT")
	adm.HandleFunc("/authorization-terms/{id}", termoHandler.Deletar).Methods("DELETE")

	// Pagamentos e diagnóstico do gateway
	adm.HandleFunc("/payments", pagamentoHandler.ListarTodos).Methods("GET")
	adm.HandleFunc("/payments/{id}", pagamentoHandler.BuscarPorID).Methods("GET")
	adm.HandleFunc("/gateway/status", pagamentoHandler.StatusGateway).Methods("GET")

	// Atividades
	adm.HandleFunc("/activities", atividadeHandler.ListarTodas).Methods("GET")

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(r)

	lg.Infow("servidor iniciado", "port", cfg.HTTPPort, "gatewayConfigurado", gateway.Configurado(), "sandbox", gateway.Sandbox())
	if err := http.ListenAndServe(":"+cfg.HTTPPort, handler); err != nil {
		lg.Fatalw("servidor encerrado", "error", err)
	}
}
