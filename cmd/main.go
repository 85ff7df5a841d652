package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/KromaEnergia/motor-comissao/internal/auth"
	"github.com/KromaEnergia/motor-comissao/internal/calculocomissao"
	"github.com/KromaEnergia/motor-comissao/internal/config"
	"github.com/KromaEnergia/motor-comissao/internal/consultor"
	"github.com/KromaEnergia/motor-comissao/internal/database"
	"github.com/KromaEnergia/motor-comissao/internal/logger"
	"github.com/KromaEnergia/motor-comissao/internal/negociacao"
	"github.com/KromaEnergia/motor-comissao/internal/notificacao"
	"github.com/KromaEnergia/motor-comissao/internal/painel"
	"github.com/KromaEnergia/motor-comissao/internal/parcelacomissao"
	"github.com/KromaEnergia/motor-comissao/internal/recorrencia"
	"github.com/KromaEnergia/motor-comissao/internal/regracomissao"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuração inválida:", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	logger.SetGlobalLogger(log)

	tabela := regracomissao.TabelaPadrao()
	if err := tabela.Validar(); err != nil {
		log.Fatal().Err(err).Msg("tabela de regras inválida")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := database.Connect(ctx, cfg, log)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("erro ao conectar no banco")
	}

	if err := migrar(db); err != nil {
		log.Fatal().Err(err).Msg("erro no AutoMigrate")
	}

	validador, err := auth.NovoValidador(cfg.JWTSecret)
	if err != nil {
		log.Fatal().Err(err).Msg("JWT_SECRET inválido")
	}

	r := rotas(db, cfg, tabela, validador, log)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           c.Handler(r),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Info().Int("port", cfg.Port).Msg("servidor iniciado")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("servidor parou")
	}
}

func migrar(db *gorm.DB) error {
	for _, m := range []func(*gorm.DB) error{
		consultor.Migrate,
		negociacao.Migrate,
		parcelacomissao.Migrate,
		recorrencia.Migrate,
	} {
		if err := m(db); err != nil {
			return err
		}
	}
	return nil
}

func rotas(db *gorm.DB, cfg *config.Config, tabela *regracomissao.Tabela, validador *auth.Validador, log zerolog.Logger) *mux.Router {
	servico := calculocomissao.NovoServico(tabela, cfg.Custos, cfg.Recorrencia, log)
	calculoHandler := calculocomissao.NewHandler(servico, calculocomissao.NovasFontesDB(db), notificacao.NovoWebhook(cfg.AlertaWebhookURL, log), log)
	painelHandler := painel.NewHandler(calculoHandler, log)
	dono := negociacao.DonoDaVenda(db, negociacao.NewRepository())
	ajusteHandler := parcelacomissao.NewHandler(parcelacomissao.NewRepository(db), dono, log)
	recorrenciaHandler := recorrencia.NewHandler(recorrencia.NewRepository(db), dono, log)
	consultorHandler := consultor.NewHandler(db, log)
	negociacaoHandler := negociacao.NewHandler(db, log)

	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/").Subrouter()
	api.Use(validador.Middleware)

	// consultores
	api.HandleFunc("/consultores", consultorHandler.ListarConsultores).Methods(http.MethodGet)
	api.HandleFunc("/consultores/{id}", consultorHandler.BuscarPorID).Methods(http.MethodGet)
	api.HandleFunc("/consultores/{id}/negociacoes", negociacaoHandler.ListarPorConsultor).Methods(http.MethodGet)

	// negociações
	api.HandleFunc("/negociacoes", negociacaoHandler.Criar).Methods(http.MethodPost)
	api.HandleFunc("/negociacoes/{id}", negociacaoHandler.BuscarPorID).Methods(http.MethodGet)
	api.HandleFunc("/negociacoes/{id}/status", negociacaoHandler.AtualizarStatus).Methods(http.MethodPatch)

	// comissões
	api.HandleFunc("/vendas/{id}/comissao", calculoHandler.PorVenda).Methods(http.MethodGet)
	api.HandleFunc("/vendas/{id}/ajustes", ajusteHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/vendas/{id}/recorrencia", recorrenciaHandler.Listar).Methods(http.MethodGet)
	api.HandleFunc("/comissoes", calculoHandler.Listar).Methods(http.MethodGet)
	api.HandleFunc("/comissoes.csv", calculoHandler.ExportarCSV).Methods(http.MethodGet)
	api.HandleFunc("/painel", painelHandler.Resumo).Methods(http.MethodGet)

	// admin
	admin := api.NewRoute().Subrouter()
	admin.Use(auth.RequireAdmin)
	admin.HandleFunc("/consultores/{id}/comissao", consultorHandler.AtualizarComissao).Methods(http.MethodPatch)
	admin.HandleFunc("/vendas/{id}/parcelas/{ordinal}/vencimento", ajusteHandler.Definir).Methods(http.MethodPut)
	admin.HandleFunc("/vendas/{id}/parcelas/{ordinal}/vencimento", ajusteHandler.Remover).Methods(http.MethodDelete)
	admin.HandleFunc("/vendas/{id}/recorrencia/{mes}/alternar", recorrenciaHandler.Alternar).Methods(http.MethodPost)

	return r
}
