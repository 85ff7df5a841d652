// internal/negociacao/handler.go
package negociacao

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/KromaEnergia/motor-comissao/internal/auth"
	"github.com/KromaEnergia/motor-comissao/internal/utils"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	log        zerolog.Logger
	agora      func() time.Time
}

// NewHandler cria um novo handler de negociações
func NewHandler(db *gorm.DB, log zerolog.Logger) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		log:        log.With().Str("handler", "negociacao").Logger(),
		agora:      time.Now,
	}
}

// ================== DTOs ==================

type negociacaoCreateDTO struct {
	Nome             string  `json:"nome" validate:"required"`
	Contato          string  `json:"contato"`
	Telefone         string  `json:"telefone"`
	CNPJ             string  `json:"cnpj"`
	UF               string  `json:"uf" validate:"omitempty,len=2"`
	Comercializadora string  `json:"comercializadora" validate:"required"`
	ValorProposta    float64 `json:"valorProposta" validate:"gte=0"`
	ConsumoKWh       float64 `json:"consumoKWh" validate:"gte=0"`
	Desconto         float64 `json:"desconto" validate:"gte=0,lte=100"`
	ReferenciaAno    *int    `json:"referenciaAno" validate:"omitempty,gte=2000"`
	ReferenciaMes    *int    `json:"referenciaMes" validate:"omitempty,gte=1,lte=12"`
}

type atualizarStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

var statusPermitidos = map[string]bool{
	StatusPendente:  true,
	StatusAtiva:     true,
	StatusConcluida: true,
	StatusCancelada: true,
}

/* ================== POST /negociacoes ================== */
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	consultorID, _, ok := auth.Usuario(r.Context())
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	var dto negociacaoCreateDTO
	if err := utils.DecodeAndValidate(r, &dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	n := Negociacao{
		Nome:             dto.Nome,
		Contato:          dto.Contato,
		Telefone:         dto.Telefone,
		CNPJ:             dto.CNPJ,
		UF:               strings.ToUpper(dto.UF),
		Status:           StatusPendente,
		ConsultorID:      consultorID,
		Comercializadora: dto.Comercializadora,
		ValorProposta:    dto.ValorProposta,
		ConsumoKWh:       dto.ConsumoKWh,
		Desconto:         dto.Desconto,
		ReferenciaAno:    dto.ReferenciaAno,
		ReferenciaMes:    dto.ReferenciaMes,
	}

	if err := h.Repository.Salvar(h.DB.WithContext(r.Context()), &n); err != nil {
		h.log.Error().Err(err).Msg("salvar negociação")
		http.Error(w, "Erro ao salvar negociação", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(n)
}

// ListarPorConsultor trata GET /consultores/{id}/negociacoes
func (h *Handler) ListarPorConsultor(w http.ResponseWriter, r *http.Request) {
	cid, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	userID, isAdmin, _ := auth.Usuario(r.Context())
	if !isAdmin && uint(cid) != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	list, err := h.Repository.ListarPorConsultor(h.DB.WithContext(r.Context()), uint(cid))
	if err != nil {
		h.log.Error().Err(err).Int("consultor", cid).Msg("listar negociações")
		http.Error(w, "Erro ao listar negociações", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// BuscarPorID trata GET /negociacoes/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	n, err := h.Repository.BuscarPorID(h.DB.WithContext(r.Context()), uint(id))
	if err != nil {
		http.Error(w, "Negociação não encontrada", http.StatusNotFound)
		return
	}

	// Permissão: admin ou dono da negociação
	userID, isAdmin, _ := auth.Usuario(r.Context())
	if !isAdmin && n.ConsultorID != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(n)
}

// AtualizarStatus trata PATCH /negociacoes/{id}/status.
// A transição para Concluída é o que coloca a venda no cálculo de comissão.
func (h *Handler) AtualizarStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID da negociação inválido", http.StatusBadRequest)
		return
	}

	userID, isAdmin, ok := auth.Usuario(r.Context())
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	var payload atualizarStatusRequest
	if err := utils.DecodeAndValidate(r, &payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !statusPermitidos[payload.Status] {
		http.Error(w, "status inválido", http.StatusBadRequest)
		return
	}

	db := h.DB.WithContext(r.Context())
	neg, err := h.Repository.BuscarPorID(db, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "negociação não encontrada", http.StatusNotFound)
			return
		}
		http.Error(w, "erro ao buscar negociação", http.StatusInternalServerError)
		return
	}
	if !isAdmin && neg.ConsultorID != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	neg, err = h.Repository.AtualizarStatus(db, uint(id), payload.Status, h.agora())
	if err != nil {
		h.log.Error().Err(err).Int("negociacao", id).Msg("atualizar status")
		http.Error(w, "erro ao atualizar status", http.StatusInternalServerError)
		return
	}
	h.log.Info().Int("negociacao", id).Str("status", neg.Status).Uint("autor", userID).Msg("status atualizado")

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(neg)
}
