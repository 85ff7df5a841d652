package parcelacomissao

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/KromaEnergia/motor-comissao/internal/auth"
	"github.com/KromaEnergia/motor-comissao/internal/utils"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

/* ============================== Handler & DTOs ============================== */

type Handler struct {
	Repo *Repository
	Dono auth.DonoDaVenda
	log  zerolog.Logger
}

// NewHandler cria o handler; dono resolve o consultor da venda na listagem.
func NewHandler(repo *Repository, dono auth.DonoDaVenda, log zerolog.Logger) *Handler {
	return &Handler{Repo: repo, Dono: dono, log: log.With().Str("handler", "ajuste_vencimento").Logger()}
}

// DTO usado no PUT /vendas/{id}/parcelas/{ordinal}/vencimento
type AjusteVencimentoDTO struct {
	DataVencimento string `json:"dataVencimento" validate:"required,datetime=2006-01-02"`
}

func lerIDs(r *http.Request) (uint, Ordinal, error) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 0)
	if err != nil || id == 0 {
		return 0, 0, errors.New("ID da venda inválido")
	}
	o, err := strconv.Atoi(vars["ordinal"])
	if err != nil || !Ordinal(o).Valido() {
		return 0, 0, ErrOrdinalInvalido
	}
	return uint(id), Ordinal(o), nil
}

/* ============================== Endpoints ============================== */

// GET /vendas/{id}/ajustes
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 0)
	if err != nil {
		http.Error(w, "ID da venda inválido", http.StatusBadRequest)
		return
	}
	if err := auth.AutorizarVenda(r.Context(), h.Dono, uint(id)); err != nil {
		http.Error(w, err.Error(), auth.StatusDe(err))
		return
	}

	list, err := h.Repo.ListarPorVenda(r.Context(), uint(id))
	if err != nil {
		h.log.Error().Err(err).Uint64("venda", id).Msg("listar ajustes")
		http.Error(w, "Erro ao buscar ajustes", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// PUT /vendas/{id}/parcelas/{ordinal}/vencimento
// O ajuste substitui a data calculada; nunca altera o valor da parcela.
func (h *Handler) Definir(w http.ResponseWriter, r *http.Request) {
	vendaID, o, err := lerIDs(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var in AjusteVencimentoDTO
	if err := utils.DecodeAndValidate(r, &in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	data, err := time.Parse("2006-01-02", in.DataVencimento)
	if err != nil {
		http.Error(w, "dataVencimento inválida", http.StatusBadRequest)
		return
	}

	autor, _, _ := auth.Usuario(r.Context())
	ajuste, err := h.Repo.Definir(r.Context(), vendaID, o, data, autor)
	if err != nil {
		h.log.Error().Err(err).Uint("venda", vendaID).Int("ordinal", int(o)).Msg("definir ajuste")
		http.Error(w, "Erro ao gravar ajuste", http.StatusInternalServerError)
		return
	}
	h.log.Info().Uint("venda", vendaID).Int("ordinal", int(o)).Uint("autor", autor).
		Str("vencimento", in.DataVencimento).Msg("vencimento ajustado")

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(ajuste)
}

// DELETE /vendas/{id}/parcelas/{ordinal}/vencimento
func (h *Handler) Remover(w http.ResponseWriter, r *http.Request) {
	vendaID, o, err := lerIDs(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Repo.Remover(r.Context(), vendaID, o); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Ajuste não encontrado", http.StatusNotFound)
			return
		}
		h.log.Error().Err(err).Uint("venda", vendaID).Int("ordinal", int(o)).Msg("remover ajuste")
		http.Error(w, "Erro ao remover ajuste", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
