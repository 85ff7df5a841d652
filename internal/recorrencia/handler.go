package recorrencia

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/KromaEnergia/motor-comissao/internal/auth"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type Handler struct {
	Repo *Repository
	Dono auth.DonoDaVenda
	log  zerolog.Logger
}

func NewHandler(repo *Repository, dono auth.DonoDaVenda, log zerolog.Logger) *Handler {
	return &Handler{Repo: repo, Dono: dono, log: log.With().Str("handler", "recorrencia").Logger()}
}

type AlternarResponse struct {
	VendaID uint     `json:"vendaId"`
	Mes     MesChave `json:"mes"`
	Pago    bool     `json:"pago"`
}

// POST /vendas/{id}/recorrencia/{mes}/alternar
func (h *Handler) Alternar(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 0)
	if err != nil || id == 0 {
		http.Error(w, "ID da venda inválido", http.StatusBadRequest)
		return
	}
	mes, err := ParseMesChave(vars["mes"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	autor, _, _ := auth.Usuario(r.Context())
	pago, err := h.Repo.Alternar(r.Context(), uint(id), mes, autor)
	if err != nil {
		h.log.Error().Err(err).Uint64("venda", id).Str("mes", string(mes)).Msg("alternar mês")
		http.Error(w, "Erro ao alternar mês de recorrência", http.StatusInternalServerError)
		return
	}
	h.log.Info().Uint64("venda", id).Str("mes", string(mes)).Bool("pago", pago).Uint("autor", autor).Msg("recorrência alternada")

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(AlternarResponse{VendaID: uint(id), Mes: mes, Pago: pago})
}

// GET /vendas/{id}/recorrencia
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 0)
	if err != nil {
		http.Error(w, "ID da venda inválido", http.StatusBadRequest)
		return
	}
	if err := auth.AutorizarVenda(r.Context(), h.Dono, uint(id)); err != nil {
		http.Error(w, err.Error(), auth.StatusDe(err))
		return
	}

	list, err := h.Repo.MesesDaVenda(r.Context(), uint(id))
	if err != nil {
		h.log.Error().Err(err).Uint64("venda", id).Msg("listar meses pagos")
		http.Error(w, "Erro ao buscar meses pagos", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}
