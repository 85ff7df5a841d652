package consultor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

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
}

// NewHandler retorna um handler inicializado
func NewHandler(db *gorm.DB, log zerolog.Logger) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		log:        log.With().Str("handler", "consultor").Logger(),
	}
}

// ListarConsultores retorna todos (admin) ou apenas o próprio registro
func (h *Handler) ListarConsultores(w http.ResponseWriter, r *http.Request) {
	userID, isAdmin, _ := auth.Usuario(r.Context())

	w.Header().Set("Content-Type", "application/json")
	if isAdmin {
		consultores, err := h.Repository.ListarTodos(h.DB.WithContext(r.Context()))
		if err != nil {
			h.log.Error().Err(err).Msg("listar consultores")
			http.Error(w, "erro ao listar consultores", http.StatusInternalServerError)
			return
		}
		out := make([]ResumoConsultorDTO, 0, len(consultores))
		for _, c := range consultores {
			out = append(out, MontarResumoConsultorDTO(c))
		}
		_ = json.NewEncoder(w).Encode(out)
		return
	}

	// não-admin vê apenas o próprio
	obj, err := h.Repository.BuscarPorID(h.DB.WithContext(r.Context()), userID)
	if err != nil {
		http.Error(w, "consultor não encontrado", http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode([]ResumoConsultorDTO{MontarResumoConsultorDTO(*obj)})
}

// BuscarPorID retorna um consultor pelo ID
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	userID, isAdmin, _ := auth.Usuario(r.Context())

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	if !isAdmin && uint(id) != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	obj, err := h.Repository.BuscarPorID(h.DB.WithContext(r.Context()), uint(id))
	if err != nil {
		http.Error(w, "consultor não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(MontarResumoConsultorDTO(*obj))
}

// AtualizarComissao trata PATCH /consultores/{id}/comissao (admin).
// Altera a taxa do consultor e/ou sua exclusão da recorrência.
func (h *Handler) AtualizarComissao(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var dto PerfilComissaoDTO
	if err := utils.DecodeAndValidate(r, &dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.Repository.AtualizarComissao(h.DB.WithContext(r.Context()), uint(id), dto)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "consultor não encontrado", http.StatusNotFound)
			return
		}
		h.log.Error().Err(err).Int("consultor", id).Msg("atualizar comissão")
		http.Error(w, "erro ao atualizar consultor", http.StatusInternalServerError)
		return
	}
	h.log.Info().Int("consultor", id).Bool("excluidoRecorrencia", c.ExcluidoRecorrencia).Msg("perfil de comissão atualizado")

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(MontarResumoConsultorDTO(*c))
}
