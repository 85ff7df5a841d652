package calculocomissao

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/KromaEnergia/motor-comissao/internal/auth"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// Notificador recebe alertas operacionais (ex.: vendas ignoradas no lote).
type Notificador interface {
	Notificar(ctx context.Context, mensagem string, campos map[string]string) error
}

// Handler gerencia rotas de cálculo de comissão
type Handler struct {
	Servico *Servico
	Fontes  Carregador
	Alerta  Notificador
	log     zerolog.Logger
	agora   func() time.Time
}

// NewHandler cria um novo Handler. alerta pode ser nil.
func NewHandler(servico *Servico, fontes Carregador, alerta Notificador, log zerolog.Logger) *Handler {
	return &Handler{
		Servico: servico,
		Fontes:  fontes,
		Alerta:  alerta,
		log:     log.With().Str("handler", "calculocomissao").Logger(),
		agora:   time.Now,
	}
}

// AsOf lê o parâmetro opcional ?asOf=YYYY-MM-DD; sem ele usa o relógio.
func AsOf(r *http.Request, agora func() time.Time) (time.Time, bool) {
	s := r.URL.Query().Get("asOf")
	if s == "" {
		return agora(), true
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// RestringirAoUsuario deixa no lote só as visões do consultor logado,
// exceto para admin. O volume mensal já foi somado com todas as vendas.
func RestringirAoUsuario(ctx context.Context, lote Lote) Lote {
	userID, isAdmin, _ := auth.Usuario(ctx)
	if isAdmin {
		return lote
	}
	visoes := make([]Visao, 0, len(lote.Visoes))
	for _, v := range lote.Visoes {
		if v.Venda.ConsultorID == userID {
			visoes = append(visoes, v)
		}
	}
	return Lote{Visoes: visoes, Ignoradas: []Ignorada{}}
}

// Lote carrega o snapshot e calcula todas as vendas, alertando as ignoradas.
func (h *Handler) Lote(ctx context.Context, asOf time.Time) (Lote, error) {
	snap, err := h.Fontes.Carregar(ctx)
	if err != nil {
		return Lote{}, err
	}
	lote := h.Servico.CalcularLote(snap, asOf)
	if len(lote.Ignoradas) > 0 && h.Alerta != nil {
		ids := make([]string, 0, len(lote.Ignoradas))
		for _, ig := range lote.Ignoradas {
			ids = append(ids, strconv.FormatUint(uint64(ig.VendaID), 10))
		}
		campos := map[string]string{
			"vendas":     strings.Join(ids, ","),
			"quantidade": strconv.Itoa(len(ids)),
		}
		if err := h.Alerta.Notificar(ctx, "vendas ignoradas no cálculo de comissão", campos); err != nil {
			h.log.Warn().Err(err).Msg("enviar alerta de vendas ignoradas")
		}
	}
	return lote, nil
}

// GET /vendas/{id}/comissao
func (h *Handler) PorVenda(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 0)
	if err != nil || id == 0 {
		http.Error(w, "ID da venda inválido", http.StatusBadRequest)
		return
	}
	asOf, ok := AsOf(r, h.agora)
	if !ok {
		http.Error(w, "asOf inválido; use YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	snap, err := h.Fontes.Carregar(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("carregar snapshot")
		http.Error(w, "Erro ao carregar dados de comissão", http.StatusInternalServerError)
		return
	}

	userID, isAdmin, _ := auth.Usuario(r.Context())
	for _, v := range snap.Vendas {
		if v.ID != uint(id) {
			continue
		}
		if !isAdmin && v.ConsultorID != userID {
			http.Error(w, "acesso negado", http.StatusForbidden)
			return
		}
		visao, err := h.Servico.Calcular(v, snap, asOf)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(visao)
		return
	}
	http.Error(w, "Venda concluída não encontrada", http.StatusNotFound)
}

// GET /comissoes
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	asOf, ok := AsOf(r, h.agora)
	if !ok {
		http.Error(w, "asOf inválido; use YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	lote, err := h.Lote(r.Context(), asOf)
	if err != nil {
		h.log.Error().Err(err).Msg("calcular lote")
		http.Error(w, "Erro ao calcular comissões", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(RestringirAoUsuario(r.Context(), lote))
}

// GET /comissoes.csv
func (h *Handler) ExportarCSV(w http.ResponseWriter, r *http.Request) {
	asOf, ok := AsOf(r, h.agora)
	if !ok {
		http.Error(w, "asOf inválido; use YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	lote, err := h.Lote(r.Context(), asOf)
	if err != nil {
		h.log.Error().Err(err).Msg("calcular lote")
		http.Error(w, "Erro ao calcular comissões", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="comissoes-`+asOf.Format("2006-01-02")+`.csv"`)
	if err := EscreverCSV(w, RestringirAoUsuario(r.Context(), lote).Visoes); err != nil {
		h.log.Error().Err(err).Msg("escrever csv")
	}
}
