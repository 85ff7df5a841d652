package painel

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/KromaEnergia/motor-comissao/internal/auth"
	"github.com/KromaEnergia/motor-comissao/internal/calculocomissao"
	"github.com/KromaEnergia/motor-comissao/internal/regracomissao"
	"github.com/rs/zerolog"
)

// FonteLote entrega as visões calculadas de todas as vendas.
type FonteLote interface {
	Lote(ctx context.Context, asOf time.Time) (calculocomissao.Lote, error)
}

type Handler struct {
	Fonte FonteLote
	log   zerolog.Logger
	agora func() time.Time
}

func NewHandler(fonte FonteLote, log zerolog.Logger) *Handler {
	return &Handler{
		Fonte: fonte,
		log:   log.With().Str("handler", "painel").Logger(),
		agora: time.Now,
	}
}

// LerFiltro monta o filtro a partir de ?mes=YYYY-MM ou ?inicio=&fim= (YYYY-MM-DD),
// mais ?parceiro= e ?consultor= opcionais. Sem período usa o mês de agora.
func LerFiltro(r *http.Request, agora time.Time) (Filtro, string) {
	q := r.URL.Query()
	var f Filtro

	mes, inicio, fim := q.Get("mes"), q.Get("inicio"), q.Get("fim")
	switch {
	case mes != "" && (inicio != "" || fim != ""):
		return f, "use mes ou inicio/fim, não ambos"
	case mes != "":
		t, err := time.Parse("2006-01", mes)
		if err != nil {
			return f, "mes inválido; use YYYY-MM"
		}
		f.Janela = JanelaMes(t.Year(), t.Month())
	case inicio != "" || fim != "":
		i, err1 := time.Parse("2006-01-02", inicio)
		e, err2 := time.Parse("2006-01-02", fim)
		if err1 != nil || err2 != nil {
			return f, "inicio e fim são obrigatórios no formato YYYY-MM-DD"
		}
		j, err := JanelaPeriodo(i, e)
		if err != nil {
			return f, err.Error()
		}
		f.Janela = j
	default:
		f.Janela = JanelaMes(agora.Year(), agora.Month())
	}

	if s := strings.TrimSpace(q.Get("parceiro")); s != "" {
		p := regracomissao.ParseParceiro(s)
		if p == regracomissao.ParceiroPadrao && !strings.EqualFold(s, string(regracomissao.ParceiroPadrao)) {
			return f, "parceiro desconhecido"
		}
		f.Parceiro = &p
	}
	if s := q.Get("consultor"); s != "" {
		id, err := strconv.ParseUint(s, 10, 0)
		if err != nil {
			return f, "consultor inválido"
		}
		c := uint(id)
		f.ConsultorID = &c
	}
	return f, ""
}

// GET /painel
func (h *Handler) Resumo(w http.ResponseWriter, r *http.Request) {
	agora := h.agora()
	f, msg := LerFiltro(r, agora)
	if msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	// consultor comum só vê o próprio painel
	userID, isAdmin, _ := auth.Usuario(r.Context())
	if !isAdmin {
		if f.ConsultorID != nil && *f.ConsultorID != userID {
			http.Error(w, "acesso negado", http.StatusForbidden)
			return
		}
		f.ConsultorID = &userID
	}

	lote, err := h.Fonte.Lote(r.Context(), agora)
	if err != nil {
		h.log.Error().Err(err).Msg("calcular lote do painel")
		http.Error(w, "Erro ao montar painel", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(Agregar(lote.Visoes, f))
}
