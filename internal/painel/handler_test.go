package painel

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KromaEnergia/motor-comissao/internal/auth"
	"github.com/KromaEnergia/motor-comissao/internal/calculocomissao"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loteFixo []calculocomissao.Visao

func (l loteFixo) Lote(context.Context, time.Time) (calculocomissao.Lote, error) {
	return calculocomissao.Lote{Visoes: l}, nil
}

func setupRouter(t *testing.T) *mux.Router {
	t.Helper()
	h := NewHandler(loteFixo(visoes(t)), zerolog.Nop())
	h.agora = func() time.Time { return time.Date(2025, time.March, 25, 0, 0, 0, 0, time.UTC) }

	r := mux.NewRouter()
	r.HandleFunc("/painel", h.Resumo).Methods(http.MethodGet)
	return r
}

func get(t *testing.T, r http.Handler, path string, userID uint, admin bool) (*httptest.ResponseRecorder, Resumo) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req = req.WithContext(auth.ComUsuario(req.Context(), userID, admin))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var res Resumo
	if w.Code == http.StatusOK {
		require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
	}
	return w, res
}

func TestHandler_Resumo(t *testing.T) {
	r := setupRouter(t)

	w, res := get(t, r, "/painel?mes=2025-03", 9, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 13000.0, res.TotalAReceber)

	// sem período usa o mês corrente (março)
	_, res = get(t, r, "/painel", 9, true)
	assert.Equal(t, 13000.0, res.TotalAReceber)

	_, res = get(t, r, "/painel?inicio=2025-06-01&fim=2025-07-31&parceiro=Solaris%20Energia", 9, true)
	assert.Equal(t, 3000.0, res.TotalParcelas)
	assert.Equal(t, 300.0, res.TotalRecorrencia)

	_, res = get(t, r, "/painel?mes=2025-03&consultor=2", 9, true)
	assert.Equal(t, 6000.0, res.TotalAReceber)
}

func TestHandler_ResumoConsultorVeSoOProprio(t *testing.T) {
	r := setupRouter(t)

	_, res := get(t, r, "/painel?mes=2025-03", 1, false)
	assert.Equal(t, 7000.0, res.TotalAReceber)

	w, _ := get(t, r, "/painel?mes=2025-03&consultor=2", 1, false)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandler_ResumoParametrosInvalidos(t *testing.T) {
	r := setupRouter(t)

	for _, path := range []string{
		"/painel?mes=03-2025",
		"/painel?mes=2025-03&inicio=2025-03-01&fim=2025-03-31",
		"/painel?inicio=2025-03-01",
		"/painel?inicio=2025-04-01&fim=2025-03-01",
		"/painel?mes=2025-03&parceiro=desconhecida",
		"/painel?mes=2025-03&consultor=x",
	} {
		w, _ := get(t, r, path, 9, true)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}
