package auth

import (
	"context"
	"errors"
	"net/http"
)

var (
	ErrAcessoNegado       = errors.New("acesso negado")
	ErrVendaNaoEncontrada = errors.New("venda não encontrada")
)

// DonoDaVenda devolve o consultor responsável pela venda, ou
// ErrVendaNaoEncontrada.
type DonoDaVenda func(ctx context.Context, vendaID uint) (uint, error)

// AutorizarVenda libera admin; consultor só acessa as próprias vendas.
func AutorizarVenda(ctx context.Context, dono DonoDaVenda, vendaID uint) error {
	userID, isAdmin, ok := Usuario(ctx)
	if !ok {
		return ErrAcessoNegado
	}
	if isAdmin {
		return nil
	}
	if dono == nil {
		return ErrAcessoNegado
	}
	consultorID, err := dono(ctx, vendaID)
	if err != nil {
		return err
	}
	if consultorID != userID {
		return ErrAcessoNegado
	}
	return nil
}

// StatusDe traduz o erro de AutorizarVenda em status HTTP.
func StatusDe(err error) int {
	switch {
	case errors.Is(err, ErrAcessoNegado):
		return http.StatusForbidden
	case errors.Is(err, ErrVendaNaoEncontrada):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
