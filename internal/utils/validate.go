package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var ErrJSONMalFormado = errors.New("JSON mal formado")

// DecodeAndValidate lê o corpo JSON da requisição em dst e valida as tags `validate`.
// Erros de parse retornam ErrJSONMalFormado; erros de validação vêm como
// validator.ValidationErrors embrulhados.
func DecodeAndValidate(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return ErrJSONMalFormado
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("campos inválidos: %w", err)
	}
	return nil
}
