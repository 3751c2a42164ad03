package usecase

import (
	"errors"
	"fmt"
)

// ErrEmptyStoreResult indica que o CMS confirmou a gravação sem devolver o registro.
var ErrEmptyStoreResult = errors.New("content store returned no record")

// ValidationError é uma entrada rejeitada. Message vai para o usuário e já está traduzida.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// StoreError embrulha qualquer falha de comunicação com o CMS. O texto nunca aparece para o usuário.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// AsValidationError retorna a falha de validação embrulhada em qualquer ponto de err.
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}

func IsStoreError(err error) bool {
	var sErr *StoreError
	return errors.As(err, &sErr)
}
