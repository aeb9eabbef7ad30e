package domain

import "errors"

// Taxonomia de erros compartilhada pelos casos de uso.
// Os erros específicos de cada contexto embrulham um destes, então errors.Is funciona nos dois níveis.
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrValidation      = errors.New("validation error")
	ErrExternalBackend = errors.New("external backend error")
)
