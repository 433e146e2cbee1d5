package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrUpstream     = errors.New("la API de datos no respondió correctamente")

	// Editor en línea
	ErrNotEditing = errors.New("la fila no está en edición")
	ErrRowBusy    = errors.New("la fila tiene un guardado en curso")
)
