package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")

	// ErrStoreUnavailable el almacén no se pudo abrir, migrar o consultar. Es fatal antes de cualquier lote.
	ErrStoreUnavailable = errors.New("almacén de entidades no disponible")
	// ErrInvalidTransition el estado actual del pedido no tiene regla de transición; el registro se omite.
	ErrInvalidTransition = errors.New("transición de estado no definida")
	// ErrBatchNotApplied el lote falló dentro de la transacción y se revirtió completo.
	ErrBatchNotApplied = errors.New("lote no aplicado")
)
