package scd2

import (
	"context"

	"github.com/jhoicas/ecommerce-scd2/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del almacén, pasando repositorios atados a esa tx.
// Un lote incremental completo corre en una sola llamada a Run: se confirma entero o no se aplica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		customerRepo repository.CustomerRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error) error
}
