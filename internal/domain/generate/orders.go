package generate

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ecommerce-scd2/internal/domain/entity"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/sampling"
)

var (
	itemsPerOrder = sampling.MustWeighted([]sampling.Outcome[int]{
		{Value: 1, Weight: 0.40},
		{Value: 2, Weight: 0.35},
		{Value: 3, Weight: 0.20},
		{Value: 4, Weight: 0.05},
	})
	itemQuantity = sampling.MustWeighted([]sampling.Outcome[int]{
		{Value: 1, Weight: 0.70},
		{Value: 2, Weight: 0.25},
		{Value: 3, Weight: 0.05},
	})
	shippingCosts = []int64{0, 100, 150, 200}
)

// OrderBundle pedido con sus líneas y su pago 1:1.
type OrderBundle struct {
	Order   *entity.Order
	Items   []*entity.OrderItem
	Payment *entity.Payment
}

// OrderRefs rangos de IDs densos existentes (1..Max) a los que puede referirse un pedido nuevo.
type OrderRefs struct {
	MaxCustomerID int64
	MaxProductID  int64
}

// Order pedido de la población inicial con fecha en el último año. firstItemID es el ID de su primera línea;
// las líneas siguientes toman IDs consecutivos.
func (g *Generator) Order(id, firstItemID int64, refs OrderRefs, now time.Time) OrderBundle {
	orderDate := g.Between(now.AddDate(-1, 0, 0), now)

	base := decimal.NewFromInt(int64(sampling.IntBetween(g.r, 500, 25000)))
	shipping := decimal.NewFromInt(sampling.Pick(g.r, shippingCosts))
	discount := decimal.Zero
	if sampling.Bernoulli(g.r, 0.3) {
		discount = base.Mul(decimal.NewFromFloat(sampling.Uniform(g.r, 0, 0.15))).Round(2)
	}
	total := base.Add(shipping).Sub(discount).Round(2)

	updated := orderDate.AddDate(0, 0, sampling.IntBetween(g.r, 0, 7))
	if updated.After(now) {
		updated = now
	}

	order := &entity.Order{
		ID:                id,
		CustomerID:        int64(sampling.IntBetween(g.r, 1, int(refs.MaxCustomerID))),
		OrderDate:         orderDate,
		Status:            g.cat.OrderStatusDistribution().Pick(g.r),
		TotalAmount:       total,
		ShippingCost:      shipping,
		DiscountAmount:    discount,
		ShippingAddressID: int64(sampling.IntBetween(g.r, g.cat.ShippingAddressIDs.Min, g.cat.ShippingAddressIDs.Max)),
		CreatedAt:         orderDate,
		UpdatedAt:         updated,
	}

	return OrderBundle{
		Order:   order,
		Items:   g.orderItems(order.ID, firstItemID, refs.MaxProductID),
		Payment: g.payment(order),
	}
}

func (g *Generator) orderItems(orderID, firstItemID, maxProductID int64) []*entity.OrderItem {
	productIDs := sampling.SampleInts(g.r, 1, int(maxProductID), itemsPerOrder.Pick(g.r))
	items := make([]*entity.OrderItem, 0, len(productIDs))
	for i, productID := range productIDs {
		qty := itemQuantity.Pick(g.r)
		unit := decimal.NewFromInt(int64(sampling.IntBetween(g.r, 500, 15000))).
			Mul(decimal.NewFromFloat(sampling.Uniform(g.r, 0.9, 1.1)))
		gross := unit.Mul(decimal.NewFromInt(int64(qty)))
		discount := decimal.Zero
		if sampling.Bernoulli(g.r, 0.2) {
			discount = gross.Mul(decimal.NewFromFloat(sampling.Uniform(g.r, 0, 0.1)))
		}
		items = append(items, &entity.OrderItem{
			ID:             firstItemID + int64(i),
			OrderID:        orderID,
			ProductID:      int64(productID),
			Quantity:       qty,
			UnitPrice:      unit.Round(2),
			TotalPrice:     gross.Sub(discount).Round(2),
			DiscountAmount: discount.Round(2),
		})
	}
	return items
}

func (g *Generator) payment(order *entity.Order) *entity.Payment {
	method := g.cat.PaymentMethodDistribution().Pick(g.r)
	p := &entity.Payment{
		ID:            order.ID,
		OrderID:       order.ID,
		PaymentMethod: method.Name,
		Amount:        order.TotalAmount,
		PaymentDate:   order.OrderDate.Add(time.Duration(sampling.IntBetween(g.r, 0, 1440)) * time.Minute),
		Status:        g.cat.PaymentStatusDistribution().Pick(g.r),
	}
	if method.Digital {
		txn := fmt.Sprintf("%s%d", transactionPrefix(method.Name), sampling.IntBetween(g.r, 100000, 999999))
		p.TransactionID = &txn
	}
	return p
}

// transactionPrefix primeras tres letras del método en mayúsculas ("eSewa" -> "ESE").
func transactionPrefix(method string) string {
	r := []rune(method)
	if len(r) > 3 {
		r = r[:3]
	}
	return strings.ToUpper(string(r))
}
