package mutation

import (
	"fmt"
	"math/rand/v2"

	"github.com/jhoicas/ecommerce-scd2/internal/domain"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/entity"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/sampling"
)

// Transition regla de salida de un estado: con probabilidad Probability el pedido avanza a uno de Targets
// (elegido según sus pesos); si no, queda igual en este lote.
type Transition struct {
	Probability float64
	Targets     []sampling.Outcome[string]
}

// StatusRules tabla de transiciones por estado actual. Los estados sin regla son terminales.
type StatusRules map[string]Transition

// DefaultStatusRules máquina de estados del pedido:
// pending -> confirmed|cancelled (0.70), confirmed -> shipped (0.80), shipped -> delivered (0.90).
func DefaultStatusRules() StatusRules {
	return StatusRules{
		entity.OrderStatusPending: {
			Probability: 0.70,
			Targets: []sampling.Outcome[string]{
				{Value: entity.OrderStatusConfirmed, Weight: 1},
				{Value: entity.OrderStatusCancelled, Weight: 1},
			},
		},
		entity.OrderStatusConfirmed: {
			Probability: 0.80,
			Targets:     []sampling.Outcome[string]{{Value: entity.OrderStatusShipped, Weight: 1}},
		},
		entity.OrderStatusShipped: {
			Probability: 0.90,
			Targets:     []sampling.Outcome[string]{{Value: entity.OrderStatusDelivered, Weight: 1}},
		},
	}
}

type compiledTransition struct {
	probability float64
	targets     *sampling.Weighted[string]
	successors  []string
}

// StatusPolicy decide la transición de estado de un pedido muestreado.
type StatusPolicy struct {
	r     *rand.Rand
	rules map[string]compiledTransition
}

// NewStatusPolicy valida y compila la tabla de transiciones.
func NewStatusPolicy(r *rand.Rand, rules StatusRules) (*StatusPolicy, error) {
	compiled := make(map[string]compiledTransition, len(rules))
	for from, tr := range rules {
		if entity.IsTerminalOrderStatus(from) {
			return nil, fmt.Errorf("estado terminal %q no puede tener transiciones", from)
		}
		targets, err := sampling.NewWeighted(tr.Targets)
		if err != nil {
			return nil, fmt.Errorf("transiciones desde %q: %w", from, err)
		}
		successors := make([]string, 0, len(tr.Targets))
		for _, t := range tr.Targets {
			if t.Value == from {
				return nil, fmt.Errorf("transición de %q a sí mismo", from)
			}
			successors = append(successors, t.Value)
		}
		compiled[from] = compiledTransition{probability: tr.Probability, targets: targets, successors: successors}
	}
	return &StatusPolicy{r: r, rules: compiled}, nil
}

// Next devuelve el siguiente estado y si hubo cambio en este lote.
// Un estado sin regla devuelve domain.ErrInvalidTransition; el motor lo trata como omisión del registro.
func (p *StatusPolicy) Next(current string) (string, bool, error) {
	tr, ok := p.rules[current]
	if !ok {
		return current, false, fmt.Errorf("%w: %q", domain.ErrInvalidTransition, current)
	}
	if !sampling.Bernoulli(p.r, tr.probability) {
		return current, false, nil
	}
	return tr.targets.Pick(p.r), true, nil
}

// Successors estados alcanzables desde current en un paso (vacío para terminales).
func (p *StatusPolicy) Successors(current string) []string {
	return p.rules[current].successors
}
