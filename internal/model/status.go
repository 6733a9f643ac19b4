package model

// OrderStatus is the lifecycle state of an Order. The client-facing values
// are Spanish and are part of the persisted contract, so they are kept as-is.
type OrderStatus string

const (
	StatusSolicitado OrderStatus = "Solicitado"
	StatusEnProceso  OrderStatus = "En proceso"
	StatusListo      OrderStatus = "Listo"
	StatusEntregado  OrderStatus = "Entregado"
	StatusCancelado  OrderStatus = "Cancelado"
)

// validTransitions is the exhaustive transition table:
// Solicitado → En proceso → Listo → Entregado, with Cancelado reachable from
// any non-terminal state. Entregado and Cancelado accept no further moves.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusSolicitado: {StatusEnProceso, StatusCancelado},
	StatusEnProceso:  {StatusListo, StatusCancelado},
	StatusListo:      {StatusEntregado, StatusCancelado},
	StatusEntregado:  {},
	StatusCancelado:  {},
}

func (s OrderStatus) Valid() bool {
	_, ok := validTransitions[s]
	return ok
}

// Terminal reports whether the status ends the lifecycle.
func (s OrderStatus) Terminal() bool {
	return s == StatusEntregado || s == StatusCancelado
}

// CanTransitionTo checks the transition table.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
