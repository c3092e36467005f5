package analytics

import "github.com/rs/zerolog"

// Dispatcher records analytics events off the request path. Events are
// best-effort: a full queue drops the event rather than blocking a request.
type Dispatcher struct {
	logger zerolog.Logger
	queue  chan AddToCartEvent
}

func NewDispatcher(logger zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan AddToCartEvent, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		d.logger.Info().
			Str("event", "add_to_cart").
			Uint("customer_id", ev.CustomerID).
			Str("customer_name", ev.CustomerName).
			Str("session_id", ev.SessionID).
			Uint("product_id", ev.ProductID).
			Str("product_name", ev.ProductName).
			Str("category", ev.Category).
			Str("size", ev.Size).
			Int("quantity", ev.Quantity).
			Str("price", ev.Price.String()).
			Msg("analytics")
	}
}

func (d *Dispatcher) Dispatch(ev AddToCartEvent) {
	select {
	case d.queue <- ev:
	default:
		d.logger.Warn().Msg("analytics queue full, dropping event")
	}
}
