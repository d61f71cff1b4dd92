package handler

import "github.com/serdarm09/factory-tracker-sub001/internal/service"

// Handlers is the HTTP handler collection wired in main.
type Handlers struct {
	NetSim *NetSimHandler
	Order  *OrderHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		NetSim: NewNetSimHandler(services.NetSim),
		Order:  NewOrderHandler(services.Order),
	}
}
