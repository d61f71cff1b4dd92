package service

import (
	"github.com/redis/go-redis/v9"
	"github.com/serdarm09/factory-tracker-sub001/internal/netsim"
	"github.com/serdarm09/factory-tracker-sub001/internal/repository"
)

// Services is the service collection wired in main.
type Services struct {
	NetSim *NetSimService
	Order  *OrderService
}

func NewServices(repos *repository.Repositories, bridge *netsim.Client, rdb *redis.Client) *Services {
	return &Services{
		NetSim: NewNetSimService(bridge, repos.Order, rdb),
		Order:  NewOrderService(repos.Order),
	}
}
