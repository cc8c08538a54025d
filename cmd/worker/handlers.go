package main

import (
	"github.com/hibiken/asynq"

	productJob "marketplace-backend/internal/domains/product/job"
	"marketplace-backend/internal/shared"
	"marketplace-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	reshuffleProducts *productJob.ReshuffleHandler
}

func newHandlerRegistry(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		reshuffleProducts: productJob.NewReshuffleHandler(c.ProductService),
	}
}

// RegisterHandlers registers all handlers with the mux
func (r *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.Handle(shared.TypeReshuffleProducts, r.reshuffleProducts)
}
