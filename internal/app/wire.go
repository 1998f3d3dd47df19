//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/starterkit/server/internal/shared/config"
)

// InitializeServer creates the server and everything it depends on using Wire.
func InitializeServer(cfg *config.Config) (*Server, func(), error) {
	wire.Build(AppSet)
	return nil, nil, nil
}
