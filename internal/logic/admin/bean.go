package admin

import (
	"context"

	"github.com/skillcoder/procadmin/internal/infra/management"
)

// bean exposes the registrar through the management registry.
func (r *Registrar) bean() *management.Bean {
	return management.NewBean(
		"Lifecycle and configuration of the running process",
		[]management.Attribute{
			{
				Name:        AttributeReady,
				Type:        "bool",
				Description: "Whether the application has completed startup",
				Get: func(context.Context) (any, error) {
					return r.IsReady(), nil
				},
			},
			{
				Name:        AttributeEmbeddedWebApplication,
				Type:        "bool",
				Description: "Whether the application runs an embedded web server",
				Get: func(context.Context) (any, error) {
					return r.IsEmbeddedWebApplication(), nil
				},
			},
		},
		[]management.Operation{
			{
				Name:        OperationGetProperty,
				Description: "Resolve a configuration property; null when unset",
				Params:      []management.Param{{Name: "key", Type: "string"}},
				ReturnType:  "string",
				Impact:      management.ImpactInfo,
				Invoke: func(_ context.Context, params []string) (any, error) {
					value, found, err := r.GetProperty(params[0])
					if err != nil {
						return nil, err
					}

					if !found {
						return nil, nil //nolint:nilnil // absent property is a valid null result
					}

					return value, nil
				},
			},
			{
				Name:        OperationShutdown,
				Description: "Gracefully stop the application",
				ReturnType:  "void",
				Impact:      management.ImpactAction,
				Invoke: func(ctx context.Context, _ []string) (any, error) {
					return nil, r.Shutdown(ctx)
				},
			},
		},
	)
}
