package admin

import (
	"github.com/skillcoder/procadmin/internal/infra/lifecycle"
	"github.com/skillcoder/procadmin/internal/infra/management"
)

// Registry is the port the registrar publishes itself through.
type Registry interface {
	Register(name management.ObjectName, bean *management.Bean) (management.ObjectInstance, error)
	Unregister(name management.ObjectName) error
}

// webApplicationContext is implemented by contexts that serve network traffic
// from an embedded web server.
type webApplicationContext interface {
	lifecycle.Context
	IsEmbeddedWebApplication() bool
}
