package admin

// DefaultObjectName is the identity used when none is configured.
const DefaultObjectName = "procadmin:type=Admin,name=ProcessAdmin"

const (
	AttributeReady                  = "Ready"
	AttributeEmbeddedWebApplication = "EmbeddedWebApplication"
	OperationGetProperty            = "getProperty"
	OperationShutdown               = "shutdown"
)
