package management

import (
	"context"
	"strings"
)

// Impact describes what invoking an operation does.
type Impact string

const (
	// ImpactInfo operations only read state.
	ImpactInfo Impact = "info"

	// ImpactAction operations change state.
	ImpactAction Impact = "action"
)

// AttributeFunc reads an attribute value.
type AttributeFunc func(ctx context.Context) (any, error)

// OperationFunc runs an operation with positional string parameters.
type OperationFunc func(ctx context.Context, params []string) (any, error)

// Param describes an operation parameter.
type Param struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Attribute is a readable bean attribute.
type Attribute struct {
	Name        string
	Type        string
	Description string
	Get         AttributeFunc
}

// Operation is an invocable bean operation.
type Operation struct {
	Name        string
	Description string
	Params      []Param
	ReturnType  string
	Impact      Impact
	Invoke      OperationFunc
}

// Bean is a set of named attributes and operations published under an ObjectName.
type Bean struct {
	description string
	attributes  map[string]Attribute
	operations  map[string]Operation
	order       []string
	opOrder     []string
}

// NewBean creates a bean. Later entries with a duplicate name replace earlier ones.
func NewBean(description string, attributes []Attribute, operations []Operation) *Bean {
	b := &Bean{
		description: description,
		attributes:  make(map[string]Attribute, len(attributes)),
		operations:  make(map[string]Operation, len(operations)),
	}

	for _, a := range attributes {
		if _, exists := b.attributes[a.Name]; !exists {
			b.order = append(b.order, a.Name)
		}

		b.attributes[a.Name] = a
	}

	for _, op := range operations {
		if op.Impact == "" {
			op.Impact = ImpactInfo
		}

		if _, exists := b.operations[op.Name]; !exists {
			b.opOrder = append(b.opOrder, op.Name)
		}

		b.operations[op.Name] = op
	}

	return b
}

// operation returns the operation by name. Getter-style names (getX, isX)
// without parameters fall back to reading attribute X.
func (b *Bean) operation(name string) (Operation, bool) {
	if op, ok := b.operations[name]; ok {
		return op, true
	}

	for _, prefix := range []string{"get", "is"} {
		attrName, ok := strings.CutPrefix(name, prefix)
		if !ok || attrName == "" {
			continue
		}

		attr, ok := b.attributes[attrName]
		if !ok {
			continue
		}

		return Operation{
			Name:        name,
			Description: attr.Description,
			ReturnType:  attr.Type,
			Impact:      ImpactInfo,
			Invoke: func(ctx context.Context, _ []string) (any, error) {
				return attr.Get(ctx)
			},
		}, true
	}

	return Operation{}, false
}

// AttributeInfo describes an attribute.
type AttributeInfo struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// OperationInfo describes an operation.
type OperationInfo struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Params      []Param `json:"params"`
	ReturnType  string  `json:"returnType"`
	Impact      Impact  `json:"impact"`
}

// BeanInfo describes a registered bean.
type BeanInfo struct {
	ObjectName  string          `json:"objectName"`
	Description string          `json:"description,omitempty"`
	Attributes  []AttributeInfo `json:"attributes"`
	Operations  []OperationInfo `json:"operations"`
}

func (b *Bean) info(name ObjectName) BeanInfo {
	info := BeanInfo{
		ObjectName:  name.String(),
		Description: b.description,
		Attributes:  make([]AttributeInfo, 0, len(b.order)),
		Operations:  make([]OperationInfo, 0, len(b.opOrder)),
	}

	for _, n := range b.order {
		a := b.attributes[n]
		info.Attributes = append(info.Attributes, AttributeInfo{
			Name:        a.Name,
			Type:        a.Type,
			Description: a.Description,
		})
	}

	for _, n := range b.opOrder {
		op := b.operations[n]

		params := op.Params
		if params == nil {
			params = []Param{}
		}

		info.Operations = append(info.Operations, OperationInfo{
			Name:        op.Name,
			Description: op.Description,
			Params:      params,
			ReturnType:  op.ReturnType,
			Impact:      op.Impact,
		})
	}

	return info
}
