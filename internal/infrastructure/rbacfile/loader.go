// Package rbacfile carga la tabla de permisos desde YAML (embebido o archivo).
package rbacfile

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/jhoicas/Pos-api/internal/domain/entity"
	"github.com/jhoicas/Pos-api/internal/domain/rbac"
)

//go:embed roles.yaml
var defaultRoles []byte

type document struct {
	Roles map[string][]string `yaml:"roles"`
}

// Load usa el archivo indicado o, si path está vacío, la tabla embebida.
func Load(path string) (*rbac.Table, error) {
	if path == "" {
		return Parse(defaultRoles)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rbacfile: leer %s: %w", path, err)
	}
	return Parse(data)
}

// Default tabla embebida; entra en pánico si el YAML embebido es inválido.
func Default() *rbac.Table {
	t, err := Parse(defaultRoles)
	if err != nil {
		panic(err)
	}
	return t
}

// Parse decodifica el documento y valida roles y módulos contra el catálogo.
func Parse(data []byte) (*rbac.Table, error) {
	var doc document
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("rbacfile: %w", err)
	}
	grants := make(map[entity.Role][]entity.Module, len(doc.Roles))
	for role, modules := range doc.Roles {
		list := make([]entity.Module, 0, len(modules))
		for _, m := range modules {
			list = append(list, entity.Module(m))
		}
		grants[entity.Role(role)] = list
	}
	return rbac.NewTable(grants)
}
