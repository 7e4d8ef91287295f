// Package rbac contiene la tabla estática rol → módulos y la verificación de acceso.
package rbac

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/jhoicas/Pos-api/internal/domain/entity"
)

// Table mapeo inmutable de rol a conjunto de módulos permitidos.
// Un rol ausente de la tabla no tiene acceso a nada.
type Table struct {
	grants map[entity.Role]map[entity.Module]struct{}
}

// NewTable construye la tabla validando roles y módulos. El mapa de entrada se copia.
func NewTable(grants map[entity.Role][]entity.Module) (*Table, error) {
	t := &Table{grants: make(map[entity.Role]map[entity.Module]struct{}, len(grants))}
	for role, modules := range grants {
		if !role.Valid() {
			return nil, fmt.Errorf("rbac: rol desconocido %q", role)
		}
		set := make(map[entity.Module]struct{}, len(modules))
		for _, m := range modules {
			if !m.Valid() {
				return nil, fmt.Errorf("rbac: módulo desconocido %q para rol %s", m, role)
			}
			set[m] = struct{}{}
		}
		t.grants[role] = set
	}
	return t, nil
}

// HasModuleAccess informa si el rol puede abrir el módulo. Rol vacío o desconocido → false.
func (t *Table) HasModuleAccess(role entity.Role, module entity.Module) bool {
	if t == nil || role == "" {
		return false
	}
	set, ok := t.grants[role]
	if !ok {
		return false
	}
	_, ok = set[module]
	return ok
}

// Modules devuelve una copia ordenada de los módulos del rol.
func (t *Table) Modules(role entity.Role) []entity.Module {
	if t == nil {
		return nil
	}
	out := lo.Keys(t.grants[role])
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Roles devuelve los roles presentes en la tabla.
func (t *Table) Roles() []entity.Role {
	if t == nil {
		return nil
	}
	out := lo.Keys(t.grants)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
