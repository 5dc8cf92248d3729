// Package access decide qué rol puede ejecutar cada flujo de trabajo.
// Es una tabla fija y pura: no lee la base ni la sesión.
package access

import (
	"fmt"

	"github.com/kosmp/BD-5-sem/internal/domain"
	"github.com/kosmp/BD-5-sem/internal/domain/entity"
)

// Action flujo protegido por el gate.
type Action string

const (
	ActionLeaveReview       Action = "leave_review"
	ActionPlaceOrder        Action = "place_order"
	ActionViewOrderHistory  Action = "view_order_history"
	ActionAddEmployee       Action = "add_employee"
	ActionAddProducer       Action = "add_producer"
	ActionAddFruit          Action = "add_fruit"
	ActionDeleteFruit       Action = "delete_fruit"
	ActionUpdateFruitPrice  Action = "update_fruit_price"
	ActionPurgeLowRatedRevs Action = "purge_low_rated_reviews"
)

// RolePermissions acciones permitidas por rol. El catálogo (productores y frutas)
// es exclusivo de Admin y Employee; Client no tiene permisos de escritura sobre él.
var RolePermissions = map[entity.Role][]Action{
	entity.RoleAdmin: {
		ActionAddEmployee,
		ActionAddProducer,
		ActionAddFruit,
		ActionDeleteFruit,
		ActionUpdateFruitPrice,
		ActionPurgeLowRatedRevs,
	},
	entity.RoleClient: {
		ActionLeaveReview,
		ActionPlaceOrder,
		ActionViewOrderHistory,
	},
	entity.RoleEmployee: {
		ActionAddProducer,
		ActionAddFruit,
		ActionDeleteFruit,
	},
}

// Allowed indica si role puede ejecutar action. RoleUnknown nunca tiene permisos.
func Allowed(role entity.Role, action Action) bool {
	for _, a := range RolePermissions[role] {
		if a == action {
			return true
		}
	}
	return false
}

// Check como Allowed pero devuelve un error que envuelve domain.ErrPermissionDenied.
func Check(role entity.Role, action Action) error {
	if !Allowed(role, action) {
		return fmt.Errorf("%w: el rol %s no puede ejecutar %s", domain.ErrPermissionDenied, role, action)
	}
	return nil
}
