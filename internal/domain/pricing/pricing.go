package pricing

import "github.com/shopspring/decimal"

// OrderTotal precio total de un pedido: precio unitario × cantidad, redondeado a centavos.
// El resultado se guarda como foto en el pedido.
func OrderTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}
