package dto

// AddProducerRequest alta de un productor.
type AddProducerRequest struct {
	Name    string
	Country string
}

// AddFruitRequest alta de una fruta. CreationDate usa el formato AAAA-MM-DD;
// Price y ExpirationDays llegan como texto desde la consola.
type AddFruitRequest struct {
	Name           string
	CreationDate   string
	Price          string
	ExpirationDays string
	ProducerID     int64
}

// UpdateFruitPriceRequest cambio porcentual del precio (positivo sube, negativo baja).
type UpdateFruitPriceRequest struct {
	FruitName  string
	Percentage string
}
