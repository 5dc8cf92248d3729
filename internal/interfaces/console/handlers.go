package console

import (
	"context"
	"strconv"
	"strings"

	"github.com/kosmp/BD-5-sem/internal/application/dto"
	"github.com/kosmp/BD-5-sem/internal/domain/access"
	"github.com/kosmp/BD-5-sem/internal/domain/account"
	"github.com/kosmp/BD-5-sem/internal/domain/entity"
)

func (c *Console) register(ctx context.Context) error {
	var in dto.RegisterRequest
	var err error
	if in.FirstName, err = c.ask("Nombre: "); err != nil {
		return err
	}
	if in.LastName, err = c.ask("Apellido: "); err != nil {
		return err
	}
	if in.Phone, err = c.ask("Teléfono (" + account.PhoneExample + "): "); err != nil {
		return err
	}
	if in.Address, err = c.ask("Dirección: "); err != nil {
		return err
	}
	if in.Password, err = c.ask("Contraseña: "); err != nil {
		return err
	}
	user, err := c.engine.Register(ctx, c.sess, in)
	if err != nil {
		return err
	}
	c.printf("Registro completo. Bienvenido, %s.\n", user.FullName())
	return nil
}

func (c *Console) login(ctx context.Context) error {
	var in dto.LoginRequest
	var err error
	if in.Login, err = c.ask("Usuario: "); err != nil {
		return err
	}
	if in.Password, err = c.ask("Contraseña: "); err != nil {
		return err
	}
	user, err := c.engine.Login(ctx, c.sess, in)
	if err != nil {
		return err
	}
	c.printf("Bienvenido, %s.\n", user.FullName())
	return nil
}

func (c *Console) history(ctx context.Context) error {
	items, err := c.engine.OrderHistory(ctx, c.sess)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		c.println("No tiene pedidos.")
		return nil
	}
	c.renderHistory(items)
	return nil
}

func (c *Console) fruits(ctx context.Context) error {
	list, err := c.engine.ListFruits(ctx)
	if err != nil {
		return err
	}
	c.renderFruits(list)
	return nil
}

// fruitMenu ficha de la fruta y submenú de reseñas y compra.
func (c *Console) fruitMenu(ctx context.Context) error {
	name, err := c.ask("Nombre de la fruta: ")
	if err != nil {
		return err
	}
	details, err := c.engine.FruitDetails(ctx, name)
	if err != nil {
		return err
	}
	c.renderFruitDetails(details)

	c.println("1. Reseñas")
	c.println("2. Dejar una reseña")
	c.println("3. Comprar")
	choice, err := c.ask("\nElija una operación: ")
	if err != nil {
		return err
	}
	switch choice {
	case "1":
		reviews, err := c.engine.FruitReviews(ctx, details.Name)
		if err != nil {
			return err
		}
		if len(reviews) == 0 {
			c.printf("No hay reseñas de %q.\n", details.Name)
			return nil
		}
		c.renderReviews(reviews)
	case "2":
		if err := c.engine.Allowed(ctx, c.sess, access.ActionLeaveReview); err != nil {
			return err
		}
		in := dto.LeaveReviewRequest{FruitName: details.Name}
		if in.Text, err = c.ask("Texto de la reseña: "); err != nil {
			return err
		}
		if in.Evaluation, err = c.ask("Evaluación (1-5): "); err != nil {
			return err
		}
		if _, err := c.engine.LeaveReview(ctx, c.sess, in); err != nil {
			return err
		}
		c.println("Reseña publicada.")
	case "3":
		if err := c.engine.Allowed(ctx, c.sess, access.ActionPlaceOrder); err != nil {
			return err
		}
		in := dto.PlaceOrderRequest{FruitName: details.Name}
		if in.Quantity, err = c.ask("Cantidad: "); err != nil {
			return err
		}
		order, err := c.engine.PlaceOrder(ctx, c.sess, in)
		if err != nil {
			return err
		}
		c.printf("Pedido creado. Total: %s\n", c.money(order.TotalPrice))
	}
	return nil
}

func (c *Console) employees(ctx context.Context) error {
	list, err := c.engine.ListEmployees(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		c.println("No hay empleados.")
		return nil
	}
	c.renderEmployees(list)
	return nil
}

func (c *Console) addEmployee(ctx context.Context) error {
	if err := c.engine.Allowed(ctx, c.sess, access.ActionAddEmployee); err != nil {
		return err
	}
	var in dto.AddEmployeeRequest
	var err error
	if in.FirstName, err = c.ask("Nombre del usuario a promover: "); err != nil {
		return err
	}
	if in.Salary, err = c.ask("Salario: "); err != nil {
		return err
	}
	if in.Shift, err = c.selectShift(); err != nil {
		return err
	}
	if in.PositionIDs, err = c.selectPositions(ctx); err != nil {
		return err
	}
	emp, err := c.engine.AddEmployee(ctx, c.sess, in)
	if err != nil {
		return err
	}
	c.printf("Empleado %d creado con %d cargo(s).\n", emp.ID, len(emp.PositionIDs))
	return nil
}

func (c *Console) selectShift() (entity.Shift, error) {
	c.println("Turnos:")
	for _, s := range entity.Shifts {
		c.printf("%d. %s\n", int(s), s)
	}
	for {
		raw, err := c.ask("Número de turno ('q' para cancelar): ")
		if err != nil {
			return 0, err
		}
		if strings.EqualFold(raw, "q") {
			return 0, errCancelled
		}
		n, err := strconv.Atoi(raw)
		if err == nil && entity.Shift(n).Valid() {
			return entity.Shift(n), nil
		}
		c.println("Número de turno incorrecto.")
	}
}

// selectPositions pide cargos hasta "q". Una ronda vacía se repite hasta positionAttempts veces.
func (c *Console) selectPositions(ctx context.Context) ([]int64, error) {
	positions, err := c.engine.ListPositions(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[int64]bool, len(positions))
	c.println("Cargos disponibles:")
	for _, p := range positions {
		known[p.ID] = true
		c.printf("%d. %s\n", p.ID, p.Name)
	}

	for attempt := 0; attempt < positionAttempts; attempt++ {
		var selected []int64
		for {
			raw, err := c.ask("Número de cargo ('q' para terminar): ")
			if err != nil {
				return nil, err
			}
			if strings.EqualFold(raw, "q") || raw == "" {
				break
			}
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || !known[id] {
				c.println("Número de cargo incorrecto.")
				continue
			}
			selected = append(selected, id)
			c.printf("Cargo %d agregado.\n", id)
		}
		if len(selected) > 0 {
			return selected, nil
		}
		c.println("Debe elegir al menos un cargo.")
	}
	return nil, errCancelled
}

func (c *Console) addProducer(ctx context.Context) error {
	if err := c.engine.Allowed(ctx, c.sess, access.ActionAddProducer); err != nil {
		return err
	}
	var in dto.AddProducerRequest
	var err error
	if in.Name, err = c.ask("Nombre del productor: "); err != nil {
		return err
	}
	if in.Country, err = c.ask("País: "); err != nil {
		return err
	}
	if _, err := c.engine.AddProducer(ctx, c.sess, in); err != nil {
		return err
	}
	c.println("Productor agregado.")
	return nil
}

func (c *Console) addFruit(ctx context.Context) error {
	if err := c.engine.Allowed(ctx, c.sess, access.ActionAddFruit); err != nil {
		return err
	}
	var in dto.AddFruitRequest
	var err error
	if in.Name, err = c.ask("Nombre de la fruta: "); err != nil {
		return err
	}
	if in.CreationDate, err = c.ask("Fecha de creación (AAAA-MM-DD): "); err != nil {
		return err
	}
	if in.Price, err = c.ask("Precio: "); err != nil {
		return err
	}
	if in.ExpirationDays, err = c.ask("Vencimiento (días): "); err != nil {
		return err
	}
	if in.ProducerID, err = c.selectProducer(ctx); err != nil {
		return err
	}
	if _, err := c.engine.AddFruit(ctx, c.sess, in); err != nil {
		return err
	}
	c.println("Fruta agregada.")
	return nil
}

// selectProducer repite el prompt hasta un número válido o "q".
func (c *Console) selectProducer(ctx context.Context) (int64, error) {
	producers, err := c.engine.ListProducers(ctx)
	if err != nil {
		return 0, err
	}
	if len(producers) == 0 {
		c.println("No hay productores cargados.")
		return 0, errCancelled
	}
	known := make(map[int64]bool, len(producers))
	c.println("Productores:")
	for _, p := range producers {
		known[p.ID] = true
		c.printf("%d. %s (%s)\n", p.ID, p.Name, p.Country)
	}
	for {
		raw, err := c.ask("Número de productor ('q' para cancelar): ")
		if err != nil {
			return 0, err
		}
		if strings.EqualFold(raw, "q") {
			return 0, errCancelled
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err == nil && known[id] {
			return id, nil
		}
		c.println("Número de productor incorrecto.")
	}
}

func (c *Console) deleteFruit(ctx context.Context) error {
	if err := c.engine.Allowed(ctx, c.sess, access.ActionDeleteFruit); err != nil {
		return err
	}
	name, err := c.ask("Nombre de la fruta a eliminar: ")
	if err != nil {
		return err
	}
	if err := c.engine.DeleteFruit(ctx, c.sess, name); err != nil {
		return err
	}
	c.printf("Fruta %q eliminada.\n", name)
	return nil
}

func (c *Console) updatePrice(ctx context.Context) error {
	if err := c.engine.Allowed(ctx, c.sess, access.ActionUpdateFruitPrice); err != nil {
		return err
	}
	var in dto.UpdateFruitPriceRequest
	var err error
	if in.FruitName, err = c.ask("Nombre de la fruta: "); err != nil {
		return err
	}
	if in.Percentage, err = c.ask("Porcentaje de cambio: "); err != nil {
		return err
	}
	if err := c.engine.UpdateFruitPrice(ctx, c.sess, in); err != nil {
		return err
	}
	c.println("Precio actualizado.")
	return nil
}

func (c *Console) purge(ctx context.Context) error {
	if err := c.engine.PurgeLowRatedReviews(ctx, c.sess); err != nil {
		return err
	}
	c.println("Reseñas con mala evaluación eliminadas.")
	return nil
}
