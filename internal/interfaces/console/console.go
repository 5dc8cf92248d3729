// Package console es la superficie de texto de la tienda: menú principal, submenú de
// fruta, prompts y tablas. No decide permisos; todo pasa por el motor de flujos.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kosmp/BD-5-sem/internal/application/dto"
	"github.com/kosmp/BD-5-sem/internal/application/session"
	"github.com/kosmp/BD-5-sem/internal/domain"
	"github.com/kosmp/BD-5-sem/internal/domain/access"
	"github.com/kosmp/BD-5-sem/internal/domain/entity"
)

// Engine flujos que la consola necesita. *shop.Shop lo implementa.
type Engine interface {
	Allowed(ctx context.Context, sess *session.Session, action access.Action) error

	Register(ctx context.Context, sess *session.Session, in dto.RegisterRequest) (*entity.User, error)
	Login(ctx context.Context, sess *session.Session, in dto.LoginRequest) (*entity.User, error)
	Logout(sess *session.Session)
	WhoAmI(ctx context.Context, sess *session.Session) (*entity.User, error)

	PlaceOrder(ctx context.Context, sess *session.Session, in dto.PlaceOrderRequest) (*entity.Order, error)
	LeaveReview(ctx context.Context, sess *session.Session, in dto.LeaveReviewRequest) (*entity.Review, error)
	OrderHistory(ctx context.Context, sess *session.Session) ([]dto.OrderHistoryItem, error)

	AddEmployee(ctx context.Context, sess *session.Session, in dto.AddEmployeeRequest) (*entity.Employee, error)
	ListEmployees(ctx context.Context) ([]entity.EmployeeProfile, error)
	ListPositions(ctx context.Context) ([]entity.Position, error)

	AddProducer(ctx context.Context, sess *session.Session, in dto.AddProducerRequest) (*entity.Producer, error)
	AddFruit(ctx context.Context, sess *session.Session, in dto.AddFruitRequest) (*entity.Fruit, error)
	DeleteFruit(ctx context.Context, sess *session.Session, fruitName string) error
	UpdateFruitPrice(ctx context.Context, sess *session.Session, in dto.UpdateFruitPriceRequest) error
	PurgeLowRatedReviews(ctx context.Context, sess *session.Session) error

	ListFruits(ctx context.Context) ([]*entity.Fruit, error)
	ListProducers(ctx context.Context) ([]*entity.Producer, error)
	FruitDetails(ctx context.Context, fruitName string) (*entity.FruitDetails, error)
	FruitReviews(ctx context.Context, fruitName string) ([]entity.ReviewView, error)
}

// positionAttempts rondas de selección de cargos antes de cancelar el alta.
const positionAttempts = 3

// errCancelled el usuario abandonó un prompt con "q".
var errCancelled = errors.New("operación cancelada")

// Console lee comandos línea a línea y escribe en out.
type Console struct {
	engine Engine
	sess   *session.Session
	in     *bufio.Scanner
	out    io.Writer
	p      *message.Printer
}

// New construye la consola. Los números se muestran con el formato de lang.
func New(engine Engine, sess *session.Session, in io.Reader, out io.Writer, lang language.Tag) *Console {
	return &Console{
		engine: engine,
		sess:   sess,
		in:     bufio.NewScanner(in),
		out:    out,
		p:      message.NewPrinter(lang),
	}
}

// Run muestra el menú hasta que el usuario elige salir, se termina la entrada o ctx se cancela.
func (c *Console) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.menu(ctx)
		choice, err := c.ask("\nElija una operación: ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if choice == "0" {
			c.println("Hasta luego.")
			return nil
		}
		err = c.dispatch(ctx, choice)
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, errCancelled):
			c.println("Operación cancelada.")
		case err != nil:
			c.fail(err)
		}
	}
}

func (c *Console) menu(ctx context.Context) {
	c.println("")
	if user, err := c.engine.WhoAmI(ctx, c.sess); err == nil {
		c.printf("Sesión: %s (%s)\n", user.FullName(), user.Role)
		c.println("1. Cerrar sesión")
		c.println("2. Historial de mis pedidos")
	} else {
		c.println("1. Registrarse")
		c.println("2. Iniciar sesión")
	}
	c.println("3. Lista de frutas")
	c.println("4. Información de una fruta y operaciones")
	c.println("5. Lista de empleados")
	c.println("6. Agregar empleado")
	c.println("7. Agregar productor")
	c.println("8. Agregar fruta")
	c.println("9. Eliminar fruta")
	c.println("10. Cambiar el precio de una fruta")
	c.println("11. Eliminar las reseñas con mala evaluación")
	c.println("0. Salir")
}

func (c *Console) dispatch(ctx context.Context, choice string) error {
	switch choice {
	case "1":
		if c.sess.Authenticated() {
			c.engine.Logout(c.sess)
			c.println("Sesión cerrada.")
			return nil
		}
		return c.register(ctx)
	case "2":
		if c.sess.Authenticated() {
			return c.history(ctx)
		}
		return c.login(ctx)
	case "3":
		return c.fruits(ctx)
	case "4":
		return c.fruitMenu(ctx)
	case "5":
		return c.employees(ctx)
	case "6":
		return c.addEmployee(ctx)
	case "7":
		return c.addProducer(ctx)
	case "8":
		return c.addFruit(ctx)
	case "9":
		return c.deleteFruit(ctx)
	case "10":
		return c.updatePrice(ctx)
	case "11":
		return c.purge(ctx)
	}
	c.println("Opción incorrecta, intente de nuevo.")
	return nil
}

// fail traduce los errores del motor a mensajes para el usuario.
func (c *Console) fail(err error) {
	switch {
	case errors.Is(err, domain.ErrAuthRequired):
		c.println("Debe iniciar sesión para esta operación.")
	case errors.Is(err, domain.ErrPermissionDenied):
		c.println("No tiene permisos para esta operación.")
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.println("Usuario o contraseña incorrectos.")
	case errors.Is(err, domain.ErrInvalidInput):
		c.printf("Datos inválidos: %s\n", detail(err, domain.ErrInvalidInput))
	case errors.Is(err, domain.ErrNotFound):
		c.printf("No encontrado: %s\n", detail(err, domain.ErrNotFound))
	case errors.Is(err, domain.ErrAmbiguousMatch):
		c.printf("Hay más de una coincidencia: %s\n", detail(err, domain.ErrAmbiguousMatch))
	case errors.Is(err, domain.ErrDuplicate):
		c.println("Ya existe un registro con esos datos.")
	case errors.Is(err, domain.ErrConflict):
		c.printf("No se puede realizar: %s\n", detail(err, domain.ErrConflict))
	case errors.Is(err, domain.ErrTransactionFailed):
		c.println("La operación falló y no se guardó ningún cambio.")
	default:
		c.printf("Error inesperado: %v\n", err)
	}
}

// detail quita el prefijo del sentinel para no repetirlo en pantalla.
func detail(err, kind error) string {
	msg := strings.TrimPrefix(err.Error(), kind.Error())
	msg = strings.TrimPrefix(msg, ": ")
	if msg == "" {
		return kind.Error()
	}
	return msg
}

// ask muestra prompt y lee una línea sin espacios alrededor.
func (c *Console) ask(prompt string) (string, error) {
	c.printf("%s", prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *Console) printf(format string, args ...any) {
	c.p.Fprintf(c.out, format, args...)
}

// money formatea un importe con dos decimales sin pasar por float64. La parte entera usa
// la agrupación del idioma de la consola; el separador decimal es la coma.
func (c *Console) money(d decimal.Decimal) string {
	r := d.Round(2)
	whole := r.Truncate(0)
	cents := r.Sub(whole).Abs().Shift(2).IntPart()
	sign := ""
	if r.IsNegative() && whole.IsZero() {
		sign = "-"
	}
	return sign + c.p.Sprintf("%d", whole.IntPart()) + fmt.Sprintf(",%02d", cents)
}
