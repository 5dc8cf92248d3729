package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/kosmp/BD-5-sem/internal/domain/entity"
)

// Todos los Find*/Get* devuelven (nil, nil) cuando no hay filas: la ausencia no es un error.

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	// Create inserta el usuario y completa user.ID.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	// FindByFirstName busca sin distinguir mayúsculas. Devuelve como máximo limit filas.
	FindByFirstName(ctx context.Context, firstName string, limit int) ([]*entity.User, error)
	FindByFirstNameAndPassword(ctx context.Context, firstName, password string, limit int) ([]*entity.User, error)
	FindByPhoneAndPassword(ctx context.Context, phone, password string) (*entity.User, error)
	UpdateRole(ctx context.Context, id int64, role entity.Role) error
}

// ClientRepository define el puerto de persistencia para Client.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByUserID(ctx context.Context, userID int64) (*entity.Client, error)
	// DeleteByUserID devuelve cuántas filas se borraron.
	DeleteByUserID(ctx context.Context, userID int64) (int64, error)
}

// EmployeeRepository define el puerto de persistencia para Employee y su relación con Position.
type EmployeeRepository interface {
	// Create inserta el empleado resolviendo Work_time por los límites del turno y completa employee.ID.
	Create(ctx context.Context, employee *entity.Employee) error
	AddPosition(ctx context.Context, employeeID, positionID int64) error
	GetByUserID(ctx context.Context, userID int64) (*entity.Employee, error)
	ListProfiles(ctx context.Context) ([]entity.EmployeeProfile, error)
}

// PositionRepository tabla de cargos (solo lectura).
type PositionRepository interface {
	List(ctx context.Context) ([]entity.Position, error)
}

// ProducerRepository define el puerto de persistencia para Producer.
type ProducerRepository interface {
	Create(ctx context.Context, producer *entity.Producer) error
	GetByID(ctx context.Context, id int64) (*entity.Producer, error)
	List(ctx context.Context) ([]*entity.Producer, error)
}

// FruitRepository define el puerto de persistencia para Fruit y las rutinas del catálogo.
type FruitRepository interface {
	List(ctx context.Context) ([]*entity.Fruit, error)
	// FindByNameFold compara LOWER(name); devuelve como máximo limit filas.
	FindByNameFold(ctx context.Context, name string, limit int) ([]*entity.Fruit, error)
	// FindByName compara el nombre exacto; devuelve como máximo limit filas.
	FindByName(ctx context.Context, name string, limit int) ([]*entity.Fruit, error)
	GetDetails(ctx context.Context, id int64) (*entity.FruitDetails, error)
	// Add delega en la rutina AddFruit, que calcula los campos derivados.
	Add(ctx context.Context, fruit *entity.Fruit) error
	// UpdatePriceByPercentage delega en la rutina UpdateFruitPriceByPercentage.
	UpdatePriceByPercentage(ctx context.Context, fruitID int64, percentage decimal.Decimal) error
	Delete(ctx context.Context, id int64) error
}

// OrderRepository define el puerto de persistencia para Order.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	// HistoryByClient pedidos del cliente con entrega opcional, del más nuevo al más viejo.
	HistoryByClient(ctx context.Context, clientID int64) ([]entity.OrderHistoryRow, error)
}

// ReviewRepository define el puerto de persistencia para Review.
type ReviewRepository interface {
	// Add delega en la rutina AddReview.
	Add(ctx context.Context, review *entity.Review) error
	ListByFruit(ctx context.Context, fruitID int64) ([]entity.ReviewView, error)
	// DeleteLowRated delega en DeleteLowRatedReviewsForAllFruits.
	DeleteLowRated(ctx context.Context) error
}

// Repositories agrupa los puertos atados a una misma conexión o transacción.
type Repositories struct {
	Users     UserRepository
	Clients   ClientRepository
	Employees EmployeeRepository
	Positions PositionRepository
	Producers ProducerRepository
	Fruits    FruitRepository
	Orders    OrderRepository
	Reviews   ReviewRepository
}
