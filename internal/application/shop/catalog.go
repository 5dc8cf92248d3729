package shop

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kosmp/BD-5-sem/internal/application/dto"
	"github.com/kosmp/BD-5-sem/internal/application/session"
	"github.com/kosmp/BD-5-sem/internal/domain"
	"github.com/kosmp/BD-5-sem/internal/domain/access"
	"github.com/kosmp/BD-5-sem/internal/domain/entity"
	"github.com/kosmp/BD-5-sem/internal/domain/repository"
)

// DateLayout formato de fechas que se ingresan por consola.
const DateLayout = "2006-01-02"

var minPercentage = decimal.NewFromInt(-100)

// AddProducer da de alta un productor.
func (s *Shop) AddProducer(ctx context.Context, sess *session.Session, in dto.AddProducerRequest) (producer *entity.Producer, err error) {
	defer func() { s.report(sess, "add_producer", err) }()

	if _, err = s.authorize(ctx, sess, access.ActionAddProducer); err != nil {
		return nil, err
	}
	name, err := requireText("el nombre del productor", in.Name)
	if err != nil {
		return nil, err
	}
	country, err := requireText("el país", in.Country)
	if err != nil {
		return nil, err
	}

	producer = &entity.Producer{Name: name, Country: country}
	err = s.inTx(ctx, func(repos repository.Repositories) error {
		return repos.Producers.Create(ctx, producer)
	})
	if err != nil {
		return nil, err
	}
	return producer, nil
}

// AddFruit da de alta una fruta mediante la rutina AddFruit de la base.
func (s *Shop) AddFruit(ctx context.Context, sess *session.Session, in dto.AddFruitRequest) (fruit *entity.Fruit, err error) {
	defer func() { s.report(sess, "add_fruit", err) }()

	if _, err = s.authorize(ctx, sess, access.ActionAddFruit); err != nil {
		return nil, err
	}
	name, err := requireText("el nombre de la fruta", in.Name)
	if err != nil {
		return nil, err
	}
	created, err := time.ParseInLocation(DateLayout, strings.TrimSpace(in.CreationDate), s.now().Location())
	if err != nil {
		return nil, invalid("la fecha de creación debe tener el formato AAAA-MM-DD")
	}
	price, err := parseDecimal("el precio", in.Price)
	if err != nil {
		return nil, err
	}
	if !price.IsPositive() {
		return nil, invalid("el precio debe ser mayor que cero")
	}
	days, err := parsePositiveInt("el plazo de vencimiento", in.ExpirationDays)
	if err != nil {
		return nil, err
	}
	if in.ProducerID <= 0 {
		return nil, invalid("debe elegir un productor")
	}

	fruit = &entity.Fruit{
		Name:           name,
		CreationDate:   created,
		Price:          price,
		ExpirationDays: days,
		ProducerID:     in.ProducerID,
	}
	err = s.inTx(ctx, func(repos repository.Repositories) error {
		producer, err := repos.Producers.GetByID(ctx, in.ProducerID)
		if err != nil {
			return err
		}
		if producer == nil {
			return fmt.Errorf("%w: productor %d", domain.ErrNotFound, in.ProducerID)
		}
		return repos.Fruits.Add(ctx, fruit)
	})
	if err != nil {
		return nil, err
	}
	return fruit, nil
}

// DeleteFruit borra la fruta cuyo nombre coincide sin distinguir mayúsculas.
func (s *Shop) DeleteFruit(ctx context.Context, sess *session.Session, fruitName string) (err error) {
	defer func() { s.report(sess, "delete_fruit", err) }()

	if _, err = s.authorize(ctx, sess, access.ActionDeleteFruit); err != nil {
		return err
	}
	name, err := requireText("el nombre de la fruta", fruitName)
	if err != nil {
		return err
	}
	return s.inTx(ctx, func(repos repository.Repositories) error {
		fruits, err := repos.Fruits.FindByNameFold(ctx, name, lookupLimit)
		if err != nil {
			return err
		}
		fruit, err := single(fruits, "fruta", name)
		if err != nil {
			return err
		}
		return repos.Fruits.Delete(ctx, fruit.ID)
	})
}

// UpdateFruitPrice aplica un cambio porcentual mediante la rutina UpdateFruitPriceByPercentage.
// La fruta se busca por nombre exacto. Los pedidos existentes conservan su total.
func (s *Shop) UpdateFruitPrice(ctx context.Context, sess *session.Session, in dto.UpdateFruitPriceRequest) (err error) {
	defer func() { s.report(sess, "update_fruit_price", err) }()

	if _, err = s.authorize(ctx, sess, access.ActionUpdateFruitPrice); err != nil {
		return err
	}
	name, err := requireText("el nombre de la fruta", in.FruitName)
	if err != nil {
		return err
	}
	pct, err := parseDecimal("el porcentaje", in.Percentage)
	if err != nil {
		return err
	}
	if !pct.GreaterThan(minPercentage) {
		return invalid("el porcentaje debe ser mayor que %s", minPercentage)
	}
	return s.inTx(ctx, func(repos repository.Repositories) error {
		fruits, err := repos.Fruits.FindByName(ctx, name, lookupLimit)
		if err != nil {
			return err
		}
		fruit, err := single(fruits, "fruta", name)
		if err != nil {
			return err
		}
		return repos.Fruits.UpdatePriceByPercentage(ctx, fruit.ID, pct)
	})
}

// PurgeLowRatedReviews delega por completo en DeleteLowRatedReviewsForAllFruits.
func (s *Shop) PurgeLowRatedReviews(ctx context.Context, sess *session.Session) (err error) {
	defer func() { s.report(sess, "purge_low_rated_reviews", err) }()

	if _, err = s.authorize(ctx, sess, access.ActionPurgeLowRatedRevs); err != nil {
		return err
	}
	return s.inTx(ctx, func(repos repository.Repositories) error {
		return repos.Reviews.DeleteLowRated(ctx)
	})
}

// ListFruits catálogo completo ordenado por nombre.
func (s *Shop) ListFruits(ctx context.Context) ([]*entity.Fruit, error) {
	return s.repos.Fruits.List(ctx)
}

// ListProducers productores disponibles para el alta de frutas.
func (s *Shop) ListProducers(ctx context.Context) ([]*entity.Producer, error) {
	return s.repos.Producers.List(ctx)
}

// FruitDetails ficha de una fruta con su productor.
func (s *Shop) FruitDetails(ctx context.Context, fruitName string) (*entity.FruitDetails, error) {
	fruit, err := s.findFruit(ctx, fruitName)
	if err != nil {
		return nil, err
	}
	details, err := s.repos.Fruits.GetDetails(ctx, fruit.ID)
	if err != nil {
		return nil, err
	}
	if details == nil {
		return nil, fmt.Errorf("%w: fruta %q", domain.ErrNotFound, fruitName)
	}
	return details, nil
}

// FruitReviews reseñas de una fruta.
func (s *Shop) FruitReviews(ctx context.Context, fruitName string) ([]entity.ReviewView, error) {
	fruit, err := s.findFruit(ctx, fruitName)
	if err != nil {
		return nil, err
	}
	return s.repos.Reviews.ListByFruit(ctx, fruit.ID)
}

func (s *Shop) findFruit(ctx context.Context, fruitName string) (*entity.Fruit, error) {
	name, err := requireText("el nombre de la fruta", fruitName)
	if err != nil {
		return nil, err
	}
	fruits, err := s.repos.Fruits.FindByNameFold(ctx, name, lookupLimit)
	if err != nil {
		return nil, err
	}
	return single(fruits, "fruta", name)
}
