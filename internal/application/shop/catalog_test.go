package shop_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kosmp/BD-5-sem/internal/application/dto"
	"github.com/kosmp/BD-5-sem/internal/domain"
	"github.com/kosmp/BD-5-sem/internal/domain/entity"
)

func pear(producerID int64) dto.AddFruitRequest {
	return dto.AddFruitRequest{Name: "Pear", CreationDate: "2024-03-01", Price: "2,40", ExpirationDays: "14", ProducerID: producerID}
}

func TestAddProducer(t *testing.T) {
	f := setup(t)
	f.loginAs(f.employeeID)

	p, err := f.shop.AddProducer(f.ctx, f.sess, dto.AddProducerRequest{Name: " Agro Sur ", Country: "Chile"})
	require.NoError(t, err)
	assert.Equal(t, "Agro Sur", p.Name)
	assert.Contains(t, f.store.st.producers, p.ID)

	_, err = f.shop.AddProducer(f.ctx, f.sess, dto.AddProducerRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddFruit(t *testing.T) {
	f := setup(t)
	f.loginAs(f.adminID)

	fruit, err := f.shop.AddFruit(f.ctx, f.sess, pear(f.producerID))
	require.NoError(t, err)
	assert.True(t, fruit.Price.Equal(decimal.RequireFromString("2.40")))
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), fruit.CreationDate)
	assert.Equal(t, 14, fruit.ExpirationDays)

	details, err := f.shop.FruitDetails(f.ctx, "PEAR")
	require.NoError(t, err)
	assert.Equal(t, "Sady Belarusi", details.ProducerName)
	assert.Equal(t, "Belarus", details.ProducerCountry)
}

func TestAddFruit_Validaciones(t *testing.T) {
	f := setup(t)
	f.loginAs(f.employeeID)

	cases := map[string]func(*dto.AddFruitRequest){
		"fecha":       func(in *dto.AddFruitRequest) { in.CreationDate = "01.03.2024" },
		"precio cero": func(in *dto.AddFruitRequest) { in.Price = "0" },
		"precio":      func(in *dto.AddFruitRequest) { in.Price = "barato" },
		"vencimiento": func(in *dto.AddFruitRequest) { in.ExpirationDays = "0" },
		"productor":   func(in *dto.AddFruitRequest) { in.ProducerID = 0 },
		"nombre":      func(in *dto.AddFruitRequest) { in.Name = "" },
	}
	for name, mutate := range cases {
		in := pear(f.producerID)
		mutate(&in)
		_, err := f.shop.AddFruit(f.ctx, f.sess, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
	}
	assert.Zero(t, f.store.txBegins)

	_, err := f.shop.AddFruit(f.ctx, f.sess, pear(4242))
	assert.ErrorIs(t, err, domain.ErrNotFound, "productor inexistente")
	assert.Zero(t, f.store.writes)
}

func TestDeleteFruit(t *testing.T) {
	f := setup(t)
	f.loginAs(f.employeeID)

	err := f.shop.DeleteFruit(f.ctx, f.sess, "Durian")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, f.shop.DeleteFruit(f.ctx, f.sess, "aPPle"))
	assert.NotContains(t, f.store.st.fruits, f.appleID)
}

func TestDeleteFruit_ConPedidosEsConflicto(t *testing.T) {
	f := setup(t)
	f.loginAs(f.employeeID)
	f.store.failOn["Fruits.Delete"] = fmt.Errorf("%w: la fila todavía está referenciada (orders_fruit_id_fkey)", domain.ErrConflict)

	err := f.shop.DeleteFruit(f.ctx, f.sess, "Apple")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrTransactionFailed, "el error ya tiene tipo de dominio")
	assert.Contains(t, f.store.st.fruits, f.appleID)
}

func TestUpdateFruitPrice(t *testing.T) {
	f := setup(t)
	f.loginAs(f.adminID)

	require.NoError(t, f.shop.UpdateFruitPrice(f.ctx, f.sess, dto.UpdateFruitPriceRequest{FruitName: "Apple", Percentage: "10"}))
	assert.True(t, f.store.st.fruits[f.appleID].Price.Equal(decimal.RequireFromString("3.85")))

	err := f.shop.UpdateFruitPrice(f.ctx, f.sess, dto.UpdateFruitPriceRequest{FruitName: "apple", Percentage: "10"})
	assert.ErrorIs(t, err, domain.ErrNotFound, "la búsqueda es por nombre exacto")

	err = f.shop.UpdateFruitPrice(f.ctx, f.sess, dto.UpdateFruitPriceRequest{FruitName: "Apple", Percentage: "-100"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateFruitPrice_FallaNoModifica(t *testing.T) {
	f := setup(t)
	f.loginAs(f.adminID)
	f.store.failOn["Fruits.UpdatePriceByPercentage"] = errInjected

	err := f.shop.UpdateFruitPrice(f.ctx, f.sess, dto.UpdateFruitPriceRequest{FruitName: "Apple", Percentage: "10"})
	assert.ErrorIs(t, err, domain.ErrTransactionFailed)
	assert.True(t, f.store.st.fruits[f.appleID].Price.Equal(decimal.RequireFromString("3.50")))
}

func TestPurgeLowRatedReviews(t *testing.T) {
	f := setup(t)
	client, _ := f.store.clientOf(f.clientID)
	f.store.st.reviews[1] = entity.Review{ID: 1, Text: "mala", Evaluation: 1, ClientID: client.ID, FruitID: f.appleID}
	f.store.st.reviews[2] = entity.Review{ID: 2, Text: "buena", Evaluation: 5, ClientID: client.ID, FruitID: f.appleID}

	f.loginAs(f.employeeID)
	assert.ErrorIs(t, f.shop.PurgeLowRatedReviews(f.ctx, f.sess), domain.ErrPermissionDenied)
	assert.Len(t, f.store.st.reviews, 2)

	f.loginAs(f.adminID)
	require.NoError(t, f.shop.PurgeLowRatedReviews(f.ctx, f.sess))
	assert.Len(t, f.store.st.reviews, 1)
	assert.Contains(t, f.store.st.reviews, int64(2))
}

func TestLecturasDelCatalogo(t *testing.T) {
	f := setup(t)
	f.store.seedFruit("Banana", "1.10", f.producerID)

	fruits, err := f.shop.ListFruits(f.ctx)
	require.NoError(t, err)
	require.Len(t, fruits, 2)
	assert.Equal(t, "Apple", fruits[0].Name)

	producers, err := f.shop.ListProducers(f.ctx)
	require.NoError(t, err)
	assert.Len(t, producers, 1)

	_, err = f.shop.FruitDetails(f.ctx, "Durian")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.shop.FruitReviews(f.ctx, " ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
