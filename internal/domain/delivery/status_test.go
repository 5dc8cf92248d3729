package delivery_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kosmp/BD-5-sem/internal/domain/delivery"
)

func at(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func TestProject(t *testing.T) {
	now := at(2024, time.March, 10, 15)

	cases := []struct {
		name     string
		delivery *time.Time
		want     string
	}{
		{"sin entrega", nil, "Pending"},
		{"ayer", ptr(at(2024, time.March, 9, 0)), "Delivered"},
		{"hace un mes", ptr(at(2024, time.February, 10, 0)), "Delivered"},
		{"hoy temprano", ptr(at(2024, time.March, 10, 0)), "Delivered today"},
		{"hoy más tarde", ptr(at(2024, time.March, 10, 23)), "Delivered today"},
		{"mañana", ptr(at(2024, time.March, 11, 0)), "1 day remaining"},
		{"en tres días", ptr(at(2024, time.March, 13, 0)), "3 days remaining"},
		{"cruza fin de mes", ptr(at(2024, time.April, 1, 0)), "22 days remaining"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, delivery.Project(tc.delivery, now).String())
		})
	}
}

func TestProject_DiasRestantes(t *testing.T) {
	now := at(2024, time.March, 10, 8)
	s := delivery.Project(ptr(at(2024, time.March, 13, 0)), now)
	assert.Equal(t, delivery.InTransit, s.Kind)
	assert.Equal(t, 3, s.DaysRemaining)
}

func TestProject_FechaDeEntregaEsCalendarioAunqueNowTengaZona(t *testing.T) {
	bogota := time.FixedZone("UTC-5", -5*60*60)
	now := time.Date(2026, time.October, 17, 10, 0, 0, 0, bogota)

	// Así llega un DATE desde pgx: medianoche UTC.
	today := time.Date(2026, time.October, 17, 0, 0, 0, 0, time.UTC)
	inThree := time.Date(2026, time.October, 20, 0, 0, 0, 0, time.UTC)
	yesterday := time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "Delivered today", delivery.Project(&today, now).String())
	assert.Equal(t, "3 days remaining", delivery.Project(&inThree, now).String())
	assert.Equal(t, "Delivered", delivery.Project(&yesterday, now).String())
}

func TestProject_FechaLocalDeNow(t *testing.T) {
	minsk := time.FixedZone("MSK", 3*60*60)
	// 00:30 del 11 en Minsk todavía es el 10 en UTC; cuenta la fecha local.
	now := time.Date(2024, time.March, 11, 0, 30, 0, 0, minsk)
	d := time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Delivered today", delivery.Project(&d, now).String())
}
