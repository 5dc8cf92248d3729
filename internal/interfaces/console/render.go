package console

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/kosmp/BD-5-sem/internal/application/dto"
	"github.com/kosmp/BD-5-sem/internal/domain/delivery"
	"github.com/kosmp/BD-5-sem/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// table escribe filas separadas por tabulaciones alineadas en columnas.
func (c *Console) table(header string, rows [][]string) {
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	c.p.Fprintln(w, header)
	for _, r := range rows {
		c.p.Fprintln(w, strings.Join(r, "\t"))
	}
	_ = w.Flush()
}

func (c *Console) renderFruits(list []*entity.Fruit) {
	rows := make([][]string, 0, len(list))
	for _, f := range list {
		rows = append(rows, []string{f.Name, c.money(f.Price)})
	}
	c.table("Fruta\tPrecio", rows)
}

func (c *Console) renderFruitDetails(d *entity.FruitDetails) {
	c.table("", [][]string{
		{"ID", c.p.Sprint(d.ID)},
		{"Nombre", d.Name},
		{"Fecha de creación", d.CreationDate.Format(dateLayout)},
		{"Precio", c.money(d.Price)},
		{"Vencimiento", d.ExpirationDate.Format(dateLayout)},
		{"Productor", d.ProducerName + " (" + d.ProducerCountry + ")"},
	})
}

func (c *Console) renderReviews(list []entity.ReviewView) {
	rows := make([][]string, 0, len(list))
	for _, r := range list {
		rows = append(rows, []string{
			c.p.Sprint(r.ID), r.Text, c.p.Sprint(r.Evaluation), r.AuthorFirstName + " " + r.AuthorLastName,
		})
	}
	c.table("ID\tReseña\tEvaluación\tCliente", rows)
}

func (c *Console) renderEmployees(list []entity.EmployeeProfile) {
	rows := make([][]string, 0, len(list))
	for _, e := range list {
		rows = append(rows, []string{
			c.p.Sprint(e.ID), e.FirstName, e.LastName, c.money(e.Salary),
			e.ShiftFrom, e.ShiftTo, strings.Join(e.Positions, ", "),
		})
	}
	c.table("ID\tNombre\tApellido\tSalario\tInicio\tFin\tCargos", rows)
}

func (c *Console) renderHistory(items []dto.OrderHistoryItem) {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		delivered := "-"
		if it.DeliveryDate != nil {
			delivered = it.DeliveryDate.Format(dateLayout)
		}
		rows = append(rows, []string{
			it.CreationDate.Format(dateLayout), delivered, it.FruitName,
			c.money(it.TotalPrice), c.p.Sprint(it.Quantity), statusText(it.Status),
		})
	}
	c.table("Creado\tEntrega\tFruta\tTotal\tCantidad\tEstado", rows)
}

// statusText estado de entrega para la tabla de historial.
func statusText(s delivery.Status) string {
	switch s.Kind {
	case delivery.Delivered:
		return "Entregado"
	case delivery.DeliveredToday:
		return "Entregado hoy"
	case delivery.InTransit:
		if s.DaysRemaining == 1 {
			return "Falta 1 día"
		}
		return fmt.Sprintf("Faltan %d días", s.DaysRemaining)
	default:
		return "Pendiente"
	}
}
