package shop_test

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kosmp/BD-5-sem/internal/domain"
	"github.com/kosmp/BD-5-sem/internal/domain/entity"
	"github.com/kosmp/BD-5-sem/internal/domain/repository"
)

// memState tablas en memoria. clone permite simular Rollback.
type memState struct {
	users      map[int64]entity.User
	clients    map[int64]entity.Client
	employees  map[int64]entity.Employee
	positions  []entity.Position
	producers  map[int64]entity.Producer
	fruits     map[int64]entity.Fruit
	orders     map[int64]entity.Order
	deliveries map[int64]entity.Delivery // por OrderID
	reviews    map[int64]entity.Review
	nextID     int64
}

func (st memState) clone() memState {
	c := st
	c.users = cloneMap(st.users)
	c.clients = cloneMap(st.clients)
	c.employees = make(map[int64]entity.Employee, len(st.employees))
	for k, v := range st.employees {
		v.PositionIDs = append([]int64(nil), v.PositionIDs...)
		c.employees[k] = v
	}
	c.positions = append([]entity.Position(nil), st.positions...)
	c.producers = cloneMap(st.producers)
	c.fruits = cloneMap(st.fruits)
	c.orders = cloneMap(st.orders)
	c.deliveries = cloneMap(st.deliveries)
	c.reviews = cloneMap(st.reviews)
	return c
}

func cloneMap[V any](m map[int64]V) map[int64]V {
	out := make(map[int64]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// memStore implementa todos los repositorios y el TxRunner sobre memState.
// failOn inyecta un error en la operación indicada ("Employees.AddPosition", ...).
type memStore struct {
	st       memState
	failOn   map[string]error
	writes   int
	txBegins int
	reads    int
}

func newMemStore() *memStore {
	return &memStore{
		st: memState{
			users:      map[int64]entity.User{},
			clients:    map[int64]entity.Client{},
			employees:  map[int64]entity.Employee{},
			positions:  []entity.Position{{ID: 1, Name: "Cajero"}, {ID: 2, Name: "Almacenero"}, {ID: 3, Name: "Gerente"}},
			producers:  map[int64]entity.Producer{},
			fruits:     map[int64]entity.Fruit{},
			orders:     map[int64]entity.Order{},
			deliveries: map[int64]entity.Delivery{},
			reviews:    map[int64]entity.Review{},
			nextID:     100,
		},
		failOn: map[string]error{},
	}
}

var errInjected = errors.New("falla inyectada")

func (m *memStore) id() int64 {
	m.st.nextID++
	return m.st.nextID
}

func (m *memStore) hook(op string) error {
	if err, ok := m.failOn[op]; ok {
		return err
	}
	return nil
}

func (m *memStore) write(op string) error {
	if err := m.hook(op); err != nil {
		return err
	}
	m.writes++
	return nil
}

// Run toma una foto del estado y la restaura si fn falla.
func (m *memStore) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	m.txBegins++
	snapshot := m.st.clone()
	writes := m.writes
	if err := fn(m.repos()); err != nil {
		m.st = snapshot
		m.writes = writes
		return err
	}
	return nil
}

func (m *memStore) repos() repository.Repositories {
	return repository.Repositories{
		Users:     memUsers{m},
		Clients:   memClients{m},
		Employees: memEmployees{m},
		Positions: memPositions{m},
		Producers: memProducers{m},
		Fruits:    memFruits{m},
		Orders:    memOrders{m},
		Reviews:   memReviews{m},
	}
}

// ── fixtures ────────────────────────────────────────────────────────────────

func (m *memStore) seedUser(first, last, phone, password string, role entity.Role) int64 {
	u := entity.User{ID: m.id(), FirstName: first, LastName: last, Phone: phone, Password: password, Role: role}
	m.st.users[u.ID] = u
	if role == entity.RoleClient {
		c := entity.Client{ID: m.id(), UserID: u.ID, Address: "Minsk"}
		m.st.clients[c.ID] = c
	}
	return u.ID
}

func (m *memStore) seedProducer(name, country string) int64 {
	p := entity.Producer{ID: m.id(), Name: name, Country: country}
	m.st.producers[p.ID] = p
	return p.ID
}

func (m *memStore) seedFruit(name, price string, producerID int64) int64 {
	f := entity.Fruit{ID: m.id(), Name: name, Price: decimal.RequireFromString(price), ExpirationDays: 10, ProducerID: producerID}
	m.st.fruits[f.ID] = f
	return f.ID
}

func (m *memStore) clientOf(userID int64) (entity.Client, bool) {
	for _, c := range m.st.clients {
		if c.UserID == userID {
			return c, true
		}
	}
	return entity.Client{}, false
}

func (m *memStore) employeeOf(userID int64) (entity.Employee, bool) {
	for _, e := range m.st.employees {
		if e.UserID == userID {
			return e, true
		}
	}
	return entity.Employee{}, false
}

// ── Users ───────────────────────────────────────────────────────────────────

type memUsers struct{ m *memStore }

func (r memUsers) Create(_ context.Context, u *entity.User) error {
	if err := r.m.write("Users.Create"); err != nil {
		return err
	}
	for _, existing := range r.m.st.users {
		if existing.Phone == u.Phone {
			return domain.ErrDuplicate
		}
	}
	u.ID = r.m.id()
	r.m.st.users[u.ID] = *u
	return nil
}

func (r memUsers) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.m.reads++
	if err := r.m.hook("Users.GetByID"); err != nil {
		return nil, err
	}
	u, ok := r.m.st.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r memUsers) filter(limit int, keep func(entity.User) bool) []*entity.User {
	var ids []int64
	for id, u := range r.m.st.users {
		if keep(u) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var out []*entity.User
	for _, id := range ids {
		if len(out) == limit {
			break
		}
		u := r.m.st.users[id]
		out = append(out, &u)
	}
	return out
}

func (r memUsers) FindByFirstName(_ context.Context, firstName string, limit int) ([]*entity.User, error) {
	return r.filter(limit, func(u entity.User) bool { return strings.EqualFold(u.FirstName, firstName) }), nil
}

func (r memUsers) FindByFirstNameAndPassword(_ context.Context, firstName, password string, limit int) ([]*entity.User, error) {
	return r.filter(limit, func(u entity.User) bool { return u.FirstName == firstName && u.Password == password }), nil
}

func (r memUsers) FindByPhoneAndPassword(_ context.Context, phone, password string) (*entity.User, error) {
	list := r.filter(1, func(u entity.User) bool { return u.Phone == phone && u.Password == password })
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (r memUsers) UpdateRole(_ context.Context, id int64, role entity.Role) error {
	if err := r.m.write("Users.UpdateRole"); err != nil {
		return err
	}
	u := r.m.st.users[id]
	u.Role = role
	r.m.st.users[id] = u
	return nil
}

// ── Clients ─────────────────────────────────────────────────────────────────

type memClients struct{ m *memStore }

func (r memClients) Create(_ context.Context, c *entity.Client) error {
	if err := r.m.write("Clients.Create"); err != nil {
		return err
	}
	c.ID = r.m.id()
	r.m.st.clients[c.ID] = *c
	return nil
}

func (r memClients) GetByUserID(_ context.Context, userID int64) (*entity.Client, error) {
	c, ok := r.m.clientOf(userID)
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r memClients) DeleteByUserID(_ context.Context, userID int64) (int64, error) {
	if err := r.m.write("Clients.DeleteByUserID"); err != nil {
		return 0, err
	}
	var n int64
	for id, c := range r.m.st.clients {
		if c.UserID == userID {
			delete(r.m.st.clients, id)
			n++
		}
	}
	return n, nil
}

// ── Employees / Positions ───────────────────────────────────────────────────

type memEmployees struct{ m *memStore }

func (r memEmployees) Create(_ context.Context, e *entity.Employee) error {
	if err := r.m.write("Employees.Create"); err != nil {
		return err
	}
	e.ID = r.m.id()
	stored := *e
	stored.PositionIDs = nil
	r.m.st.employees[e.ID] = stored
	return nil
}

func (r memEmployees) AddPosition(_ context.Context, employeeID, positionID int64) error {
	if err := r.m.write("Employees.AddPosition"); err != nil {
		return err
	}
	e, ok := r.m.st.employees[employeeID]
	if !ok {
		return domain.ErrNotFound
	}
	e.PositionIDs = append(e.PositionIDs, positionID)
	r.m.st.employees[employeeID] = e
	return nil
}

func (r memEmployees) GetByUserID(_ context.Context, userID int64) (*entity.Employee, error) {
	e, ok := r.m.employeeOf(userID)
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r memEmployees) ListProfiles(_ context.Context) ([]entity.EmployeeProfile, error) {
	var out []entity.EmployeeProfile
	for _, e := range r.m.st.employees {
		u := r.m.st.users[e.UserID]
		from, to := e.Shift.Bounds()
		p := entity.EmployeeProfile{ID: e.ID, FirstName: u.FirstName, LastName: u.LastName, Salary: e.Salary, ShiftFrom: from, ShiftTo: to}
		for _, pid := range e.PositionIDs {
			for _, pos := range r.m.st.positions {
				if pos.ID == pid {
					p.Positions = append(p.Positions, pos.Name)
				}
			}
		}
		out = append(out, p)
	}
	return out, nil
}

type memPositions struct{ m *memStore }

func (r memPositions) List(_ context.Context) ([]entity.Position, error) {
	return append([]entity.Position(nil), r.m.st.positions...), nil
}

// ── Producers / Fruits ──────────────────────────────────────────────────────

type memProducers struct{ m *memStore }

func (r memProducers) Create(_ context.Context, p *entity.Producer) error {
	if err := r.m.write("Producers.Create"); err != nil {
		return err
	}
	p.ID = r.m.id()
	r.m.st.producers[p.ID] = *p
	return nil
}

func (r memProducers) GetByID(_ context.Context, id int64) (*entity.Producer, error) {
	p, ok := r.m.st.producers[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r memProducers) List(_ context.Context) ([]*entity.Producer, error) {
	var out []*entity.Producer
	for _, p := range r.m.st.producers {
		p := p
		out = append(out, &p)
	}
	return out, nil
}

type memFruits struct{ m *memStore }

func (r memFruits) find(limit int, keep func(entity.Fruit) bool) []*entity.Fruit {
	var ids []int64
	for id, f := range r.m.st.fruits {
		if keep(f) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var out []*entity.Fruit
	for _, id := range ids {
		if limit > 0 && len(out) == limit {
			break
		}
		f := r.m.st.fruits[id]
		out = append(out, &f)
	}
	return out
}

func (r memFruits) List(_ context.Context) ([]*entity.Fruit, error) {
	out := r.find(0, func(entity.Fruit) bool { return true })
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r memFruits) FindByNameFold(_ context.Context, name string, limit int) ([]*entity.Fruit, error) {
	if err := r.m.hook("Fruits.FindByNameFold"); err != nil {
		return nil, err
	}
	return r.find(limit, func(f entity.Fruit) bool { return strings.EqualFold(f.Name, name) }), nil
}

func (r memFruits) FindByName(_ context.Context, name string, limit int) ([]*entity.Fruit, error) {
	return r.find(limit, func(f entity.Fruit) bool { return f.Name == name }), nil
}

func (r memFruits) GetDetails(_ context.Context, id int64) (*entity.FruitDetails, error) {
	f, ok := r.m.st.fruits[id]
	if !ok {
		return nil, nil
	}
	p := r.m.st.producers[f.ProducerID]
	return &entity.FruitDetails{
		Fruit:           f,
		ExpirationDate:  f.CreationDate.AddDate(0, 0, f.ExpirationDays),
		ProducerName:    p.Name,
		ProducerCountry: p.Country,
	}, nil
}

func (r memFruits) Add(_ context.Context, f *entity.Fruit) error {
	if err := r.m.write("Fruits.Add"); err != nil {
		return err
	}
	f.ID = r.m.id()
	r.m.st.fruits[f.ID] = *f
	return nil
}

func (r memFruits) UpdatePriceByPercentage(_ context.Context, fruitID int64, pct decimal.Decimal) error {
	if err := r.m.write("Fruits.UpdatePriceByPercentage"); err != nil {
		return err
	}
	f := r.m.st.fruits[fruitID]
	factor := decimal.NewFromInt(100).Add(pct).Div(decimal.NewFromInt(100))
	f.Price = f.Price.Mul(factor).Round(2)
	r.m.st.fruits[fruitID] = f
	return nil
}

func (r memFruits) Delete(_ context.Context, id int64) error {
	if err := r.m.write("Fruits.Delete"); err != nil {
		return err
	}
	delete(r.m.st.fruits, id)
	return nil
}

// ── Orders / Reviews ────────────────────────────────────────────────────────

type memOrders struct{ m *memStore }

func (r memOrders) Create(_ context.Context, o *entity.Order) error {
	if err := r.m.write("Orders.Create"); err != nil {
		return err
	}
	o.ID = r.m.id()
	r.m.st.orders[o.ID] = *o
	return nil
}

func (r memOrders) HistoryByClient(_ context.Context, clientID int64) ([]entity.OrderHistoryRow, error) {
	var out []entity.OrderHistoryRow
	for _, o := range r.m.st.orders {
		if o.ClientID != clientID {
			continue
		}
		row := entity.OrderHistoryRow{
			OrderID:      o.ID,
			CreationDate: o.CreationDate,
			FruitName:    r.m.st.fruits[o.FruitID].Name,
			TotalPrice:   o.TotalPrice,
			Quantity:     o.Quantity,
		}
		if d, ok := r.m.st.deliveries[o.ID]; ok {
			dd := d.DeliveryDate
			row.DeliveryDate = &dd
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreationDate.After(out[j].CreationDate) })
	return out, nil
}

type memReviews struct{ m *memStore }

func (r memReviews) Add(_ context.Context, rv *entity.Review) error {
	if err := r.m.write("Reviews.Add"); err != nil {
		return err
	}
	rv.ID = r.m.id()
	r.m.st.reviews[rv.ID] = *rv
	return nil
}

func (r memReviews) ListByFruit(_ context.Context, fruitID int64) ([]entity.ReviewView, error) {
	var out []entity.ReviewView
	for _, rv := range r.m.st.reviews {
		if rv.FruitID != fruitID {
			continue
		}
		var author entity.User
		for _, c := range r.m.st.clients {
			if c.ID == rv.ClientID {
				author = r.m.st.users[c.UserID]
			}
		}
		out = append(out, entity.ReviewView{ID: rv.ID, Text: rv.Text, Evaluation: rv.Evaluation, AuthorFirstName: author.FirstName, AuthorLastName: author.LastName})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// DeleteLowRated imita la rutina: borra evaluaciones menores que 3.
func (r memReviews) DeleteLowRated(_ context.Context) error {
	if err := r.m.write("Reviews.DeleteLowRated"); err != nil {
		return err
	}
	for id, rv := range r.m.st.reviews {
		if rv.Evaluation < 3 {
			delete(r.m.st.reviews, id)
		}
	}
	return nil
}
