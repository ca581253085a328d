// Package memory implementa los puertos de repositorio en memoria. Se usa con
// STORAGE=memory para levantar la API sin PostgreSQL y en los tests de casos de uso.
//
// Run serializa las transacciones con un único mutex y restaura el estado previo si
// fn devuelve error. Dentro de fn solo deben usarse los repositorios de TxRepos: los
// repositorios sueltos toman el mismo mutex (no reentrante).
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
	"github.com/jhoicas/BuenSabor-api/internal/domain/repository"
)

// Store estado compartido por todos los repositorios en memoria.
// Los valores guardados nunca se modifican en el lugar: cada escritura reemplaza la entrada
// con una copia, así un snapshot superficial de los mapas alcanza para el rollback.
type Store struct {
	mu sync.Mutex

	articles   map[string]*entity.Article
	categories map[string]*entity.Category
	movements  []*entity.StockMovement
	promotions map[string]*entity.Promotion
	orders     map[string]*entity.Order
	invoices   map[string]*entity.Invoice
	payments   map[string]*entity.Payment
	customers  map[string]*entity.Customer
	addresses  map[string]*entity.Address
	users      map[string]*entity.User
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		articles:   map[string]*entity.Article{},
		categories: map[string]*entity.Category{},
		promotions: map[string]*entity.Promotion{},
		orders:     map[string]*entity.Order{},
		invoices:   map[string]*entity.Invoice{},
		payments:   map[string]*entity.Payment{},
		customers:  map[string]*entity.Customer{},
		addresses:  map[string]*entity.Address{},
		users:      map[string]*entity.User{},
	}
}

type snapshot struct {
	articles   map[string]*entity.Article
	categories map[string]*entity.Category
	movements  int
	promotions map[string]*entity.Promotion
	orders     map[string]*entity.Order
	invoices   map[string]*entity.Invoice
	payments   map[string]*entity.Payment
	customers  map[string]*entity.Customer
	addresses  map[string]*entity.Address
	users      map[string]*entity.User
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		articles:   maps.Clone(s.articles),
		categories: maps.Clone(s.categories),
		movements:  len(s.movements),
		promotions: maps.Clone(s.promotions),
		orders:     maps.Clone(s.orders),
		invoices:   maps.Clone(s.invoices),
		payments:   maps.Clone(s.payments),
		customers:  maps.Clone(s.customers),
		addresses:  maps.Clone(s.addresses),
		users:      maps.Clone(s.users),
	}
}

func (s *Store) restore(sn snapshot) {
	s.articles = sn.articles
	s.categories = sn.categories
	s.movements = s.movements[:sn.movements]
	s.promotions = sn.promotions
	s.orders = sn.orders
	s.invoices = sn.invoices
	s.payments = sn.payments
	s.customers = sn.customers
	s.addresses = sn.addresses
	s.users = sn.users
}

// with ejecuta fn con el lock tomado, salvo que ya lo tenga la transacción en curso.
func (s *Store) with(inTx bool, fn func()) {
	if !inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	fn()
}

func (s *Store) repos(inTx bool) repository.TxRepos {
	return repository.TxRepos{
		Articles:  &ArticleRepo{s: s, tx: inTx},
		Stock:     &StockRepo{s: s, tx: inTx},
		Movements: &MovementRepo{s: s, tx: inTx},
		Orders:    &OrderRepo{s: s, tx: inTx},
		Invoices:  &InvoiceRepo{s: s, tx: inTx},
		Payments:  &PaymentRepo{s: s, tx: inTx},
		Customers: &CustomerRepo{s: s, tx: inTx},
		Users:     &UserRepo{s: s, tx: inTx},
	}
}

// Repos repositorios fuera de transacción.
func (s *Store) Repos() repository.TxRepos { return s.repos(false) }

// Categories repositorio de rubros.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{s: s} }

// Promotions repositorio de promociones.
func (s *Store) Promotions() *PromotionRepo { return &PromotionRepo{s: s} }

// Analytics consultas de estadísticas.
func (s *Store) Analytics() *AnalyticsRepo { return &AnalyticsRepo{s: s} }

var _ repository.TxRunner = (*Store)(nil)

// Run implementa repository.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sn := s.snapshot()
	if err := fn(s.repos(true)); err != nil {
		s.restore(sn)
		return err
	}
	return nil
}
