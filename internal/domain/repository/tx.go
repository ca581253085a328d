package repository

import "context"

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Articles  ArticleRepository
	Stock     StockRepository
	Movements StockMovementRepository
	Orders    OrderRepository
	Invoices  InvoiceRepository
	Payments  PaymentRepository
	Customers CustomerRepository
	Users     UserRepository
}

// TxRunner ejecuta fn dentro de una transacción; si fn devuelve error se hace rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
