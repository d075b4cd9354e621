package loan

import "context"

type Repository interface {
	List(ctx context.Context) ([]Loan, error)
	GetByID(ctx context.Context, id string) (*Loan, error)
	Create(ctx context.Context, l *Loan) error
	Update(ctx context.Context, l *Loan) error
	Delete(ctx context.Context, id string) error
}
