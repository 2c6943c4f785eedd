package repository

import (
	"context"
	"time"

	"brokerbook/internal/model"
	"brokerbook/internal/store"
)

type SupplierRepository interface {
	Create(ctx context.Context, s *model.Supplier) error
	FindByID(ctx context.Context, id int64) (*model.Supplier, error)
	List(ctx context.Context) ([]model.Supplier, error)
}

type supplierRepo struct{ st *store.Store }

func NewSupplierRepository(st *store.Store) SupplierRepository { return &supplierRepo{st: st} }

func (r *supplierRepo) Create(ctx context.Context, s *model.Supplier) error {
	id, err := r.st.NextID(ctx, store.SupplierCounter)
	if err != nil {
		return err
	}
	s.ID = id
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	return store.Update(ctx, r.st, store.Suppliers, func(rs []model.Supplier) ([]model.Supplier, error) {
		return append(rs, *s), nil
	})
}

func (r *supplierRepo) FindByID(ctx context.Context, id int64) (*model.Supplier, error) {
	rs, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rs {
		if rs[i].ID == id {
			return &rs[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *supplierRepo) List(ctx context.Context) ([]model.Supplier, error) {
	return store.Load[model.Supplier](ctx, r.st, store.Suppliers)
}

type BuyerRepository interface {
	Create(ctx context.Context, b *model.Buyer) error
	FindByID(ctx context.Context, id int64) (*model.Buyer, error)
	List(ctx context.Context) ([]model.Buyer, error)
}

type buyerRepo struct{ st *store.Store }

func NewBuyerRepository(st *store.Store) BuyerRepository { return &buyerRepo{st: st} }

func (r *buyerRepo) Create(ctx context.Context, b *model.Buyer) error {
	id, err := r.st.NextID(ctx, store.BuyerCounter)
	if err != nil {
		return err
	}
	b.ID = id
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	return store.Update(ctx, r.st, store.Buyers, func(rs []model.Buyer) ([]model.Buyer, error) {
		return append(rs, *b), nil
	})
}

func (r *buyerRepo) FindByID(ctx context.Context, id int64) (*model.Buyer, error) {
	rs, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rs {
		if rs[i].ID == id {
			return &rs[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *buyerRepo) List(ctx context.Context) ([]model.Buyer, error) {
	return store.Load[model.Buyer](ctx, r.st, store.Buyers)
}
