package repository

import (
	"context"
	"time"

	"brokerbook/internal/ledger"
	"brokerbook/internal/model"
	"brokerbook/internal/store"
)

type DealRepository interface {
	Create(ctx context.Context, d *model.Deal) error
	FindByID(ctx context.Context, id int64) (*model.Deal, error)
	List(ctx context.Context) ([]model.Deal, error)
	UpdateStatus(ctx context.Context, id int64, status model.DealStatus) error
	// MarkDelivered applies the fully-delivered transition to the stored
	// status and reports the resulting status and whether it changed.
	MarkDelivered(ctx context.Context, id int64) (model.DealStatus, bool, error)
	Delete(ctx context.Context, id int64) error
}

type dealRepo struct{ st *store.Store }

func NewDealRepository(st *store.Store) DealRepository { return &dealRepo{st: st} }

func (r *dealRepo) Create(ctx context.Context, d *model.Deal) error {
	id, err := r.st.NextID(ctx, store.DealCounter)
	if err != nil {
		return err
	}
	d.ID = id
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	return store.Update(ctx, r.st, store.Deals, func(ds []model.Deal) ([]model.Deal, error) {
		return append(ds, *d), nil
	})
}

func (r *dealRepo) FindByID(ctx context.Context, id int64) (*model.Deal, error) {
	ds, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range ds {
		if ds[i].ID == id {
			return &ds[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *dealRepo) List(ctx context.Context) ([]model.Deal, error) {
	return store.Load[model.Deal](ctx, r.st, store.Deals)
}

func (r *dealRepo) UpdateStatus(ctx context.Context, id int64, status model.DealStatus) error {
	return store.Update(ctx, r.st, store.Deals, func(ds []model.Deal) ([]model.Deal, error) {
		for i := range ds {
			if ds[i].ID == id {
				ds[i].PaymentStatus = status
				return ds, nil
			}
		}
		return nil, ErrNotFound
	})
}

func (r *dealRepo) MarkDelivered(ctx context.Context, id int64) (model.DealStatus, bool, error) {
	var status model.DealStatus
	var changed bool
	err := store.Update(ctx, r.st, store.Deals, func(ds []model.Deal) ([]model.Deal, error) {
		for i := range ds {
			if ds[i].ID == id {
				status, changed = ledger.OnFullyDelivered(ds[i].PaymentStatus)
				ds[i].PaymentStatus = status
				return ds, nil
			}
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return "", false, err
	}
	return status, changed, nil
}

func (r *dealRepo) Delete(ctx context.Context, id int64) error {
	return store.Update(ctx, r.st, store.Deals, func(ds []model.Deal) ([]model.Deal, error) {
		for i := range ds {
			if ds[i].ID == id {
				return append(ds[:i], ds[i+1:]...), nil
			}
		}
		return nil, ErrNotFound
	})
}
