package repository

import (
	"context"
	"time"

	"brokerbook/internal/model"
	"brokerbook/internal/store"
)

type DeliveryRepository interface {
	Create(ctx context.Context, d *model.Delivery) error
	FindByID(ctx context.Context, id int64) (*model.Delivery, error)
	List(ctx context.Context) ([]model.Delivery, error)
	ListByDeal(ctx context.Context, dealID int64) ([]model.Delivery, error)
	UpdateStatus(ctx context.Context, id int64, status model.PaymentStatus) error
	Delete(ctx context.Context, id int64) error
	// DeleteByDeal removes every delivery of a deal and reports how many went.
	DeleteByDeal(ctx context.Context, dealID int64) (int, error)
}

type deliveryRepo struct{ st *store.Store }

func NewDeliveryRepository(st *store.Store) DeliveryRepository { return &deliveryRepo{st: st} }

func (r *deliveryRepo) Create(ctx context.Context, d *model.Delivery) error {
	id, err := r.st.NextID(ctx, store.DeliveryCounter)
	if err != nil {
		return err
	}
	d.ID = id
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	return store.Update(ctx, r.st, store.Deliveries, func(ds []model.Delivery) ([]model.Delivery, error) {
		return append(ds, *d), nil
	})
}

func (r *deliveryRepo) FindByID(ctx context.Context, id int64) (*model.Delivery, error) {
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

func (r *deliveryRepo) List(ctx context.Context) ([]model.Delivery, error) {
	return store.Load[model.Delivery](ctx, r.st, store.Deliveries)
}

func (r *deliveryRepo) ListByDeal(ctx context.Context, dealID int64) ([]model.Delivery, error) {
	ds, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := ds[:0]
	for _, d := range ds {
		if d.DealID == dealID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *deliveryRepo) UpdateStatus(ctx context.Context, id int64, status model.PaymentStatus) error {
	return store.Update(ctx, r.st, store.Deliveries, func(ds []model.Delivery) ([]model.Delivery, error) {
		for i := range ds {
			if ds[i].ID == id {
				ds[i].PaymentStatus = status
				return ds, nil
			}
		}
		return nil, ErrNotFound
	})
}

func (r *deliveryRepo) Delete(ctx context.Context, id int64) error {
	return store.Update(ctx, r.st, store.Deliveries, func(ds []model.Delivery) ([]model.Delivery, error) {
		for i := range ds {
			if ds[i].ID == id {
				return append(ds[:i], ds[i+1:]...), nil
			}
		}
		return nil, ErrNotFound
	})
}

func (r *deliveryRepo) DeleteByDeal(ctx context.Context, dealID int64) (int, error) {
	removed := 0
	err := store.Update(ctx, r.st, store.Deliveries, func(ds []model.Delivery) ([]model.Delivery, error) {
		kept := ds[:0]
		for _, d := range ds {
			if d.DealID == dealID {
				removed++
				continue
			}
			kept = append(kept, d)
		}
		return kept, nil
	})
	return removed, err
}
