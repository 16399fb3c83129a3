package handler

import (
	"github.com/google/uuid"

	"github.com/dtroode/shopkeeper-server/internal/api/grpc/rpc"
	"github.com/dtroode/shopkeeper-server/internal/apierrors"
	"github.com/dtroode/shopkeeper-server/internal/model"
)

func parseID(field, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, apierrors.NewErrInvalidArgument("invalid %s %q", field, value)
	}
	return id, nil
}

func toUser(u model.User) rpc.User {
	return rpc.User{
		ID:       u.ID.String(),
		Email:    u.Email,
		Username: u.Username,
		Status:   int(u.Status),
	}
}

func toProduct(p model.Product) rpc.Product {
	return rpc.Product{
		ID:          p.ID.String(),
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.Price,
		Image:       p.Image,
		Description: p.Description,
		Quantity:    p.Quantity,
		CreatedAt:   p.CreatedAt,
	}
}

func toUserDetail(d model.UserDetail) rpc.UserDetail {
	return rpc.UserDetail{Username: d.Username, Email: d.Email}
}

func toCartItem(c model.CartItem) rpc.CartItem {
	d := c.ProductDetail
	return rpc.CartItem{
		ID:            c.ID.String(),
		ProductID:     c.ProductID.String(),
		Quantity:      c.Quantity,
		Status:        int(c.Status),
		SoftDeletedAt: c.SoftDeletedAt,
		PurgeAfter:    c.PurgeAfter,
		UserDetail:    toUserDetail(c.UserDetail),
		ProductDetail: rpc.ProductDetail{
			Name:        d.Name,
			Price:       d.Price,
			Image:       d.Image,
			Description: d.Description,
			Category:    d.Category,
			Quantity:    d.Quantity,
		},
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toResolvedCart(items []model.ResolvedCartItem) []rpc.ResolvedCartItem {
	out := make([]rpc.ResolvedCartItem, 0, len(items))
	for _, r := range items {
		item := rpc.ResolvedCartItem{Item: toCartItem(r.Item)}
		if r.Product != nil {
			p := toProduct(*r.Product)
			item.Product = &p
		}
		if r.User != nil {
			u := toUserDetail(*r.User)
			item.User = &u
		}
		out = append(out, item)
	}
	return out
}

func toOrder(o model.Order) rpc.Order {
	items := make([]rpc.OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, rpc.OrderItem{
			ProductID:   it.ProductID.String(),
			Name:        it.Name,
			Description: it.Description,
			Price:       it.Price,
			Image:       it.Image,
			Category:    it.Category,
			Quantity:    it.Quantity,
		})
	}

	out := rpc.Order{
		ID:                 o.ID.String(),
		Kind:               string(o.Kind),
		Address:            o.Address,
		MobileNo:           o.MobileNo,
		User:               toUserDetail(o.User),
		Items:              items,
		TotalQuantity:      o.TotalQuantity,
		CategoryQuantities: o.CategoryQuantities,
		CreatedAt:          o.CreatedAt,
	}
	if o.ProductID != nil {
		out.ProductID = o.ProductID.String()
	}
	return out
}
