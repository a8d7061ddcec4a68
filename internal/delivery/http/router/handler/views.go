package handler

import (
	"time"

	"productsmanager/internal/domain/entity"
)

// userView is the public shape of a user. The password hash never leaves the server.
type userView struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

type productView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	OwnerID     string    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toUserView(u *entity.User) *userView {
	if u == nil {
		return nil
	}

	return &userView{
		ID:        u.ID.String(),
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}

func toProductView(p *entity.Product) *productView {
	return &productView{
		ID:          p.ID.String(),
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		OwnerID:     p.OwnerID.String(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProductViews(products []*entity.Product) []*productView {
	views := make([]*productView, 0, len(products))
	for _, p := range products {
		views = append(views, toProductView(p))
	}

	return views
}
