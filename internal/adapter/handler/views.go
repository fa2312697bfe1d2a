package handler

import (
	"github.com/rl1809/shopping-assistant/internal/core/domain"
	"github.com/rl1809/shopping-assistant/internal/core/service"
)

type productView struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Price            string  `json:"price"`
	Store            string  `json:"store"`
	Rating           float64 `json:"rating"`
	Image            string  `json:"image"`
	ShortDescription string  `json:"short_description"`
}

type listItemView struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Image     string `json:"image"`
}

type listView struct {
	ID    int64          `json:"id"`
	Name  string         `json:"name"`
	Items []listItemView `json:"items"`
}

type alertView struct {
	ProductID     int64  `json:"product_id"`
	Name          string `json:"name"`
	Image         string `json:"image"`
	CurrentPrice  string `json:"current_price"`
	PreviousPrice string `json:"previous_price"`
	Threshold     string `json:"threshold"`
	Change        string `json:"change"`
	Trend         string `json:"trend"`
	Arrow         string `json:"arrow"`
}

type storeView struct {
	DisplayName string   `json:"display_name"`
	Address     string   `json:"address"`
	Rating      *float64 `json:"rating,omitempty"`
}

func newProductView(p domain.Product) productView {
	return productView{
		ID:               p.ID,
		Name:             p.Name,
		Price:            p.Price.StringFixed(2),
		Store:            p.Store,
		Rating:           p.Rating,
		Image:            p.Image,
		ShortDescription: p.ShortDescription(),
	}
}

// newListViews resolves list items against the catalog, skipping ids the
// catalog does not know.
func newListViews(catalog *service.CatalogService, lists []domain.ShoppingList) []listView {
	views := make([]listView, 0, len(lists))
	for _, l := range lists {
		v := listView{ID: l.ID, Name: l.Name, Items: []listItemView{}}
		for _, id := range l.Items {
			p, ok := catalog.Product(id)
			if !ok {
				continue
			}
			v.Items = append(v.Items, listItemView{
				ProductID: p.ID,
				Name:      p.Name,
				Price:     p.Price.StringFixed(2),
				Image:     p.Image,
			})
		}
		views = append(views, v)
	}
	return views
}

func newAlertView(p domain.Product, a domain.PriceAlert) alertView {
	return alertView{
		ProductID:     a.ProductID,
		Name:          p.Name,
		Image:         p.Image,
		CurrentPrice:  a.CurrentPrice.StringFixed(2),
		PreviousPrice: a.PreviousPrice.StringFixed(2),
		Threshold:     a.Threshold.StringFixed(2),
		Change:        a.Delta().Abs().StringFixed(2),
		Trend:         string(a.Trend()),
		Arrow:         trendArrow(a.Trend()),
	}
}

func newAlertViews(catalog *service.CatalogService, alerts []domain.PriceAlert) []alertView {
	views := make([]alertView, 0, len(alerts))
	for _, a := range alerts {
		p, ok := catalog.Product(a.ProductID)
		if !ok {
			continue
		}
		views = append(views, newAlertView(p, a))
	}
	return views
}

func newStoreViews(stores []domain.Store) []storeView {
	views := make([]storeView, 0, len(stores))
	for _, s := range stores {
		views = append(views, storeView{DisplayName: s.DisplayName, Address: s.Address, Rating: s.Rating})
	}
	return views
}

func trendArrow(t domain.PriceTrend) string {
	switch t {
	case domain.PriceTrendDecreased:
		return "↓"
	case domain.PriceTrendIncreased:
		return "↑"
	default:
		return "="
	}
}
