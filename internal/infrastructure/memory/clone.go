package memory

import (
	"slices"

	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
)

func cloneArticle(a *entity.Article) *entity.Article {
	if a == nil {
		return nil
	}
	c := *a
	if a.Insumo != nil {
		in := *a.Insumo
		c.Insumo = &in
	}
	if a.Manufactured != nil {
		m := *a.Manufactured
		m.Recipe = make([]entity.RecipeLine, len(a.Manufactured.Recipe))
		for i, rl := range a.Manufactured.Recipe {
			rl.Insumo = nil
			m.Recipe[i] = rl
		}
		c.Manufactured = &m
	}
	return &c
}

func clonePromotion(p *entity.Promotion) *entity.Promotion {
	c := *p
	c.ArticleIDs = slices.Clone(p.ArticleIDs)
	c.BranchIDs = slices.Clone(p.BranchIDs)
	return &c
}

func cloneOrder(o *entity.Order) *entity.Order {
	c := *o
	c.Lines = slices.Clone(o.Lines)
	return &c
}

func cloneInvoice(i *entity.Invoice) *entity.Invoice {
	c := *i
	c.Payments = nil
	return &c
}

func ptrCopy[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
