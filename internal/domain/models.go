package domain

import "github.com/shopspring/decimal"

type Category struct {
	ID       int       `json:"id"`
	Name     string    `json:"nome"`
	Products []Product `json:"-"` // never serialized, avoids category -> products -> category cycles
}

type Product struct {
	ID         int             `json:"id"`
	Name       string          `json:"nome"`
	Price      decimal.Decimal `json:"preco"`
	Stock      int             `json:"estoque"`
	CategoryID int             `json:"categoriaId"`
	Category   *Category       `json:"categoria"`
}
