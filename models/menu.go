package models

type MenuItem struct {
	Name  string
	Price float64
}
