package shop

import "time"

type Status string

const (
	StatusNew  Status = "new"
	StatusPaid Status = "paid"

	statusHidden Status = "hidden"
)

var _ = statusHidden

type Cents int64

type Named interface {
	Name() string
}

type Customer struct {
	ID       int64
	FullName string
	Tags     []string
	secret   string
}

func (c Customer) Name() string { return c.FullName + c.secret }

type Line struct {
	SKU string
	Qty int
}

type Lines []Line

type Order struct {
	ID       int64
	Customer *Customer
	Status   Status
	Total    Cents
	Lines    []Line
	Meta     map[string]string
	Created  time.Time
	Timeout  time.Duration
	Callback func()
	Parent   *Order
}

type Page[T any] struct {
	Items []T
	Next  *string
}

type OrderPage struct {
	Page Page[Order]
}
