// Package entities defines the domain entities for the loans service.
package entities

import "errors"

// ErrInvalidCategoryCode возвращается, когда код категории читателя
// не входит в допустимый набор.
var ErrInvalidCategoryCode = errors.New("user category is not allowed in the library")

// Коды категорий читателей.
const (
	AffiliateCode = 1
	EmployeeCode  = 2
	GuestCode     = 3
)

// Category представляет категорию читателя. Категория определяет
// длительность займа в рабочих днях и ограничения на количество займов.
type Category struct {
	code      int
	name      string
	loanDays  int
	guestLike bool
}

// Фиксированный набор категорий: значения задаются один раз при старте
// процесса и никогда не изменяются.
var categories = []Category{
	{code: AffiliateCode, name: "affiliate", loanDays: 10, guestLike: false},
	{code: EmployeeCode, name: "employee", loanDays: 8, guestLike: false},
	{code: GuestCode, name: "guest", loanDays: 7, guestLike: true},
}

// ResolveCategory возвращает категорию по ее числовому коду.
// Любой код вне фиксированного набора - недопустимый ввод, а не новая категория.
func ResolveCategory(code int) (Category, error) {
	for _, c := range categories {
		if c.code == code {
			return c, nil
		}
	}
	return Category{}, ErrInvalidCategoryCode
}

// Code возвращает числовой код категории.
func (c Category) Code() int {
	return c.code
}

// Name возвращает название категории.
func (c Category) Name() string {
	return c.name
}

// LoanDays возвращает длительность займа в рабочих днях.
func (c Category) LoanDays() int {
	return c.loanDays
}

// IsGuest сообщает, действует ли для категории ограничение гостя:
// не более одного активного займа одновременно.
func (c Category) IsGuest() bool {
	return c.guestLike
}
