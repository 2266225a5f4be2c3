package entities

import "time"

// Book представляет книгу в каталоге библиотеки.
// Каждая книга однозначно идентифицируется своим ISBN.
type Book struct {
	ID              int       `json:"id"`
	ISBN            string    `json:"isbn"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	Description     string    `json:"description,omitempty"`
	PublicationDate time.Time `json:"publicationDate"`
	Publisher       string    `json:"publisher,omitempty"`
}

// NewBook creates a catalog entry with the given bibliographic data.
func NewBook(isbn, title, author, description string, publicationDate time.Time, publisher string) *Book {
	return &Book{
		ISBN:            isbn,
		Title:           title,
		Author:          author,
		Description:     description,
		PublicationDate: publicationDate,
		Publisher:       publisher,
	}
}
