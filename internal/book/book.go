package book

import "math"

// MaxID is the largest id the books table (an int4 column) can hold.
const MaxID = math.MaxInt32

// Book is the only resource the API manages. The ID is assigned by the
// client, never by the store.
type Book struct {
	ID     int    `json:"id" validate:"gt=0,lte=2147483647"`
	Name   string `json:"name" validate:"required,max=255"`
	Author string `json:"author" validate:"required,max=255"`
}
