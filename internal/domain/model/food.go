package model

// Food is a catalog entry. Price is kept in major units.
type Food struct {
	ID          int64
	Name        string
	Description string
	Price       MajorAmount
	Category    string
	Image       string
}
