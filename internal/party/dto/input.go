package dto

type CreatePartyInput struct {
	Name        string
	Phone       string
	Address     string
	Notes       string
	CategoryIDs []int64
}

type UpdatePartyInput struct {
	ID          int64
	Name        string
	Phone       string
	Address     string
	Notes       string
	CategoryIDs []int64
}
