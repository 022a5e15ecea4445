package model

// Family selects one of the independent category tag sets.
type Family string

const (
	FamilyBook  Family = "book"
	FamilyParty Family = "party"
	FamilyOther Family = "other"
	FamilyStore Family = "store"
)

var Families = []Family{FamilyBook, FamilyParty, FamilyOther, FamilyStore}

func (f Family) Valid() bool {
	switch f {
	case FamilyBook, FamilyParty, FamilyOther, FamilyStore:
		return true
	}
	return false
}

func (f Family) Table() string {
	return string(f) + "_category"
}

func (f Family) LinkTable() string {
	if f == FamilyOther {
		return "other_transaction_category_link"
	}
	return string(f) + "_category_link"
}

// OwnerColumn is the link-table column pointing at the tagged entity.
func (f Family) OwnerColumn() string {
	switch f {
	case FamilyBook:
		return "book_id"
	case FamilyParty:
		return "party_id"
	case FamilyOther:
		return "other_transaction_id"
	default:
		return "transaction_id"
	}
}

type Category struct {
	ID     int64  `db:"id" json:"id"`
	Name   string `db:"name" json:"name"`
	Family Family `db:"-" json:"family"`
}
