package dto

import "github.com/realdaly/books-log-sub000/internal/model"

type CreateCategoryInput struct {
	Family model.Family
	Name   string
}

type RenameCategoryInput struct {
	Family model.Family
	ID     int64
	Name   string
}
