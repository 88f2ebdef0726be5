package roadmap

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jnanasetu/platform/core"
)

// Roadmap is a learning roadmap owned by the user that created it.
// Content is an opaque serialized body; the server never interprets it.
type Roadmap struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"` // UTC
	UpdatedAt time.Time `json:"updatedAt"` // UTC
}

// NewRoadmap contains information needed to create a Roadmap.
type NewRoadmap struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

func (nr *NewRoadmap) Validate(validate *validator.Validate) error {
	nr.Title = core.CleanString(nr.Title)
	return validate.Struct(nr)
}

// UpdateRoadmap is a full-replace update: both fields are required.
type UpdateRoadmap struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

func (ur *UpdateRoadmap) Validate(validate *validator.Validate) error {
	ur.Title = core.CleanString(ur.Title)
	return validate.Struct(ur)
}
