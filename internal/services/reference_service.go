package services

import (
	"github.com/sagarpandeyprofessional/keasy-api/internal/models"
	"github.com/sagarpandeyprofessional/keasy-api/internal/store"
)

// ReferenceService reads the category and language lookup tables.
type ReferenceService struct {
	Store store.Store
}

func NewReferenceService(st store.Store) *ReferenceService {
	return &ReferenceService{Store: st}
}

func (s *ReferenceService) Categories() ([]models.Category, error) {
	return s.Store.ListCategories()
}

func (s *ReferenceService) Languages() ([]models.Language, error) {
	return s.Store.ListLanguages()
}
