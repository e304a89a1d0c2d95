package unitofwork

import (
	"context"

	"rich-notes-be/internal/repository/contract"

	"gorm.io/gorm"
)

type RepositoryFactoryImpl struct {
	db *gorm.DB
}

func NewRepositoryFactory(db *gorm.DB) RepositoryFactory {
	return &RepositoryFactoryImpl{
		db: db,
	}
}

func (f *RepositoryFactoryImpl) NewUnitOfWork(ctx context.Context) UnitOfWork {
	return NewUnitOfWork(f.db)
}

type memoryRepositoryFactory struct {
	notes contract.NoteRepository
}

// NewMemoryRepositoryFactory serves every unit of work from the same
// in-memory note repository.
func NewMemoryRepositoryFactory(notes contract.NoteRepository) RepositoryFactory {
	return &memoryRepositoryFactory{notes: notes}
}

func (f *memoryRepositoryFactory) NewUnitOfWork(ctx context.Context) UnitOfWork {
	return &memoryUnitOfWork{notes: f.notes}
}
