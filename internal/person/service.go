package person

import (
	"context"

	"go.uber.org/zap"
)

type PersonService interface {
	ListPeople(ctx context.Context) ([]Person, error)
	ReadPersonByID(ctx context.Context, id uint) (*Person, error)
	CreatePerson(ctx context.Context, form Form) (*Person, error)
	UpdatePerson(ctx context.Context, id uint, form Form) (*Person, error)
	DeletePerson(ctx context.Context, id uint) error
}

type personService struct {
	repo   PersonRepository
	logger *zap.Logger
}

func NewPersonService(repo PersonRepository, logger *zap.Logger) PersonService {
	return &personService{
		repo:   repo,
		logger: logger,
	}
}

/** CREATE */
func (s *personService) CreatePerson(ctx context.Context, form Form) (*Person, error) {
	person, err := s.validate(form)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, person); err != nil {
		s.logger.Error("failed to create person in repository", zap.Error(err))
		return nil, err
	}
	s.logger.Info("person created", zap.Uint("id", person.ID))
	return person, nil
}

func (s *personService) validate(form Form) (*Person, error) {
	person, err := CheckForm(form)
	if err != nil {
		s.logger.Warn("validation failed", zap.Error(err))
		return nil, err
	}
	return person, nil
}

/** READ */
func (s *personService) ListPeople(ctx context.Context) ([]Person, error) {
	people, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list people", zap.Error(err))
		return nil, err
	}
	return people, nil
}

func (s *personService) ReadPersonByID(ctx context.Context, id uint) (*Person, error) {
	person, err := s.repo.ReadByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get person by ID", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return person, nil
}

/** UPDATE */
func (s *personService) UpdatePerson(ctx context.Context, id uint, form Form) (*Person, error) {
	if _, err := s.repo.ReadByID(ctx, id); err != nil {
		s.logger.Error("failed to update person, person not found", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	person, err := s.validate(form)
	if err != nil {
		return nil, err
	}

	person.ID = id
	if err := s.repo.Update(ctx, person); err != nil {
		s.logger.Error("failed to update person in repository", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return person, nil
}

/** DELETE */
func (s *personService) DeletePerson(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete person", zap.Uint("id", id), zap.Error(err))
		return err
	}
	s.logger.Info("person deleted", zap.Uint("id", id))
	return nil
}
