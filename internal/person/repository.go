package person

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrPersonAlreadyExists  = errors.New("person already exists")
	ErrPersonNotFound       = errors.New("person not found")
	ErrPersonNotCreated     = errors.New("person not created")
	ErrPersonNotUpdated     = errors.New("person not updated")
	ErrPersonNotDeleted     = errors.New("person not deleted")
	ErrUnresponsiveDatabase = errors.New("error occured during reading from Person table")
)

// uniqueViolation is the Postgres SQLSTATE for unique constraint violations.
const uniqueViolation = "23505"

type PersonRepository interface {
	List(ctx context.Context) ([]Person, error)
	ReadByID(ctx context.Context, id uint) (*Person, error)
	Create(ctx context.Context, person *Person) error
	Update(ctx context.Context, person *Person) error
	Delete(ctx context.Context, id uint) error
}

type personRepository struct {
	db *gorm.DB
}

func NewPersonRepository(db *gorm.DB) PersonRepository {
	return &personRepository{db: db}
}

func (p *personRepository) List(ctx context.Context) ([]Person, error) {
	people := make([]Person, 0)
	err := p.db.WithContext(ctx).
		Order("id ASC").
		Find(&people).
		Error
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return people, nil
}

func (p *personRepository) ReadByID(ctx context.Context, id uint) (*Person, error) {
	var person Person
	err := p.db.WithContext(ctx).
		Where("id = ?", id).
		First(&person).
		Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPersonNotFound
	}
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return &person, nil
}

// Create inserts the person and fills in the ID assigned by the database.
func (p *personRepository) Create(ctx context.Context, person *Person) error {
	person.ID = 0
	err := p.db.WithContext(ctx).Create(person).Error
	if err != nil {
		// only after manual inserts push a Postgres sequence behind the table
		if isDuplicateKey(err) {
			return ErrPersonAlreadyExists
		}
		return ErrPersonNotCreated
	}
	return nil
}

// Update overwrites every mutable column of the row identified by person.ID.
func (p *personRepository) Update(ctx context.Context, person *Person) error {
	res := p.db.WithContext(ctx).
		Model(&Person{}).
		Where("id = ?", person.ID).
		Updates(map[string]any{
			FieldFirstName:  person.FirstName,
			FieldLastName:   person.LastName,
			FieldEnabled:    person.Enabled,
			FieldAuthorised: person.Authorised,
		})
	if res.Error != nil {
		return ErrPersonNotUpdated
	}
	if res.RowsAffected == 0 {
		return ErrPersonNotFound
	}
	return nil
}

func (p *personRepository) Delete(ctx context.Context, id uint) error {
	res := p.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&Person{})
	if res.Error != nil {
		return ErrPersonNotDeleted
	}
	if res.RowsAffected == 0 {
		return ErrPersonNotFound
	}
	return nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
