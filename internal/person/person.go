package person

// Person represents a person record.
// @Description person model
// @Property id          body integer true "unique identifier"
// @Property firstName   body string  true "first name"
// @Property lastName    body string  true "last name"
// @Property enabled     body boolean true "whether the person is enabled"
// @Property authorised  body boolean true "whether the person is authorised"
type Person struct {
	// ID is assigned by the database and never changes
	ID         uint   `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	FirstName  string `json:"firstName" gorm:"column:firstName;not null"`
	LastName   string `json:"lastName" gorm:"column:lastName;not null"`
	Enabled    bool   `json:"enabled" gorm:"column:enabled;not null"`
	Authorised bool   `json:"authorised" gorm:"column:authorised;not null"`
}

// TableName keeps the table name of the existing schema.
func (Person) TableName() string {
	return "Person"
}

// NewPerson initializes a Person without an ID.
func NewPerson(firstName, lastName string, enabled, authorised bool) *Person {
	return &Person{
		FirstName:  firstName,
		LastName:   lastName,
		Enabled:    enabled,
		Authorised: authorised,
	}
}
