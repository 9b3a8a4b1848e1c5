package model

// Account is an identity record stored in the Users collection. Email is
// unique only by convention: registration checks for an existing record
// before inserting, the collection has no unique index.
type Account struct {
	ID           string `bson:"_id" json:"id"`
	FullName     string `bson:"fullName" json:"fullName"`
	Email        string `bson:"email" json:"email"`
	PasswordHash string `bson:"passwordHash" json:"-"`
	CompanyName  string `bson:"companyName" json:"companyName"`
}
