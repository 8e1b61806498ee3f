package models

// Account mirrors an identity issued by the external auth service.
// The ID is the one carried by the viewer token, not generated locally.
type Account struct {
	BaseModel

	Name        string `json:"name" gorm:"uniqueIndex"`
	Nick        string `json:"nick"`
	Description string `json:"description"`

	Posts []Post `json:"posts,omitempty" gorm:"foreignKey:AuthorID"`
}
