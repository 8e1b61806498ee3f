package models

type Post struct {
	BaseModel

	Text  string  `json:"text"`
	Image *string `json:"image"`

	GroupID *uint  `json:"group_id" gorm:"index"`
	Group   *Group `json:"group,omitempty"`

	AuthorID uint    `json:"author_id" gorm:"index"`
	Author   Account `json:"author"`

	Comments []Comment `json:"comments,omitempty"`
	Likes    []Like    `json:"-"`
}

// PostFields is the editable part of a post.
type PostFields struct {
	Text    string  `json:"text"`
	GroupID *uint   `json:"group_id"`
	Image   *string `json:"image"`
}
