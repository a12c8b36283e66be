package model

type Post struct {
	UUIDBase
	Title    string    `gorm:"size:255;not null" json:"title"`
	Content  string    `gorm:"type:text;not null" json:"content"`
	AuthorID uint      `gorm:"index;type:bigint unsigned" json:"authorId"`
	Author   User      `gorm:"foreignKey:AuthorID" json:"author"`
	Tags     []Tag     `gorm:"many2many:post_tags" json:"tags"`
	Upvotes  int       `gorm:"default:0" json:"upvotes"`
	Views    int       `gorm:"default:0" json:"views"`
	IsPinned bool      `gorm:"default:false" json:"isPinned"`
	Comments []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
}

func (Post) TableName() string {
	return "posts"
}

type Comment struct {
	UUIDBase
	PostID      string  `gorm:"index;type:varchar(36)" json:"postId"`
	AuthorID    uint    `gorm:"index;type:bigint unsigned" json:"authorId"`
	Author      User    `gorm:"foreignKey:AuthorID" json:"author"`
	Content     string  `gorm:"type:text;not null" json:"content"`
	Upvotes     int     `gorm:"default:0" json:"upvotes"`
	ParentID    *string `gorm:"index;type:varchar(36)" json:"parentId"` // 父评论ID
	ReplyToUID  *uint   `gorm:"index;type:bigint unsigned" json:"replyToUid"`
	ReplyToUser *User   `gorm:"foreignKey:ReplyToUID" json:"replyToUser,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}

type Tag struct {
	BaseModel
	Name        string `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
}

func (Tag) TableName() string {
	return "tags"
}
