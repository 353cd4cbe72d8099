package models

// TaskOwner links a task to one of its owners. A task with several owners
// has one row per owner; Position keeps the order they were given in.
type TaskOwner struct {
	TaskID   string `gorm:"primarykey;type:varchar(36)"`
	UserID   string `gorm:"primarykey;type:varchar(36);index"`
	Position int    `gorm:"not null;default:0"`
}

// TaskTag links a task to a tag.
type TaskTag struct {
	TaskID   string `gorm:"primarykey;type:varchar(36)"`
	TagID    string `gorm:"primarykey;type:varchar(36);index"`
	Position int    `gorm:"not null;default:0"`
}
