package models

// Tag names are unique. Tags are created on first use and never deleted, so a
// tag may outlive every article that referenced it.
type Tag struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(31);uniqueIndex;not null" json:"name"`
}
