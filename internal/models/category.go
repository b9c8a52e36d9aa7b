package models

type Category struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(20);uniqueIndex;not null" json:"name"`
}
