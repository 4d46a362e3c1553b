package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LovePage là entity duy nhất được persist: text của người gửi + locators
// của các assets đã lưu. Record bất biến sau khi tạo (không có update/delete).
//
// Password được lưu verbatim và trả về nguyên vẹn trên GET — đây là hành vi
// gốc của hệ thống; field này chỉ dành cho gate phía client.
type LovePage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Message   string             `bson:"message" json:"message"`
	Password  string             `bson:"password" json:"password"`
	Photo     string             `bson:"photo" json:"photo"`
	Songs     []string           `bson:"songs" json:"songs"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
