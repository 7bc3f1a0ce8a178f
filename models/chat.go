package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ChatSettings struct {
	ID               primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ProjectID        primitive.ObjectID `json:"projectId" bson:"project_id"`
	PublicChat       bool               `json:"publicChat" bson:"public_chat"`
	RetentionDays    int                `json:"retentionDays" bson:"retention_days"`
	MaxFileSizeMB    int                `json:"maxFileSizeMb" bson:"max_file_size_mb"`
	AllowedFileTypes []string           `json:"allowedFileTypes,omitempty" bson:"allowed_file_types,omitempty"`
}

type ChatParticipant struct {
	Username string    `json:"username" bson:"username"`
	JoinedAt time.Time `json:"joinedAt" bson:"joined_at"`
}

type ChatRoom struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	ProjectID    primitive.ObjectID `json:"projectId" bson:"project_id"`
	RoomType     string             `json:"roomType" bson:"room_type"`
	Participants []ChatParticipant  `json:"participants,omitempty" bson:"participants,omitempty"`
}
