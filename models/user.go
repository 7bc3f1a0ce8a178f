package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User mirrors the documents owned by the users service; this service only
// reads them when validating member additions.
type User struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	LastName string             `json:"lastName" bson:"lastName"`
	Username string             `json:"username" bson:"username"`
	Role     string             `json:"role" bson:"role"`
}
