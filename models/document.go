package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type DocumentFolder struct {
	ID             primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Name           string              `json:"name" bson:"name"`
	ProjectID      primitive.ObjectID  `json:"projectId" bson:"project_id"`
	DepartmentID   *primitive.ObjectID `json:"departmentId,omitempty" bson:"department_id,omitempty"`
	ParentFolderID *primitive.ObjectID `json:"parentFolderId,omitempty" bson:"parent_folder_id,omitempty"`
}

type DocumentLink struct {
	ID           primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Title        string              `json:"title" bson:"title"`
	URL          string              `json:"url" bson:"url"`
	Description  string              `json:"description" bson:"description"`
	ProjectID    primitive.ObjectID  `json:"projectId" bson:"project_id"`
	DepartmentID *primitive.ObjectID `json:"departmentId,omitempty" bson:"department_id,omitempty"`
	FolderID     *primitive.ObjectID `json:"folderId,omitempty" bson:"folder_id,omitempty"`
	CreatedBy    string              `json:"createdBy" bson:"created_by"`
}
