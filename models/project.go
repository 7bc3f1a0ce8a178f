package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProjectStatus string

const (
	ProjectStatusActive      ProjectStatus = "active"
	ProjectStatusDuplicating ProjectStatus = "duplicating"
	ProjectStatusError       ProjectStatus = "error"
	ProjectStatusArchived    ProjectStatus = "archived"
)

type Project struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Status      ProjectStatus      `json:"status" bson:"status"`
	StartDate   *time.Time         `json:"startDate,omitempty" bson:"start_date,omitempty"`
	EndDate     *time.Time         `json:"endDate,omitempty" bson:"end_date,omitempty"`
	Owner       string             `json:"owner" bson:"owner"`
	Theme       string             `json:"theme,omitempty" bson:"theme,omitempty"`
	LogoURL     string             `json:"logoUrl,omitempty" bson:"logo_url,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
}

type Department struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	ProjectID   primitive.ObjectID `json:"projectId" bson:"project_id"`
}

type DepartmentLead struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	DepartmentID primitive.ObjectID `json:"departmentId" bson:"department_id"`
	Username     string             `json:"username" bson:"username"`
	AssignedBy   string             `json:"assignedBy" bson:"assigned_by"`
}

type ProjectMember struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ProjectID primitive.ObjectID `json:"projectId" bson:"project_id"`
	Username  string             `json:"username" bson:"username"`
	Role      string             `json:"role" bson:"role"`
	AddedBy   string             `json:"addedBy" bson:"added_by"`
}
