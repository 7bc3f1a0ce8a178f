package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in progress"
	StatusCompleted  TaskStatus = "completed"
)

type Element struct {
	ID           primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Title        string              `json:"title" bson:"title"`
	Description  string              `json:"description" bson:"description"`
	ProjectID    primitive.ObjectID  `json:"projectId" bson:"project_id"`
	DepartmentID *primitive.ObjectID `json:"departmentId,omitempty" bson:"department_id,omitempty"`
	Priority     string              `json:"priority" bson:"priority"`
	StartDate    *time.Time          `json:"startDate,omitempty" bson:"start_date,omitempty"`
	DueDate      *time.Time          `json:"dueDate,omitempty" bson:"due_date,omitempty"`
}

type Task struct {
	ID            primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Title         string              `json:"title" bson:"title"`
	Description   string              `json:"description" bson:"description"`
	ProjectID     primitive.ObjectID  `json:"projectId" bson:"project_id"`
	ElementID     *primitive.ObjectID `json:"elementId,omitempty" bson:"element_id,omitempty"`
	DepartmentID  *primitive.ObjectID `json:"departmentId,omitempty" bson:"department_id,omitempty"`
	ParentTaskID  *primitive.ObjectID `json:"parentTaskId,omitempty" bson:"parent_task_id,omitempty"`
	Status        TaskStatus          `json:"status" bson:"status"`
	Priority      string              `json:"priority" bson:"priority"`
	Labels        []string            `json:"labels,omitempty" bson:"labels,omitempty"`
	StartDate     *time.Time          `json:"startDate,omitempty" bson:"start_date,omitempty"`
	DueDate       *time.Time          `json:"dueDate,omitempty" bson:"due_date,omitempty"`
	EstimatedCost float64             `json:"estimatedCost" bson:"estimated_cost"`
	ActualCost    float64             `json:"actualCost" bson:"actual_cost"`
	EstimateHours float64             `json:"estimateHours" bson:"estimate_hours"`
	LoggedHours   float64             `json:"loggedHours" bson:"logged_hours"`
	Progress      int                 `json:"progress" bson:"progress"`
	Assignees     []string            `json:"assignees,omitempty" bson:"assignees,omitempty"`
}

// TaskDependency carries the project id of both tasks so dependency rows can be
// scanned per project without joining through the tasks collection.
type TaskDependency struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ProjectID       primitive.ObjectID `json:"projectId" bson:"project_id"`
	TaskID          primitive.ObjectID `json:"taskId" bson:"task_id"`
	DependsOnTaskID primitive.ObjectID `json:"dependsOnTaskId" bson:"depends_on_task_id"`
}
