package services

import (
	"context"
	"fmt"
	"time"

	"teamflow/microservices/projects-service/clients"
	"teamflow/microservices/projects-service/logging"
	"teamflow/microservices/projects-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProjectService struct {
	ProjectsCollection *mongo.Collection
	MembersCollection  *mongo.Collection
	TasksCollection    *mongo.Collection
	UsersCollection    *mongo.Collection
	Notifications      *clients.NotificationClient
}

func NewProjectService(projects, members, tasks, users *mongo.Collection, notifications *clients.NotificationClient) *ProjectService {
	return &ProjectService{
		ProjectsCollection: projects,
		MembersCollection:  members,
		TasksCollection:    tasks,
		UsersCollection:    users,
		Notifications:      notifications,
	}
}

// CreateProject creates a new active project owned by the given user. Project
// names are unique per owner, case-sensitive.
func (s *ProjectService) CreateProject(ctx context.Context, name, description string, startDate, endDate *time.Time, owner string) (*models.Project, error) {
	if name == "" {
		return nil, fmt.Errorf("project name is required")
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return nil, fmt.Errorf("end date must not be before start date")
	}

	count, err := s.ProjectsCollection.CountDocuments(ctx, bson.M{"owner": owner, "name": name})
	if err != nil {
		return nil, fmt.Errorf("failed to check project name: %v", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("project with the same name already exists")
	}

	project := &models.Project{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Description: description,
		Status:      models.ProjectStatusActive,
		StartDate:   startDate,
		EndDate:     endDate,
		Owner:       owner,
		CreatedAt:   time.Now(),
	}

	result, err := s.ProjectsCollection.InsertOne(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %v", err)
	}
	project.ID = result.InsertedID.(primitive.ObjectID)

	return project, nil
}

func (s *ProjectService) GetProjectByID(ctx context.Context, projectID string) (*models.Project, error) {
	objectID, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return nil, fmt.Errorf("invalid project ID format")
	}

	var project models.Project
	err = s.ProjectsCollection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&project)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("project not found")
		}
		return nil, fmt.Errorf("error fetching project: %v", err)
	}

	return &project, nil
}

func (s *ProjectService) GetProjectsByOwner(ctx context.Context, owner string) ([]models.Project, error) {
	var projects []models.Project
	cursor, err := s.ProjectsCollection.Find(ctx, bson.M{"owner": owner})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve projects: %v", err)
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %v", err)
	}

	return projects, nil
}

// AddMembersToProject adds users to a project after checking they exist. Each
// added member gets a notification; notification failures are logged only.
func (s *ProjectService) AddMembersToProject(ctx context.Context, projectID primitive.ObjectID, usernames []string, addedBy string) error {
	if len(usernames) == 0 {
		return fmt.Errorf("at least one member is required")
	}

	var project models.Project
	if err := s.ProjectsCollection.FindOne(ctx, bson.M{"_id": projectID}).Decode(&project); err != nil {
		if err == mongo.ErrNoDocuments {
			return fmt.Errorf("project not found")
		}
		return fmt.Errorf("error fetching project: %v", err)
	}

	for _, username := range usernames {
		var user models.User
		if err := s.UsersCollection.FindOne(ctx, bson.M{"username": username}).Decode(&user); err != nil {
			if err == mongo.ErrNoDocuments {
				return fmt.Errorf("user %s not found", username)
			}
			return fmt.Errorf("error fetching user %s: %v", username, err)
		}

		count, err := s.MembersCollection.CountDocuments(ctx, bson.M{"project_id": projectID, "username": username})
		if err != nil {
			return fmt.Errorf("failed to check existing membership: %v", err)
		}
		if count > 0 {
			return fmt.Errorf("user %s is already a member of the project", username)
		}

		member := models.ProjectMember{
			ID:        primitive.NewObjectID(),
			ProjectID: projectID,
			Username:  username,
			Role:      "member",
			AddedBy:   addedBy,
		}
		if _, err := s.MembersCollection.InsertOne(ctx, &member); err != nil {
			return fmt.Errorf("failed to add member %s: %v", username, err)
		}

		if s.Notifications != nil {
			message := fmt.Sprintf("You have been added to the project %s", project.Name)
			if err := s.Notifications.NotifyUser(ctx, username, message); err != nil {
				logging.Logger.Warnf("Event ID: NOTIFICATION_SEND_FAILED, Description: Failed to notify user %s: %v", username, err)
			}
		}
	}

	return nil
}

func (s *ProjectService) GetProjectMembers(ctx context.Context, projectID string) ([]models.ProjectMember, error) {
	objectID, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return nil, fmt.Errorf("invalid project ID format")
	}

	var members []models.ProjectMember
	cursor, err := s.MembersCollection.Find(ctx, bson.M{"project_id": objectID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve members: %v", err)
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &members); err != nil {
		return nil, fmt.Errorf("failed to decode members: %v", err)
	}

	return members, nil
}

func (s *ProjectService) GetTasksForProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error) {
	var tasks []models.Task
	cursor, err := s.TasksCollection.Find(ctx, bson.M{"project_id": projectID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tasks: %v", err)
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %v", err)
	}

	return tasks, nil
}
