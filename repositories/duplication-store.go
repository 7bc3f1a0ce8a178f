package repositories

import (
	"context"
	"fmt"

	"teamflow/microservices/projects-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDuplicationStore backs the duplication job with one MongoDB collection
// per entity type. It satisfies services.DuplicationStore.
type MongoDuplicationStore struct {
	Projects     *mongo.Collection
	Departments  *mongo.Collection
	Leads        *mongo.Collection
	Members      *mongo.Collection
	Elements     *mongo.Collection
	Tasks        *mongo.Collection
	Dependencies *mongo.Collection
	Folders      *mongo.Collection
	Links        *mongo.Collection
	ChatSettings *mongo.Collection
	ChatRooms    *mongo.Collection
}

func NewMongoDuplicationStore(db *mongo.Database) *MongoDuplicationStore {
	return &MongoDuplicationStore{
		Projects:     db.Collection("projects"),
		Departments:  db.Collection("departments"),
		Leads:        db.Collection("department_leads"),
		Members:      db.Collection("project_members"),
		Elements:     db.Collection("elements"),
		Tasks:        db.Collection("tasks"),
		Dependencies: db.Collection("task_dependencies"),
		Folders:      db.Collection("document_folders"),
		Links:        db.Collection("document_links"),
		ChatSettings: db.Collection("chat_settings"),
		ChatRooms:    db.Collection("chat_rooms"),
	}
}

func (s *MongoDuplicationStore) FindProjectByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var project models.Project
	err := s.Projects.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching project: %v", err)
	}
	return &project, nil
}

func (s *MongoDuplicationStore) FindProjectByOwnerAndName(ctx context.Context, owner, name string) (*models.Project, error) {
	var project models.Project
	err := s.Projects.FindOne(ctx, bson.M{"owner": owner, "name": name}).Decode(&project)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching project by name: %v", err)
	}
	return &project, nil
}

func (s *MongoDuplicationStore) InsertProject(ctx context.Context, project *models.Project) error {
	_, err := s.Projects.InsertOne(ctx, project)
	return err
}

func (s *MongoDuplicationStore) UpdateProjectStatus(ctx context.Context, id primitive.ObjectID, status models.ProjectStatus) error {
	result, err := s.Projects.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("project not found for status update")
	}
	return nil
}

func (s *MongoDuplicationStore) DepartmentsByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Department, error) {
	var departments []models.Department
	if err := s.findAll(ctx, s.Departments, bson.M{"project_id": projectID}, &departments); err != nil {
		return nil, err
	}
	return departments, nil
}

func (s *MongoDuplicationStore) FindDepartmentByName(ctx context.Context, projectID primitive.ObjectID, name string) (*models.Department, error) {
	var department models.Department
	found, err := s.findOne(ctx, s.Departments, bson.M{"project_id": projectID, "name": name}, &department)
	if err != nil || !found {
		return nil, err
	}
	return &department, nil
}

func (s *MongoDuplicationStore) InsertDepartment(ctx context.Context, department *models.Department) error {
	_, err := s.Departments.InsertOne(ctx, department)
	return err
}

func (s *MongoDuplicationStore) LeadsByDepartment(ctx context.Context, departmentID primitive.ObjectID) ([]models.DepartmentLead, error) {
	var leads []models.DepartmentLead
	if err := s.findAll(ctx, s.Leads, bson.M{"department_id": departmentID}, &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

func (s *MongoDuplicationStore) FindLead(ctx context.Context, departmentID primitive.ObjectID, username string) (*models.DepartmentLead, error) {
	var lead models.DepartmentLead
	found, err := s.findOne(ctx, s.Leads, bson.M{"department_id": departmentID, "username": username}, &lead)
	if err != nil || !found {
		return nil, err
	}
	return &lead, nil
}

func (s *MongoDuplicationStore) InsertLead(ctx context.Context, lead *models.DepartmentLead) error {
	_, err := s.Leads.InsertOne(ctx, lead)
	return err
}

func (s *MongoDuplicationStore) MembersByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.ProjectMember, error) {
	var members []models.ProjectMember
	if err := s.findAll(ctx, s.Members, bson.M{"project_id": projectID}, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (s *MongoDuplicationStore) FindMember(ctx context.Context, projectID primitive.ObjectID, username string) (*models.ProjectMember, error) {
	var member models.ProjectMember
	found, err := s.findOne(ctx, s.Members, bson.M{"project_id": projectID, "username": username}, &member)
	if err != nil || !found {
		return nil, err
	}
	return &member, nil
}

func (s *MongoDuplicationStore) InsertMember(ctx context.Context, member *models.ProjectMember) error {
	_, err := s.Members.InsertOne(ctx, member)
	return err
}

func (s *MongoDuplicationStore) ElementsByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Element, error) {
	var elements []models.Element
	if err := s.findAll(ctx, s.Elements, bson.M{"project_id": projectID}, &elements); err != nil {
		return nil, err
	}
	return elements, nil
}

func (s *MongoDuplicationStore) FindElementByTitle(ctx context.Context, projectID primitive.ObjectID, title string) (*models.Element, error) {
	var element models.Element
	found, err := s.findOne(ctx, s.Elements, bson.M{"project_id": projectID, "title": title}, &element)
	if err != nil || !found {
		return nil, err
	}
	return &element, nil
}

func (s *MongoDuplicationStore) InsertElement(ctx context.Context, element *models.Element) error {
	_, err := s.Elements.InsertOne(ctx, element)
	return err
}

func (s *MongoDuplicationStore) TasksByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error) {
	var tasks []models.Task
	if err := s.findAll(ctx, s.Tasks, bson.M{"project_id": projectID}, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *MongoDuplicationStore) FindTaskByTitle(ctx context.Context, projectID primitive.ObjectID, title string) (*models.Task, error) {
	var task models.Task
	found, err := s.findOne(ctx, s.Tasks, bson.M{"project_id": projectID, "title": title}, &task)
	if err != nil || !found {
		return nil, err
	}
	return &task, nil
}

func (s *MongoDuplicationStore) InsertTask(ctx context.Context, task *models.Task) error {
	_, err := s.Tasks.InsertOne(ctx, task)
	return err
}

func (s *MongoDuplicationStore) SetTaskParent(ctx context.Context, taskID, parentID primitive.ObjectID) error {
	result, err := s.Tasks.UpdateOne(ctx, bson.M{"_id": taskID}, bson.M{"$set": bson.M{"parent_task_id": parentID}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("task not found for parent update")
	}
	return nil
}

func (s *MongoDuplicationStore) DependenciesByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.TaskDependency, error) {
	var dependencies []models.TaskDependency
	if err := s.findAll(ctx, s.Dependencies, bson.M{"project_id": projectID}, &dependencies); err != nil {
		return nil, err
	}
	return dependencies, nil
}

func (s *MongoDuplicationStore) FindDependency(ctx context.Context, taskID, dependsOnID primitive.ObjectID) (*models.TaskDependency, error) {
	var dependency models.TaskDependency
	found, err := s.findOne(ctx, s.Dependencies, bson.M{"task_id": taskID, "depends_on_task_id": dependsOnID}, &dependency)
	if err != nil || !found {
		return nil, err
	}
	return &dependency, nil
}

func (s *MongoDuplicationStore) InsertDependency(ctx context.Context, dependency *models.TaskDependency) error {
	_, err := s.Dependencies.InsertOne(ctx, dependency)
	return err
}

func (s *MongoDuplicationStore) FoldersByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.DocumentFolder, error) {
	var folders []models.DocumentFolder
	if err := s.findAll(ctx, s.Folders, bson.M{"project_id": projectID}, &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

func (s *MongoDuplicationStore) FindFolderByName(ctx context.Context, projectID primitive.ObjectID, name string) (*models.DocumentFolder, error) {
	var folder models.DocumentFolder
	found, err := s.findOne(ctx, s.Folders, bson.M{"project_id": projectID, "name": name}, &folder)
	if err != nil || !found {
		return nil, err
	}
	return &folder, nil
}

func (s *MongoDuplicationStore) InsertFolder(ctx context.Context, folder *models.DocumentFolder) error {
	_, err := s.Folders.InsertOne(ctx, folder)
	return err
}

func (s *MongoDuplicationStore) SetFolderParent(ctx context.Context, folderID, parentID primitive.ObjectID) error {
	result, err := s.Folders.UpdateOne(ctx, bson.M{"_id": folderID}, bson.M{"$set": bson.M{"parent_folder_id": parentID}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("folder not found for parent update")
	}
	return nil
}

func (s *MongoDuplicationStore) LinksByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.DocumentLink, error) {
	var links []models.DocumentLink
	if err := s.findAll(ctx, s.Links, bson.M{"project_id": projectID}, &links); err != nil {
		return nil, err
	}
	return links, nil
}

func (s *MongoDuplicationStore) FindLinkByURL(ctx context.Context, projectID primitive.ObjectID, url string) (*models.DocumentLink, error) {
	var link models.DocumentLink
	found, err := s.findOne(ctx, s.Links, bson.M{"project_id": projectID, "url": url}, &link)
	if err != nil || !found {
		return nil, err
	}
	return &link, nil
}

func (s *MongoDuplicationStore) InsertLink(ctx context.Context, link *models.DocumentLink) error {
	_, err := s.Links.InsertOne(ctx, link)
	return err
}

func (s *MongoDuplicationStore) ChatSettingsByProject(ctx context.Context, projectID primitive.ObjectID) (*models.ChatSettings, error) {
	var settings models.ChatSettings
	found, err := s.findOne(ctx, s.ChatSettings, bson.M{"project_id": projectID}, &settings)
	if err != nil || !found {
		return nil, err
	}
	return &settings, nil
}

func (s *MongoDuplicationStore) InsertChatSettings(ctx context.Context, settings *models.ChatSettings) error {
	_, err := s.ChatSettings.InsertOne(ctx, settings)
	return err
}

func (s *MongoDuplicationStore) ChatRoomsByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.ChatRoom, error) {
	var rooms []models.ChatRoom
	if err := s.findAll(ctx, s.ChatRooms, bson.M{"project_id": projectID}, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (s *MongoDuplicationStore) FindChatRoomByName(ctx context.Context, projectID primitive.ObjectID, name string) (*models.ChatRoom, error) {
	var room models.ChatRoom
	found, err := s.findOne(ctx, s.ChatRooms, bson.M{"project_id": projectID, "name": name}, &room)
	if err != nil || !found {
		return nil, err
	}
	return &room, nil
}

func (s *MongoDuplicationStore) InsertChatRoom(ctx context.Context, room *models.ChatRoom) error {
	_, err := s.ChatRooms.InsertOne(ctx, room)
	return err
}

// findOne decodes a single document into out; reports false when no document
// matches the filter.
func (s *MongoDuplicationStore) findOne(ctx context.Context, collection *mongo.Collection, filter bson.M, out interface{}) (bool, error) {
	err := collection.FindOne(ctx, filter).Decode(out)
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query on %s failed: %v", collection.Name(), err)
	}
	return true, nil
}

func (s *MongoDuplicationStore) findAll(ctx context.Context, collection *mongo.Collection, filter bson.M, out interface{}) error {
	cursor, err := collection.Find(ctx, filter)
	if err != nil {
		return fmt.Errorf("query on %s failed: %v", collection.Name(), err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("failed to decode %s documents: %v", collection.Name(), err)
	}
	return nil
}
